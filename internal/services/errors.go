// Package services defines the business logic for the menu and for order
// placement. This file centralizes service-level error values so that they
// can be consistently returned by service methods and checked by callers.
//
// Translation into user-facing texts or HTTP status codes is performed by the
// HTTP handlers and the bot.
package services

import (
	"errors"

	"github.com/tbourn/go-table-order/internal/cart"
)

var (
	// ErrValidation is returned when input violates a field rule (missing
	// name, negative price, ...). It is usually wrapped with the field
	// message.
	ErrValidation = errors.New("validation failed")

	// ErrItemNotFound indicates that the requested menu item does not exist.
	ErrItemNotFound = errors.New("menu item not found")

	// ErrEmptyCart is returned when an order has no lines. It is the same
	// value the cart stores return, so callers check a single sentinel.
	ErrEmptyCart = cart.ErrEmptyCart

	// ErrUploadsDisabled is returned when an image upload arrives but no
	// image store is configured.
	ErrUploadsDisabled = errors.New("image uploads are disabled")
)
