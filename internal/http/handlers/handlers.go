package handlers

import (
	"context"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/services"
)

//
// Service contracts (context-aware)
//

// MenuService is the menu surface used by the mini-app and the admin page.
//
// Implementations must be safe for concurrent use and honor ctx.
type MenuService interface {
	// Search lists the menu, optionally filtered by category and ranked by
	// query. An empty query returns the menu in insertion order.
	Search(ctx context.Context, query, category string) ([]domain.MenuItem, error)
	// Version returns a fingerprint that changes with every menu change.
	Version(ctx context.Context) (string, error)
	// Add validates and inserts a menu item.
	Add(ctx context.Context, in services.NewMenuItem) (*domain.MenuItem, error)
	// Delete removes a menu item; unknown ids are not an error.
	Delete(ctx context.Context, id uint) error
}

// OrderService places orders submitted by the mini-app.
type OrderService interface {
	Place(ctx context.Context, in services.PlaceOrder) (*domain.Order, error)
}

//
// Handler wiring
//

// Handlers groups the JSON API endpoints.
type Handlers struct {
	menuSvc  MenuService
	orderSvc OrderService
}

// New constructs Handlers bound to the given services.
func New(menuSvc MenuService, orderSvc OrderService) *Handlers {
	return &Handlers{menuSvc: menuSvc, orderSvc: orderSvc}
}
