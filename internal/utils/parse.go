// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by the parsers for malformed input.
var ErrInvalidNumber = errors.New("invalid number")

// priceSeparators are thousands separators people type into prices:
// "25 000", "25_000", "25.000", "25,000" and the narrow no-break space.
var priceSeparators = strings.NewReplacer(" ", "", "_", "", ",", "", ".", "", "\u00a0", "", "\u202f", "")

// ParsePrice parses a non-negative whole price, tolerating thousands
// separators.
//
// Example:
//
//	p, _ := utils.ParsePrice("25 000") // 25000
//	_, err := utils.ParsePrice("-5")   // ErrInvalidNumber
func ParsePrice(s string) (int64, error) {
	s = priceSeparators.Replace(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidNumber
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

// ParseID parses a positive record id.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 || n > uint64(^uint(0)) {
		return 0, ErrInvalidNumber
	}
	return uint(n), nil
}
