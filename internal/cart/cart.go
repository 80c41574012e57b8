// Package cart holds per-user pending selections made in the bot before an
// order is confirmed.
//
// Two implementations are provided:
//   - MemoryStore: process-local, guarded by a mutex (default).
//   - RedisStore: shared across replicas, each operation executed as a
//     single Lua script.
//
// Both share the same semantics:
//   - The table label is fixed the first time a cart is created for a user.
//     Later selections carrying a different label do not change it, and the
//     label survives ConfirmAndClear.
//   - Entries are value copies of the menu row taken at selection time.
//   - ConfirmAndClear on an empty or unknown cart fails with ErrEmptyCart and
//     leaves the store untouched.
package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/tbourn/go-table-order/internal/domain"
)

// ErrEmptyCart is returned when confirming a cart that has no entries.
var ErrEmptyCart = errors.New("cart is empty")

// Store is the session state used by the bot surface.
type Store interface {
	// AddItem appends e to the user's cart, creating the cart bound to table
	// if it does not exist, and returns the updated cart.
	AddItem(ctx context.Context, userID int64, table string, e domain.CartEntry) (domain.Cart, error)
	// PeekTotal returns the running total, 0 for unknown users.
	PeekTotal(ctx context.Context, userID int64) (int64, error)
	// ConfirmAndClear returns the cart snapshot and empties its entries.
	ConfirmAndClear(ctx context.Context, userID int64) (domain.Cart, error)
}

func normalizeTable(table string) string {
	if t := strings.TrimSpace(table); t != "" {
		return t
	}
	return domain.UnknownTable
}
