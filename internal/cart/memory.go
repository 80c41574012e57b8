package cart

import (
	"context"
	"sync"
	"time"

	"github.com/tbourn/go-table-order/internal/domain"
)

type memEntry struct {
	cart    domain.Cart
	touched time.Time
}

// MemoryStore keeps carts in process memory. Carts are lost on restart.
//
// A ttl of zero means carts never expire. With a positive ttl, a cart idle
// for longer than ttl is discarded on its next access.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[int64]*memEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		carts: make(map[int64]*memEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// lookup returns the live entry for userID, dropping it if expired.
// Caller must hold s.mu.
func (s *MemoryStore) lookup(userID int64) *memEntry {
	e, ok := s.carts[userID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(e.touched) > s.ttl {
		delete(s.carts, userID)
		return nil
	}
	return e
}

// AddItem implements Store.
func (s *MemoryStore) AddItem(_ context.Context, userID int64, table string, item domain.CartEntry) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(userID)
	if e == nil {
		e = &memEntry{cart: domain.Cart{UserID: userID, Table: normalizeTable(table)}}
		s.carts[userID] = e
	}
	e.cart.Items = append(e.cart.Items, item)
	e.touched = s.now()
	return snapshot(e.cart), nil
}

// PeekTotal implements Store.
func (s *MemoryStore) PeekTotal(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.lookup(userID); e != nil {
		return e.cart.Total(), nil
	}
	return 0, nil
}

// ConfirmAndClear implements Store.
func (s *MemoryStore) ConfirmAndClear(_ context.Context, userID int64) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(userID)
	if e == nil || len(e.cart.Items) == 0 {
		return domain.Cart{}, ErrEmptyCart
	}
	out := snapshot(e.cart)
	e.cart.Items = nil
	e.touched = s.now()
	return out, nil
}

func snapshot(c domain.Cart) domain.Cart {
	items := make([]domain.CartEntry, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
