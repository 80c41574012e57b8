package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-table-order/internal/domain"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

type fakeImages struct {
	saveName string
	saveErr  error
	saved    int
	removed  []string
	rmErr    error
}

func (f *fakeImages) Save(*multipart.FileHeader) (string, error) {
	f.saved++
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return f.saveName, nil
}

func (f *fakeImages) Remove(name string) error {
	f.removed = append(f.removed, name)
	return f.rmErr
}

type fakeNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.err
}

type fakePublisher struct {
	orders []*domain.Order
	err    error
}

func (f *fakePublisher) OrderPlaced(_ context.Context, o *domain.Order) error {
	f.orders = append(f.orders, o)
	return f.err
}

var errBoom = errors.New("boom")
