package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-table-order/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
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

func TestMenuStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, _, err := MenuStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing menu_items table")
	}
}

func TestMenuStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.MenuItem{})
	count, maxAt, err := MenuStats(context.Background(), db)
	if err != nil {
		t.Fatalf("MenuStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestMenuStats_CountAndMax(t *testing.T) {
	db := newTestDB(t, &domain.MenuItem{})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max
	t3 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	for i, ts := range []time.Time{t1, t2, t3} {
		it := &domain.MenuItem{Name: fmt.Sprintf("item-%d", i), Price: 1000, CreatedAt: ts, UpdatedAt: ts}
		if err := db.Create(it).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	count, maxAt, err := MenuStats(context.Background(), db)
	if err != nil {
		t.Fatalf("MenuStats error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected max %v, got %v", t2, maxAt)
	}
}

func TestOrderStats_SinceWindow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &domain.Order{})

	old := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	today := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	seed := []*domain.Order{
		{Table: "t1", Items: []domain.OrderLine{{Name: "A", Price: 100}}, Total: 100, CreatedAt: old},
		{Table: "t2", Items: []domain.OrderLine{{Name: "B", Price: 250}}, Total: 250, CreatedAt: today},
		{Table: "t3", Items: []domain.OrderLine{{Name: "C", Price: 50}}, Total: 50, CreatedAt: today.Add(time.Hour)},
	}
	for i, o := range seed {
		if err := CreateOrder(ctx, db, o); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	s, err := OrderStats(ctx, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OrderStats: %v", err)
	}
	if s.Count != 2 || s.Revenue != 300 {
		t.Fatalf("unexpected summary: %+v", s)
	}

	s, err = OrderStats(ctx, db, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OrderStats (future): %v", err)
	}
	if s.Count != 0 || s.Revenue != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}
