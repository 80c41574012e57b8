// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the MenuItem
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they can
// run inside a transaction. No business rules live here; validation and
// image housekeeping belong to services.MenuService.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListMenu returns menu items in insertion order. A non-empty category
// restricts the result to that category. The returned slice is never nil.
func ListMenu(ctx context.Context, db *gorm.DB, category string) ([]domain.MenuItem, error) {
	items := make([]domain.MenuItem, 0)
	q := db.WithContext(ctx).Model(&domain.MenuItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMenuItem inserts item and fills in its store-assigned ID.
func CreateMenuItem(ctx context.Context, db *gorm.DB, item *domain.MenuItem) error {
	return db.WithContext(ctx).Create(item).Error
}

// GetMenuItem fetches a single menu item, or ErrNotFound.
func GetMenuItem(ctx context.Context, db *gorm.DB, id uint) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem removes the item with the given id and returns the removed
// row. When no such row exists it returns (nil, nil).
func DeleteMenuItem(ctx context.Context, db *gorm.DB, id uint) (*domain.MenuItem, error) {
	var removed *domain.MenuItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := GetMenuItem(ctx, tx, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.MenuItem{}, "id = ?", id).Error; err != nil {
			return err
		}
		removed = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
