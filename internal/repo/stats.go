// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation on the menu) and the operator
// summary shown by the bot's admin command.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/domain"
)

// MenuStats returns the number of menu items and the greatest UpdatedAt
// among them. When the menu is empty, count is 0 and maxUpdatedAt is nil.
//
// The pair changes on every insert, update and delete, which makes it a
// suitable basis for a weak ETag.
func MenuStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.MenuItem{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// OrderSummary aggregates orders placed since a point in time.
type OrderSummary struct {
	Count   int64
	Revenue int64
}

// OrderStats returns how many orders were created at or after since and the
// sum of their totals.
func OrderStats(ctx context.Context, db *gorm.DB, since time.Time) (OrderSummary, error) {
	var s OrderSummary
	err := db.WithContext(ctx).Model(&domain.Order{}).
		Where("created_at >= ?", since).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Scan(&s).Error
	if err != nil {
		return OrderSummary{}, err
	}
	return s, nil
}
