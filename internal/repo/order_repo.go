package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/domain"
)

// CreateOrder inserts o in a single statement. ID and CreatedAt are assigned
// by the store. There is intentionally no update or delete counterpart.
func CreateOrder(ctx context.Context, db *gorm.DB, o *domain.Order) error {
	return db.WithContext(ctx).Create(o).Error
}
