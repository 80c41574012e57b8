// Package domain defines the persistence models for menu items and orders,
// plus the session-local cart types shared by the bot and the cart stores.
// The persisted types are mapped with GORM and form the core data layer of
// the table-ordering service.
package domain

import "time"

// UnknownTable is the table label used when a customer arrives without one.
const UnknownTable = "Noma’lum"

// Order sources recorded on every persisted order.
const (
	SourceBot     = "bot"
	SourceMiniApp = "miniapp"
)

// MenuItem is a dish or drink that can be ordered.
//
// Fields:
//   - ID: store-assigned auto-increment primary key, never reused.
//   - Name: display name shown in the bot and the mini-app.
//   - Price: whole currency units (so‘m); never negative.
//   - Image: optional image reference, either an absolute URL or a file name
//     under the upload directory. Empty when absent.
//   - Description / Category: optional, stored as "" when absent.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type MenuItem struct {
	ID          uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Price       int64     `json:"price"       gorm:"not null;check:chk_menu_items_price,price >= 0"`
	Image       string    `json:"image"       gorm:"type:varchar(512);not null;default:''"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	Category    string    `json:"category"    gorm:"type:varchar(64);not null;default:'';index:idx_menu_category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for MenuItem.
func (MenuItem) TableName() string { return "menu_items" }

// OrderLine is a value copy of a menu item taken when the customer selected
// it. Later edits or deletions of the menu item do not affect the line.
type OrderLine struct {
	ItemID uint   `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Qty    int    `json:"qty"`
}

// Quantity returns the line quantity, treating a missing or non-positive
// value as 1.
func (l OrderLine) Quantity() int {
	if l.Qty <= 0 {
		return 1
	}
	return l.Qty
}

// Subtotal returns Price multiplied by Quantity.
func (l OrderLine) Subtotal() int64 { return l.Price * int64(l.Quantity()) }

// Order is a placed order. Orders are immutable once written.
//
// Fields:
//   - ID: store-assigned auto-increment primary key.
//   - Table: free-form table label supplied by the customer.
//   - Items: ordered line copies, stored as a JSON column.
//   - Total: sum of line subtotals at placement time.
//   - UserID: optional customer identity (Telegram user id for bot orders).
//   - Source: "bot" or "miniapp".
//   - CreatedAt: assigned by the store on insert.
type Order struct {
	ID        uint        `json:"id"         gorm:"primaryKey;autoIncrement"`
	Table     string      `json:"table"      gorm:"column:table_label;type:varchar(128);not null"`
	Items     []OrderLine `json:"items"      gorm:"type:text;serializer:json;not null"`
	Total     int64       `json:"total"      gorm:"not null"`
	UserID    string      `json:"user_id"    gorm:"type:varchar(64);not null;default:'';index"`
	Source    string      `json:"source"     gorm:"type:varchar(16);not null;default:'miniapp'"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime;index:idx_orders_created"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// ComputeTotal sums the subtotals of lines. It does not guard against
// overflow; OrderService.Place rejects such orders before they are written.
func ComputeTotal(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
