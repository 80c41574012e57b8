// Package notify renders order and menu texts and delivers operator
// notifications through Telegram.
//
// All texts are produced for Telegram's HTML parse mode; user-supplied
// values (table labels, item names) are escaped.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/tbourn/go-table-order/internal/domain"
)

// Fixed message texts.
const (
	MenuEmptyText = "❌ Menyu bo‘sh!"
	menuHeader    = "📋 Hozirgi menyu:\n\n"
)

// RenderOrder renders the operator notification for a placed order.
// Every line shows the quantity (default 1) and the line subtotal.
func RenderOrder(o *domain.Order) string {
	var b strings.Builder
	if o.Source == domain.SourceMiniApp {
		b.WriteString("📥 Yangi buyurtma (mini-app)!\n")
	} else {
		b.WriteString("📥 Yangi buyurtma!\n")
	}
	table := o.Table
	if strings.TrimSpace(table) == "" {
		table = domain.UnknownTable
	}
	fmt.Fprintf(&b, "🪑 Stol: <b>%s</b>\n\n", html.EscapeString(table))

	lines := make([]string, 0, len(o.Items))
	for i, l := range o.Items {
		lines = append(lines, fmt.Sprintf("%d. %s (x%d) – %d so‘m", i+1, html.EscapeString(l.Name), l.Quantity(), l.Subtotal()))
	}
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n💰 Jami: <b>%d</b> so‘m", o.Total)
	return b.String()
}

// RenderMenuAdded confirms a menu addition to the administrator.
func RenderMenuAdded(item *domain.MenuItem) string {
	return fmt.Sprintf("✅ Taom qo‘shildi: %s – %d so‘m", html.EscapeString(item.Name), item.Price)
}

// RenderMenu renders the numbered menu listing, or MenuEmptyText.
func RenderMenu(items []domain.MenuItem) string {
	if len(items) == 0 {
		return MenuEmptyText
	}
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. %s – %d so‘m", i+1, html.EscapeString(it.Name), it.Price))
	}
	return menuHeader + strings.Join(lines, "\n")
}
