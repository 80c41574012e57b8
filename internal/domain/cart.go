package domain

// CartEntry is a copy of a menu item's id, name and price taken when the
// customer tapped it in the bot.
type CartEntry struct {
	ItemID uint   `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
}

// Cart is the per-user pending selection. Table is fixed when the cart is
// first created.
type Cart struct {
	UserID int64       `json:"user_id"`
	Table  string      `json:"table"`
	Items  []CartEntry `json:"items"`
}

// Total returns the sum of entry prices.
func (c Cart) Total() int64 {
	var total int64
	for _, e := range c.Items {
		total += e.Price
	}
	return total
}

// Lines converts the cart entries into order lines of quantity 1, preserving
// selection order.
func (c Cart) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(c.Items))
	for _, e := range c.Items {
		lines = append(lines, OrderLine{ItemID: e.ItemID, Name: e.Name, Price: e.Price, Qty: 1})
	}
	return lines
}
