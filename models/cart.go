package models

import "github.com/shopspring/decimal"

// CartLineItem is one catalog item plus the quantity requested. Everything but
// Quantity is copied from the catalog when the line is created.
type CartLineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type CartTotals struct {
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	ItemCount int             `json:"item_count"`
}

// Cart holds the line items a customer intends to buy. Every line has
// Quantity >= 1 and ids are unique. A Cart is not safe for concurrent use.
type Cart struct {
	Items []CartLineItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: []CartLineItem{}}
}

// AddItem increments the line for item.ID, or appends a new line with
// quantity 1.
func (c *Cart) AddItem(item CatalogItem) CartTotals {
	if i := c.indexOf(item.ID); i >= 0 {
		c.Items[i].Quantity++
		return c.Totals()
	}

	c.Items = append(c.Items, CartLineItem{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Category: item.Category,
		Quantity: 1,
	})
	return c.Totals()
}

// UpdateQuantity adds delta to the line for id. Lines that drop to zero or
// below are removed. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, delta int) CartTotals {
	i := c.indexOf(id)
	if i < 0 {
		return c.Totals()
	}

	qty := c.Items[i].Quantity + delta
	if qty <= 0 {
		c.removeAt(i)
		return c.Totals()
	}

	c.Items[i].Quantity = qty
	return c.Totals()
}

// Merge puts lines back into the cart. Quantities of lines already present
// are added together; new lines are appended in the given order.
func (c *Cart) Merge(lines []CartLineItem) CartTotals {
	for _, li := range lines {
		if li.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(li.ID); i >= 0 {
			c.Items[i].Quantity += li.Quantity
			continue
		}
		c.Items = append(c.Items, li)
	}
	return c.Totals()
}

func (c *Cart) RemoveItem(id string) CartTotals {
	if i := c.indexOf(id); i >= 0 {
		c.removeAt(i)
	}
	return c.Totals()
}

func (c *Cart) Clear() CartTotals {
	c.Items = []CartLineItem{}
	return c.Totals()
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, li := range c.Items {
		count += li.Quantity
	}
	return count
}

func (c *Cart) Totals() CartTotals {
	return CartTotals{Total: c.Total(), ItemCount: c.ItemCount()}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the line for id.
func (c *Cart) Find(id string) (CartLineItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.Items[i], true
	}
	return CartLineItem{}, false
}

// Snapshot returns a copy of the lines in insertion order.
func (c *Cart) Snapshot() []CartLineItem {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

func (c *Cart) indexOf(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
