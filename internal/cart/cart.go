// Package cart holds the cart aggregator: one line per product, quantities
// kept strictly positive, totals always derived from the lines.
package cart

import (
	"github.com/shopspring/decimal"

	"krishiconnect/internal/model"
)

// Line is one product in the cart. The display fields are copied from the
// product when the line is created and are not refreshed afterwards.
type Line struct {
	ProductID int64             `json:"product_id" yaml:"product_id"`
	Name      string            `json:"name" yaml:"name"`
	Names     map[string]string `json:"names,omitempty" yaml:"names,omitempty"`
	Price     decimal.Decimal   `json:"price" yaml:"price"`
	Unit      string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Emoji     string            `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Quality   string            `json:"quality,omitempty" yaml:"quality,omitempty"`
	Quantity  int               `json:"quantity" yaml:"quantity"`
}

// LineTotal is price x quantity
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered list of lines. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines" yaml:"lines"`
}

// FromProduct snapshots the fields of p a cart line needs for rendering.
func FromProduct(p model.Product) Line {
	var names map[string]string
	if len(p.Names) > 0 {
		names = make(map[string]string, len(p.Names))
		for k, v := range p.Names {
			names[k] = v
		}
	}
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Names:     names,
		Price:     p.Price,
		Unit:      p.Unit,
		Emoji:     p.Emoji,
		Quality:   p.Quality,
	}
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of the product in the cart. An existing line is
// incremented; otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(snapshot Line) {
	if i := c.indexOf(snapshot.ProductID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	snapshot.Quantity = 1
	c.Lines = append(c.Lines, snapshot)
}

// ChangeQuantity adds delta to the line's quantity. A result of zero or less
// removes the line. Stock is not consulted. Reports whether the line existed.
func (c *Cart) ChangeQuantity(productID int64, delta int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	newQty := c.Lines[i].Quantity + delta
	if newQty <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity = newQty
	return true
}

// Remove drops the line for productID. Reports whether it was present.
func (c *Cart) Remove(productID int64) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// Total sums price x quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) Clear() { c.Lines = nil }

// OrderItems freezes the lines into order items. The result shares no
// memory with the cart.
func (c *Cart) OrderItems() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		id := l.ProductID
		items = append(items, model.OrderItem{
			ProductID: &id,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Emoji:     l.Emoji,
		})
	}
	return items
}
