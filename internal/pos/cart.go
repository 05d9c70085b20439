// Package pos holds the point-of-sale cart: the in-progress, unsubmitted
// line items for the active terminal session.
package pos

import (
	"sync"

	"github.com/shopspring/decimal"
)

// taxRate is the fixed 5% applied to the cart subtotal. There is no
// per-item tax variance.
var taxRate = decimal.NewFromFloat(0.05)

// Line is one cart entry. Identity is the product id: adding the same
// product again bumps the quantity instead of duplicating the line.
type Line struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note"`
}

// Cart is the mutable line-item collection. It is never persisted; a
// submitted or cancelled cart is simply cleared.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add appends a product with quantity 1 and an empty note, or increments
// the quantity if the product is already in the cart.
func (c *Cart) Add(productID int, name string, unitPrice decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// Remove drops the line for productID. Unknown ids are ignored.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Adjust applies a quantity delta to the line for productID. A result
// below 1 removes the line instead. Unknown ids are ignored.
func (c *Cart) Adjust(productID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				c.removeLocked(productID)
				return
			}
			c.lines[i].Quantity = q
			return
		}
	}
}

// SetNote replaces the free-text note on the line for productID. Unknown
// ids are ignored.
func (c *Cart) SetNote(productID int, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Note = note
			return
		}
	}
}

// Lines returns a copy of the current line items.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear discards every line.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Totals recomputes the derived sums from the current lines:
// subtotal = Σ price×qty, tax = subtotal×0.05, total = subtotal+tax.
func (c *Cart) Totals() (subtotal, tax, total decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal = decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax = subtotal.Mul(taxRate)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}
