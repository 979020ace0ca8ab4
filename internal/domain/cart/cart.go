package cart

import (
	"math"
	"sync"

	"promenu/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Line is one cart entry. The item is a snapshot taken when the line was
// created: a later catalog edit does not change an open cart. Quantity is a
// whole number for unit items and any positive value for weight items.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity float64      `json:"quantity"`
}

// Cart holds the purchase state for one UI session and recomputes totals on
// every mutation. It never touches the network. A quantity at or below zero
// removes the line; no line with quantity <= 0 ever survives a mutation.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddOrIncrement inserts a line with quantity 1, or bumps an existing line
// for the same item id by 1.
func (c *Cart) AddOrIncrement(item catalog.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}

	var snapshot catalog.Item
	_ = copier.Copy(&snapshot, &item)
	c.lines = append(c.lines, Line{Item: snapshot, Quantity: 1})
}

// SetQuantity upserts the line at the given quantity; zero or less removes it.
// Unit items carry whole quantities, so fractional input is rounded before the
// upsert; only weight items keep fractional amounts.
func (c *Cart) SetQuantity(item catalog.Item, quantity float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.QuantityType.Normalize() == catalog.QuantityUnit {
		quantity = math.Round(quantity)
	}
	if quantity <= 0 {
		c.removeLocked(item.ID)
		return
	}

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity = quantity
			return
		}
	}

	var snapshot catalog.Item
	_ = copier.Copy(&snapshot, &item)
	c.lines = append(c.lines, Line{Item: snapshot, Quantity: quantity})
}

// DecrementOrRemove lowers the quantity by 1, removing the line when it would
// drop to zero or below.
func (c *Cart) DecrementOrRemove(itemID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			if c.lines[i].Quantity > 1 {
				c.lines[i].Quantity--
			} else {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

func (c *Cart) removeLocked(itemID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns the current quantity for an item id, zero when absent.
func (c *Cart) Quantity(itemID uuid.UUID) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			return c.lines[i].Quantity
		}
	}
	return 0
}

// TotalCents sums the line subtotals under the discount policy.
func (c *Cart) TotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for i := range c.lines {
		total += LineSubtotalCents(c.lines[i])
	}
	return total
}

// TotalUnitCount is the display badge count: unit lines contribute their
// quantity, weight lines count as a single unit regardless of amount.
func (c *Cart) TotalUnitCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int64
	for i := range c.lines {
		if c.lines[i].Item.QuantityType.Normalize() == catalog.QuantityUnit {
			count += int64(c.lines[i].Quantity)
		} else {
			count++
		}
	}
	return count
}
