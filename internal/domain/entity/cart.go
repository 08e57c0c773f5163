package entity

import (
	"github.com/google/uuid"
)

// CartLine is one catalog item plus a quantity within a cart.
type CartLine struct {
	Game     *Game
	Quantity int
}

// Amount returns unit price times quantity for this line.
func (l *CartLine) Amount() int64 {
	return l.Game.Price * int64(l.Quantity)
}

// Cart is the in-memory collection of lines owned by one active session.
// It holds at most one line per game and is never persisted; it lives and
// dies with the session that owns it.
type Cart struct {
	lines []*CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem increments the quantity for an already-present game by one, or
// inserts a new line with quantity 1. It never fails; no stock limits exist.
func (c *Cart) AddItem(game *Game) {
	for _, line := range c.lines {
		if line.Game.ID == game.ID {
			line.Quantity++

			return
		}
	}

	c.lines = append(c.lines, &CartLine{Game: game, Quantity: 1})
}

// RemoveItem deletes the line for the given game unconditionally.
// Removing an absent game is a no-op.
func (c *Cart) RemoveItem(gameID uuid.UUID) {
	for i, line := range c.lines {
		if line.Game.ID == gameID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)

			return
		}
	}
}

// UpdateQuantity sets the quantity for the given game exactly. A quantity
// of zero or less is equivalent to RemoveItem.
func (c *Cart) UpdateQuantity(gameID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(gameID)

		return
	}

	for _, line := range c.lines {
		if line.Game.ID == gameID {
			line.Quantity = quantity

			return
		}
	}
}

// Clear empties the cart. Used after a successful checkout or explicit reset.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal sums unit price times quantity over all lines. It is recomputed
// on every call and never cached.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, line := range c.lines {
		sum += line.Amount()
	}

	return sum
}

// Lines returns the cart's lines in insertion order.
func (c *Cart) Lines() []*CartLine {
	out := make([]*CartLine, len(c.lines))
	copy(out, c.lines)

	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Snapshot freezes the cart into order lines, decoupled from any future
// catalog changes.
func (c *Cart) Snapshot() []OrderLine {
	lines := make([]OrderLine, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, OrderLine{
			GameID:    line.Game.ID,
			Title:     line.Game.Title,
			UnitPrice: line.Game.Price,
			Quantity:  line.Quantity,
		})
	}

	return lines
}
