package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestID(t *testing.T) uuid.UUID {
	t.Helper()

	return uuid.New()
}

func newTestGame(t *testing.T, title string, price int64) *Game {
	t.Helper()

	return &Game{ID: uuid.New(), Title: title, Price: price}
}

func TestCart_AddItem_MergesLines(t *testing.T) {
	cart := NewCart()
	game := newTestGame(t, "Mystic Odyssey", 499)

	cart.AddItem(game)
	cart.AddItem(game)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(998), cart.Subtotal())
}

func TestCart_Subtotal_RecomputesOverLines(t *testing.T) {
	cart := NewCart()
	zombie := newTestGame(t, "Zombie Apocalypse", 299)
	odyssey := newTestGame(t, "Mystic Odyssey", 499)

	cart.AddItem(zombie)
	cart.AddItem(odyssey)
	assert.Equal(t, int64(798), cart.Subtotal())

	cart.UpdateQuantity(zombie.ID, 3)
	assert.Equal(t, int64(299*3+499), cart.Subtotal())
}

func TestCart_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	cart := NewCart()
	game := newTestGame(t, "Farm Life", 199)
	cart.AddItem(game)

	cart.UpdateQuantity(game.ID, 0)

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Subtotal())
}

func TestCart_UpdateQuantity_SetsExactValue(t *testing.T) {
	cart := NewCart()
	game := newTestGame(t, "Tactical Force", 399)
	cart.AddItem(game)

	cart.UpdateQuantity(game.ID, 5)
	cart.UpdateQuantity(game.ID, 5) // idempotent, not incremental

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCart_RemoveItem_AbsentIsNoop(t *testing.T) {
	cart := NewCart()
	cart.AddItem(newTestGame(t, "Cyber Warriors", 499))

	cart.RemoveItem(uuid.New())

	assert.Len(t, cart.Lines(), 1)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.AddItem(newTestGame(t, "Space Explorers", 499))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
}

func TestCart_Snapshot_DecoupledFromCatalog(t *testing.T) {
	cart := NewCart()
	game := newTestGame(t, "Mystic Odyssey", 499)
	cart.AddItem(game)

	snapshot := cart.Snapshot()
	game.Price = 999 // later catalog edit

	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(499), snapshot[0].UnitPrice)
	assert.Equal(t, "Mystic Odyssey", snapshot[0].Title)
	assert.Equal(t, int64(499), snapshot[0].Amount())
}
