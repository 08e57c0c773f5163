package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressionForSpend(t *testing.T) {
	tests := []struct {
		name         string
		totalSpend   int64
		wantLevel    int
		wantProgress float64
	}{
		{name: "zero spend", totalSpend: 0, wantLevel: 1, wantProgress: 0},
		{name: "just below bracket", totalSpend: 999, wantLevel: 1, wantProgress: 99.9},
		{name: "exact bracket", totalSpend: 1000, wantLevel: 2, wantProgress: 0},
		{name: "mid third bracket", totalSpend: 2500, wantLevel: 3, wantProgress: 50},
		{name: "negative clamps to zero", totalSpend: -50, wantLevel: 1, wantProgress: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressionForSpend(tt.totalSpend, 1000)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.InDelta(t, tt.wantProgress, got.Progress, 0.0001)
			assert.Less(t, got.Progress, 100.0)
		})
	}
}

func TestProfile_ApplyOrderAmount(t *testing.T) {
	profile := NewProfile(newTestID(t))

	leveledUp := profile.ApplyOrderAmount(500, 1000)
	assert.False(t, leveledUp)
	assert.Equal(t, int64(500), profile.TotalSpend)
	assert.Equal(t, 1, profile.Level)
	assert.InDelta(t, 50, profile.Progress, 0.0001)

	leveledUp = profile.ApplyOrderAmount(600, 1000)
	assert.True(t, leveledUp)
	assert.Equal(t, int64(1100), profile.TotalSpend)
	assert.Equal(t, 2, profile.Level)
	assert.InDelta(t, 10, profile.Progress, 0.0001)
}

func TestProfile_ApplyOrderAmount_ZeroIsNoop(t *testing.T) {
	profile := NewProfile(newTestID(t))
	profile.ApplyOrderAmount(2500, 1000)

	before := *profile
	assert.False(t, profile.ApplyOrderAmount(0, 1000))
	assert.False(t, profile.ApplyOrderAmount(-100, 1000))
	assert.Equal(t, before.TotalSpend, profile.TotalSpend)
	assert.Equal(t, before.Level, profile.Level)
	assert.Equal(t, before.Progress, profile.Progress)
}

func TestProfile_GrantGames_Monotonic(t *testing.T) {
	profile := NewProfile(newTestID(t))
	a, b := newTestID(t), newTestID(t)

	profile.GrantGames(a, b)
	profile.GrantGames(a, b) // regrant must not duplicate

	assert.Len(t, profile.OwnedGameIDs, 2)
	assert.True(t, profile.OwnsGame(a))
	assert.True(t, profile.OwnsGame(b))
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		subtotal      int64
		authenticated bool
		want          CheckoutTotals
	}{
		{
			name:          "anonymous pays full subtotal plus tax",
			subtotal:      798,
			authenticated: false,
			want:          CheckoutTotals{Subtotal: 798, Discount: 0, Taxable: 798, Tax: 168, Total: 966},
		},
		{
			name:          "authenticated gets flat five percent off before tax",
			subtotal:      798,
			authenticated: true,
			want:          CheckoutTotals{Subtotal: 798, Discount: 40, Taxable: 758, Tax: 159, Total: 917},
		},
		{
			name:          "empty cart",
			subtotal:      0,
			authenticated: true,
			want:          CheckoutTotals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.subtotal, 5, 21, tt.authenticated)
			assert.Equal(t, tt.want, got)
		})
	}
}
