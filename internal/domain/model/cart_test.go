package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCartSnapshot(t *testing.T) {
	rate := decimal.RequireFromString("0.08")
	vanilla := FlavorItem{ID: 1, Name: "Vanilla Dream", UnitPrice: decimal.RequireFromString("4.99")}
	mint := FlavorItem{ID: 4, Name: "Mint Chip", UnitPrice: decimal.RequireFromString("5.49")}

	tests := []struct {
		name      string
		lines     []CartLine
		itemCount int
		subtotal  string
		tax       string
		total     string
	}{
		{name: "empty", lines: nil, itemCount: 0, subtotal: "0", tax: "0", total: "0"},
		{name: "single line", lines: []CartLine{{Item: vanilla, Quantity: 2}}, itemCount: 2, subtotal: "9.98", tax: "0.8", total: "10.78"},
		{
			name:      "two lines",
			lines:     []CartLine{{Item: vanilla, Quantity: 1}, {Item: mint, Quantity: 3}},
			itemCount: 4,
			subtotal:  "21.46",
			tax:       "1.72",
			total:     "23.18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewCartSnapshot(tt.lines, rate)

			assert.Equal(t, tt.itemCount, snap.ItemCount)
			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(snap.Subtotal), "subtotal %s", snap.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.tax).Equal(snap.Tax), "tax %s", snap.Tax)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(snap.Total), "total %s", snap.Total)
			assert.Equal(t, len(tt.lines) == 0, snap.IsEmpty())
		})
	}
}

func TestNewCartSnapshot_CopiesLines(t *testing.T) {
	lines := []CartLine{{Item: FlavorItem{ID: 1, UnitPrice: decimal.NewFromInt(1)}, Quantity: 1}}
	snap := NewCartSnapshot(lines, decimal.Zero)

	lines[0].Quantity = 99

	assert.Equal(t, 1, snap.Lines[0].Quantity)
	assert.Equal(t, []int{1}, snap.ItemIDs())
}
