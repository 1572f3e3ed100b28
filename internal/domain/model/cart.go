package model

import "github.com/shopspring/decimal"

// CartLine pairs one catalog item with a quantity.
//
// @Description A cart entry for a single flavor
type CartLine struct {
	// Item is the flavor in this line
	Item FlavorItem `json:"item"`
	// Quantity is always >= 1 for lines held by the cart
	Quantity int `json:"quantity" example:"2"`
}

// LineTotal returns unitPrice * quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is an immutable read of the cart at one instant.
// It implements JSON serialization for direct use in HTTP responses.
//
// @Description Cart contents with derived totals
type CartSnapshot struct {
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"item_count" example:"2"`
	Subtotal  decimal.Decimal `json:"subtotal" swaggertype:"string" example:"9.98"`
	Tax       decimal.Decimal `json:"tax" swaggertype:"string" example:"0.80"`
	Total     decimal.Decimal `json:"total" swaggertype:"string" example:"10.78"`
} // @name CartSnapshot

// NewCartSnapshot derives the aggregates for the given lines.
// Tax is rounded to cents; total is subtotal plus the rounded tax.
func NewCartSnapshot(lines []CartLine, taxRate decimal.Decimal) CartSnapshot {
	snap := CartSnapshot{
		Lines:    make([]CartLine, len(lines)),
		Subtotal: decimal.Zero,
	}
	copy(snap.Lines, lines)

	for _, l := range lines {
		snap.ItemCount += l.Quantity
		snap.Subtotal = snap.Subtotal.Add(l.LineTotal())
	}
	snap.Tax = snap.Subtotal.Mul(taxRate).Round(2)
	snap.Total = snap.Subtotal.Add(snap.Tax)
	return snap
}

// IsEmpty reports whether the snapshot has no lines.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// ItemIDs returns the ids of all lines in cart order.
func (s CartSnapshot) ItemIDs() []int {
	ids := make([]int, len(s.Lines))
	for i, l := range s.Lines {
		ids[i] = l.Item.ID
	}
	return ids
}
