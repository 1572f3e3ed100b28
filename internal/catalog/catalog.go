// Package catalog holds the static flavor menu.
package catalog

import (
	"math/rand/v2"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var flavors = []model.FlavorItem{
	{
		ID:          1,
		Name:        "Vanilla Dream",
		Description: "Classic Madagascar vanilla bean ice cream with a silky smooth texture",
		UnitPrice:   decimal.RequireFromString("4.99"),
		ColorTag:    "#FFF8DC",
		IconKey:     "ic_vanilla",
	},
	{
		ID:          2,
		Name:        "Chocolate Fudge",
		Description: "Rich Belgian dark chocolate with swirls of fudge",
		UnitPrice:   decimal.RequireFromString("5.49"),
		ColorTag:    "#5D4037",
		IconKey:     "ic_chocolate",
	},
	{
		ID:          3,
		Name:        "Strawberry Bliss",
		Description: "Fresh strawberry ice cream made with real berries",
		UnitPrice:   decimal.RequireFromString("5.29"),
		ColorTag:    "#FF6B9D",
		IconKey:     "ic_strawberry",
	},
	{
		ID:          4,
		Name:        "Mint Chip",
		Description: "Cool peppermint ice cream loaded with chocolate chips",
		UnitPrice:   decimal.RequireFromString("5.49"),
		ColorTag:    "#98FF98",
		IconKey:     "ic_mint",
	},
	{
		ID:          5,
		Name:        "Caramel Swirl",
		Description: "Buttery caramel ice cream with golden caramel ribbons",
		UnitPrice:   decimal.RequireFromString("5.79"),
		ColorTag:    "#FFD700",
		IconKey:     "ic_caramel",
	},
	{
		ID:          6,
		Name:        "Double Chocolate Chip",
		Description: "Creamy milk chocolate loaded with chocolate chips and cocoa swirls",
		UnitPrice:   decimal.RequireFromString("5.99"),
		ColorTag:    "#8B4513",
		IconKey:     "ic_double_chocolate",
	},
}

// All returns a copy of every flavor in menu order.
func All() []model.FlavorItem {
	out := make([]model.FlavorItem, len(flavors))
	copy(out, flavors)
	return out
}

// Len returns the number of flavors on the menu.
func Len() int {
	return len(flavors)
}

// Lookup returns the flavor with the given id.
func Lookup(id int) (model.FlavorItem, bool) {
	for _, f := range flavors {
		if f.ID == id {
			return f, true
		}
	}
	return model.FlavorItem{}, false
}

// Random picks a flavor uniformly using r.
func Random(r *rand.Rand) model.FlavorItem {
	return flavors[r.IntN(len(flavors))]
}
