// Package model defines the core domain entities for the scoop service.
package model

import "github.com/shopspring/decimal"

// FlavorItem is a purchasable catalog entry.
// Records are created once at startup and shared by value; they are never mutated.
//
// @Description Ice cream flavor available on the menu
type FlavorItem struct {
	// ID is the unique catalog identifier (>= 1)
	ID int `json:"id" example:"1"`
	// Name is the display name of the flavor
	Name string `json:"name" example:"Vanilla Dream"`
	// Description is a short marketing text
	Description string `json:"description"`
	// UnitPrice is the price of a single scoop
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"4.99"`
	// ColorTag is the hex color used to render the flavor
	ColorTag string `json:"color_tag" example:"#FFF8DC"`
	// IconKey identifies the icon resource for the flavor
	IconKey string `json:"icon_key" example:"ic_vanilla"`
} // @name FlavorItem
