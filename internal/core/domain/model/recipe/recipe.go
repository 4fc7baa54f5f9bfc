// Package recipe holds the read-only reference data the kitchen core consumes:
// recipes pinned by version, their ingredient requirements, and current stock
// levels. The Recipe and Inventory collaborators own this data; the kitchen
// core never writes it, so the types here are plain read models rather than
// guarded aggregates.
package recipe

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"
)

// Recipe is a versioned preparation specification for one product.
// Contracts pin a (ID, Version) pair at creation, so later recipe edits never
// retroactively change in-flight production work.
type Recipe struct {
	ID                kernel.UUID
	Version           int
	ProductID         kernel.UUID
	Name              string
	PrepMinutes       int
	CookMinutes       int
	Allergens         []string
	StationType       station.Type
	RequiredEquipment []string
	RequiredSkills    []string
	Ingredients       []Ingredient
}

// CombinedMinutes returns the total prep plus cook time for one unit.
func (r Recipe) CombinedMinutes() int {
	return r.PrepMinutes + r.CookMinutes
}

// HasAllergen reports whether the recipe declares the given allergen.
func (r Recipe) HasAllergen(allergen string) bool {
	for _, a := range r.Allergens {
		if a == allergen {
			return true
		}
	}
	return false
}

// Ingredient is one line of a recipe's bill of materials.
type Ingredient struct {
	ID          kernel.UUID
	Name        string
	QuantityPer float64
	Unit        string
	Optional    bool
}

// RequiredFor returns the quantity needed to produce the given number of units.
func (i Ingredient) RequiredFor(quantity int) float64 {
	return i.QuantityPer * float64(quantity)
}

// StockLevel is the inventory collaborator's view of one ingredient's
// availability at validation time.
type StockLevel struct {
	IngredientID kernel.UUID
	Available    float64
	Unit         string
	ExpiresAt    *time.Time
}

// IsExpired reports whether the stock has passed its expiration date as of now.
func (s StockLevel) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
