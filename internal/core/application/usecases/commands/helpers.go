package commands

import (
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
)

// ingredientIDsOf collects the distinct ingredient ids across a recipe set.
func ingredientIDsOf(recipes services.RecipeSet) []kernel.UUID {
	seen := make(map[string]bool)
	var ids []kernel.UUID
	for _, rec := range recipes {
		for _, ing := range rec.Ingredients {
			if !seen[ing.ID.String()] {
				seen[ing.ID.String()] = true
				ids = append(ids, ing.ID)
			}
		}
	}
	return ids
}
