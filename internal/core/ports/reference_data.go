package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/services"
)

// RecipeProvider resolves versioned recipes owned by the Recipe collaborator.
// Read-only: the kitchen core never writes recipe data.
type RecipeProvider interface {
	// ResolveRecipe returns the recipe at exactly the pinned version.
	ResolveRecipe(ctx context.Context, recipeID kernel.UUID, version int) (recipe.Recipe, error)
}

// InventoryProvider reads current stock levels owned by the Inventory
// collaborator. The core only consumes these snapshots for validation and
// emits IngredientConsumed facts; it never decrements stock itself.
type InventoryProvider interface {
	// StockLevels returns the current stock for the given ingredients.
	StockLevels(ctx context.Context, tenantID kernel.UUID, ingredientIDs []kernel.UUID) ([]recipe.StockLevel, error)
}

// SourceOrderProvider reads the Ordering collaborator's view of an order for
// the validator's order-sync check.
type SourceOrderProvider interface {
	// SourceOrder returns the commercial order snapshot, or nil if the
	// collaborator no longer knows the order.
	SourceOrder(ctx context.Context, orderID kernel.UUID) (*services.SourceOrder, error)
}
