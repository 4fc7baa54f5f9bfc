package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/recipe"
)

// ErrRecipeNotResolved is returned when a referenced recipe cannot be resolved
// at its pinned version. Generation fails atomically (no partial contract is
// ever produced) and is safe to retry because contract ids are deterministic.
var ErrRecipeNotResolved = errors.New("recipe could not be resolved")

// RecipeResolver provides read-only access to versioned recipes.
// Owned by the Recipe collaborator; this core never writes recipe data.
type RecipeResolver interface {
	ResolveRecipe(ctx context.Context, recipeID kernel.UUID, version int) (recipe.Recipe, error)
}

// GeneratorConfig tunes the completion-time estimate.
type GeneratorConfig struct {
	// PerQuantityFactor scales the per-item estimate for each unit beyond the first.
	PerQuantityFactor float64
	// BufferMinutes is the fixed buffer added to the order-level estimate.
	BufferMinutes int
}

// DefaultGeneratorConfig returns the estimate tuning used in production.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PerQuantityFactor: 0.2,
		BufferMinutes:     5,
	}
}

// ContractGenerator translates a confirmed commercial order into an immutable
// production contract expressed entirely in kitchen vocabulary, and derives
// the kitchen order that tracks its preparation.
//
// Generation is deterministic: the contract id, its item ids, and the derived
// kitchen order id are all name-based UUIDs keyed on (tenant, order, version),
// so redelivering the same confirmation fact regenerates identical aggregates
// instead of duplicates.
type ContractGenerator struct {
	recipes RecipeResolver
	config  GeneratorConfig
}

// NewContractGenerator creates a generator backed by the given recipe source.
func NewContractGenerator(recipes RecipeResolver, config GeneratorConfig) ContractGenerator {
	return ContractGenerator{
		recipes: recipes,
		config:  config,
	}
}

// Generate builds the production contract for one confirmation fact.
//
// For each order line the pinned recipe version is resolved and its allergens
// are copied onto the production item; the commercial order is never trusted
// as the allergen source of truth. Modifications are carried over verbatim
// and special instructions come from order-level notes only. If any recipe
// fails to resolve the whole generation fails; the caller retries the event.
func (g ContractGenerator) Generate(ctx context.Context, fact events.OrderConfirmed, now time.Time) (*contract.Contract, error) {
	tenantID, err := kernel.UUIDFromString(fact.TenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant id: %w", err)
	}
	orderID, err := kernel.UUIDFromString(fact.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}

	contractID := contractIdentity(fact.TenantID, fact.OrderID, fact.Version)

	items := make([]contract.Item, 0, len(fact.Lines))
	maxMinutes := 0
	for i, line := range fact.Lines {
		recipeID, err := kernel.UUIDFromString(line.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("line %d recipe id: %w", i, err)
		}

		rec, err := g.recipes.ResolveRecipe(ctx, recipeID, line.RecipeVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: recipe %s v%d: %w", ErrRecipeNotResolved, line.RecipeID, line.RecipeVersion, err)
		}

		item, err := contract.NewItem(
			itemIdentity(contractID, i),
			rec.ID,
			rec.Version,
			rec.ProductID,
			line.Quantity,
			line.Modifications,
			rec.Allergens,
			rec.Allergens,
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		items = append(items, item)

		if m := g.itemMinutes(rec, line.Quantity); m > maxMinutes {
			maxMinutes = m
		}
	}

	estimated := now.Add(time.Duration(maxMinutes+g.config.BufferMinutes) * time.Minute)

	return contract.NewContract(
		contractID,
		tenantID,
		orderID,
		items,
		contract.ParsePriority(fact.Priority),
		fact.Notes,
		estimated,
		now,
		fact.Version,
	)
}

// DeriveKitchenOrder builds the kitchen order tracking a contract's
// preparation: one kitchen item per production item, each carrying the station
// requirements and duration estimate derived from its pinned recipe.
func (g ContractGenerator) DeriveKitchenOrder(ctx context.Context, c *contract.Contract, now time.Time) (*kitchenorder.KitchenOrder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	contractItems := c.Items()
	items := make([]*kitchenorder.Item, 0, len(contractItems))
	for _, ci := range contractItems {
		rec, err := g.recipes.ResolveRecipe(ctx, ci.RecipeID(), ci.RecipeVersion())
		if err != nil {
			return nil, fmt.Errorf("%w: recipe %s v%d: %w", ErrRecipeNotResolved, ci.RecipeID(), ci.RecipeVersion(), err)
		}

		item, err := kitchenorder.NewItem(
			kernel.NewDeterministicUUID(fmt.Sprintf("kitchen-item/%s", ci.ID())),
			ci.ID(),
			ci.RecipeID(),
			ci.RecipeVersion(),
			ci.ProductID(),
			ci.Quantity(),
			ci.Modifications(),
			ci.Allergens(),
			rec.StationType,
			rec.RequiredEquipment,
			rec.RequiredSkills,
			g.itemMinutes(rec, ci.Quantity()),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return kitchenorder.NewKitchenOrder(
		kernel.NewDeterministicUUID(fmt.Sprintf("kitchen-order/%s", c.ID())),
		c,
		items,
		now,
	)
}

// itemMinutes estimates the preparation duration for one item: the recipe's
// combined time scaled modestly per additional unit.
func (g ContractGenerator) itemMinutes(rec recipe.Recipe, quantity int) int {
	base := float64(rec.CombinedMinutes())
	scaled := base * (1 + g.config.PerQuantityFactor*float64(quantity-1))
	return int(scaled)
}

func contractIdentity(tenantID, orderID string, version int) kernel.UUID {
	return kernel.NewDeterministicUUID(fmt.Sprintf("contract/%s/%s/%d", tenantID, orderID, version))
}

func itemIdentity(contractID kernel.UUID, index int) kernel.UUID {
	return kernel.NewDeterministicUUID(fmt.Sprintf("contract/%s/item/%d", contractID, index))
}
