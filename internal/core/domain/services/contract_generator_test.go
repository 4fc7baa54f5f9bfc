package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"
)

type recipeKey struct {
	id      string
	version int
}

type fakeRecipeResolver struct {
	recipes map[recipeKey]recipe.Recipe
}

func (f *fakeRecipeResolver) ResolveRecipe(_ context.Context, recipeID kernel.UUID, version int) (recipe.Recipe, error) {
	rec, ok := f.recipes[recipeKey{id: recipeID.String(), version: version}]
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("recipe %s v%d not found", recipeID, version)
	}
	return rec, nil
}

func newResolverFixture(t *testing.T) (*fakeRecipeResolver, recipe.Recipe, recipe.Recipe) {
	t.Helper()

	burger := recipe.Recipe{
		ID:                kernel.NewUUID(),
		Version:           3,
		ProductID:         kernel.NewUUID(),
		Name:              "Classic Burger",
		PrepMinutes:       5,
		CookMinutes:       10,
		Allergens:         []string{"gluten", "sesame"},
		StationType:       station.TypeGrill,
		RequiredEquipment: []string{"grill-press"},
		RequiredSkills:    []string{"grill"},
	}
	salad := recipe.Recipe{
		ID:          kernel.NewUUID(),
		Version:     1,
		ProductID:   kernel.NewUUID(),
		Name:        "House Salad",
		PrepMinutes: 7,
		CookMinutes: 0,
		Allergens:   []string{"nuts"},
		StationType: station.TypeSalad,
	}

	resolver := &fakeRecipeResolver{recipes: map[recipeKey]recipe.Recipe{
		{id: burger.ID.String(), version: burger.Version}: burger,
		{id: salad.ID.String(), version: salad.Version}:   salad,
	}}
	return resolver, burger, salad
}

func confirmationFixture(burger, salad recipe.Recipe) events.OrderConfirmed {
	return events.OrderConfirmed{
		OrderID:  kernel.NewUUID().String(),
		TenantID: kernel.NewUUID().String(),
		Version:  1,
		Priority: "high",
		Notes:    "allergy at table 4",
		Lines: []events.OrderLine{
			{
				ProductID:     burger.ProductID.String(),
				RecipeID:      burger.ID.String(),
				RecipeVersion: burger.Version,
				Quantity:      2,
				Modifications: []string{"no onions"},
			},
			{
				ProductID:     salad.ProductID.String(),
				RecipeID:      salad.ID.String(),
				RecipeVersion: salad.Version,
				Quantity:      1,
			},
		},
		OccurredAt: time.Now().UTC(),
	}
}

func TestContractGeneratorGenerate(t *testing.T) {
	resolver, burger, salad := newResolverFixture(t)
	generator := services.NewContractGenerator(resolver, services.DefaultGeneratorConfig())
	fact := confirmationFixture(burger, salad)
	now := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)

	c, err := generator.Generate(context.Background(), fact, now)
	require.NoError(t, err)

	assert.Equal(t, fact.TenantID, c.TenantID().String())
	assert.Equal(t, fact.OrderID, c.OrderID().String())
	assert.Equal(t, 1, c.Version())
	assert.Equal(t, contract.PriorityHigh, c.Priority())
	assert.Equal(t, "allergy at table 4", c.SpecialInstructions())
	require.Len(t, c.Items(), 2)

	// Allergens come from the pinned recipes, never from the order lines.
	assert.ElementsMatch(t, []string{"gluten", "sesame"}, c.Items()[0].Allergens())
	assert.ElementsMatch(t, []string{"nuts"}, c.Items()[1].Allergens())
	assert.Equal(t, burger.Version, c.Items()[0].RecipeVersion())
	assert.Equal(t, []string{"no onions"}, c.Items()[0].Modifications())

	// Two burgers: 15m scaled by one extra unit at 0.2 = 18m, plus 5m buffer.
	assert.Equal(t, now.Add(23*time.Minute), c.EstimatedCompletion())
}

func TestContractGeneratorGenerateIsDeterministic(t *testing.T) {
	resolver, burger, salad := newResolverFixture(t)
	generator := services.NewContractGenerator(resolver, services.DefaultGeneratorConfig())
	fact := confirmationFixture(burger, salad)

	first, err := generator.Generate(context.Background(), fact, time.Now())
	require.NoError(t, err)
	second, err := generator.Generate(context.Background(), fact, time.Now())
	require.NoError(t, err)

	assert.True(t, first.ID().IsEqual(second.ID()))
	assert.True(t, first.Items()[0].ID().IsEqual(second.Items()[0].ID()))

	// A corrected order (bumped version) produces a fresh contract identity.
	fact.Version = 2
	corrected, err := generator.Generate(context.Background(), fact, time.Now())
	require.NoError(t, err)
	assert.False(t, first.ID().IsEqual(corrected.ID()))
}

func TestContractGeneratorGenerateFailsWhenRecipeMissing(t *testing.T) {
	resolver, burger, salad := newResolverFixture(t)
	generator := services.NewContractGenerator(resolver, services.DefaultGeneratorConfig())

	fact := confirmationFixture(burger, salad)
	fact.Lines[1].RecipeVersion = 99

	_, err := generator.Generate(context.Background(), fact, time.Now())
	assert.ErrorIs(t, err, services.ErrRecipeNotResolved)
}

func TestContractGeneratorGenerateDefaultsUnknownPriority(t *testing.T) {
	resolver, burger, salad := newResolverFixture(t)
	generator := services.NewContractGenerator(resolver, services.DefaultGeneratorConfig())

	fact := confirmationFixture(burger, salad)
	fact.Priority = "asap"

	c, err := generator.Generate(context.Background(), fact, time.Now())
	require.NoError(t, err)
	assert.Equal(t, contract.PriorityMedium, c.Priority())
}

func TestContractGeneratorDeriveKitchenOrder(t *testing.T) {
	resolver, burger, salad := newResolverFixture(t)
	generator := services.NewContractGenerator(resolver, services.DefaultGeneratorConfig())
	fact := confirmationFixture(burger, salad)
	now := time.Now().UTC()

	c, err := generator.Generate(context.Background(), fact, now)
	require.NoError(t, err)

	order, err := generator.DeriveKitchenOrder(context.Background(), c, now)
	require.NoError(t, err)

	assert.Equal(t, kitchenorder.StatusReceived, order.Status())
	require.Len(t, order.Items(), 2)

	first := order.Items()[0]
	assert.True(t, first.ProductionItemID().IsEqual(c.Items()[0].ID()))
	assert.Equal(t, kitchenorder.ItemStatusPending, first.Status())
	assert.Equal(t, station.TypeGrill, first.StationType())
	assert.Equal(t, []string{"grill-press"}, first.RequiredEquipment())
	assert.Equal(t, 18, first.EstimatedMinutes())

	second := order.Items()[1]
	assert.Equal(t, station.TypeSalad, second.StationType())
	assert.Equal(t, 7, second.EstimatedMinutes())
}
