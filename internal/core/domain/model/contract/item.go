package contract

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one unit of production work inside a Contract. Like its parent it is
// immutable: the recipe version is pinned, and the allergen alerts are copied
// from the pinned recipe at generation time, never taken from the commercial
// order, which is not trusted as an allergen source of truth.
type Item struct {
	id            kernel.UUID
	recipeID      kernel.UUID
	recipeVersion int
	productID     kernel.UUID
	quantity      int
	modifications []string
	allergens     []string
	guard         guard.ConstructorGuard
}

// NewItem creates a validated production item. The allergen alerts must be a
// subset of the pinned recipe's allergens, supplied as recipeAllergens; an
// alert the recipe does not declare is rejected.
func NewItem(
	id kernel.UUID,
	recipeID kernel.UUID,
	recipeVersion int,
	productID kernel.UUID,
	quantity int,
	modifications []string,
	allergens []string,
	recipeAllergens []string,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setRecipeID(recipeID),
		item.setRecipeVersion(recipeVersion),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setAllergens(allergens, recipeAllergens),
	); err != nil {
		return Item{}, err
	}

	item.modifications = modifications
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID         { return i.id }
func (i Item) RecipeID() kernel.UUID   { return i.recipeID }
func (i Item) RecipeVersion() int      { return i.recipeVersion }
func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) Modifications() []string { return i.modifications }
func (i Item) Allergens() []string     { return i.allergens }

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setRecipeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipeID", err)
	}
	i.recipeID = id
	return nil
}

func (i *Item) setRecipeVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("recipe version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	i.recipeVersion = version
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setAllergens(allergens []string, recipeAllergens []string) error {
	declared := make(map[string]struct{}, len(recipeAllergens))
	for _, a := range recipeAllergens {
		declared[a] = struct{}{}
	}
	for _, alert := range allergens {
		if _, ok := declared[alert]; !ok {
			return errs.NewValueIsInvalidErrorWithCause("allergens",
				fmt.Errorf("%q is not an allergen of the pinned recipe", alert))
		}
	}
	i.allergens = allergens
	return nil
}
