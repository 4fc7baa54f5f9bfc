package kitchenorder

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one production task inside a kitchen order. Every item traces back
// to exactly one production item of the source contract, and carries the
// station requirements derived from its pinned recipe so the assignment engine
// does not need to re-resolve the recipe per scoring pass.
type Item struct {
	id                kernel.UUID
	productionItemID  kernel.UUID
	recipeID          kernel.UUID
	recipeVersion     int
	productID         kernel.UUID
	quantity          int
	modifications     []string
	allergens         []string
	stationType       station.Type
	requiredEquipment []string
	requiredSkills    []string
	assignedStationID *kernel.UUID
	status            ItemStatus
	estimatedMinutes  int
	actualMinutes     *int
	guard             guard.ConstructorGuard
}

// NewItem creates a pending, unassigned kitchen order item.
func NewItem(
	id kernel.UUID,
	productionItemID kernel.UUID,
	recipeID kernel.UUID,
	recipeVersion int,
	productID kernel.UUID,
	quantity int,
	modifications []string,
	allergens []string,
	stationType station.Type,
	requiredEquipment []string,
	requiredSkills []string,
	estimatedMinutes int,
) (*Item, error) {
	item := &Item{
		status: ItemStatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductionItemID(productionItemID),
		item.setRecipeID(recipeID),
		item.setRecipeVersion(recipeVersion),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setStationType(stationType),
		item.setEstimatedMinutes(estimatedMinutes),
	); err != nil {
		return nil, err
	}

	item.modifications = modifications
	item.allergens = allergens
	item.requiredEquipment = requiredEquipment
	item.requiredSkills = requiredSkills
	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
func RestoreItem(
	id kernel.UUID,
	productionItemID kernel.UUID,
	recipeID kernel.UUID,
	recipeVersion int,
	productID kernel.UUID,
	quantity int,
	modifications []string,
	allergens []string,
	stationType station.Type,
	requiredEquipment []string,
	requiredSkills []string,
	assignedStationID *kernel.UUID,
	status ItemStatus,
	estimatedMinutes int,
	actualMinutes *int,
) (*Item, error) {
	item, err := NewItem(id, productionItemID, recipeID, recipeVersion, productID,
		quantity, modifications, allergens, stationType, requiredEquipment,
		requiredSkills, estimatedMinutes)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if assignedStationID != nil {
		if err := assignedStationID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("assignedStationID", err)
		}
	}

	item.status = status
	item.assignedStationID = assignedStationID
	item.actualMinutes = actualMinutes
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID                 { return i.id }
func (i *Item) ProductionItemID() kernel.UUID   { return i.productionItemID }
func (i *Item) RecipeID() kernel.UUID           { return i.recipeID }
func (i *Item) RecipeVersion() int              { return i.recipeVersion }
func (i *Item) ProductID() kernel.UUID          { return i.productID }
func (i *Item) Quantity() int                   { return i.quantity }
func (i *Item) Modifications() []string         { return i.modifications }
func (i *Item) Allergens() []string             { return i.allergens }
func (i *Item) StationType() station.Type       { return i.stationType }
func (i *Item) RequiredEquipment() []string     { return i.requiredEquipment }
func (i *Item) RequiredSkills() []string        { return i.requiredSkills }
func (i *Item) AssignedStationID() *kernel.UUID { return i.assignedStationID }
func (i *Item) Status() ItemStatus              { return i.status }
func (i *Item) EstimatedMinutes() int           { return i.estimatedMinutes }
func (i *Item) ActualMinutes() *int             { return i.actualMinutes }

// Assign records an accepted station assignment, moving the item to assigned.
func (i *Item) Assign(stationID kernel.UUID) error {
	if err := stationID.Validate(); err != nil {
		return err
	}
	if !i.status.CanTransitionTo(ItemStatusAssigned) {
		return &ItemTransitionError{ItemID: i.id.String(), From: i.status, To: ItemStatusAssigned}
	}

	i.status = ItemStatusAssigned
	i.assignedStationID = &stationID
	return nil
}

// Unassign returns the item to the pending pool, clearing its station.
func (i *Item) Unassign() error {
	if !i.status.CanTransitionTo(ItemStatusPending) {
		return &ItemTransitionError{ItemID: i.id.String(), From: i.status, To: ItemStatusPending}
	}

	i.status = ItemStatusPending
	i.assignedStationID = nil
	return nil
}

// ChangeStatus applies an item-level transition through the item table.
func (i *Item) ChangeStatus(target ItemStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !i.status.CanTransitionTo(target) {
		return &ItemTransitionError{ItemID: i.id.String(), From: i.status, To: target}
	}

	i.status = target
	return nil
}

// RecordActualMinutes stamps the measured preparation duration.
func (i *Item) RecordActualMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("actualMinutes",
			fmt.Errorf("%d is negative", minutes))
	}
	i.actualMinutes = &minutes
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductionItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productionItemID", err)
	}
	i.productionItemID = id
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

func (i *Item) setStationType(t station.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	i.stationType = t
	return nil
}

func (i *Item) setEstimatedMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedMinutes",
			fmt.Errorf("%d is negative", minutes))
	}
	i.estimatedMinutes = minutes
	return nil
}
