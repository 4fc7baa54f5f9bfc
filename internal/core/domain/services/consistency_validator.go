package services

import (
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/model/station"
)

// Check names one of the validator's independent passes.
type Check string

const (
	CheckOrderSync              Check = "order_sync"
	CheckItemRecipe             Check = "item_recipe"
	CheckStationAssignment      Check = "station_assignment"
	CheckIngredientAvailability Check = "ingredient_availability"
	CheckTimingSanity           Check = "timing_sanity"
)

// Finding is one validation observation, attributed to the check that made it.
type Finding struct {
	Check   Check
	Message string
}

// ValidationReport accumulates findings from one or more checks.
// Errors block the triggering operation; warnings are surfaced but never block.
type ValidationReport struct {
	Errors   []Finding
	Warnings []Finding
}

// IsValid reports whether the checked data passed without blocking findings.
// Warnings alone never invalidate.
func (r ValidationReport) IsValid() bool {
	return len(r.Errors) == 0
}

// Merge folds another report's findings into this one.
func (r *ValidationReport) Merge(other ValidationReport) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func (r *ValidationReport) addError(check Check, format string, args ...any) {
	r.Errors = append(r.Errors, Finding{Check: check, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationReport) addWarning(check Check, format string, args ...any) {
	r.Warnings = append(r.Warnings, Finding{Check: check, Message: fmt.Sprintf(format, args...)})
}

// RecipeRef keys a pinned recipe version.
type RecipeRef struct {
	RecipeID string
	Version  int
}

// RecipeSet is the resolved recipe snapshot the validator checks against.
type RecipeSet map[RecipeRef]recipe.Recipe

// Ref builds the key for a pinned (id, version) pair.
func Ref(recipeID kernel.UUID, version int) RecipeRef {
	return RecipeRef{RecipeID: recipeID.String(), Version: version}
}

// SourceOrder is the Ordering collaborator's snapshot of the commercial order,
// carried into validation as plain data. The validator reads it; nothing in
// this core ever writes commercial state.
type SourceOrder struct {
	ID       kernel.UUID
	TenantID kernel.UUID
	Status   string
	Lines    []SourceLine
}

// SourceLine is one commercial order line as the Ordering domain reports it.
type SourceLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// ValidationInput bundles the snapshots one combined validation runs against.
// Every field is read-only data; the validator performs no I/O.
type ValidationInput struct {
	Order    *kitchenorder.KitchenOrder
	Contract *contract.Contract
	Source   *SourceOrder
	Recipes  RecipeSet
	Stations []*station.Station
	Stock    []recipe.StockLevel
	Now      time.Time
}

// ConsistencyValidator cross-checks a kitchen order against its contract, the
// source commercial order, resolved recipes, station state, and inventory.
// Every check is a pure function over snapshots, independently callable and
// composable into one combined report.
type ConsistencyValidator struct{}

// NewConsistencyValidator creates the validator. It is stateless.
func NewConsistencyValidator() ConsistencyValidator {
	return ConsistencyValidator{}
}

// ValidateKitchenOrder runs every check the input carries data for and returns
// the union of findings. Checks whose snapshot is absent are skipped rather
// than failed, so an audit can run with whatever data is on hand.
func (v ConsistencyValidator) ValidateKitchenOrder(in ValidationInput) ValidationReport {
	var report ValidationReport

	if in.Source != nil {
		report.Merge(v.ValidateOrderSync(in.Order, in.Source))
	}
	if in.Recipes != nil {
		report.Merge(v.ValidateItemsAgainstRecipes(in.Order, in.Recipes))
		report.Merge(v.ValidateIngredientAvailability(in.Order, in.Recipes, in.Stock, in.Now))
	}
	if in.Stations != nil {
		report.Merge(v.ValidateStationAssignments(in.Order, in.Stations))
	}
	report.Merge(v.ValidateTiming(in.Order, in.Now))

	return report
}

// ValidateOrderSync checks that the kitchen order still mirrors its source
// commercial order: identity, tenancy, line counts, per-line product and
// quantity. The order-level status is compared through the advisory mapping;
// because that mapping is lossy, a status divergence is a warning rather than
// a blocking error.
func (v ConsistencyValidator) ValidateOrderSync(order *kitchenorder.KitchenOrder, source *SourceOrder) ValidationReport {
	var report ValidationReport

	if !order.OrderID().IsEqual(source.ID) {
		report.addError(CheckOrderSync, "kitchen order references order %s but source is %s", order.OrderID(), source.ID)
	}
	if !order.TenantID().IsEqual(source.TenantID) {
		report.addError(CheckOrderSync, "tenant mismatch: kitchen order %s vs source %s", order.TenantID(), source.TenantID)
	}

	items := order.Items()
	if len(items) != len(source.Lines) {
		report.addError(CheckOrderSync, "item count %d does not match source line count %d", len(items), len(source.Lines))
		return report
	}

	// Multiset match on (product, quantity): the source lines and kitchen
	// items must pair up one to one.
	unmatched := make([]SourceLine, len(source.Lines))
	copy(unmatched, source.Lines)
	for _, item := range items {
		found := false
		for i, line := range unmatched {
			if item.ProductID().IsEqual(line.ProductID) && item.Quantity() == line.Quantity {
				unmatched = append(unmatched[:i], unmatched[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			report.addError(CheckOrderSync, "item %s (product %s x%d) has no matching source line",
				item.ID(), item.ProductID(), item.Quantity())
		}
	}

	if mapped := order.Status().CommercialStatus(); source.Status != "" && string(mapped) != source.Status {
		report.addWarning(CheckOrderSync, "kitchen status %s maps to commercial %q but source reports %q",
			order.Status(), mapped, source.Status)
	}

	return report
}

// ValidateItemsAgainstRecipes checks every item against its pinned recipe:
// the item's product must be the recipe's target product, and every allergen
// on the item must appear in the recipe. An allergen the recipe does not
// declare is an error: the item claims a hazard with no recipe basis.
// An estimate outside [0.5x, 2x] of the recipe's combined time is flagged but
// does not invalidate, since estimates are planning data, not safety data.
func (v ConsistencyValidator) ValidateItemsAgainstRecipes(order *kitchenorder.KitchenOrder, recipes RecipeSet) ValidationReport {
	var report ValidationReport

	for _, item := range order.Items() {
		rec, ok := recipes[Ref(item.RecipeID(), item.RecipeVersion())]
		if !ok {
			report.addError(CheckItemRecipe, "item %s pins recipe %s v%d which is not resolvable",
				item.ID(), item.RecipeID(), item.RecipeVersion())
			continue
		}

		if !item.ProductID().IsEqual(rec.ProductID) {
			report.addError(CheckItemRecipe, "item %s product %s does not match recipe %s target product %s",
				item.ID(), item.ProductID(), rec.ID, rec.ProductID)
		}

		combined := rec.CombinedMinutes()
		if combined > 0 {
			est := float64(item.EstimatedMinutes())
			if est < 0.5*float64(combined) || est > 2*float64(combined) {
				report.addWarning(CheckItemRecipe, "item %s estimate %dm is outside [%.0fm, %dm] for recipe %s",
					item.ID(), item.EstimatedMinutes(), 0.5*float64(combined), 2*combined, rec.Name)
			}
		}

		for _, allergen := range item.Allergens() {
			if !rec.HasAllergen(allergen) {
				report.addError(CheckItemRecipe, "item %s declares allergen %q not present in recipe %s",
					item.ID(), allergen, rec.Name)
			}
		}
	}

	return report
}

// ValidateStationAssignments checks accepted assignments against the current
// station roster: per-station assignment counts must fit capacity, stations in
// maintenance or offline must hold no assignments, and each assigned station
// must declare the specializations its items require.
func (v ConsistencyValidator) ValidateStationAssignments(order *kitchenorder.KitchenOrder, stations []*station.Station) ValidationReport {
	var report ValidationReport

	byID := make(map[string]*station.Station, len(stations))
	for _, s := range stations {
		byID[s.ID().String()] = s
	}

	assigned := make(map[string]int)
	for _, item := range order.Items() {
		stationID := item.AssignedStationID()
		if stationID == nil {
			continue
		}

		s, ok := byID[stationID.String()]
		if !ok {
			report.addError(CheckStationAssignment, "item %s is assigned to unknown station %s", item.ID(), stationID)
			continue
		}
		assigned[stationID.String()]++

		if !s.IsAssignable() {
			report.addError(CheckStationAssignment, "item %s is assigned to station %s which is %s",
				item.ID(), s.Name(), s.Status())
		}
		for _, skill := range item.RequiredSkills() {
			if !s.HasSpecialization(skill) {
				report.addError(CheckStationAssignment, "item %s requires %q which station %s does not declare",
					item.ID(), skill, s.Name())
			}
		}
	}

	for id, count := range assigned {
		if s := byID[id]; s != nil && count > s.Capacity() {
			report.addError(CheckStationAssignment, "station %s holds %d assignments over capacity %d",
				s.Name(), count, s.Capacity())
		}
	}

	return report
}

// ValidateIngredientAvailability scales each recipe ingredient by the item
// quantities still to be produced and checks it against current stock.
// A shortfall on a required ingredient is an error; on an optional ingredient
// it is only a warning. Expired stock is always an error regardless of amount.
func (v ConsistencyValidator) ValidateIngredientAvailability(
	order *kitchenorder.KitchenOrder,
	recipes RecipeSet,
	stock []recipe.StockLevel,
	now time.Time,
) ValidationReport {
	var report ValidationReport

	available := make(map[string]recipe.StockLevel, len(stock))
	for _, level := range stock {
		available[level.IngredientID.String()] = level
	}

	type demand struct {
		name     string
		required float64
		optional bool
	}
	demands := make(map[string]*demand)

	for _, item := range order.Items() {
		if item.Status() == kitchenorder.ItemStatusCompleted {
			continue
		}
		rec, ok := recipes[Ref(item.RecipeID(), item.RecipeVersion())]
		if !ok {
			continue
		}
		for _, ing := range rec.Ingredients {
			key := ing.ID.String()
			if demands[key] == nil {
				demands[key] = &demand{name: ing.Name, optional: ing.Optional}
			}
			demands[key].required += ing.RequiredFor(item.Quantity())
			demands[key].optional = demands[key].optional && ing.Optional
		}
	}

	for key, d := range demands {
		level, ok := available[key]
		if ok && level.IsExpired(now) {
			report.addError(CheckIngredientAvailability, "ingredient %s stock expired on %s",
				d.name, level.ExpiresAt.Format("2006-01-02"))
			continue
		}

		have := 0.0
		if ok {
			have = level.Available
		}
		if have >= d.required {
			continue
		}

		if d.optional {
			report.addWarning(CheckIngredientAvailability, "optional ingredient %s short: need %.2f, have %.2f",
				d.name, d.required, have)
		} else {
			report.addError(CheckIngredientAvailability, "ingredient %s short: need %.2f, have %.2f",
				d.name, d.required, have)
		}
	}

	return report
}

// ValidateTiming sanity-checks the order's time fields. Running late is normal
// kitchen life, so a passed estimate on an active order is a warning, not a
// block. Recorded actuals must be ordered, and an actual duration beyond 3x
// the estimate is flagged for review.
func (v ConsistencyValidator) ValidateTiming(order *kitchenorder.KitchenOrder, now time.Time) ValidationReport {
	var report ValidationReport

	if !order.IsTerminal() && order.EstimatedCompletion().Before(now) {
		report.addWarning(CheckTimingSanity, "estimated completion %s is in the past",
			order.EstimatedCompletion().Format(time.RFC3339))
	}

	start, completion := order.ActualStart(), order.ActualCompletion()
	if start != nil && completion != nil {
		if !start.Before(*completion) {
			report.addError(CheckTimingSanity, "actual start %s is not before actual completion %s",
				start.Format(time.RFC3339), completion.Format(time.RFC3339))
			return report
		}

		actual := completion.Sub(*start)
		estimated := order.EstimatedCompletion().Sub(order.EstimatedStart())
		if estimated > 0 && actual > 3*estimated {
			report.addWarning(CheckTimingSanity, "actual duration %s exceeds 3x the estimated %s",
				actual.Round(time.Minute), estimated.Round(time.Minute))
		}
	}

	return report
}
