package refdatarepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	_ ports.RecipeProvider      = (*GormReferenceData)(nil)
	_ ports.InventoryProvider   = (*GormReferenceData)(nil)
	_ ports.SourceOrderProvider = (*GormReferenceData)(nil)
)

// GormReferenceData implements the reference-data provider ports over the
// replicated collaborator tables. Reads only; no aggregate tracking.
type GormReferenceData struct {
	db *gorm.DB
}

// NewGormReferenceData creates a provider over the given database.
func NewGormReferenceData(db *gorm.DB) *GormReferenceData {
	return &GormReferenceData{db: db}
}

// ResolveRecipe returns the recipe at exactly the pinned version.
func (p *GormReferenceData) ResolveRecipe(ctx context.Context, recipeID kernel.UUID, version int) (recipe.Recipe, error) {
	if err := recipeID.Validate(); err != nil {
		return recipe.Recipe{}, err
	}

	var dto RecipeDTO
	err := p.db.WithContext(ctx).
		Preload("Ingredients").
		First(&dto, "id = ? AND version = ?", recipeID.Bytes(), version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recipe.Recipe{}, errs.NewObjectNotFoundError("recipe", recipeID)
		}
		return recipe.Recipe{}, err
	}

	return recipeToDomain(dto)
}

// StockLevels returns the current stock for the given ingredients. Ingredients
// without a stock row are simply absent from the result.
func (p *GormReferenceData) StockLevels(
	ctx context.Context,
	tenantID kernel.UUID,
	ingredientIDs []kernel.UUID,
) ([]recipe.StockLevel, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(ingredientIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		ids = append(ids, id.Bytes())
	}

	var dtos []StockDTO
	err := p.db.WithContext(ctx).
		Where("tenant_id = ? AND ingredient_id IN ?", tenantID.Bytes(), ids).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	levels := make([]recipe.StockLevel, 0, len(dtos))
	for _, dto := range dtos {
		level, err := stockToDomain(dto)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, nil
}

// SourceOrder returns the commercial order snapshot, or nil when the
// Ordering collaborator no longer knows the order.
func (p *GormReferenceData) SourceOrder(ctx context.Context, orderID kernel.UUID) (*services.SourceOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto SourceOrderDTO
	err := p.db.WithContext(ctx).
		Preload("Lines").
		First(&dto, "id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return sourceOrderToDomain(dto)
}
