// Package refdatarepo reads the reference data replicated from the Recipe,
// Inventory and Ordering collaborators. The kitchen core only consumes these
// rows; nothing here exposes a write path.
package refdatarepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"

	"github.com/google/uuid"
)

// RecipeDTO represents one versioned recipe row. Recipes are keyed by
// (id, version) so a contract's pinned version stays resolvable after edits.
type RecipeDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Version           int             `gorm:"type:int;primaryKey"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(255);not null"`
	PrepMinutes       int             `gorm:"type:int;not null"`
	CookMinutes       int             `gorm:"type:int;not null"`
	Allergens         []string        `gorm:"serializer:json;type:jsonb"`
	StationType       string          `gorm:"type:varchar(32);not null"`
	RequiredEquipment []string        `gorm:"serializer:json;type:jsonb"`
	RequiredSkills    []string        `gorm:"serializer:json;type:jsonb"`
	Ingredients       []IngredientDTO `gorm:"foreignKey:RecipeID,RecipeVersion;references:ID,Version;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for recipe rows.
func (RecipeDTO) TableName() string {
	return "recipes"
}

// IngredientDTO represents one bill-of-materials line of a recipe version.
type IngredientDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeVersion int       `gorm:"type:int;primaryKey"`
	IngredientID  uuid.UUID `gorm:"type:uuid;not null"`
	Name          string    `gorm:"type:varchar(255);not null"`
	QuantityPer   float64   `gorm:"type:decimal(12,4);not null"`
	Unit          string    `gorm:"type:varchar(32)"`
	Optional      bool      `gorm:"not null"`
}

// TableName specifies the database table name for recipe ingredient rows.
func (IngredientDTO) TableName() string {
	return "recipe_ingredients"
}

// StockDTO represents the inventory collaborator's stock snapshot for one
// ingredient within a tenant.
type StockDTO struct {
	TenantID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Available    float64    `gorm:"type:decimal(12,4);not null"`
	Unit         string     `gorm:"type:varchar(32)"`
	ExpiresAt    *time.Time `gorm:""`
}

// TableName specifies the database table name for stock rows.
func (StockDTO) TableName() string {
	return "ingredient_stock"
}

// SourceOrderDTO represents the Ordering collaborator's view of a commercial
// order, used by the order-sync consistency check.
type SourceOrderDTO struct {
	ID       uuid.UUID            `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status   string               `gorm:"type:varchar(32);not null"`
	Lines    []SourceOrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for source order rows.
func (SourceOrderDTO) TableName() string {
	return "source_orders"
}

// SourceOrderLineDTO represents one commercial order line.
type SourceOrderLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for source order line rows.
func (SourceOrderLineDTO) TableName() string {
	return "source_order_lines"
}

// recipeToDomain converts a recipe row to its read model.
func recipeToDomain(dto RecipeDTO) (recipe.Recipe, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return recipe.Recipe{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return recipe.Recipe{}, err
	}

	ingredients := make([]recipe.Ingredient, 0, len(dto.Ingredients))
	for _, line := range dto.Ingredients {
		ingredientID, err := kernel.UUIDFromBytes(line.IngredientID[:])
		if err != nil {
			return recipe.Recipe{}, err
		}
		ingredients = append(ingredients, recipe.Ingredient{
			ID:          ingredientID,
			Name:        line.Name,
			QuantityPer: line.QuantityPer,
			Unit:        line.Unit,
			Optional:    line.Optional,
		})
	}

	return recipe.Recipe{
		ID:                id,
		Version:           dto.Version,
		ProductID:         productID,
		Name:              dto.Name,
		PrepMinutes:       dto.PrepMinutes,
		CookMinutes:       dto.CookMinutes,
		Allergens:         dto.Allergens,
		StationType:       station.Type(dto.StationType),
		RequiredEquipment: dto.RequiredEquipment,
		RequiredSkills:    dto.RequiredSkills,
		Ingredients:       ingredients,
	}, nil
}

// stockToDomain converts a stock row to its read model.
func stockToDomain(dto StockDTO) (recipe.StockLevel, error) {
	ingredientID, err := kernel.UUIDFromBytes(dto.IngredientID[:])
	if err != nil {
		return recipe.StockLevel{}, err
	}

	return recipe.StockLevel{
		IngredientID: ingredientID,
		Available:    dto.Available,
		Unit:         dto.Unit,
		ExpiresAt:    dto.ExpiresAt,
	}, nil
}

// sourceOrderToDomain converts a source order row to its validation snapshot.
func sourceOrderToDomain(dto SourceOrderDTO) (*services.SourceOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]services.SourceLine, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		productID, err := kernel.UUIDFromBytes(line.ProductID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, services.SourceLine{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	return &services.SourceOrder{
		ID:       id,
		TenantID: tenantID,
		Status:   dto.Status,
		Lines:    lines,
	}, nil
}
