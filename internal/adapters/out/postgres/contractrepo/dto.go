// Package contractrepo provides data transfer objects and mapping functions
// for production contract persistence. Contracts are immutable snapshots, so
// the repository exposes no update path; corrections arrive as new contracts
// under new identifiers.
package contractrepo

import (
	"time"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ContractDTO represents the database structure for persisting production
// contracts. The (order_id, version) pair is unique so a redelivered order
// confirmation can never mint a second contract for the same order version.
type ContractDTO struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderID             uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_contracts_order_version"`
	OrderVersion        int               `gorm:"type:int;not null;uniqueIndex:idx_contracts_order_version"`
	Priority            string            `gorm:"type:varchar(16);not null"`
	SpecialInstructions string            `gorm:"type:text"`
	EstimatedCompletion time.Time         `gorm:"not null"`
	CreatedAt           time.Time         `gorm:"not null"`
	Items               []ContractItemDTO `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for contract entities.
func (ContractDTO) TableName() string {
	return "contracts"
}

// ContractItemDTO represents one production item row within a contract.
// Modifications and allergens are small string lists, stored as JSON.
type ContractItemDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipeID      uuid.UUID `gorm:"type:uuid;not null"`
	RecipeVersion int       `gorm:"type:int;not null"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	Quantity      int       `gorm:"type:int;not null"`
	Modifications []string  `gorm:"serializer:json;type:jsonb"`
	Allergens     []string  `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for contract item entities.
func (ContractItemDTO) TableName() string {
	return "contract_items"
}

// fromDomain converts a contract aggregate to its database representation.
func fromDomain(c *contract.Contract) ContractDTO {
	contractID := c.ID().Bytes()
	items := make([]ContractItemDTO, 0, len(c.Items()))

	for _, item := range c.Items() {
		items = append(items, ContractItemDTO{
			ID:            item.ID().Bytes(),
			ContractID:    contractID,
			RecipeID:      item.RecipeID().Bytes(),
			RecipeVersion: item.RecipeVersion(),
			ProductID:     item.ProductID().Bytes(),
			Quantity:      item.Quantity(),
			Modifications: item.Modifications(),
			Allergens:     item.Allergens(),
		})
	}

	return ContractDTO{
		ID:                  contractID,
		TenantID:            c.TenantID().Bytes(),
		OrderID:             c.OrderID().Bytes(),
		OrderVersion:        c.Version(),
		Priority:            string(c.Priority()),
		SpecialInstructions: c.SpecialInstructions(),
		EstimatedCompletion: c.EstimatedCompletion(),
		CreatedAt:           c.CreatedAt(),
		Items:               items,
	}
}

// toDomain converts a database DTO back into a contract aggregate.
func toDomain(dto ContractDTO) (*contract.Contract, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	items := make([]contract.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return contract.RestoreContract(
		id,
		tenantID,
		orderID,
		items,
		contract.Priority(dto.Priority),
		dto.SpecialInstructions,
		dto.EstimatedCompletion,
		dto.CreatedAt,
		dto.OrderVersion,
	)
}

func itemToDomain(dto ContractItemDTO) (contract.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return contract.Item{}, err
	}
	recipeID, err := kernel.UUIDFromBytes(dto.RecipeID[:])
	if err != nil {
		return contract.Item{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return contract.Item{}, err
	}

	// A stored alert list is the recipe allergen snapshot taken at generation,
	// so it serves as its own reference during restore.
	return contract.NewItem(id, recipeID, dto.RecipeVersion, productID,
		dto.Quantity, dto.Modifications, dto.Allergens, dto.Allergens)
}
