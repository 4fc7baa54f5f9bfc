// Package kitchenorderrepo provides data transfer objects and mapping
// functions for kitchen order persistence. The aggregate spans three tables:
// the order row, its item rows, and the append-only status log.
package kitchenorderrepo

import (
	"time"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"

	"github.com/google/uuid"
)

// KitchenOrderDTO represents the database structure for persisting kitchen
// order aggregates. The contract_id column is unique because every production
// contract derives exactly one kitchen order.
type KitchenOrderDTO struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ContractID          uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	TenantID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderID             uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status              int               `gorm:"type:int;not null;index"`
	Priority            string            `gorm:"type:varchar(16);not null"`
	EstimatedStart      time.Time         `gorm:"not null"`
	EstimatedCompletion time.Time         `gorm:"not null"`
	ActualStart         *time.Time        `gorm:""`
	ActualCompletion    *time.Time        `gorm:""`
	Items               []KitchenItemDTO  `gorm:"foreignKey:KitchenOrderID;constraint:OnDelete:CASCADE"`
	StatusLog           []StatusChangeDTO `gorm:"foreignKey:KitchenOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for kitchen order entities.
func (KitchenOrderDTO) TableName() string {
	return "kitchen_orders"
}

// KitchenItemDTO represents one preparation item row. String lists are small
// and read back whole, so they are stored as JSON rather than join tables.
type KitchenItemDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	KitchenOrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductionItemID  uuid.UUID  `gorm:"type:uuid;not null"`
	RecipeID          uuid.UUID  `gorm:"type:uuid;not null"`
	RecipeVersion     int        `gorm:"type:int;not null"`
	ProductID         uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity          int        `gorm:"type:int;not null"`
	Modifications     []string   `gorm:"serializer:json;type:jsonb"`
	Allergens         []string   `gorm:"serializer:json;type:jsonb"`
	StationType       string     `gorm:"type:varchar(32);not null"`
	RequiredEquipment []string   `gorm:"serializer:json;type:jsonb"`
	RequiredSkills    []string   `gorm:"serializer:json;type:jsonb"`
	AssignedStationID *uuid.UUID `gorm:"type:uuid;index"`
	Status            int        `gorm:"type:int;not null"`
	EstimatedMinutes  int        `gorm:"type:int;not null"`
	ActualMinutes     *int       `gorm:"type:int"`
}

// TableName specifies the database table name for kitchen item entities.
func (KitchenItemDTO) TableName() string {
	return "kitchen_items"
}

// StatusChangeDTO represents one status log entry. The sequence number within
// the order forms part of the primary key, so re-saving the aggregate upserts
// existing entries instead of duplicating them.
type StatusChangeDTO struct {
	KitchenOrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq                  int       `gorm:"type:int;primaryKey"`
	FromStatus           int       `gorm:"type:int;not null"`
	ToStatus             int       `gorm:"type:int;not null"`
	Actor                string    `gorm:"type:varchar(255);not null"`
	At                   time.Time `gorm:"not null"`
	DelayEstimateMinutes *int      `gorm:"type:int"`
}

// TableName specifies the database table name for status log entries.
func (StatusChangeDTO) TableName() string {
	return "kitchen_order_status_log"
}

// fromDomain converts a kitchen order aggregate to its database representation.
func fromDomain(ko *kitchenorder.KitchenOrder) KitchenOrderDTO {
	orderID := ko.ID().Bytes()

	items := make([]KitchenItemDTO, 0, len(ko.Items()))
	for _, item := range ko.Items() {
		var stationID *uuid.UUID
		if item.AssignedStationID() != nil {
			raw := item.AssignedStationID().Bytes()
			stationID = &raw
		}

		items = append(items, KitchenItemDTO{
			ID:                item.ID().Bytes(),
			KitchenOrderID:    orderID,
			ProductionItemID:  item.ProductionItemID().Bytes(),
			RecipeID:          item.RecipeID().Bytes(),
			RecipeVersion:     item.RecipeVersion(),
			ProductID:         item.ProductID().Bytes(),
			Quantity:          item.Quantity(),
			Modifications:     item.Modifications(),
			Allergens:         item.Allergens(),
			StationType:       string(item.StationType()),
			RequiredEquipment: item.RequiredEquipment(),
			RequiredSkills:    item.RequiredSkills(),
			AssignedStationID: stationID,
			Status:            int(item.Status()),
			EstimatedMinutes:  item.EstimatedMinutes(),
			ActualMinutes:     item.ActualMinutes(),
		})
	}

	statusLog := make([]StatusChangeDTO, 0, len(ko.StatusLog()))
	for seq, change := range ko.StatusLog() {
		statusLog = append(statusLog, StatusChangeDTO{
			KitchenOrderID:       orderID,
			Seq:                  seq,
			FromStatus:           int(change.From),
			ToStatus:             int(change.To),
			Actor:                change.Actor,
			At:                   change.At,
			DelayEstimateMinutes: change.DelayEstimateMinutes,
		})
	}

	return KitchenOrderDTO{
		ID:                  orderID,
		ContractID:          ko.ContractID().Bytes(),
		TenantID:            ko.TenantID().Bytes(),
		OrderID:             ko.OrderID().Bytes(),
		Status:              int(ko.Status()),
		Priority:            string(ko.Priority()),
		EstimatedStart:      ko.EstimatedStart(),
		EstimatedCompletion: ko.EstimatedCompletion(),
		ActualStart:         ko.ActualStart(),
		ActualCompletion:    ko.ActualCompletion(),
		Items:               items,
		StatusLog:           statusLog,
	}
}

// toDomain converts a database DTO back into a kitchen order aggregate.
func toDomain(dto KitchenOrderDTO) (*kitchenorder.KitchenOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	contractID, err := kernel.UUIDFromBytes(dto.ContractID[:])
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

	items := make([]*kitchenorder.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	statusLog := make([]kitchenorder.StatusChange, 0, len(dto.StatusLog))
	for _, changeDto := range dto.StatusLog {
		statusLog = append(statusLog, kitchenorder.StatusChange{
			From:                 kitchenorder.Status(changeDto.FromStatus),
			To:                   kitchenorder.Status(changeDto.ToStatus),
			Actor:                changeDto.Actor,
			At:                   changeDto.At,
			DelayEstimateMinutes: changeDto.DelayEstimateMinutes,
		})
	}

	return kitchenorder.RestoreKitchenOrder(
		id,
		contractID,
		tenantID,
		orderID,
		items,
		kitchenorder.Status(dto.Status),
		contract.Priority(dto.Priority),
		dto.EstimatedStart,
		dto.EstimatedCompletion,
		dto.ActualStart,
		dto.ActualCompletion,
		statusLog,
	)
}

func itemToDomain(dto KitchenItemDTO) (*kitchenorder.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productionItemID, err := kernel.UUIDFromBytes(dto.ProductionItemID[:])
	if err != nil {
		return nil, err
	}
	recipeID, err := kernel.UUIDFromBytes(dto.RecipeID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var stationID *kernel.UUID
	if dto.AssignedStationID != nil {
		sID, stationErr := kernel.UUIDFromBytes((*dto.AssignedStationID)[:])
		if stationErr != nil {
			return nil, stationErr
		}
		stationID = &sID
	}

	return kitchenorder.RestoreItem(
		id,
		productionItemID,
		recipeID,
		dto.RecipeVersion,
		productID,
		dto.Quantity,
		dto.Modifications,
		dto.Allergens,
		station.Type(dto.StationType),
		dto.RequiredEquipment,
		dto.RequiredSkills,
		stationID,
		kitchenorder.ItemStatus(dto.Status),
		dto.EstimatedMinutes,
		dto.ActualMinutes,
	)
}
