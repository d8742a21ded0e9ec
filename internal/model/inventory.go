package model

import (
	"time"

	"github.com/google/uuid"
)

// StockUnit is the unit an inventory item is counted in.
type StockUnit string

const (
	UnitPieces StockUnit = "pieces"
	UnitBoxes  StockUnit = "boxes"
	UnitMeters StockUnit = "meters"
)

// InventoryItem is a stocked material. Item names are unique within a shop.
type InventoryItem struct {
	BaseModel
	ItemName          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_inventory_name_shop" json:"item_name" validate:"required"`
	ShopID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_name_shop;index" json:"shop_id" validate:"uuid_required"`
	Shop              *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty" validate:"-"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Unit              StockUnit `gorm:"type:varchar(10);not null" json:"unit" validate:"required,oneof=pieces boxes meters"`
	LowStockThreshold int       `gorm:"not null;default:10" json:"low_stock_threshold" validate:"gte=0"`
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// InventoryItemResponse adds the derived low-stock flag to the API shape.
type InventoryItemResponse struct {
	ID                uuid.UUID `json:"id"`
	ItemName          string    `json:"item_name"`
	Quantity          int       `json:"quantity"`
	Unit              StockUnit `json:"unit"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (i *InventoryItem) ToResponse() InventoryItemResponse {
	return InventoryItemResponse{
		ID:                i.ID,
		ItemName:          i.ItemName,
		Quantity:          i.Quantity,
		Unit:              i.Unit,
		LowStockThreshold: i.LowStockThreshold,
		IsLowStock:        i.IsLowStock(),
		UpdatedAt:         i.UpdatedAt,
	}
}
