package repository

import (
	"go-tailorshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	FindAll(shopID uuid.UUID) ([]model.InventoryItem, error)
	FindByID(shopID, id uuid.UUID) (*model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	Delete(shopID, id uuid.UUID) error
	// AdjustQuantity applies an atomic counter update, clamped at zero, and
	// returns the item after the change.
	AdjustQuantity(shopID, id uuid.UUID, delta int) (*model.InventoryItem, error)
	FindLowStock(shopID uuid.UUID) ([]model.InventoryItem, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) FindAll(shopID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("shop_id = ?", shopID).Order("item_name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(shopID, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.Where("shop_id = ?", shopID).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Omit("Shop").Save(item).Error
}

func (r *inventoryRepo) Delete(shopID, id uuid.UUID) error {
	res := r.db.Where("shop_id = ?", shopID).Delete(&model.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustQuantity runs as a single UPDATE so concurrent stock changes cannot
// lose increments. GREATEST keeps a large decrement from going negative.
func (r *inventoryRepo) AdjustQuantity(shopID, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	res := r.db.Model(&model.InventoryItem{}).
		Where("shop_id = ? AND id = ?", shopID, id).
		Update("quantity", gorm.Expr("GREATEST(quantity + ?, 0)", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(shopID, id)
}

func (r *inventoryRepo) FindLowStock(shopID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("shop_id = ? AND quantity <= low_stock_threshold", shopID).
		Order("item_name ASC").
		Find(&items).Error
	return items, err
}
