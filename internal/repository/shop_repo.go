package repository

import (
	"go-tailorshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(shop *model.Shop) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Shop, error)
	FindByCode(code string) (*model.Shop, error)
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db}
}

func (r *shopRepo) Create(shop *model.Shop) error {
	return r.db.Create(shop).Error
}

// Delete removes a shop outright. Only used to roll back a registration
// whose admin account could not be created.
func (r *shopRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Shop{}, "id = ?", id).Error
}

func (r *shopRepo) FindByID(id uuid.UUID) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) FindByCode(code string) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, "shop_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}
