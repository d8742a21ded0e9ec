package repository

import (
	"go-tailorshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffRepository is shop-scoped on every lookup so a staff record can never
// be read or mutated across tenants.
type StaffRepository interface {
	Create(staff *model.Staff) error
	FindByUsername(shopID uuid.UUID, role model.Role, username string) (*model.Staff, error)
	FindByID(shopID, id uuid.UUID) (*model.Staff, error)
	FindByRole(shopID uuid.UUID, role model.Role) ([]model.Staff, error)
	Delete(shopID, id uuid.UUID, role model.Role) error
	UpdatePassword(staffID uuid.UUID, hashedPassword string) error
}

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db}
}

func (r *staffRepo) Create(staff *model.Staff) error {
	return r.db.Create(staff).Error
}

func (r *staffRepo) FindByUsername(shopID uuid.UUID, role model.Role, username string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Where("shop_id = ? AND role = ? AND username = ?", shopID, role, username).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) FindByID(shopID, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.Where("shop_id = ?", shopID).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) FindByRole(shopID uuid.UUID, role model.Role) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.Where("shop_id = ? AND role = ?", shopID, role).
		Order("name ASC, username ASC").
		Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Delete(shopID, id uuid.UUID, role model.Role) error {
	res := r.db.Where("shop_id = ? AND role = ?", shopID, role).Delete(&model.Staff{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *staffRepo) UpdatePassword(staffID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Staff{}).Where("id = ?", staffID).
		Update("password_hash", hashedPassword).Error
}
