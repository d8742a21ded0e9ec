package repository

import (
	"strings"

	"go-tailorshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(shopID uuid.UUID, phoneSearch string) ([]model.Customer, error)
	FindByID(shopID, id uuid.UUID) (*model.Customer, error)
	FindByPhone(shopID uuid.UUID, phone string) (*model.Customer, error)
	// FindAllByPhone searches across shops, newest registration first. Used
	// by public order tracking where the caller knows no shop.
	FindAllByPhone(phone string) ([]model.Customer, error)
	Update(customer *model.Customer) error
	ReplaceMeasurements(customerID uuid.UUID, measurements []model.Measurement) error
	DeleteWithOrders(shopID, id uuid.UUID) error
	Count(shopID uuid.UUID) (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(shopID uuid.UUID, phoneSearch string) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.Preload("Measurements").Where("shop_id = ?", shopID)
	if digits := keepDigits(phoneSearch); digits != "" {
		q = q.Where("phone LIKE ?", "%"+digits+"%")
	}
	err := q.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(shopID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Preload("Measurements").Where("shop_id = ?", shopID).
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByPhone(shopID uuid.UUID, phone string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Where("shop_id = ? AND phone = ?", shopID, phone).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAllByPhone(phone string) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("phone = ?", phone).Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Omit("Measurements").Save(customer).Error
}

// ReplaceMeasurements swaps the customer's measurement list wholesale, which
// is how every measurement form submits.
func (r *customerRepo) ReplaceMeasurements(customerID uuid.UUID, measurements []model.Measurement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customerID).Delete(&model.Measurement{}).Error; err != nil {
			return err
		}
		if len(measurements) == 0 {
			return nil
		}
		for i := range measurements {
			measurements[i].ID = 0
			measurements[i].CustomerID = customerID
		}
		return tx.Create(&measurements).Error
	})
}

// DeleteWithOrders removes the customer and cascades to their orders, in one
// transaction.
func (r *customerRepo) DeleteWithOrders(shopID, id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("shop_id = ?", shopID).Delete(&model.Customer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("shop_id = ? AND customer_id = ?", shopID, id).
			Delete(&model.Order{}).Error
	})
}

func (r *customerRepo) Count(shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
