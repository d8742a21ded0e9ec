package repository

import (
	"go-tailorshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Zero values mean "no filter".
type OrderFilter struct {
	Status                  *model.OrderStatus
	ActiveOnly              bool
	CustomerID              *uuid.UUID
	AssignedTailorID        *uuid.UUID
	AssignedCuttingMasterID *uuid.UUID
}

// StatusCount is one row of the dashboard status breakdown.
type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	// LastOrderNumber returns the most recently created valid-format order
	// code for the shop, or "" when the shop has none.
	LastOrderNumber(shopID uuid.UUID) (string, error)
	FindAll(shopID uuid.UUID, filter OrderFilter) ([]model.Order, error)
	FindByID(shopID, id uuid.UUID) (*model.Order, error)
	Update(order *model.Order) error
	Delete(shopID, id uuid.UUID) error
	BulkAssignTailor(shopID uuid.UUID, orderIDs []uuid.UUID, tailorID uuid.UUID) (int64, error)
	CountActive(shopID uuid.UUID) (int64, error)
	CountActiveByStatus(shopID uuid.UUID, status model.OrderStatus) (int64, error)
	StatusBreakdown(shopID uuid.UUID) ([]StatusCount, error)
	Recent(shopID uuid.UUID, limit int) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) LastOrderNumber(shopID uuid.UUID) (string, error) {
	var last model.Order
	err := r.db.Select("order_number").
		Where("shop_id = ? AND order_number ~ ?", shopID, `^\d{1,4}[A-Z]$`).
		Order("created_at DESC").
		First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.OrderNumber, nil
}

func (r *orderRepo) FindAll(shopID uuid.UUID, filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.Preload("Customer").Preload("AssignedTailor").Preload("AssignedCuttingMaster").
		Where("shop_id = ?", shopID)
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AssignedTailorID != nil {
		q = q.Where("assigned_tailor_id = ?", *filter.AssignedTailorID)
	}
	if filter.AssignedCuttingMasterID != nil {
		q = q.Where("assigned_cutting_master_id = ?", *filter.AssignedCuttingMasterID)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(shopID, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Customer").Preload("Customer.Measurements").
		Preload("AssignedTailor").Preload("AssignedCuttingMaster").
		Where("shop_id = ?", shopID).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) Update(order *model.Order) error {
	// Save writes every column, which the lifecycle relies on: clearing the
	// pending photo and approval flag must reach the store.
	return r.db.Omit("Customer", "AssignedTailor", "AssignedCuttingMaster", "Shop").
		Save(order).Error
}

func (r *orderRepo) Delete(shopID, id uuid.UUID) error {
	res := r.db.Where("shop_id = ?", shopID).Delete(&model.Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BulkAssignTailor assigns every matching shop-owned order to the tailor in
// one statement. Ids outside the shop simply do not match and are skipped;
// the returned count reflects rows actually modified.
func (r *orderRepo) BulkAssignTailor(shopID uuid.UUID, orderIDs []uuid.UUID, tailorID uuid.UUID) (int64, error) {
	res := r.db.Model(&model.Order{}).
		Where("shop_id = ? AND id IN ?", shopID, orderIDs).
		Update("assigned_tailor_id", tailorID)
	return res.RowsAffected, res.Error
}

func (r *orderRepo) CountActive(shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) CountActiveByStatus(shopID uuid.UUID, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("shop_id = ? AND is_active = ? AND status = ?", shopID, true, status).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) StatusBreakdown(shopID uuid.UUID) ([]StatusCount, error) {
	var breakdown []StatusCount
	err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Group("status").
		Order("status ASC").
		Scan(&breakdown).Error
	return breakdown, err
}

func (r *orderRepo) Recent(shopID uuid.UUID, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Customer").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
