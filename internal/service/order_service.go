package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/internal/ws"
	"go-tailorshop/pkg/apperr"
)

// maxOrderNumberAttempts bounds the generate+insert retry loop. Two creates
// racing on the same last code lose at the (order_number, shop) unique index
// and the loser regenerates from the fresh history.
const maxOrderNumberAttempts = 3

// Actor identifies the authenticated staff member performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

type CreateOrderRequest struct {
	CustomerID  uuid.UUID         `json:"customer_id" validate:"uuid_required"`
	GarmentType model.GarmentType `json:"garment_type" validate:"required,oneof=Suit Shirt Kurta Other"`
	Description string            `json:"description"`
	Price       float64           `json:"price" validate:"gte=0"`
	AdvancePaid float64           `json:"advance_paid" validate:"gte=0"`
	DueDate     *time.Time        `json:"due_date"`
	Status      model.OrderStatus `json:"status"`
}

type UpdateOrderRequest struct {
	GarmentType model.GarmentType `json:"garment_type" validate:"required,oneof=Suit Shirt Kurta Other"`
	Description string            `json:"description"`
	Price       float64           `json:"price" validate:"gte=0"`
	AdvancePaid float64           `json:"advance_paid" validate:"gte=0"`
	DueDate     *time.Time        `json:"due_date"`
	IsActive    *bool             `json:"is_active"`
}

type OrderService interface {
	Create(shopID uuid.UUID, actor Actor, actorName string, req *CreateOrderRequest) (*model.Order, error)
	List(shopID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error)
	Get(shopID uuid.UUID, actor Actor, orderID uuid.UUID) (*model.Order, error)
	Update(shopID uuid.UUID, actorName string, orderID uuid.UUID, req *UpdateOrderRequest) (*model.Order, error)
	Delete(shopID, orderID uuid.UUID) error
	UpdateStatus(shopID uuid.UUID, actor Actor, orderID uuid.UUID, status model.OrderStatus, photoURL string) (*model.Order, error)
	ApprovePending(shopID, orderID uuid.UUID, approved bool) (*model.Order, error)
	SetCuttingStatus(shopID uuid.UUID, actor Actor, orderID uuid.UUID, status model.CuttingStatus) (*model.Order, error)
	AssignTailor(shopID uuid.UUID, actor Actor, orderID uuid.UUID, tailorID *uuid.UUID) (*model.Order, error)
	AssignCuttingMaster(shopID, orderID uuid.UUID, cuttingMasterID *uuid.UUID) (*model.Order, error)
	BulkAssignTailor(shopID uuid.UUID, orderIDs []uuid.UUID, tailorID uuid.UUID) (int64, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	staffRepo    repository.StaffRepository
	wsHub        *ws.Hub
}

func NewOrderService(oRepo repository.OrderRepository, cRepo repository.CustomerRepository, sRepo repository.StaffRepository, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo:    oRepo,
		customerRepo: cRepo,
		staffRepo:    sRepo,
		wsHub:        hub,
	}
}

func (s *orderService) Create(shopID uuid.UUID, actor Actor, actorName string, req *CreateOrderRequest) (*model.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusOrderPlaced
	}
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status %q, allowed: %v", status, model.OrderStatuses)
	}

	// The customer must exist in the caller's shop; a foreign customer id is
	// reported as absent.
	customer, err := s.customerRepo.FindByID(shopID, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("customer not found")
		}
		return nil, err
	}

	order := &model.Order{
		ShopID:      shopID,
		CustomerID:  customer.ID,
		GarmentType: req.GarmentType,
		Description: req.Description,
		Status:      status,
		Price:       req.Price,
		AdvancePaid: req.AdvancePaid,
		DueDate:     req.DueDate,
		IsActive:    true,
	}
	order.CreatedBy = actorName
	order.UpdatedBy = actorName

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		last, err := s.orderRepo.LastOrderNumber(shopID)
		if err != nil {
			return nil, err
		}
		order.OrderNumber = model.NextOrderNumber(last)

		err = s.orderRepo.Create(order)
		if err == nil {
			order.Customer = customer
			s.wsHub.BroadcastJSON(map[string]any{
				"type":         "order_created",
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"shop_id":      shopID,
				"customer":     customer.Name,
				"garment_type": order.GarmentType,
			})
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperr.Conflictf("could not allocate a unique order number, please retry")
}

func (s *orderService) List(shopID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindAll(shopID, filter)
}

// Get loads one order within the actor's shop. Tailors and cutting masters
// only see orders assigned to them; anything else reads as not found.
func (s *orderService) Get(shopID uuid.UUID, actor Actor, orderID uuid.UUID) (*model.Order, error) {
	return s.loadScoped(shopID, actor, orderID)
}

func (s *orderService) loadScoped(shopID uuid.UUID, actor Actor, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(shopID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, err
	}
	switch actor.Role {
	case model.RoleTailor:
		if order.AssignedTailorID == nil || *order.AssignedTailorID != actor.ID {
			return nil, apperr.NotFoundf("order not found")
		}
	case model.RoleCuttingMaster:
		if order.AssignedCuttingMasterID == nil || *order.AssignedCuttingMasterID != actor.ID {
			return nil, apperr.NotFoundf("order not found")
		}
	}
	return order, nil
}

// Update edits the order's descriptive fields. Status changes go through
// UpdateStatus so the ready-photo rule cannot be bypassed by a form edit.
func (s *orderService) Update(shopID uuid.UUID, actorName string, orderID uuid.UUID, req *UpdateOrderRequest) (*model.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.loadScoped(shopID, Actor{Role: model.RoleAdmin}, orderID)
	if err != nil {
		return nil, err
	}

	order.GarmentType = req.GarmentType
	order.Description = req.Description
	order.Price = req.Price
	order.AdvancePaid = req.AdvancePaid
	order.DueDate = req.DueDate
	if req.IsActive != nil {
		order.IsActive = *req.IsActive
	}
	order.UpdatedBy = actorName

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(shopID, orderID uuid.UUID) error {
	err := s.orderRepo.Delete(shopID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("order not found")
	}
	return err
}

func (s *orderService) UpdateStatus(shopID uuid.UUID, actor Actor, orderID uuid.UUID, status model.OrderStatus, photoURL string) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status %q, allowed: %v", status, model.OrderStatuses)
	}

	order, err := s.loadScoped(shopID, actor, orderID)
	if err != nil {
		return nil, err
	}

	if status == model.StatusReadyForPickup {
		if err := order.MarkReady(actor.Role, photoURL); err != nil {
			return nil, err
		}
	} else {
		order.Status = status
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	event := "order_status_updated"
	if order.PendingApproval {
		event = "order_ready_submitted"
	}
	s.wsHub.BroadcastJSON(map[string]any{
		"type":             event,
		"order_id":         order.ID,
		"order_number":     order.OrderNumber,
		"shop_id":          shopID,
		"status":           order.Status,
		"status_index":     model.StatusIndex(order.Status),
		"pending_approval": order.PendingApproval,
	})
	return order, nil
}

func (s *orderService) ApprovePending(shopID, orderID uuid.UUID, approved bool) (*model.Order, error) {
	order, err := s.loadScoped(shopID, Actor{Role: model.RoleAdmin}, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ResolvePending(approved); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.wsHub.BroadcastJSON(map[string]any{
		"type":         "order_approval_resolved",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"shop_id":      shopID,
		"approved":     approved,
		"status":       order.Status,
	})
	return order, nil
}

func (s *orderService) SetCuttingStatus(shopID uuid.UUID, actor Actor, orderID uuid.UUID, status model.CuttingStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperr.Validationf("invalid cutting status %q, must be %s or %s", status, model.CuttingPending, model.CuttingDone)
	}

	order, err := s.loadScoped(shopID, actor, orderID)
	if err != nil {
		return nil, err
	}

	order.CuttingStatus = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) AssignTailor(shopID uuid.UUID, actor Actor, orderID uuid.UUID, tailorID *uuid.UUID) (*model.Order, error) {
	if tailorID != nil {
		if _, err := s.requireStaff(shopID, *tailorID, model.RoleTailor); err != nil {
			return nil, err
		}
	}

	order, err := s.loadScoped(shopID, actor, orderID)
	if err != nil {
		return nil, err
	}

	order.AssignedTailorID = tailorID
	order.AssignedTailor = nil
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(shopID, orderID)
}

func (s *orderService) AssignCuttingMaster(shopID, orderID uuid.UUID, cuttingMasterID *uuid.UUID) (*model.Order, error) {
	if cuttingMasterID != nil {
		if _, err := s.requireStaff(shopID, *cuttingMasterID, model.RoleCuttingMaster); err != nil {
			return nil, err
		}
	}

	order, err := s.loadScoped(shopID, Actor{Role: model.RoleAdmin}, orderID)
	if err != nil {
		return nil, err
	}

	order.AssignedCuttingMasterID = cuttingMasterID
	order.AssignedCuttingMaster = nil
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(shopID, orderID)
}

// BulkAssignTailor assigns all shop-owned orders in orderIDs to one tailor.
// Ids not owned by the shop are skipped silently; the count of modified
// orders is returned.
func (s *orderService) BulkAssignTailor(shopID uuid.UUID, orderIDs []uuid.UUID, tailorID uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, apperr.Validationf("order_ids must not be empty")
	}
	if _, err := s.requireStaff(shopID, tailorID, model.RoleTailor); err != nil {
		return 0, err
	}
	return s.orderRepo.BulkAssignTailor(shopID, orderIDs, tailorID)
}

// requireStaff checks a staff member exists in the shop with the expected
// role. Cross-tenant and wrong-role lookups both come back as not found.
func (s *orderService) requireStaff(shopID, staffID uuid.UUID, role model.Role) (*model.Staff, error) {
	staff, err := s.staffRepo.FindByID(shopID, staffID)
	if err != nil || staff.Role != role {
		return nil, apperr.NotFoundf("%s not found", roleLabel(role))
	}
	return staff, nil
}

func roleLabel(role model.Role) string {
	switch role {
	case model.RoleTailor:
		return "tailor"
	case model.RoleCuttingMaster:
		return "cutting master"
	default:
		return "staff member"
	}
}
