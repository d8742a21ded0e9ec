package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/pkg/apperr"
)

type CreateCustomerRequest struct {
	Name         string              `json:"name" validate:"required"`
	Phone        string              `json:"phone" validate:"required,numeric,min=10,max=15"`
	Notes        string              `json:"notes"`
	Measurements []model.Measurement `json:"measurements" validate:"dive"`
}

type CustomerService interface {
	Create(shopID uuid.UUID, actorName string, req *CreateCustomerRequest) (*model.Customer, error)
	List(shopID uuid.UUID, phoneSearch string) ([]model.Customer, error)
	Get(shopID, customerID uuid.UUID) (*model.Customer, error)
	Update(shopID uuid.UUID, actorName string, customerID uuid.UUID, req *CreateCustomerRequest) (*model.Customer, error)
	Delete(shopID, customerID uuid.UUID) error
	ReplaceMeasurements(shopID, customerID uuid.UUID, measurements []model.Measurement) (*model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(shopID uuid.UUID, actorName string, req *CreateCustomerRequest) (*model.Customer, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		Name:         req.Name,
		Phone:        req.Phone,
		ShopID:       shopID,
		Notes:        req.Notes,
		Measurements: req.Measurements,
	}
	customer.CreatedBy = actorName
	customer.UpdatedBy = actorName

	if err := s.customerRepo.Create(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("customer with this phone number already exists")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) List(shopID uuid.UUID, phoneSearch string) ([]model.Customer, error) {
	return s.customerRepo.FindAll(shopID, phoneSearch)
}

func (s *customerService) Get(shopID, customerID uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(shopID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("customer not found")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(shopID uuid.UUID, actorName string, customerID uuid.UUID, req *CreateCustomerRequest) (*model.Customer, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.Get(shopID, customerID)
	if err != nil {
		return nil, err
	}

	// Phone changes must stay unique within the shop.
	if req.Phone != customer.Phone {
		if existing, err := s.customerRepo.FindByPhone(shopID, req.Phone); err == nil && existing.ID != customer.ID {
			return nil, apperr.Conflictf("phone number already in use by another customer")
		}
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Notes = req.Notes
	customer.UpdatedBy = actorName

	if err := s.customerRepo.Update(customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("phone number already in use by another customer")
		}
		return nil, err
	}
	if err := s.customerRepo.ReplaceMeasurements(customer.ID, req.Measurements); err != nil {
		return nil, err
	}
	customer.Measurements = req.Measurements
	return customer, nil
}

// Delete removes the customer and cascades to their orders.
func (s *customerService) Delete(shopID, customerID uuid.UUID) error {
	err := s.customerRepo.DeleteWithOrders(shopID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("customer not found")
	}
	return err
}

func (s *customerService) ReplaceMeasurements(shopID, customerID uuid.UUID, measurements []model.Measurement) (*model.Customer, error) {
	for _, m := range measurements {
		if !m.Type.Valid() {
			return nil, apperr.Validationf("invalid measurement type %q", m.Type)
		}
	}

	customer, err := s.Get(shopID, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.ReplaceMeasurements(customer.ID, measurements); err != nil {
		return nil, err
	}
	customer.Measurements = measurements
	return customer, nil
}
