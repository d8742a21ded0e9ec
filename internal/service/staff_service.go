package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/pkg/apperr"
)

type CreateStaffRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// StaffService manages the tailor and cutting-master accounts an admin
// controls. Admin accounts themselves are only created at shop registration.
type StaffService interface {
	Create(shopID uuid.UUID, role model.Role, actorName string, req *CreateStaffRequest) (*model.Staff, error)
	List(shopID uuid.UUID, role model.Role) ([]model.Staff, error)
	Delete(shopID, staffID uuid.UUID, role model.Role) error
}

type staffService struct {
	staffRepo repository.StaffRepository
}

func NewStaffService(staffRepo repository.StaffRepository) StaffService {
	return &staffService{staffRepo: staffRepo}
}

func (s *staffService) Create(shopID uuid.UUID, role model.Role, actorName string, req *CreateStaffRequest) (*model.Staff, error) {
	if role != model.RoleTailor && role != model.RoleCuttingMaster {
		return nil, apperr.Validationf("invalid staff role %q", role)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	staff := &model.Staff{
		Username: req.Username,
		Name:     req.Name,
		Role:     role,
		ShopID:   shopID,
	}
	staff.CreatedBy = actorName
	staff.UpdatedBy = actorName
	if err := staff.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.staffRepo.Create(staff); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("username %q already exists in this shop", req.Username)
		}
		return nil, err
	}
	return staff, nil
}

func (s *staffService) List(shopID uuid.UUID, role model.Role) ([]model.Staff, error) {
	if !role.Valid() {
		return nil, apperr.Validationf("invalid staff role %q", role)
	}
	return s.staffRepo.FindByRole(shopID, role)
}

func (s *staffService) Delete(shopID, staffID uuid.UUID, role model.Role) error {
	err := s.staffRepo.Delete(shopID, staffID, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("%s not found", roleLabel(role))
	}
	return err
}
