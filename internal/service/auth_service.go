package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/pkg/apperr"
	"go-tailorshop/pkg/jwt"
)

// ErrInvalidCredentials deliberately covers both "no such account" and
// "wrong password" so login failures leak nothing about existing usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterShopRequest struct {
	ShopName      string `json:"shop_name" validate:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AdminUsername string `json:"admin_username" validate:"required"`
	AdminPassword string `json:"admin_password" validate:"required,min=6"`
}

type ShopSummary struct {
	ID       uuid.UUID `json:"id"`
	ShopName string    `json:"shop_name"`
	ShopCode string    `json:"shop_code"`
}

type RegisterShopResponse struct {
	Shop  ShopSummary         `json:"shop"`
	Admin model.StaffResponse `json:"admin"`
	Token string              `json:"token"`
}

type LoginResponse struct {
	Token string              `json:"token"`
	Staff model.StaffResponse `json:"staff"`
	Shop  ShopSummary         `json:"shop"`
}

type AuthService interface {
	RegisterShop(req *RegisterShopRequest) (*RegisterShopResponse, error)
	Login(shopID uuid.UUID, role model.Role, username, password string) (*LoginResponse, error)
	LookupShop(code string) (*ShopSummary, error)
}

type authService struct {
	shopRepo  repository.ShopRepository
	staffRepo repository.StaffRepository
}

func NewAuthService(shopRepo repository.ShopRepository, staffRepo repository.StaffRepository) AuthService {
	return &authService{shopRepo: shopRepo, staffRepo: staffRepo}
}

// RegisterShop creates a shop and its first admin in one step. If the admin
// cannot be created the shop is rolled back so registration never leaves a
// shop without an account.
func (s *authService) RegisterShop(req *RegisterShopRequest) (*RegisterShopResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	shop := &model.Shop{
		ShopName: req.ShopName,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	shop.CreatedBy = req.AdminUsername
	shop.UpdatedBy = req.AdminUsername
	if err := s.shopRepo.Create(shop); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("shop code conflict, please try again")
		}
		return nil, err
	}

	admin := &model.Staff{
		Username: req.AdminUsername,
		Role:     model.RoleAdmin,
		ShopID:   shop.ID,
	}
	admin.CreatedBy = req.AdminUsername
	admin.UpdatedBy = req.AdminUsername
	if err := admin.SetPassword(req.AdminPassword); err != nil {
		s.shopRepo.Delete(shop.ID)
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.staffRepo.Create(admin); err != nil {
		s.shopRepo.Delete(shop.ID)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("admin username already exists in this shop")
		}
		return nil, err
	}

	// Auto-login: the caller gets a token straight away.
	token, err := jwt.GenerateToken(admin.ID, admin.Username, admin.Name, string(admin.Role), shop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegisterShopResponse{
		Shop:  ShopSummary{ID: shop.ID, ShopName: shop.ShopName, ShopCode: shop.ShopCode},
		Admin: admin.ToResponse(),
		Token: token,
	}, nil
}

func (s *authService) Login(shopID uuid.UUID, role model.Role, username, password string) (*LoginResponse, error) {
	if !role.Valid() {
		return nil, apperr.Validationf("invalid role %q", role)
	}

	staff, err := s.staffRepo.FindByUsername(shopID, role, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	shop, err := s.shopRepo.FindByID(shopID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(staff.ID, staff.Username, staff.Name, string(staff.Role), shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		Staff: staff.ToResponse(),
		Shop:  ShopSummary{ID: shop.ID, ShopName: shop.ShopName, ShopCode: shop.ShopCode},
	}, nil
}

func (s *authService) LookupShop(code string) (*ShopSummary, error) {
	shop, err := s.shopRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("shop not found")
		}
		return nil, err
	}
	return &ShopSummary{ID: shop.ID, ShopName: shop.ShopName, ShopCode: shop.ShopCode}, nil
}
