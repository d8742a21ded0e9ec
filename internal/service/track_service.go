package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/pkg/apperr"
)

// trackOrderLimit caps how much history the public endpoint exposes.
const trackOrderLimit = 3

type TrackRequest struct {
	Phone    string `json:"phone" validate:"required"`
	ShopCode string `json:"shop_code"`
}

// TrackedOrder is the public order shape. It deliberately carries no staff
// assignments and no pending-approval state, only what a customer checking
// on their garment needs to see.
type TrackedOrder struct {
	ID            uuid.UUID         `json:"id"`
	OrderNumber   string            `json:"order_number"`
	GarmentType   model.GarmentType `json:"garment_type"`
	Description   string            `json:"description"`
	Status        model.OrderStatus `json:"status"`
	StatusIndex   int               `json:"status_index"`
	StatusColor   string            `json:"status_color"`
	Price         float64           `json:"price"`
	AdvancePaid   float64           `json:"advance_paid"`
	BalanceDue    float64           `json:"balance_due"`
	DueDate       *time.Time        `json:"due_date"`
	ReadyPhotoURL *string           `json:"ready_photo_url"`
	CreatedAt     time.Time         `json:"created_at"`
}

type TrackShopInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type TrackResult struct {
	Customer model.CustomerSummary `json:"customer"`
	Shop     *TrackShopInfo        `json:"shop"`
	Orders   []TrackedOrder        `json:"orders"`
}

// TrackService lets customers look up their active orders by phone number,
// with no account. A shop code narrows the search when the same number is
// registered at more than one shop.
type TrackService interface {
	Track(req *TrackRequest) (*TrackResult, error)
}

type trackService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	shopRepo     repository.ShopRepository
}

func NewTrackService(cRepo repository.CustomerRepository, oRepo repository.OrderRepository, sRepo repository.ShopRepository) TrackService {
	return &trackService{
		customerRepo: cRepo,
		orderRepo:    oRepo,
		shopRepo:     sRepo,
	}
}

func (s *trackService) Track(req *TrackRequest) (*TrackResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	phone := keepDigitsOnly(req.Phone)
	if phone == "" {
		return nil, apperr.Validationf("phone number is required")
	}

	customer, err := s.findCustomer(phone, strings.ToUpper(strings.TrimSpace(req.ShopCode)))
	if err != nil {
		return nil, err
	}

	customerID := customer.ID
	orders, err := s.orderRepo.FindAll(customer.ShopID, repository.OrderFilter{
		ActiveOnly: true,
		CustomerID: &customerID,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.NotFoundf("no active orders found for this phone number")
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > trackOrderLimit {
		orders = orders[:trackOrderLimit]
	}

	result := &TrackResult{
		Customer: model.CustomerSummary{ID: customer.ID, Name: customer.Name, Phone: customer.Phone},
		Orders:   make([]TrackedOrder, 0, len(orders)),
	}
	if shop, err := s.shopRepo.FindByID(customer.ShopID); err == nil {
		result.Shop = &TrackShopInfo{Name: shop.ShopName, Address: shop.Address, Phone: shop.Phone}
	}
	for i := range orders {
		result.Orders = append(result.Orders, trackedOrder(&orders[i]))
	}
	return result, nil
}

func (s *trackService) findCustomer(phone, shopCode string) (*model.Customer, error) {
	if shopCode != "" {
		shop, err := s.shopRepo.FindByCode(shopCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("shop not found")
			}
			return nil, err
		}
		customer, err := s.customerRepo.FindByPhone(shop.ID, phone)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("no customer found with that phone number")
			}
			return nil, err
		}
		return customer, nil
	}

	customers, err := s.customerRepo.FindAllByPhone(phone)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperr.NotFoundf("no customer found with that phone number")
	}
	// most recent registration wins when the number exists at several shops
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return &customers[0], nil
}

func trackedOrder(o *model.Order) TrackedOrder {
	return TrackedOrder{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		GarmentType:   o.GarmentType,
		Description:   o.Description,
		Status:        o.Status,
		StatusIndex:   model.StatusIndex(o.Status),
		StatusColor:   model.StatusColors[o.Status],
		Price:         o.Price,
		AdvancePaid:   o.AdvancePaid,
		BalanceDue:    o.BalanceDue(),
		DueDate:       o.DueDate,
		ReadyPhotoURL: o.ReadyPhotoURL,
		CreatedAt:     o.CreatedAt,
	}
}

func keepDigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
