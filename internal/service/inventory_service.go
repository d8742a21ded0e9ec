package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
	"go-tailorshop/internal/ws"
	"go-tailorshop/pkg/apperr"
)

type InventoryItemRequest struct {
	ItemName          string          `json:"item_name" validate:"required"`
	Quantity          int             `json:"quantity" validate:"gte=0"`
	Unit              model.StockUnit `json:"unit" validate:"required,oneof=pieces boxes meters"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"gte=0"`
}

type InventoryService interface {
	Create(shopID uuid.UUID, actorName string, req *InventoryItemRequest) (*model.InventoryItem, error)
	List(shopID uuid.UUID) ([]model.InventoryItem, error)
	Update(shopID uuid.UUID, actorName string, itemID uuid.UUID, req *InventoryItemRequest) (*model.InventoryItem, error)
	Delete(shopID, itemID uuid.UUID) error
	// Adjust applies a signed quantity change. Decrements clamp at zero.
	Adjust(shopID, itemID uuid.UUID, delta int) (*model.InventoryItem, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	wsHub         *ws.Hub
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, wsHub: hub}
}

func (s *inventoryService) Create(shopID uuid.UUID, actorName string, req *InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		ItemName:          req.ItemName,
		ShopID:            shopID,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}
	if item.LowStockThreshold == 0 {
		item.LowStockThreshold = 10
	}
	item.CreatedBy = actorName
	item.UpdatedBy = actorName

	if err := s.inventoryRepo.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("item %q already exists in this shop", req.ItemName)
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) List(shopID uuid.UUID) ([]model.InventoryItem, error) {
	return s.inventoryRepo.FindAll(shopID)
}

func (s *inventoryService) Update(shopID uuid.UUID, actorName string, itemID uuid.UUID, req *InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.FindByID(shopID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("item not found")
		}
		return nil, err
	}

	item.ItemName = req.ItemName
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.LowStockThreshold = req.LowStockThreshold
	item.UpdatedBy = actorName

	if err := s.inventoryRepo.Update(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("item %q already exists in this shop", req.ItemName)
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) Delete(shopID, itemID uuid.UUID) error {
	err := s.inventoryRepo.Delete(shopID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf("item not found")
	}
	return err
}

func (s *inventoryService) Adjust(shopID, itemID uuid.UUID, delta int) (*model.InventoryItem, error) {
	if delta == 0 {
		return nil, apperr.Validationf("adjustment amount must not be zero")
	}

	item, err := s.inventoryRepo.AdjustQuantity(shopID, itemID, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("item not found")
		}
		return nil, err
	}

	if item.IsLowStock() {
		s.wsHub.BroadcastJSON(map[string]any{
			"type":      "stock_low",
			"shop_id":   shopID,
			"item_id":   item.ID,
			"item_name": item.ItemName,
			"quantity":  item.Quantity,
			"threshold": item.LowStockThreshold,
		})
	}
	return item, nil
}
