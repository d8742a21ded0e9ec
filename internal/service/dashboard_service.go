package service

import (
	"github.com/google/uuid"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
)

// AdminDashboard is the shop-wide overview the admin portal renders.
type AdminDashboard struct {
	TotalCustomers    int64                         `json:"total_customers"`
	TotalActiveOrders int64                         `json:"total_active_orders"`
	ReadyForPickup    int64                         `json:"ready_for_pickup"`
	LowStockCount     int                           `json:"low_stock_count"`
	LowStockItems     []model.InventoryItemResponse `json:"low_stock_items"`
	StatusBreakdown   []repository.StatusCount      `json:"status_breakdown"`
	RecentOrders      []model.OrderResponse         `json:"recent_orders"`
}

// WorkerDashboard is the assigned-order view for tailors and cutting masters.
type WorkerDashboard struct {
	Stats  map[string]int        `json:"stats"`
	Orders []model.OrderResponse `json:"orders"`
}

type DashboardService interface {
	AdminStats(shopID uuid.UUID) (*AdminDashboard, error)
	TailorDashboard(shopID, tailorID uuid.UUID) (*WorkerDashboard, error)
	CuttingMasterDashboard(shopID, cuttingMasterID uuid.UUID) (*WorkerDashboard, error)
}

type dashboardService struct {
	customerRepo  repository.CustomerRepository
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
}

func NewDashboardService(cRepo repository.CustomerRepository, oRepo repository.OrderRepository, iRepo repository.InventoryRepository) DashboardService {
	return &dashboardService{
		customerRepo:  cRepo,
		orderRepo:     oRepo,
		inventoryRepo: iRepo,
	}
}

func (s *dashboardService) AdminStats(shopID uuid.UUID) (*AdminDashboard, error) {
	totalCustomers, err := s.customerRepo.Count(shopID)
	if err != nil {
		return nil, err
	}
	totalActive, err := s.orderRepo.CountActive(shopID)
	if err != nil {
		return nil, err
	}
	ready, err := s.orderRepo.CountActiveByStatus(shopID, model.StatusReadyForPickup)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.inventoryRepo.FindLowStock(shopID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.orderRepo.StatusBreakdown(shopID)
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.Recent(shopID, 10)
	if err != nil {
		return nil, err
	}

	dash := &AdminDashboard{
		TotalCustomers:    totalCustomers,
		TotalActiveOrders: totalActive,
		ReadyForPickup:    ready,
		LowStockCount:     len(lowStock),
		StatusBreakdown:   breakdown,
	}
	dash.LowStockItems = make([]model.InventoryItemResponse, 0, len(lowStock))
	for i := range lowStock {
		dash.LowStockItems = append(dash.LowStockItems, lowStock[i].ToResponse())
	}
	dash.RecentOrders = toOrderResponses(recent)
	return dash, nil
}

func (s *dashboardService) TailorDashboard(shopID, tailorID uuid.UUID) (*WorkerDashboard, error) {
	orders, err := s.orderRepo.FindAll(shopID, repository.OrderFilter{
		ActiveOnly:       true,
		AssignedTailorID: &tailorID,
	})
	if err != nil {
		return nil, err
	}

	ready, inProgress := 0, 0
	for i := range orders {
		switch orders[i].Status {
		case model.StatusReadyForPickup:
			ready++
		case model.StatusCutting, model.StatusInStitching, model.StatusFinalTouches:
			inProgress++
		}
	}

	return &WorkerDashboard{
		Stats: map[string]int{
			"total_orders":     len(orders),
			"ready_for_pickup": ready,
			"in_progress":      inProgress,
		},
		Orders: toOrderResponses(orders),
	}, nil
}

func (s *dashboardService) CuttingMasterDashboard(shopID, cuttingMasterID uuid.UUID) (*WorkerDashboard, error) {
	orders, err := s.orderRepo.FindAll(shopID, repository.OrderFilter{
		ActiveOnly:              true,
		AssignedCuttingMasterID: &cuttingMasterID,
	})
	if err != nil {
		return nil, err
	}

	done := 0
	for i := range orders {
		if orders[i].CuttingStatus == model.CuttingDone {
			done++
		}
	}

	return &WorkerDashboard{
		Stats: map[string]int{
			"total_orders":    len(orders),
			"cutting_pending": len(orders) - done,
			"cutting_done":    done,
		},
		Orders: toOrderResponses(orders),
	}, nil
}

func toOrderResponses(orders []model.Order) []model.OrderResponse {
	out := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orders[i].ToResponse())
	}
	return out
}
