package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/ws"
	"go-tailorshop/pkg/apperr"
)

func newInventoryService(t *testing.T) (InventoryService, *fakeInventoryRepo) {
	t.Helper()
	hub := ws.NewHub()
	go hub.Run()
	repo := newFakeInventoryRepo()
	return NewInventoryService(repo, hub), repo
}

func TestInventoryCreate(t *testing.T) {
	svc, _ := newInventoryService(t)
	shopID := uuid.New()

	item, err := svc.Create(shopID, "owner", &InventoryItemRequest{
		ItemName: "Cotton Thread",
		Quantity: 50,
		Unit:     model.UnitPieces,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, item.LowStockThreshold, "threshold defaults when omitted")

	t.Run("duplicate name in shop", func(t *testing.T) {
		_, err := svc.Create(shopID, "owner", &InventoryItemRequest{
			ItemName: "Cotton Thread",
			Quantity: 5,
			Unit:     model.UnitBoxes,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		_, err := svc.Create(shopID, "owner", &InventoryItemRequest{
			ItemName: "Silk",
			Quantity: 5,
			Unit:     "rolls",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestInventoryAdjust(t *testing.T) {
	svc, _ := newInventoryService(t)
	shopID := uuid.New()

	item, err := svc.Create(shopID, "owner", &InventoryItemRequest{
		ItemName:          "Buttons",
		Quantity:          20,
		Unit:              model.UnitBoxes,
		LowStockThreshold: 5,
	})
	require.NoError(t, err)

	t.Run("zero delta rejected", func(t *testing.T) {
		_, err := svc.Adjust(shopID, item.ID, 0)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("increment", func(t *testing.T) {
		got, err := svc.Adjust(shopID, item.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 25, got.Quantity)
	})

	t.Run("decrement clamps at zero", func(t *testing.T) {
		got, err := svc.Adjust(shopID, item.ID, -100)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)
		assert.True(t, got.IsLowStock())
	})

	t.Run("cross shop reads as not found", func(t *testing.T) {
		_, err := svc.Adjust(uuid.New(), item.ID, 1)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
