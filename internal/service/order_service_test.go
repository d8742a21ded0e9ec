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

type orderFixture struct {
	svc       OrderService
	orderRepo *fakeOrderRepo
	customers *fakeCustomerRepo
	staff     *fakeStaffRepo
	shopID    uuid.UUID
	customer  *model.Customer
	admin     Actor
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	hub := ws.NewHub()
	go hub.Run()

	orderRepo := newFakeOrderRepo()
	customers := newFakeCustomerRepo()
	staff := newFakeStaffRepo()

	shopID := uuid.New()
	customer := &model.Customer{Name: "Asha", Phone: "9876543210", ShopID: shopID}
	require.NoError(t, customers.Create(customer))

	adminID := uuid.New()
	require.NoError(t, staff.Create(&model.Staff{
		BaseModel: model.BaseModel{ID: adminID},
		Username:  "owner",
		Role:      model.RoleAdmin,
		ShopID:    shopID,
	}))

	return &orderFixture{
		svc:       NewOrderService(orderRepo, customers, staff, hub),
		orderRepo: orderRepo,
		customers: customers,
		staff:     staff,
		shopID:    shopID,
		customer:  customer,
		admin:     Actor{ID: adminID, Role: model.RoleAdmin},
	}
}

func (f *orderFixture) addTailor(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.staff.Create(&model.Staff{
		BaseModel: model.BaseModel{ID: id},
		Username:  "tailor-" + id.String()[:8],
		Role:      model.RoleTailor,
		ShopID:    f.shopID,
	}))
	return id
}

func (f *orderFixture) createOrder(t *testing.T) *model.Order {
	t.Helper()
	order, err := f.svc.Create(f.shopID, f.admin, "owner", &CreateOrderRequest{
		CustomerID:  f.customer.ID,
		GarmentType: model.GarmentSuit,
		Price:       2500,
		AdvancePaid: 500,
	})
	require.NoError(t, err)
	return order
}

func TestOrderCreateAllocatesSequence(t *testing.T) {
	f := newOrderFixture(t)

	first := f.createOrder(t)
	assert.Equal(t, "1A", first.OrderNumber)
	assert.Equal(t, model.StatusOrderPlaced, first.Status)
	assert.True(t, first.IsActive)

	second := f.createOrder(t)
	assert.Equal(t, "2A", second.OrderNumber)
}

func TestOrderNumberReusableAfterDelete(t *testing.T) {
	f := newOrderFixture(t)
	f.createOrder(t)
	second := f.createOrder(t)
	require.Equal(t, "2A", second.OrderNumber)

	// a hard delete frees the (order_number, shop) slot, so the sequence
	// hands out 2A again instead of colliding forever
	require.NoError(t, f.svc.Delete(f.shopID, second.ID))

	third := f.createOrder(t)
	assert.Equal(t, "2A", third.OrderNumber)
	assert.Equal(t, 3, f.orderRepo.creates)
}

func TestOrderCreateSequencePerShop(t *testing.T) {
	f := newOrderFixture(t)
	f.createOrder(t)

	// another shop starts its own sequence at 1A
	otherShop := uuid.New()
	otherCustomer := &model.Customer{Name: "Ravi", Phone: "9123456780", ShopID: otherShop}
	require.NoError(t, f.customers.Create(otherCustomer))

	order, err := f.svc.Create(otherShop, Actor{Role: model.RoleAdmin}, "owner", &CreateOrderRequest{
		CustomerID:  otherCustomer.ID,
		GarmentType: model.GarmentShirt,
	})
	require.NoError(t, err)
	assert.Equal(t, "1A", order.OrderNumber)
}

func TestOrderCreateRetriesOnDuplicate(t *testing.T) {
	f := newOrderFixture(t)

	f.orderRepo.dupFailures = 1
	order := f.createOrder(t)
	assert.Equal(t, "1A", order.OrderNumber)
	assert.Equal(t, 2, f.orderRepo.creates)
}

func TestOrderCreateGivesUpAfterRetries(t *testing.T) {
	f := newOrderFixture(t)

	f.orderRepo.dupFailures = 3
	_, err := f.svc.Create(f.shopID, f.admin, "owner", &CreateOrderRequest{
		CustomerID:  f.customer.ID,
		GarmentType: model.GarmentSuit,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, 3, f.orderRepo.creates)
}

func TestOrderCreateRejectsForeignCustomer(t *testing.T) {
	f := newOrderFixture(t)

	foreign := &model.Customer{Name: "Meena", Phone: "9000000001", ShopID: uuid.New()}
	require.NoError(t, f.customers.Create(foreign))

	_, err := f.svc.Create(f.shopID, f.admin, "owner", &CreateOrderRequest{
		CustomerID:  foreign.ID,
		GarmentType: model.GarmentSuit,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderCreateRejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(f.shopID, f.admin, "owner", &CreateOrderRequest{
		CustomerID:  f.customer.ID,
		GarmentType: model.GarmentSuit,
		Status:      "Delivered",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrderGetScoping(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createOrder(t)
	tailorID := f.addTailor(t)

	t.Run("cross shop reads as not found", func(t *testing.T) {
		_, err := f.svc.Get(uuid.New(), Actor{Role: model.RoleAdmin}, order.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("unassigned tailor reads as not found", func(t *testing.T) {
		_, err := f.svc.Get(f.shopID, Actor{ID: tailorID, Role: model.RoleTailor}, order.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("assigned tailor sees the order", func(t *testing.T) {
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &tailorID)
		require.NoError(t, err)

		got, err := f.svc.Get(f.shopID, Actor{ID: tailorID, Role: model.RoleTailor}, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})
}

func TestOrderUpdateStatusReadyFlow(t *testing.T) {
	f := newOrderFixture(t)

	t.Run("admin commits photo directly", func(t *testing.T) {
		order := f.createOrder(t)
		got, err := f.svc.UpdateStatus(f.shopID, f.admin, order.ID, model.StatusReadyForPickup, "https://cdn.example/p.jpg")
		require.NoError(t, err)
		assert.Equal(t, model.StatusReadyForPickup, got.Status)
		assert.False(t, got.PendingApproval)
	})

	t.Run("photo required", func(t *testing.T) {
		order := f.createOrder(t)
		_, err := f.svc.UpdateStatus(f.shopID, f.admin, order.ID, model.StatusReadyForPickup, "")
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("tailor submission goes to approval", func(t *testing.T) {
		order := f.createOrder(t)
		tailorID := f.addTailor(t)
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &tailorID)
		require.NoError(t, err)

		tailor := Actor{ID: tailorID, Role: model.RoleTailor}
		got, err := f.svc.UpdateStatus(f.shopID, tailor, order.ID, model.StatusReadyForPickup, "https://cdn.example/p.jpg")
		require.NoError(t, err)
		assert.NotEqual(t, model.StatusReadyForPickup, got.Status)
		assert.True(t, got.PendingApproval)

		// admin approves and the parked photo becomes the ready photo
		resolved, err := f.svc.ApprovePending(f.shopID, order.ID, true)
		require.NoError(t, err)
		assert.Equal(t, model.StatusReadyForPickup, resolved.Status)
		assert.False(t, resolved.PendingApproval)
		require.NotNil(t, resolved.ReadyPhotoURL)
		assert.Equal(t, "https://cdn.example/p.jpg", *resolved.ReadyPhotoURL)
	})

	t.Run("rejection discards the photo", func(t *testing.T) {
		order := f.createOrder(t)
		tailorID := f.addTailor(t)
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &tailorID)
		require.NoError(t, err)

		tailor := Actor{ID: tailorID, Role: model.RoleTailor}
		_, err = f.svc.UpdateStatus(f.shopID, tailor, order.ID, model.StatusReadyForPickup, "https://cdn.example/p.jpg")
		require.NoError(t, err)

		resolved, err := f.svc.ApprovePending(f.shopID, order.ID, false)
		require.NoError(t, err)
		assert.NotEqual(t, model.StatusReadyForPickup, resolved.Status)
		assert.Nil(t, resolved.ReadyPhotoURL)
		assert.False(t, resolved.PendingApproval)
	})

	t.Run("approving without pending submission fails", func(t *testing.T) {
		order := f.createOrder(t)
		_, err := f.svc.ApprovePending(f.shopID, order.ID, true)
		require.Error(t, err)
		assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	})
}

func TestOrderAssignTailorValidatesStaff(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createOrder(t)

	t.Run("unknown tailor", func(t *testing.T) {
		bogus := uuid.New()
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &bogus)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("admin id is not a tailor", func(t *testing.T) {
		adminID := f.admin.ID
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &adminID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("unassign with nil", func(t *testing.T) {
		tailorID := f.addTailor(t)
		_, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, &tailorID)
		require.NoError(t, err)

		got, err := f.svc.AssignTailor(f.shopID, f.admin, order.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, got.AssignedTailorID)
	})
}

func TestBulkAssignTailor(t *testing.T) {
	f := newOrderFixture(t)
	tailorID := f.addTailor(t)
	a := f.createOrder(t)
	b := f.createOrder(t)

	t.Run("empty ids rejected", func(t *testing.T) {
		_, err := f.svc.BulkAssignTailor(f.shopID, nil, tailorID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("foreign ids skipped silently", func(t *testing.T) {
		modified, err := f.svc.BulkAssignTailor(f.shopID, []uuid.UUID{a.ID, b.ID, uuid.New()}, tailorID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), modified)
	})

	t.Run("tailor must belong to the shop", func(t *testing.T) {
		foreign := uuid.New()
		_, err := f.svc.BulkAssignTailor(f.shopID, []uuid.UUID{a.ID}, foreign)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestSetCuttingStatus(t *testing.T) {
	f := newOrderFixture(t)
	order := f.createOrder(t)

	_, err := f.svc.SetCuttingStatus(f.shopID, f.admin, order.ID, "Almost")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, err := f.svc.SetCuttingStatus(f.shopID, f.admin, order.ID, model.CuttingDone)
	require.NoError(t, err)
	assert.Equal(t, model.CuttingDone, got.CuttingStatus)

	// cutting work never moves the main status
	assert.Equal(t, model.StatusOrderPlaced, got.Status)
}
