package model

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"go-tailorshop/pkg/apperr"
)

// OrderStatus is one of the five lifecycle stages. The ordering is used for
// the progress stepper; it is not enforced as a transition guard, so staff
// can correct a mis-set status directly.
type OrderStatus string

const (
	StatusOrderPlaced    OrderStatus = "Order Placed"
	StatusCutting        OrderStatus = "Cutting"
	StatusInStitching    OrderStatus = "In Stitching"
	StatusFinalTouches   OrderStatus = "Final Touches"
	StatusReadyForPickup OrderStatus = "Ready for Pickup"
)

// OrderStatuses lists the lifecycle stages in progress order.
var OrderStatuses = []OrderStatus{
	StatusOrderPlaced,
	StatusCutting,
	StatusInStitching,
	StatusFinalTouches,
	StatusReadyForPickup,
}

// StatusColors maps each status to the badge color the clients render.
var StatusColors = map[OrderStatus]string{
	StatusOrderPlaced:    "gray",
	StatusCutting:        "yellow",
	StatusInStitching:    "blue",
	StatusFinalTouches:   "orange",
	StatusReadyForPickup: "green",
}

func (s OrderStatus) Valid() bool {
	return StatusIndex(s) >= 0
}

// StatusIndex returns the position of s in the five-stage ordering, or -1
// if s is not a known status.
func StatusIndex(s OrderStatus) int {
	for i, status := range OrderStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

// CuttingStatus tracks the cutting-master's work independently of the main
// order status. It never auto-advances the order.
type CuttingStatus string

const (
	CuttingPending CuttingStatus = "Pending"
	CuttingDone    CuttingStatus = "Done"
)

func (c CuttingStatus) Valid() bool {
	return c == CuttingPending || c == CuttingDone
}

// GarmentType is the order-level garment category.
type GarmentType string

const (
	GarmentSuit  GarmentType = "Suit"
	GarmentShirt GarmentType = "Shirt"
	GarmentKurta GarmentType = "Kurta"
	GarmentOther GarmentType = "Other"
)

type Order struct {
	BaseModel
	OrderNumber string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_orders_number_shop" json:"order_number"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_orders_number_shop;index" json:"shop_id" validate:"uuid_required"`
	Shop        *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty" validate:"-"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`

	GarmentType GarmentType `gorm:"type:varchar(20);not null" json:"garment_type" validate:"required,oneof=Suit Shirt Kurta Other"`
	Description string      `gorm:"type:text" json:"description"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'Order Placed'" json:"status"`

	Price       float64    `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	AdvancePaid float64    `gorm:"not null;default:0" json:"advance_paid" validate:"gte=0"`
	DueDate     *time.Time `json:"due_date"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`

	ReadyPhotoURL     *string `gorm:"type:text" json:"ready_photo_url"`
	PendingReadyPhoto *string `gorm:"type:text" json:"pending_ready_photo"`
	PendingApproval   bool    `gorm:"not null;default:false" json:"pending_approval"`

	AssignedTailorID        *uuid.UUID `gorm:"type:uuid;index:idx_orders_tailor_shop" json:"assigned_tailor_id"`
	AssignedTailor          *Staff     `gorm:"foreignKey:AssignedTailorID" json:"assigned_tailor,omitempty" validate:"-"`
	AssignedCuttingMasterID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_cutting_master_id"`
	AssignedCuttingMaster   *Staff     `gorm:"foreignKey:AssignedCuttingMasterID" json:"assigned_cutting_master,omitempty" validate:"-"`

	CuttingStatus CuttingStatus `gorm:"type:varchar(10);not null;default:'Pending'" json:"cutting_status"`
}

// BalanceDue is price minus advance. The result may be negative; nothing
// forbids an advance exceeding the price.
func (o *Order) BalanceDue() float64 {
	return o.Price - o.AdvancePaid
}

// MarkReady applies the Ready-for-Pickup transition. Admins commit the photo
// and status directly. Tailors instead park the photo as a pending approval:
// the visible status and ready photo stay untouched until an admin resolves
// it via ResolvePending.
func (o *Order) MarkReady(actor Role, photoURL string) error {
	if photoURL == "" {
		return apperr.Validationf("photo is required for Ready for Pickup status")
	}
	if actor == RoleTailor {
		o.PendingReadyPhoto = &photoURL
		o.PendingApproval = true
		return nil
	}
	o.Status = StatusReadyForPickup
	o.ReadyPhotoURL = &photoURL
	return nil
}

// ResolvePending settles a tailor-submitted ready photo. Approval commits the
// photo and moves the order to Ready for Pickup; rejection discards it. The
// pending pair is cleared either way.
func (o *Order) ResolvePending(approved bool) error {
	if !o.PendingApproval {
		return apperr.Statef("order has no pending approval")
	}
	if approved && o.PendingReadyPhoto != nil {
		o.ReadyPhotoURL = o.PendingReadyPhoto
		o.Status = StatusReadyForPickup
	}
	o.PendingApproval = false
	o.PendingReadyPhoto = nil
	return nil
}

// orderNumberPattern matches a valid human-facing order code: a one-to-four
// digit number followed by one uppercase letter, e.g. "427B".
var orderNumberPattern = regexp.MustCompile(`^(\d{1,4})([A-Z])$`)

// ValidOrderNumber reports whether code matches the sequence format.
func ValidOrderNumber(code string) bool {
	return orderNumberPattern.MatchString(code)
}

// NextOrderNumber returns the order code that follows last in the shop
// sequence: 1A, 2A, ... 1000A, 1B, ... 1000Z, then back to 1A. A missing or
// malformed last code restarts the sequence at 1A.
func NextOrderNumber(last string) string {
	match := orderNumberPattern.FindStringSubmatch(last)
	if match == nil {
		return "1A"
	}

	number, _ := strconv.Atoi(match[1])
	letter := match[2][0]

	if number < 1000 {
		return strconv.Itoa(number+1) + string(letter)
	}

	if letter == 'Z' {
		return "1A" // full cycle, restart
	}
	return "1" + string(letter+1)
}

// OrderResponse is the API shape for a single order.
type OrderResponse struct {
	ID                    uuid.UUID        `json:"id"`
	OrderNumber           string           `json:"order_number"`
	GarmentType           GarmentType      `json:"garment_type"`
	Description           string           `json:"description"`
	Status                OrderStatus      `json:"status"`
	StatusIndex           int              `json:"status_index"`
	StatusColor           string           `json:"status_color"`
	CuttingStatus         CuttingStatus    `json:"cutting_status"`
	Price                 float64          `json:"price"`
	AdvancePaid           float64          `json:"advance_paid"`
	BalanceDue            float64          `json:"balance_due"`
	DueDate               *time.Time       `json:"due_date"`
	IsActive              bool             `json:"is_active"`
	ReadyPhotoURL         *string          `json:"ready_photo_url"`
	PendingApproval       bool             `json:"pending_approval"`
	PendingReadyPhoto     *string          `json:"pending_ready_photo,omitempty"`
	AssignedTailor        *StaffResponse   `json:"assigned_tailor,omitempty"`
	AssignedCuttingMaster *StaffResponse   `json:"assigned_cutting_master,omitempty"`
	Customer              *CustomerSummary `json:"customer,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
}

func (o *Order) ToResponse() OrderResponse {
	resp := OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		GarmentType:       o.GarmentType,
		Description:       o.Description,
		Status:            o.Status,
		StatusIndex:       StatusIndex(o.Status),
		StatusColor:       StatusColors[o.Status],
		CuttingStatus:     o.CuttingStatus,
		Price:             o.Price,
		AdvancePaid:       o.AdvancePaid,
		BalanceDue:        o.BalanceDue(),
		DueDate:           o.DueDate,
		IsActive:          o.IsActive,
		ReadyPhotoURL:     o.ReadyPhotoURL,
		PendingApproval:   o.PendingApproval,
		PendingReadyPhoto: o.PendingReadyPhoto,
		CreatedAt:         o.CreatedAt,
	}
	if o.AssignedTailor != nil {
		t := o.AssignedTailor.ToResponse()
		resp.AssignedTailor = &t
	}
	if o.AssignedCuttingMaster != nil {
		cm := o.AssignedCuttingMaster.ToResponse()
		resp.AssignedCuttingMaster = &cm
	}
	if o.Customer != nil {
		c := o.Customer.Summary()
		resp.Customer = &c
	}
	return resp
}
