package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer holds contact details and the garment measurements a tailor works
// from. Phone is unique within a shop, not globally.
type Customer struct {
	BaseModel
	Name         string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone        string        `gorm:"type:varchar(20);not null;uniqueIndex:idx_customers_phone_shop" json:"phone" validate:"required,numeric,min=10,max=15"`
	ShopID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_customers_phone_shop;index" json:"shop_id" validate:"uuid_required"`
	Shop         *Shop         `gorm:"foreignKey:ShopID" json:"shop,omitempty" validate:"-"`
	Notes        string        `gorm:"type:text" json:"notes"`
	Measurements []Measurement `gorm:"constraint:OnDelete:CASCADE" json:"measurements" validate:"dive"`
}

// MeasurementType enumerates the garment categories a measurement record can
// describe.
type MeasurementType string

const (
	MeasurementPant     MeasurementType = "pant"
	MeasurementShirt    MeasurementType = "shirt"
	MeasurementCoat     MeasurementType = "coat"
	MeasurementJacket   MeasurementType = "jacket"
	MeasurementKurta    MeasurementType = "kurta"
	MeasurementSalwar   MeasurementType = "salwar"
	MeasurementSherwani MeasurementType = "sherwani"
	MeasurementLehenga  MeasurementType = "lehenga"
	MeasurementSaree    MeasurementType = "saree"
	MeasurementOther    MeasurementType = "other"
)

// MeasurementTypes lists all valid measurement types in display order.
var MeasurementTypes = []MeasurementType{
	MeasurementPant, MeasurementShirt, MeasurementCoat, MeasurementJacket,
	MeasurementKurta, MeasurementSalwar, MeasurementSherwani,
	MeasurementLehenga, MeasurementSaree, MeasurementOther,
}

func (t MeasurementType) Valid() bool {
	for _, m := range MeasurementTypes {
		if t == m {
			return true
		}
	}
	return false
}

// Measurement is one typed garment-measurement record. Only the fields
// relevant to the garment type are filled; the rest stay nil.
type Measurement struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Type       MeasurementType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=pant shirt coat jacket kurta salwar sherwani lehenga saree other"`

	// Common
	Length   *float64 `json:"length,omitempty"`
	Shoulder *float64 `json:"shoulder,omitempty"`
	Chest    *float64 `json:"chest,omitempty"`
	Waist    *float64 `json:"waist,omitempty"`
	Hip      *float64 `json:"hip,omitempty"`
	Neck     *float64 `json:"neck,omitempty"`
	// Pant / Salwar
	Thigh  *float64 `json:"thigh,omitempty"`
	Knee   *float64 `json:"knee,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Crotch *float64 `json:"crotch,omitempty"`
	// Shirt / Kurta / Coat / Sherwani
	SleeveLength *float64 `json:"sleeve_length,omitempty"`
	Bicep        *float64 `json:"bicep,omitempty"`
	Collar       *float64 `json:"collar,omitempty"`
	Cuff         *float64 `json:"cuff,omitempty"`
	// Coat / Sherwani
	Armhole   *float64 `json:"armhole,omitempty"`
	CrossBack *float64 `json:"cross_back,omitempty"`
	// Jacket
	Sleeve *float64 `json:"sleeve,omitempty"`
	// Kurta
	Slits *float64 `json:"slits,omitempty"`
	// Lehenga
	SkirtLength *float64 `json:"skirt_length,omitempty"`
	SkirtWaist  *float64 `json:"skirt_waist,omitempty"`
	SkirtHip    *float64 `json:"skirt_hip,omitempty"`
	// Lehenga / Saree (Blouse)
	BlouseLength    *float64 `json:"blouse_length,omitempty"`
	BlouseChest     *float64 `json:"blouse_chest,omitempty"`
	BlouseUnderbust *float64 `json:"blouse_underbust,omitempty"`
	BlouseShoulder  *float64 `json:"blouse_shoulder,omitempty"`
	BlouseSleeve    *float64 `json:"blouse_sleeve,omitempty"`
	// Saree (Petticoat)
	PetticoatLength *float64 `json:"petticoat_length,omitempty"`
	PetticoatWaist  *float64 `json:"petticoat_waist,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CustomerSummary is the trimmed shape embedded in order responses.
// Measurements appear only where the query preloaded them (order detail).
type CustomerSummary struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Measurements []Measurement `json:"measurements,omitempty"`
}

func (c *Customer) Summary() CustomerSummary {
	return CustomerSummary{ID: c.ID, Name: c.Name, Phone: c.Phone, Measurements: c.Measurements}
}
