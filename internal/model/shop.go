package model

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// Shop is the tenant root. Every other business entity references exactly one
// shop, and the ShopCode is immutable once assigned.
type Shop struct {
	BaseModel
	ShopName string `gorm:"type:varchar(255);not null" json:"shop_name" validate:"required"`
	ShopCode string `gorm:"type:varchar(20);uniqueIndex;not null" json:"shop_code"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Address  string `gorm:"type:text" json:"address"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.ShopCode == "" {
		s.ShopCode = GenerateShopCode(s.ShopName, time.Now())
	}
	return nil
}

// GenerateShopCode derives a shop code from the shop name: up to three
// letters of the name, three digits from the timestamp, and two random
// digits. Example: "Raj Tailors" -> "RAJ48217".
func GenerateShopCode(name string, now time.Time) string {
	var letters strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) && letters.Len() < 3 {
			letters.WriteRune(unicode.ToUpper(r))
		}
	}
	timePart := now.UnixMilli() % 1000
	randPart := 10 + rand.Intn(90)
	return fmt.Sprintf("%s%03d%02d", letters.String(), timePart, randPart)
}
