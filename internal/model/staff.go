package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of staff roles. It travels in the JWT and is
// consumed as an explicit parameter by the order lifecycle.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleTailor        Role = "tailor"
	RoleCuttingMaster Role = "cutting_master"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTailor, RoleCuttingMaster:
		return true
	}
	return false
}

// Staff is an admin, tailor or cutting-master account. The composite unique
// index reproduces the per-role (username, shop) uniqueness of the legacy
// data: the same username may exist for an admin and a tailor of one shop,
// but not for two tailors.
type Staff struct {
	BaseModel
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_staff_shop_role_username" json:"username" validate:"required"`
	Name         string    `gorm:"type:varchar(255)" json:"name"` // display name; optional for admins
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;uniqueIndex:idx_staff_shop_role_username" json:"role" validate:"required,oneof=admin tailor cutting_master"`
	ShopID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_shop_role_username;index" json:"shop_id" validate:"uuid_required"`
	Shop         *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty" validate:"-"`
}

// SetPassword hashes and sets the staff member's password
func (s *Staff) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (s *Staff) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
	return err == nil
}

// StaffResponse is used for API responses (without sensitive data)
type StaffResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
}

func (s *Staff) ToResponse() StaffResponse {
	return StaffResponse{
		ID:       s.ID,
		Username: s.Username,
		Name:     s.Name,
		Role:     s.Role,
	}
}
