package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShopCode(t *testing.T) {
	now := time.UnixMilli(1700000000482)

	code := GenerateShopCode("Raj Tailors", now)
	assert.Regexp(t, regexp.MustCompile(`^RAJ\d{5}$`), code)
	assert.Contains(t, code, "482")

	t.Run("short name", func(t *testing.T) {
		code := GenerateShopCode("Al", now)
		assert.Regexp(t, regexp.MustCompile(`^AL\d{5}$`), code)
	})

	t.Run("non letters skipped", func(t *testing.T) {
		code := GenerateShopCode("7 Star Fits", now)
		assert.Regexp(t, regexp.MustCompile(`^STA\d{5}$`), code)
	})
}

func TestStaffPassword(t *testing.T) {
	s := Staff{}
	assert.NoError(t, s.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", s.PasswordHash)
	assert.True(t, s.CheckPassword("secret123"))
	assert.False(t, s.CheckPassword("wrong"))
}
