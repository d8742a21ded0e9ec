package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"go-tailorshop/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("should classify constructed errors", func(t *testing.T) {
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(apperr.Validationf("bad input")))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFoundf("order not found")))
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflictf("duplicate phone")))
		assert.Equal(t, apperr.KindState, apperr.KindOf(apperr.Statef("no pending approval")))
	})

	t.Run("should classify wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("create customer: %w", apperr.Conflictf("duplicate phone"))
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(wrapped))
	})

	t.Run("should fall back to internal for plain errors", func(t *testing.T) {
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(nil))
	})
}

func TestMessageFormatting(t *testing.T) {
	err := apperr.Validationf("invalid status %q, allowed: %v", "Shipped", []string{"Cutting"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Shipped"`)
	assert.Contains(t, err.Error(), "Cutting")
}
