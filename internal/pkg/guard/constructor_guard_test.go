package guard_test

import (
	"errors"
	"testing"

	"refill/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type refillSlot struct {
		gallons int
		guard   guard.ConstructorGuard
	}

	var errSlotNotConstructed = errors.New("refillSlot must be created via newRefillSlot")

	newRefillSlot := func(gallons int) (refillSlot, error) {
		if gallons <= 0 {
			return refillSlot{}, errors.New("gallons must be positive")
		}
		return refillSlot{gallons: gallons, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		slot, err := newRefillSlot(5)

		require.NoError(t, err)
		require.NoError(t, slot.guard.Validate(errSlotNotConstructed))
		assert.Equal(t, 5, slot.gallons)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var slot refillSlot

		err := slot.guard.Validate(errSlotNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errSlotNotConstructed, err)
	})
}

func TestConstructorGuard_DefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}
