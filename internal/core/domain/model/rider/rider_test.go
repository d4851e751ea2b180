package rider_test

import (
	"testing"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/rider"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRider(t *testing.T, capacity int) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), "Dario", capacity)
	require.NoError(t, err)
	return r
}

func TestNewRider(t *testing.T) {
	t.Run("creates active available rider with empty ledger", func(t *testing.T) {
		r := newTestRider(t, 20)

		assert.Equal(t, rider.StatusActive, r.Status())
		assert.True(t, r.IsAvailable())
		assert.Equal(t, 20, r.MaxCapacityGallons())
		assert.Equal(t, 0, r.CurrentLoadGallons())
		assert.Equal(t, 0, r.ActiveOrdersCount())
		assert.Equal(t, 20, r.RemainingCapacity())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), "", 20)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), "Dario", 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRider_Validate(t *testing.T) {
	t.Run("zero value rider is rejected", func(t *testing.T) {
		var r rider.Rider
		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})

	t.Run("nil rider is rejected", func(t *testing.T) {
		var r *rider.Rider
		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})
}

func TestRider_Reserve(t *testing.T) {
	t.Run("reserves load and bumps order count", func(t *testing.T) {
		r := newTestRider(t, 20)

		require.NoError(t, r.Reserve(5))

		assert.Equal(t, 5, r.CurrentLoadGallons())
		assert.Equal(t, 1, r.ActiveOrdersCount())
		assert.Equal(t, 15, r.RemainingCapacity())
	})

	t.Run("load never exceeds capacity", func(t *testing.T) {
		r := newTestRider(t, 10)
		require.NoError(t, r.Reserve(7))

		err := r.Reserve(4)

		require.ErrorIs(t, err, rider.ErrNoAvailableRider)
		assert.Equal(t, 7, r.CurrentLoadGallons())
		assert.Equal(t, 1, r.ActiveOrdersCount())
	})

	t.Run("inactive or unavailable riders reject reservations", func(t *testing.T) {
		r := newTestRider(t, 10)
		r.Deactivate()
		require.ErrorIs(t, r.Reserve(1), rider.ErrNoAvailableRider)

		r.Activate()
		r.SetAvailability(false)
		require.ErrorIs(t, r.Reserve(1), rider.ErrNoAvailableRider)
	})

	t.Run("rejects non-positive load", func(t *testing.T) {
		r := newTestRider(t, 10)
		require.ErrorIs(t, r.Reserve(0), rider.ErrNoAvailableRider)
	})
}

func TestRider_Release(t *testing.T) {
	t.Run("returns load to the ledger", func(t *testing.T) {
		r := newTestRider(t, 20)
		require.NoError(t, r.Reserve(8))

		r.Release(8)

		assert.Equal(t, 0, r.CurrentLoadGallons())
		assert.Equal(t, 0, r.ActiveOrdersCount())
	})

	t.Run("counters floor at zero", func(t *testing.T) {
		r := newTestRider(t, 20)

		r.Release(5)

		assert.Equal(t, 0, r.CurrentLoadGallons())
		assert.Equal(t, 0, r.ActiveOrdersCount())
	})
}

func TestRider_CanCarry(t *testing.T) {
	r := newTestRider(t, 10)
	require.NoError(t, r.Reserve(6))

	assert.True(t, r.CanCarry(4))
	assert.False(t, r.CanCarry(5))
	assert.False(t, r.CanCarry(0))
}

func TestRestoreRider(t *testing.T) {
	t.Run("restores persisted ledger state", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := rider.RestoreRider(id, "Mia", rider.StatusActive, false, 30, 12, 2)

		require.NoError(t, err)
		assert.True(t, r.ID().IsEqual(id))
		assert.False(t, r.IsAvailable())
		assert.Equal(t, 12, r.CurrentLoadGallons())
		assert.Equal(t, 2, r.ActiveOrdersCount())
		assert.Equal(t, 18, r.RemainingCapacity())
	})

	t.Run("rejects load above capacity", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "Mia", rider.StatusActive, true, 10, 11, 1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "Mia", rider.StatusUnknown, true, 10, 0, 0)
		require.Error(t, err)
	})
}

func TestStatusFromString(t *testing.T) {
	active, err := rider.StatusFromString("active")
	require.NoError(t, err)
	assert.Equal(t, rider.StatusActive, active)

	inactive, err := rider.StatusFromString("inactive")
	require.NoError(t, err)
	assert.Equal(t, rider.StatusInactive, inactive)

	_, err = rider.StatusFromString("retired")
	require.Error(t, err)
}
