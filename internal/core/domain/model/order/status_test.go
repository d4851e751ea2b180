package order_test

import (
	"fmt"
	"testing"

	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allStatuses are the defined lifecycle states, excluding StatusUnknown.
func allStatuses() []order.Status {
	return []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusPickup,
		order.StatusOutForDelivery,
		order.StatusDelivered,
		order.StatusPendingPayment,
		order.StatusCompleted,
		order.StatusCancelled,
	}
}

// allowedTransitions mirrors the transition table; every pair not listed here
// must be rejected by AssertTransition.
func allowedTransitions() map[order.Status][]order.Status {
	return map[order.Status][]order.Status{
		order.StatusPending:        {order.StatusConfirmed, order.StatusCancelled},
		order.StatusConfirmed:      {order.StatusPickup, order.StatusPending, order.StatusCancelled},
		order.StatusPickup:         {order.StatusOutForDelivery, order.StatusPending},
		order.StatusOutForDelivery: {order.StatusDelivered, order.StatusPendingPayment},
		order.StatusDelivered:      {order.StatusPendingPayment, order.StatusCompleted},
		order.StatusPendingPayment: {order.StatusCompleted},
		order.StatusCompleted:      {},
		order.StatusCancelled:      {},
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate defined statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject unknown and out-of-range values", func(t *testing.T) {
		for _, status := range []order.Status{order.StatusUnknown, order.Status(-1), order.Status(99)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.StatusPending, "PENDING"},
		{order.StatusConfirmed, "CONFIRMED"},
		{order.StatusPickup, "PICKUP"},
		{order.StatusOutForDelivery, "OUT_FOR_DELIVERY"},
		{order.StatusDelivered, "DELIVERED"},
		{order.StatusPendingPayment, "PENDING_PAYMENT"},
		{order.StatusCompleted, "COMPLETED"},
		{order.StatusCancelled, "CANCELLED"},
		{order.StatusUnknown, "UNKNOWN"},
		{order.Status(42), "UNKNOWN"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "UNKNOWN", "pending", "SHIPPED"} {
			_, err := order.StatusFromString(s)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

// TestStatus_AssertTransition_Exhaustive walks every (from, to) pair of
// defined statuses: the assertion succeeds iff to is in the allowed set for
// from and to differs from from.
func TestStatus_AssertTransition_Exhaustive(t *testing.T) {
	allowed := allowedTransitions()

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			name := fmt.Sprintf("%s->%s", from, to)
			t.Run(name, func(t *testing.T) {
				err := from.AssertTransition(to)

				if from == to {
					require.Error(t, err)
					require.ErrorIs(t, err, order.ErrSameStatus)
					return
				}

				legal := false
				for _, a := range allowed[from] {
					if a == to {
						legal = true
					}
				}

				if legal {
					require.NoError(t, err)
				} else {
					require.Error(t, err)
					require.ErrorIs(t, err, order.ErrInvalidTransition)

					var invalid *order.InvalidTransitionError
					require.ErrorAs(t, err, &invalid)
					assert.Equal(t, from, invalid.From)
					assert.Equal(t, to, invalid.To)
				}
			})
		}
	}
}

func TestStatus_AssertTransition_InvalidInput(t *testing.T) {
	t.Run("rejects transition from unknown status", func(t *testing.T) {
		err := order.StatusUnknown.AssertTransition(order.StatusPending)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects transition into unknown status", func(t *testing.T) {
		err := order.StatusPending.AssertTransition(order.StatusUnknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, status := range allStatuses() {
		expected := status == order.StatusCompleted || status == order.StatusCancelled
		assert.Equal(t, expected, status.IsTerminal(), "status %s", status)
	}

	assert.False(t, order.StatusUnknown.IsTerminal())
}
