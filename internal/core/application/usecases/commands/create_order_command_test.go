package commands_test

import (
	"testing"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	customer := actorWithRole(t, kernel.RoleCustomer)

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			customer, kernel.NewUUID(), 5, order.GallonRound, 12500, order.PaymentMethodCOD)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, 5, cmd.WaterQuantity())
		assert.Equal(t, order.GallonRound, cmd.GallonType())
		assert.Equal(t, int64(12500), cmd.TotalAmount().Centavos())
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		tests := []struct {
			name       string
			quantity   int
			gallonType order.GallonType
			amount     int64
			method     order.PaymentMethod
		}{
			{"zero quantity", 0, order.GallonRound, 12500, order.PaymentMethodCOD},
			{"negative quantity", -3, order.GallonRound, 12500, order.PaymentMethodCOD},
			{"unknown gallon type", 5, order.GallonUnknown, 12500, order.PaymentMethodCOD},
			{"negative amount", 5, order.GallonRound, -1, order.PaymentMethodCOD},
			{"unknown payment method", 5, order.GallonRound, 12500, order.PaymentMethodUnknown},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := commands.NewCreateOrderCommand(
					customer, kernel.NewUUID(), tt.quantity, tt.gallonType, tt.amount, tt.method)
				assert.Error(t, err)
			})
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
