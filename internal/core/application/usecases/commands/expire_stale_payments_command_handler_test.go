package commands_test

import (
	"testing"
	"time"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pendingGatewayOrder builds a PENDING gcash order with its payment attempt
// still waiting on the gateway.
func pendingGatewayOrder(t *testing.T) (*order.Order, *payment.Payment) {
	t.Helper()
	amount, err := kernel.NewMoney(9900)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), 4, order.GallonSlim, amount, order.PaymentMethodGCash)
	require.NoError(t, err)

	attempt, err := payment.NewPayment(
		kernel.NewUUID(), o.ID(), "paymongo", order.PaymentMethodGCash, "pi_stale", amount)
	require.NoError(t, err)
	return o, attempt
}

func TestExpireStalePaymentsCommandHandler_Handle_FailsStaleAttempts(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := pendingGatewayOrder(t)

	cmd, err := commands.NewExpireStalePaymentsCommand(30 * time.Minute)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetAllStalePending", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*payment.Payment{attempt}, nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireStalePaymentsCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, payment.StateFailed, attempt.State())
	assert.Equal(t, order.PaymentStatusFailed, aggregate.PaymentStatus())
	assert.Equal(t, order.StatusPending, aggregate.Status())
	paymentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestExpireStalePaymentsCommandHandler_Handle_NothingStaleCommitsEmpty(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewExpireStalePaymentsCommand(30 * time.Minute)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetAllStalePending", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*payment.Payment{}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireStalePaymentsCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	uow.AssertExpectations(t)
}

func TestExpireStalePaymentsCommand_NonPositiveMaxAge(t *testing.T) {
	_, err := commands.NewExpireStalePaymentsCommand(0)
	assert.Error(t, err)
}
