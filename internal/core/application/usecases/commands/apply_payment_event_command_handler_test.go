package commands_test

import (
	"testing"
	"time"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testIntentID = "pi_webhook_1"

// gatewayOrderWithPayment builds a GCash order in the given terminal delivery
// stage plus its PENDING payment attempt.
func gatewayOrderWithPayment(t *testing.T, delivered bool) (*order.Order, *payment.Payment) {
	t.Helper()
	riderActor := actorWithRole(t, kernel.RoleRider)
	aggregate := outForDeliveryOrder(t, riderActor, order.PaymentMethodGCash)
	if delivered {
		require.NoError(t, aggregate.MarkDelivered())
	}

	attempt, err := payment.NewPayment(
		kernel.NewUUID(), aggregate.ID(),
		"paymongo", order.PaymentMethodGCash, testIntentID, aggregate.TotalAmount())
	require.NoError(t, err)
	return aggregate, attempt
}

func paidEventCommand(t *testing.T, eventType string) commands.ApplyPaymentEventCommand {
	t.Helper()
	cmd, err := commands.NewApplyPaymentEventCommand("paymongo", "evt_1", eventType, testIntentID)
	require.NoError(t, err)
	return cmd
}

func newWebhookUoW(ctx any, orderRepo *MockOrderRepository, paymentRepo *MockPaymentRepository) (*MockUoW, *MockOrderPaymentRiderUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("Commit", ctx).Return(nil).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderPaymentRiderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestApplyPaymentEventCommandHandler_Handle_PaidCompletesDeliveredOrder(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := gatewayOrderWithPayment(t, true)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).Return(attempt, nil).Once()
	paymentRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*payment.Event")).Return(nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("AppendStatusChange", mock.Anything, mock.MatchedBy(func(c order.StatusChange) bool {
		return c.Status() == order.StatusCompleted && c.ChangedBy().IsEqual(kernel.SystemActorID())
	})).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	riderRepo := new(MockRiderRepository)
	riderRepo.On("ReleaseCapacity", mock.Anything, *aggregate.AssignedRider(), aggregate.WaterQuantity()).
		Return(nil).Once()

	uow, factory := newWebhookUoW(ctx, orderRepo, paymentRepo)
	uow.On("RiderRepository").Return(riderRepo)

	notifier := new(MockStatusNotifier)
	notifier.On("NotifyStatusChanged", mock.Anything, aggregate).Return(nil).Once()

	h := commands.NewApplyPaymentEventCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, paidEventCommand(t, payment.EventTypePaid)))

	assert.Equal(t, order.StatusCompleted, aggregate.Status())
	assert.Equal(t, order.PaymentStatusPaid, aggregate.PaymentStatus())
	assert.Equal(t, payment.StatePaid, attempt.State())
	require.NotNil(t, attempt.PaidAt())
	notifier.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
}

func TestApplyPaymentEventCommandHandler_Handle_PaidInTransitKeepsStatus(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := gatewayOrderWithPayment(t, false)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).Return(attempt, nil).Once()
	paymentRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*payment.Event")).Return(nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	_, factory := newWebhookUoW(ctx, orderRepo, paymentRepo)

	h := commands.NewApplyPaymentEventCommandHandler(factory, new(MockStatusNotifier))
	require.NoError(t, h.Handle(ctx, paidEventCommand(t, payment.EventTypePaid)))

	// Payment settles but the order stays in transit; the handover flow
	// finishes it later without a second settlement.
	assert.Equal(t, order.StatusOutForDelivery, aggregate.Status())
	assert.Equal(t, order.PaymentStatusPaid, aggregate.PaymentStatus())
	orderRepo.AssertNotCalled(t, "AppendStatusChange", mock.Anything, mock.Anything)
}

func TestApplyPaymentEventCommandHandler_Handle_DuplicateEventIsNoOp(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := gatewayOrderWithPayment(t, true)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).Return(attempt, nil).Once()
	paymentRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*payment.Event")).
		Return(payment.ErrEventAlreadyProcessed).Once()

	orderRepo := new(MockOrderRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderPaymentRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPaymentEventCommandHandler(factory, new(MockStatusNotifier))
	require.NoError(t, h.Handle(ctx, paidEventCommand(t, payment.EventTypePaid)))

	assert.Equal(t, order.StatusDelivered, aggregate.Status())
	assert.Equal(t, payment.StatePending, attempt.State())
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestApplyPaymentEventCommandHandler_Handle_FailedMarksPaymentFailed(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := gatewayOrderWithPayment(t, true)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).Return(attempt, nil).Once()
	paymentRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*payment.Event")).Return(nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	_, factory := newWebhookUoW(ctx, orderRepo, paymentRepo)

	h := commands.NewApplyPaymentEventCommandHandler(factory, new(MockStatusNotifier))
	require.NoError(t, h.Handle(ctx, paidEventCommand(t, payment.EventTypeFailed)))

	assert.Equal(t, payment.StateFailed, attempt.State())
	assert.Equal(t, order.PaymentStatusFailed, aggregate.PaymentStatus())
	// A failed settlement never moves the order.
	assert.Equal(t, order.StatusDelivered, aggregate.Status())
}

func TestApplyPaymentEventCommandHandler_Handle_UnknownIntentFails(t *testing.T) {
	ctx := t.Context()

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).
		Return(nil, errs.NewObjectNotFoundError("intentId", testIntentID)).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderPaymentRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyPaymentEventCommandHandler(factory, new(MockStatusNotifier))
	err := h.Handle(ctx, paidEventCommand(t, payment.EventTypePaid))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestApplyPaymentEventCommandHandler_Handle_UnrecognizedTypeOnlyRecords(t *testing.T) {
	ctx := t.Context()
	aggregate, attempt := gatewayOrderWithPayment(t, true)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetByIntentID", mock.Anything, testIntentID).Return(attempt, nil).Once()
	paymentRepo.On("AppendEvent", mock.Anything, mock.MatchedBy(func(e *payment.Event) bool {
		return e.EventType() == "payment.chargeback" && e.ReceivedAt().Before(time.Now().Add(time.Second))
	})).Return(nil).Once()
	paymentRepo.On("Update", mock.Anything, attempt).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	_, factory := newWebhookUoW(ctx, orderRepo, paymentRepo)

	h := commands.NewApplyPaymentEventCommandHandler(factory, new(MockStatusNotifier))
	require.NoError(t, h.Handle(ctx, paidEventCommand(t, "payment.chargeback")))

	assert.Equal(t, payment.StatePending, attempt.State())
	assert.Equal(t, order.StatusDelivered, aggregate.Status())
}
