package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// paymentProvider names the gateway every non-cash order settles through.
const paymentProvider = "paymongo"

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in PENDING status with UNPAID payment; for gateway
// orders it additionally requests a payment intent and records the PENDING
// payment attempt inside the same transaction, so a gateway failure leaves
// no partial order behind.
type CreateOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	gateway    ports.PaymentGateway
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	gateway ports.PaymentGateway,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanPlaceOrders() {
		return errs.NewForbiddenError("create order",
			"only customers may place orders")
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		cmd.WaterQuantity(),
		cmd.GallonType(),
		cmd.TotalAmount(),
		cmd.PaymentMethod(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.PaymentMethod() != order.PaymentMethodCOD {
		if err = h.createPaymentIntent(ctx, uow, newOrder); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	change, err := order.NewStatusChange(
		newOrder.ID(), newOrder.Status(), cmd.Actor().ID(), time.Now())
	if err != nil {
		return err
	}
	if err = orderRepo.AppendStatusChange(ctx, change); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// createPaymentIntent asks the gateway for an intent covering the order total
// and records the PENDING payment attempt. An upstream failure aborts the
// surrounding transaction.
func (h CreateOrderCommandHandler) createPaymentIntent(
	ctx context.Context,
	uow OrderPaymentUoW,
	newOrder *order.Order,
) error {
	intent, err := h.gateway.CreateIntent(ctx, newOrder.ID(), newOrder.TotalAmount())
	if err != nil {
		return err
	}

	attempt, err := payment.NewPayment(
		kernel.NewUUID(),
		newOrder.ID(),
		paymentProvider,
		newOrder.PaymentMethod(),
		intent.ID,
		newOrder.TotalAmount(),
	)
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, attempt); err != nil {
		return err
	}

	newOrder.MarkPaymentPending()
	return nil
}
