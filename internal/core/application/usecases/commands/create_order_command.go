package commands

import (
	"errors"
	"fmt"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request for a water refill.
// The boundary layer prices the request; the command carries the resulting
// total in centavos.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, 5, order.GallonRound, 12500, order.PaymentMethodCOD)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, gateway)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor         kernel.Actor
	orderID       kernel.UUID
	waterQuantity int
	gallonType    order.GallonType
	totalAmount   kernel.Money
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new refill order.
// Validates the caller, quantity, gallon type, amount, and payment method.
func NewCreateOrderCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	waterQuantity int,
	gallonType order.GallonType,
	totalAmountCentavos int64,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setWaterQuantity(waterQuantity),
		cmd.setGallonType(gallonType),
		cmd.setTotalAmount(totalAmountCentavos),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WaterQuantity returns the requested number of gallons.
func (c CreateOrderCommand) WaterQuantity() int {
	return c.waterQuantity
}

// GallonType returns the requested container type.
func (c CreateOrderCommand) GallonType() order.GallonType {
	return c.gallonType
}

// TotalAmount returns the priced order total.
func (c CreateOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

// PaymentMethod returns the settlement method the customer chose.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setWaterQuantity(waterQuantity int) error {
	if waterQuantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("waterQuantity",
			fmt.Errorf("%d is not greater than 0", waterQuantity))
	}

	c.waterQuantity = waterQuantity
	return nil
}

func (c *CreateOrderCommand) setGallonType(gallonType order.GallonType) error {
	if err := gallonType.Validate(); err != nil {
		return err
	}

	c.gallonType = gallonType
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmountCentavos int64) error {
	amount, err := kernel.NewMoney(totalAmountCentavos)
	if err != nil {
		return err
	}

	c.totalAmount = amount
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
