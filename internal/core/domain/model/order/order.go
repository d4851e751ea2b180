package order

import (
	"errors"
	"fmt"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the central aggregate: a single customer request for a quantity of
// water, tracked through a fixed lifecycle from creation to settlement.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers
//   - Water quantity must be positive (at least one gallon)
//   - Status only moves along edges of the transition table (see Status)
//   - Payment status reaches PAID only via the payment reconciler or the
//     cash confirmation path
//   - Can only be created through NewOrder / RestoreOrder
//
// Orders are mutated exclusively by command handlers inside a unit of work
// and are never physically deleted.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// riderID is the assigned rider's ID (nil if unassigned)
	riderID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// waterQuantity is the number of gallons requested (must be positive)
	waterQuantity int

	// gallonType is the container format to refill
	gallonType GallonType

	// totalAmount is the settlement amount in centavos
	totalAmount kernel.Money

	// paymentMethod is how the customer settles the order
	paymentMethod PaymentMethod

	// paymentStatus tracks settlement progress
	paymentStatus PaymentStatus

	// eta is the derived delivery estimate (nil until first computed)
	eta *ETA

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in PENDING status with UNPAID payment.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	waterQuantity int,
	gallonType GallonType,
	totalAmount kernel.Money,
	paymentMethod PaymentMethod,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentStatusUnpaid,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setWaterQuantity(waterQuantity),
		o.setGallonType(gallonType),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalAmount
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it accepts the full persisted state including status,
// payment progress, rider assignment, and the last computed ETA, so a
// restored order behaves identically to one mutated through domain
// operations.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	waterQuantity int,
	gallonType GallonType,
	totalAmount kernel.Money,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	status Status,
	riderID *kernel.UUID,
	eta *ETA,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setWaterQuantity(waterQuantity),
		o.setGallonType(gallonType),
		o.setPaymentMethod(paymentMethod),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalAmount
	o.status = status
	o.paymentStatus = paymentStatus
	o.riderID = riderID
	o.eta = eta
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Called when reconstructing orders from persistence to
// guard data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AssignedRider returns the assigned rider's ID, or nil if unassigned.
func (o *Order) AssignedRider() *kernel.UUID {
	return o.riderID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// WaterQuantity returns the number of gallons requested.
func (o *Order) WaterQuantity() int {
	return o.waterQuantity
}

// GallonType returns the container format to refill.
func (o *Order) GallonType() GallonType {
	return o.gallonType
}

// TotalAmount returns the settlement amount.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// PaymentMethod returns how the customer settles the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement progress.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ETA returns the last computed delivery estimate, or nil if none exists.
func (o *Order) ETA() *ETA {
	return o.eta
}

// IsCOD reports whether the order settles in cash at the door.
func (o *Order) IsCOD() bool {
	return o.paymentMethod == PaymentMethodCOD
}

// Confirm transitions the order from PENDING to CONFIRMED.
// Staff confirmation is the gate into dispatch: the caller is expected to
// auto-assign a rider in the same unit of work.
func (o *Order) Confirm() error {
	return o.transitionTo(StatusConfirmed)
}

// Cancel withdraws the order. Cancellation is only legal while the order is
// still PENDING; once confirmed, the order is in the dispatch pipeline and
// must be unwound through cancel-pickup instead.
func (o *Order) Cancel() error {
	if o.status != StatusPending {
		return &InvalidTransitionError{From: o.status, To: StatusCancelled}
	}
	return o.transitionTo(StatusCancelled)
}

// Assign records the rider responsible for the order.
// Assignment carries no lifecycle transition of its own; capacity
// reservation is the dispatcher's concern.
func (o *Order) Assign(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot assign a rider to a %s order", o.status))
	}

	o.riderID = &riderID
	return nil
}

// StartPickup transitions the order from CONFIRMED to PICKUP when the
// assigned rider accepts it, and computes the delivery estimate.
func (o *Order) StartPickup(now time.Time) error {
	if o.riderID == nil {
		return errs.NewValueIsRequiredError("assignedRider")
	}
	if err := o.transitionTo(StatusPickup); err != nil {
		return err
	}

	eta := ComputeETA(o.waterQuantity, now)
	o.eta = &eta
	return nil
}

// StartDelivery transitions the order from PICKUP to OUT_FOR_DELIVERY and
// recomputes the delivery estimate.
func (o *Order) StartDelivery(now time.Time) error {
	if err := o.transitionTo(StatusOutForDelivery); err != nil {
		return err
	}

	eta := ComputeETA(o.waterQuantity, now)
	o.eta = &eta
	return nil
}

// CancelPickup reverts an in-flight order to PENDING and clears the rider
// assignment. The caller is responsible for releasing the rider's reserved
// capacity in the same unit of work.
func (o *Order) CancelPickup() error {
	if err := o.transitionTo(StatusPending); err != nil {
		return err
	}

	o.riderID = nil
	return nil
}

// MarkDelivered transitions the order from OUT_FOR_DELIVERY to DELIVERED.
// For cash orders the caller immediately cascades to PENDING_PAYMENT within
// the same unit of work.
func (o *Order) MarkDelivered() error {
	return o.transitionTo(StatusDelivered)
}

// MarkPendingPayment transitions the order to PENDING_PAYMENT, either as the
// COD cascade after delivery or as the rider's explicit manual command.
func (o *Order) MarkPendingPayment() error {
	return o.transitionTo(StatusPendingPayment)
}

// Complete transitions the order to COMPLETED, the terminal settled state.
func (o *Order) Complete() error {
	return o.transitionTo(StatusCompleted)
}

// ConfirmPayment settles the order's payment. The idempotency guard rejects
// a second confirmation with ErrPaymentAlreadyConfirmed so a double-submitted
// cash settlement performs no further mutation.
func (o *Order) ConfirmPayment() error {
	if o.paymentStatus == PaymentStatusPaid {
		return ErrPaymentAlreadyConfirmed
	}

	o.paymentStatus = PaymentStatusPaid
	return nil
}

// MarkPaymentPending records that a gateway payment intent exists for the order.
func (o *Order) MarkPaymentPending() {
	o.paymentStatus = PaymentStatusPending
}

// MarkPaymentFailed records a failed gateway settlement. The lifecycle status
// is deliberately left untouched.
func (o *Order) MarkPaymentFailed() {
	o.paymentStatus = PaymentStatusFailed
}

// transitionTo applies a lifecycle transition after asserting it against the
// transition table.
func (o *Order) transitionTo(to Status) error {
	if err := o.status.AssertTransition(to); err != nil {
		return err
	}

	o.status = to
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the owning customer reference.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setWaterQuantity validates and sets the requested gallons.
// Quantity must be at least one.
func (o *Order) setWaterQuantity(waterQuantity int) error {
	if waterQuantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("waterQuantity",
			fmt.Errorf("%d is not greater than 0", waterQuantity))
	}
	o.waterQuantity = waterQuantity
	return nil
}

// setGallonType validates and sets the container format.
func (o *Order) setGallonType(gallonType GallonType) error {
	if err := gallonType.Validate(); err != nil {
		return err
	}
	o.gallonType = gallonType
	return nil
}

// setPaymentMethod validates and sets the settlement method.
func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}
