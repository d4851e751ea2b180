package kernel

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// Money is a value object holding a monetary amount in minor units (centavos).
// Keeping amounts in minor units avoids floating-point rounding and matches
// the representation the payment gateway expects on the wire.
//
// Money is immutable; the zero value represents zero centavos and is valid.
type Money struct {
	centavos int64
}

// NewMoney creates a Money amount from minor units.
// Negative amounts are rejected: order totals and payment amounts are
// always non-negative in this domain.
func NewMoney(centavos int64) (Money, error) {
	if centavos < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d centavos is negative", centavos))
	}
	return Money{centavos: centavos}, nil
}

// Centavos returns the amount in minor units.
func (m Money) Centavos() int64 {
	return m.centavos
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.centavos == 0
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.centavos == other.centavos
}

// String renders the amount as pesos with two decimal places, e.g. "125.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.centavos/100, m.centavos%100)
}
