package order

import (
	"fmt"
	"time"
)

const (
	// etaBaseMinutes is the fixed preparation-and-travel floor of every delivery.
	etaBaseMinutes = 20
	// etaPerGallonMinutes is the handling time added per gallon.
	etaPerGallonMinutes = 5
	// etaSpreadMinutes is the width of the quoted window.
	etaSpreadMinutes = 15
)

// ETA is a derived, non-authoritative delivery estimate quoted to the
// customer. The distance term of the dispatch scoring is a placeholder, so
// the estimate is driven by order size alone; it is recomputed whenever the
// rider starts pickup or delivery.
type ETA struct {
	minMinutes int
	maxMinutes int
	text       string
	computedAt time.Time
}

// ComputeETA derives an estimate window from the ordered quantity.
func ComputeETA(waterQuantity int, now time.Time) ETA {
	minMinutes := etaBaseMinutes + etaPerGallonMinutes*waterQuantity
	maxMinutes := minMinutes + etaSpreadMinutes

	return ETA{
		minMinutes: minMinutes,
		maxMinutes: maxMinutes,
		text:       fmt.Sprintf("%d-%d mins", minMinutes, maxMinutes),
		computedAt: now,
	}
}

// RestoreETA reconstructs an estimate from persistence.
func RestoreETA(minMinutes, maxMinutes int, text string, computedAt time.Time) ETA {
	return ETA{
		minMinutes: minMinutes,
		maxMinutes: maxMinutes,
		text:       text,
		computedAt: computedAt,
	}
}

// MinMinutes returns the lower bound of the quoted window.
func (e ETA) MinMinutes() int {
	return e.minMinutes
}

// MaxMinutes returns the upper bound of the quoted window.
func (e ETA) MaxMinutes() int {
	return e.maxMinutes
}

// Text returns the human-readable window, e.g. "45-60 mins".
func (e ETA) Text() string {
	return e.text
}

// ComputedAt returns when the estimate was produced.
func (e ETA) ComputedAt() time.Time {
	return e.computedAt
}
