package services

import (
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/rider"
)

// Scoring weights for rider selection. Load and active-order count dominate
// so that work spreads across the fleet; remaining capacity is a light
// tiebreaker. Distance carries zero weight until rider geolocation lands,
// but stays in the formula so the weights document the intended shape.
const (
	weightLoad      = 0.5
	weightOrders    = 0.4
	weightRemaining = 0.1
	weightDistance  = 0.0
)

// RiderDispatcher is a domain service responsible for finding and assigning
// the best available rider for a refill order.
//
// Business rules:
//   - Orders must be valid before dispatch
//   - Riders must be active, available, and have remaining gallon capacity
//     for the order's full quantity
//   - Selection maximizes the dispatch score; ties go to the smallest rider
//     identifier so repeated runs over the same fleet pick the same rider
//   - Dispatch reserves the rider's capacity and assigns the order atomically
type RiderDispatcher struct{}

// NewRiderDispatcher creates a new RiderDispatcher instance.
func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Dispatch finds the best rider for the order, reserves capacity on the rider
// and records the assignment on the order.
//
// Returns rider.ErrNoAvailableRider when no rider in the candidate set can
// take the order.
func (d RiderDispatcher) Dispatch(o *order.Order, riders []*rider.Rider) (*rider.Rider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findBestRider(o, riders)
	if err != nil {
		return nil, err
	}

	if err = best.Reserve(o.WaterQuantity()); err != nil {
		return nil, err
	}

	if err = o.Assign(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// Score computes the dispatch score for one rider. Exposed so operator
// tooling can explain why a rider was picked.
func (d RiderDispatcher) Score(r *rider.Rider) float64 {
	return weightLoad/float64(r.CurrentLoadGallons()+1) +
		weightOrders/float64(r.ActiveOrdersCount()+1) +
		weightRemaining*float64(r.RemainingCapacity()) +
		weightDistance*0
}

// findBestRider evaluates the candidate set and returns the eligible rider
// with the highest score.
func (d RiderDispatcher) findBestRider(o *order.Order, riders []*rider.Rider) (*rider.Rider, error) {
	var (
		best      *rider.Rider
		bestScore float64
	)

	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		if !r.CanCarry(o.WaterQuantity()) {
			continue
		}

		score := d.Score(r)
		if best == nil || score > bestScore ||
			(score == bestScore && r.ID().Less(best.ID())) {
			best = r
			bestScore = score
		}
	}

	if best == nil {
		return nil, rider.ErrNoAvailableRider
	}

	return best, nil
}
