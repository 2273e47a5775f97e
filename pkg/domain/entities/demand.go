package entities

import "fmt"

// DemandSequence holds the gross demand for each period of the horizon
type DemandSequence [Horizon]Quantity

// NewDemandSequence creates a validated DemandSequence
func NewDemandSequence(values []Quantity) (DemandSequence, error) {
	var demand DemandSequence
	if len(values) != Horizon {
		return demand, fmt.Errorf("%w: expected %d periods, got %d",
			ErrMalformedDemandSequence, Horizon, len(values))
	}
	for i, v := range values {
		if v < 0 {
			return demand, fmt.Errorf("%w: period %d demand cannot be negative, got %d",
				ErrMalformedDemandSequence, i+1, v)
		}
		demand[i] = v
	}
	return demand, nil
}

// Total returns the demand summed over the whole horizon
func (d DemandSequence) Total() Quantity {
	return d.Window(0, Horizon)
}

// Average returns the mean demand per period
func (d DemandSequence) Average() float64 {
	return float64(d.Total()) / float64(Horizon)
}

// Window sums demand over n periods starting at from, clipped to the horizon
func (d DemandSequence) Window(from, n int) Quantity {
	var sum Quantity
	for p := from; p < from+n && p < Horizon; p++ {
		if p < 0 {
			continue
		}
		sum += d[p]
	}
	return sum
}

// Slice returns the demand as a plain slice
func (d DemandSequence) Slice() []Quantity {
	out := make([]Quantity, Horizon)
	copy(out, d[:])
	return out
}
