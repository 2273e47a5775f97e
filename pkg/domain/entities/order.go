package entities

import (
	"fmt"
)

// PlannedOrder represents a replenishment order released in one period and
// received leadTime periods later
type PlannedOrder struct {
	Policy        LotSizingPolicy `json:"-" yaml:"-"`
	ReleasePeriod int             `json:"release_period" yaml:"release_period"`
	ReceiptPeriod int             `json:"receipt_period" yaml:"receipt_period"`
	Quantity      Quantity        `json:"quantity" yaml:"quantity"`
}

// NewPlannedOrder creates a validated PlannedOrder. Periods are zero-based.
func NewPlannedOrder(
	policy LotSizingPolicy,
	releasePeriod, receiptPeriod int,
	quantity Quantity,
) (*PlannedOrder, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if releasePeriod < 0 {
		return nil, fmt.Errorf("release period cannot be negative, got %d", releasePeriod)
	}
	if releasePeriod > receiptPeriod {
		return nil, fmt.Errorf("release period %d cannot be after receipt period %d",
			releasePeriod, receiptPeriod)
	}
	if receiptPeriod >= Horizon {
		return nil, fmt.Errorf("receipt period %d falls outside the %d-period horizon",
			receiptPeriod, Horizon)
	}

	return &PlannedOrder{
		Policy:        policy,
		ReleasePeriod: releasePeriod,
		ReceiptPeriod: receiptPeriod,
		Quantity:      quantity,
	}, nil
}
