package entities

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// PolicyParameters bundles the lot-sizing inputs shared by every policy.
// Fields are unexported so a constructed value cannot change.
type PolicyParameters struct {
	leadTime    int
	safetyStock Quantity
	holdingCost decimal.Decimal
	setupCost   decimal.Decimal
}

// NewPolicyParameters creates validated PolicyParameters
func NewPolicyParameters(
	leadTime int,
	safetyStock Quantity,
	holdingCost, setupCost decimal.Decimal,
) (PolicyParameters, error) {
	if leadTime < 0 {
		return PolicyParameters{}, fmt.Errorf("%w: lead time cannot be negative, got %d",
			ErrInvalidParameter, leadTime)
	}
	if safetyStock < 0 {
		return PolicyParameters{}, fmt.Errorf("%w: safety stock cannot be negative, got %d",
			ErrInvalidParameter, safetyStock)
	}
	if holdingCost.IsNegative() {
		return PolicyParameters{}, fmt.Errorf("%w: holding cost cannot be negative, got %s",
			ErrInvalidParameter, holdingCost)
	}
	if setupCost.IsNegative() {
		return PolicyParameters{}, fmt.Errorf("%w: setup cost cannot be negative, got %s",
			ErrInvalidParameter, setupCost)
	}

	return PolicyParameters{
		leadTime:    leadTime,
		safetyStock: safetyStock,
		holdingCost: holdingCost,
		setupCost:   setupCost,
	}, nil
}

func (p PolicyParameters) LeadTime() int                { return p.leadTime }
func (p PolicyParameters) SafetyStock() Quantity        { return p.safetyStock }
func (p PolicyParameters) HoldingCost() decimal.Decimal { return p.holdingCost }
func (p PolicyParameters) SetupCost() decimal.Decimal   { return p.setupCost }

// NetRequirement is the shortfall of on-hand stock against demand plus safety stock
func (p PolicyParameters) NetRequirement(periodDemand, onHandInventory Quantity) Quantity {
	return max(0, periodDemand+p.safetyStock-onHandInventory)
}

// LotForLot orders exactly the net requirement
func (p PolicyParameters) LotForLot(netRequirement Quantity) Quantity {
	return netRequirement
}

// EconomicOrderQuantity returns round(sqrt(2 * averageDemand * setupCost / holdingCost)).
// Halves round to even.
func (p PolicyParameters) EconomicOrderQuantity(averageDemand float64) (Quantity, error) {
	if !p.holdingCost.IsPositive() {
		return 0, fmt.Errorf("%w: EOQ requires a positive holding cost, got %s",
			ErrInvalidParameter, p.holdingCost)
	}
	if averageDemand < 0 || math.IsNaN(averageDemand) || math.IsInf(averageDemand, 0) {
		return 0, fmt.Errorf("%w: EOQ requires a finite non-negative average demand, got %v",
			ErrInvalidParameter, averageDemand)
	}

	eoq := math.Sqrt((2 * averageDemand * p.setupCost.InexactFloat64()) / p.holdingCost.InexactFloat64())
	return Quantity(math.RoundToEven(eoq)), nil
}

// FixedOrderQuantity orders the fixed batch, or the net requirement when that is larger.
func (p PolicyParameters) FixedOrderQuantity(netRequirement, fixedQty Quantity) Quantity {
	return max(fixedQty, netRequirement)
}
