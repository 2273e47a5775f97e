package entities

import (
	"fmt"
	"strings"
)

// Horizon is the number of planning periods every simulation covers
const Horizon = 10

// Quantity represents an integer quantity value for discrete units
type Quantity int64

// LotSizingPolicy represents the rule used to size replenishment orders
type LotSizingPolicy int

const (
	LotForLot LotSizingPolicy = iota
	EconomicOrderQuantity
	FixedOrderQuantity
)

// String method for LotSizingPolicy enum
func (p LotSizingPolicy) String() string {
	switch p {
	case LotForLot:
		return "Lot-for-Lot (L4L)"
	case EconomicOrderQuantity:
		return "Economic Order Quantity (EOQ)"
	case FixedOrderQuantity:
		return "Fixed Order Quantity (FOQ)"
	default:
		return "Unknown"
	}
}

// Code returns the short lowercase identifier used on the command line and in APIs
func (p LotSizingPolicy) Code() string {
	switch p {
	case LotForLot:
		return "l4l"
	case EconomicOrderQuantity:
		return "eoq"
	case FixedOrderQuantity:
		return "foq"
	default:
		return "unknown"
	}
}

// AllPolicies returns every policy in evaluation order
func AllPolicies() []LotSizingPolicy {
	return []LotSizingPolicy{LotForLot, EconomicOrderQuantity, FixedOrderQuantity}
}

// ParseLotSizingPolicy accepts either a short code or a display name
func ParseLotSizingPolicy(s string) (LotSizingPolicy, error) {
	needle := strings.TrimSpace(s)
	for _, p := range AllPolicies() {
		if strings.EqualFold(needle, p.Code()) || strings.EqualFold(needle, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown lot sizing policy %q", s)
}
