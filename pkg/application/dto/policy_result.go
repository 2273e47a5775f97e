package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// PlanInput carries everything one comparison needs
type PlanInput struct {
	Parameters        entities.PolicyParameters
	Demand            entities.DemandSequence
	StartingInventory entities.Quantity
	// FixedQuantity of zero means no fixed quantity was supplied and FOQ is skipped
	FixedQuantity entities.Quantity
}

// HasFixedQuantity reports whether FOQ is eligible for evaluation
func (in PlanInput) HasFixedQuantity() bool {
	return in.FixedQuantity != 0
}

// PolicyResult contains the complete output of one policy simulation
type PolicyResult struct {
	Policy           entities.LotSizingPolicy `json:"-" yaml:"-"`
	PolicyName       string                   `json:"policy" yaml:"policy"`
	TotalCost        decimal.Decimal          `json:"total_cost" yaml:"total_cost"`
	TotalHoldingCost decimal.Decimal          `json:"total_holding_cost" yaml:"total_holding_cost"`
	TotalSetupCost   decimal.Decimal          `json:"total_setup_cost" yaml:"total_setup_cost"`
	// EOQ is the precomputed order size; zero for other policies
	EOQ    entities.Quantity       `json:"eoq,omitempty" yaml:"eoq,omitempty"`
	Ledger entities.Ledger         `json:"ledger" yaml:"ledger"`
	Orders []entities.PlannedOrder `json:"orders" yaml:"orders"`
}

// Comparison is the ranked outcome of evaluating every eligible policy
type Comparison struct {
	ID          string         `json:"id,omitempty" yaml:"id,omitempty"`
	Results     []PolicyResult `json:"results" yaml:"results"`
	Best        string         `json:"best" yaml:"best"`
	EvaluatedAt time.Time      `json:"evaluated_at" yaml:"evaluated_at"`
	Duration    time.Duration  `json:"-" yaml:"-"`
}

// BestResult returns the cheapest policy result, or nil for an empty comparison
func (c *Comparison) BestResult() *PolicyResult {
	if c == nil || len(c.Results) == 0 {
		return nil
	}
	return &c.Results[0]
}

// Result looks up the result for a policy
func (c *Comparison) Result(policy entities.LotSizingPolicy) (*PolicyResult, bool) {
	for i := range c.Results {
		if c.Results[i].Policy == policy {
			return &c.Results[i], true
		}
	}
	return nil, false
}
