package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/config"
)

// PlanRequest represents the request body for evaluating a plan
type PlanRequest struct {
	Name              string          `json:"name,omitempty"`
	Demand            []int64         `json:"demand" binding:"required"`
	LeadTime          int             `json:"lead_time"`
	SafetyStock       int64           `json:"safety_stock"`
	StartingInventory int64           `json:"starting_inventory"`
	HoldingCost       decimal.Decimal `json:"holding_cost"`
	SetupCost         decimal.Decimal `json:"setup_cost"`
	FixedQuantity     *int64          `json:"fixed_quantity,omitempty"`
}

// Scenario converts the request into a scenario so it passes the same validation as files
func (r PlanRequest) Scenario() *config.Scenario {
	return &config.Scenario{
		Name:              r.Name,
		Demand:            r.Demand,
		LeadTime:          r.LeadTime,
		SafetyStock:       r.SafetyStock,
		StartingInventory: r.StartingInventory,
		HoldingCost:       r.HoldingCost,
		SetupCost:         r.SetupCost,
		FixedQuantity:     r.FixedQuantity,
	}
}

// PlanSummary is one entry of the plan listing
type PlanSummary struct {
	ID          string          `json:"id"`
	Best        string          `json:"best"`
	BestCost    decimal.Decimal `json:"best_cost"`
	Policies    int             `json:"policies"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
}

// LedgerResponse carries one policy's period ledger
type LedgerResponse struct {
	PlanID string                  `json:"plan_id"`
	Policy string                  `json:"policy"`
	Ledger entities.Ledger         `json:"ledger"`
	Orders []entities.PlannedOrder `json:"orders"`
}

// PolicyInfo describes a supported lot-sizing policy
type PolicyInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
