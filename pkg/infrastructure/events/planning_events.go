package events

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

const (
	OrderPlannedEvent     = "order.planned"
	ReceiptScheduledEvent = "receipt.scheduled"
	PolicyEvaluatedEvent  = "policy.evaluated"
	PlanCompletedEvent    = "plan.completed"
)

type OrderPlanned struct {
	Policy string                `json:"policy"`
	Order  entities.PlannedOrder `json:"order"`
}

type ReceiptScheduled struct {
	Policy        string            `json:"policy"`
	ReceiptPeriod int               `json:"receipt_period"`
	Quantity      entities.Quantity `json:"quantity"`
}

type PolicyEvaluated struct {
	Policy     string          `json:"policy"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	OrderCount int             `json:"order_count"`
}

type PlanCompleted struct {
	BestPolicy string          `json:"best_policy"`
	BestCost   decimal.Decimal `json:"best_cost"`
	Policies   int             `json:"policies"`
}

func NewOrderPlannedEvent(planID string, order entities.PlannedOrder) Event {
	return NewEvent(OrderPlannedEvent, planID, OrderPlanned{
		Policy: order.Policy.String(),
		Order:  order,
	})
}

func NewReceiptScheduledEvent(planID string, order entities.PlannedOrder) Event {
	return NewEvent(ReceiptScheduledEvent, planID, ReceiptScheduled{
		Policy:        order.Policy.String(),
		ReceiptPeriod: order.ReceiptPeriod,
		Quantity:      order.Quantity,
	})
}

func NewPolicyEvaluatedEvent(
	planID string,
	policy entities.LotSizingPolicy,
	totalCost decimal.Decimal,
	orderCount int,
) Event {
	return NewEvent(PolicyEvaluatedEvent, planID, PolicyEvaluated{
		Policy:     policy.String(),
		TotalCost:  totalCost,
		OrderCount: orderCount,
	})
}

func NewPlanCompletedEvent(planID, bestPolicy string, bestCost decimal.Decimal, policies int) Event {
	return NewEvent(PlanCompletedEvent, planID, PlanCompleted{
		BestPolicy: bestPolicy,
		BestCost:   bestCost,
		Policies:   policies,
	})
}
