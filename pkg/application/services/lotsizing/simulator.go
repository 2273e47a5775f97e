package lotsizing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// simulationState is owned by a single Simulate call and never shared.
//
// Two inventory ledgers are kept. projectedInventory drives the
// reorder trigger and is never clamped; onHandInventory is what gets reported
// and costed and never drops below safety stock.
type simulationState struct {
	scheduledReceipts  [entities.Horizon]entities.Quantity
	plannedOrders      [entities.Horizon]entities.Quantity
	projectedInventory [entities.Horizon]entities.Quantity

	onHandInventory  entities.Quantity
	totalHoldingCost decimal.Decimal
	totalSetupCost   decimal.Decimal
}

// Simulate runs the forward pass over the horizon for one lot-sizing policy.
// fixedQuantity is only read for FixedOrderQuantity, where it must be positive.
func Simulate(
	params entities.PolicyParameters,
	demand entities.DemandSequence,
	startingInventory entities.Quantity,
	policy entities.LotSizingPolicy,
	fixedQuantity entities.Quantity,
) (*dto.PolicyResult, error) {
	if err := validateRun(demand, startingInventory, policy, fixedQuantity); err != nil {
		return nil, err
	}

	var eoq entities.Quantity
	if policy == entities.EconomicOrderQuantity {
		q, err := params.EconomicOrderQuantity(demand.Average())
		if err != nil {
			return nil, fmt.Errorf("failed to size %s: %w", policy, err)
		}
		eoq = q
	}

	leadTime := params.LeadTime()
	state := &simulationState{
		onHandInventory:  startingInventory,
		totalHoldingCost: decimal.Zero,
		totalSetupCost:   decimal.Zero,
	}
	result := &dto.PolicyResult{
		Policy:     policy,
		PolicyName: policy.String(),
		EOQ:        eoq,
		Orders:     []entities.PlannedOrder{},
	}

	state.projectedInventory[0] = startingInventory
	for p := 0; p < entities.Horizon; p++ {
		if p > 0 {
			state.projectedInventory[p] = state.projectedInventory[p-1]
			if p >= leadTime {
				state.projectedInventory[p] += state.plannedOrders[p-leadTime]
			}
		}

		netRequirement := params.NetRequirement(demand[p], state.projectedInventory[p])
		state.projectedInventory[p] -= demand[p]

		var lotSize entities.Quantity
		var triggered bool
		setupCostIncurred := decimal.Zero
		if leadTime < entities.Horizon && p < entities.Horizon-leadTime {
			lotSize, triggered = state.lotSize(params, demand, p, policy, eoq, fixedQuantity)
		}
		if triggered {
			setupCostIncurred = params.SetupCost()
		}
		if lotSize > 0 {
			order, err := entities.NewPlannedOrder(policy, p, p+leadTime, lotSize)
			if err != nil {
				return nil, fmt.Errorf("period %d: %w", p+1, err)
			}
			state.plannedOrders[p] = lotSize
			state.scheduledReceipts[p+leadTime] = lotSize
			result.Orders = append(result.Orders, *order)

			logrus.WithFields(logrus.Fields{
				"policy":  policy.Code(),
				"period":  p + 1,
				"receipt": p + leadTime + 1,
				"qty":     lotSize,
			}).Debug("order planned")
		}

		state.onHandInventory = max(
			state.onHandInventory+state.scheduledReceipts[p]-demand[p],
			params.SafetyStock(),
		)
		holdingCostIncurred := decimal.NewFromInt(int64(state.onHandInventory)).Mul(params.HoldingCost())
		state.totalHoldingCost = state.totalHoldingCost.Add(holdingCostIncurred)
		state.totalSetupCost = state.totalSetupCost.Add(setupCostIncurred)

		result.Ledger[p] = entities.PeriodRecord{
			Period:              p + 1,
			Demand:              demand[p],
			PlannedOrder:        state.plannedOrders[p],
			ScheduledReceipt:    state.scheduledReceipts[p],
			OnHandInventory:     state.onHandInventory,
			NetRequirement:      netRequirement,
			LotSize:             lotSize,
			HoldingCostIncurred: holdingCostIncurred,
			SetupCostIncurred:   setupCostIncurred,
		}
	}

	result.TotalHoldingCost = state.totalHoldingCost
	result.TotalSetupCost = state.totalSetupCost
	result.TotalCost = state.totalHoldingCost.Add(state.totalSetupCost)
	return result, nil
}

// lotSize returns the order to release in period p and whether a reorder
// trigger fired. A fired trigger is charged setup even when the quantity is zero.
// The caller guarantees p+leadTime is inside the horizon.
func (s *simulationState) lotSize(
	params entities.PolicyParameters,
	demand entities.DemandSequence,
	p int,
	policy entities.LotSizingPolicy,
	eoq, fixedQuantity entities.Quantity,
) (entities.Quantity, bool) {
	leadTime := params.LeadTime()
	available := s.projectedInventory[p]

	if policy == entities.LotForLot {
		futurePeriod := p + leadTime
		qty := params.LotForLot(params.NetRequirement(demand[futurePeriod], available))
		return qty, qty > 0
	}

	futurePeriods := min(leadTime+2, entities.Horizon-p)
	futureDemand := demand.Window(p, futurePeriods)
	if available-futureDemand >= params.SafetyStock() {
		return 0, false
	}

	switch policy {
	case entities.EconomicOrderQuantity:
		if available < demand[p+leadTime]+params.SafetyStock() {
			return eoq, true
		}
		return 0, false
	case entities.FixedOrderQuantity:
		// the batch is released as is, not topped up to the net requirement
		return params.FixedOrderQuantity(0, fixedQuantity), true
	default:
		return 0, false
	}
}

func validateRun(
	demand entities.DemandSequence,
	startingInventory entities.Quantity,
	policy entities.LotSizingPolicy,
	fixedQuantity entities.Quantity,
) error {
	for i, d := range demand {
		if d < 0 {
			return fmt.Errorf("%w: period %d demand cannot be negative, got %d",
				entities.ErrMalformedDemandSequence, i+1, d)
		}
	}
	if startingInventory < 0 {
		return fmt.Errorf("%w: starting inventory cannot be negative, got %d",
			entities.ErrInvalidParameter, startingInventory)
	}

	switch policy {
	case entities.LotForLot, entities.EconomicOrderQuantity:
		return nil
	case entities.FixedOrderQuantity:
		if fixedQuantity == 0 {
			return fmt.Errorf("%w: %s needs a fixed quantity", entities.ErrMissingFixedQuantity, policy)
		}
		if fixedQuantity < 0 {
			return fmt.Errorf("%w: fixed quantity must be positive, got %d",
				entities.ErrInvalidParameter, fixedQuantity)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown lot sizing policy %d", entities.ErrInvalidParameter, int(policy))
	}
}
