package lotsizing

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// ledgerRow holds a PeriodRecord's quantities as
// {demand, planned, receipt, onHand, net, lot}
type ledgerRow [6]entities.Quantity

func newParams(t *testing.T, leadTime int, safetyStock entities.Quantity, holding, setup string) entities.PolicyParameters {
	t.Helper()
	params, err := entities.NewPolicyParameters(
		leadTime,
		safetyStock,
		decimal.RequireFromString(holding),
		decimal.RequireFromString(setup),
	)
	require.NoError(t, err)
	return params
}

func newDemand(t *testing.T, values ...entities.Quantity) entities.DemandSequence {
	t.Helper()
	demand, err := entities.NewDemandSequence(values)
	require.NoError(t, err)
	return demand
}

func flatDemand(t *testing.T, qty entities.Quantity) entities.DemandSequence {
	t.Helper()
	values := make([]entities.Quantity, entities.Horizon)
	for i := range values {
		values[i] = qty
	}
	return newDemand(t, values...)
}

func assertCost(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "expected cost %s, got %s", want, got)
}

func assertLedger(t *testing.T, want []ledgerRow, got entities.Ledger) {
	t.Helper()
	require.Len(t, want, entities.Horizon)
	for p, row := range want {
		rec := got[p]
		actual := ledgerRow{rec.Demand, rec.PlannedOrder, rec.ScheduledReceipt, rec.OnHandInventory, rec.NetRequirement, rec.LotSize}
		assert.Equalf(t, row, actual, "period %d", p+1)
		assert.Equal(t, p+1, rec.Period)
	}
}

func TestSimulate_LotForLot_FlatDemand(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")
	demand := flatDemand(t, 10)

	result, err := Simulate(params, demand, 20, entities.LotForLot, 0)
	require.NoError(t, err)

	assert.Equal(t, "Lot-for-Lot (L4L)", result.PolicyName)
	assertLedger(t, []ledgerRow{
		{10, 5, 0, 10, 0, 5},
		{10, 15, 0, 5, 5, 15},
		{10, 20, 5, 5, 10, 20},
		{10, 15, 15, 10, 5, 15},
		{10, 5, 20, 20, 0, 5},
		{10, 0, 15, 25, 0, 0},
		{10, 5, 5, 20, 0, 5},
		{10, 15, 0, 10, 5, 15},
		{10, 0, 5, 5, 10, 0},
		{10, 0, 15, 10, 5, 0},
	}, result.Ledger)

	assertCost(t, "120", result.TotalHoldingCost)
	assertCost(t, "350", result.TotalSetupCost)
	assertCost(t, "470", result.TotalCost)
	assert.Len(t, result.Orders, 7)
	assert.Equal(t, entities.Quantity(0), result.EOQ)
}

func TestSimulate_LotForLot_FirstOrderFiresInPeriodOne(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")
	result, err := Simulate(params, flatDemand(t, 10), 20, entities.LotForLot, 0)
	require.NoError(t, err)

	require.NotEmpty(t, result.Orders)
	first := result.Orders[0]
	assert.Equal(t, 0, first.ReleasePeriod)
	assert.Equal(t, 2, first.ReceiptPeriod)
	assert.Equal(t, entities.Quantity(5), first.Quantity)
	assertCost(t, "50", result.Ledger[0].SetupCostIncurred)
	assertCost(t, "10", result.Ledger[0].HoldingCostIncurred)
}

func TestSimulate_EconomicOrderQuantity_FlatDemand(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")

	result, err := Simulate(params, flatDemand(t, 10), 20, entities.EconomicOrderQuantity, 0)
	require.NoError(t, err)

	assert.Equal(t, entities.Quantity(32), result.EOQ)
	assertLedger(t, []ledgerRow{
		{10, 32, 0, 10, 0, 32},
		{10, 32, 0, 5, 5, 32},
		{10, 0, 32, 27, 0, 0},
		{10, 0, 32, 49, 0, 0},
		{10, 0, 0, 39, 0, 0},
		{10, 0, 0, 29, 0, 0},
		{10, 32, 0, 19, 0, 32},
		{10, 32, 0, 9, 1, 32},
		{10, 0, 32, 31, 0, 0},
		{10, 0, 32, 53, 0, 0},
	}, result.Ledger)
	assertCost(t, "271", result.TotalHoldingCost)
	assertCost(t, "200", result.TotalSetupCost)
	assertCost(t, "471", result.TotalCost)
}

func TestSimulate_FixedOrderQuantity_FlatDemand(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")

	result, err := Simulate(params, flatDemand(t, 10), 20, entities.FixedOrderQuantity, 40)
	require.NoError(t, err)

	assertLedger(t, []ledgerRow{
		{10, 40, 0, 10, 0, 40},
		{10, 40, 0, 5, 5, 40},
		{10, 40, 40, 35, 0, 40},
		{10, 0, 40, 65, 0, 0},
		{10, 0, 40, 95, 0, 0},
		{10, 0, 0, 85, 0, 0},
		{10, 0, 0, 75, 0, 0},
		{10, 0, 0, 65, 0, 0},
		{10, 0, 0, 55, 0, 0},
		{10, 0, 0, 45, 0, 0},
	}, result.Ledger)
	assertCost(t, "685", result.TotalCost)
}

func TestSimulate_RegressionBaselines(t *testing.T) {
	varied := []entities.Quantity{20, 30, 10, 40, 25, 15, 35, 20, 10, 30}
	sparse := []entities.Quantity{5, 0, 12, 8, 0, 20, 3, 7, 0, 10}

	tests := []struct {
		name        string
		demand      []entities.Quantity
		leadTime    int
		safetyStock entities.Quantity
		start       entities.Quantity
		holding     string
		setup       string
		policy      entities.LotSizingPolicy
		fixed       entities.Quantity
		wantTotal   string
	}{
		{"varied L4L", varied, 1, 10, 50, "2.5", "100", entities.LotForLot, 0, "1200"},
		{"varied EOQ", varied, 1, 10, 50, "2.5", "100", entities.EconomicOrderQuantity, 0, "1282.5"},
		{"varied FOQ", varied, 1, 10, 50, "2.5", "100", entities.FixedOrderQuantity, 60, "2287.5"},
		{"zero lead time L4L", sparse, 0, 0, 0, "0.5", "25", entities.LotForLot, 0, "906.5"},
		{"zero lead time EOQ", sparse, 0, 0, 0, "0.5", "25", entities.EconomicOrderQuantity, 0, "765"},
		{"zero lead time FOQ", sparse, 0, 0, 0, "0.5", "25", entities.FixedOrderQuantity, 15, "490"},
		{"below safety stock L4L", flat30(), 3, 20, 0, "1", "10", entities.LotForLot, 0, "1720"},
		{"below safety stock EOQ", flat30(), 3, 20, 0, "1", "10", entities.EconomicOrderQuantity, 0, "270"},
		{"below safety stock FOQ", flat30(), 3, 20, 0, "1", "10", entities.FixedOrderQuantity, 100, "2120"},
		{"zero demand EOQ still pays setup", make([]entities.Quantity, entities.Horizon), 0, 5, 0, "1", "50", entities.EconomicOrderQuantity, 0, "550"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := newParams(t, tt.leadTime, tt.safetyStock, tt.holding, tt.setup)
			result, err := Simulate(params, newDemand(t, tt.demand...), tt.start, tt.policy, tt.fixed)
			require.NoError(t, err)
			assertCost(t, tt.wantTotal, result.TotalCost)
		})
	}
}

func flat30() []entities.Quantity {
	return []entities.Quantity{30, 30, 30, 30, 30, 30, 30, 30, 30, 30}
}

func TestSimulate_ZeroLeadTimeReceivesInSamePeriod(t *testing.T) {
	params := newParams(t, 0, 0, "0.5", "25")
	demand := newDemand(t, 5, 0, 12, 8, 0, 20, 3, 7, 0, 10)

	result, err := Simulate(params, demand, 0, entities.LotForLot, 0)
	require.NoError(t, err)

	// The projection never sees same-period orders, so each period orders
	// its own demand plus everything the projection still thinks is missing.
	assertLedger(t, []ledgerRow{
		{5, 10, 10, 5, 5, 10},
		{0, 5, 5, 10, 5, 5},
		{12, 29, 29, 27, 17, 29},
		{8, 33, 33, 52, 25, 33},
		{0, 25, 25, 77, 25, 25},
		{20, 65, 65, 122, 45, 65},
		{3, 51, 51, 170, 48, 51},
		{7, 62, 62, 225, 55, 62},
		{0, 55, 55, 280, 55, 55},
		{10, 75, 75, 345, 65, 75},
	}, result.Ledger)
}

func TestSimulate_OnHandNeverBelowSafetyStock(t *testing.T) {
	demand := newDemand(t, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30)

	for _, policy := range entities.AllPolicies() {
		t.Run(policy.Code(), func(t *testing.T) {
			params := newParams(t, 3, 20, "1", "10")
			result, err := Simulate(params, demand, 0, policy, 100)
			require.NoError(t, err)

			for _, rec := range result.Ledger {
				assert.GreaterOrEqualf(t, rec.OnHandInventory, entities.Quantity(20), "period %d", rec.Period)
			}
		})
	}
}

func TestSimulate_TotalCostIsExactSum(t *testing.T) {
	params := newParams(t, 1, 10, "2.5", "100")
	demand := newDemand(t, 20, 30, 10, 40, 25, 15, 35, 20, 10, 30)

	for _, policy := range entities.AllPolicies() {
		t.Run(policy.Code(), func(t *testing.T) {
			result, err := Simulate(params, demand, 50, policy, 60)
			require.NoError(t, err)

			holding, setup := decimal.Zero, decimal.Zero
			for _, rec := range result.Ledger {
				holding = holding.Add(rec.HoldingCostIncurred)
				setup = setup.Add(rec.SetupCostIncurred)
			}
			assert.True(t, holding.Equal(result.TotalHoldingCost))
			assert.True(t, setup.Equal(result.TotalSetupCost))
			assert.True(t, result.TotalCost.Equal(result.TotalHoldingCost.Add(result.TotalSetupCost)))
		})
	}
}

func TestSimulate_LotForLotReceiptsMatchOrders(t *testing.T) {
	for leadTime := 0; leadTime <= entities.Horizon; leadTime++ {
		params := newParams(t, leadTime, 5, "1", "50")
		result, err := Simulate(params, newDemand(t, 20, 30, 10, 40, 25, 15, 35, 20, 10, 30), 20, entities.LotForLot, 0)
		require.NoError(t, err)

		for p, rec := range result.Ledger {
			if rec.PlannedOrder == 0 {
				continue
			}
			receipt := p + leadTime
			require.Lessf(t, receipt, entities.Horizon, "lead time %d: order in period %d lands outside the horizon", leadTime, p+1)
			assert.Equalf(t, rec.PlannedOrder, result.Ledger[receipt].ScheduledReceipt,
				"lead time %d: receipt for period %d order", leadTime, p+1)
		}
		for _, order := range result.Orders {
			assert.Less(t, order.ReceiptPeriod, entities.Horizon)
		}
	}
}

func TestSimulate_EOQOrderSizeIsConstant(t *testing.T) {
	params := newParams(t, 1, 10, "2.5", "100")
	demand := newDemand(t, 20, 30, 10, 40, 25, 15, 35, 20, 10, 30)

	result, err := Simulate(params, demand, 50, entities.EconomicOrderQuantity, 0)
	require.NoError(t, err)
	require.NotEmpty(t, result.Orders)

	assert.Equal(t, entities.Quantity(43), result.EOQ)
	for _, order := range result.Orders {
		assert.Equal(t, result.EOQ, order.Quantity)
	}
}

func TestSimulate_NoOrdersWhenLeadTimeSpansHorizon(t *testing.T) {
	leadTimes := []int{entities.Horizon, entities.Horizon + 1, math.MaxInt - 5, math.MaxInt}

	for _, leadTime := range leadTimes {
		params := newParams(t, leadTime, 0, "1", "50")
		for _, policy := range entities.AllPolicies() {
			t.Run(fmt.Sprintf("%s lead time %d", policy.Code(), leadTime), func(t *testing.T) {
				result, err := Simulate(params, flatDemand(t, 10), 200, policy, 25)
				require.NoError(t, err)
				assert.Empty(t, result.Orders)
				assertCost(t, "1450", result.TotalCost)
				assert.True(t, result.TotalSetupCost.IsZero())
			})
		}
	}
}

func TestSimulate_EOQRoundingToZeroChargesSetup(t *testing.T) {
	params := newParams(t, 0, 5, "1", "50")

	result, err := Simulate(params, flatDemand(t, 0), 0, entities.EconomicOrderQuantity, 0)
	require.NoError(t, err)

	assert.Equal(t, entities.Quantity(0), result.EOQ)
	assert.Empty(t, result.Orders, "a zero quantity is never recorded as an order")
	assertCost(t, "500", result.TotalSetupCost)
	assertCost(t, "50", result.TotalHoldingCost)
	for _, row := range result.Ledger {
		assert.Equal(t, entities.Quantity(0), row.PlannedOrder)
		assert.Equal(t, entities.Quantity(5), row.OnHandInventory)
		assertCost(t, "50", row.SetupCostIncurred)
	}
}

func TestSimulate_Idempotent(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")
	demand := flatDemand(t, 10)

	for _, policy := range entities.AllPolicies() {
		first, err := Simulate(params, demand, 20, policy, 40)
		require.NoError(t, err)
		second, err := Simulate(params, demand, 20, policy, 40)
		require.NoError(t, err)
		assert.Equal(t, first, second, policy.String())
	}
}

func TestSimulate_ZeroHoldingCost(t *testing.T) {
	params := newParams(t, 2, 5, "0", "50")
	demand := flatDemand(t, 10)

	t.Run("EOQ is rejected", func(t *testing.T) {
		result, err := Simulate(params, demand, 20, entities.EconomicOrderQuantity, 0)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, entities.ErrInvalidParameter)
	})

	t.Run("L4L still runs", func(t *testing.T) {
		result, err := Simulate(params, demand, 20, entities.LotForLot, 0)
		require.NoError(t, err)
		assert.True(t, result.TotalHoldingCost.IsZero())
		assertCost(t, "350", result.TotalCost)
	})
}

func TestSimulate_InvalidInputs(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")
	demand := flatDemand(t, 10)

	var negative entities.DemandSequence
	negative[4] = -1

	tests := []struct {
		name    string
		demand  entities.DemandSequence
		start   entities.Quantity
		policy  entities.LotSizingPolicy
		fixed   entities.Quantity
		wantErr error
	}{
		{"FOQ without fixed quantity", demand, 20, entities.FixedOrderQuantity, 0, entities.ErrMissingFixedQuantity},
		{"FOQ with negative fixed quantity", demand, 20, entities.FixedOrderQuantity, -5, entities.ErrInvalidParameter},
		{"negative starting inventory", demand, -1, entities.LotForLot, 0, entities.ErrInvalidParameter},
		{"negative demand", negative, 20, entities.LotForLot, 0, entities.ErrMalformedDemandSequence},
		{"unknown policy", demand, 20, entities.LotSizingPolicy(7), 0, entities.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(params, tt.demand, tt.start, tt.policy, tt.fixed)
			assert.Nil(t, result)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSimulate_FixedQuantityIgnoredByOtherPolicies(t *testing.T) {
	params := newParams(t, 2, 5, "1", "50")
	demand := flatDemand(t, 10)

	withFixed, err := Simulate(params, demand, 20, entities.LotForLot, 40)
	require.NoError(t, err)
	without, err := Simulate(params, demand, 20, entities.LotForLot, 0)
	require.NoError(t, err)

	assert.Equal(t, without, withFixed)
}
