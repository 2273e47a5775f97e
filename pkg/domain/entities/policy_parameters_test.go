package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParams(t *testing.T, leadTime int, safetyStock Quantity, holding, setup float64) PolicyParameters {
	t.Helper()
	params, err := NewPolicyParameters(leadTime, safetyStock,
		decimal.NewFromFloat(holding), decimal.NewFromFloat(setup))
	require.NoError(t, err)
	return params
}

func TestPolicyParameters_Validation(t *testing.T) {
	params := mustParams(t, 2, 5, 1, 50)
	assert.Equal(t, 2, params.LeadTime())
	assert.Equal(t, Quantity(5), params.SafetyStock())
	assert.True(t, params.HoldingCost().Equal(decimal.NewFromInt(1)))
	assert.True(t, params.SetupCost().Equal(decimal.NewFromInt(50)))

	testCases := []struct {
		name        string
		leadTime    int
		safetyStock Quantity
		holding     decimal.Decimal
		setup       decimal.Decimal
		expectError string
	}{
		{"negative lead time", -1, 0, decimal.NewFromInt(1), decimal.NewFromInt(1),
			"invalid parameter: lead time cannot be negative, got -1"},
		{"negative safety stock", 0, -3, decimal.NewFromInt(1), decimal.NewFromInt(1),
			"invalid parameter: safety stock cannot be negative, got -3"},
		{"negative holding cost", 0, 0, decimal.NewFromFloat(-0.5), decimal.NewFromInt(1),
			"invalid parameter: holding cost cannot be negative, got -0.5"},
		{"negative setup cost", 0, 0, decimal.NewFromInt(1), decimal.NewFromInt(-10),
			"invalid parameter: setup cost cannot be negative, got -10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPolicyParameters(tc.leadTime, tc.safetyStock, tc.holding, tc.setup)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
			assert.Equal(t, tc.expectError, err.Error())
		})
	}
}

func TestPolicyParameters_ZeroCostsAreValid(t *testing.T) {
	_, err := NewPolicyParameters(0, 0, decimal.Zero, decimal.Zero)
	assert.NoError(t, err)
}

func TestPolicyParameters_NetRequirement(t *testing.T) {
	params := mustParams(t, 1, 10, 1, 1)

	assert.Equal(t, Quantity(15), params.NetRequirement(25, 20))
	assert.Equal(t, Quantity(0), params.NetRequirement(5, 20), "never negative")
	assert.Equal(t, Quantity(0), params.NetRequirement(10, 20), "exactly covered")
	assert.Equal(t, Quantity(40), params.NetRequirement(30, 0))
}

func TestPolicyParameters_LotForLot(t *testing.T) {
	params := mustParams(t, 0, 0, 1, 1)
	assert.Equal(t, Quantity(17), params.LotForLot(17))
	assert.Equal(t, Quantity(0), params.LotForLot(0))
}

func TestPolicyParameters_FixedOrderQuantity(t *testing.T) {
	params := mustParams(t, 0, 0, 1, 1)

	tests := []struct {
		name     string
		net      Quantity
		fixed    Quantity
		expected Quantity
	}{
		{"fixed batch covers requirement", 25, 40, 40},
		{"nothing required", 0, 40, 40},
		{"requirement exceeds batch", 55, 40, 55},
		{"equal", 40, 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, params.FixedOrderQuantity(tt.net, tt.fixed))
		})
	}
}

func TestPolicyParameters_EconomicOrderQuantity(t *testing.T) {
	tests := []struct {
		name    string
		holding float64
		setup   float64
		average float64
		want    Quantity
	}{
		{"sqrt(1000) rounds up", 1, 50, 10, 32},
		{"fractional holding cost", 2.5, 100, 23.5, 43},
		{"fractional result rounds down", 0.5, 25, 6.5, 25},
		{"exact half rounds to even", 1, 1.25, 2.5, 2},
		{"zero demand", 1, 50, 0, 0},
		{"zero setup cost", 1, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := mustParams(t, 0, 0, tt.holding, tt.setup)
			got, err := params.EconomicOrderQuantity(tt.average)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyParameters_EconomicOrderQuantity_ZeroHoldingCost(t *testing.T) {
	params := mustParams(t, 2, 5, 0, 50)

	eoq, err := params.EconomicOrderQuantity(10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Equal(t, Quantity(0), eoq)
}

func TestPolicyParameters_EconomicOrderQuantity_NegativeAverage(t *testing.T) {
	params := mustParams(t, 2, 5, 1, 50)

	_, err := params.EconomicOrderQuantity(-1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
