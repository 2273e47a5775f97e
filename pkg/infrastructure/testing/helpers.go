package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// ReferenceScenario pairs a plan input with its known total cost per policy
type ReferenceScenario struct {
	Name          string
	Input         dto.PlanInput
	ExpectedCosts map[entities.LotSizingPolicy]string
	Best          entities.LotSizingPolicy
}

// mustCreateParameters is a helper for tests - panics on validation error
func mustCreateParameters(leadTime int, safetyStock entities.Quantity, holding, setup string) entities.PolicyParameters {
	params, err := entities.NewPolicyParameters(
		leadTime,
		safetyStock,
		decimal.RequireFromString(holding),
		decimal.RequireFromString(setup),
	)
	if err != nil {
		panic(err)
	}
	return params
}

// mustCreateDemand is a helper for tests - panics on validation error
func mustCreateDemand(values ...entities.Quantity) entities.DemandSequence {
	demand, err := entities.NewDemandSequence(values)
	if err != nil {
		panic(err)
	}
	return demand
}

// BuildFlatScenario has steady demand where L4L narrowly beats EOQ
func BuildFlatScenario() ReferenceScenario {
	return ReferenceScenario{
		Name: "flat",
		Input: dto.PlanInput{
			Parameters:        mustCreateParameters(2, 5, "1", "50"),
			Demand:            mustCreateDemand(10, 10, 10, 10, 10, 10, 10, 10, 10, 10),
			StartingInventory: 20,
			FixedQuantity:     40,
		},
		ExpectedCosts: map[entities.LotSizingPolicy]string{
			entities.LotForLot:             "470",
			entities.EconomicOrderQuantity: "471",
			entities.FixedOrderQuantity:    "685",
		},
		Best: entities.LotForLot,
	}
}

// BuildLumpyScenario has uneven demand with fractional holding cost
func BuildLumpyScenario() ReferenceScenario {
	return ReferenceScenario{
		Name: "lumpy",
		Input: dto.PlanInput{
			Parameters:        mustCreateParameters(1, 10, "2.5", "100"),
			Demand:            mustCreateDemand(20, 30, 10, 40, 25, 15, 35, 20, 10, 30),
			StartingInventory: 50,
			FixedQuantity:     60,
		},
		ExpectedCosts: map[entities.LotSizingPolicy]string{
			entities.LotForLot:             "1200",
			entities.EconomicOrderQuantity: "1282.5",
			entities.FixedOrderQuantity:    "2287.5",
		},
		Best: entities.LotForLot,
	}
}

// BuildSparseScenario has zero lead time and periods without demand
func BuildSparseScenario() ReferenceScenario {
	return ReferenceScenario{
		Name: "sparse",
		Input: dto.PlanInput{
			Parameters:        mustCreateParameters(0, 0, "0.5", "25"),
			Demand:            mustCreateDemand(5, 0, 12, 8, 0, 20, 3, 7, 0, 10),
			StartingInventory: 0,
			FixedQuantity:     15,
		},
		ExpectedCosts: map[entities.LotSizingPolicy]string{
			entities.LotForLot:             "906.5",
			entities.EconomicOrderQuantity: "765",
			entities.FixedOrderQuantity:    "490",
		},
		Best: entities.FixedOrderQuantity,
	}
}

// BuildLongLeadScenario starts empty with a three-period lead time
func BuildLongLeadScenario() ReferenceScenario {
	return ReferenceScenario{
		Name: "long-lead",
		Input: dto.PlanInput{
			Parameters:        mustCreateParameters(3, 20, "1", "10"),
			Demand:            mustCreateDemand(30, 30, 30, 30, 30, 30, 30, 30, 30, 30),
			StartingInventory: 0,
			FixedQuantity:     100,
		},
		ExpectedCosts: map[entities.LotSizingPolicy]string{
			entities.LotForLot:             "1720",
			entities.EconomicOrderQuantity: "270",
			entities.FixedOrderQuantity:    "2120",
		},
		Best: entities.EconomicOrderQuantity,
	}
}

// ReferenceScenarios returns every reference scenario
func ReferenceScenarios() []ReferenceScenario {
	return []ReferenceScenario{
		BuildFlatScenario(),
		BuildLumpyScenario(),
		BuildSparseScenario(),
		BuildLongLeadScenario(),
	}
}
