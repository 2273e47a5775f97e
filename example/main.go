package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/application/services/orchestration"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Steady demand for a single stocked component
	demand, err := entities.NewDemandSequence([]entities.Quantity{10, 10, 10, 10, 10, 10, 10, 10, 10, 10})
	if err != nil {
		log.Fatal(err)
	}

	params, err := entities.NewPolicyParameters(
		2,                      // lead time in periods
		5,                      // safety stock
		decimal.NewFromInt(1),  // holding cost per unit per period
		decimal.NewFromInt(50), // setup cost per order
	)
	if err != nil {
		log.Fatal(err)
	}

	plans := memory.NewPlanRepository(0)
	orchestrator := orchestration.NewPlanningOrchestrator(plans, nil, nil)

	comparison, err := orchestrator.RunComparison(ctx, dto.PlanInput{
		Parameters:        params,
		Demand:            demand,
		StartingInventory: 20,
		FixedQuantity:     40,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Plan %s\n", comparison.ID)
	for i, result := range comparison.Results {
		fmt.Printf("%d. %-30s total %8s  holding %8s  setup %8s  orders %d\n",
			i+1,
			result.PolicyName,
			result.TotalCost.StringFixed(2),
			result.TotalHoldingCost.StringFixed(2),
			result.TotalSetupCost.StringFixed(2),
			len(result.Orders))
		for _, order := range result.Orders {
			fmt.Printf("     release period %d -> receipt period %d: %d units\n",
				order.ReleasePeriod+1, order.ReceiptPeriod+1, order.Quantity)
		}
	}
	fmt.Printf("\nMost cost-effective technique: %s\n", comparison.Best)
}
