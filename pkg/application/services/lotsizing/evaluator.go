package lotsizing

import (
	"sort"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// EligiblePolicies lists the policies a plan input can be evaluated under, in
// evaluation order. FOQ is left out when no fixed quantity was supplied.
func EligiblePolicies(input dto.PlanInput) []entities.LotSizingPolicy {
	policies := make([]entities.LotSizingPolicy, 0, len(entities.AllPolicies()))
	for _, policy := range entities.AllPolicies() {
		if policy == entities.FixedOrderQuantity && !input.HasFixedQuantity() {
			continue
		}
		policies = append(policies, policy)
	}
	return policies
}

// EvaluateAll simulates every eligible policy and returns the results ranked
// by total cost, cheapest first. Equal costs keep evaluation order.
func EvaluateAll(input dto.PlanInput) ([]dto.PolicyResult, error) {
	policies := EligiblePolicies(input)
	results := make([]dto.PolicyResult, 0, len(policies))

	for _, policy := range policies {
		result, err := Simulate(
			input.Parameters,
			input.Demand,
			input.StartingInventory,
			policy,
			input.FixedQuantity,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	RankResults(results)
	return results, nil
}

// RankResults sorts results ascending by total cost in place. The sort is stable.
func RankResults(results []dto.PolicyResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalCost.LessThan(results[j].TotalCost)
	})
}
