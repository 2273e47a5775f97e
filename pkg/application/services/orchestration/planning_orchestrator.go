package orchestration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/application/services/lotsizing"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/domain/repositories"
	"github.com/vsinha/lotsizing/pkg/infrastructure/events"
)

// PlanObserver receives measurements about evaluated plans
type PlanObserver interface {
	ObservePolicy(policy entities.LotSizingPolicy, orders int)
	ObservePlan(best entities.LotSizingPolicy, duration time.Duration)
	ObserveFailure(reason string)
}

// PlanningOrchestrator runs every eligible lot-sizing policy for one input,
// ranks the results and records them
type PlanningOrchestrator struct {
	planRepo   repositories.PlanRepository
	eventStore events.EventStore
	observer   PlanObserver
}

// NewPlanningOrchestrator creates a new planning orchestrator. Any collaborator may be nil.
func NewPlanningOrchestrator(
	planRepo repositories.PlanRepository,
	eventStore events.EventStore,
	observer PlanObserver,
) *PlanningOrchestrator {
	return &PlanningOrchestrator{
		planRepo:   planRepo,
		eventStore: eventStore,
		observer:   observer,
	}
}

type policyRun struct {
	result *dto.PolicyResult
	err    error
}

// RunComparison evaluates each eligible policy concurrently and returns them
// ranked by total cost. Each run owns its own simulation state.
func (po *PlanningOrchestrator) RunComparison(
	ctx context.Context,
	input dto.PlanInput,
) (*dto.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	planID := uuid.NewString()
	log := logrus.WithField("plan", planID)

	policies := lotsizing.EligiblePolicies(input)
	runs := make([]policyRun, len(policies))

	var wg sync.WaitGroup
	for i, policy := range policies {
		wg.Add(1)
		go func(i int, policy entities.LotSizingPolicy) {
			defer wg.Done()
			result, err := lotsizing.Simulate(
				input.Parameters,
				input.Demand,
				input.StartingInventory,
				policy,
				input.FixedQuantity,
			)
			runs[i] = policyRun{result: result, err: err}
		}(i, policy)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]dto.PolicyResult, 0, len(runs))
	for i, run := range runs {
		if run.err != nil {
			po.observeFailure(policies[i].Code())
			return nil, fmt.Errorf("failed to evaluate %s: %w", policies[i], run.err)
		}
		results = append(results, *run.result)
	}
	lotsizing.RankResults(results)

	comparison := &dto.Comparison{
		ID:          planID,
		Results:     results,
		EvaluatedAt: startTime.UTC(),
		Duration:    time.Since(startTime),
	}
	best := comparison.BestResult()
	if best != nil {
		comparison.Best = best.PolicyName
	}

	po.publish(planID, comparison)

	if po.planRepo != nil {
		if err := po.planRepo.SavePlan(comparison); err != nil {
			return nil, fmt.Errorf("failed to save plan: %w", err)
		}
	}

	if po.observer != nil {
		for _, r := range results {
			po.observer.ObservePolicy(r.Policy, len(r.Orders))
		}
		if best != nil {
			po.observer.ObservePlan(best.Policy, comparison.Duration)
		}
	}

	log.WithFields(logrus.Fields{
		"policies": len(results),
		"best":     comparison.Best,
		"elapsed":  comparison.Duration,
	}).Info("plan evaluated")

	return comparison, nil
}

// publish appends the plan's events; a failing store does not fail the plan
func (po *PlanningOrchestrator) publish(planID string, comparison *dto.Comparison) {
	if po.eventStore == nil {
		return
	}

	var stream []events.Event
	for _, r := range comparison.Results {
		for _, order := range r.Orders {
			stream = append(stream,
				events.NewOrderPlannedEvent(planID, order),
				events.NewReceiptScheduledEvent(planID, order))
		}
		stream = append(stream, events.NewPolicyEvaluatedEvent(planID, r.Policy, r.TotalCost, len(r.Orders)))
	}
	if best := comparison.BestResult(); best != nil {
		stream = append(stream, events.NewPlanCompletedEvent(planID, best.PolicyName, best.TotalCost, len(comparison.Results)))
	}

	for _, event := range stream {
		if err := po.eventStore.AppendEvent(planID, event); err != nil {
			logrus.WithField("plan", planID).Warnf("failed to publish %s event: %v", event.Type(), err)
		}
	}
}

func (po *PlanningOrchestrator) observeFailure(reason string) {
	if po.observer != nil {
		po.observer.ObserveFailure(reason)
	}
}
