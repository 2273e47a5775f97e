package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/lotsizing/pkg/application/services/orchestration"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/domain/repositories"
	"github.com/vsinha/lotsizing/pkg/infrastructure/events"
)

// PlanHandler handles plan-related requests
type PlanHandler struct {
	orchestrator *orchestration.PlanningOrchestrator
	plans        repositories.PlanRepository
	events       events.EventStore
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(
	orchestrator *orchestration.PlanningOrchestrator,
	plans repositories.PlanRepository,
	eventStore events.EventStore,
) *PlanHandler {
	return &PlanHandler{
		orchestrator: orchestrator,
		plans:        plans,
		events:       eventStore,
	}
}

// CreatePlan handles POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	input, err := req.Scenario().PlanInput()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	comparison, err := h.orchestrator.RunComparison(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comparison)
}

// ListPlans handles GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListPlans()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	summaries := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		summary := PlanSummary{
			ID:          plan.ID,
			Best:        plan.Best,
			Policies:    len(plan.Results),
			EvaluatedAt: plan.EvaluatedAt,
		}
		if best := plan.BestResult(); best != nil {
			summary.BestCost = best.TotalCost
		}
		summaries = append(summaries, summary)
	}
	c.JSON(http.StatusOK, gin.H{"plans": summaries})
}

// GetPlan handles GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.plans.GetPlan(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetLedger handles GET /api/v1/plans/:id/ledger?policy=eoq.
// Without a policy the cheapest result is returned.
func (h *PlanHandler) GetLedger(c *gin.Context) {
	plan, err := h.plans.GetPlan(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := plan.BestResult()
	if code := c.Query("policy"); code != "" {
		policy, err := entities.ParseLotSizingPolicy(code)
		if err != nil {
			respondError(c, http.StatusBadRequest, "UNKNOWN_POLICY", err.Error())
			return
		}
		var ok bool
		result, ok = plan.Result(policy)
		if !ok {
			respondError(c, http.StatusNotFound, "POLICY_NOT_EVALUATED",
				policy.String()+" was not evaluated for this plan")
			return
		}
	}
	if result == nil {
		respondError(c, http.StatusNotFound, "POLICY_NOT_EVALUATED", "plan has no results")
		return
	}

	c.JSON(http.StatusOK, LedgerResponse{
		PlanID: plan.ID,
		Policy: result.PolicyName,
		Ledger: result.Ledger,
		Orders: result.Orders,
	})
}

// GetEvents handles GET /api/v1/plans/:id/events
func (h *PlanHandler) GetEvents(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.plans.GetPlan(id); err != nil {
		respondDomainError(c, err)
		return
	}

	stream, err := h.events.ReadEvents(id, 1)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": id, "events": stream})
}

// ListPolicies handles GET /api/v1/policies
func ListPolicies(c *gin.Context) {
	policies := make([]PolicyInfo, 0, len(entities.AllPolicies()))
	for _, p := range entities.AllPolicies() {
		policies = append(policies, PolicyInfo{Code: p.Code(), Name: p.String()})
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondDomainError maps domain sentinels onto HTTP statuses
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidParameter):
		respondError(c, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, entities.ErrMalformedDemandSequence):
		respondError(c, http.StatusBadRequest, "MALFORMED_DEMAND", err.Error())
	case errors.Is(err, entities.ErrMissingFixedQuantity):
		respondError(c, http.StatusBadRequest, "MISSING_FIXED_QUANTITY", err.Error())
	case errors.Is(err, repositories.ErrPlanNotFound):
		respondError(c, http.StatusNotFound, "PLAN_NOT_FOUND", err.Error())
	default:
		logrus.WithField("path", c.Request.URL.Path).Errorf("request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
