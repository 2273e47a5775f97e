package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/repositories"
)

// PlanRepository provides in-memory storage for evaluated comparisons
type PlanRepository struct {
	mu     sync.RWMutex
	plans  []*dto.Comparison
	byID   map[string]int
	maxLen int
}

// NewPlanRepository creates a new in-memory plan repository.
// When maxPlans is positive the oldest plans are evicted beyond that count.
func NewPlanRepository(maxPlans int) *PlanRepository {
	return &PlanRepository{
		plans:  make([]*dto.Comparison, 0),
		byID:   make(map[string]int),
		maxLen: maxPlans,
	}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// SavePlan stores a comparison, assigning an ID when it has none
func (r *PlanRepository) SavePlan(plan *dto.Comparison) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if index, exists := r.byID[plan.ID]; exists {
		r.plans[index] = plan
		return nil
	}

	r.byID[plan.ID] = len(r.plans)
	r.plans = append(r.plans, plan)

	if r.maxLen > 0 && len(r.plans) > r.maxLen {
		r.evictOldest(len(r.plans) - r.maxLen)
	}
	return nil
}

// GetPlan returns a comparison by ID
func (r *PlanRepository) GetPlan(id string) (*dto.Comparison, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrPlanNotFound, id)
	}
	return r.plans[index], nil
}

// ListPlans returns all stored comparisons, oldest first
func (r *PlanRepository) ListPlans() ([]*dto.Comparison, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*dto.Comparison, len(r.plans))
	copy(plans, r.plans)
	return plans, nil
}

func (r *PlanRepository) evictOldest(n int) {
	for _, plan := range r.plans[:n] {
		delete(r.byID, plan.ID)
	}
	r.plans = append([]*dto.Comparison(nil), r.plans[n:]...)
	for i, plan := range r.plans {
		r.byID[plan.ID] = i
	}
}
