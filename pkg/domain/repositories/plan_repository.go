package repositories

import (
	"errors"

	"github.com/vsinha/lotsizing/pkg/application/dto"
)

// ErrPlanNotFound is returned when no stored comparison has the requested ID
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepository provides access to evaluated plan comparisons
type PlanRepository interface {
	SavePlan(plan *dto.Comparison) error
	GetPlan(id string) (*dto.Comparison, error)
	ListPlans() ([]*dto.Comparison, error)
}
