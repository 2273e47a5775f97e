// Package metrics provides Prometheus metrics for lot-sizing plans.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// Metrics holds the Prometheus collectors for the planner.
type Metrics struct {
	PlansEvaluated   prometheus.Counter
	PlanFailures     *prometheus.CounterVec
	PlanDuration     prometheus.Histogram
	PolicyRuns       *prometheus.CounterVec
	OrdersPlanned    *prometheus.CounterVec
	BestPolicyChosen *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh registry so repeated construction never collides.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "lotsizing"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		PlansEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "plans_evaluated_total",
			Help:      "Total number of plans evaluated",
		}),
		PlanFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "plan_failures_total",
			Help:      "Total number of failed plan evaluations by policy",
		}, []string{"policy"}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "plan_duration_seconds",
			Help:      "Plan evaluation duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		PolicyRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "policy_runs_total",
			Help:      "Total number of simulations by policy",
		}, []string{"policy"}),
		OrdersPlanned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "orders_planned_total",
			Help:      "Total number of planned orders by policy",
		}, []string{"policy"}),
		BestPolicyChosen: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "best_policy_total",
			Help:      "Number of plans won by each policy",
		}, []string{"policy"}),
		gatherer: reg,
	}
}

// ObservePolicy records one completed policy simulation.
func (m *Metrics) ObservePolicy(policy entities.LotSizingPolicy, orders int) {
	m.PolicyRuns.WithLabelValues(policy.Code()).Inc()
	m.OrdersPlanned.WithLabelValues(policy.Code()).Add(float64(orders))
}

// ObservePlan records a completed comparison and its winner.
func (m *Metrics) ObservePlan(best entities.LotSizingPolicy, duration time.Duration) {
	m.PlansEvaluated.Inc()
	m.PlanDuration.Observe(duration.Seconds())
	m.BestPolicyChosen.WithLabelValues(best.Code()).Inc()
}

// ObserveFailure records a comparison that could not be evaluated.
func (m *Metrics) ObserveFailure(reason string) {
	m.PlanFailures.WithLabelValues(reason).Inc()
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
