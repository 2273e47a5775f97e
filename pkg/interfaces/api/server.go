package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/lotsizing/pkg/application/services/orchestration"
	"github.com/vsinha/lotsizing/pkg/domain/repositories"
	"github.com/vsinha/lotsizing/pkg/infrastructure/events"
	"github.com/vsinha/lotsizing/pkg/infrastructure/metrics"
)

// Dependencies wires the server to its collaborators
type Dependencies struct {
	Orchestrator   *orchestration.PlanningOrchestrator
	Plans          repositories.PlanRepository
	Events         events.EventStore
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// Server exposes plan evaluation over HTTP
type Server struct {
	router  *gin.Engine
	handler http.Handler
}

// NewServer builds the router and wraps it with CORS
func NewServer(deps Dependencies) *Server {
	router := gin.New()
	router.Use(Logger())
	router.Use(ErrorHandler())

	planHandler := NewPlanHandler(deps.Orchestrator, deps.Plans, deps.Events)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := router.Group("/api/v1")
	{
		api.POST("/plans", planHandler.CreatePlan)
		api.GET("/plans", planHandler.ListPlans)
		api.GET("/plans/:id", planHandler.GetPlan)
		api.GET("/plans/:id/ledger", planHandler.GetLedger)
		api.GET("/plans/:id/events", planHandler.GetEvents)
		api.GET("/policies", ListPolicies)
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "no route for "+c.Request.URL.Path)
	})

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	return &Server{router: router, handler: corsHandler.Handler(router)}
}

// Handler returns the CORS-wrapped router
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting API server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logrus.Info("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}
