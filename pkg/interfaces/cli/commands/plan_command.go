package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/lotsizing/pkg/application/services/orchestration"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/config"
	"github.com/vsinha/lotsizing/pkg/infrastructure/events"
	"github.com/vsinha/lotsizing/pkg/interfaces/cli/output"
)

// PlanConfig holds configuration for the plan command
type PlanConfig struct {
	ScenarioFile string
	DemandFile   string
	DemandValues []int64

	LeadTime          int
	SafetyStock       int64
	StartingInventory int64
	HoldingCost       string
	SetupCost         string
	FixedQuantity     int64

	Interactive bool
	Format      string
	OutputDir   string

	In  io.Reader
	Out io.Writer
}

// PlanCommand evaluates every lot-sizing policy for one scenario and renders the comparison
type PlanCommand struct {
	config PlanConfig
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config PlanConfig) *PlanCommand {
	if config.In == nil {
		config.In = os.Stdin
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &PlanCommand{config: config}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	scenario, err := c.resolveScenario()
	if err != nil {
		return err
	}

	input, err := scenario.PlanInput()
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"scenario":   scenario.Name,
		"lead_time":  input.Parameters.LeadTime(),
		"total":      input.Demand.Total(),
		"fixed_qty":  input.FixedQuantity,
		"has_fixed":  input.HasFixedQuantity(),
		"output_dir": c.config.OutputDir,
	}).Debug("scenario loaded")

	eventStore := events.NewInMemoryEventStore()
	if err := eventStore.Subscribe(events.AllPlanningEvents, &events.LogHandler{}); err != nil {
		return fmt.Errorf("failed to subscribe event logger: %w", err)
	}
	defer eventStore.Wait()

	orchestrator := orchestration.NewPlanningOrchestrator(nil, eventStore, nil)
	comparison, err := orchestrator.RunComparison(ctx, input)
	if err != nil {
		return fmt.Errorf("error running comparison: %w", err)
	}

	err = output.Generate(comparison, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Writer:    c.config.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// validateInputs checks that exactly one demand source was given
func (c *PlanCommand) validateInputs() error {
	sources := 0
	if c.config.ScenarioFile != "" {
		sources++
	}
	if c.config.DemandFile != "" {
		sources++
	}
	if len(c.config.DemandValues) > 0 {
		sources++
	}
	if c.config.Interactive {
		sources++
	}

	switch {
	case sources == 0:
		return fmt.Errorf("must specify one of --scenario, --demand, --demand-values or --interactive")
	case sources > 1:
		return fmt.Errorf("--scenario, --demand, --demand-values and --interactive are mutually exclusive")
	}
	return nil
}

// resolveScenario builds the scenario from a file, a prompt session or flags
func (c *PlanCommand) resolveScenario() (*config.Scenario, error) {
	switch {
	case c.config.ScenarioFile != "":
		scenario, err := config.Load(c.config.ScenarioFile)
		if err != nil {
			return nil, fmt.Errorf("error loading scenario: %w", err)
		}
		return scenario, nil
	case c.config.Interactive:
		return NewPrompter(c.config.In, c.config.Out).PromptScenario(entities.Horizon)
	}

	holding, err := parseCost("holding-cost", c.config.HoldingCost)
	if err != nil {
		return nil, err
	}
	setup, err := parseCost("setup-cost", c.config.SetupCost)
	if err != nil {
		return nil, err
	}

	scenario := &config.Scenario{
		Name:              "flags",
		Demand:            c.config.DemandValues,
		DemandFile:        c.config.DemandFile,
		LeadTime:          c.config.LeadTime,
		SafetyStock:       c.config.SafetyStock,
		StartingInventory: c.config.StartingInventory,
		HoldingCost:       holding,
		SetupCost:         setup,
	}
	if c.config.FixedQuantity != 0 {
		fixed := c.config.FixedQuantity
		scenario.FixedQuantity = &fixed
	}
	return scenario, nil
}

func parseCost(flag, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s must be a number, got %q",
			entities.ErrInvalidParameter, flag, value)
	}
	return d, nil
}
