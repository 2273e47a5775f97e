package commands

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/config"
	"github.com/vsinha/lotsizing/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Name        string  // Scenario name written into scenario.yaml
	MeanDemand  float64 // Average demand per period
	Spread      float64 // Demand varies uniformly within MeanDemand +/- Spread
	ZeroChance  float64 // Probability that a period has no demand at all
	LeadTime    int
	SafetyStock int64
	HoldingCost string
	SetupCost   string
	FixedQty    int64  // Zero leaves FOQ out of the scenario
	OutputDir   string // Output directory for generated files
	Seed        int64  // Random seed for reproducible generation
}

// GenerateCommand writes a random scenario.yaml plus demand.csv pair
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cmd.config.MeanDemand < 0 || cmd.config.Spread < 0 {
		return fmt.Errorf("%w: mean demand and spread cannot be negative", entities.ErrInvalidParameter)
	}
	if cmd.config.ZeroChance < 0 || cmd.config.ZeroChance > 1 {
		return fmt.Errorf("%w: zero-demand chance must be within [0, 1], got %v",
			entities.ErrInvalidParameter, cmd.config.ZeroChance)
	}

	holding, err := parseCost("holding-cost", cmd.config.HoldingCost)
	if err != nil {
		return err
	}
	setup, err := parseCost("setup-cost", cmd.config.SetupCost)
	if err != nil {
		return err
	}

	demand, err := entities.NewDemandSequence(cmd.generateDemand())
	if err != nil {
		return fmt.Errorf("failed to generate demand: %w", err)
	}

	scenario := &config.Scenario{
		Name:              cmd.config.Name,
		DemandFile:        "demand.csv",
		LeadTime:          cmd.config.LeadTime,
		SafetyStock:       cmd.config.SafetyStock,
		StartingInventory: int64(demand[0]) + cmd.config.SafetyStock,
		HoldingCost:       holding,
		SetupCost:         setup,
	}
	if cmd.config.FixedQty > 0 {
		fixed := cmd.config.FixedQty
		scenario.FixedQuantity = &fixed
	}
	if err := scenario.Validate(); err != nil {
		return fmt.Errorf("generated scenario is invalid: %w", err)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := cmd.writeDemand(demand); err != nil {
		return fmt.Errorf("failed to write demand: %w", err)
	}
	if err := cmd.writeScenario(scenario); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"dir":   cmd.config.OutputDir,
		"total": demand.Total(),
		"seed":  cmd.config.Seed,
	}).Info("scenario generated")
	return nil
}

func (cmd *GenerateCommand) generateDemand() []entities.Quantity {
	values := make([]entities.Quantity, entities.Horizon)
	for p := range values {
		if cmd.rand.Float64() < cmd.config.ZeroChance {
			continue
		}
		v := cmd.config.MeanDemand + cmd.config.Spread*(2*cmd.rand.Float64()-1)
		values[p] = entities.Quantity(max(0, math.Round(v)))
	}
	return values
}

func (cmd *GenerateCommand) writeDemand(demand entities.DemandSequence) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, "demand.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := csv.NewLoader().WriteDemand(file, demand); err != nil {
		return err
	}
	return file.Close()
}

func (cmd *GenerateCommand) writeScenario(scenario *config.Scenario) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cmd.config.OutputDir, "scenario.yaml"), data, 0644)
}
