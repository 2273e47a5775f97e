package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/repositories/csv"
)

// Scenario is the on-disk shape of a planning scenario (YAML).
type Scenario struct {
	Name string `yaml:"name,omitempty"`
	// Demand lists one value per period. DemandFile may be given instead.
	Demand     []int64 `yaml:"demand,omitempty"`
	DemandFile string  `yaml:"demand_file,omitempty"`

	LeadTime          int             `yaml:"lead_time"`
	SafetyStock       int64           `yaml:"safety_stock"`
	StartingInventory int64           `yaml:"starting_inventory"`
	HoldingCost       decimal.Decimal `yaml:"holding_cost"`
	SetupCost         decimal.Decimal `yaml:"setup_cost"`
	// FixedQuantity enables FOQ when set
	FixedQuantity *int64 `yaml:"fixed_quantity,omitempty"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if s.DemandFile != "" && !filepath.IsAbs(s.DemandFile) {
		// relative to the scenario file, falling back to the working directory
		cand := filepath.Join(filepath.Dir(path), s.DemandFile)
		if _, err := os.Stat(cand); err == nil {
			s.DemandFile = cand
		}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return s, nil
}

// LoadUnchecked parses a scenario file with strict field checking but does not validate it
func LoadUnchecked(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes scenario YAML. Unknown fields are rejected so typos surface as errors.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	return &s, nil
}

// Validate checks the scenario without building domain values
func (s *Scenario) Validate() error {
	if len(s.Demand) > 0 && s.DemandFile != "" {
		return fmt.Errorf("%w: demand and demand_file are mutually exclusive", entities.ErrInvalidParameter)
	}
	if len(s.Demand) == 0 && s.DemandFile == "" {
		return fmt.Errorf("%w: one of demand or demand_file is required", entities.ErrInvalidParameter)
	}
	if s.FixedQuantity != nil && *s.FixedQuantity <= 0 {
		return fmt.Errorf("%w: fixed_quantity must be positive, got %d",
			entities.ErrInvalidParameter, *s.FixedQuantity)
	}
	if s.StartingInventory < 0 {
		return fmt.Errorf("%w: starting_inventory cannot be negative, got %d",
			entities.ErrInvalidParameter, s.StartingInventory)
	}
	_, err := s.parameters()
	return err
}

// PlanInput converts the scenario into validated domain inputs
func (s *Scenario) PlanInput() (dto.PlanInput, error) {
	if err := s.Validate(); err != nil {
		return dto.PlanInput{}, err
	}

	params, err := s.parameters()
	if err != nil {
		return dto.PlanInput{}, err
	}

	values := make([]entities.Quantity, 0, entities.Horizon)
	if s.DemandFile != "" {
		loaded, err := csv.NewLoader().LoadDemand(s.DemandFile)
		if err != nil {
			return dto.PlanInput{}, err
		}
		values = append(values, loaded...)
	} else {
		for _, d := range s.Demand {
			values = append(values, entities.Quantity(d))
		}
	}
	demand, err := entities.NewDemandSequence(values)
	if err != nil {
		return dto.PlanInput{}, err
	}

	input := dto.PlanInput{
		Parameters:        params,
		Demand:            demand,
		StartingInventory: entities.Quantity(s.StartingInventory),
	}
	if s.FixedQuantity != nil {
		input.FixedQuantity = entities.Quantity(*s.FixedQuantity)
	}
	return input, nil
}

func (s *Scenario) parameters() (entities.PolicyParameters, error) {
	return entities.NewPolicyParameters(
		s.LeadTime,
		entities.Quantity(s.SafetyStock),
		s.HoldingCost,
		s.SetupCost,
	)
}
