package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vsinha/lotsizing/pkg/application/services/orchestration"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
	"github.com/vsinha/lotsizing/pkg/infrastructure/events"
	"github.com/vsinha/lotsizing/pkg/infrastructure/metrics"
	"github.com/vsinha/lotsizing/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/lotsizing/pkg/interfaces/api"
	"github.com/vsinha/lotsizing/pkg/interfaces/cli/output"
)

// defaultAddrEnv overrides the serve command's default listen address
const defaultAddrEnv = "LOTSIZING_ADDR"

// NewRootCommand builds the lotsizing command tree
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "lotsizing",
		Short:         "Compare L4L, EOQ and FOQ lot sizing over a 10-period horizon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(newPlanCmd(), newServeCmd(), newPoliciesCmd(), newGenerateCmd())
	return rootCmd
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newPlanCmd() *cobra.Command {
	var config PlanConfig

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Evaluate every lot-sizing policy for one scenario",
		Example: `  lotsizing plan --scenario examples/flat.yaml
  lotsizing plan --demand demand.csv --lead-time 1 --holding-cost 2.5 --setup-cost 100 --fixed-quantity 60
  lotsizing plan --demand-values 10,10,10,10,10,10,10,10,10,10 --holding-cost 1 --setup-cost 50 --format json
  lotsizing plan --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.In = cmd.InOrStdin()
			config.Out = cmd.OutOrStdout()
			return NewPlanCommand(config).Execute(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.ScenarioFile, "scenario", "", "Path to a scenario YAML file")
	flags.StringVar(&config.DemandFile, "demand", "", "Path to a period,demand CSV file")
	flags.Int64SliceVar(&config.DemandValues, "demand-values", nil, "Comma-separated demand, one value per period")
	flags.IntVar(&config.LeadTime, "lead-time", 0, "Lead time in periods")
	flags.Int64Var(&config.SafetyStock, "safety-stock", 0, "Safety stock")
	flags.Int64Var(&config.StartingInventory, "starting-inventory", 0, "Starting on-hand inventory")
	flags.StringVar(&config.HoldingCost, "holding-cost", "", "Holding cost per unit per period")
	flags.StringVar(&config.SetupCost, "setup-cost", "", "Setup cost per order")
	flags.Int64Var(&config.FixedQuantity, "fixed-quantity", 0, "Fixed order quantity; enables FOQ")
	flags.BoolVar(&config.Interactive, "interactive", false, "Prompt for the scenario on the terminal")
	flags.StringVar(&config.Format, "format", "text", "Output format: text, json, yaml, csv")
	flags.StringVar(&config.OutputDir, "output", "", "Output directory for results (required for csv)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		addr     string
		maxPlans int
		origins  []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plan evaluation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = os.Getenv(defaultAddrEnv)
			}
			if addr == "" {
				addr = ":8080"
			}

			plans := memory.NewPlanRepository(maxPlans)
			eventStore := events.NewInMemoryEventStore()
			if err := eventStore.Subscribe(events.AllPlanningEvents, &events.LogHandler{}); err != nil {
				return err
			}
			m := metrics.NewMetrics("", nil)

			server := api.NewServer(api.Dependencies{
				Orchestrator:   orchestration.NewPlanningOrchestrator(plans, eventStore, m),
				Plans:          plans,
				Events:         eventStore,
				Metrics:        m,
				AllowedOrigins: origins,
			})
			return server.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $"+defaultAddrEnv+" or :8080)")
	cmd.Flags().IntVar(&maxPlans, "max-plans", 1000, "Number of evaluated plans kept in memory")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "Allowed CORS origins (default any)")
	return cmd
}

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the supported lot-sizing policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPolicies(cmd.OutOrStdout())
		},
	}
}

func printPolicies(w io.Writer) error {
	for _, p := range entities.AllPolicies() {
		if _, err := fmt.Fprintf(w, "%-4s %s\n", p.Code(), p); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nOutput formats: %v\n", output.Formats)
	return err
}

func newGenerateCmd() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random scenario.yaml and demand.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewGenerateCommand(config).Execute(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.Name, "name", "generated", "Scenario name")
	flags.Float64Var(&config.MeanDemand, "mean", 20, "Average demand per period")
	flags.Float64Var(&config.Spread, "spread", 10, "Demand varies uniformly within mean +/- spread")
	flags.Float64Var(&config.ZeroChance, "zero-chance", 0, "Probability that a period has no demand")
	flags.IntVar(&config.LeadTime, "lead-time", 1, "Lead time in periods")
	flags.Int64Var(&config.SafetyStock, "safety-stock", 0, "Safety stock")
	flags.StringVar(&config.HoldingCost, "holding-cost", "1", "Holding cost per unit per period")
	flags.StringVar(&config.SetupCost, "setup-cost", "50", "Setup cost per order")
	flags.Int64Var(&config.FixedQty, "fixed-quantity", 0, "Fixed order quantity; zero leaves FOQ out")
	flags.StringVar(&config.OutputDir, "output", "", "Output directory for generated files")
	flags.Int64Var(&config.Seed, "seed", 0, "Random seed (default time-based)")
	return cmd
}
