package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/lotsizing/pkg/application/dto"
	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// Formats lists the supported output formats
var Formats = []string{"text", "json", "yaml", "csv"}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	// Writer receives output that is not written to OutputDir. Defaults to stdout.
	Writer io.Writer
}

// Generate renders a comparison in the configured format
func Generate(comparison *dto.Comparison, config Config) error {
	if comparison == nil {
		return fmt.Errorf("no comparison to render")
	}
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "", "text":
		return generateTextOutput(comparison, config)
	case "json":
		return generateEncodedOutput(comparison, config, "plan.json", marshalJSON)
	case "yaml":
		return generateEncodedOutput(comparison, config, "plan.yaml", yaml.Marshal)
	case "csv":
		return generateCSVOutput(comparison, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// generateTextOutput writes one period grid per policy followed by the cost summary
func generateTextOutput(comparison *dto.Comparison, config Config) error {
	var b strings.Builder
	for _, result := range comparison.Results {
		fmt.Fprintf(&b, "%s\n", result.PolicyName)
		if result.EOQ > 0 {
			fmt.Fprintf(&b, "Economic order quantity: %d\n", result.EOQ)
		}
		writeLedgerTable(&b, result.Ledger)
		fmt.Fprintf(&b, "Total cost: %s\n\n", result.TotalCost.StringFixed(2))
	}
	writeCostSummary(&b, comparison)

	if config.OutputDir == "" {
		_, err := io.WriteString(config.Writer, b.String())
		return err
	}
	return writeFile(config.OutputDir, "plan.txt", []byte(b.String()))
}

// writeLedgerTable renders attributes as rows and periods as columns
func writeLedgerTable(b *strings.Builder, ledger entities.Ledger) {
	header := make([]string, 0, entities.Horizon+1)
	header = append(header, "")
	for p := 1; p <= entities.Horizon; p++ {
		header = append(header, "Period "+strconv.Itoa(p))
	}

	rows := make([][]string, len(entities.LedgerAttributes))
	for i, attr := range entities.LedgerAttributes {
		rows[i] = append(rows[i], attr)
	}
	for _, record := range ledger {
		for i, v := range record.Values() {
			rows[i] = append(rows[i], v)
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	border := make([]string, len(widths))
	for i, w := range widths {
		border[i] = strings.Repeat("-", w+2)
	}
	separator := "+" + strings.Join(border, "+") + "+\n"

	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			if i == 0 {
				fmt.Fprintf(b, " %-*s |", widths[i], cell)
			} else {
				fmt.Fprintf(b, " %*s |", widths[i], cell)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(separator)
	writeRow(header)
	b.WriteString(separator)
	for _, row := range rows {
		writeRow(row)
	}
	b.WriteString(separator)
}

func writeCostSummary(b *strings.Builder, comparison *dto.Comparison) {
	b.WriteString("Cost summary\n")
	for _, result := range comparison.Results {
		fmt.Fprintf(b, "  %-28s %12s  (holding %s, setup %s)\n",
			result.PolicyName,
			result.TotalCost.StringFixed(2),
			result.TotalHoldingCost.StringFixed(2),
			result.TotalSetupCost.StringFixed(2))
	}
	if best := comparison.BestResult(); best != nil {
		fmt.Fprintf(b, "\nMost cost-effective technique: %s\n", best.PolicyName)
	}
}

func generateEncodedOutput(
	comparison *dto.Comparison,
	config Config,
	filename string,
	marshal func(any) ([]byte, error),
) error {
	data, err := marshal(comparison)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", config.Format, err)
	}

	if config.OutputDir == "" {
		_, err := config.Writer.Write(data)
		return err
	}
	return writeFile(config.OutputDir, filename, data)
}

// generateCSVOutput writes one ledger file per policy plus summary.csv
func generateCSVOutput(comparison *dto.Comparison, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, result := range comparison.Results {
		filename := filepath.Join(config.OutputDir, result.Policy.Code()+"_ledger.csv")
		if err := writeLedgerCSV(result.Ledger, filename); err != nil {
			return fmt.Errorf("failed to write %s ledger CSV: %w", result.Policy.Code(), err)
		}
		logrus.WithField("file", filename).Debug("ledger CSV written")
	}

	summaryFile := filepath.Join(config.OutputDir, "summary.csv")
	if err := writeSummaryCSV(comparison, summaryFile); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}
	logrus.WithField("dir", config.OutputDir).Info("CSV results saved")
	return nil
}

func writeLedgerCSV(ledger entities.Ledger, filename string) error {
	header := append([]string{"period"}, csvColumns(entities.LedgerAttributes)...)
	records := [][]string{header}
	for _, record := range ledger {
		records = append(records, append([]string{strconv.Itoa(record.Period)}, record.Values()...))
	}
	return writeCSV(filename, records)
}

func writeSummaryCSV(comparison *dto.Comparison, filename string) error {
	records := [][]string{{"rank", "policy", "total_cost", "holding_cost", "setup_cost", "orders"}}
	for i, result := range comparison.Results {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			result.Policy.Code(),
			result.TotalCost.String(),
			result.TotalHoldingCost.String(),
			result.TotalSetupCost.String(),
			strconv.Itoa(len(result.Orders)),
		})
	}
	return writeCSV(filename, records)
}

func writeCSV(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

// csvColumns turns display names into snake_case column names
func csvColumns(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		name = strings.ToLower(name)
		out[i] = strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	}
	return out
}

func writeFile(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	logrus.WithField("file", filename).Info("results saved")
	return nil
}
