package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/lotsizing/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDemand loads a per-period demand sequence from a CSV file.
// Rows may come in any order but every period 1..Horizon must appear exactly once.
func (l *Loader) LoadDemand(filename string) ([]entities.Quantity, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open demand file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadDemand(file)
}

// ReadDemand parses `period,demand` CSV from r
func (l *Loader) ReadDemand(r io.Reader) ([]entities.Quantity, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read demand CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("demand CSV must have header and at least one data row")
	}

	expectedHeader := []string{"period", "demand"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("demand CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	demand := make([]entities.Quantity, entities.Horizon)
	seen := make(map[int]bool, entities.Horizon)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("demand CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		period, qty, err := parseDemandRow(record)
		if err != nil {
			return nil, fmt.Errorf("demand CSV row %d: %w", i+2, err)
		}
		if seen[period] {
			return nil, fmt.Errorf("demand CSV row %d: duplicate period %d", i+2, period)
		}
		seen[period] = true
		demand[period-1] = qty
	}

	if len(seen) != entities.Horizon {
		return nil, fmt.Errorf("%w: demand CSV covers %d of %d periods",
			entities.ErrMalformedDemandSequence, len(seen), entities.Horizon)
	}
	return demand, nil
}

// WriteDemand writes demand in the format ReadDemand accepts
func (l *Loader) WriteDemand(w io.Writer, demand entities.DemandSequence) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"period", "demand"}); err != nil {
		return err
	}
	for p, qty := range demand {
		if err := writer.Write([]string{strconv.Itoa(p + 1), strconv.FormatInt(int64(qty), 10)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseDemandRow(record []string) (int, entities.Quantity, error) {
	period, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period: %s", record[0])
	}
	if period < 1 || period > entities.Horizon {
		return 0, 0, fmt.Errorf("period %d outside 1..%d", period, entities.Horizon)
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid demand: %s", record[1])
	}
	if qty < 0 {
		return 0, 0, fmt.Errorf("%w: period %d demand cannot be negative, got %d",
			entities.ErrMalformedDemandSequence, period, qty)
	}

	return period, entities.Quantity(qty), nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range actual {
		if strings.ToLower(strings.TrimSpace(col)) != expected[i] {
			return false
		}
	}
	return true
}
