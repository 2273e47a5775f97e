package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/lotsizing/pkg/infrastructure/config"
)

// maxPromptAttempts bounds re-prompting on invalid answers
const maxPromptAttempts = 3

// Prompter collects a scenario from a terminal one answer per line
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// PromptScenario asks for every scenario value in turn
func (p *Prompter) PromptScenario(periods int) (*config.Scenario, error) {
	s := &config.Scenario{Name: "interactive"}

	for i := 1; i <= periods; i++ {
		v, err := p.nonNegativeInt(fmt.Sprintf("Enter the demand for period %d: ", i))
		if err != nil {
			return nil, err
		}
		s.Demand = append(s.Demand, v)
	}

	leadTime, err := p.nonNegativeInt("Enter the lead time in periods: ")
	if err != nil {
		return nil, err
	}
	s.LeadTime = int(leadTime)

	if s.SafetyStock, err = p.nonNegativeInt("Enter the safety stock: "); err != nil {
		return nil, err
	}
	if s.StartingInventory, err = p.nonNegativeInt("Enter the starting inventory: "); err != nil {
		return nil, err
	}
	if s.HoldingCost, err = p.nonNegativeDecimal("Enter the holding cost per unit per period: "); err != nil {
		return nil, err
	}
	if s.SetupCost, err = p.nonNegativeDecimal("Enter the setup cost per order: "); err != nil {
		return nil, err
	}

	wantFixed, err := p.yesNo("Do you want to specify a fixed order quantity? (y/n): ")
	if err != nil {
		return nil, err
	}
	if wantFixed {
		fixed, err := ask(p, "Enter the fixed order quantity: ", func(answer string) (int64, error) {
			v, err := strconv.ParseInt(answer, 10, 64)
			if err != nil || v <= 0 {
				return 0, fmt.Errorf("expected a positive whole number, got %q", answer)
			}
			return v, nil
		})
		if err != nil {
			return nil, err
		}
		s.FixedQuantity = &fixed
	}

	return s, nil
}

func (p *Prompter) nonNegativeInt(question string) (int64, error) {
	return ask(p, question, func(answer string) (int64, error) {
		v, err := strconv.ParseInt(answer, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("expected a non-negative whole number, got %q", answer)
		}
		return v, nil
	})
}

func (p *Prompter) nonNegativeDecimal(question string) (decimal.Decimal, error) {
	return ask(p, question, func(answer string) (decimal.Decimal, error) {
		v, err := decimal.NewFromString(answer)
		if err != nil || v.IsNegative() {
			return decimal.Zero, fmt.Errorf("expected a non-negative number, got %q", answer)
		}
		return v, nil
	})
}

func (p *Prompter) yesNo(question string) (bool, error) {
	return ask(p, question, func(answer string) (bool, error) {
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		return false, fmt.Errorf("expected y or n, got %q", answer)
	})
}

// ask reads one line and parses it, re-asking on parse errors
func ask[T any](p *Prompter, question string, parse func(string) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		fmt.Fprint(p.out, question)
		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return zero, fmt.Errorf("failed to read answer: %w", err)
		}
		v, perr := parse(strings.TrimSpace(line))
		if perr == nil {
			return v, nil
		}
		lastErr = perr
		fmt.Fprintf(p.out, "  %v\n", perr)
	}
	return zero, fmt.Errorf("too many invalid answers: %w", lastErr)
}
