package entities

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PeriodRecord is one period's row of a simulation ledger
type PeriodRecord struct {
	Period              int             `json:"period" yaml:"period"`
	Demand              Quantity        `json:"demand" yaml:"demand"`
	PlannedOrder        Quantity        `json:"planned_order" yaml:"planned_order"`
	ScheduledReceipt    Quantity        `json:"scheduled_receipt" yaml:"scheduled_receipt"`
	OnHandInventory     Quantity        `json:"on_hand_inventory" yaml:"on_hand_inventory"`
	NetRequirement      Quantity        `json:"net_requirement" yaml:"net_requirement"`
	LotSize             Quantity        `json:"lot_size" yaml:"lot_size"`
	HoldingCostIncurred decimal.Decimal `json:"holding_cost_incurred" yaml:"holding_cost_incurred"`
	SetupCostIncurred   decimal.Decimal `json:"setup_cost_incurred" yaml:"setup_cost_incurred"`
}

// Ledger is the ordered set of period records produced by one simulation run
type Ledger [Horizon]PeriodRecord

// LedgerAttributes names the ledger rows in display order
var LedgerAttributes = []string{
	"Demand",
	"Planned Orders",
	"Scheduled Receipts",
	"On-hand Inventory",
	"Net Requirements",
	"Lot Size",
	"Holding Cost Incurred",
	"Setup Cost Incurred",
}

// Values returns the record's fields as display strings, aligned with LedgerAttributes
func (r PeriodRecord) Values() []string {
	return []string{
		quantityString(r.Demand),
		quantityString(r.PlannedOrder),
		quantityString(r.ScheduledReceipt),
		quantityString(r.OnHandInventory),
		quantityString(r.NetRequirement),
		quantityString(r.LotSize),
		r.HoldingCostIncurred.String(),
		r.SetupCostIncurred.String(),
	}
}

func quantityString(q Quantity) string {
	return strconv.FormatInt(int64(q), 10)
}
