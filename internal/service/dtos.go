package service

import (
	"time"

	"github.com/godilite/valuation-server/internal/valuation"
	"github.com/shopspring/decimal"
)

// ValuationRecord is the persisted valuation as exposed to callers.
type ValuationRecord struct {
	ValuationID        string            `json:"valuation_id"`
	CompanyID          string            `json:"company_id"`
	Stage              string            `json:"stage"`
	SelectedValuation  decimal.Decimal   `json:"selected_valuation"`
	PreMoneyValuation  decimal.Decimal   `json:"pre_money_valuation"`
	Investment         decimal.Decimal   `json:"investment"`
	PostMoneyValuation decimal.Decimal   `json:"post_money_valuation"`
	Scorecard          decimal.Decimal   `json:"scorecard"`
	ChecklistMethod    decimal.Decimal   `json:"checklist_method"`
	VentureCap         decimal.Decimal   `json:"venture_cap"`
	DCFGrowth          decimal.Decimal   `json:"dcf_growth"`
	DCFMultiple        decimal.Decimal   `json:"dcf_multiple"`
	MethodologyWeights valuation.Weights `json:"methodology_weights"`
	CalculatedAt       *time.Time        `json:"calculated_at,omitempty"`
}

// CalculationStatus is the externally visible state of a recalculation.
type CalculationStatus string

const (
	StatusIdle        CalculationStatus = "idle"
	StatusCalculating CalculationStatus = "calculating"
	StatusDone        CalculationStatus = "done"
)
