package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// QuestionRow is one questionnaire item as stored, joined through its section.
type QuestionRow struct {
	ID             string
	SectionID      string
	QuestionNumber string
	QuestionText   string
	ResponseType   string
	Response       sql.NullString
	OptionsJSON    sql.NullString
}

// ValuationRecord is the authoritative valuation row.
type ValuationRecord struct {
	ID                 string
	CompanyID          string
	Stage              string
	SelectedValuation  decimal.Decimal
	PreMoneyValuation  decimal.Decimal
	Investment         decimal.Decimal
	PostMoneyValuation decimal.Decimal
	Scorecard          decimal.Decimal
	ChecklistMethod    decimal.Decimal
	VentureCap         decimal.Decimal
	DCFGrowth          decimal.Decimal
	DCFMultiple        decimal.Decimal
	MethodologyWeights string
	CalculatedAt       *time.Time
}

// ValuationFields are the values written by a single persist call.
type ValuationFields struct {
	Stage              string
	CombinedValuation  decimal.Decimal
	Scorecard          decimal.Decimal
	ChecklistMethod    decimal.Decimal
	VentureCap         decimal.Decimal
	DCFGrowth          decimal.Decimal
	DCFMultiple        decimal.Decimal
	MethodologyWeights string
	CalculatedAt       time.Time
}
