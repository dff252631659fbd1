package valuation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Method identifies one of the five valuation methodologies.
type Method string

const (
	MethodScorecard   Method = "scorecard"
	MethodChecklist   Method = "checklistMethod"
	MethodVentureCap  Method = "ventureCap"
	MethodDCFGrowth   Method = "dcfGrowth"
	MethodDCFMultiple Method = "dcfMultiple"
)

// Methods lists every method in canonical order.
var Methods = []Method{
	MethodScorecard,
	MethodChecklist,
	MethodVentureCap,
	MethodDCFGrowth,
	MethodDCFMultiple,
}

// Calculator derives a monetary value from the questionnaire. Calculators
// never fail; missing answers fall back to documented defaults.
type Calculator func(questions []QuestionResponse) float64

// Calculators maps each method to its implementation.
var Calculators = map[Method]Calculator{
	MethodScorecard:   Scorecard,
	MethodChecklist:   Checklist,
	MethodVentureCap:  VentureCapital,
	MethodDCFGrowth:   DCFGrowth,
	MethodDCFMultiple: DCFMultiple,
}

// EvaluateMethods runs all calculators concurrently over the same snapshot.
// A panicking calculator is reported as an error instead of crashing the caller.
func EvaluateMethods(ctx context.Context, questions []QuestionResponse) (map[Method]float64, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	values := make(map[Method]float64, len(Methods))

	for _, m := range Methods {
		calc := Calculators[m]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s calculator panicked: %v", m, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			v := calc(questions)
			mu.Lock()
			values[m] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// Scorecard.

const scorecardBaseValuation = 5_000_000

type scorecardFactor struct {
	prefix     string
	weight     float64
	subWeights []SubWeight
}

// Top-level weights sum to 1.0.
var scorecardFactors = []scorecardFactor{
	{prefix: CategoryTeam, weight: 0.30, subWeights: []SubWeight{
		{Key: "founderExperience", Weight: 0.35},
		{Key: "teamCompleteness", Weight: 0.25},
		{Key: "technicalExpertise", Weight: 0.25},
		{Key: "advisors", Weight: 0.15},
	}},
	{prefix: CategoryMarket, weight: 0.25, subWeights: []SubWeight{
		{Key: "marketSize", Weight: 0.40},
		{Key: "marketGrowth", Weight: 0.35},
		{Key: "customerBase", Weight: 0.25},
	}},
	{prefix: CategoryProduct, weight: 0.15, subWeights: []SubWeight{
		{Key: "productStage", Weight: 0.40},
		{Key: "intellectualProperty", Weight: 0.30},
		{Key: "userFeedback", Weight: 0.30},
	}},
	{prefix: CategoryCompetition, weight: 0.10, subWeights: []SubWeight{
		{Key: "industry", Weight: 0.20},
		{Key: "competitiveIntensity", Weight: 0.40},
		{Key: "differentiation", Weight: 0.40},
	}},
	{prefix: CategoryBusinessModel, weight: 0.10, subWeights: []SubWeight{
		{Key: "revenueModel", Weight: 0.40},
		{Key: "grossMargin", Weight: 0.30},
		{Key: "revenuePerCustomer", Weight: 0.30},
	}},
	{prefix: CategoryFinancials, weight: 0.10, subWeights: []SubWeight{
		{Key: "lastYearRevenue", Weight: 0.30},
		{Key: "revenueGrowth", Weight: 0.20},
		{Key: "runway", Weight: 0.15},
		{Key: "recurringRevenue", Weight: 0.10},
		{Key: "fundingRaised", Weight: 0.10},
		{Key: "profitMargin", Weight: 0.15},
	}},
}

// Scorecard weighs six category ratings against a fixed base valuation.
func Scorecard(questions []QuestionResponse) float64 {
	var rating float64
	for _, f := range scorecardFactors {
		rating += Rating(questions, f.prefix, f.subWeights) * f.weight
	}
	return scorecardBaseValuation * rating
}

// Checklist.

const checklistBaseValuation = 7_500_000

type checklistFactor struct {
	name   string
	prefix string
	minAdj float64
	maxAdj float64
}

var checklistFactors = []checklistFactor{
	{name: "Team Strength", prefix: CategoryTeam, minAdj: -0.5, maxAdj: 1.0},
	{name: "Product & Technology", prefix: CategoryProduct, minAdj: -0.3, maxAdj: 0.6},
	{name: "Market Opportunity", prefix: CategoryMarket, minAdj: -0.4, maxAdj: 0.8},
	{name: "Business Model", prefix: CategoryBusinessModel, minAdj: -0.3, maxAdj: 0.5},
	{name: "Competitive Position", prefix: CategoryCompetition, minAdj: -0.3, maxAdj: 0.4},
	{name: "Financial Traction", prefix: CategoryFinancials, minAdj: -0.4, maxAdj: 0.7},
	{name: "Growth Outlook", prefix: CategoryProjections, minAdj: -0.2, maxAdj: 0.5},
}

// Checklist adjusts a base valuation by the sum of per-factor adjustments,
// each interpolated linearly between the factor's bounds by its rating.
// The total is unbounded by design.
func Checklist(questions []QuestionResponse) float64 {
	var total float64
	for _, f := range checklistFactors {
		r := Rating(questions, f.prefix, nil)
		total += f.minAdj + r*(f.maxAdj-f.minAdj)
	}
	return checklistBaseValuation * (1 + total)
}

// Venture Capital method.

// revenueMultiple is a step function of the expected growth rate in percent.
func revenueMultiple(growthRate float64) float64 {
	switch {
	case growthRate >= 100:
		return 15
	case growthRate >= 50:
		return 10
	case growthRate >= 30:
		return 8
	case growthRate >= 20:
		return 6
	case growthRate >= 10:
		return 4
	default:
		return 2
	}
}

// VentureCapital prices next year's revenue at a growth-dependent multiple.
// Without a projection, next year's revenue is extrapolated from last year.
func VentureCapital(questions []QuestionResponse) float64 {
	lastYear := numberAt(questions, QuestionLastYearRevenue, 0)
	projected := numberAt(questions, QuestionProjectedRevenue, 0)
	growth := numberAt(questions, QuestionGrowthRate, 0)

	revenue := projected
	if revenue <= 0 {
		revenue = lastYear * (1 + growth/100)
	}
	return revenue * revenueMultiple(growth)
}

// Discounted cash flow.

const (
	dcfDiscountRate     = 0.25
	dcfTerminalGrowth   = 0.03
	dcfTerminalMultiple = 10
	dcfYears            = 5

	defaultGrowthRate   = 20
	defaultProfitMargin = 15
)

// DCFGrowth discounts five years of projected cash flow plus a terminal value.
func DCFGrowth(questions []QuestionResponse) float64 {
	revenue := numberAt(questions, QuestionLastYearRevenue, 0)
	growth := numberAt(questions, QuestionGrowthRate, defaultGrowthRate) / 100
	margin := numberAt(questions, QuestionProfitMargin, defaultProfitMargin) / 100

	var value, cashFlow float64
	for year := 1; year <= dcfYears; year++ {
		revenue *= 1 + growth
		cashFlow = revenue * margin
		value += cashFlow / math.Pow(1+dcfDiscountRate, float64(year))
	}

	terminal := cashFlow * (1 + dcfTerminalGrowth) * dcfTerminalMultiple
	value += terminal / math.Pow(1+dcfDiscountRate, dcfYears)

	return math.Max(0, value)
}

const defaultIndustryMultiple = 8

// industryMultiple picks an EBITDA multiple from the industry answer.
func industryMultiple(questions []QuestionResponse) float64 {
	q, ok := findQuestion(questions, QuestionIndustry)
	if !ok {
		return defaultIndustryMultiple
	}
	industry := strings.ToLower(q.Response())
	switch {
	case strings.Contains(industry, "tech") || strings.Contains(industry, "software"):
		return 10
	case strings.Contains(industry, "health") || strings.Contains(industry, "bio"):
		return 12
	default:
		return defaultIndustryMultiple
	}
}

// DCFMultiple values EBITDA at an industry multiple. When EBITDA is at or
// below 5% of revenue it prices revenue at 80% of that multiple instead.
func DCFMultiple(questions []QuestionResponse) float64 {
	revenue := numberAt(questions, QuestionLastYearRevenue, 0)
	margin := numberAt(questions, QuestionProfitMargin, defaultProfitMargin)
	ebitda := revenue * margin / 100
	multiple := industryMultiple(questions)

	// ebitda > 5% of revenue, kept in integer-friendly form so the boundary is exact.
	if ebitda*20 > revenue {
		return ebitda * multiple
	}
	return revenue * (multiple * 0.8)
}
