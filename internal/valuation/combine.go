package valuation

import (
	"context"
	"fmt"
)

// Result is the full output of one valuation calculation.
type Result struct {
	Scorecard         float64 `json:"scorecard"`
	ChecklistMethod   float64 `json:"checklistMethod"`
	VentureCap        float64 `json:"ventureCap"`
	DCFGrowth         float64 `json:"dcfGrowth"`
	DCFMultiple       float64 `json:"dcfMultiple"`
	CombinedValuation float64 `json:"combinedValuation"`

	MethodologyWeights Weights            `json:"methodologyWeights"`
	NormalizedValues   map[Method]float64 `json:"normalizedValues,omitempty"`
	Stage              StageCategory      `json:"stage"`
	// Fallback marks a stage-default result that was not computed from answers.
	Fallback bool `json:"fallback"`
}

// MethodValues returns the raw per-method values keyed by method.
func (r Result) MethodValues() map[Method]float64 {
	return map[Method]float64{
		MethodScorecard:   r.Scorecard,
		MethodChecklist:   r.ChecklistMethod,
		MethodVentureCap:  r.VentureCap,
		MethodDCFGrowth:   r.DCFGrowth,
		MethodDCFMultiple: r.DCFMultiple,
	}
}

// Combine returns the weighted average of values over enabled methods only,
// or 0 when no enabled method carries weight.
func Combine(values map[Method]float64, weights Weights) float64 {
	var sum, totalWeight float64
	for _, m := range Methods {
		cfg, ok := weights[m]
		if !ok || !cfg.Enabled {
			continue
		}
		sum += values[m] * cfg.Weight
		totalWeight += cfg.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return sum / totalWeight
}

// Compute runs the full pipeline for one questionnaire snapshot: calculators,
// normalization and stage-weighted combination. A questionnaire without a
// single answer yields the stage default instead of zeros. Unanswered
// questions still reach the calculators so sub-weights stay aligned.
func Compute(ctx context.Context, questions []QuestionResponse, stage string) (Result, error) {
	if !hasAnswers(questions) {
		return DefaultResult(stage), nil
	}

	raw, err := EvaluateMethods(ctx, questions)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate methods: %w", err)
	}

	weights := DefaultWeights(stage)
	normalized := Normalize(raw)

	return Result{
		Scorecard:          raw[MethodScorecard],
		ChecklistMethod:    raw[MethodChecklist],
		VentureCap:         raw[MethodVentureCap],
		DCFGrowth:          raw[MethodDCFGrowth],
		DCFMultiple:        raw[MethodDCFMultiple],
		CombinedValuation:  Combine(normalized, weights),
		MethodologyWeights: weights,
		NormalizedValues:   normalized,
		Stage:              ResolveStage(stage),
	}, nil
}

func hasAnswers(questions []QuestionResponse) bool {
	for _, q := range questions {
		if q.Response() != "" {
			return true
		}
	}
	return false
}

// stageBaseValue anchors the default result of each stage profile.
func stageBaseValue(stage StageCategory) float64 {
	switch stage {
	case StagePreSeed:
		return 1_000_000
	case StageGrowth:
		return 5_000_000
	default:
		return 2_000_000
	}
}

// DefaultResult is the deterministic stage default used when there is no
// questionnaire data or when a calculation fails.
func DefaultResult(stage string) Result {
	category := ResolveStage(stage)
	base := stageBaseValue(category)
	return Result{
		Scorecard:          base * 1.2,
		ChecklistMethod:    base * 1.5,
		VentureCap:         base * 0.8,
		DCFGrowth:          base * 0.7,
		DCFMultiple:        base * 0.6,
		CombinedValuation:  base,
		MethodologyWeights: DefaultWeights(stage),
		Stage:              category,
		Fallback:           true,
	}
}
