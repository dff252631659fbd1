package valuation

import "strings"

// MethodWeightConfig is the weight (0-100, relative) and enabled flag of one
// method. Weights across methods need not sum to 100.
type MethodWeightConfig struct {
	Weight  float64 `json:"weight"`
	Enabled bool    `json:"enabled"`
}

// Weights holds a config for every method.
type Weights map[Method]MethodWeightConfig

// StageCategory is the weight profile a funding stage resolves to.
type StageCategory string

const (
	StagePreSeed StageCategory = "pre-seed"
	StageSeed    StageCategory = "seed"
	StageGrowth  StageCategory = "growth"
	StageUnknown StageCategory = "unknown"
)

// ResolveStage matches a free-text stage label case-insensitively.
func ResolveStage(stage string) StageCategory {
	s := strings.ToLower(strings.TrimSpace(stage))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)

	switch s {
	case "pre-seed", "preseed", "angel":
		return StagePreSeed
	case "seed":
		return StageSeed
	case "growth", "series-a", "seriesa":
		return StageGrowth
	default:
		return StageUnknown
	}
}

// DefaultWeights returns the method weights for a funding stage. Early
// stages have no cash-flow history, so the DCF methods are switched off.
func DefaultWeights(stage string) Weights {
	switch ResolveStage(stage) {
	case StagePreSeed:
		return Weights{
			MethodScorecard:   {Weight: 40, Enabled: true},
			MethodChecklist:   {Weight: 40, Enabled: true},
			MethodVentureCap:  {Weight: 20, Enabled: true},
			MethodDCFGrowth:   {Weight: 0, Enabled: false},
			MethodDCFMultiple: {Weight: 0, Enabled: false},
		}
	case StageSeed:
		return Weights{
			MethodScorecard:   {Weight: 30, Enabled: true},
			MethodChecklist:   {Weight: 30, Enabled: true},
			MethodVentureCap:  {Weight: 20, Enabled: true},
			MethodDCFGrowth:   {Weight: 10, Enabled: true},
			MethodDCFMultiple: {Weight: 10, Enabled: true},
		}
	case StageGrowth:
		return Weights{
			MethodScorecard:   {Weight: 10, Enabled: true},
			MethodChecklist:   {Weight: 10, Enabled: true},
			MethodVentureCap:  {Weight: 20, Enabled: true},
			MethodDCFGrowth:   {Weight: 30, Enabled: true},
			MethodDCFMultiple: {Weight: 30, Enabled: true},
		}
	default:
		return Weights{
			MethodScorecard:   {Weight: 20, Enabled: true},
			MethodChecklist:   {Weight: 20, Enabled: true},
			MethodVentureCap:  {Weight: 20, Enabled: true},
			MethodDCFGrowth:   {Weight: 20, Enabled: true},
			MethodDCFMultiple: {Weight: 20, Enabled: true},
		}
	}
}
