package valuation

import (
	"math"
	"strings"
)

// NeutralRating is used wherever a question gives no usable signal.
const NeutralRating = 0.5

// SubWeight is the weight of one question slot inside a category.
// Sub-weights are matched to questions by position, not by Key: the i-th
// weight applies to the i-th category question in question-number order.
type SubWeight struct {
	Key    string
	Weight float64
}

// Rating converts all questions whose number starts with prefix into a
// rating in [0,1]. Without sub-weights it is the plain mean of the
// per-question scores.
func Rating(questions []QuestionResponse, prefix string, subWeights []SubWeight) float64 {
	matching := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		if strings.HasPrefix(q.QuestionNumber, prefix) {
			matching = append(matching, q)
		}
	}
	if len(matching) == 0 {
		return NeutralRating
	}
	sortByQuestionNumber(matching)

	scores := make([]float64, len(matching))
	for i, q := range matching {
		scores[i] = questionScore(q)
	}

	if subWeights == nil {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		return clamp01(sum / float64(len(scores)))
	}

	var weighted, total float64
	for i, s := range scores {
		if i >= len(subWeights) {
			break
		}
		w := subWeights[i].Weight
		weighted += s * w
		total += w
	}
	if total == 0 {
		return NeutralRating
	}
	return clamp01(weighted / total)
}

// questionScore scores a single answer in [0,1].
func questionScore(q QuestionResponse) float64 {
	resp := q.Response()
	if resp == "" {
		return NeutralRating
	}

	if q.ResponseType == ResponseDropdown {
		return dropdownScore(resp, q.Options)
	}

	value, ok := parseNumber(resp)
	if !ok {
		return NeutralRating
	}

	text := strings.ToLower(q.QuestionText)
	switch {
	case strings.Contains(text, "revenue") || strings.Contains(text, "customer"):
		return logRevenueScore(value)
	case strings.Contains(text, "growth") || strings.Contains(text, "margin"):
		return clamp01(value / 100)
	default:
		return NeutralRating
	}
}

// dropdownScore maps the selected option's position to (index+1)/count.
func dropdownScore(selected string, options []string) float64 {
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), selected) {
			return float64(i+1) / float64(len(options))
		}
	}
	return NeutralRating
}

// logRevenueScore compresses revenue-like figures: $1M scores ~0.86 and
// anything at or above $10M saturates at 1.
func logRevenueScore(value float64) float64 {
	if value <= 0 {
		return 0
	}
	return clamp01(math.Log10(value) / 7)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
