package valuation

import (
	"sort"
	"strconv"
	"strings"
)

// ResponseType is the input kind of a questionnaire item.
type ResponseType string

const (
	ResponseText     ResponseType = "text"
	ResponseNumber   ResponseType = "number"
	ResponseBoolean  ResponseType = "boolean"
	ResponseDropdown ResponseType = "dropdown"
)

// QuestionResponse is a read-only snapshot of one answered (or unanswered)
// questionnaire item.
type QuestionResponse struct {
	ID             string
	QuestionNumber string
	QuestionText   string
	ResponseType   ResponseType
	RawResponse    *string
	// Options is the ordered option set of a dropdown question.
	Options []string
}

// Response returns the trimmed raw response, or "" when unanswered.
func (q QuestionResponse) Response() string {
	if q.RawResponse == nil {
		return ""
	}
	return strings.TrimSpace(*q.RawResponse)
}

// StringPtr is a helper for building responses in literals.
func StringPtr(s string) *string { return &s }

// parseNumber strips everything but digits and dots and parses the rest.
// "$1,200,000" -> 1200000, "45%" -> 45.
func parseNumber(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// findQuestion returns the question with the exact question number.
func findQuestion(questions []QuestionResponse, number string) (QuestionResponse, bool) {
	for _, q := range questions {
		if q.QuestionNumber == number {
			return q, true
		}
	}
	return QuestionResponse{}, false
}

// numberAt reads a numeric answer by question number, falling back to def
// when the question is missing, unanswered or not numeric.
func numberAt(questions []QuestionResponse, number string, def float64) float64 {
	q, ok := findQuestion(questions, number)
	if !ok {
		return def
	}
	v, ok := parseNumber(q.Response())
	if !ok {
		return def
	}
	return v
}

// questionOrdinal splits "3.12" into (3, 12). Unparsable parts sort last.
func questionOrdinal(number string) (int, int) {
	section, index, _ := strings.Cut(number, ".")
	s, err := strconv.Atoi(section)
	if err != nil {
		s = int(^uint(0) >> 1)
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		i = int(^uint(0) >> 1)
	}
	return s, i
}

// sortByQuestionNumber orders questions numerically ("1.2" before "1.10").
func sortByQuestionNumber(questions []QuestionResponse) {
	sort.SliceStable(questions, func(a, b int) bool {
		sa, ia := questionOrdinal(questions[a].QuestionNumber)
		sb, ib := questionOrdinal(questions[b].QuestionNumber)
		if sa != sb {
			return sa < sb
		}
		return ia < ib
	})
}
