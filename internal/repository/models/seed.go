package models

// QuestionSeed is a question to create, unanswered, for a new valuation.
type QuestionSeed struct {
	Number       string
	Text         string
	ResponseType string
	Options      []string
}

// SectionSeed groups the seeded questions of one questionnaire section.
type SectionSeed struct {
	Prefix    string
	Title     string
	Questions []QuestionSeed
}
