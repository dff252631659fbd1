package valuation

// Category prefixes of the default questionnaire.
const (
	CategoryTeam          = "1."
	CategoryProduct       = "2."
	CategoryMarket        = "3."
	CategoryBusinessModel = "4."
	CategoryCompetition   = "5."
	CategoryFinancials    = "6."
	CategoryProjections   = "7."
)

// Question numbers read directly by the calculators.
const (
	QuestionIndustry         = "5.1"
	QuestionLastYearRevenue  = "6.1"
	QuestionProfitMargin     = "6.6"
	QuestionProjectedRevenue = "7.2"
	QuestionGrowthRate       = "7.3"
)

// QuestionTemplate describes one default question.
type QuestionTemplate struct {
	Number       string
	Text         string
	ResponseType ResponseType
	Options      []string
}

// Section groups the templates of one category.
type Section struct {
	Prefix    string
	Title     string
	Questions []QuestionTemplate
}

// DefaultQuestionnaire is the question set every new valuation starts with.
// Within each section, question order is the order the scorecard sub-weights
// are declared in.
func DefaultQuestionnaire() []Section {
	return []Section{
		{
			Prefix: CategoryTeam,
			Title:  "Team",
			Questions: []QuestionTemplate{
				{Number: "1.1", Text: "How much startup experience do the founders have?", ResponseType: ResponseDropdown,
					Options: []string{"None", "Some industry experience", "Previous startup", "Previous exit"}},
				{Number: "1.2", Text: "How complete is the core team?", ResponseType: ResponseDropdown,
					Options: []string{"Solo founder", "Founders only", "Key roles filled", "Full leadership team"}},
				{Number: "1.3", Text: "How deep is the team's technical expertise?", ResponseType: ResponseDropdown,
					Options: []string{"Outsourced", "Basic", "Strong", "World-class"}},
				{Number: "1.4", Text: "Do you have an advisory board?", ResponseType: ResponseDropdown,
					Options: []string{"No", "Informal advisors", "Formal board"}},
			},
		},
		{
			Prefix: CategoryProduct,
			Title:  "Product",
			Questions: []QuestionTemplate{
				{Number: "2.1", Text: "What stage is the product in?", ResponseType: ResponseDropdown,
					Options: []string{"Idea", "Prototype", "MVP", "Launched", "Scaling"}},
				{Number: "2.2", Text: "How is your intellectual property protected?", ResponseType: ResponseDropdown,
					Options: []string{"None", "Trade secrets", "Patent pending", "Granted patents"}},
				{Number: "2.3", Text: "How do users respond to the product?", ResponseType: ResponseDropdown,
					Options: []string{"No feedback yet", "Mixed", "Positive", "Strong pull"}},
			},
		},
		{
			Prefix: CategoryMarket,
			Title:  "Market",
			Questions: []QuestionTemplate{
				{Number: "3.1", Text: "How large is the addressable market?", ResponseType: ResponseDropdown,
					Options: []string{"Under $100M", "$100M-$1B", "$1B-$10B", "Over $10B"}},
				{Number: "3.2", Text: "What is the annual market growth rate (%)?", ResponseType: ResponseNumber},
				{Number: "3.3", Text: "How many paying customers do you have?", ResponseType: ResponseNumber},
			},
		},
		{
			Prefix: CategoryBusinessModel,
			Title:  "Business Model",
			Questions: []QuestionTemplate{
				{Number: "4.1", Text: "What is your primary revenue model?", ResponseType: ResponseDropdown,
					Options: []string{"Undecided", "One-time sales", "Transactional", "Subscription"}},
				{Number: "4.2", Text: "What is your gross margin (%)?", ResponseType: ResponseNumber},
				{Number: "4.3", Text: "What is your average annual revenue per customer?", ResponseType: ResponseNumber},
			},
		},
		{
			Prefix: CategoryCompetition,
			Title:  "Competition",
			Questions: []QuestionTemplate{
				{Number: "5.1", Text: "Which industry does the company operate in?", ResponseType: ResponseText},
				{Number: "5.2", Text: "How intense is the competition?", ResponseType: ResponseDropdown,
					Options: []string{"Very high", "High", "Moderate", "Low"}},
				{Number: "5.3", Text: "How strong is your differentiation?", ResponseType: ResponseDropdown,
					Options: []string{"Weak", "Moderate", "Strong", "Unique"}},
			},
		},
		{
			Prefix: CategoryFinancials,
			Title:  "Financials",
			Questions: []QuestionTemplate{
				{Number: "6.1", Text: "What was your revenue last year?", ResponseType: ResponseNumber},
				{Number: "6.2", Text: "What was your year-over-year growth (%)?", ResponseType: ResponseNumber},
				{Number: "6.3", Text: "How many months of runway do you have?", ResponseType: ResponseDropdown,
					Options: []string{"Under 6", "6-12", "12-18", "18-24", "Over 24"}},
				{Number: "6.4", Text: "What is your monthly recurring revenue?", ResponseType: ResponseNumber},
				{Number: "6.5", Text: "How much funding have you raised to date?", ResponseType: ResponseNumber},
				{Number: "6.6", Text: "What is your profit margin (%)?", ResponseType: ResponseNumber},
			},
		},
		{
			Prefix: CategoryProjections,
			Title:  "Projections",
			Questions: []QuestionTemplate{
				{Number: "7.1", Text: "How much are you raising in this round?", ResponseType: ResponseNumber},
				{Number: "7.2", Text: "What revenue do you project for next year?", ResponseType: ResponseNumber},
				{Number: "7.3", Text: "What annual growth rate (%) do you expect?", ResponseType: ResponseNumber},
			},
		},
	}
}
