package repository

// Schema creates the tables the valuation repository reads and writes.
// Monetary columns are TEXT so decimal values round-trip without float drift.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		stage TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS valuations (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL REFERENCES companies(id),
		stage TEXT NOT NULL DEFAULT '',
		selected_valuation TEXT,
		pre_money_valuation TEXT,
		investment TEXT,
		post_money_valuation TEXT,
		scorecard TEXT,
		checklist_method TEXT,
		venture_cap TEXT,
		dcf_growth TEXT,
		dcf_multiple TEXT,
		methodology_weights TEXT NOT NULL DEFAULT '{}',
		calculated_at TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questionnaire_sections (
		id TEXT PRIMARY KEY,
		valuation_id TEXT NOT NULL REFERENCES valuations(id) ON DELETE CASCADE,
		prefix TEXT NOT NULL,
		title TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		section_id TEXT NOT NULL REFERENCES questionnaire_sections(id) ON DELETE CASCADE,
		question_number TEXT NOT NULL,
		question_text TEXT NOT NULL,
		response_type TEXT NOT NULL,
		response TEXT,
		options TEXT,
		position INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_valuation ON questionnaire_sections(valuation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_section ON questions(section_id)`,
}
