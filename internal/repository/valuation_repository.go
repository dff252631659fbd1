package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/valuation-server/internal/repository/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// Fixed 15% dilution assumption applied to every persisted valuation.
var (
	investmentRatio = decimal.RequireFromString("0.15")
	postMoneyRatio  = decimal.RequireFromString("1.15")
)

type ValuationRepository struct {
	db *sql.DB
}

func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// FetchQuestionnaireData returns every question across all questionnaire
// sections linked to the valuation, in section and question order.
func (r *ValuationRepository) FetchQuestionnaireData(ctx context.Context, valuationID string) ([]models.QuestionRow, error) {
	const query = `
		SELECT
			q.id,
			q.section_id,
			q.question_number,
			q.question_text,
			q.response_type,
			q.response,
			q.options
		FROM questions AS q
		JOIN questionnaire_sections AS s ON q.section_id = s.id
		WHERE s.valuation_id = ?
		ORDER BY s.position, q.position
	`

	rows, err := r.db.QueryContext(ctx, query, valuationID)
	if err != nil {
		return nil, fmt.Errorf("query FetchQuestionnaireData: %w", err)
	}
	defer rows.Close()

	var results []models.QuestionRow
	for rows.Next() {
		var q models.QuestionRow
		if err := rows.Scan(&q.ID, &q.SectionID, &q.QuestionNumber, &q.QuestionText, &q.ResponseType, &q.Response, &q.OptionsJSON); err != nil {
			return nil, fmt.Errorf("scan FetchQuestionnaireData row: %w", err)
		}
		results = append(results, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate FetchQuestionnaireData: %w", err)
	}
	return results, nil
}

// FetchCompanyStage returns the company's free-text funding stage label.
func (r *ValuationRepository) FetchCompanyStage(ctx context.Context, companyID string) (string, error) {
	const query = `SELECT stage FROM companies WHERE id = ?`

	var stage string
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(&stage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("company %q: %w", companyID, ErrNotFound)
		}
		return "", fmt.Errorf("query FetchCompanyStage: %w", err)
	}
	return stage, nil
}

// UpsertCompany creates the company or updates its name and stage.
func (r *ValuationRepository) UpsertCompany(ctx context.Context, companyID, name, stage string) error {
	const query = `
		INSERT INTO companies (id, name, stage) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, stage = excluded.stage
	`
	if _, err := r.db.ExecContext(ctx, query, companyID, name, stage); err != nil {
		return fmt.Errorf("exec UpsertCompany: %w", err)
	}
	return nil
}

// PersistValuationResult writes the combined valuation into the selected and
// pre-money fields and derives investment (x0.15) and post-money (x1.15).
func (r *ValuationRepository) PersistValuationResult(ctx context.Context, valuationID string, f models.ValuationFields) error {
	const query = `
		UPDATE valuations SET
			stage = ?,
			selected_valuation = ?,
			pre_money_valuation = ?,
			investment = ?,
			post_money_valuation = ?,
			scorecard = ?,
			checklist_method = ?,
			venture_cap = ?,
			dcf_growth = ?,
			dcf_multiple = ?,
			methodology_weights = ?,
			calculated_at = ?
		WHERE id = ?
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin PersistValuationResult: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query,
		f.Stage,
		f.CombinedValuation,
		f.CombinedValuation,
		f.CombinedValuation.Mul(investmentRatio),
		f.CombinedValuation.Mul(postMoneyRatio),
		f.Scorecard,
		f.ChecklistMethod,
		f.VentureCap,
		f.DCFGrowth,
		f.DCFMultiple,
		f.MethodologyWeights,
		f.CalculatedAt.UTC().Format(time.RFC3339Nano),
		valuationID,
	)
	if err != nil {
		return fmt.Errorf("exec PersistValuationResult: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected PersistValuationResult: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("valuation %q: %w", valuationID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit PersistValuationResult: %w", err)
	}
	return nil
}

// GetValuation reads back the authoritative valuation record.
func (r *ValuationRepository) GetValuation(ctx context.Context, valuationID string) (models.ValuationRecord, error) {
	const query = `
		SELECT
			id,
			company_id,
			stage,
			selected_valuation,
			pre_money_valuation,
			investment,
			post_money_valuation,
			scorecard,
			checklist_method,
			venture_cap,
			dcf_growth,
			dcf_multiple,
			methodology_weights,
			calculated_at
		FROM valuations
		WHERE id = ?
	`

	var (
		rec                                       models.ValuationRecord
		selected, preMoney, investment, postMoney decimal.NullDecimal
		scorecard, checklist, ventureCap          decimal.NullDecimal
		dcfGrowth, dcfMultiple                    decimal.NullDecimal
		calculatedAt                              sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, valuationID).Scan(
		&rec.ID, &rec.CompanyID, &rec.Stage,
		&selected, &preMoney, &investment, &postMoney,
		&scorecard, &checklist, &ventureCap, &dcfGrowth, &dcfMultiple,
		&rec.MethodologyWeights, &calculatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ValuationRecord{}, fmt.Errorf("valuation %q: %w", valuationID, ErrNotFound)
		}
		return models.ValuationRecord{}, fmt.Errorf("query GetValuation: %w", err)
	}

	rec.SelectedValuation = selected.Decimal
	rec.PreMoneyValuation = preMoney.Decimal
	rec.Investment = investment.Decimal
	rec.PostMoneyValuation = postMoney.Decimal
	rec.Scorecard = scorecard.Decimal
	rec.ChecklistMethod = checklist.Decimal
	rec.VentureCap = ventureCap.Decimal
	rec.DCFGrowth = dcfGrowth.Decimal
	rec.DCFMultiple = dcfMultiple.Decimal

	if calculatedAt.Valid {
		ts, err := time.Parse(time.RFC3339Nano, calculatedAt.String)
		if err != nil {
			return models.ValuationRecord{}, fmt.Errorf("parse calculated_at: %w", err)
		}
		rec.CalculatedAt = &ts
	}

	return rec, nil
}

// CreateValuation inserts a valuation for the company and seeds its
// questionnaire with unanswered questions. It returns the new valuation ID.
func (r *ValuationRepository) CreateValuation(ctx context.Context, companyID string, sections []models.SectionSeed) (string, error) {
	valuationID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin CreateValuation: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO valuations (id, company_id, created_at) VALUES (?, ?, ?)`,
		valuationID, companyID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert valuation: %w", err)
	}

	for si, section := range sections {
		sectionID := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO questionnaire_sections (id, valuation_id, prefix, title, position) VALUES (?, ?, ?, ?, ?)`,
			sectionID, valuationID, section.Prefix, section.Title, si,
		)
		if err != nil {
			return "", fmt.Errorf("insert section %s: %w", section.Prefix, err)
		}

		for qi, q := range section.Questions {
			var options sql.NullString
			if len(q.Options) > 0 {
				raw, err := json.Marshal(q.Options)
				if err != nil {
					return "", fmt.Errorf("encode options for %s: %w", q.Number, err)
				}
				options = sql.NullString{String: string(raw), Valid: true}
			}

			_, err := tx.ExecContext(ctx,
				`INSERT INTO questions (id, section_id, question_number, question_text, response_type, options, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), sectionID, q.Number, q.Text, q.ResponseType, options, qi,
			)
			if err != nil {
				return "", fmt.Errorf("insert question %s: %w", q.Number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit CreateValuation: %w", err)
	}
	return valuationID, nil
}

// AnswerQuestion stores a response for one question of the valuation.
func (r *ValuationRepository) AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error {
	const query = `
		UPDATE questions SET response = ?
		WHERE question_number = ?
		  AND section_id IN (SELECT id FROM questionnaire_sections WHERE valuation_id = ?)
	`

	res, err := r.db.ExecContext(ctx, query, response, questionNumber, valuationID)
	if err != nil {
		return fmt.Errorf("exec AnswerQuestion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected AnswerQuestion: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("question %s of valuation %q: %w", questionNumber, valuationID, ErrNotFound)
	}
	return nil
}
