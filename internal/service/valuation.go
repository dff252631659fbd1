package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/godilite/valuation-server/internal/repository"
	"github.com/godilite/valuation-server/internal/repository/models"
	"github.com/godilite/valuation-server/internal/valuation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	dbTimeout = 2 * time.Second
)

var (
	ErrStorageFailure     = errors.New("storage failure")
	ErrCalculationFailed  = errors.New("calculation failed")
	ErrPersistFailure     = errors.New("persist failure")
	ErrValuationNotFound  = errors.New("valuation not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	errNonFiniteValuation = errors.New("non-finite valuation value")
)

// ValuationService orchestrates a valuation: fetch the questionnaire and the
// company stage, compute, and persist.
type ValuationService struct {
	storage ValuationRepository
	logger  *zap.Logger
	status  *statusTracker
	now     func() time.Time
}

// NewValuationService creates a new ValuationService. displayDelay is how long
// a finished recalculation reports "done" before returning to "idle".
func NewValuationService(storage ValuationRepository, logger *zap.Logger, displayDelay time.Duration) *ValuationService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &ValuationService{
		storage: storage,
		logger:  logger.Named("valuation"),
		status:  newStatusTracker(displayDelay),
		now:     time.Now,
	}
}

// Calculate computes a valuation without persisting it. On failure it returns
// the stage default together with an error wrapping ErrCalculationFailed, so
// callers always have something to display.
func (s *ValuationService) Calculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error) {
	if valuationID == "" {
		return valuation.Result{}, fmt.Errorf("%w: valuation id is required", ErrInvalidArgument)
	}

	stage := s.loadStage(ctx, companyID)

	result, err := s.compute(ctx, valuationID, stage)
	if err == nil {
		err = checkFinite(result)
	}
	if err != nil {
		s.logger.Error("valuation calculation failed, substituting stage default",
			zap.String("valuation_id", valuationID),
			zap.String("stage", stage),
			zap.Error(err))
		return valuation.DefaultResult(stage), fmt.Errorf("%w: %v", ErrCalculationFailed, err)
	}

	s.logger.Info("valuation calculated",
		zap.String("valuation_id", valuationID),
		zap.String("stage", string(result.Stage)),
		zap.Bool("fallback", result.Fallback),
		zap.Float64("combined_valuation", result.CombinedValuation))

	return result, nil
}

// Recalculate computes and persists a valuation. A failed calculation returns
// the unsaved stage default; a failed write returns the computed result
// alongside an error wrapping ErrPersistFailure.
func (s *ValuationService) Recalculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error) {
	if valuationID == "" {
		return valuation.Result{}, fmt.Errorf("%w: valuation id is required", ErrInvalidArgument)
	}

	gen := s.status.begin(valuationID)

	result, err := s.Calculate(ctx, valuationID, companyID)
	if err != nil {
		s.status.finish(valuationID, gen, false)
		return result, err
	}

	if err := s.persist(ctx, valuationID, result); err != nil {
		s.status.finish(valuationID, gen, false)
		return result, err
	}

	s.status.finish(valuationID, gen, true)
	return result, nil
}

// SaveResult persists a result the caller already holds, such as a stage
// default returned by a failed calculation.
func (s *ValuationService) SaveResult(ctx context.Context, valuationID string, result valuation.Result) error {
	if valuationID == "" {
		return fmt.Errorf("%w: valuation id is required", ErrInvalidArgument)
	}
	return s.persist(ctx, valuationID, result)
}

// Status reports the calculation state of a valuation.
func (s *ValuationService) Status(valuationID string) CalculationStatus {
	return s.status.get(valuationID)
}

// GetValuation returns the persisted valuation record.
func (s *ValuationService) GetValuation(ctx context.Context, valuationID string) (ValuationRecord, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rec, err := s.storage.GetValuation(dbCtx, valuationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ValuationRecord{}, fmt.Errorf("%w: %s", ErrValuationNotFound, valuationID)
		}
		return ValuationRecord{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	weights := valuation.Weights{}
	if rec.MethodologyWeights != "" {
		if err := json.Unmarshal([]byte(rec.MethodologyWeights), &weights); err != nil {
			s.logger.Warn("stored methodology weights are unreadable",
				zap.String("valuation_id", valuationID), zap.Error(err))
			weights = valuation.Weights{}
		}
	}

	return ValuationRecord{
		ValuationID:        rec.ID,
		CompanyID:          rec.CompanyID,
		Stage:              rec.Stage,
		SelectedValuation:  rec.SelectedValuation,
		PreMoneyValuation:  rec.PreMoneyValuation,
		Investment:         rec.Investment,
		PostMoneyValuation: rec.PostMoneyValuation,
		Scorecard:          rec.Scorecard,
		ChecklistMethod:    rec.ChecklistMethod,
		VentureCap:         rec.VentureCap,
		DCFGrowth:          rec.DCFGrowth,
		DCFMultiple:        rec.DCFMultiple,
		MethodologyWeights: weights,
		CalculatedAt:       rec.CalculatedAt,
	}, nil
}

// CreateValuation registers the company when needed and creates a valuation
// seeded with the default questionnaire.
func (s *ValuationService) CreateValuation(ctx context.Context, companyID, companyName, stage string) (string, error) {
	if strings.TrimSpace(companyID) == "" {
		return "", fmt.Errorf("%w: company id is required", ErrInvalidArgument)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.ensureCompany(dbCtx, companyID, companyName, stage); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	id, err := s.storage.CreateValuation(dbCtx, companyID, defaultSectionSeeds())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("valuation created", zap.String("valuation_id", id), zap.String("company_id", companyID))
	return id, nil
}

// AnswerQuestion records a questionnaire response.
func (s *ValuationService) AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error {
	if valuationID == "" || questionNumber == "" {
		return fmt.Errorf("%w: valuation id and question number are required", ErrInvalidArgument)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.AnswerQuestion(dbCtx, valuationID, questionNumber, response); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrValuationNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

func (s *ValuationService) ensureCompany(ctx context.Context, companyID, name, stage string) error {
	if stage != "" || name != "" {
		return s.storage.UpsertCompany(ctx, companyID, name, stage)
	}
	_, err := s.storage.FetchCompanyStage(ctx, companyID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.storage.UpsertCompany(ctx, companyID, "", "")
	}
	return err
}

// loadStage reads the company stage. Any failure degrades to the unknown
// stage profile rather than failing the calculation.
func (s *ValuationService) loadStage(ctx context.Context, companyID string) string {
	if companyID == "" {
		return ""
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	stage, err := s.storage.FetchCompanyStage(dbCtx, companyID)
	if err != nil {
		s.logger.Warn("company stage unavailable, using unknown stage weights",
			zap.String("company_id", companyID), zap.Error(err))
		return ""
	}
	return stage
}

func (s *ValuationService) compute(ctx context.Context, valuationID, stage string) (valuation.Result, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.FetchQuestionnaireData(dbCtx, valuationID)
	if err != nil {
		return valuation.Result{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	questions := make([]valuation.QuestionResponse, 0, len(rows))
	for _, r := range rows {
		questions = append(questions, s.toQuestion(r))
	}

	return valuation.Compute(ctx, questions, stage)
}

func (s *ValuationService) toQuestion(r models.QuestionRow) valuation.QuestionResponse {
	q := valuation.QuestionResponse{
		ID:             r.ID,
		QuestionNumber: r.QuestionNumber,
		QuestionText:   r.QuestionText,
		ResponseType:   valuation.ResponseType(r.ResponseType),
	}
	if r.Response.Valid {
		q.RawResponse = valuation.StringPtr(r.Response.String)
	}
	if r.OptionsJSON.Valid && r.OptionsJSON.String != "" {
		if err := json.Unmarshal([]byte(r.OptionsJSON.String), &q.Options); err != nil {
			s.logger.Warn("ignoring unreadable question options",
				zap.String("question_id", r.ID), zap.Error(err))
			q.Options = nil
		}
	}
	return q
}

func (s *ValuationService) persist(ctx context.Context, valuationID string, result valuation.Result) error {
	fields, err := s.toFields(result)
	if err != nil {
		return err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.PersistValuationResult(dbCtx, valuationID, fields); err != nil {
		s.logger.Error("failed to persist valuation",
			zap.String("valuation_id", valuationID), zap.Error(err))
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrValuationNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}

	s.logger.Info("valuation persisted",
		zap.String("valuation_id", valuationID),
		zap.String("combined_valuation", fields.CombinedValuation.String()))
	return nil
}

func (s *ValuationService) toFields(result valuation.Result) (models.ValuationFields, error) {
	weights, err := json.Marshal(result.MethodologyWeights)
	if err != nil {
		return models.ValuationFields{}, fmt.Errorf("encode methodology weights: %w", err)
	}

	if err := checkFinite(result); err != nil {
		return models.ValuationFields{}, err
	}

	return models.ValuationFields{
		Stage:              string(result.Stage),
		CombinedValuation:  money(result.CombinedValuation),
		Scorecard:          money(result.Scorecard),
		ChecklistMethod:    money(result.ChecklistMethod),
		VentureCap:         money(result.VentureCap),
		DCFGrowth:          money(result.DCFGrowth),
		DCFMultiple:        money(result.DCFMultiple),
		MethodologyWeights: string(weights),
		CalculatedAt:       s.now(),
	}, nil
}

func checkFinite(result valuation.Result) error {
	values := []float64{
		result.CombinedValuation, result.Scorecard, result.ChecklistMethod,
		result.VentureCap, result.DCFGrowth, result.DCFMultiple,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", errNonFiniteValuation, v)
		}
	}
	return nil
}

// money rounds to cents; derived fields are computed from this exact value.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func defaultSectionSeeds() []models.SectionSeed {
	sections := valuation.DefaultQuestionnaire()
	seeds := make([]models.SectionSeed, len(sections))
	for i, sec := range sections {
		qs := make([]models.QuestionSeed, len(sec.Questions))
		for j, q := range sec.Questions {
			qs[j] = models.QuestionSeed{
				Number:       q.Number,
				Text:         q.Text,
				ResponseType: string(q.ResponseType),
				Options:      q.Options,
			}
		}
		seeds[i] = models.SectionSeed{Prefix: sec.Prefix, Title: sec.Title, Questions: qs}
	}
	return seeds
}
