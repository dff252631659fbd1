package service

import (
	"context"

	"github.com/godilite/valuation-server/internal/repository/models"
)

// ValuationRepository defines the storage operations the valuation service needs.
type ValuationRepository interface {
	FetchQuestionnaireData(ctx context.Context, valuationID string) ([]models.QuestionRow, error)
	FetchCompanyStage(ctx context.Context, companyID string) (string, error)
	UpsertCompany(ctx context.Context, companyID, name, stage string) error
	PersistValuationResult(ctx context.Context, valuationID string, fields models.ValuationFields) error
	GetValuation(ctx context.Context, valuationID string) (models.ValuationRecord, error)
	CreateValuation(ctx context.Context, companyID string, sections []models.SectionSeed) (string, error)
	AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error
}
