package mocks

import (
	"context"
	"errors"

	"github.com/godilite/valuation-server/internal/repository/models"
)

// MockValuationRepository is a mock implementation of the ValuationRepository
// interface for testing the service layer.
type MockValuationRepository struct {
	FetchQuestionnaireDataFunc func(ctx context.Context, valuationID string) ([]models.QuestionRow, error)
	FetchCompanyStageFunc      func(ctx context.Context, companyID string) (string, error)
	UpsertCompanyFunc          func(ctx context.Context, companyID, name, stage string) error
	PersistValuationResultFunc func(ctx context.Context, valuationID string, fields models.ValuationFields) error
	GetValuationFunc           func(ctx context.Context, valuationID string) (models.ValuationRecord, error)
	CreateValuationFunc        func(ctx context.Context, companyID string, sections []models.SectionSeed) (string, error)
	AnswerQuestionFunc         func(ctx context.Context, valuationID, questionNumber, response string) error
}

// FetchQuestionnaireData implements the ValuationRepository interface
func (m *MockValuationRepository) FetchQuestionnaireData(ctx context.Context, valuationID string) ([]models.QuestionRow, error) {
	if m.FetchQuestionnaireDataFunc != nil {
		return m.FetchQuestionnaireDataFunc(ctx, valuationID)
	}
	return nil, errors.New("FetchQuestionnaireDataFunc not implemented")
}

// FetchCompanyStage implements the ValuationRepository interface
func (m *MockValuationRepository) FetchCompanyStage(ctx context.Context, companyID string) (string, error) {
	if m.FetchCompanyStageFunc != nil {
		return m.FetchCompanyStageFunc(ctx, companyID)
	}
	return "", errors.New("FetchCompanyStageFunc not implemented")
}

// UpsertCompany implements the ValuationRepository interface
func (m *MockValuationRepository) UpsertCompany(ctx context.Context, companyID, name, stage string) error {
	if m.UpsertCompanyFunc != nil {
		return m.UpsertCompanyFunc(ctx, companyID, name, stage)
	}
	return errors.New("UpsertCompanyFunc not implemented")
}

// PersistValuationResult implements the ValuationRepository interface
func (m *MockValuationRepository) PersistValuationResult(ctx context.Context, valuationID string, fields models.ValuationFields) error {
	if m.PersistValuationResultFunc != nil {
		return m.PersistValuationResultFunc(ctx, valuationID, fields)
	}
	return errors.New("PersistValuationResultFunc not implemented")
}

// GetValuation implements the ValuationRepository interface
func (m *MockValuationRepository) GetValuation(ctx context.Context, valuationID string) (models.ValuationRecord, error) {
	if m.GetValuationFunc != nil {
		return m.GetValuationFunc(ctx, valuationID)
	}
	return models.ValuationRecord{}, errors.New("GetValuationFunc not implemented")
}

// CreateValuation implements the ValuationRepository interface
func (m *MockValuationRepository) CreateValuation(ctx context.Context, companyID string, sections []models.SectionSeed) (string, error) {
	if m.CreateValuationFunc != nil {
		return m.CreateValuationFunc(ctx, companyID, sections)
	}
	return "", errors.New("CreateValuationFunc not implemented")
}

// AnswerQuestion implements the ValuationRepository interface
func (m *MockValuationRepository) AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error {
	if m.AnswerQuestionFunc != nil {
		return m.AnswerQuestionFunc(ctx, valuationID, questionNumber, response)
	}
	return errors.New("AnswerQuestionFunc not implemented")
}
