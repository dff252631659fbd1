package mocks

import (
	"context"
	"errors"

	"github.com/godilite/valuation-server/internal/service"
	"github.com/godilite/valuation-server/internal/valuation"
)

// MockValuationService is a mock implementation of the ValuationService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockValuationService struct {
	CalculateFunc       func(ctx context.Context, valuationID, companyID string) (valuation.Result, error)
	RecalculateFunc     func(ctx context.Context, valuationID, companyID string) (valuation.Result, error)
	SaveResultFunc      func(ctx context.Context, valuationID string, result valuation.Result) error
	GetValuationFunc    func(ctx context.Context, valuationID string) (service.ValuationRecord, error)
	StatusFunc          func(valuationID string) service.CalculationStatus
	CreateValuationFunc func(ctx context.Context, companyID, companyName, stage string) (string, error)
	AnswerQuestionFunc  func(ctx context.Context, valuationID, questionNumber, response string) error
}

// Calculate implements the ValuationService interface
func (m *MockValuationService) Calculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error) {
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, valuationID, companyID)
	}
	return valuation.Result{}, errors.New("CalculateFunc not implemented")
}

// Recalculate implements the ValuationService interface
func (m *MockValuationService) Recalculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error) {
	if m.RecalculateFunc != nil {
		return m.RecalculateFunc(ctx, valuationID, companyID)
	}
	return valuation.Result{}, errors.New("RecalculateFunc not implemented")
}

// SaveResult implements the ValuationService interface
func (m *MockValuationService) SaveResult(ctx context.Context, valuationID string, result valuation.Result) error {
	if m.SaveResultFunc != nil {
		return m.SaveResultFunc(ctx, valuationID, result)
	}
	return errors.New("SaveResultFunc not implemented")
}

// GetValuation implements the ValuationService interface
func (m *MockValuationService) GetValuation(ctx context.Context, valuationID string) (service.ValuationRecord, error) {
	if m.GetValuationFunc != nil {
		return m.GetValuationFunc(ctx, valuationID)
	}
	return service.ValuationRecord{}, errors.New("GetValuationFunc not implemented")
}

// Status implements the ValuationService interface
func (m *MockValuationService) Status(valuationID string) service.CalculationStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc(valuationID)
	}
	return service.StatusIdle
}

// CreateValuation implements the ValuationService interface
func (m *MockValuationService) CreateValuation(ctx context.Context, companyID, companyName, stage string) (string, error) {
	if m.CreateValuationFunc != nil {
		return m.CreateValuationFunc(ctx, companyID, companyName, stage)
	}
	return "", errors.New("CreateValuationFunc not implemented")
}

// AnswerQuestion implements the ValuationService interface
func (m *MockValuationService) AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error {
	if m.AnswerQuestionFunc != nil {
		return m.AnswerQuestionFunc(ctx, valuationID, questionNumber, response)
	}
	return errors.New("AnswerQuestionFunc not implemented")
}
