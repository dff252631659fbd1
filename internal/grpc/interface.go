package grpc

import (
	"context"
	"time"

	"github.com/godilite/valuation-server/internal/service"
	"github.com/godilite/valuation-server/internal/valuation"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type ValuationService interface {
	Calculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error)
	Recalculate(ctx context.Context, valuationID, companyID string) (valuation.Result, error)
	SaveResult(ctx context.Context, valuationID string, result valuation.Result) error
	GetValuation(ctx context.Context, valuationID string) (service.ValuationRecord, error)
	Status(valuationID string) service.CalculationStatus
	CreateValuation(ctx context.Context, companyID, companyName, stage string) (string, error)
	AnswerQuestion(ctx context.Context, valuationID, questionNumber, response string) error
}
