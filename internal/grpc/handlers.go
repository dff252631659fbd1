package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/valuation-server/internal/service"
	"github.com/godilite/valuation-server/internal/valuation"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const cacheKeyValuation CacheKeyType = "grpc:valuation"

type ValuationHandlers struct {
	valuations ValuationService
	cache      Cacher
	logger     *zap.Logger
	sfGroup    singleflight.Group
	cacheTTL   time.Duration
	timeout    time.Duration
}

var _ ValuationServer = (*ValuationHandlers)(nil)

// NewValuationHandlers initializes the gRPC handlers. timeout bounds each
// request, including the calculation itself.
func NewValuationHandlers(valuations ValuationService, cache Cacher, logger *zap.Logger, ttl, timeout time.Duration) *ValuationHandlers {
	if valuations == nil {
		panic("nil ValuationService provided to NewValuationHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	if timeout <= 0 {
		timeout = defaultGRPCTimeout
	}
	return &ValuationHandlers{
		valuations: valuations,
		cache:      cache,
		logger:     logger.Named("grpc-handler"),
		cacheTTL:   ttl,
		timeout:    timeout,
	}
}

func valuationKey(valuationID string) string {
	return fmt.Sprintf("%s:%s", cacheKeyValuation, valuationID)
}

func decodeRequest(in *structpb.Struct, dest any) error {
	if err := DecodeStruct(in, dest); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

func requireValuationID(id string) error {
	if id == "" {
		return status.Error(codes.InvalidArgument, "valuation_id is required")
	}
	return nil
}

func (h *ValuationHandlers) respond(op string, v any) (*structpb.Struct, error) {
	out, err := EncodeStruct(v)
	if err != nil {
		h.logger.Error("failed to encode response", zap.String("op", op), zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return out, nil
}

func (h *ValuationHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrValuationNotFound):
		h.logger.Info("valuation not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, "valuation not found")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	case errors.Is(err, service.ErrPersistFailure):
		h.logger.Error("persist failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "failed to persist valuation")
	case errors.Is(err, service.ErrCalculationFailed):
		h.logger.Error("calculation failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "valuation calculation failed")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// refreshCache writes the freshly persisted record through to the cache. If
// the record cannot be read back the entry is dropped instead.
func (h *ValuationHandlers) refreshCache(ctx context.Context, valuationID string) {
	if h.cache == nil {
		return
	}
	key := valuationKey(valuationID)

	rec, err := h.valuations.GetValuation(ctx, valuationID)
	if err != nil {
		h.logger.Warn("failed to read back persisted valuation", zap.String("valuation_id", valuationID), zap.Error(err))
		delCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
		defer cancel()
		if err := h.cache.Delete(delCtx, key); err != nil {
			h.logger.Warn("failed to drop cache entry", zap.String("key", key), zap.Error(err))
		}
		return
	}
	WriteThrough(h.cache, key, rec, h.cacheTTL, h.logger)
}

// CalculateValuation computes a valuation without persisting it.
func (h *ValuationHandlers) CalculateValuation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "CalculateValuation"

	var req ValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, err := h.valuations.Calculate(ctx, req.ValuationID, req.CompanyID)
	resp := CalculationResponse{ValuationID: req.ValuationID, Result: result}
	if err != nil {
		if !errors.Is(err, service.ErrCalculationFailed) {
			return nil, h.handleError(ctx, op, err)
		}
		resp.Error = err.Error()
	}

	return h.respond(op, resp)
}

// RecalculateValuation computes and persists a valuation. A fallback result or
// a failed write is still returned with Persisted=false and Error set.
func (h *ValuationHandlers) RecalculateValuation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "RecalculateValuation"

	var req ValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, err := h.valuations.Recalculate(ctx, req.ValuationID, req.CompanyID)
	resp := CalculationResponse{ValuationID: req.ValuationID, Result: result}
	switch {
	case err == nil:
		resp.Persisted = true
		h.refreshCache(ctx, req.ValuationID)
	case errors.Is(err, service.ErrCalculationFailed), errors.Is(err, service.ErrPersistFailure):
		resp.Error = err.Error()
	default:
		return nil, h.handleError(ctx, op, err)
	}

	return h.respond(op, resp)
}

// SaveValuation persists a result the caller already holds.
func (h *ValuationHandlers) SaveValuation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "SaveValuation"

	var req SaveValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.valuations.SaveResult(ctx, req.ValuationID, req.Result); err != nil {
		return nil, h.handleError(ctx, op, err)
	}
	h.refreshCache(ctx, req.ValuationID)

	return h.respond(op, SaveValuationResponse{ValuationID: req.ValuationID, Persisted: true})
}

func (h *ValuationHandlers) GetValuation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "GetValuation"

	var req ValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	rec, err := FindAndCache(ctx, h.cache, &h.sfGroup, valuationKey(req.ValuationID), h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.ValuationRecord, error) {
		return h.valuations.GetValuation(fetchCtx, req.ValuationID)
	})
	if err != nil {
		return nil, h.handleError(ctx, op, err)
	}

	return h.respond(op, rec)
}

func (h *ValuationHandlers) GetDefaultWeights(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req WeightsRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	return h.respond("GetDefaultWeights", WeightsResponse{
		Stage:   valuation.ResolveStage(req.Stage),
		Weights: valuation.DefaultWeights(req.Stage),
	})
}

func (h *ValuationHandlers) GetCalculationStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}

	return h.respond("GetCalculationStatus", StatusResponse{
		ValuationID: req.ValuationID,
		Status:      h.valuations.Status(req.ValuationID),
	})
}

func (h *ValuationHandlers) CreateValuation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "CreateValuation"

	var req CreateValuationRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.CompanyID == "" {
		return nil, status.Error(codes.InvalidArgument, "company_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	id, err := h.valuations.CreateValuation(ctx, req.CompanyID, req.CompanyName, req.Stage)
	if err != nil {
		return nil, h.handleError(ctx, op, err)
	}

	return h.respond(op, CreateValuationResponse{ValuationID: id})
}

func (h *ValuationHandlers) AnswerQuestion(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	const op = "AnswerQuestion"

	var req AnswerQuestionRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := requireValuationID(req.ValuationID); err != nil {
		return nil, err
	}
	if req.QuestionNumber == "" {
		return nil, status.Error(codes.InvalidArgument, "question_number is required")
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.valuations.AnswerQuestion(ctx, req.ValuationID, req.QuestionNumber, req.Response); err != nil {
		return nil, h.handleError(ctx, op, err)
	}

	return h.respond(op, AnswerQuestionResponse{
		ValuationID:    req.ValuationID,
		QuestionNumber: req.QuestionNumber,
		Answered:       true,
	})
}
