package grpc

import (
	"context"

	"github.com/godilite/valuation-server/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls ValuationServer over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, req Req, opts ...grpc.CallOption) (Resp, error) {
	var resp Resp

	in, err := EncodeStruct(req)
	if err != nil {
		return resp, err
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return resp, err
	}
	if err := DecodeStruct(out, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) CalculateValuation(ctx context.Context, req ValuationRequest, opts ...grpc.CallOption) (CalculationResponse, error) {
	return invoke[ValuationRequest, CalculationResponse](ctx, c.cc, MethodCalculateValuation, req, opts...)
}

func (c *Client) RecalculateValuation(ctx context.Context, req ValuationRequest, opts ...grpc.CallOption) (CalculationResponse, error) {
	return invoke[ValuationRequest, CalculationResponse](ctx, c.cc, MethodRecalculateValuation, req, opts...)
}

func (c *Client) SaveValuation(ctx context.Context, req SaveValuationRequest, opts ...grpc.CallOption) (SaveValuationResponse, error) {
	return invoke[SaveValuationRequest, SaveValuationResponse](ctx, c.cc, MethodSaveValuation, req, opts...)
}

func (c *Client) GetValuation(ctx context.Context, req ValuationRequest, opts ...grpc.CallOption) (service.ValuationRecord, error) {
	return invoke[ValuationRequest, service.ValuationRecord](ctx, c.cc, MethodGetValuation, req, opts...)
}

func (c *Client) GetDefaultWeights(ctx context.Context, req WeightsRequest, opts ...grpc.CallOption) (WeightsResponse, error) {
	return invoke[WeightsRequest, WeightsResponse](ctx, c.cc, MethodGetDefaultWeights, req, opts...)
}

func (c *Client) GetCalculationStatus(ctx context.Context, req ValuationRequest, opts ...grpc.CallOption) (StatusResponse, error) {
	return invoke[ValuationRequest, StatusResponse](ctx, c.cc, MethodGetCalculationStatus, req, opts...)
}

func (c *Client) CreateValuation(ctx context.Context, req CreateValuationRequest, opts ...grpc.CallOption) (CreateValuationResponse, error) {
	return invoke[CreateValuationRequest, CreateValuationResponse](ctx, c.cc, MethodCreateValuation, req, opts...)
}

func (c *Client) AnswerQuestion(ctx context.Context, req AnswerQuestionRequest, opts ...grpc.CallOption) (AnswerQuestionResponse, error) {
	return invoke[AnswerQuestionRequest, AnswerQuestionResponse](ctx, c.cc, MethodAnswerQuestion, req, opts...)
}
