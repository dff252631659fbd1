package grpc

import (
	"encoding/json"
	"fmt"

	"github.com/godilite/valuation-server/internal/service"
	"github.com/godilite/valuation-server/internal/valuation"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type ValuationRequest struct {
	ValuationID string `json:"valuation_id"`
	CompanyID   string `json:"company_id,omitempty"`
}

type SaveValuationRequest struct {
	ValuationID string           `json:"valuation_id"`
	Result      valuation.Result `json:"result"`
}

type WeightsRequest struct {
	Stage string `json:"stage"`
}

type CreateValuationRequest struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	Stage       string `json:"stage,omitempty"`
}

type AnswerQuestionRequest struct {
	ValuationID    string `json:"valuation_id"`
	QuestionNumber string `json:"question_number"`
	Response       string `json:"response"`
}

// CalculationResponse carries a computed or fallback result. Recoverable
// failures are reported in Error with an OK status so the caller still has a
// value to display.
type CalculationResponse struct {
	ValuationID string           `json:"valuation_id"`
	Result      valuation.Result `json:"result"`
	Persisted   bool             `json:"persisted"`
	Error       string           `json:"error,omitempty"`
}

type SaveValuationResponse struct {
	ValuationID string `json:"valuation_id"`
	Persisted   bool   `json:"persisted"`
}

type WeightsResponse struct {
	Stage   valuation.StageCategory `json:"stage"`
	Weights valuation.Weights       `json:"weights"`
}

type StatusResponse struct {
	ValuationID string                    `json:"valuation_id"`
	Status      service.CalculationStatus `json:"status"`
}

type CreateValuationResponse struct {
	ValuationID string `json:"valuation_id"`
}

type AnswerQuestionResponse struct {
	ValuationID    string `json:"valuation_id"`
	QuestionNumber string `json:"question_number"`
	Answered       bool   `json:"answered"`
}

// EncodeStruct converts v to a Struct through its JSON form.
func EncodeStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("convert %T to struct: %w", v, err)
	}
	return out, nil
}

// DecodeStruct fills dest from the JSON form of s. A nil Struct leaves dest
// unchanged.
func DecodeStruct(s *structpb.Struct, dest any) error {
	if s == nil {
		return nil
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("convert struct: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %T: %w", dest, err)
	}
	return nil
}
