package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "valuation.v1.ValuationService"

const (
	MethodCalculateValuation   = "CalculateValuation"
	MethodRecalculateValuation = "RecalculateValuation"
	MethodSaveValuation        = "SaveValuation"
	MethodGetValuation         = "GetValuation"
	MethodGetDefaultWeights    = "GetDefaultWeights"
	MethodGetCalculationStatus = "GetCalculationStatus"
	MethodCreateValuation      = "CreateValuation"
	MethodAnswerQuestion       = "AnswerQuestion"
)

// ValuationServer is the server API of ServiceName. Requests and responses
// are google.protobuf.Struct messages carrying the JSON form of the types in
// messages.go.
type ValuationServer interface {
	CalculateValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecalculateValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDefaultWeights(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCalculationStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AnswerQuestion(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ValuationServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ValuationServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(name),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ValuationServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FullMethod returns the "/service/method" path of a method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// ServiceDesc describes ValuationServer for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ValuationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodCalculateValuation, Handler: unaryHandler(MethodCalculateValuation, ValuationServer.CalculateValuation)},
		{MethodName: MethodRecalculateValuation, Handler: unaryHandler(MethodRecalculateValuation, ValuationServer.RecalculateValuation)},
		{MethodName: MethodSaveValuation, Handler: unaryHandler(MethodSaveValuation, ValuationServer.SaveValuation)},
		{MethodName: MethodGetValuation, Handler: unaryHandler(MethodGetValuation, ValuationServer.GetValuation)},
		{MethodName: MethodGetDefaultWeights, Handler: unaryHandler(MethodGetDefaultWeights, ValuationServer.GetDefaultWeights)},
		{MethodName: MethodGetCalculationStatus, Handler: unaryHandler(MethodGetCalculationStatus, ValuationServer.GetCalculationStatus)},
		{MethodName: MethodCreateValuation, Handler: unaryHandler(MethodCreateValuation, ValuationServer.CreateValuation)},
		{MethodName: MethodAnswerQuestion, Handler: unaryHandler(MethodAnswerQuestion, ValuationServer.AnswerQuestion)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "valuation/v1/valuation.proto",
}

// RegisterValuationServer registers srv on the gRPC server.
func RegisterValuationServer(s grpc.ServiceRegistrar, srv ValuationServer) {
	s.RegisterService(&ServiceDesc, srv)
}
