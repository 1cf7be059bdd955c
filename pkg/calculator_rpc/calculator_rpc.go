// Package calculator_rpc описывает gRPC сервис калькулятора. Сообщения берутся из
// well-known типов protobuf, поэтому сгенерированный код не нужен.
package calculator_rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "calculator.CalculatorService"
	// Заголовок метаданных с JWT владельца сессии
	AuthorizationKey = "authorization"
)

type CalculatorServiceServer interface {
	Append(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Clear(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ToggleSign(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Evaluate(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	SetPrecision(context.Context, *wrapperspb.Int32Value) (*structpb.Struct, error)
	History(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ClearHistory(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	ExportHistory(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

var CalculatorService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Append", CalculatorServiceServer.Append),
		unary("Clear", CalculatorServiceServer.Clear),
		unary("ToggleSign", CalculatorServiceServer.ToggleSign),
		unary("Evaluate", CalculatorServiceServer.Evaluate),
		unary("SetPrecision", CalculatorServiceServer.SetPrecision),
		unary("History", CalculatorServiceServer.History),
		unary("ClearHistory", CalculatorServiceServer.ClearHistory),
		unary("ExportHistory", CalculatorServiceServer.ExportHistory),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator.proto",
}

func RegisterCalculatorServiceServer(s grpc.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&CalculatorService_ServiceDesc, srv)
}

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary строит обработчик метода так же, как это делает protoc-gen-go-grpc
func unary[Req any, Resp any](method string, call func(CalculatorServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CalculatorServiceServer)
			if interceptor == nil {
				resp, err := call(server, ctx, in)
				return resp, err
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(server, ctx, req.(*Req))
				return resp, err
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
