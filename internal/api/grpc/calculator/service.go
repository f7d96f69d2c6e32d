package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName — полное имя gRPC-сервиса калькулятора.
const ServiceName = "calculator.v1.CalculatorService"

// CalculatorServiceServer — серверная сторона CalculatorService.
// Сообщения — google.protobuf.Struct: операции принимают {x, y}, History — пустой Struct.
type CalculatorServiceServer interface {
	Add(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Subtract(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Multiply(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Divide(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type methodFunc func(CalculatorServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler повторяет то, что protoc-gen-go-grpc генерирует для каждого unary-метода.
func unaryHandler(method string, call methodFunc) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CalculatorServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc — описание CalculatorService для grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: unaryHandler("Add", CalculatorServiceServer.Add)},
		{MethodName: "Subtract", Handler: unaryHandler("Subtract", CalculatorServiceServer.Subtract)},
		{MethodName: "Multiply", Handler: unaryHandler("Multiply", CalculatorServiceServer.Multiply)},
		{MethodName: "Divide", Handler: unaryHandler("Divide", CalculatorServiceServer.Divide)},
		{MethodName: "History", Handler: unaryHandler("History", CalculatorServiceServer.History)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator/v1/calculator.proto",
}

// RegisterCalculatorServiceServer регистрирует реализацию сервиса на сервере.
func RegisterCalculatorServiceServer(s grpc.ServiceRegistrar, srv CalculatorServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// CalculatorServiceClient — клиент CalculatorService.
type CalculatorServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCalculatorServiceClient создаёт клиента поверх соединения.
func NewCalculatorServiceClient(cc grpc.ClientConnInterface) *CalculatorServiceClient {
	return &CalculatorServiceClient{cc: cc}
}

func (c *CalculatorServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CalculatorServiceClient) Add(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Add", in, opts...)
}

func (c *CalculatorServiceClient) Subtract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Subtract", in, opts...)
}

func (c *CalculatorServiceClient) Multiply(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Multiply", in, opts...)
}

func (c *CalculatorServiceClient) Divide(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Divide", in, opts...)
}

func (c *CalculatorServiceClient) History(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "History", in, opts...)
}
