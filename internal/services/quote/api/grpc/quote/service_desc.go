package quote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "quote.v1.QuoteService"

const (
	methodCalculate     = "/" + ServiceName + "/Calculate"
	methodApplyEdits    = "/" + ServiceName + "/ApplyEdits"
	methodSaveQuote     = "/" + ServiceName + "/SaveQuote"
	methodGetQuote      = "/" + ServiceName + "/GetQuote"
	methodListRevisions = "/" + ServiceName + "/ListRevisions"
)

// QuoteServiceServer is the server API for quote.v1.QuoteService. Messages
// travel as google.protobuf.Struct holding the JSON form of the request and
// response types in this package.
type QuoteServiceServer interface {
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyEdits(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRevisions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterQuoteServiceServer registers srv on s.
func RegisterQuoteServiceServer(s grpc.ServiceRegistrar, srv QuoteServiceServer) {
	s.RegisterService(&QuoteService_ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(QuoteServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(QuoteServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(QuoteServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// QuoteService_ServiceDesc is the grpc.ServiceDesc for quote.v1.QuoteService.
var QuoteService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QuoteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Calculate", Handler: unaryHandler(methodCalculate, QuoteServiceServer.Calculate)},
		{MethodName: "ApplyEdits", Handler: unaryHandler(methodApplyEdits, QuoteServiceServer.ApplyEdits)},
		{MethodName: "SaveQuote", Handler: unaryHandler(methodSaveQuote, QuoteServiceServer.SaveQuote)},
		{MethodName: "GetQuote", Handler: unaryHandler(methodGetQuote, QuoteServiceServer.GetQuote)},
		{MethodName: "ListRevisions", Handler: unaryHandler(methodListRevisions, QuoteServiceServer.ListRevisions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quote/v1/quote.proto",
}
