// Package transport exposes the settlement engine over gRPC and REST.
package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "saleledger.v1.SettlementService"

// SettlementServer is the server API of SettlementService. Requests and
// responses are JSON-shaped structs; amounts travel as decimal strings.
type SettlementServer interface {
	Contribute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Finalize(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WithdrawTokens(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WithdrawTokensFor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WithdrawAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoadRefund(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClaimRefund(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClaimRefundFor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Clawback(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Status(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Participant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	History(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(SettlementServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// SettlementServiceDesc describes SettlementService for grpc.Server.
var SettlementServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SettlementServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Contribute", SettlementServer.Contribute),
		method("Finalize", SettlementServer.Finalize),
		method("WithdrawTokens", SettlementServer.WithdrawTokens),
		method("WithdrawTokensFor", SettlementServer.WithdrawTokensFor),
		method("WithdrawAll", SettlementServer.WithdrawAll),
		method("LoadRefund", SettlementServer.LoadRefund),
		method("ClaimRefund", SettlementServer.ClaimRefund),
		method("ClaimRefundFor", SettlementServer.ClaimRefundFor),
		method("Clawback", SettlementServer.Clawback),
		method("Status", SettlementServer.Status),
		method("Participant", SettlementServer.Participant),
		method("History", SettlementServer.History),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "saleledger/v1/settlement.proto",
}

// RegisterSettlementServer registers srv on s.
func RegisterSettlementServer(s grpc.ServiceRegistrar, srv SettlementServer) {
	s.RegisterService(&SettlementServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func method(name string, call unaryMethod) grpc.MethodDesc {
	full := fullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SettlementServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SettlementServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
