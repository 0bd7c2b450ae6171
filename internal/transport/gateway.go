package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/grpclog"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type clientCall func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

type route struct {
	method  string
	pattern string
	rpc     string
	call    clientCall
}

func routes(client SettlementClient) []route {
	return []route{
		{http.MethodPost, "/v1/contributions", "Contribute", client.Contribute},
		{http.MethodPost, "/v1/finalize", "Finalize", client.Finalize},
		{http.MethodPost, "/v1/withdrawals", "WithdrawTokens", client.WithdrawTokens},
		{http.MethodPost, "/v1/issuer/withdrawals", "WithdrawTokensFor", client.WithdrawTokensFor},
		{http.MethodPost, "/v1/issuer/withdrawals/all", "WithdrawAll", client.WithdrawAll},
		{http.MethodPost, "/v1/refunds/load", "LoadRefund", client.LoadRefund},
		{http.MethodPost, "/v1/refunds/claim", "ClaimRefund", client.ClaimRefund},
		{http.MethodPost, "/v1/issuer/refunds", "ClaimRefundFor", client.ClaimRefundFor},
		{http.MethodPost, "/v1/clawbacks", "Clawback", client.Clawback},
		{http.MethodGet, "/v1/status", "Status", client.Status},
		{http.MethodGet, "/v1/participants/{participant}", "Participant", client.Participant},
		{http.MethodGet, "/v1/participants/{participant}/events", "History", client.History},
	}
}

// RegisterSettlementHandlerClient registers the REST routes of
// SettlementService on mux. Every request is forwarded through client.
func RegisterSettlementHandlerClient(mux *runtime.ServeMux, client SettlementClient) error {
	for _, rt := range routes(client) {
		if err := mux.HandlePath(rt.method, rt.pattern, forward(mux, rt)); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return nil
}

// RegisterSettlementHandlerFromEndpoint dials endpoint and registers the REST
// routes on mux. The connection is closed once ctx is done.
func RegisterSettlementHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption) error {
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return fmt.Errorf("dial %s: %w", endpoint, err)
	}
	go func() {
		<-ctx.Done()
		if cerr := conn.Close(); cerr != nil {
			grpclog.Errorf("Failed to close conn to %s: %v", endpoint, cerr)
		}
	}()
	return RegisterSettlementHandlerClient(mux, NewSettlementClient(conn))
}

func forward(mux *runtime.ServeMux, rt route) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		inbound, outbound := runtime.MarshalerForRequest(mux, r)

		annotated, err := runtime.AnnotateContext(ctx, mux, r, fullMethod(rt.rpc), runtime.WithHTTPPathPattern(rt.pattern))
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}

		req := &structpb.Struct{Fields: map[string]*structpb.Value{}}
		if r.Method != http.MethodGet {
			if err = inbound.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
				runtime.HTTPError(annotated, mux, outbound, w, r, status.Errorf(codes.InvalidArgument, "decode body: %v", err))
				return
			}
			if req.Fields == nil {
				req.Fields = map[string]*structpb.Value{}
			}
		}
		for name, value := range pathParams {
			req.Fields[name] = structpb.NewStringValue(value)
		}

		var md runtime.ServerMetadata
		resp, err := rt.call(annotated, req, grpc.Header(&md.HeaderMD), grpc.Trailer(&md.TrailerMD))
		annotated = runtime.NewServerMetadataContext(annotated, md)
		if err != nil {
			runtime.HTTPError(annotated, mux, outbound, w, r, err)
			return
		}
		runtime.ForwardResponseMessage(annotated, mux, outbound, w, r, resp)
	}
}
