package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = "travelsplit.v1.SettlementService"

// Procedure paths, usable for routing and interceptors.
const (
	SettlementServiceListDebtMarksProcedure  = "/travelsplit.v1.SettlementService/ListDebtMarks"
	SettlementServiceToggleDebtMarkProcedure = "/travelsplit.v1.SettlementService/ToggleDebtMark"
)

// SettlementServiceHandler stores display-only debt marks.
type SettlementServiceHandler interface {
	ListDebtMarks(context.Context, *connect.Request[api.ListDebtMarksRequest]) (*connect.Response[api.ListDebtMarksResponse], error)
	ToggleDebtMark(context.Context, *connect.Request[api.ToggleDebtMarkRequest]) (*connect.Response[api.ToggleDebtMarkResponse], error)
}

// SettlementServiceClient is a typed client for the SettlementService.
type SettlementServiceClient interface {
	ListDebtMarks(context.Context, *connect.Request[api.ListDebtMarksRequest]) (*connect.Response[api.ListDebtMarksResponse], error)
	ToggleDebtMark(context.Context, *connect.Request[api.ToggleDebtMarkRequest]) (*connect.Response[api.ToggleDebtMarkResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for the service and returns the
// path to mount it on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceListDebtMarksProcedure, connect.NewUnaryHandler(SettlementServiceListDebtMarksProcedure, svc.ListDebtMarks, opt))
	mux.Handle(SettlementServiceToggleDebtMarkProcedure, connect.NewUnaryHandler(SettlementServiceToggleDebtMarkProcedure, svc.ToggleDebtMark, opt))
	return "/" + SettlementServiceName + "/", mux
}

type settlementServiceClient struct {
	listDebtMarks  *connect.Client[api.ListDebtMarksRequest, api.ListDebtMarksResponse]
	toggleDebtMark *connect.Client[api.ToggleDebtMarkRequest, api.ToggleDebtMarkResponse]
}

// NewSettlementServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &settlementServiceClient{
		listDebtMarks:  connect.NewClient[api.ListDebtMarksRequest, api.ListDebtMarksResponse](httpClient, baseURL+SettlementServiceListDebtMarksProcedure, opt),
		toggleDebtMark: connect.NewClient[api.ToggleDebtMarkRequest, api.ToggleDebtMarkResponse](httpClient, baseURL+SettlementServiceToggleDebtMarkProcedure, opt),
	}
}

func (c *settlementServiceClient) ListDebtMarks(ctx context.Context, req *connect.Request[api.ListDebtMarksRequest]) (*connect.Response[api.ListDebtMarksResponse], error) {
	return c.listDebtMarks.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ToggleDebtMark(ctx context.Context, req *connect.Request[api.ToggleDebtMarkRequest]) (*connect.Response[api.ToggleDebtMarkResponse], error) {
	return c.toggleDebtMark.CallUnary(ctx, req)
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) ListDebtMarks(context.Context, *connect.Request[api.ListDebtMarksRequest]) (*connect.Response[api.ListDebtMarksResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.SettlementService.ListDebtMarks is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ToggleDebtMark(context.Context, *connect.Request[api.ToggleDebtMarkRequest]) (*connect.Response[api.ToggleDebtMarkResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.SettlementService.ToggleDebtMark is not implemented"))
}
