package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = "travelsplit.v1.BalanceService"

// Procedure paths, usable for routing and interceptors.
const (
	BalanceServiceGetTripBalancesProcedure       = "/travelsplit.v1.BalanceService/GetTripBalances"
	BalanceServiceGetParticipantSummaryProcedure = "/travelsplit.v1.BalanceService/GetParticipantSummary"
)

// BalanceServiceHandler computes balances and debts for a trip.
type BalanceServiceHandler interface {
	GetTripBalances(context.Context, *connect.Request[api.GetTripBalancesRequest]) (*connect.Response[api.GetTripBalancesResponse], error)
	GetParticipantSummary(context.Context, *connect.Request[api.GetParticipantSummaryRequest]) (*connect.Response[api.GetParticipantSummaryResponse], error)
}

// BalanceServiceClient is a typed client for the BalanceService.
type BalanceServiceClient interface {
	GetTripBalances(context.Context, *connect.Request[api.GetTripBalancesRequest]) (*connect.Response[api.GetTripBalancesResponse], error)
	GetParticipantSummary(context.Context, *connect.Request[api.GetParticipantSummaryRequest]) (*connect.Response[api.GetParticipantSummaryResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler for the service and returns the
// path to mount it on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BalanceServiceGetTripBalancesProcedure, connect.NewUnaryHandler(BalanceServiceGetTripBalancesProcedure, svc.GetTripBalances, opt))
	mux.Handle(BalanceServiceGetParticipantSummaryProcedure, connect.NewUnaryHandler(BalanceServiceGetParticipantSummaryProcedure, svc.GetParticipantSummary, opt))
	return "/" + BalanceServiceName + "/", mux
}

type balanceServiceClient struct {
	getTripBalances       *connect.Client[api.GetTripBalancesRequest, api.GetTripBalancesResponse]
	getParticipantSummary *connect.Client[api.GetParticipantSummaryRequest, api.GetParticipantSummaryResponse]
}

// NewBalanceServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &balanceServiceClient{
		getTripBalances:       connect.NewClient[api.GetTripBalancesRequest, api.GetTripBalancesResponse](httpClient, baseURL+BalanceServiceGetTripBalancesProcedure, opt),
		getParticipantSummary: connect.NewClient[api.GetParticipantSummaryRequest, api.GetParticipantSummaryResponse](httpClient, baseURL+BalanceServiceGetParticipantSummaryProcedure, opt),
	}
}

func (c *balanceServiceClient) GetTripBalances(ctx context.Context, req *connect.Request[api.GetTripBalancesRequest]) (*connect.Response[api.GetTripBalancesResponse], error) {
	return c.getTripBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetParticipantSummary(ctx context.Context, req *connect.Request[api.GetParticipantSummaryRequest]) (*connect.Response[api.GetParticipantSummaryResponse], error) {
	return c.getParticipantSummary.CallUnary(ctx, req)
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetTripBalances(context.Context, *connect.Request[api.GetTripBalancesRequest]) (*connect.Response[api.GetTripBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.BalanceService.GetTripBalances is not implemented"))
}

func (UnimplementedBalanceServiceHandler) GetParticipantSummary(context.Context, *connect.Request[api.GetParticipantSummaryRequest]) (*connect.Response[api.GetParticipantSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.BalanceService.GetParticipantSummary is not implemented"))
}
