package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

// TripServiceName is the fully-qualified name of the TripService.
const TripServiceName = "travelsplit.v1.TripService"

// Procedure paths, usable for routing and interceptors.
const (
	TripServiceCreateTripProcedure           = "/travelsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure              = "/travelsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure            = "/travelsplit.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure           = "/travelsplit.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure           = "/travelsplit.v1.TripService/DeleteTrip"
	TripServiceAddExpenseProcedure           = "/travelsplit.v1.TripService/AddExpense"
	TripServiceUpdateExpenseProcedure        = "/travelsplit.v1.TripService/UpdateExpense"
	TripServiceDeleteExpenseProcedure        = "/travelsplit.v1.TripService/DeleteExpense"
	TripServiceToggleExpenseSettledProcedure = "/travelsplit.v1.TripService/ToggleExpenseSettled"
	TripServiceExportTripsProcedure          = "/travelsplit.v1.TripService/ExportTrips"
	TripServiceImportTripsProcedure          = "/travelsplit.v1.TripService/ImportTrips"
)

// TripServiceHandler manages trips and their expenses.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ToggleExpenseSettled(context.Context, *connect.Request[api.ToggleExpenseSettledRequest]) (*connect.Response[api.ToggleExpenseSettledResponse], error)
	ExportTrips(context.Context, *connect.Request[api.ExportTripsRequest]) (*connect.Response[api.ExportTripsResponse], error)
	ImportTrips(context.Context, *connect.Request[api.ImportTripsRequest]) (*connect.Response[api.ImportTripsResponse], error)
}

// TripServiceClient is a typed client for the TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ToggleExpenseSettled(context.Context, *connect.Request[api.ToggleExpenseSettledRequest]) (*connect.Response[api.ToggleExpenseSettledResponse], error)
	ExportTrips(context.Context, *connect.Request[api.ExportTripsRequest]) (*connect.Response[api.ExportTripsResponse], error)
	ImportTrips(context.Context, *connect.Request[api.ImportTripsRequest]) (*connect.Response[api.ImportTripsResponse], error)
}

// NewTripServiceHandler builds an HTTP handler for the service and returns the
// path to mount it on.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opt))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opt))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opt))
	mux.Handle(TripServiceUpdateTripProcedure, connect.NewUnaryHandler(TripServiceUpdateTripProcedure, svc.UpdateTrip, opt))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opt))
	mux.Handle(TripServiceAddExpenseProcedure, connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opt))
	mux.Handle(TripServiceUpdateExpenseProcedure, connect.NewUnaryHandler(TripServiceUpdateExpenseProcedure, svc.UpdateExpense, opt))
	mux.Handle(TripServiceDeleteExpenseProcedure, connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opt))
	mux.Handle(TripServiceToggleExpenseSettledProcedure, connect.NewUnaryHandler(TripServiceToggleExpenseSettledProcedure, svc.ToggleExpenseSettled, opt))
	mux.Handle(TripServiceExportTripsProcedure, connect.NewUnaryHandler(TripServiceExportTripsProcedure, svc.ExportTrips, opt))
	mux.Handle(TripServiceImportTripsProcedure, connect.NewUnaryHandler(TripServiceImportTripsProcedure, svc.ImportTrips, opt))
	return "/" + TripServiceName + "/", mux
}

type tripServiceClient struct {
	createTrip           *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	getTrip              *connect.Client[api.GetTripRequest, api.GetTripResponse]
	listTrips            *connect.Client[api.ListTripsRequest, api.ListTripsResponse]
	updateTrip           *connect.Client[api.UpdateTripRequest, api.UpdateTripResponse]
	deleteTrip           *connect.Client[api.DeleteTripRequest, api.DeleteTripResponse]
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense        *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	toggleExpenseSettled *connect.Client[api.ToggleExpenseSettledRequest, api.ToggleExpenseSettledResponse]
	exportTrips          *connect.Client[api.ExportTripsRequest, api.ExportTripsResponse]
	importTrips          *connect.Client[api.ImportTripsRequest, api.ImportTripsResponse]
}

// NewTripServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &tripServiceClient{
		createTrip:           connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opt),
		getTrip:              connect.NewClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opt),
		listTrips:            connect.NewClient[api.ListTripsRequest, api.ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opt),
		updateTrip:           connect.NewClient[api.UpdateTripRequest, api.UpdateTripResponse](httpClient, baseURL+TripServiceUpdateTripProcedure, opt),
		deleteTrip:           connect.NewClient[api.DeleteTripRequest, api.DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opt),
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opt),
		updateExpense:        connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+TripServiceUpdateExpenseProcedure, opt),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opt),
		toggleExpenseSettled: connect.NewClient[api.ToggleExpenseSettledRequest, api.ToggleExpenseSettledResponse](httpClient, baseURL+TripServiceToggleExpenseSettledProcedure, opt),
		exportTrips:          connect.NewClient[api.ExportTripsRequest, api.ExportTripsResponse](httpClient, baseURL+TripServiceExportTripsProcedure, opt),
		importTrips:          connect.NewClient[api.ImportTripsRequest, api.ImportTripsResponse](httpClient, baseURL+TripServiceImportTripsProcedure, opt),
	}
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) ToggleExpenseSettled(ctx context.Context, req *connect.Request[api.ToggleExpenseSettledRequest]) (*connect.Response[api.ToggleExpenseSettledResponse], error) {
	return c.toggleExpenseSettled.CallUnary(ctx, req)
}

func (c *tripServiceClient) ExportTrips(ctx context.Context, req *connect.Request[api.ExportTripsRequest]) (*connect.Response[api.ExportTripsResponse], error) {
	return c.exportTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) ImportTrips(ctx context.Context, req *connect.Request[api.ImportTripsRequest]) (*connect.Response[api.ImportTripsResponse], error) {
	return c.importTrips.CallUnary(ctx, req)
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.CreateTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.GetTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.ListTrips is not implemented"))
}

func (UnimplementedTripServiceHandler) UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.UpdateTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) DeleteTrip(context.Context, *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.DeleteTrip is not implemented"))
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.AddExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.UpdateExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.DeleteExpense is not implemented"))
}

func (UnimplementedTripServiceHandler) ToggleExpenseSettled(context.Context, *connect.Request[api.ToggleExpenseSettledRequest]) (*connect.Response[api.ToggleExpenseSettledResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.ToggleExpenseSettled is not implemented"))
}

func (UnimplementedTripServiceHandler) ExportTrips(context.Context, *connect.Request[api.ExportTripsRequest]) (*connect.Response[api.ExportTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.ExportTrips is not implemented"))
}

func (UnimplementedTripServiceHandler) ImportTrips(context.Context, *connect.Request[api.ImportTripsRequest]) (*connect.Response[api.ImportTripsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.TripService.ImportTrips is not implemented"))
}
