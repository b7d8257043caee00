package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

// ProfileServiceName is the fully-qualified name of the ProfileService.
const ProfileServiceName = "travelsplit.v1.ProfileService"

// Procedure paths, usable for routing and interceptors.
const (
	ProfileServiceGetProfileProcedure   = "/travelsplit.v1.ProfileService/GetProfile"
	ProfileServiceSetUserNameProcedure  = "/travelsplit.v1.ProfileService/SetUserName"
	ProfileServiceSelectTripProcedure   = "/travelsplit.v1.ProfileService/SelectTrip"
	ProfileServiceClearAllDataProcedure = "/travelsplit.v1.ProfileService/ClearAllData"
)

// ProfileServiceHandler manages the local user's profile.
type ProfileServiceHandler interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	SetUserName(context.Context, *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error)
	SelectTrip(context.Context, *connect.Request[api.SelectTripRequest]) (*connect.Response[api.SelectTripResponse], error)
	ClearAllData(context.Context, *connect.Request[api.ClearAllDataRequest]) (*connect.Response[api.ClearAllDataResponse], error)
}

// ProfileServiceClient is a typed client for the ProfileService.
type ProfileServiceClient interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	SetUserName(context.Context, *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error)
	SelectTrip(context.Context, *connect.Request[api.SelectTripRequest]) (*connect.Response[api.SelectTripResponse], error)
	ClearAllData(context.Context, *connect.Request[api.ClearAllDataRequest]) (*connect.Response[api.ClearAllDataResponse], error)
}

// NewProfileServiceHandler builds an HTTP handler for the service and returns the
// path to mount it on.
func NewProfileServiceHandler(svc ProfileServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ProfileServiceGetProfileProcedure, connect.NewUnaryHandler(ProfileServiceGetProfileProcedure, svc.GetProfile, opt))
	mux.Handle(ProfileServiceSetUserNameProcedure, connect.NewUnaryHandler(ProfileServiceSetUserNameProcedure, svc.SetUserName, opt))
	mux.Handle(ProfileServiceSelectTripProcedure, connect.NewUnaryHandler(ProfileServiceSelectTripProcedure, svc.SelectTrip, opt))
	mux.Handle(ProfileServiceClearAllDataProcedure, connect.NewUnaryHandler(ProfileServiceClearAllDataProcedure, svc.ClearAllData, opt))
	return "/" + ProfileServiceName + "/", mux
}

type profileServiceClient struct {
	getProfile   *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	setUserName  *connect.Client[api.SetUserNameRequest, api.SetUserNameResponse]
	selectTrip   *connect.Client[api.SelectTripRequest, api.SelectTripResponse]
	clearAllData *connect.Client[api.ClearAllDataRequest, api.ClearAllDataResponse]
}

// NewProfileServiceClient returns a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewProfileServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProfileServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &profileServiceClient{
		getProfile:   connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+ProfileServiceGetProfileProcedure, opt),
		setUserName:  connect.NewClient[api.SetUserNameRequest, api.SetUserNameResponse](httpClient, baseURL+ProfileServiceSetUserNameProcedure, opt),
		selectTrip:   connect.NewClient[api.SelectTripRequest, api.SelectTripResponse](httpClient, baseURL+ProfileServiceSelectTripProcedure, opt),
		clearAllData: connect.NewClient[api.ClearAllDataRequest, api.ClearAllDataResponse](httpClient, baseURL+ProfileServiceClearAllDataProcedure, opt),
	}
}

func (c *profileServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *profileServiceClient) SetUserName(ctx context.Context, req *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error) {
	return c.setUserName.CallUnary(ctx, req)
}

func (c *profileServiceClient) SelectTrip(ctx context.Context, req *connect.Request[api.SelectTripRequest]) (*connect.Response[api.SelectTripResponse], error) {
	return c.selectTrip.CallUnary(ctx, req)
}

func (c *profileServiceClient) ClearAllData(ctx context.Context, req *connect.Request[api.ClearAllDataRequest]) (*connect.Response[api.ClearAllDataResponse], error) {
	return c.clearAllData.CallUnary(ctx, req)
}

// UnimplementedProfileServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedProfileServiceHandler struct{}

func (UnimplementedProfileServiceHandler) GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.ProfileService.GetProfile is not implemented"))
}

func (UnimplementedProfileServiceHandler) SetUserName(context.Context, *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.ProfileService.SetUserName is not implemented"))
}

func (UnimplementedProfileServiceHandler) SelectTrip(context.Context, *connect.Request[api.SelectTripRequest]) (*connect.Response[api.SelectTripResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.ProfileService.SelectTrip is not implemented"))
}

func (UnimplementedProfileServiceHandler) ClearAllData(context.Context, *connect.Request[api.ClearAllDataRequest]) (*connect.Response[api.ClearAllDataResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("travelsplit.v1.ProfileService.ClearAllData is not implemented"))
}
