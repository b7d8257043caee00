package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

// Ensure ProfileService implements the handler interface
var _ apiconnect.ProfileServiceHandler = (*ProfileService)(nil)

// ProfileService implements the Connect ProfileService
type ProfileService struct {
	store storage.Store
	marks storage.MarkStore
}

// NewProfileService creates a ProfileService.
func NewProfileService(store storage.Store, marks storage.MarkStore) *ProfileService {
	return &ProfileService{store: store, marks: marks}
}

func (s *ProfileService) profile(ctx context.Context, op string) (*api.Profile, error) {
	p, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}
	return toAPIProfile(p), nil
}

// GetProfile returns the user name and the selected trip.
func (s *ProfileService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	p, err := s.profile(ctx, "GetProfile")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetProfileResponse{Profile: p}), nil
}

// SetUserName renames the user, including the organizer in every trip.
func (s *ProfileService) SetUserName(ctx context.Context, req *connect.Request[api.SetUserNameRequest]) (*connect.Response[api.SetUserNameResponse], error) {
	slog.Info("SetUserName request received", "user_name", req.Msg.UserName)

	msg := api.SetUserNameRequest{UserName: strings.TrimSpace(req.Msg.UserName)}
	if err := validateRequest(&msg); err != nil {
		return nil, err
	}

	if err := s.store.SetUserName(ctx, msg.UserName); err != nil {
		return nil, storeError("SetUserName", err)
	}

	p, err := s.profile(ctx, "SetUserName")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SetUserNameResponse{Profile: p}), nil
}

// SelectTrip remembers the trip the client has open. An empty ID clears it.
func (s *ProfileService) SelectTrip(ctx context.Context, req *connect.Request[api.SelectTripRequest]) (*connect.Response[api.SelectTripResponse], error) {
	slog.Info("SelectTrip request received", "trip_id", req.Msg.TripID)

	if req.Msg.TripID != "" {
		if _, err := s.store.GetTrip(ctx, req.Msg.TripID); err != nil {
			return nil, storeError("SelectTrip", err, "trip_id", req.Msg.TripID)
		}
	}

	if err := s.store.SelectTrip(ctx, req.Msg.TripID); err != nil {
		return nil, storeError("SelectTrip", err, "trip_id", req.Msg.TripID)
	}

	p, err := s.profile(ctx, "SelectTrip")
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SelectTripResponse{Profile: p}), nil
}

// ClearAllData deletes every trip, debt mark and profile setting.
func (s *ProfileService) ClearAllData(ctx context.Context, req *connect.Request[api.ClearAllDataRequest]) (*connect.Response[api.ClearAllDataResponse], error) {
	slog.Warn("ClearAllData request received")

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, storeError("ClearAllData", err)
	}
	for _, t := range trips {
		if err := s.marks.DeleteTripMarks(ctx, t.ID); err != nil {
			return nil, storeError("ClearAllData", err, "trip_id", t.ID)
		}
	}

	if err := s.store.ClearAll(ctx); err != nil {
		return nil, storeError("ClearAllData", err)
	}

	slog.Info("All data cleared", "trips_deleted", len(trips))

	return connect.NewResponse(&api.ClearAllDataResponse{TripsDeleted: len(trips)}), nil
}
