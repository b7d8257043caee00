package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/snapshot"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

var errOrganizerRemoved = errors.New("the organizer cannot be removed from a trip")

// Ensure TripService implements the handler interface
var _ apiconnect.TripServiceHandler = (*TripService)(nil)

// TripService implements the Connect TripService
type TripService struct {
	store storage.Store
	marks storage.MarkStore
	now   func() time.Time
}

// NewTripService creates a new TripService. Debt marks of deleted trips are
// removed from marks, which may be the store itself.
func NewTripService(store storage.Store, marks storage.MarkStore) *TripService {
	return &TripService{store: store, marks: marks, now: time.Now}
}

// CreateTrip creates a trip. The organizer is added as the first friend
// unless the request already lists them.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"friends_count", len(req.Msg.Friends),
	)

	msg := *req.Msg
	msg.Name = strings.TrimSpace(msg.Name)
	friends := fromAPIFriends(msg.Friends)
	msg.Friends = toAPIFriends(friends)
	if err := validateRequest(&msg); err != nil {
		return nil, err
	}

	hasOrganizer := false
	for _, f := range friends {
		if f.ID == models.OrganizerID {
			hasOrganizer = true
			break
		}
	}
	if !hasOrganizer {
		profile, err := s.store.GetProfile(ctx)
		if err != nil {
			return nil, storeError("CreateTrip", err)
		}
		organizer := models.Friend{ID: models.OrganizerID, Name: profile.UserName}
		friends = append([]models.Friend{organizer}, friends...)
	}

	trip := &models.Trip{Name: msg.Name, Friends: friends}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, storeError("CreateTrip", err, "name", msg.Name)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "friends_count", len(trip.Friends))

	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip retrieves a trip with its friends and expenses.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("GetTrip", err, "trip_id", req.Msg.TripID)
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips returns trip summaries, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	summaries, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, storeError("ListTrips", err)
	}

	trips := make([]api.TripSummary, len(summaries))
	for i, t := range summaries {
		trips[i] = api.TripSummary{
			ID:           t.ID,
			Name:         t.Name,
			FriendCount:  t.FriendCount,
			ExpenseCount: t.ExpenseCount,
			TotalSpent:   t.TotalSpent,
			CreatedAt:    t.CreatedAt,
		}
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{Trips: trips}), nil
}

// UpdateTrip renames a trip and replaces its friend list.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received",
		"trip_id", req.Msg.TripID,
		"friends_count", len(req.Msg.Friends),
	)

	msg := *req.Msg
	msg.Name = strings.TrimSpace(msg.Name)
	friends := fromAPIFriends(msg.Friends)
	msg.Friends = toAPIFriends(friends)
	if err := validateRequest(&msg); err != nil {
		return nil, err
	}

	existing, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		return nil, storeError("UpdateTrip", err, "trip_id", msg.TripID)
	}

	trip := &models.Trip{ID: msg.TripID, Name: msg.Name, Friends: friends}
	if existing.HasFriend(models.OrganizerID) && !trip.HasFriend(models.OrganizerID) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errOrganizerRemoved)
	}

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, storeError("UpdateTrip", err, "trip_id", msg.TripID)
	}

	updated, err := s.store.GetTrip(ctx, msg.TripID)
	if err != nil {
		return nil, storeError("UpdateTrip", err, "trip_id", msg.TripID)
	}

	slog.Info("Trip updated", "trip_id", updated.ID, "friends_count", len(updated.Friends))

	return connect.NewResponse(&api.UpdateTripResponse{Trip: toAPITrip(updated)}), nil
}

// DeleteTrip removes a trip, its expenses and its debt marks.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		return nil, storeError("DeleteTrip", err, "trip_id", req.Msg.TripID)
	}
	s.dropMarks(ctx, req.Msg.TripID)

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)

	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// dropMarks removes the debt marks of a trip that no longer exists.
// Failures are logged only.
func (s *TripService) dropMarks(ctx context.Context, tripID string) {
	if err := s.marks.DeleteTripMarks(ctx, tripID); err != nil {
		slog.Warn("Failed to delete debt marks", "trip_id", tripID, "error", err)
	}
}

// AddExpense records a new, unsettled expense.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripID,
		"amount", req.Msg.Expense.Amount,
		"paid_by", req.Msg.Expense.PaidByFriendID,
		"participants", len(req.Msg.Expense.SplitWithFriendIDs),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	expense := fromExpenseInput(req.Msg.TripID, req.Msg.Expense)
	if err := s.store.AddExpense(ctx, expense); err != nil {
		return nil, storeError("AddExpense", err, "trip_id", req.Msg.TripID)
	}

	slog.Info("Expense added", "trip_id", expense.TripID, "expense_id", expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense edits an expense. Its settled flag is left untouched.
func (s *TripService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received",
		"trip_id", req.Msg.TripID,
		"expense_id", req.Msg.ExpenseID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	expense := fromExpenseInput(req.Msg.TripID, req.Msg.Expense)
	expense.ID = req.Msg.ExpenseID
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, storeError("UpdateExpense", err, "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received",
		"trip_id", req.Msg.TripID,
		"expense_id", req.Msg.ExpenseID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.TripID, req.Msg.ExpenseID); err != nil {
		return nil, storeError("DeleteExpense", err, "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ToggleExpenseSettled flips an expense between open and settled.
func (s *TripService) ToggleExpenseSettled(ctx context.Context, req *connect.Request[api.ToggleExpenseSettledRequest]) (*connect.Response[api.ToggleExpenseSettledResponse], error) {
	slog.Info("ToggleExpenseSettled request received",
		"trip_id", req.Msg.TripID,
		"expense_id", req.Msg.ExpenseID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	expense, err := s.store.ToggleExpenseSettled(ctx, req.Msg.TripID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError("ToggleExpenseSettled", err, "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)
	}

	slog.Info("Expense settlement toggled", "expense_id", expense.ID, "settled", expense.Settled)

	return connect.NewResponse(&api.ToggleExpenseSettledResponse{Expense: toAPIExpense(expense)}), nil
}

// ExportTrips returns every trip as a versioned snapshot document.
func (s *TripService) ExportTrips(ctx context.Context, req *connect.Request[api.ExportTripsRequest]) (*connect.Response[api.ExportTripsResponse], error) {
	slog.Info("ExportTrips request received")

	trips, err := s.store.ExportTrips(ctx)
	if err != nil {
		return nil, storeError("ExportTrips", err)
	}
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, storeError("ExportTrips", err)
	}

	data, err := snapshot.Encode(trips, profile.UserName, s.now())
	if err != nil {
		slog.Error("ExportTrips failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ExportTrips successful", "trips", len(trips), "bytes", len(data))

	return connect.NewResponse(&api.ExportTripsResponse{
		Snapshot:  data,
		TripCount: len(trips),
	}), nil
}

// ImportTrips replaces all trips with the ones in a snapshot. Records that
// cannot be repaired are dropped and listed in the response.
func (s *TripService) ImportTrips(ctx context.Context, req *connect.Request[api.ImportTripsRequest]) (*connect.Response[api.ImportTripsResponse], error) {
	slog.Info("ImportTrips request received", "bytes", len(req.Msg.Snapshot))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	doc, report, err := snapshot.Decode(req.Msg.Snapshot)
	if err != nil {
		slog.Warn("ImportTrips rejected", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	previous, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, storeError("ImportTrips", err)
	}

	if err := s.store.ReplaceAll(ctx, doc.Trips); err != nil {
		return nil, storeError("ImportTrips", err)
	}

	for _, t := range previous {
		s.dropMarks(ctx, t.ID)
	}

	if name := strings.TrimSpace(doc.UserName); name != "" {
		if err := s.store.SetUserName(ctx, name); err != nil {
			return nil, storeError("ImportTrips", err)
		}
	}

	slog.Info("ImportTrips successful",
		"source_version", report.SourceVersion,
		"trips", report.TripsImported,
		"expenses", report.ExpensesImported,
		"repaired", len(report.Repaired),
		"dropped", len(report.Dropped),
	)

	return connect.NewResponse(&api.ImportTripsResponse{
		SourceVersion:    report.SourceVersion,
		TripsImported:    report.TripsImported,
		ExpensesImported: report.ExpensesImported,
		Defaulted:        report.Defaulted,
		Repaired:         report.Repaired,
		Dropped:          report.Dropped,
	}), nil
}
