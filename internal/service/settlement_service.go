package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

// Ensure SettlementService implements the handler interface
var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService manages debt marks: checklist flags on computed debt
// lines. Marks never change balances.
type SettlementService struct {
	trips storage.TripStore
	marks storage.MarkStore
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(trips storage.TripStore, marks storage.MarkStore) *SettlementService {
	return &SettlementService{trips: trips, marks: marks}
}

// checkParticipants verifies the trip exists and contains every friend ID.
func (s *SettlementService) checkParticipants(ctx context.Context, op, tripID string, friendIDs ...string) error {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return storeError(op, err, "trip_id", tripID)
	}
	for _, id := range friendIDs {
		if !trip.HasFriend(id) {
			return connect.NewError(connect.CodeNotFound, errUnknownFriend(id))
		}
	}
	return nil
}

// ListDebtMarks returns a participant's settled and received mark keys.
func (s *SettlementService) ListDebtMarks(ctx context.Context, req *connect.Request[api.ListDebtMarksRequest]) (*connect.Response[api.ListDebtMarksResponse], error) {
	slog.Info("ListDebtMarks request received",
		"trip_id", req.Msg.TripID,
		"participant_id", req.Msg.ParticipantID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(ctx, "ListDebtMarks", req.Msg.TripID, req.Msg.ParticipantID); err != nil {
		return nil, err
	}

	marks, err := s.marks.ListMarks(ctx, req.Msg.TripID, req.Msg.ParticipantID)
	if err != nil {
		return nil, storeError("ListDebtMarks", err, "trip_id", req.Msg.TripID)
	}

	resp := &api.ListDebtMarksResponse{
		Settled:  marks[models.DirectionSettled],
		Received: marks[models.DirectionReceived],
	}
	if resp.Settled == nil {
		resp.Settled = []string{}
	}
	if resp.Received == nil {
		resp.Received = []string{}
	}

	return connect.NewResponse(resp), nil
}

// ToggleDebtMark flips the mark on the debt line between the participant and
// a counterparty.
func (s *SettlementService) ToggleDebtMark(ctx context.Context, req *connect.Request[api.ToggleDebtMarkRequest]) (*connect.Response[api.ToggleDebtMarkResponse], error) {
	slog.Info("ToggleDebtMark request received",
		"trip_id", req.Msg.TripID,
		"participant_id", req.Msg.ParticipantID,
		"counterparty_id", req.Msg.CounterpartyID,
		"direction", req.Msg.Direction,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	direction, err := models.ParseDirection(req.Msg.Direction)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.checkParticipants(ctx, "ToggleDebtMark", req.Msg.TripID, req.Msg.ParticipantID, req.Msg.CounterpartyID); err != nil {
		return nil, err
	}

	mark := models.DebtMark{
		TripID:        req.Msg.TripID,
		ParticipantID: req.Msg.ParticipantID,
		Direction:     direction,
		Key:           models.DebtKey(req.Msg.CounterpartyID, req.Msg.Amount),
	}
	marked, err := s.marks.ToggleMark(ctx, mark)
	if err != nil {
		return nil, storeError("ToggleDebtMark", err, "trip_id", req.Msg.TripID)
	}

	slog.Info("Debt mark toggled", "key", mark.Key, "direction", direction, "marked", marked)

	return connect.NewResponse(&api.ToggleDebtMarkResponse{Key: mark.Key, Marked: marked}), nil
}
