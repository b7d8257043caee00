package service

import (
	"context"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

// Ensure BalanceService implements the handler interface
var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService recomputes balances from the stored expenses on every call.
type BalanceService struct {
	store   storage.TripStore
	marks   storage.MarkStore
	policy  calculator.Policy
	metrics *metrics.Collector
}

// NewBalanceService creates a BalanceService. collector may be nil.
func NewBalanceService(store storage.TripStore, marks storage.MarkStore, policy calculator.Policy, collector *metrics.Collector) *BalanceService {
	return &BalanceService{
		store:   store,
		marks:   marks,
		policy:  policy,
		metrics: collector,
	}
}

func (s *BalanceService) calculate(trip *models.Trip) *calculator.Balances {
	balances := calculator.CalculateBalances(trip.FriendIDs(), toBalanceInput(trip.Expenses), s.policy)
	if s.metrics != nil {
		s.metrics.ObserveBalance(string(balances.Policy), balances.ExpensesConsidered)
	}
	slog.Debug("Balances computed",
		"trip_id", trip.ID,
		"policy", balances.Policy,
		"expenses_considered", balances.ExpensesConsidered,
	)
	return balances
}

// GetTripBalances returns every friend's net balance, the simplified
// pairwise debts and a minimal settle-up plan.
func (s *BalanceService) GetTripBalances(ctx context.Context, req *connect.Request[api.GetTripBalancesRequest]) (*connect.Response[api.GetTripBalancesResponse], error) {
	slog.Info("GetTripBalances request received", "trip_id", req.Msg.TripID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("GetTripBalances", err, "trip_id", req.Msg.TripID)
	}

	balances := s.calculate(trip)

	resp := &api.GetTripBalancesResponse{
		TripID:             trip.ID,
		Policy:             string(balances.Policy),
		ExpensesConsidered: balances.ExpensesConsidered,
		Balances:           make([]api.FriendBalance, len(balances.Friends)),
		Debts:              toAPIDebts(trip, payable(balances.Ledger.Edges())),
		SettlementPlan:     toAPIDebts(trip, calculator.SettlementPlan(balances.Friends)),
	}
	for _, e := range trip.Expenses {
		resp.TotalSpent += e.Amount
	}
	for i, fb := range balances.Friends {
		resp.Balances[i] = api.FriendBalance{
			FriendID:   fb.FriendID,
			FriendName: trip.FriendName(fb.FriendID),
			NetBalance: fb.NetBalance,
			TotalPaid:  fb.TotalPaid,
			TotalShare: fb.TotalShare,
			Status:     balanceStatus(fb.NetBalance),
		}
	}

	slog.Info("GetTripBalances successful",
		"trip_id", trip.ID,
		"debts", len(resp.Debts),
		"transfers", len(resp.SettlementPlan),
	)

	return connect.NewResponse(resp), nil
}

// GetParticipantSummary returns one friend's net balance, whom they owe, who
// owes them, and the expenses they take part in. Each debt line carries its
// mark key and whether it is currently marked.
func (s *BalanceService) GetParticipantSummary(ctx context.Context, req *connect.Request[api.GetParticipantSummaryRequest]) (*connect.Response[api.GetParticipantSummaryResponse], error) {
	slog.Info("GetParticipantSummary request received",
		"trip_id", req.Msg.TripID,
		"friend_id", req.Msg.FriendID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storeError("GetParticipantSummary", err, "trip_id", req.Msg.TripID)
	}
	if !trip.HasFriend(req.Msg.FriendID) {
		return nil, connect.NewError(connect.CodeNotFound, errUnknownFriend(req.Msg.FriendID))
	}

	marks, err := s.marks.ListMarks(ctx, trip.ID, req.Msg.FriendID)
	if err != nil {
		return nil, storeError("GetParticipantSummary", err, "trip_id", trip.ID)
	}

	balances := s.calculate(trip)
	net := balances.Net[req.Msg.FriendID]

	resp := &api.GetParticipantSummaryResponse{
		TripID:        trip.ID,
		FriendID:      req.Msg.FriendID,
		FriendName:    trip.FriendName(req.Msg.FriendID),
		NetBalance:    net,
		DisplayAmount: models.FormatAmount(net),
		Status:        balanceStatus(net),
		Owes:          []api.DebtLine{},
		OwedBy:        []api.DebtLine{},
		Expenses:      []api.Expense{},
	}

	settled := keySet(marks[models.DirectionSettled])
	for _, d := range payable(balances.Ledger.Owes(req.Msg.FriendID)) {
		resp.Owes = append(resp.Owes, debtLine(trip, d.To, d.Amount, settled))
	}
	received := keySet(marks[models.DirectionReceived])
	for _, d := range payable(balances.Ledger.OwedBy(req.Msg.FriendID)) {
		resp.OwedBy = append(resp.OwedBy, debtLine(trip, d.From, d.Amount, received))
	}

	inputs := toBalanceInput(trip.Expenses)
	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		if !s.policy.Includes(inputs[i]) {
			continue
		}
		if e.PaidByFriendID == req.Msg.FriendID || slices.Contains(e.SplitWithFriendIDs, req.Msg.FriendID) {
			resp.Expenses = append(resp.Expenses, *toAPIExpense(e))
		}
	}

	return connect.NewResponse(resp), nil
}

// payable drops debts that round to zero cents, matching the settled status
// shown for friends.
func payable(edges []calculator.DebtEdge) []calculator.DebtEdge {
	var out []calculator.DebtEdge
	for _, e := range edges {
		if !models.IsZeroAmount(e.Amount) {
			out = append(out, e)
		}
	}
	return out
}

func toAPIDebts(trip *models.Trip, edges []calculator.DebtEdge) []api.Debt {
	debts := make([]api.Debt, len(edges))
	for i, e := range edges {
		debts[i] = api.Debt{
			FromFriendID: e.From,
			FromName:     trip.FriendName(e.From),
			ToFriendID:   e.To,
			ToName:       trip.FriendName(e.To),
			Amount:       e.Amount,
		}
	}
	return debts
}

func debtLine(trip *models.Trip, counterparty string, amount float64, marked map[string]bool) api.DebtLine {
	key := models.DebtKey(counterparty, amount)
	return api.DebtLine{
		CounterpartyID:   counterparty,
		CounterpartyName: trip.FriendName(counterparty),
		Amount:           amount,
		DisplayAmount:    models.FormatAmount(amount),
		Key:              key,
		Marked:           marked[key],
	}
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
