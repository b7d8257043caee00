package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

func getBalances(t *testing.T, env *testEnv, tripID string) *api.GetTripBalancesResponse {
	t.Helper()
	resp, err := env.balances.GetTripBalances(context.Background(), connect.NewRequest(&api.GetTripBalancesRequest{TripID: tripID}))
	require.NoError(t, err, "GetTripBalances failed")
	return resp.Msg
}

func getSummary(t *testing.T, env *testEnv, tripID, friendID string) *api.GetParticipantSummaryResponse {
	t.Helper()
	resp, err := env.balances.GetParticipantSummary(context.Background(), connect.NewRequest(&api.GetParticipantSummaryRequest{
		TripID: tripID, FriendID: friendID,
	}))
	require.NoError(t, err, "GetParticipantSummary failed")
	return resp.Msg
}

func netOf(resp *api.GetTripBalancesResponse) map[string]float64 {
	net := make(map[string]float64, len(resp.Balances))
	for _, b := range resp.Balances {
		net[b.FriendID] = b.NetBalance
	}
	return net
}

func TestGetTripBalances_EqualSplit(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana, raj)
	env.addExpense(t, trip.ID, 90, "you", "you", "ana", "raj")

	resp := getBalances(t, env, trip.ID)

	want := map[string]float64{"you": 60, "ana": -30, "raj": -30}
	for id, amount := range want {
		assert.InDelta(t, amount, netOf(resp)[id], tolerance, "net[%s]", id)
	}

	require.Len(t, resp.Debts, 2)
	for _, d := range resp.Debts {
		assert.Equal(t, "you", d.ToFriendID)
		assert.InDelta(t, 30, d.Amount, tolerance)
	}
	assert.Equal(t, "Ana", resp.Debts[0].FromName)
	assert.Equal(t, "You", resp.Debts[0].ToName)

	statuses := map[string]string{}
	for _, b := range resp.Balances {
		statuses[b.FriendID] = b.Status
	}
	assert.Equal(t, api.StatusOwed, statuses["you"])
	assert.Equal(t, api.StatusOwes, statuses["ana"])
	assert.Equal(t, string(calculator.PolicyActive), resp.Policy)
	assert.InDelta(t, 90, resp.TotalSpent, tolerance)
	assert.Equal(t, 1, resp.ExpensesConsidered)
}

func TestGetTripBalances_OffsettingDebts(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana)
	env.addExpense(t, trip.ID, 100, "you", "you", "ana")
	env.addExpense(t, trip.ID, 40, "ana", "you", "ana")

	resp := getBalances(t, env, trip.ID)

	require.Len(t, resp.Debts, 1, "a single netted debt")
	d := resp.Debts[0]
	assert.Equal(t, "ana", d.FromFriendID)
	assert.Equal(t, "you", d.ToFriendID)
	assert.InDelta(t, 30, d.Amount, tolerance)

	require.Len(t, resp.SettlementPlan, 1)
	assert.InDelta(t, 30, resp.SettlementPlan[0].Amount, tolerance)
}

func TestGetTripBalances_SettledPolicy(t *testing.T) {
	tests := []struct {
		name       string
		policy     calculator.Policy
		wantYou    float64
		wantDebts  int
		considered int
	}{
		{name: "active ledger skips settled", policy: calculator.PolicyActive, wantYou: 60, wantDebts: 2, considered: 1},
		{name: "full ledger counts settled", policy: calculator.PolicyFull, wantYou: 50, wantDebts: 3, considered: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServerWith(t, testOptions{policy: tt.policy})
			ctx := context.Background()
			trip := env.createTrip(t, "Goa", ana, raj)
			env.addExpense(t, trip.ID, 90, "you", "you", "ana", "raj")
			settled := env.addExpense(t, trip.ID, 30, "ana", "you", "ana", "raj")
			_, err := env.trips.ToggleExpenseSettled(ctx, connect.NewRequest(&api.ToggleExpenseSettledRequest{
				TripID: trip.ID, ExpenseID: settled.ID,
			}))
			require.NoError(t, err)

			resp := getBalances(t, env, trip.ID)

			assert.InDelta(t, tt.wantYou, netOf(resp)["you"], tolerance)
			assert.Len(t, resp.Debts, tt.wantDebts)
			assert.Equal(t, tt.considered, resp.ExpensesConsidered)
			assert.Equal(t, string(tt.policy), resp.Policy)
			assert.InDelta(t, 120, resp.TotalSpent, tolerance, "total spent includes settled expenses")

			var sum float64
			for _, b := range resp.Balances {
				sum += b.NetBalance
			}
			assert.InDelta(t, 0, sum, tolerance, "balances sum to zero")
		})
	}
}

func TestGetTripBalances_SelfSplitAndEmptyTrip(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana)
	env.addExpense(t, trip.ID, 25, "ana", "ana")

	resp := getBalances(t, env, trip.ID)
	for _, b := range resp.Balances {
		assert.InDelta(t, 0, b.NetBalance, tolerance, b.FriendID)
		assert.Equal(t, api.StatusSettled, b.Status, b.FriendID)
	}
	assert.Empty(t, resp.Debts)
	assert.Empty(t, resp.SettlementPlan)

	_, err := env.balances.GetTripBalances(context.Background(), connect.NewRequest(&api.GetTripBalancesRequest{TripID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetTripBalances_SubCentDebts(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana, raj)
	env.addExpense(t, trip.ID, 0.01, "you", "you", "ana", "raj")

	resp := getBalances(t, env, trip.ID)
	assert.Empty(t, resp.Debts, "debts below one cent are not listed")
	assert.Empty(t, resp.SettlementPlan)

	for _, id := range []string{"ana", "raj"} {
		summary := getSummary(t, env, trip.ID, id)
		assert.Equal(t, api.StatusSettled, summary.Status, id)
		assert.Empty(t, summary.Owes, id)
		assert.Empty(t, summary.OwedBy, id)
	}

	organizer := getSummary(t, env, trip.ID, "you")
	assert.Empty(t, organizer.OwedBy)
	assert.Empty(t, organizer.Owes)
}

func TestGetTripBalances_RecordsMetrics(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana)
	env.addExpense(t, trip.ID, 10, "you", "ana")

	getBalances(t, env, trip.ID)
	getBalances(t, env, trip.ID)

	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.BalanceComputations.WithLabelValues("active")))
}

func TestGetParticipantSummary(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana, raj)
	env.addExpense(t, trip.ID, 90, "you", "you", "ana", "raj")
	env.addExpense(t, trip.ID, 20, "raj", "ana")
	env.addExpense(t, trip.ID, 5, "you", "you")

	msg := getSummary(t, env, trip.ID, "ana")

	assert.InDelta(t, -50, msg.NetBalance, tolerance)
	assert.Equal(t, api.StatusOwes, msg.Status)
	assert.Equal(t, "50.00", msg.DisplayAmount)
	require.Len(t, msg.Owes, 2)
	assert.Equal(t, "raj", msg.Owes[0].CounterpartyID)
	assert.Equal(t, "raj-20.00", msg.Owes[0].Key)
	assert.Equal(t, "you", msg.Owes[1].CounterpartyID)
	assert.Equal(t, "you-30.00", msg.Owes[1].Key)
	assert.Equal(t, "You", msg.Owes[1].CounterpartyName)
	assert.Empty(t, msg.OwedBy)
	assert.Len(t, msg.Expenses, 2, "the expenses involving ana")

	// Marking a line shows up in the summary but does not change any amount.
	_, err := env.settlement.ToggleDebtMark(ctx, connect.NewRequest(&api.ToggleDebtMarkRequest{
		TripID:         trip.ID,
		ParticipantID:  "ana",
		Direction:      "settled",
		CounterpartyID: "you",
		Amount:         30,
	}))
	require.NoError(t, err)

	msg = getSummary(t, env, trip.ID, "ana")
	assert.False(t, msg.Owes[0].Marked)
	assert.True(t, msg.Owes[1].Marked)
	assert.InDelta(t, -50, msg.NetBalance, tolerance, "marks do not change balances")

	creditor := getSummary(t, env, trip.ID, "you")
	assert.Len(t, creditor.OwedBy, 2)
	assert.Equal(t, api.StatusOwed, creditor.Status)

	_, err = env.balances.GetParticipantSummary(ctx, connect.NewRequest(&api.GetParticipantSummaryRequest{
		TripID: trip.ID, FriendID: "zed",
	}))
	assertCode(t, err, connect.CodeNotFound)
}
