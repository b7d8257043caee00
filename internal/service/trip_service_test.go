package service

import (
	"context"
	"encoding/json"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

func TestCreateTrip(t *testing.T) {
	env := setupTestServer(t)

	trip := env.createTrip(t, "  Goa 2025 ", ana, api.Friend{Name: "Mei"})

	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, "Goa 2025", trip.Name)
	assert.NotZero(t, trip.CreatedAt)
	require.Len(t, trip.Friends, 3)
	assert.Equal(t, api.Friend{ID: models.OrganizerID, Name: models.DefaultUserName}, trip.Friends[0], "organizer first")
	assert.NotEmpty(t, trip.Friends[2].ID, "generated ID for friend without one")
}

func TestCreateTrip_OrganizerUsesProfileName(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.profile.SetUserName(ctx, connect.NewRequest(&api.SetUserNameRequest{UserName: "Sam"}))
	require.NoError(t, err)

	trip := env.createTrip(t, "Ladakh", ana)
	assert.Equal(t, "Sam", trip.Friends[0].Name)

	// An explicit organizer entry is kept as given.
	trip = env.createTrip(t, "Kerala", api.Friend{ID: models.OrganizerID, Name: "Me"}, ana)
	require.Len(t, trip.Friends, 2)
	assert.Equal(t, "Me", trip.Friends[0].Name)
}

func TestCreateTrip_InvalidArgument(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.CreateTripRequest
	}{
		{name: "blank name", req: &api.CreateTripRequest{Name: "   "}},
		{name: "friend without name", req: &api.CreateTripRequest{Name: "Goa", Friends: []api.Friend{{ID: "x", Name: " "}}}},
		{name: "duplicate friend", req: &api.CreateTripRequest{Name: "Goa", Friends: []api.Friend{ana, ana}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.trips.CreateTrip(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetTrip(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana)
	env.addExpense(t, trip.ID, 90, "you", "you", "ana")
	second := env.addExpense(t, trip.ID, 20, "ana", "you")

	resp, err := env.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	require.NoError(t, err)

	got := resp.Msg.Trip
	require.Len(t, got.Expenses, 2)
	assert.Equal(t, second.ID, got.Expenses[0].ID, "newest expense first")
	assert.Equal(t, models.DefaultCurrency, got.Expenses[0].Currency)
}

func TestGetTrip_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{TripID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.trips.GetTrip(context.Background(), connect.NewRequest(&api.GetTripRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListTrips(t *testing.T) {
	env := setupTestServer(t)
	goa := env.createTrip(t, "Goa", ana)
	env.createTrip(t, "Empty")
	env.addExpense(t, goa.ID, 40, "you", "you", "ana")
	env.addExpense(t, goa.ID, 10, "ana", "ana")

	resp, err := env.trips.ListTrips(context.Background(), connect.NewRequest(&api.ListTripsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Trips, 2)

	for _, s := range resp.Msg.Trips {
		if s.ID != goa.ID {
			continue
		}
		assert.Equal(t, 2, s.ExpenseCount)
		assert.Equal(t, 2, s.FriendCount)
		assert.InDelta(t, 50, s.TotalSpent, tolerance)
	}
}

func TestUpdateTrip(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana, raj)
	env.addExpense(t, trip.ID, 30, "you", "you", "ana")

	resp, err := env.trips.UpdateTrip(ctx, connect.NewRequest(&api.UpdateTripRequest{
		TripID:  trip.ID,
		Name:    "Goa Trip",
		Friends: []api.Friend{{ID: "you", Name: "You"}, {ID: "ana", Name: "Ana M"}, {Name: "Mei"}},
	}))
	require.NoError(t, err)
	got := resp.Msg.Trip
	assert.Equal(t, "Goa Trip", got.Name)
	require.Len(t, got.Friends, 3)
	assert.Equal(t, "Ana M", got.Friends[1].Name)

	t.Run("remove referenced friend", func(t *testing.T) {
		_, err := env.trips.UpdateTrip(ctx, connect.NewRequest(&api.UpdateTripRequest{
			TripID:  trip.ID,
			Name:    "Goa",
			Friends: []api.Friend{{ID: "you", Name: "You"}},
		}))
		assertCode(t, err, connect.CodeFailedPrecondition)
	})

	t.Run("remove organizer", func(t *testing.T) {
		_, err := env.trips.UpdateTrip(ctx, connect.NewRequest(&api.UpdateTripRequest{
			TripID:  trip.ID,
			Name:    "Goa",
			Friends: []api.Friend{ana},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := env.trips.UpdateTrip(ctx, connect.NewRequest(&api.UpdateTripRequest{
			TripID:  "missing",
			Name:    "Goa",
			Friends: []api.Friend{ana},
		}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteTrip(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana)

	_, err := env.trips.DeleteTrip(ctx, connect.NewRequest(&api.DeleteTripRequest{TripID: trip.ID}))
	require.NoError(t, err)

	_, err = env.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.trips.DeleteTrip(ctx, connect.NewRequest(&api.DeleteTripRequest{TripID: trip.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteTrip_MarkCleanupFailure(t *testing.T) {
	env := setupTestServerWith(t, testOptions{
		wrapMarks: func(m storage.MarkStore) storage.MarkStore { return brokenMarks{m} },
	})
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana)

	_, err := env.trips.DeleteTrip(ctx, connect.NewRequest(&api.DeleteTripRequest{TripID: trip.ID}))
	require.NoError(t, err, "deleting the trip succeeds even when its marks cannot be removed")

	_, err = env.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	assertCode(t, err, connect.CodeNotFound)

	kept := env.createTrip(t, "Kerala", raj)
	exported, err := env.trips.ExportTrips(ctx, connect.NewRequest(&api.ExportTripsRequest{}))
	require.NoError(t, err)
	imported, err := env.trips.ImportTrips(ctx, connect.NewRequest(&api.ImportTripsRequest{Snapshot: exported.Msg.Snapshot}))
	require.NoError(t, err, "import succeeds even when old marks cannot be removed")
	assert.Equal(t, 1, imported.Msg.TripsImported)

	_, err = env.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: kept.ID}))
	require.NoError(t, err)
}

func TestAddExpense_Validation(t *testing.T) {
	env := setupTestServer(t)
	trip := env.createTrip(t, "Goa", ana)

	tests := []struct {
		name    string
		tripID  string
		expense api.ExpenseInput
		code    connect.Code
	}{
		{
			name:    "zero amount",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: 0, PaidByFriendID: "you", SplitWithFriendIDs: []string{"you"}},
			code:    connect.CodeInvalidArgument,
		},
		{
			name:    "negative amount",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: -3, PaidByFriendID: "you", SplitWithFriendIDs: []string{"you"}},
			code:    connect.CodeInvalidArgument,
		},
		{
			name:    "empty split",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: 10, PaidByFriendID: "you"},
			code:    connect.CodeInvalidArgument,
		},
		{
			name:    "missing payer",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: 10, SplitWithFriendIDs: []string{"you"}},
			code:    connect.CodeInvalidArgument,
		},
		{
			name:    "payer not in trip",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: 10, PaidByFriendID: "zed", SplitWithFriendIDs: []string{"you"}},
			code:    connect.CodeFailedPrecondition,
		},
		{
			name:    "participant not in trip",
			tripID:  trip.ID,
			expense: api.ExpenseInput{Amount: 10, PaidByFriendID: "you", SplitWithFriendIDs: []string{"you", "zed"}},
			code:    connect.CodeFailedPrecondition,
		},
		{
			name:    "unknown trip",
			tripID:  "missing",
			expense: api.ExpenseInput{Amount: 10, PaidByFriendID: "you", SplitWithFriendIDs: []string{"you"}},
			code:    connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.trips.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
				TripID:  tt.tripID,
				Expense: tt.expense,
			}))
			assertCode(t, err, tt.code)
		})
	}
}

func TestUpdateExpense_KeepsSettled(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana)
	expense := env.addExpense(t, trip.ID, 30, "you", "you", "ana")

	_, err := env.trips.ToggleExpenseSettled(ctx, connect.NewRequest(&api.ToggleExpenseSettledRequest{
		TripID: trip.ID, ExpenseID: expense.ID,
	}))
	require.NoError(t, err)

	resp, err := env.trips.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		TripID:    trip.ID,
		ExpenseID: expense.ID,
		Expense: api.ExpenseInput{
			Amount:             45,
			Currency:           "inr",
			Description:        "Dinner",
			PaidByFriendID:     "ana",
			SplitWithFriendIDs: []string{"you", "ana"},
		},
	}))
	require.NoError(t, err)

	got := resp.Msg.Expense
	assert.True(t, got.Settled, "settled flag survives the edit")
	assert.Equal(t, expense.CreatedAt, got.CreatedAt)
	assert.Equal(t, 45.0, got.Amount)
	assert.Equal(t, "ana", got.PaidByFriendID)
	assert.Equal(t, "INR", got.Currency)

	_, err = env.trips.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		TripID:    trip.ID,
		ExpenseID: "missing",
		Expense:   api.ExpenseInput{Amount: 1, PaidByFriendID: "you", SplitWithFriendIDs: []string{"you"}},
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestToggleExpenseSettled(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana)
	expense := env.addExpense(t, trip.ID, 30, "you", "you", "ana")

	require.False(t, expense.Settled, "new expenses start unsettled")

	for _, want := range []bool{true, false} {
		resp, err := env.trips.ToggleExpenseSettled(ctx, connect.NewRequest(&api.ToggleExpenseSettledRequest{
			TripID: trip.ID, ExpenseID: expense.ID,
		}))
		require.NoError(t, err)
		assert.Equal(t, want, resp.Msg.Expense.Settled)
	}

	_, err := env.trips.ToggleExpenseSettled(ctx, connect.NewRequest(&api.ToggleExpenseSettledRequest{
		TripID: trip.ID, ExpenseID: "missing",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := env.createTrip(t, "Goa", ana)
	expense := env.addExpense(t, trip.ID, 30, "you", "you", "ana")

	_, err := env.trips.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{
		TripID: trip.ID, ExpenseID: expense.ID,
	}))
	require.NoError(t, err)

	resp, err := env.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Trip.Expenses)

	_, err = env.trips.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{
		TripID: trip.ID, ExpenseID: expense.ID,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestExportImportTrips(t *testing.T) {
	source := setupTestServer(t)
	ctx := context.Background()

	_, err := source.profile.SetUserName(ctx, connect.NewRequest(&api.SetUserNameRequest{UserName: "Sam"}))
	require.NoError(t, err)
	trip := source.createTrip(t, "Goa", ana, raj)
	source.addExpense(t, trip.ID, 90, "you", "you", "ana", "raj")
	settled := source.addExpense(t, trip.ID, 12, "ana", "raj")
	_, err = source.trips.ToggleExpenseSettled(ctx, connect.NewRequest(&api.ToggleExpenseSettledRequest{
		TripID: trip.ID, ExpenseID: settled.ID,
	}))
	require.NoError(t, err)

	exported, err := source.trips.ExportTrips(ctx, connect.NewRequest(&api.ExportTripsRequest{}))
	require.NoError(t, err)
	require.Equal(t, 1, exported.Msg.TripCount)

	target := setupTestServer(t)
	old := target.createTrip(t, "Old trip", ana)

	imported, err := target.trips.ImportTrips(ctx, connect.NewRequest(&api.ImportTripsRequest{
		Snapshot: exported.Msg.Snapshot,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Msg.SourceVersion)
	assert.Equal(t, 1, imported.Msg.TripsImported)
	assert.Equal(t, 2, imported.Msg.ExpensesImported)
	assert.Empty(t, imported.Msg.Dropped)

	_, err = target.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: old.ID}))
	assertCode(t, err, connect.CodeNotFound)

	got, err := target.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	require.Len(t, got.Msg.Trip.Expenses, 2)
	for _, e := range got.Msg.Trip.Expenses {
		if e.ID == settled.ID {
			assert.True(t, e.Settled, "settled flag kept in round trip")
		}
	}

	assert.Equal(t, "Sam", target.getProfile(t).UserName)
}

func TestImportTrips_Legacy(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	legacy := json.RawMessage(`[
	  {
	    "id": "t1",
	    "name": "Goa",
	    "friends": [{"id": "you", "name": "You"}, {"id": "ana", "name": "Ana"}],
	    "expenses": [
	      {"id": "e1", "amount": 90, "paidByFriendId": "you", "splitWithFriendIds": ["you", "ana"], "createdAt": 1},
	      {"id": "e2", "amount": 10, "paidByFriendId": "ghost", "splitWithFriendIds": ["you"], "createdAt": 2}
	    ],
	    "createdAt": 1
	  }
	]`)

	resp, err := env.trips.ImportTrips(ctx, connect.NewRequest(&api.ImportTripsRequest{Snapshot: legacy}))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Msg.SourceVersion)
	assert.Equal(t, 1, resp.Msg.ExpensesImported)
	assert.Len(t, resp.Msg.Dropped, 1, "e2 dropped")

	balances, err := env.balances.GetTripBalances(ctx, connect.NewRequest(&api.GetTripBalancesRequest{TripID: "t1"}))
	require.NoError(t, err)
	require.Len(t, balances.Msg.Debts, 1)
	assert.InDelta(t, 45, balances.Msg.Debts[0].Amount, tolerance)

	_, err = env.trips.ImportTrips(ctx, connect.NewRequest(&api.ImportTripsRequest{Snapshot: json.RawMessage(`{"version": 7, "trips": []}`)}))
	assertCode(t, err, connect.CodeInvalidArgument)
}
