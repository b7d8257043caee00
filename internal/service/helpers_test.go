package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage/sqlite"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

const tolerance = 1e-9

type testEnv struct {
	trips      apiconnect.TripServiceClient
	balances   apiconnect.BalanceServiceClient
	settlement apiconnect.SettlementServiceClient
	profile    apiconnect.ProfileServiceClient
	store      *sqlite.SQLiteStore
	metrics    *metrics.Collector
}

type testOptions struct {
	policy calculator.Policy
	marks  storage.MarkStore

	// wrapMarks, when set, wraps the mark store handed to the services.
	wrapMarks func(storage.MarkStore) storage.MarkStore
}

// setupTestServer creates a test server backed by a fresh SQLite file.
func setupTestServer(t *testing.T) *testEnv {
	return setupTestServerWith(t, testOptions{})
}

func setupTestServerWith(t *testing.T, opts testOptions) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	policy := opts.policy
	if policy == "" {
		policy = calculator.DefaultPolicy
	}
	var marks storage.MarkStore = store
	if opts.marks != nil {
		marks = opts.marks
	}
	if opts.wrapMarks != nil {
		marks = opts.wrapMarks(marks)
	}
	collector := metrics.NewCollector()

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewTripServiceHandler(NewTripService(store, marks)))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, marks, policy, collector)))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, marks)))
	mux.Handle(apiconnect.NewProfileServiceHandler(NewProfileService(store, marks)))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		trips:      apiconnect.NewTripServiceClient(http.DefaultClient, server.URL),
		balances:   apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL),
		settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		profile:    apiconnect.NewProfileServiceClient(http.DefaultClient, server.URL),
		store:      store,
		metrics:    collector,
	}
}

// createTrip creates a trip with the organizer plus the given friends.
func (e *testEnv) createTrip(t *testing.T, name string, friends ...api.Friend) *api.Trip {
	t.Helper()
	resp, err := e.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name:    name,
		Friends: friends,
	}))
	require.NoError(t, err, "CreateTrip failed")
	return resp.Msg.Trip
}

func (e *testEnv) addExpense(t *testing.T, tripID string, amount float64, paidBy string, split ...string) *api.Expense {
	t.Helper()
	resp, err := e.trips.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		TripID: tripID,
		Expense: api.ExpenseInput{
			Amount:             amount,
			PaidByFriendID:     paidBy,
			SplitWithFriendIDs: split,
		},
	}))
	require.NoError(t, err, "AddExpense failed")
	return resp.Msg.Expense
}

func (e *testEnv) getProfile(t *testing.T) *api.Profile {
	t.Helper()
	resp, err := e.profile.GetProfile(context.Background(), connect.NewRequest(&api.GetProfileRequest{}))
	require.NoError(t, err, "GetProfile failed")
	return resp.Msg.Profile
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err, "expected %v error", want)
	assert.Equal(t, want, connect.CodeOf(err), "unexpected code: %v", err)
}

// brokenMarks fails every mark deletion.
type brokenMarks struct {
	storage.MarkStore
}

func (brokenMarks) DeleteTripMarks(context.Context, string) error {
	return errors.New("mark store unavailable")
}

var (
	ana = api.Friend{ID: "ana", Name: "Ana"}
	raj = api.Friend{ID: "raj", Name: "Raj"}
)
