package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushant-k-tiwari/TravelSplit/internal/auth"
	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
	"github.com/sushant-k-tiwari/TravelSplit/internal/middleware"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage/sqlite"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

type authEnv struct {
	auth    apiconnect.AuthServiceClient
	profile apiconnect.ProfileServiceClient
	metrics *metrics.Collector
}

func setupAuthServer(t *testing.T, passphrase string) *authEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	var hash string
	if passphrase != "" {
		hash, err = auth.HashPassphrase(passphrase)
		require.NoError(t, err, "failed to hash passphrase")
	}
	authenticator, err := auth.NewPassphraseAuthenticator(hash)
	require.NoError(t, err, "failed to create authenticator")
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	collector := metrics.NewCollector()

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(collector),
		middleware.RequireAuth(jwtManager, apiconnect.AuthServiceLoginProcedure),
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, logger), interceptors))
	mux.Handle(apiconnect.NewProfileServiceHandler(NewProfileService(store, store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &authEnv{
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		profile: apiconnect.NewProfileServiceClient(http.DefaultClient, server.URL),
		metrics: collector,
	}
}

func (e *authEnv) login(t *testing.T, passphrase string) (*api.LoginResponse, error) {
	t.Helper()
	resp, err := e.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Passphrase: passphrase,
		DeviceName: "Pixel",
	}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestLogin(t *testing.T) {
	env := setupAuthServer(t, "correct horse")

	_, err := env.login(t, "wrong")
	assertCode(t, err, connect.CodeUnauthenticated)

	resp, err := env.login(t, "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.DeviceID)
	assert.Greater(t, resp.ExpiresAt, time.Now().UnixMilli(), "expiry in the future")

	second, err := env.login(t, "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, resp.DeviceID, second.DeviceID, "a fresh device ID per login")
}

func TestLogin_OpenPairing(t *testing.T) {
	env := setupAuthServer(t, "")

	_, err := env.login(t, "anything")
	require.NoError(t, err, "open pairing accepts any passphrase")
}

func TestRequireAuth(t *testing.T) {
	env := setupAuthServer(t, "secret")
	ctx := context.Background()

	_, err := env.profile.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	req := connect.NewRequest(&api.GetProfileRequest{})
	req.Header().Set("Authorization", "Bearer garbage")
	_, err = env.profile.GetProfile(ctx, req)
	assertCode(t, err, connect.CodeUnauthenticated)

	login, err := env.login(t, "secret")
	require.NoError(t, err)

	req = connect.NewRequest(&api.GetProfileRequest{})
	req.Header().Set("Authorization", "Bearer "+login.Token)
	_, err = env.profile.GetProfile(ctx, req)
	require.NoError(t, err, "GetProfile with token")

	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.RPCRequests.WithLabelValues(apiconnect.ProfileServiceGetProfileProcedure, "unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RPCRequests.WithLabelValues(apiconnect.ProfileServiceGetProfileProcedure, "ok")))
}
