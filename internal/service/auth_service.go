package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/sushant-k-tiwari/TravelSplit/internal/auth"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

// Ensure AuthService implements the handler interface
var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the passphrase and issues a token for a new device ID.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "device_name", req.Msg.DeviceName)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.authenticator.Authenticate(ctx, req.Msg.Passphrase); err != nil {
		s.logger.Warn("Login failed", "device_name", req.Msg.DeviceName, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	deviceID := uuid.NewString()
	token, expires, err := s.jwtManager.Generate(deviceID, req.Msg.DeviceName)
	if err != nil {
		s.logger.Error("Failed to generate token", "device_id", deviceID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Login successful", "device_id", deviceID)

	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		DeviceID:  deviceID,
		ExpiresAt: expires.UnixMilli(),
	}), nil
}
