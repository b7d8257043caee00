package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/pkg/api"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC.
// Trip-scoped requests carry trip_id. Client errors log at Warn, internal
// failures at Error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{"procedure", req.Spec().Procedure}
			if scoped, ok := req.Any().(api.TripScoped); ok && scoped.GetTripID() != "" {
				attrs = append(attrs, "trip_id", scoped.GetTripID())
			}
			if deviceID := GetDeviceID(ctx); deviceID != "" {
				attrs = append(attrs, "device_id", deviceID)
			}

			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				msg = "RPC error"
				level = slog.LevelError
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					level = slog.LevelWarn
					attrs = append(attrs, "code", connectErr.Code().String())
				}
				attrs = append(attrs, "error", err)
			}
			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

			slog.Log(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
