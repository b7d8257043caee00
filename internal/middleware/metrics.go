package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
)

// MetricsInterceptor counts and times every RPC call.
func MetricsInterceptor(c *metrics.Collector) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			c.ObserveRPC(req.Spec().Procedure, code, time.Since(start))

			return resp, err
		}
	}
}
