package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sushant-k-tiwari/TravelSplit/internal/auth"
	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
	"github.com/sushant-k-tiwari/TravelSplit/internal/metrics"
	"github.com/sushant-k-tiwari/TravelSplit/internal/middleware"
	"github.com/sushant-k-tiwari/TravelSplit/internal/service"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
	"github.com/sushant-k-tiwari/TravelSplit/pkg/api/apiconnect"
)

const apiPrefix = "/travelsplit.v1."

// routerDeps is everything the HTTP layer needs.
type routerDeps struct {
	store     storage.Store
	marks     storage.MarkStore
	policy    calculator.Policy
	collector *metrics.Collector
	staticDir string
	origins   []string

	// Both nil when auth is disabled.
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

func newRouter(d routerDeps) http.Handler {
	interceptors := []connect.Interceptor{
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(d.collector),
	}
	if d.jwtManager != nil {
		interceptors = append(interceptors, middleware.RequireAuth(d.jwtManager, apiconnect.AuthServiceLoginProcedure))
	}
	opts := connect.WithInterceptors(interceptors...)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", d.collector.Handler())

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewTripServiceHandler(service.NewTripService(d.store, d.marks), opts))
	mount(apiconnect.NewBalanceServiceHandler(service.NewBalanceService(d.store, d.marks, d.policy, d.collector), opts))
	mount(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(d.store, d.marks), opts))
	mount(apiconnect.NewProfileServiceHandler(service.NewProfileService(d.store, d.marks), opts))
	if d.jwtManager != nil {
		mount(apiconnect.NewAuthServiceHandler(service.NewAuthService(d.authenticator, d.jwtManager, slog.Default()), opts))
	}

	r.Handle("/*", staticHandler(d.staticDir))

	return r
}

// staticHandler serves the web client, falling back to index.html for
// unknown paths. Unknown RPC paths get a plain 404.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// requestLogger logs every HTTP request once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", chimiddleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
