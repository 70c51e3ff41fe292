package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	jwttoken "trustgate/internal/jwt_token"
	messaginghandler "trustgate/internal/messaging/handler"
	"trustgate/internal/platform/config"
	"trustgate/internal/platform/metrics"
	trusthandler "trustgate/internal/trust/handler"
	verificationhandler "trustgate/internal/verification/handler"
	"trustgate/pkg/platform/httputil"
	adminmw "trustgate/pkg/platform/middleware/admin"
	authmw "trustgate/pkg/platform/middleware/auth"
	"trustgate/pkg/platform/middleware/request"
	"trustgate/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

func newRouter(cfg config.Server, a *app, in *infra, log *slog.Logger) http.Handler {
	jwtValidator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience))

	verification := verificationhandler.New(a.verification, log)
	trust := trusthandler.New(a.trust, log)
	messaging := messaginghandler.New(a.messaging, log)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(metrics.Middleware(metrics.New()))
	r.Use(requesttime.Middleware)

	r.Get("/health", healthHandler(in))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(jwtValidator, log))
		verification.Register(r)
		trust.Register(r)
		messaging.Register(r)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminmw.RequireAdmin(log))
			verification.RegisterAdmin(r)
			trust.RegisterAdmin(r)
			messaging.RegisterAdmin(r)
		})
	})

	return otelhttp.NewHandler(r, "trustgate",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && r.URL.Path != "/metrics"
		}),
	)
}

func healthHandler(in *infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		if in.db != nil {
			checks["postgres"] = "ok"
			if err := in.db.PingContext(ctx); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			}
		}
		if in.redis != nil {
			checks["redis"] = "ok"
			if err := in.redis.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			}
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": state, "checks": checks})
	}
}
