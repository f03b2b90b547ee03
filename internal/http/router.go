// Package httpapi composes the service's HTTP surface: domain handlers,
// the live-event websocket, health, and metrics.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "backoffice/internal/audit/handler"
	"backoffice/internal/live"
	notifhandler "backoffice/internal/notification/handler"
	platformredis "backoffice/internal/platform/redis"
	"backoffice/pkg/httputil"
)

// Deps are the wired collaborators the router mounts. DB and Redis are nil
// when not configured; health reporting skips them.
type Deps struct {
	Audit         *audithandler.Handler
	Notifications *notifhandler.Handler
	Live          *live.WSHandler
	DB            *sql.DB
	Redis         *platformredis.Client
}

// NewRouter wires all endpoints. The websocket route bypasses the timeout
// and content-type middleware because the connection is long-lived.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	deps.Audit.Register(r)
	deps.Notifications.Register(r)

	r.Handle("/ws/notifications", deps.Live)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealth(deps))

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{}

		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				checks["database"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["database"] = "ok"
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Health(ctx); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				checks["redis"] = "ok"
			}
		}

		httputil.WriteJSON(w, status, map[string]any{
			"status": http.StatusText(status),
			"checks": checks,
		})
	}
}
