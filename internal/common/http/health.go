package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/logger"
)

type PingFunc func(ctx context.Context) error

const healthPingTimeout = 2 * time.Second

// HealthHandler reports 200 while the store answers a ping and 503 otherwise.
func HealthHandler(log *logger.Logger, ping PingFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()

			if err := ping(ctx); err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"action": "health_check_failed",
				}).Warnf("health check failed: %v", err)
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}

		log.Debug("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
