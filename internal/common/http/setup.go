package http

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/httpmetrics"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
)

// BuildBaseHandler wraps handler in the middleware every route shares.
// limiter may be nil to disable rate limiting.
func BuildBaseHandler(log *logger.Logger, handler http.Handler, requestTimeout time.Duration, limiter *StrictRateLimiter) http.Handler {
	if requestTimeout <= 0 {
		requestTimeout = constants.DefaultRequestTimeout
	}

	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	timeout := WithTimeout(requestTimeout)
	csp := ContentSecurityPolicyMiddleware("")

	inner := maxRequestSize(timeout(handler))
	if limiter != nil {
		inner = limiter.Middleware(inner)
	}

	return SecurityHeadersMiddleware(csp(TraceIDMiddleware(recovery(metrics.Wrap(inner)))))
}
