package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/common/httpmetrics"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// Resolve maps err onto the domain taxonomy. Timeouts become
// ErrServiceUnavailable and anything unrecognised becomes ErrInternalError,
// after being logged.
func (h *ErrorHandler) Resolve(r *http.Request, err error) commonerrors.DomainError {
	ctx := r.Context()

	if errors.Is(err, context.DeadlineExceeded) {
		h.log.WithFields(ctx, logger.Fields{
			"action": "request_timeout",
		}).Warnf("request timed out: %v", err)
		err = commonerrors.ErrServiceUnavailable.WithCause(err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		h.log.WithFields(ctx, logger.Fields{
			"error":  err.Error(),
			"path":   r.URL.Path,
			"action": "unhandled_error",
		}).Errorf("unhandled error: %v", err)
		domainErr = commonerrors.ErrInternalError.WithCause(err)
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, logger.Fields{
			"error_code": domainErr.Code(),
			"category":   string(domainErr.Category()),
			"status":     domainErr.HTTPStatus(),
			"action":     "domain_error",
		}).Debugf("domain error: %s", domainErr.Error())
	}

	status := domainErr.HTTPStatus()
	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()
	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	return domainErr
}

// HandleError writes err as a JSON envelope.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	domainErr := h.Resolve(r, err)
	WriteErrorEnvelope(w, domainErr.HTTPStatus(), domainErr.Code(), domainErr.Message(), TraceIDFromContext(r.Context()))
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(constants.TraceIDKey).(string)
	return traceID
}
