package service

import (
	"github.com/AlibekovAA/tasktracker/internal/observability/metrics"
)

const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

func recordRegistration(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func recordLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func recordSessionValidation(result string) {
	metrics.SessionValidationsTotal.WithLabelValues(result).Inc()
}

func incrementLogouts() {
	metrics.LogoutsTotal.Inc()
}
