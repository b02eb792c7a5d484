package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/observability/metrics"
)

// StartPoolMetrics publishes pgx pool gauges until ctx is cancelled.
func StartPoolMetrics(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	runTicker(ctx, interval, func() {
		stats := pool.Stat()
		label := string(DriverPostgres)

		metrics.DBPoolInUseConnections.WithLabelValues(label).Set(float64(stats.AcquiredConns()))
		metrics.DBPoolIdleConnections.WithLabelValues(label).Set(float64(stats.IdleConns()))
		metrics.DBPoolMaxConnections.WithLabelValues(label).Set(float64(stats.MaxConns()))
		metrics.DBPoolTotalConnections.WithLabelValues(label).Set(float64(stats.TotalConns()))
	})
}

// StartSQLMetrics publishes database/sql pool gauges until ctx is cancelled.
func StartSQLMetrics(ctx context.Context, d *sql.DB, driver Driver, interval time.Duration) {
	runTicker(ctx, interval, func() {
		stats := d.Stats()
		label := string(driver)

		metrics.DBPoolInUseConnections.WithLabelValues(label).Set(float64(stats.InUse))
		metrics.DBPoolIdleConnections.WithLabelValues(label).Set(float64(stats.Idle))
		metrics.DBPoolMaxConnections.WithLabelValues(label).Set(float64(stats.MaxOpenConnections))
		metrics.DBPoolTotalConnections.WithLabelValues(label).Set(float64(stats.OpenConnections))
	})
}

func runTicker(ctx context.Context, interval time.Duration, collect func()) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		collect()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collect()
			}
		}
	}()
}
