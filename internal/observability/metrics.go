package observability

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/coursebridge-backend/internal/platform/envutil"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRetries   *CounterVec

	completions *CounterVec
	cacheHits   *CounterVec
	cacheMisses *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process-wide registry once. It returns nil when metrics are disabled,
// and every Metrics method is a no-op on a nil receiver.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func Current() *Metrics {
	return instance
}

// NewMetrics builds an independent registry.
func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("cb_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"cb_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("cb_api_inflight_requests", "In-flight API requests."),

		aggregateOps: NewCounterVec("cb_aggregate_operations_total", "Aggregate writes by operation/status.", []string{"op", "status"}),
		aggregateLatency: NewHistogramVec(
			"cb_aggregate_operation_duration_seconds",
			"Aggregate write latency in seconds by operation/status.",
			[]string{"op", "status"},
			nil,
		),
		aggregateConflicts: NewCounterVec("cb_aggregate_conflicts_total", "Aggregate writes rejected as conflicts.", []string{"op"}),
		aggregateRetries:   NewCounterVec("cb_aggregate_retryable_total", "Aggregate writes failing with a retryable error.", []string{"op"}),

		completions: NewCounterVec("cb_completions_total", "Newly recorded completion facts by kind.", []string{"kind"}),
		cacheHits:   NewCounterVec("cb_cache_hits_total", "Cache hits by cache.", []string{"cache"}),
		cacheMisses: NewCounterVec("cb_cache_misses_total", "Cache misses by cache.", []string{"cache"}),

		dbStats:   NewGaugeVec("cb_db_pool_stats", "Database connection pool stats.", []string{"metric"}),
		redisUp:   NewGauge("cb_redis_up", "Redis connectivity (1=up, 0=down)."),
		redisPing: NewGauge("cb_redis_ping_seconds", "Redis ping latency in seconds."),
	}
}

func scrapeInterval() time.Duration {
	n := envutil.Int("METRICS_SCRAPE_INTERVAL_SECONDS", 10)
	if n <= 0 {
		n = 10
	}
	return time.Duration(n) * time.Second
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.aggregateOps, m.aggregateLatency, m.aggregateConflicts, m.aggregateRetries,
		m.completions, m.cacheHits, m.cacheMisses,
		m.dbStats, m.redisUp, m.redisPing,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) ObserveAggregateOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.Inc(op, status)
	m.aggregateLatency.Observe(dur.Seconds(), op, status)
}

func (m *Metrics) IncAggregateConflict(op string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.Inc(op)
}

func (m *Metrics) IncAggregateRetry(op string) {
	if m == nil {
		return
	}
	m.aggregateRetries.Inc(op)
}

// IncCompletion counts facts created for the first time: lesson, module, course, quiz
// and enrollment.
func (m *Metrics) IncCompletion(kind string) {
	if m == nil {
		return
	}
	m.completions.Inc(kind)
}

func (m *Metrics) IncCacheHit(name string) {
	if m == nil {
		return
	}
	m.cacheHits.Inc(name)
}

func (m *Metrics) IncCacheMiss(name string) {
	if m == nil {
		return
	}
	m.cacheMisses.Inc(name)
}

func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.collectDBStats(db); err != nil && log != nil {
					log.Warn("metrics: db pool stats unavailable", "error", err)
				}
			}
		}
	}()
}

func (m *Metrics) collectDBStats(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	return nil
}

// StartRedisCollector pings the shared client on every scrape interval. The client is
// owned by the caller.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				pingCtx, cancel := context.WithTimeout(ctx, interval)
				err := rdb.Ping(pingCtx).Err()
				cancel()
				if err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
