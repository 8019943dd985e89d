package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adilrkl/av-bayi/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Cart and checkout metrics
	CartValidationsCounter prometheus.Counter
	CouponRejectionsTotal  prometheus.CounterVec
	OrdersPlacedCounter    prometheus.Counter
	OrdersFailedTotal      prometheus.CounterVec
	StockConflictsCounter  prometheus.Counter

	// Catalog metrics
	ProductViewsCounter  prometheus.CounterVec
	AdminOperationsTotal prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CartValidationsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_cart_validations_total",
			Help: "Total number of cart validation calls",
		},
	)

	CouponRejectionsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_coupon_rejections_total",
			Help: "Total number of rejected coupon applications",
		},
		[]string{"reason"},
	)

	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	OrdersFailedTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_orders_failed_total",
			Help: "Total number of failed order placements",
		},
		[]string{"reason"},
	)

	StockConflictsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_stock_conflicts_total",
			Help: "Total number of order placements aborted by a stock conflict",
		},
	)

	ProductViewsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_views_total",
			Help: "Total number of product detail views",
		},
		[]string{"slug"},
	)

	AdminOperationsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_admin_operations_total",
			Help: "Total number of admin mutations",
		},
		[]string{"entity", "operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a failed authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordCouponRejection increments the counter for a rejected coupon
func RecordCouponRejection(reason string) {
	CouponRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordOrderFailure increments the counter for a failed order placement
func RecordOrderFailure(reason string) {
	OrdersFailedTotal.WithLabelValues(reason).Inc()
}

// RecordProductView increments the counter for product detail views
func RecordProductView(slug string) {
	ProductViewsCounter.WithLabelValues(slug).Inc()
}

// RecordAdminOperation increments the counter for admin mutations
func RecordAdminOperation(entity, operation string) {
	AdminOperationsTotal.WithLabelValues(entity, operation).Inc()
}
