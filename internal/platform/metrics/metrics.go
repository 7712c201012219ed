package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics exposes Prometheus instrumentation for the billing API and ledger.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	receiptsCreated *prometheus.CounterVec
	depositMoves    *prometheus.CounterVec
	depositAmount   *prometheus.CounterVec
	conflictRetries *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quarry_http_requests_total",
			Help: "Counts API requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quarry_http_request_duration_seconds",
			Help:    "API request latency per method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		receiptsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quarry_receipts_created_total",
			Help: "Receipts issued by payment method and owner type.",
		}, []string{"payment_method", "owner_type"}),
		depositMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quarry_deposit_transactions_total",
			Help: "Deposit ledger entries appended by type.",
		}, []string{"type"}),
		depositAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quarry_deposit_amount_total",
			Help: "Money moved through deposit ledger entries by type.",
		}, []string{"type"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quarry_conflict_retries_total",
			Help: "Units of work retried after a concurrent write conflict.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.receiptsCreated,
		m.depositMoves,
		m.depositAmount,
		m.conflictRetries,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records a completed request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReceiptCreated counts an issued receipt.
func (m *Metrics) ReceiptCreated(method domain.PaymentMethod, ownerType domain.OwnerType) {
	m.receiptsCreated.WithLabelValues(string(method), string(ownerType)).Inc()
}

// DepositMoved counts a deposit ledger entry and its amount.
func (m *Metrics) DepositMoved(txnType domain.DepositTxnType, amount decimal.Decimal) {
	m.depositMoves.WithLabelValues(string(txnType)).Inc()
	m.depositAmount.WithLabelValues(string(txnType)).Add(amount.InexactFloat64())
}

// ConflictRetried counts a retried unit of work.
func (m *Metrics) ConflictRetried(operation string) {
	m.conflictRetries.WithLabelValues(operation).Inc()
}
