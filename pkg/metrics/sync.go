package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records metadata for Shopify sync cycles.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	orders   *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopify_sync_duration_seconds",
		Help:    "Duration of per-store Shopify sync runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_sync_success",
		Help: "Successful per-store sync runs.",
	}, []string{"store"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_sync_failure",
		Help: "Failed per-store sync runs.",
	}, []string{"store"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_sync_orders_total",
		Help: "Orders upserted by sync runs.",
	}, []string{"store"})
	reg.MustRegister(duration, success, failure, orders)
	return &SyncMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		orders:   orders,
	}
}

// ObserveDuration records the duration for the named store.
func (m *SyncMetrics) ObserveDuration(store string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(store)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named store.
func (m *SyncMetrics) IncSuccess(store string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncFailure increments the failure counter for the named store.
func (m *SyncMetrics) IncFailure(store string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(store)).Inc()
}

// AddOrders adds to the upserted order counter for the named store.
func (m *SyncMetrics) AddOrders(store string, count int) {
	if m == nil || m.orders == nil || count <= 0 {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(store)).Add(float64(count))
}

func normalizeLabel(store string) string {
	if store == "" {
		return "unknown"
	}
	return store
}
