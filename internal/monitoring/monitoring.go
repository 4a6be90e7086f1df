// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service provides monitoring functionality
type Service struct {
	registry        *prometheus.Registry
	recordsIngested prometheus.Counter
	batchesReceived prometheus.Counter
	exportsServed   *prometheus.CounterVec
	videosServed    prometheus.Counter
	storeErrors     prometheus.Counter
}

// NewService creates a new monitoring service with its own registry, so
// tests can construct it repeatedly without duplicate registration.
func NewService() *Service {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Service{
		registry: registry,
		recordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "emogo_records_ingested_total",
			Help: "Total number of records inserted into the store",
		}),
		batchesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "emogo_batches_received_total",
			Help: "Total number of upload batches received",
		}),
		exportsServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emogo_exports_served_total",
			Help: "Total number of export views served",
		}, []string{"format"}),
		videosServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "emogo_videos_served_total",
			Help: "Total number of record videos streamed",
		}),
		storeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "emogo_store_errors_total",
			Help: "Total number of failed store operations",
		}),
	}
}

// Handler exposes the metrics endpoint
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// RecordBatchReceived records an upload batch accepted for processing,
// whether or not the store call that follows succeeds
func (s *Service) RecordBatchReceived() {
	s.batchesReceived.Inc()
}

// RecordIngest records the number of records a batch inserted
func (s *Service) RecordIngest(inserted int) {
	s.recordsIngested.Add(float64(inserted))
}

// RecordExport records a served export view ("html" or "csv")
func (s *Service) RecordExport(format string) {
	s.exportsServed.WithLabelValues(format).Inc()
}

// RecordVideoServed records a streamed record video
func (s *Service) RecordVideoServed() {
	s.videosServed.Inc()
}

// RecordStoreError records a failed store operation
func (s *Service) RecordStoreError() {
	s.storeErrors.Inc()
}
