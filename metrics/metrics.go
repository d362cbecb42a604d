// Package metrics exposes Prometheus instrumentation for the notarization
// service and a standalone metrics HTTP server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evidence_notary"

var (
	// CasesOpened counts successfully opened cases.
	CasesOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cases_opened_total",
		Help:      "Number of dispute cases opened.",
	})

	// CredentialsIssued counts minted access credentials.
	CredentialsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_issued_total",
		Help:      "Number of access credentials issued.",
	})

	// DocumentsFiled counts committed document records.
	DocumentsFiled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_filed_total",
		Help:      "Number of documents committed to the cabinet.",
	})

	// StoreFailures counts rejected store operations by reason.
	StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_failures_total",
		Help:      "Number of rejected document store operations.",
	}, []string{"reason"})

	// FeesCollected accumulates collected fees in wei.
	FeesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fees_collected_wei_total",
		Help:      "Total notarization fees collected, in wei.",
	})
)

// MetricsServer serves the Prometheus scrape endpoint.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server listening on the given address.
func New(listenAddr string) (*MetricsServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:        listenAddr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the scrape endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
