// Package metrics exposes Prometheus collectors for model builds, tree
// generation and model file patching.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Build Metrics
	BuildsTotal          *prometheus.CounterVec
	BuildDuration        *prometheus.HistogramVec
	InstancesTotal       *prometheus.CounterVec
	ConnectionsTotal     prometheus.Counter
	DanglingPortsSkipped *prometheus.CounterVec
	PipeLength           *prometheus.HistogramVec

	// Tree Metrics
	TreesTotal          *prometheus.CounterVec
	TreeVertices        prometheus.Histogram
	SequencesEnumerated prometheus.Counter

	// Model File Metrics
	ModelFilePatchesTotal *prometheus.CounterVec
	CampaignModels        prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every collector registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initBuildMetrics()
	r.initTreeMetrics()
	r.initModelFileMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition format,
// for collection by a node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
