package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatnet_builds_total",
			Help: "Total number of model builds",
		},
		[]string{"source", "pipes", "status"},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heatnet_build_duration_seconds",
			Help:    "Model build duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"source"},
	)

	r.InstancesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatnet_instances_total",
			Help: "Total number of component instances declared, by model section",
		},
		[]string{"section"},
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "heatnet_connections_total",
			Help: "Total number of connection statements emitted",
		},
	)

	r.DanglingPortsSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatnet_dangling_ports_skipped_total",
			Help: "Pipe ends left unconnected because the node exposes no port in that direction",
		},
		[]string{"direction"},
	)

	r.PipeLength = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heatnet_pipe_length",
			Help:    "Total laid pipe length per build",
			Buckets: prometheus.ExponentialBuckets(100, 2, 8),
		},
		[]string{"pipes"},
	)
}
