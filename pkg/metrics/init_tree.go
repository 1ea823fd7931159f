package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTreeMetrics() {
	r.TreesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatnet_trees_total",
			Help: "Total number of trees decoded from sequences",
		},
		[]string{"status"},
	)

	r.TreeVertices = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "heatnet_tree_vertices",
			Help:    "Number of vertices of decoded trees",
			Buckets: prometheus.LinearBuckets(2, 4, 8),
		},
	)

	r.SequencesEnumerated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "heatnet_sequences_enumerated_total",
			Help: "Total number of sequences produced by enumeration",
		},
	)
}

func (r *Registry) initModelFileMetrics() {
	r.ModelFilePatchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatnet_model_file_patches_total",
			Help: "Total number of models spliced into package files",
		},
		[]string{"mode", "status"},
	)

	r.CampaignModels = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "heatnet_campaign_models",
			Help: "Number of models written by the last campaign",
		},
	)
}
