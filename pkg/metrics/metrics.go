package metrics

import (
	"strconv"
	"time"
)

// RecordBuild records a finished model build
func (r *Registry) RecordBuild(source string, pipes int, status string, duration time.Duration) {
	r.BuildsTotal.WithLabelValues(source, strconv.Itoa(pipes), status).Inc()
	r.BuildDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordEmission records the instances and connections of a build
func (r *Registry) RecordEmission(instancesBySection map[string]int, connections int) {
	for section, n := range instancesBySection {
		r.InstancesTotal.WithLabelValues(section).Add(float64(n))
	}
	r.ConnectionsTotal.Add(float64(connections))
}

// RecordDanglingPort records a pipe end skipped for lack of a port
func (r *Registry) RecordDanglingPort(direction string) {
	r.DanglingPortsSkipped.WithLabelValues(direction).Inc()
}

// RecordPipeLength records the total laid pipe length of a build
func (r *Registry) RecordPipeLength(pipes, length int) {
	r.PipeLength.WithLabelValues(strconv.Itoa(pipes)).Observe(float64(length))
}

// RecordTree records a sequence decoding attempt
func (r *Registry) RecordTree(vertices int, err error) {
	if err != nil {
		r.TreesTotal.WithLabelValues("error").Inc()
		return
	}
	r.TreesTotal.WithLabelValues("success").Inc()
	r.TreeVertices.Observe(float64(vertices))
}

// RecordPatch records a model file splice; mode is "replace" or "insert"
func (r *Registry) RecordPatch(mode string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ModelFilePatchesTotal.WithLabelValues(mode, status).Inc()
}
