// Package simulation describes what an external simulator needs to run a
// generated model: initial values for named references, the run window, and
// the shape of the results it returns. No simulator ships with this module.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dd0wney/heatnet/pkg/validation"
)

var (
	ErrUnknownReference = errors.New("unknown result reference")
	ErrDuplicateInitial = errors.New("duplicate initial value")
)

// Initial sets a model reference, e.g. "sink_SST_Building_1.p", before the run
type Initial struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// RunSpec is the simulated time window, in seconds, and the number of
// output intervals
type RunSpec struct {
	Start     float64 `yaml:"start"`
	Stop      float64 `yaml:"stop"`
	Intervals int     `yaml:"intervals"`
}

// DefaultRun is long enough for every district model to reach steady state
func DefaultRun() RunSpec {
	return RunSpec{Start: 0, Stop: 6000, Intervals: 100}
}

// Validate checks the run window
func (r RunSpec) Validate() error {
	return validation.NewConfigValidator("run").
		NonNegativeFloat("start", r.Start).
		Less("stop", r.Start, r.Stop).
		Positive("intervals", r.Intervals).
		Validate()
}

// Request asks a driver to simulate one model of a loaded package
type Request struct {
	Model   string    `yaml:"model"` // qualified, e.g. "Method.model_sea_ring"
	Initial []Initial `yaml:"initial"`
	Run     RunSpec   `yaml:"run"`
	Observe []string  `yaml:"observe,omitempty"` // result references to record
}

// Validate checks the request before it is handed to a driver
func (r Request) Validate() error {
	cv := validation.NewConfigValidator("request")
	cv.Required("model", r.Model).
		Custom("run", r.Run.Validate)

	seen := make(map[string]bool, len(r.Initial))
	for i, in := range r.Initial {
		field := fmt.Sprintf("initial[%d]", i)
		cv.Required(field+".name", in.Name)
		if seen[in.Name] {
			cv.Custom(field, func() error { return fmt.Errorf("%w: %s", ErrDuplicateInitial, in.Name) })
		}
		seen[in.Name] = true
	}
	return cv.Validate()
}

// Result holds sampled trajectories keyed by reference name, e.g.
// "boiler_supply_gas_boiler.QFue_flow"
type Result struct {
	Time   []float64
	Series map[string][]float64
}

// Names returns the recorded references in sorted order
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Series))
	for name := range r.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SteadyState averages a series over the samples taken at or after from,
// the way campaign figures discard the start-up transient.
func (r *Result) SteadyState(name string, from float64) (float64, error) {
	series, ok := r.Series[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownReference, name)
	}

	sum, count := 0.0, 0
	for i, t := range r.Time {
		if t < from || i >= len(series) {
			continue
		}
		sum += series[i]
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("no samples of %s after t=%g", name, from)
	}
	return sum / float64(count), nil
}

// Driver runs a simulation. Implementations own their retry and timeout
// policy and must honor ctx cancellation.
type Driver interface {
	Simulate(ctx context.Context, req Request) (*Result, error)
}
