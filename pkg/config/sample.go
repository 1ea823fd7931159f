package config

import (
	"github.com/dd0wney/heatnet/pkg/layout"
	"github.com/dd0wney/heatnet/pkg/templates"
)

// SampleDistrict returns the reference district: one source named after its
// kind and three buildings needing heating only, hot water only, and both.
// Under the ring scheme the nodes are joined in listing order; otherwise the
// topology is the star on the source, to be replaced with WithSequence.
func SampleDistrict(kind templates.SourceKind, pipes int) *Network {
	n := &Network{
		Model:  "model_" + kind.String(),
		Source: kind,
		Pipes:  pipes,
		Layout: layout.KindNone,
		Nodes: []NodeSpec{
			{ID: kind.String(), Supply: true, Pos: []float64{0, 0}},
			{ID: "Building_1", Pos: []float64{0, 200}, THeating: 45},
			{ID: "Building_2", Pos: []float64{200, 100}, TDHW: 60},
			{ID: "Building_3", Pos: []float64{300, 200}, THeating: 45, TDHW: 60},
		},
	}

	if pipes == 1 {
		n.Model += "_ring"
		n.Edges = [][]string{
			{kind.String(), "Building_1"},
			{"Building_1", "Building_2"},
			{"Building_2", "Building_3"},
			{"Building_3", kind.String()},
		}
		return n
	}

	n.Sequence = make([]int, len(n.Nodes)-2)
	return n
}
