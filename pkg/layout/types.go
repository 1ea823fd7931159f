// Package layout places network nodes on the diagram canvas when a network
// file gives no coordinates. Positions only affect annotations and pipe
// lengths, never wiring.
package layout

import (
	"fmt"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// Config configures layout parameters
type Config struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for randomized initial placement
}

// DefaultConfig returns a 400x400 canvas, roughly the extent of a district
// diagram.
func DefaultConfig() *Config {
	return &Config{Width: 400, Height: 400, Iterations: 50, Padding: 20, Seed: 1}
}

// Layout computes positions for the given nodes of a graph
type Layout interface {
	ComputeLayout(g *topology.Graph, nodeIDs []string) (map[string]topology.Position, error)
}

// Kind names a layout algorithm in network files
type Kind string

const (
	KindNone         Kind = "none"
	KindCircular     Kind = "circular"
	KindHierarchical Kind = "hierarchical"
	KindForce        Kind = "force"
)

// Kinds returns every layout name
func Kinds() []string {
	return []string{string(KindNone), string(KindCircular), string(KindHierarchical), string(KindForce)}
}

// New returns the layout named by kind. KindNone returns nil.
func New(kind Kind, config *Config) (Layout, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch kind {
	case KindNone, "":
		return nil, nil
	case KindCircular:
		return NewCircularLayout(config), nil
	case KindHierarchical:
		return NewHierarchicalLayout(config), nil
	case KindForce:
		return NewForceDirectedLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}

// Apply computes positions for nodeIDs and writes them onto the graph's nodes
func Apply(g *topology.Graph, l Layout, nodeIDs []string) error {
	if l == nil || len(nodeIDs) == 0 {
		return nil
	}
	positions, err := l.ComputeLayout(g, nodeIDs)
	if err != nil {
		return err
	}
	for _, id := range nodeIDs {
		n, err := g.Node(id)
		if err != nil {
			return err
		}
		n.Pos = round(positions[id])
	}
	return nil
}
