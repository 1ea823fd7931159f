package layout

import (
	"math"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// CircularLayout arranges nodes on a circle in the given order, which suits
// ring networks where listing order is the flow order.
type CircularLayout struct {
	config *Config
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *Config) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 20
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle
func (cl *CircularLayout) ComputeLayout(g *topology.Graph, nodeIDs []string) (map[string]topology.Position, error) {
	positions := make(map[string]topology.Position)

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodeIDs))

	for i, nodeID := range nodeIDs {
		angle := float64(i) * angleStep
		positions[nodeID] = topology.Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
