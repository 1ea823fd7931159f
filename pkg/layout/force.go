package layout

import (
	"math"
	"math/rand"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// ForceDirectedLayout spreads nodes with pairwise repulsion and attraction
// along pipes. Runs are reproducible for a given Seed.
type ForceDirectedLayout struct {
	config *Config
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *Config) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 20
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *topology.Graph, nodeIDs []string) (map[string]topology.Position, error) {
	if len(nodeIDs) == 0 {
		return make(map[string]topology.Position), nil
	}

	// Single node - center it
	if len(nodeIDs) == 1 {
		return map[string]topology.Position{
			nodeIDs[0]: {X: fdl.config.Width / 2, Y: fdl.config.Height / 2},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))
	inner := func(extent float64) float64 {
		return rng.Float64()*(extent-2*fdl.config.Padding) + fdl.config.Padding
	}

	positions := make(map[string]topology.Position, len(nodeIDs))
	for _, id := range nodeIDs {
		positions[id] = topology.Position{X: inner(fdl.config.Width), Y: inner(fdl.config.Height)}
	}

	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodeIDs))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]topology.Position, len(nodeIDs))

		// Repulsion between all nodes
		for i, id1 := range nodeIDs {
			for _, id2 := range nodeIDs[i+1:] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Max(math.Hypot(dx, dy), 0.01)

				force := (k * k) / dist
				fx, fy := (dx/dist)*force, (dy/dist)*force

				forces[id1] = topology.Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = topology.Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along pipes
		for _, id1 := range nodeIDs {
			for _, id2 := range g.Neighbors(id1) {
				p2, exists := positions[id2]
				if !exists {
					continue
				}
				dx := positions[id1].X - p2.X
				dy := positions[id1].Y - p2.Y
				dist := math.Hypot(dx, dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[id1] = topology.Position{
					X: forces[id1].X - (dx/dist)*force,
					Y: forces[id1].Y - (dy/dist)*force,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, id := range nodeIDs {
			f := forces[id]
			force := math.Hypot(f.X, f.Y)
			if force == 0 {
				continue
			}
			step := math.Min(force, temperature) * cool
			positions[id] = topology.Position{
				X: positions[id].X + (f.X/force)*step,
				Y: positions[id].Y + (f.Y/force)*step,
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
