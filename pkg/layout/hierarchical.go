package layout

import (
	"github.com/dd0wney/heatnet/pkg/topology"
)

// HierarchicalLayout arranges a tree network in levels by hop distance from
// its sources
type HierarchicalLayout struct {
	config *Config
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *Config) *HierarchicalLayout {
	if config.Padding == 0 {
		config.Padding = 20
	}
	return &HierarchicalLayout{config: config}
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(g *topology.Graph, nodeIDs []string) (map[string]topology.Position, error) {
	positions := make(map[string]topology.Position)

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	wanted := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		wanted[id] = true
	}

	// Sources are the roots
	roots := make([]string, 0)
	for _, id := range nodeIDs {
		if n, err := g.Node(id); err == nil && n.SupplyHeating {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = []string{nodeIDs[0]}
	}

	// Build levels using BFS
	levels := make([][]string, 0)
	visited := make(map[string]bool)
	for _, id := range roots {
		visited[id] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]string, 0)

		for _, id := range currentLevel {
			for _, nb := range g.Neighbors(id) {
				if wanted[nb] && !visited[nb] {
					nextLevel = append(nextLevel, nb)
					visited[nb] = true
				}
			}
		}

		currentLevel = nextLevel
	}

	// Disconnected nodes share the last level
	for _, id := range nodeIDs {
		if !visited[id] {
			levels[len(levels)-1] = append(levels[len(levels)-1], id)
		}
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[id] = topology.Position{X: x, Y: y}
		}
	}

	return positions, nil
}
