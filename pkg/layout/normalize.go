package layout

import (
	"math"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]topology.Position, width, height, padding float64) map[string]topology.Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]topology.Position, len(positions))
	for id, pos := range positions {
		normalized[id] = topology.Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}

// round snaps a position to whole diagram units so annotations stay short
func round(p topology.Position) topology.Position {
	return topology.Position{X: math.Round(p.X), Y: math.Round(p.Y)}
}
