package algorithms

import (
	"github.com/dd0wney/heatnet/pkg/topology"
)

// pathItem is a node with its tentative distance from the start
type pathItem struct {
	id       string
	distance float64
}

// dijkstra returns the distance of every node reachable from start, weighting
// each edge by the straight distance between its endpoints, and the parent of
// each node on its shortest path. Stops early once target is settled.
func dijkstra(graph *topology.Graph, start, target string) (map[string]float64, map[string]string) {
	distances := map[string]float64{start: 0}
	parent := map[string]string{start: start}
	settled := make(map[string]bool)

	// Priority queue using simple slice; district graphs are small
	pq := []pathItem{{start, 0}}

	for len(pq) > 0 {
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].distance < pq[minIdx].distance {
				minIdx = i
			}
		}
		current := pq[minIdx]
		pq = append(pq[:minIdx], pq[minIdx+1:]...)

		if settled[current.id] {
			continue
		}
		settled[current.id] = true
		if current.id == target {
			break
		}

		from, _ := graph.Node(current.id)
		for _, neighborID := range graph.Neighbors(current.id) {
			neighbor, err := graph.Node(neighborID)
			if err != nil {
				continue
			}
			newDist := current.distance + from.Pos.Distance(neighbor.Pos)

			if oldDist, seen := distances[neighborID]; !seen || newDist < oldDist {
				distances[neighborID] = newDist
				parent[neighborID] = current.id
				pq = append(pq, pathItem{neighborID, newDist})
			}
		}
	}

	return distances, parent
}

// SupplyPath finds the shortest run of pipe between two nodes, with its
// length. It returns a nil path when the nodes are not connected.
func SupplyPath(graph *topology.Graph, startID, endID string) ([]string, float64, error) {
	for _, id := range []string{startID, endID} {
		if _, err := graph.Node(id); err != nil {
			return nil, 0, err
		}
	}

	distances, parent := dijkstra(graph, startID, endID)
	dist, ok := distances[endID]
	if !ok {
		return nil, 0, nil
	}

	path := []string{endID}
	for node := endID; node != startID; {
		node = parent[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist, nil
}

// SupplyDistances returns the pipe run length from start to every node it
// reaches
func SupplyDistances(graph *topology.Graph, start string) (map[string]float64, error) {
	if _, err := graph.Node(start); err != nil {
		return nil, err
	}
	distances, _ := dijkstra(graph, start, "")
	return distances, nil
}

// LongestSupplyRun returns the consumer farthest from its nearest source,
// measured along the pipes, and that distance. Consumers no source reaches
// are ignored; ok is false when no consumer is reached.
func LongestSupplyRun(graph *topology.Graph) (consumer string, distance float64, ok bool) {
	nearest := make(map[string]float64)
	for _, node := range graph.Nodes() {
		if !node.SupplyHeating {
			continue
		}
		distances, _ := dijkstra(graph, node.ID, "")
		for id, d := range distances {
			if prev, seen := nearest[id]; !seen || d < prev {
				nearest[id] = d
			}
		}
	}

	for _, node := range graph.Nodes() {
		d, seen := nearest[node.ID]
		if node.SupplyHeating || !seen {
			continue
		}
		if !ok || d > distance {
			consumer, distance, ok = node.ID, d, true
		}
	}
	return consumer, distance, ok
}
