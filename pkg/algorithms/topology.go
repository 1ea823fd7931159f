package algorithms

import (
	"github.com/dd0wney/heatnet/pkg/topology"
)

// IsTree checks if the graph forms a valid tree structure
// A tree must:
// - Be connected
// - Have exactly n-1 edges for n nodes
// - Contain no cycles
func IsTree(graph *topology.Graph) bool {
	n := graph.NodeCount()

	// Empty graph is not a tree
	if n == 0 {
		return false
	}

	// Tree must have exactly n-1 edges
	if graph.EdgeCount() != n-1 {
		return false
	}

	// n-1 edges and connected implies acyclic
	return IsConnected(graph)
}

// IsConnected checks if all nodes in the graph are reachable from the first node
func IsConnected(graph *topology.Graph) bool {
	nodes := graph.Nodes()

	// Empty graph is considered connected
	if len(nodes) <= 1 {
		return true
	}

	return len(Reachable(graph, nodes[0].ID)) == len(nodes)
}

// Reachable returns the IDs reachable from start in BFS order, start included
func Reachable(graph *topology.Graph, start string) []string {
	if _, err := graph.Node(start); err != nil {
		return nil
	}

	visited := map[string]bool{start: true}
	order := []string{start}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range graph.Neighbors(current) {
			if !visited[neighbor] {
				visited[neighbor] = true
				order = append(order, neighbor)
				queue = append(queue, neighbor)
			}
		}
	}

	return order
}

// HasCycle reports whether the undirected graph contains a cycle
func HasCycle(graph *topology.Graph) bool {
	visited := make(map[string]bool)

	for _, node := range graph.Nodes() {
		if visited[node.ID] {
			continue
		}

		// iterative DFS carrying the parent to ignore the edge we came from
		type frame struct{ id, parent string }
		stack := []frame{{id: node.ID}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[f.id] {
				// reached twice through different edges
				return true
			}
			visited[f.id] = true

			for _, neighbor := range graph.Neighbors(f.id) {
				if neighbor == f.parent {
					continue
				}
				if visited[neighbor] {
					return true
				}
				stack = append(stack, frame{id: neighbor, parent: f.id})
			}
		}
	}

	return false
}

// IsRing reports whether the graph is a single cycle through every node
func IsRing(graph *topology.Graph) bool {
	n := graph.NodeCount()
	if n < 3 || graph.EdgeCount() != n {
		return false
	}
	for _, node := range graph.Nodes() {
		if graph.Degree(node.ID) != 2 {
			return false
		}
	}
	return IsConnected(graph)
}
