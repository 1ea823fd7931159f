package algorithms

import (
	"testing"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// setupTestGraph creates a graph with nodes n0..n(count-1) and the given edges
func setupTestGraph(t *testing.T, count int, edges ...[2]int) *topology.Graph {
	t.Helper()

	g := topology.New()
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = string(rune('A' + i))
		if _, err := g.AddNode(topology.Node{ID: ids[i]}); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(ids[e[0]], ids[e[1]], "a"); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return g
}

// TestIsTree_EmptyGraph tests tree check on empty graph
func TestIsTree_EmptyGraph(t *testing.T) {
	graph := setupTestGraph(t, 0)
	if IsTree(graph) {
		t.Error("Empty graph should not be a tree")
	}
}

// TestIsTree_SingleNode tests tree check on single node
func TestIsTree_SingleNode(t *testing.T) {
	graph := setupTestGraph(t, 1)
	if !IsTree(graph) {
		t.Error("Single node should be a tree")
	}
}

// TestIsTree_Star tests tree check on a star
func TestIsTree_Star(t *testing.T) {
	graph := setupTestGraph(t, 4, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})
	if !IsTree(graph) {
		t.Error("Star should be a tree")
	}
	if HasCycle(graph) {
		t.Error("Star should have no cycle")
	}
}

// TestIsTree_Disconnected tests that n-1 edges with a cycle is not a tree
func TestIsTree_Disconnected(t *testing.T) {
	//   A - B - C - A    D isolated
	graph := setupTestGraph(t, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0})
	if IsTree(graph) {
		t.Error("Triangle plus isolated node should not be a tree")
	}
	if IsConnected(graph) {
		t.Error("Graph with isolated node should not be connected")
	}
	if !HasCycle(graph) {
		t.Error("Triangle should have a cycle")
	}
}

// TestReachable tests BFS order from a start node
func TestReachable(t *testing.T) {
	graph := setupTestGraph(t, 4, [2]int{0, 1}, [2]int{1, 2})

	got := Reachable(graph, "A")
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("Reachable = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Reachable[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if Reachable(graph, "missing") != nil {
		t.Error("Reachable from a missing node should be nil")
	}
}

// TestIsRing tests ring detection
func TestIsRing(t *testing.T) {
	ring := setupTestGraph(t, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 0})
	if !IsRing(ring) {
		t.Error("Square should be a ring")
	}

	path := setupTestGraph(t, 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3})
	if IsRing(path) {
		t.Error("Path should not be a ring")
	}
}
