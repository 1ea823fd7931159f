package algorithms

import (
	"math"
	"testing"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// setupPlacedGraph creates the district
//
//	S(0,0) - A(3,4) - B(6,8)
//	S      - C(3,0) - B
//	D(9,9) isolated
//
// with S the only source
func setupPlacedGraph(t *testing.T) *topology.Graph {
	t.Helper()

	g := topology.New()
	nodes := []topology.Node{
		{ID: "S", SupplyHeating: true},
		{ID: "A", Pos: topology.Position{X: 3, Y: 4}},
		{ID: "B", Pos: topology.Position{X: 6, Y: 8}},
		{ID: "C", Pos: topology.Position{X: 3, Y: 0}},
		{ID: "D", Pos: topology.Position{X: 9, Y: 9}},
	}
	for _, n := range nodes {
		if _, err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for _, e := range [][2]string{{"S", "A"}, {"A", "B"}, {"S", "C"}, {"C", "B"}} {
		if _, err := g.AddEdge(e[0], e[1], ""); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return g
}

// TestSupplyPath_Shortest tests that the shorter of two runs is chosen
func TestSupplyPath_Shortest(t *testing.T) {
	g := setupPlacedGraph(t)

	path, dist, err := SupplyPath(g, "S", "B")
	if err != nil {
		t.Fatalf("SupplyPath failed: %v", err)
	}
	want := []string{"S", "A", "B"}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %s, want %s", i, path[i], want[i])
		}
	}
	if math.Abs(dist-10) > 1e-9 {
		t.Errorf("distance = %v, want 10", dist)
	}
}

// TestSupplyPath_SameNode tests path from node to itself
func TestSupplyPath_SameNode(t *testing.T) {
	g := setupPlacedGraph(t)

	path, dist, err := SupplyPath(g, "A", "A")
	if err != nil {
		t.Fatalf("SupplyPath failed: %v", err)
	}
	if len(path) != 1 || path[0] != "A" || dist != 0 {
		t.Errorf("got %v (%v), want [A] (0)", path, dist)
	}
}

// TestSupplyPath_NoPath tests disconnected and unknown nodes
func TestSupplyPath_NoPath(t *testing.T) {
	g := setupPlacedGraph(t)

	path, _, err := SupplyPath(g, "S", "D")
	if err != nil {
		t.Fatalf("SupplyPath failed: %v", err)
	}
	if path != nil {
		t.Errorf("Expected no path to isolated node, got %v", path)
	}

	if _, _, err := SupplyPath(g, "S", "missing"); !topology.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

// TestSupplyDistances tests single source distances
func TestSupplyDistances(t *testing.T) {
	g := setupPlacedGraph(t)

	got, err := SupplyDistances(g, "S")
	if err != nil {
		t.Fatalf("SupplyDistances failed: %v", err)
	}
	want := map[string]float64{"S": 0, "A": 5, "B": 10, "C": 3}
	if len(got) != len(want) {
		t.Fatalf("distances = %v, want %v", got, want)
	}
	for id, d := range want {
		if math.Abs(got[id]-d) > 1e-9 {
			t.Errorf("distance to %s = %v, want %v", id, got[id], d)
		}
	}

	if _, err := SupplyDistances(g, "missing"); err == nil {
		t.Error("Expected error for missing start")
	}
}

// TestLongestSupplyRun tests the farthest consumer
func TestLongestSupplyRun(t *testing.T) {
	g := setupPlacedGraph(t)

	consumer, dist, ok := LongestSupplyRun(g)
	if !ok || consumer != "B" || math.Abs(dist-10) > 1e-9 {
		t.Errorf("LongestSupplyRun = %s, %v, %v; want B, 10, true", consumer, dist, ok)
	}

	if _, _, ok := LongestSupplyRun(setupTestGraph(t, 3, [2]int{0, 1})); ok {
		t.Error("Graph without a source should have no supply run")
	}
}
