package layout

import (
	"math"
	"testing"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// newTree builds S - B1 - B2 and S - B3 with no positions
func newTree(t *testing.T) *topology.Graph {
	t.Helper()

	g := topology.New()
	for _, n := range []topology.Node{
		{ID: "S", SupplyHeating: true},
		{ID: "B1", THeating: 45},
		{ID: "B2", TDHW: 60},
		{ID: "B3", THeating: 45},
	} {
		if _, err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode failed: %v", err)
		}
	}
	for _, e := range [][2]string{{"S", "B1"}, {"B1", "B2"}, {"S", "B3"}} {
		if _, err := g.AddEdge(e[0], e[1], ""); err != nil {
			t.Fatalf("AddEdge failed: %v", err)
		}
	}
	return g
}

var treeIDs = []string{"S", "B1", "B2", "B3"}

func checkBounds(t *testing.T, positions map[string]topology.Position, config *Config) {
	t.Helper()
	for id, pos := range positions {
		if pos.X < 0 || pos.X > config.Width {
			t.Errorf("Node %s X position %f out of bounds", id, pos.X)
		}
		if pos.Y < 0 || pos.Y > config.Height {
			t.Errorf("Node %s Y position %f out of bounds", id, pos.Y)
		}
	}
}

func TestCircularLayout(t *testing.T) {
	config := &Config{Width: 400, Height: 400}
	positions, err := NewCircularLayout(config).ComputeLayout(newTree(t), treeIDs)
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	if len(positions) != 4 {
		t.Fatalf("Expected 4 positions, got %d", len(positions))
	}
	checkBounds(t, positions, config)

	// every node sits on the same circle
	radius := 200 - config.Padding
	for id, pos := range positions {
		d := math.Hypot(pos.X-200, pos.Y-200)
		if math.Abs(d-radius) > 1e-9 {
			t.Errorf("Node %s at distance %f from center, want %f", id, d, radius)
		}
	}

	// the first node sits at angle 0
	if s := positions["S"]; math.Abs(s.X-380) > 1e-9 || math.Abs(s.Y-200) > 1e-9 {
		t.Errorf("First node at %+v, want (380, 200)", s)
	}
}

func TestCircularLayout_Empty(t *testing.T) {
	positions, err := NewCircularLayout(DefaultConfig()).ComputeLayout(topology.New(), nil)
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("Expected no positions, got %d", len(positions))
	}
}

func TestHierarchicalLayout(t *testing.T) {
	config := &Config{Width: 400, Height: 300, Padding: 50}
	positions, err := NewHierarchicalLayout(config).ComputeLayout(newTree(t), treeIDs)
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	checkBounds(t, positions, config)

	// levels: {S}, {B1, B3}, {B2}
	if !(positions["S"].Y < positions["B1"].Y && positions["B1"].Y < positions["B2"].Y) {
		t.Errorf("Expected S above B1 above B2, got %v %v %v", positions["S"], positions["B1"], positions["B2"])
	}
	if positions["B1"].Y != positions["B3"].Y {
		t.Errorf("B1 and B3 should share a level, got %f and %f", positions["B1"].Y, positions["B3"].Y)
	}
	if positions["B1"].X == positions["B3"].X {
		t.Error("Nodes on the same level should not overlap")
	}
}

func TestHierarchicalLayout_Disconnected(t *testing.T) {
	g := newTree(t)
	if _, err := g.AddNode(topology.Node{ID: "X", THeating: 45}); err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}

	positions, err := NewHierarchicalLayout(DefaultConfig()).ComputeLayout(g, append(treeIDs, "X"))
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	if positions["X"].Y != positions["B2"].Y {
		t.Errorf("Disconnected node should join the last level, got %v", positions["X"])
	}
}

func TestForceDirectedLayout(t *testing.T) {
	config := &Config{Width: 400, Height: 400, Iterations: 50, Seed: 7}
	layout := NewForceDirectedLayout(config)

	first, err := layout.ComputeLayout(newTree(t), treeIDs)
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("Expected 4 positions, got %d", len(first))
	}
	checkBounds(t, first, config)

	second, err := layout.ComputeLayout(newTree(t), treeIDs)
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	for _, id := range treeIDs {
		if first[id] != second[id] {
			t.Errorf("Node %s placed at %v then %v with the same seed", id, first[id], second[id])
		}
	}
}

func TestForceDirectedLayout_SingleNode(t *testing.T) {
	config := &Config{Width: 400, Height: 200}
	positions, err := NewForceDirectedLayout(config).ComputeLayout(newTree(t), []string{"S"})
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}
	if positions["S"] != (topology.Position{X: 200, Y: 100}) {
		t.Errorf("Single node should be centered, got %v", positions["S"])
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []Kind{KindCircular, KindHierarchical, KindForce} {
		l, err := New(kind, nil)
		if err != nil || l == nil {
			t.Errorf("New(%s) = %v, %v", kind, l, err)
		}
	}
	if l, err := New(KindNone, nil); err != nil || l != nil {
		t.Errorf("New(none) = %v, %v", l, err)
	}
	if _, err := New("spiral", nil); err == nil {
		t.Error("Expected error for unknown layout")
	}
}

func TestApply(t *testing.T) {
	g := newTree(t)

	if err := Apply(g, NewCircularLayout(DefaultConfig()), []string{"B1", "B2"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	s, _ := g.Node("S")
	if s.Pos != (topology.Position{}) {
		t.Errorf("Node outside the requested set moved to %v", s.Pos)
	}
	b1, _ := g.Node("B1")
	b2, _ := g.Node("B2")
	if b1.Pos == b2.Pos {
		t.Error("Placed nodes should not overlap")
	}
	if b1.Pos.X != math.Round(b1.Pos.X) || b1.Pos.Y != math.Round(b1.Pos.Y) {
		t.Errorf("Positions should be whole units, got %v", b1.Pos)
	}

	if err := Apply(g, NewCircularLayout(DefaultConfig()), []string{"missing"}); !topology.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}
