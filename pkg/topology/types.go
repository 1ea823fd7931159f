package topology

import "math"

// Position represents a 2D coordinate. It only drives diagram annotations.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance returns the Euclidean distance between two positions
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Midpoint returns the point halfway between p and q
func (p Position) Midpoint(q Position) Position {
	return Position{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// NodeState tracks whether the compiler has instantiated a node
type NodeState uint8

const (
	NodeUnvisited NodeState = iota
	NodeBuilt
)

// String returns the string representation of a node state
func (s NodeState) String() string {
	switch s {
	case NodeUnvisited:
		return "unvisited"
	case NodeBuilt:
		return "built"
	default:
		return "unknown"
	}
}

// EdgeState tracks whether the pipes of an edge have been laid
type EdgeState uint8

const (
	EdgeUnbuilt EdgeState = iota
	EdgeBuilt
)

// String returns the string representation of an edge state
func (s EdgeState) String() string {
	switch s {
	case EdgeUnbuilt:
		return "unbuilt"
	case EdgeBuilt:
		return "built"
	default:
		return "unknown"
	}
}

// Node is a heat source or a consumer substation.
type Node struct {
	ID            string
	Pos           Position
	SupplyHeating bool    // true for heat sources
	THeating      float64 // space heating demand temperature in °C, 0 if not needed
	TDHW          float64 // domestic hot water demand temperature in °C, 0 if not needed

	index int
	state NodeState
}

// Index returns the node's position in listing order
func (n *Node) Index() int {
	return n.index
}

// State returns the node's build state
func (n *Node) State() NodeState {
	return n.state
}

// Built reports whether the node has been instantiated
func (n *Node) Built() bool {
	return n.state == NodeBuilt
}

// Edge is an undirected physical connection between two nodes.
// From is always the endpoint with the lower listing index.
type Edge struct {
	From      string
	To        string
	Direction string
}

// EdgeKey identifies an unordered node pair
type EdgeKey struct {
	A string
	B string
}

// Direction tags one of the parallel pipes of a connection
type Direction string

const (
	DirA  Direction = "a"
	DirB  Direction = "b"
	DirAL Direction = "aL"
)

// Directions returns the direction tags used by a pipe-count scheme.
// The ring scheme (one pipe) uses a and b on the same pipe.
func Directions(pipes int) []Direction {
	all := []Direction{DirA, DirB, DirAL}
	if pipes < 2 {
		return all[:2]
	}
	if pipes > len(all) {
		pipes = len(all)
	}
	return all[:pipes]
}
