package topology

// Graph is the in-memory description of a heating network.
// Nodes keep their insertion order and each adjacency list keeps edge
// insertion order, so traversal is deterministic.
//
// A Graph is not safe for concurrent use; one build owns it at a time.
type Graph struct {
	nodes     []*Node
	byID      map[string]*Node
	adjacency map[string][]string
	edges     map[EdgeKey]*Edge
	edgeOrder []EdgeKey

	// built pipe segments, keyed by unordered endpoint pair. Covers both
	// graph edges and ring segments that have no edge of their own.
	pipes map[EdgeKey]bool
	// ring segments keyed by ordered pair; a two-node ring has two
	ring  map[EdgeKey]bool
	ports *PortTable
}

// New creates an empty topology graph
func New() *Graph {
	return &Graph{
		byID:      make(map[string]*Node),
		adjacency: make(map[string][]string),
		edges:     make(map[EdgeKey]*Edge),
		pipes:     make(map[EdgeKey]bool),
		ring:      make(map[EdgeKey]bool),
		ports:     NewPortTable(),
	}
}

// AddNode appends a node in listing order
func (g *Graph) AddNode(n Node) (*Node, error) {
	if n.ID == "" {
		return nil, NewError("AddNode").Node(n.ID).Cause(ErrEmptyID).Err()
	}
	if _, exists := g.byID[n.ID]; exists {
		return nil, NewError("AddNode").Node(n.ID).Cause(ErrDuplicateNode).Err()
	}

	node := n
	node.index = len(g.nodes)
	node.state = NodeUnvisited

	g.nodes = append(g.nodes, &node)
	g.byID[node.ID] = &node
	g.adjacency[node.ID] = make([]string, 0)
	return &node, nil
}

// Node returns the node with the given ID
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.byID[id]
	if !ok {
		return nil, NodeNotFoundError("Node", id)
	}
	return n, nil
}

// Nodes returns all nodes in listing order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeAt returns the node at the given listing index, or nil
func (g *Graph) NodeAt(i int) *Node {
	if i < 0 || i >= len(g.nodes) {
		return nil
	}
	return g.nodes[i]
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edgeOrder)
}

// key normalizes an endpoint pair so the lower listing index comes first
func (g *Graph) key(a, b string) EdgeKey {
	na, nb := g.byID[a], g.byID[b]
	if na != nil && nb != nil && nb.index < na.index {
		return EdgeKey{A: b, B: a}
	}
	return EdgeKey{A: a, B: b}
}

// AddEdge connects two existing nodes. Adding an existing edge returns it
// unchanged.
func (g *Graph) AddEdge(a, b, direction string) (*Edge, error) {
	if _, ok := g.byID[a]; !ok {
		return nil, NewError("AddEdge").Edge(a, b).Cause(ErrNodeNotFound).Err()
	}
	if _, ok := g.byID[b]; !ok {
		return nil, NewError("AddEdge").Edge(a, b).Cause(ErrNodeNotFound).Err()
	}
	if a == b {
		return nil, NewError("AddEdge").Edge(a, b).Cause(ErrSelfLoop).Err()
	}

	k := g.key(a, b)
	if e, exists := g.edges[k]; exists {
		return e, nil
	}

	e := &Edge{From: k.A, To: k.B, Direction: direction}
	g.edges[k] = e
	g.edgeOrder = append(g.edgeOrder, k)
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
	return e, nil
}

// Edge returns the edge between a and b
func (g *Graph) Edge(a, b string) (*Edge, error) {
	e, ok := g.edges[g.key(a, b)]
	if !ok {
		return nil, NewError("Edge").Edge(a, b).Cause(ErrEdgeNotFound).Err()
	}
	return e, nil
}

// HasEdge reports whether a and b are adjacent
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[g.key(a, b)]
	return ok
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		out = append(out, g.edges[k])
	}
	return out
}

// SetEdgeDirection sets the cosmetic direction attribute on every edge
func (g *Graph) SetEdgeDirection(direction string) {
	for _, e := range g.edges {
		e.Direction = direction
	}
}

// Neighbors returns the neighbors of a node in edge insertion order
func (g *Graph) Neighbors(id string) []string {
	adj := g.adjacency[id]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

// Degree returns the number of edges incident on a node
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// MarkNodeBuilt flips a node to NodeBuilt
func (g *Graph) MarkNodeBuilt(id string) error {
	n, ok := g.byID[id]
	if !ok {
		return NodeNotFoundError("MarkNodeBuilt", id)
	}
	n.state = NodeBuilt
	return nil
}

// PipeBuilt reports whether the pipe segment between a and b has been laid
func (g *Graph) PipeBuilt(a, b string) bool {
	return g.pipes[g.key(a, b)]
}

// MarkPipeBuilt records the pipe segment between a and b as laid
func (g *Graph) MarkPipeBuilt(a, b string) {
	g.pipes[g.key(a, b)] = true
}

// RingSegmentBuilt reports whether the ring segment running from -> to has
// been laid. Unlike PipeBuilt the pair is ordered.
func (g *Graph) RingSegmentBuilt(from, to string) bool {
	return g.ring[EdgeKey{A: from, B: to}]
}

// MarkRingSegmentBuilt records the ring segment from -> to as laid. The
// unordered pipe state is marked as well.
func (g *Graph) MarkRingSegmentBuilt(from, to string) {
	g.ring[EdgeKey{A: from, B: to}] = true
	g.MarkPipeBuilt(from, to)
}

// EdgeState returns the build state of the edge between a and b
func (g *Graph) EdgeState(a, b string) EdgeState {
	if g.PipeBuilt(a, b) {
		return EdgeBuilt
	}
	return EdgeUnbuilt
}

// Ports returns the graph's port table
func (g *Graph) Ports() *PortTable {
	return g.ports
}

// Reset clears all compiler-managed state so the graph can be compiled again
func (g *Graph) Reset() {
	for _, n := range g.nodes {
		n.state = NodeUnvisited
	}
	g.pipes = make(map[EdgeKey]bool)
	g.ring = make(map[EdgeKey]bool)
	g.ports = NewPortTable()
}
