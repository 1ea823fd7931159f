// Package tree generates spanning-tree topologies from Prüfer sequences.
package tree

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dd0wney/heatnet/pkg/algorithms"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// EdgeDirection is the cosmetic direction attribute set on generated edges
const EdgeDirection = "a"

var (
	ErrInvalidSequenceLength = errors.New("invalid sequence length")
	ErrVertexIndexOutOfRange = errors.New("vertex index out of range")
	ErrNotATree              = errors.New("graph is not a tree")
)

// Validate checks that seq is a Prüfer sequence for n vertices: n-2
// elements, each a vertex index in [0, n), i.e. 0 through n-1.
func Validate(n int, seq []int) error {
	if len(seq) != n-2 {
		return fmt.Errorf("%w: got %d, want %d for %d vertices", ErrInvalidSequenceLength, len(seq), n-2, n)
	}
	for i, v := range seq {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: seq[%d] = %d, want [0, %d)", ErrVertexIndexOutOfRange, i, v, n)
		}
	}
	return nil
}

// Decode returns the n-1 edges, as vertex index pairs, of the tree encoded
// by seq. At each step the head of the remaining sequence is joined to the
// smallest vertex that no longer appears in it; the last two vertices are
// joined at the end.
func Decode(n int, seq []int) ([][2]int, error) {
	if err := Validate(n, seq); err != nil {
		return nil, err
	}

	// occurrences of each vertex in the unconsumed sequence
	pending := make([]int, n)
	for _, v := range seq {
		pending[v]++
	}
	removed := make([]bool, n)

	edges := make([][2]int, 0, n-1)
	for _, head := range seq {
		leaf := 0
		for removed[leaf] || pending[leaf] > 0 {
			leaf++
		}
		edges = append(edges, [2]int{head, leaf})
		removed[leaf] = true
		pending[head]--
	}

	last := make([]int, 0, 2)
	for v := 0; v < n && len(last) < 2; v++ {
		if !removed[v] {
			last = append(last, v)
		}
	}
	edges = append(edges, [2]int{last[0], last[1]})

	return edges, nil
}

// Build adds to g the edges of the tree encoded by seq, mapping vertex
// index i to the i-th node in listing order. g is meant to be edgeless;
// nothing is added when seq is invalid.
func Build(g *topology.Graph, seq []int) error {
	edges, err := Decode(g.NodeCount(), seq)
	if err != nil {
		return err
	}

	for _, e := range edges {
		from, to := g.NodeAt(e[0]), g.NodeAt(e[1])
		if _, err := g.AddEdge(from.ID, to.ID, EdgeDirection); err != nil {
			return fmt.Errorf("add tree edge %d-%d: %w", e[0], e[1], err)
		}
	}
	g.SetEdgeDirection(EdgeDirection)

	return nil
}

// Encode returns the Prüfer sequence of a tree graph, using listing indices
// as vertex labels.
func Encode(g *topology.Graph) ([]int, error) {
	n := g.NodeCount()
	if n < 2 || !algorithms.IsTree(g) {
		return nil, fmt.Errorf("%w: %d nodes, %d edges", ErrNotATree, n, g.EdgeCount())
	}

	degree := make([]int, n)
	adj := make([][]int, n)
	for _, e := range g.Edges() {
		a, _ := g.Node(e.From)
		b, _ := g.Node(e.To)
		adj[a.Index()] = append(adj[a.Index()], b.Index())
		adj[b.Index()] = append(adj[b.Index()], a.Index())
		degree[a.Index()]++
		degree[b.Index()]++
	}

	removed := make([]bool, n)
	seq := make([]int, 0, n-2)
	for step := 0; step < n-2; step++ {
		leaf := -1
		for v := 0; v < n; v++ {
			if !removed[v] && degree[v] == 1 {
				leaf = v
				break
			}
		}
		if leaf < 0 {
			return nil, fmt.Errorf("%w: no leaf left at step %d", ErrNotATree, step)
		}

		for _, u := range adj[leaf] {
			if !removed[u] {
				seq = append(seq, u)
				degree[u]--
				break
			}
		}
		removed[leaf] = true
		degree[leaf] = 0
	}

	return seq, nil
}

// Random returns a uniformly distributed Prüfer sequence for n vertices
func Random(n int, rng *rand.Rand) []int {
	if n < 2 {
		return nil
	}
	seq := make([]int, n-2)
	for i := range seq {
		seq[i] = rng.Intn(n)
	}
	return seq
}
