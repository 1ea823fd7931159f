// Package config loads network descriptions from YAML files and turns them
// into topology graphs and build configurations.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/compiler"
	"github.com/dd0wney/heatnet/pkg/layout"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
	"github.com/dd0wney/heatnet/pkg/tree"
	"github.com/dd0wney/heatnet/pkg/validation"
)

// Defaults applied to fields a network file leaves out
const (
	DefaultModel = "district"
	DefaultPipes = 2
)

// Network is the on-disk description of a heating network
type Network struct {
	Model    string               `yaml:"model"`
	Source   templates.SourceKind `yaml:"source"`
	Pipes    int                  `yaml:"pipes"`
	Layout   layout.Kind          `yaml:"layout,omitempty"`
	Nodes    []NodeSpec           `yaml:"nodes"`
	Edges    [][]string           `yaml:"edges,omitempty"`
	Sequence []int                `yaml:"sequence,omitempty,flow"`

	// Catalog replaces component defaults, keyed by simulator class path
	Catalog map[string][]string `yaml:"catalog,omitempty"`
}

// NodeSpec describes one node. Pos is [x, y]; nodes without it are placed
// by the network's layout.
type NodeSpec struct {
	ID       string    `yaml:"id"`
	Supply   bool      `yaml:"supply,omitempty"`
	Pos      []float64 `yaml:"pos,omitempty,flow"`
	THeating float64   `yaml:"t_heating,omitempty"`
	TDHW     float64   `yaml:"t_dhw,omitempty"`
}

// Load reads and validates a network file
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network file: %w", err)
	}
	defer f.Close()

	n, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Parse decodes and validates a network document
func Parse(data []byte) (*Network, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one network document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Network, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var n Network
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty network document")
		}
		return nil, fmt.Errorf("failed to parse network: %w", err)
	}

	n.applyDefaults()
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// Encode renders the network as YAML
func (n *Network) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	return enc.Close()
}

func (n *Network) applyDefaults() {
	n.Model = validation.DefaultOr(n.Model, DefaultModel)
	n.Pipes = validation.DefaultOr(n.Pipes, DefaultPipes)
	n.Layout = validation.DefaultOr(n.Layout, layout.KindNone)
}

// Validate checks the whole document and reports every problem found
func (n *Network) Validate() error {
	cv := validation.NewConfigValidator("network")
	cv.Identifier("model", n.Model).
		RangeInt("pipes", n.Pipes, 1, 3).
		Custom("source", func() error {
			if !n.Source.Valid() {
				return fmt.Errorf("%w: %q", templates.ErrUnknownSourceKind, n.Source.String())
			}
			return nil
		}).
		OneOf("layout", string(n.Layout), layout.Kinds()).
		Positive("nodes", len(n.Nodes))

	ids := make([]string, len(n.Nodes))
	known := make(map[string]bool, len(n.Nodes))
	for i, node := range n.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		ids[i] = node.ID
		known[node.ID] = true

		cv.Identifier(field+".id", node.ID).
			NonNegativeFloat(field+".t_heating", node.THeating).
			NonNegativeFloat(field+".t_dhw", node.TDHW).
			When(node.Pos != nil, func(v *validation.ConfigValidator) {
				v.RangeInt(field+".pos", len(node.Pos), 2, 2)
			})
	}
	cv.Unique("nodes", ids)

	for i, e := range n.Edges {
		field := fmt.Sprintf("edges[%d]", i)
		if len(e) != 2 {
			cv.RangeInt(field, len(e), 2, 2)
			continue
		}
		cv.Custom(field, func() error {
			for _, id := range e {
				if !known[id] {
					return fmt.Errorf("%w: %q", topology.ErrNodeNotFound, id)
				}
			}
			if e[0] == e[1] {
				return topology.ErrSelfLoop
			}
			return nil
		})
	}

	cv.When(n.Sequence != nil, func(v *validation.ConfigValidator) {
		v.Custom("sequence", func() error {
			if len(n.Edges) > 0 {
				return errors.New("edges and sequence are mutually exclusive")
			}
			return tree.Validate(len(n.Nodes), n.Sequence)
		})
	})

	cv.When(len(n.Catalog) > 0, func(v *validation.ConfigValidator) {
		v.Custom("catalog", func() error {
			_, err := catalog.Default().WithOverrides(n.Catalog)
			return err
		})
	})

	return cv.Validate()
}

// BuildConfig returns the compiler configuration of the network
func (n *Network) BuildConfig() compiler.BuildConfig {
	return compiler.BuildConfig{ModelName: n.Model, Source: n.Source, Pipes: n.Pipes}
}

// ComponentCatalog returns the built-in catalog with the network's overrides
func (n *Network) ComponentCatalog() (*catalog.Catalog, error) {
	if len(n.Catalog) == 0 {
		return catalog.Default(), nil
	}
	return catalog.Default().WithOverrides(n.Catalog)
}

// Graph builds a fresh topology graph: nodes in file order, then either the
// listed edges or the tree decoded from the sequence. Nodes without a
// position are placed by the layout.
func (n *Network) Graph() (*topology.Graph, error) {
	g := topology.New()
	unplaced := make([]string, 0)

	for _, spec := range n.Nodes {
		node := topology.Node{
			ID:            spec.ID,
			SupplyHeating: spec.Supply,
			THeating:      spec.THeating,
			TDHW:          spec.TDHW,
		}
		if len(spec.Pos) == 2 {
			node.Pos = topology.Position{X: spec.Pos[0], Y: spec.Pos[1]}
		} else {
			unplaced = append(unplaced, spec.ID)
		}
		if _, err := g.AddNode(node); err != nil {
			return nil, err
		}
	}

	if n.Sequence != nil {
		if err := tree.Build(g, n.Sequence); err != nil {
			return nil, err
		}
	}
	for _, e := range n.Edges {
		if _, err := g.AddEdge(e[0], e[1], ""); err != nil {
			return nil, err
		}
	}

	l, err := layout.New(n.Layout, nil)
	if err != nil {
		return nil, err
	}
	if err := layout.Apply(g, l, unplaced); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return g, nil
}

// WithSequence returns a copy of the network whose topology is the tree
// encoded by seq, named model
func (n *Network) WithSequence(model string, seq []int) *Network {
	cp := *n
	cp.Model = model
	cp.Edges = nil
	cp.Sequence = append([]int(nil), seq...)
	return &cp
}
