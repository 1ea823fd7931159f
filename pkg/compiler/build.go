package compiler

import (
	"fmt"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/logging"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/templates"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// build is the state of one Compile call
type build struct {
	*Compiler
	graph *topology.Graph
	model *script.Model
	log   logging.Logger
}

func (b *build) run() error {
	if err := b.traverse(); err != nil {
		return err
	}
	if b.config.Pipes == 1 {
		if err := b.closeRing(); err != nil {
			return err
		}
	}
	if b.metrics != nil {
		b.metrics.RecordPipeLength(b.config.Pipes, PipeLength(b.graph, b.config.Pipes))
	}
	return nil
}

// traverse realizes every node reachable in adjacency order. Under the tree
// schemes it also lays the pipes of each incident edge.
func (b *build) traverse() error {
	for _, node := range b.graph.Nodes() {
		if err := b.realize(node); err != nil {
			return err
		}
		for _, id := range b.graph.Neighbors(node.ID) {
			nb, err := b.graph.Node(id)
			if err != nil {
				return err
			}
			if err := b.realize(nb); err != nil {
				return err
			}
			if b.config.Pipes > 1 && !b.graph.PipeBuilt(node.ID, nb.ID) {
				if err := b.layPipes(node, nb); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// realize instantiates an unbuilt node and binds its ports
func (b *build) realize(node *topology.Node) error {
	if node.Built() {
		return nil
	}

	var (
		frag    templates.Fragment
		section script.Section
		err     error
	)
	if node.SupplyHeating {
		section = script.SectionSources
		frag, err = b.library.Source(b.config.Source, "supply_"+node.ID, node.Pos, b.graph.Degree(node.ID))
	} else {
		section = script.SectionSubstations
		frag, err = b.substation(node)
	}
	if err != nil {
		return topology.NewError("Compile").Node(node.ID).Cause(err).Err()
	}

	b.model.Comment(node.ID)
	b.model.Declare(section, frag.Declarations...)
	b.model.Connect(frag.Connections...)

	ports := b.graph.Ports()
	for _, p := range frag.Ports {
		if p.Capacity > 0 {
			ports.BindMulti(node.ID, p.Dir, p.Base, p.Capacity)
		} else {
			ports.Bind(node.ID, p.Dir, p.Base)
		}
	}

	b.log.Debug("node instantiated",
		logging.Node(node.ID),
		logging.Instances(len(frag.Declarations)),
		logging.Connections(len(frag.Connections)),
	)
	return b.graph.MarkNodeBuilt(node.ID)
}

// substation routes a consumer onto the port sets its demands require
func (b *build) substation(node *topology.Node) (templates.Fragment, error) {
	ring := b.config.Pipes == 1
	heating, dhw := node.THeating, node.TDHW

	if heating != 0 && dhw != 0 {
		return b.library.DualSubstation(node.ID, node.Pos, heating, dhw, ring)
	}

	frag, err := b.library.Substation("SST_"+node.ID, node.Pos, max(heating, dhw), ring)
	if err != nil {
		return frag, err
	}
	// heating-only consumers take the low temperature supply
	if b.config.Pipes == 3 && heating != 0 {
		for i := range frag.Ports {
			if frag.Ports[i].Dir == topology.DirA {
				frag.Ports[i].Dir = topology.DirAL
			}
		}
	}
	return frag, nil
}

// layPipes lays one pipe per direction tag between node and nb and chains
// both endpoints onto it.
func (b *build) layPipes(node, nb *topology.Node) error {
	length := segmentLength(node, nb)
	mid := node.Pos.Midpoint(nb.Pos)
	ports := b.graph.Ports()

	b.model.Comment(node.ID + ", " + nb.ID)
	for _, dir := range topology.Directions(b.config.Pipes) {
		pipe := pipeName(node.ID, nb.ID, dir)
		decl, err := b.emitter.EmitInstance(pipe, catalog.Pipe, mid, script.SegmentLength(length))
		if err != nil {
			return topology.NewError("Compile").Edge(node.ID, nb.ID).Cause(err).Err()
		}
		b.model.Declare(script.SectionPipes, decl)

		if ref, ok := ports.Take(node.ID, dir); ok {
			b.model.Connect(script.Connect(ref.String(), pipe+".port_a", node.Pos, mid))
		} else {
			b.dangling(node.ID, dir)
		}
		ports.Rebind(node.ID, dir, pipe+".port_a")

		if ref, ok := ports.Take(nb.ID, dir); ok {
			b.model.Connect(script.Connect(pipe+".port_b", ref.String(), mid, nb.Pos))
		} else {
			b.dangling(nb.ID, dir)
		}
		ports.Rebind(nb.ID, dir, pipe+".port_b")
	}
	b.graph.MarkPipeBuilt(node.ID, nb.ID)
	return nil
}

// closeRing lays the single ring pipe between consecutive nodes in listing
// order, closing the cycle from the last node back to the first.
func (b *build) closeRing() error {
	nodes := b.graph.Nodes()
	if len(nodes) < 2 {
		return nil
	}
	for i, from := range nodes {
		to := nodes[(i+1)%len(nodes)]
		if b.graph.RingSegmentBuilt(from.ID, to.ID) {
			continue
		}
		if err := b.ringPipe(from, to); err != nil {
			return err
		}
	}
	return nil
}

func (b *build) ringPipe(from, to *topology.Node) error {
	length := segmentLength(from, to)
	mid := from.Pos.Midpoint(to.Pos)
	pipe := pipeName(from.ID, to.ID, "")

	decl, err := b.emitter.EmitInstance(pipe, catalog.Pipe, mid, script.SegmentLength(length))
	if err != nil {
		return topology.NewError("Compile").Edge(from.ID, to.ID).Cause(err).Err()
	}

	b.model.Comment(from.ID + ", " + to.ID)
	b.model.Declare(script.SectionPipes, decl)

	ports := b.graph.Ports()
	out, in := ringOutlet(from), ringInlet(to)
	if ref, ok := ports.Take(from.ID, out); ok {
		b.model.Connect(script.Connect(ref.String(), pipe+".port_a", from.Pos, mid))
	} else {
		b.dangling(from.ID, out)
	}
	if ref, ok := ports.Take(to.ID, in); ok {
		b.model.Connect(script.Connect(pipe+".port_b", ref.String(), mid, to.Pos))
	} else {
		b.dangling(to.ID, in)
	}
	b.graph.MarkRingSegmentBuilt(from.ID, to.ID)
	return nil
}

// ringOutlet is the port water leaves a node by; sources push out of their
// supply side, substations out of their return side.
func ringOutlet(n *topology.Node) topology.Direction {
	if n.SupplyHeating {
		return topology.DirA
	}
	return topology.DirB
}

func ringInlet(n *topology.Node) topology.Direction {
	if n.SupplyHeating {
		return topology.DirB
	}
	return topology.DirA
}

func (b *build) dangling(node string, dir topology.Direction) {
	b.log.Debug("no port to connect", logging.Node(node), logging.String("direction", string(dir)))
	if b.metrics != nil {
		b.metrics.RecordDanglingPort(string(dir))
	}
}

// pipeName is the pipe laid between two nodes in one direction; ring
// segments carry no direction suffix.
func pipeName(from, to string, dir topology.Direction) string {
	if dir == "" {
		return "pipe_" + from + to
	}
	return fmt.Sprintf("pipe_%s%s_%s", from, to, dir)
}
