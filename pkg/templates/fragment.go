// Package templates builds the component clusters that realize sources,
// substations and controllers. Builders return text and port bindings and
// never touch the topology graph.
package templates

import (
	"fmt"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/script"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// Setpoints, in °C, of the production controllers
const (
	SupplyTemperature    = 65.0
	LowSupplyTemperature = 50.0
	PreheatTemperature   = 50.0
)

// Kelvin is the offset from °C used by every setpoint constant
const Kelvin = 273.15

// Port is a connectable terminal exposed by a fragment. Capacity > 0 marks a
// multi-port reference indexed as Base[1..Capacity].
type Port struct {
	Dir      topology.Direction
	Base     string
	Capacity int
}

// Fragment is the output of one builder
type Fragment struct {
	Name         string
	Declarations []string
	Connections  []script.Connection
	Ports        []Port
}

// Port returns the terminal bound to dir
func (f Fragment) Port(dir topology.Direction) (Port, bool) {
	for _, p := range f.Ports {
		if p.Dir == dir {
			return p, true
		}
	}
	return Port{}, false
}

// BuildConfig holds the settings shared by every builder
type BuildConfig struct {
	Pipes int
}

// Validate checks the pipe count
func (c BuildConfig) Validate() error {
	if c.Pipes < 1 || c.Pipes > 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidPipeCount, c.Pipes)
	}
	return nil
}

// Library renders component clusters for one build configuration
type Library struct {
	emitter *script.Emitter
	config  BuildConfig
}

// New creates a library; a nil emitter uses the built-in catalog
func New(emitter *script.Emitter, config BuildConfig) (*Library, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if emitter == nil {
		emitter = script.NewEmitter(nil)
	}
	return &Library{emitter: emitter, config: config}, nil
}

// Config returns the build configuration
func (l *Library) Config() BuildConfig {
	return l.config
}

// branches returns the name suffixes of the production branches: the main
// branch and, with three pipes, the low temperature "L" branch.
func (l *Library) branches() []string {
	if l.config.Pipes == 3 {
		return []string{"", "L"}
	}
	return []string{""}
}

// assembler accumulates a fragment and keeps the first emission error
type assembler struct {
	lib  *Library
	frag Fragment
	err  error
}

func (l *Library) assemble(name string) *assembler {
	return &assembler{lib: l, frag: Fragment{Name: name}}
}

func (a *assembler) instance(name string, t catalog.ComponentType, pos topology.Position, opt script.Option, params ...string) string {
	if a.err != nil {
		return name
	}
	decl, err := a.lib.emitter.EmitInstance(name, t, pos, opt, params...)
	if err != nil {
		a.err = fmt.Errorf("emit %s: %w", name, err)
		return name
	}
	a.frag.Declarations = append(a.frag.Declarations, decl)
	return name
}

func (a *assembler) connect(from, to string, points ...topology.Position) {
	a.frag.Connections = append(a.frag.Connections, script.Connect(from, to, points...))
}

func (a *assembler) include(f Fragment, err error) {
	if a.err != nil {
		return
	}
	if err != nil {
		a.err = err
		return
	}
	a.frag.Declarations = append(a.frag.Declarations, f.Declarations...)
	a.frag.Connections = append(a.frag.Connections, f.Connections...)
}

func (a *assembler) bind(dir topology.Direction, base string, capacity int) {
	a.frag.Ports = append(a.frag.Ports, Port{Dir: dir, Base: base, Capacity: capacity})
}

func (a *assembler) result() (Fragment, error) {
	if a.err != nil {
		return Fragment{}, a.err
	}
	return a.frag, nil
}

func at(pos topology.Position, dx, dy float64) topology.Position {
	return topology.Position{X: pos.X + dx, Y: pos.Y + dy}
}

func setpoint(celsius float64) string {
	return "k=" + script.FormatNumber(Kelvin) + "+" + script.FormatNumber(celsius)
}

func indexed(base string, i int) string {
	return topology.PortRef{Base: base, Index: i}.String()
}
