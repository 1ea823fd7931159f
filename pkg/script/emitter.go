// Package script renders component declarations, connection statements and
// whole models in the simulator's modeling language.
package script

import (
	"strconv"
	"strings"

	"github.com/dd0wney/heatnet/pkg/catalog"
	"github.com/dd0wney/heatnet/pkg/topology"
)

// Option is the single optional instance parameter. The implementations are
// mutually exclusive: PortCount, SegmentLength and DrivingSignal.
type Option interface {
	modifier() string
}

// PortCount declares a multi-port source or sink with n ports
type PortCount int

func (n PortCount) modifier() string { return "nPorts=" + strconv.Itoa(int(n)) }

// SegmentLength declares a pipe with the given physical length
type SegmentLength float64

func (l SegmentLength) modifier() string { return "length=" + FormatNumber(float64(l)) }

// DrivingSignal declares an input block whose output tracks the given reference
type DrivingSignal string

func (s DrivingSignal) modifier() string { return "y=" + string(s) }

// Emitter renders declarations using a component catalog for default modifiers
type Emitter struct {
	catalog *catalog.Catalog
}

// NewEmitter creates an emitter over c; nil selects the built-in catalog
func NewEmitter(c *catalog.Catalog) *Emitter {
	if c == nil {
		c = catalog.Default()
	}
	return &Emitter{catalog: c}
}

// Catalog returns the catalog used by the emitter
func (e *Emitter) Catalog() *catalog.Catalog {
	return e.catalog
}

// EmitInstance renders one component declaration. Modifiers are the catalog
// defaults for t, then params, then the option. The only error is a catalog
// miss.
func (e *Emitter) EmitInstance(name string, t catalog.ComponentType, pos topology.Position, opt Option, params ...string) (string, error) {
	mods, err := e.catalog.Modifiers(t)
	if err != nil {
		return "", err
	}
	mods = append(mods, params...)
	if opt != nil {
		mods = append(mods, opt.modifier())
	}

	var b strings.Builder
	b.WriteString(t.ClassName())
	b.WriteByte(' ')
	b.WriteString(name)
	if len(mods) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(mods, ", "))
		b.WriteByte(')')
	}
	b.WriteString(" annotation (Placement(transformation(extent={{-10,-10},{10,10}}, origin={")
	b.WriteString(FormatNumber(pos.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(pos.Y))
	b.WriteString("})));")
	return b.String(), nil
}

// FormatNumber renders v in its shortest exact decimal form
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
