package script

import (
	"io"
	"strings"

	"github.com/dd0wney/heatnet/pkg/topology"
)

// Section groups declarations in the rendered model
type Section int

const (
	SectionSources Section = iota
	SectionSubstations
	SectionPipes
	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionSources:
		return "Sources"
	case SectionSubstations:
		return "Substations"
	case SectionPipes:
		return "Pipes"
	default:
		return "Unknown"
	}
}

// Sections lists the declaration sections in render order
func Sections() []Section {
	return []Section{SectionSources, SectionSubstations, SectionPipes}
}

// Connection joins two port references
type Connection struct {
	From   string
	To     string
	Points []topology.Position
}

// Connect builds a connection; points feed the display annotation
func Connect(from, to string, points ...topology.Position) Connection {
	return Connection{From: from, To: to, Points: points}
}

func (c Connection) String() string {
	var b strings.Builder
	b.WriteString("connect(")
	b.WriteString(c.From)
	b.WriteString(", ")
	b.WriteString(c.To)
	b.WriteByte(')')
	if len(c.Points) > 0 {
		b.WriteString(" annotation (Line(points={")
		for i, p := range c.Points {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString("{" + FormatNumber(p.X) + "," + FormatNumber(p.Y) + "}")
		}
		b.WriteString("}, color={0,127,255}))")
	}
	b.WriteByte(';')
	return b.String()
}

// equation line: either a comment or a connection
type statement struct {
	comment string
	conn    Connection
}

// Model accumulates declarations and connections for one generated model
type Model struct {
	Name    string
	BuildID string

	declarations [sectionCount][]string
	equations    []statement
	connections  int
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// Declare appends declarations to a section
func (m *Model) Declare(section Section, decls ...string) {
	m.declarations[section] = append(m.declarations[section], decls...)
}

// Connect appends connection statements
func (m *Model) Connect(conns ...Connection) {
	for _, c := range conns {
		m.equations = append(m.equations, statement{conn: c})
	}
	m.connections += len(conns)
}

// Comment appends a comment line to the equation section
func (m *Model) Comment(text string) {
	m.equations = append(m.equations, statement{comment: text})
}

// Declarations returns the declarations of a section
func (m *Model) Declarations(section Section) []string {
	return m.declarations[section]
}

// Connections returns every connection in emission order
func (m *Model) Connections() []Connection {
	out := make([]Connection, 0, m.connections)
	for _, s := range m.equations {
		if s.comment == "" {
			out = append(out, s.conn)
		}
	}
	return out
}

// InstanceCount returns the number of declarations across all sections
func (m *Model) InstanceCount() int {
	total := 0
	for _, decls := range m.declarations {
		total += len(decls)
	}
	return total
}

// ConnectionCount returns the number of connection statements
func (m *Model) ConnectionCount() int {
	return m.connections
}

// Empty reports whether the model has no declarations and no connections
func (m *Model) Empty() bool {
	return m.InstanceCount() == 0 && m.connections == 0
}

// String renders the model text
func (m *Model) String() string {
	var b strings.Builder
	m.WriteTo(&b)
	return b.String()
}

// WriteTo renders the model text to w
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	b.WriteString("model " + m.Name + "\n")
	if m.BuildID != "" {
		b.WriteString("  // build " + m.BuildID + "\n")
	}

	for _, section := range Sections() {
		decls := m.declarations[section]
		if len(decls) == 0 {
			continue
		}
		b.WriteString("\n  // " + section.String() + "\n")
		for _, d := range decls {
			b.WriteString("  " + d + "\n")
		}
	}

	b.WriteString("\nequation\n")
	for _, s := range m.equations {
		if s.comment != "" {
			b.WriteString("\n  // " + s.comment + "\n")
			continue
		}
		b.WriteString("  " + s.conn.String() + "\n")
	}
	b.WriteString("end " + m.Name + ";\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
