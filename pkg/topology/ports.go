package topology

import "strconv"

// PortRef is a textual handle on a connectable terminal, optionally indexed
// for multi-port components (e.g. prod_supply_S.ports[2]).
type PortRef struct {
	Base  string
	Index int // 1-based; 0 for single ports
}

// String renders the reference as it appears in connect statements
func (r PortRef) String() string {
	if r.Index == 0 {
		return r.Base
	}
	return r.Base + "[" + strconv.Itoa(r.Index) + "]"
}

// PortKey identifies the free port of a node in one direction
type PortKey struct {
	Node string
	Dir  Direction
}

type portEntry struct {
	base     string
	next     int // next free index, multi-ports only
	capacity int // 0 for single ports
}

func (e *portEntry) multi() bool {
	return e.capacity > 0
}

func (e *portEntry) remaining() int {
	if !e.multi() {
		return 0
	}
	return e.capacity - e.next + 1
}

// PortTable maps (node, direction) to the reference that the next incident
// connection should use. A missing entry means "no connection": the caller
// skips the statement instead of failing.
type PortTable struct {
	entries map[PortKey]*portEntry
}

// NewPortTable creates an empty port table
func NewPortTable() *PortTable {
	return &PortTable{entries: make(map[PortKey]*portEntry)}
}

// Bind sets a single-port reference
func (t *PortTable) Bind(node string, dir Direction, base string) {
	t.entries[PortKey{node, dir}] = &portEntry{base: base}
}

// BindMulti sets a multi-port reference with the given number of ports.
// A capacity below 1 binds a single port.
func (t *PortTable) BindMulti(node string, dir Direction, base string, capacity int) {
	if capacity < 1 {
		t.Bind(node, dir, base)
		return
	}
	t.entries[PortKey{node, dir}] = &portEntry{base: base, next: 1, capacity: capacity}
}

// Take returns the reference to connect to. Multi-port entries hand out the
// next index and advance; single ports are returned as is. ok is false when
// nothing is bound or every indexed port has been handed out.
func (t *PortTable) Take(node string, dir Direction) (PortRef, bool) {
	ref, ok := t.Peek(node, dir)
	if ok && ref.Index > 0 {
		t.entries[PortKey{node, dir}].next++
	}
	return ref, ok
}

// Rebind points a node's port at a freshly laid pipe so later connections
// chain onto it. A multi-port with free ports left keeps its entry.
func (t *PortTable) Rebind(node string, dir Direction, base string) {
	if e, exists := t.entries[PortKey{node, dir}]; exists && e.remaining() > 0 {
		return
	}
	t.Bind(node, dir, base)
}

// Peek returns the reference Take would return without consuming it
func (t *PortTable) Peek(node string, dir Direction) (PortRef, bool) {
	e, exists := t.entries[PortKey{node, dir}]
	if !exists || e.base == "" {
		return PortRef{}, false
	}
	if !e.multi() {
		return PortRef{Base: e.base}, true
	}
	if e.remaining() <= 0 {
		return PortRef{}, false
	}
	return PortRef{Base: e.base, Index: e.next}, true
}

// Remaining returns the number of unissued indices of a multi-port, 0 otherwise
func (t *PortTable) Remaining(node string, dir Direction) int {
	e, exists := t.entries[PortKey{node, dir}]
	if !exists {
		return 0
	}
	return e.remaining()
}

// Len returns the number of bound entries
func (t *PortTable) Len() int {
	return len(t.entries)
}
