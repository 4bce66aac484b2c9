package interp

// cell is one named storage slot. Arr is non-nil for fixed arrays; the
// length never changes after declaration.
type cell struct {
	typ string // declared C++ element type
	val Value
	arr []Value
}

// Scope is a lexical environment. Lookup walks parent scopes; Define
// always writes into the innermost one.
type Scope struct {
	parent *Scope
	vars   map[string]*cell
}

// NewScope returns a scope nested inside parent. A nil parent makes a
// global scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*cell)}
}

func (s *Scope) define(name string, c *cell) {
	s.vars[name] = c
}

func (s *Scope) lookup(name string) (*cell, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.vars[name]; ok {
			return c, true
		}
	}
	return nil, false
}
