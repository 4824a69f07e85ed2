package vm

import "wisp/types"

// Generator is a suspended invocation of a generator unit. It owns a
// private machine whose frame state (instruction pointer, locals, operand
// stack) persists across Next calls, producing a lazy sequence of the
// yielded values. A generator is not restartable mid-sequence; a fresh call
// to the function builds a fresh one.
type Generator struct {
	name string
	vm   *VM
	done bool
}

// NewGenerator prepares a suspended invocation of a generator callable.
// Nothing runs until the first Next call.
func NewGenerator(c *Callable, args []types.Value) (*Generator, error) {
	m := New(c.Env)
	if err := m.pushCallFrame(c, args); err != nil {
		return nil, err
	}
	return &Generator{name: c.Name, vm: m}, nil
}

// NewToplevelGenerator wraps a bare top-level unit that contains a yield
func NewToplevelGenerator(unit *CodeUnit, env *Environment) *Generator {
	m := New(env)
	m.pushUnitFrame(unit)
	return &Generator{name: unit.Name, vm: m}
}

// Next resumes the generator until its next yield. The second result is
// false once the body has run to completion; the body's final value is not
// part of the sequence.
func (g *Generator) Next() (types.Value, bool, error) {
	if g.done {
		return types.Nothing, false, nil
	}
	val, yielded, err := g.vm.resume()
	if err != nil {
		g.done = true
		return nil, false, err
	}
	if !yielded {
		g.done = true
		return types.Nothing, false, nil
	}
	return val, true, nil
}

// Type returns the type code for generators
func (g *Generator) Type() types.TypeCode {
	return types.TYPE_GENERATOR
}

// String returns the literal representation
func (g *Generator) String() string {
	if g.name == "" {
		return "<generator>"
	}
	return "<generator " + g.name + ">"
}

// Equal checks equality by identity
func (g *Generator) Equal(other types.Value) bool {
	o, ok := other.(*Generator)
	return ok && g == o
}

// Truthy is always true for generators
func (g *Generator) Truthy() bool {
	return true
}
