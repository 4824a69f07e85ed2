package vm

import "wisp/types"

// Callable is a compiled unit assembled into a host-callable value bound to
// the global environment. Invoking it runs the unit's instruction stream;
// if the unit is a generator, invoking it instead produces a resumable
// Generator over a fresh machine.
type Callable struct {
	Name string
	Unit *CodeUnit
	Env  *Environment
}

// NewCallable binds a completed unit to the global environment. No further
// validation happens here; a malformed instruction stream is the compiler's
// fault and is caught by compiler tests, not at runtime.
func NewCallable(unit *CodeUnit, env *Environment) *Callable {
	return &Callable{
		Name: unit.Name,
		Unit: unit,
		Env:  env,
	}
}

// Arity returns the declared parameter count
func (c *Callable) Arity() int {
	return len(c.Unit.Params)
}

// Type returns the type code for compiled functions
func (c *Callable) Type() types.TypeCode {
	return types.TYPE_FUNC
}

// String returns the literal representation
func (c *Callable) String() string {
	if c.Name == "" {
		return "<function>"
	}
	return "<function " + c.Name + ">"
}

// Equal checks equality by identity
func (c *Callable) Equal(other types.Value) bool {
	o, ok := other.(*Callable)
	return ok && c == o
}

// Truthy is always true for functions
func (c *Callable) Truthy() bool {
	return true
}
