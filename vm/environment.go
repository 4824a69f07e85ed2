package vm

import "wisp/types"

// ModuleLoader resolves a module name for an import form. Loading is the
// host's responsibility; the VM only requests it.
type ModuleLoader func(name string) (types.Value, bool)

// Environment is the process-wide mapping from symbol to runtime value:
// built-in operators, user definitions, and imported modules. It is empty at
// startup and seeded by the host; mutation happens only between discrete
// top-level compile-and-install steps.
type Environment struct {
	vars   map[string]types.Value
	loader ModuleLoader
}

// NewEnvironment creates an empty global environment
func NewEnvironment() *Environment {
	return &Environment{
		vars: make(map[string]types.Value),
	}
}

// SetLoader installs the host's module loader
func (e *Environment) SetLoader(loader ModuleLoader) {
	e.loader = loader
}

// Get looks up a global by name
func (e *Environment) Get(name string) (types.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Define binds a global, creating or replacing it
func (e *Environment) Define(name string, value types.Value) {
	e.vars[name] = value
}

// Import asks the host loader for a module and binds it under its own name,
// unconditionally at global scope.
func (e *Environment) Import(name string) (types.Value, bool) {
	if e.loader == nil {
		return nil, false
	}
	mod, ok := e.loader(name)
	if !ok {
		return nil, false
	}
	e.vars[name] = mod
	return mod, true
}
