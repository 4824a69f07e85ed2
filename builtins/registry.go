package builtins

import (
	"wisp/types"
	"wisp/vm"
)

// Registry holds the host-provided builtin functions seeded into a fresh
// global environment.
type Registry struct {
	funcs map[string]types.BuiltinFunc
}

// NewRegistry creates a registry with every standard builtin registered
func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]types.BuiltinFunc),
	}

	// Variadic arithmetic operators
	r.Register("+", builtinAdd)
	r.Register("-", builtinSub)
	r.Register("*", builtinMul)
	r.Register("/", builtinDiv)
	r.Register("%", builtinMod)

	// Core builtins
	r.Register("print", builtinPrint)
	r.Register("list", builtinList)
	r.Register("len", builtinLen)
	r.Register("next", builtinNext)

	return r
}

// Register installs a builtin function under a name
func (r *Registry) Register(name string, fn types.BuiltinFunc) {
	r.funcs[name] = fn
}

// Install seeds a global environment with every registered builtin and
// wires the importable host modules into its loader.
func (r *Registry) Install(env *vm.Environment) {
	for name, fn := range r.funcs {
		env.Define(name, types.NewBuiltin(name, fn))
	}
	env.SetLoader(LoadModule)
}
