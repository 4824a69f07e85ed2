// Package interp drives the full pipeline for one expression at a time:
// read, compile, and install or evaluate the resulting code unit against a
// persistent global environment and macro table.
package interp

import (
	"fmt"

	"wisp/builtins"
	"wisp/parser"
	"wisp/types"
	"wisp/vm"
)

// Interp is a single-threaded evaluation session. The environment and
// macro table persist across Eval calls and are mutated only after a
// successful compile, so a failed expression never leaves a partial
// installation behind.
type Interp struct {
	Env    *vm.Environment
	Macros *vm.MacroTable
}

// New creates a session with the standard builtins and host modules seeded
func New() *Interp {
	env := vm.NewEnvironment()
	builtins.NewRegistry().Install(env)
	return &Interp{
		Env:    env,
		Macros: vm.NewMacroTable(),
	}
}

// Compile reads one expression from source text and lowers it to a code
// unit without evaluating or installing anything.
func (in *Interp) Compile(src string) (*vm.CodeUnit, error) {
	node, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return vm.NewCompiler(in.Env, in.Macros).Compile(node)
}

// Eval compiles one expression and acts on the unit's kind: functions and
// assignments install into the environment, macros register in the macro
// table, and bare expressions evaluate for their value. A top-level
// expression containing a yield evaluates to a generator instead of
// running.
func (in *Interp) Eval(src string) (types.Value, error) {
	unit, err := in.Compile(src)
	if err != nil {
		return nil, err
	}

	switch unit.Kind {
	case vm.UnitAssignment:
		val, err := vm.New(in.Env).Run(unit)
		if err != nil {
			return nil, err
		}
		in.Env.Define(unit.Name, val)
		return val, nil

	case vm.UnitFunction:
		callable := vm.NewCallable(unit, in.Env)
		in.Env.Define(unit.Name, callable)
		return types.Nothing, nil

	case vm.UnitMacro:
		in.Macros.Register(unit.Name, vm.NewCallable(unit, in.Env))
		return types.Nothing, nil

	default:
		if unit.IsGenerator {
			return vm.NewToplevelGenerator(unit, in.Env), nil
		}
		return vm.New(in.Env).Run(unit)
	}
}

// Call invokes a named global function with evaluated arguments
func (in *Interp) Call(name string, args []types.Value) (types.Value, error) {
	fn, ok := in.Env.Get(name)
	if !ok {
		return nil, fmt.Errorf("name %q is not defined", name)
	}
	return vm.New(in.Env).CallValue(fn, args)
}
