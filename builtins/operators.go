package builtins

import (
	"fmt"

	"wisp/types"
)

// The five variadic arithmetic operators. Each left-folds its arguments
// pairwise; the unary forms of - and + apply the sign, and the unary forms
// of / and % are the identity.

// builtinAdd sums all arguments
// (+ a b c ...) -> number|str|list
func builtinAdd(args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("+ requires at least one argument")
	}
	if len(args) == 1 {
		return types.Pos(args[0])
	}
	return foldLeft(args, types.Add)
}

// builtinSub negates a single argument, otherwise left-folds subtraction
// (- a) -> number; (- a b c ...) -> number
func builtinSub(args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("- requires at least one argument")
	}
	if len(args) == 1 {
		return types.Neg(args[0])
	}
	return foldLeft(args, types.Sub)
}

// builtinMul left-folds multiplication
// (* a b c ...) -> number
func builtinMul(args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("* requires at least one argument")
	}
	return foldLeft(args, types.Mul)
}

// builtinDiv is identity for one argument, otherwise left-folds division
// (/ a b c ...) -> number
func builtinDiv(args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("/ requires at least one argument")
	}
	return foldLeft(args, types.Div)
}

// builtinMod is identity for one argument, otherwise left-folds modulo
// (% a b c ...) -> int
func builtinMod(args []types.Value) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%% requires at least one argument")
	}
	return foldLeft(args, types.Mod)
}

func foldLeft(args []types.Value, op func(a, b types.Value) (types.Value, error)) (types.Value, error) {
	acc := args[0]
	for _, arg := range args[1:] {
		var err error
		acc, err = op(acc, arg)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
