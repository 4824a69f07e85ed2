package builtins

import (
	"fmt"

	"wisp/types"
)

// builtinPrint writes its arguments to stdout separated by spaces.
// Strings print without their quote delimiters.
// (print a b ...) -> nothing
func builtinPrint(args []types.Value) (types.Value, error) {
	for i, arg := range args {
		if i > 0 {
			fmt.Print(" ")
		}
		if s, ok := arg.(types.StrValue); ok {
			fmt.Print(s.Value())
		} else {
			fmt.Print(arg.String())
		}
	}
	fmt.Println()
	return types.Nothing, nil
}

// builtinList collects its arguments into a list
// (list a b ...) -> list
func builtinList(args []types.Value) (types.Value, error) {
	return types.NewList(args), nil
}

// builtinLen returns the length of a list or string
// (len val) -> int
func builtinLen(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len takes 1 argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case types.ListValue:
		return types.NewInt(int64(v.Len())), nil
	case types.StrValue:
		return types.NewInt(int64(len(v.Value()))), nil
	default:
		return nil, fmt.Errorf("len requires a list or string, got %s", args[0].Type())
	}
}

// builtinNext advances a generator one step, returning the yielded value or
// nothing once the sequence is exhausted.
// (next gen) -> value|nothing
func builtinNext(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("next takes 1 argument (%d given)", len(args))
	}
	it, ok := args[0].(types.Iterator)
	if !ok {
		return nil, fmt.Errorf("next requires a generator, got %s", args[0].Type())
	}
	val, more, err := it.Next()
	if err != nil {
		return nil, err
	}
	if !more {
		return types.Nothing, nil
	}
	return val, nil
}
