package builtins

import (
	"fmt"
	"math"

	"wisp/types"
)

func mathModule() *types.ModuleValue {
	return types.NewModule("math", map[string]types.Value{
		"pi":    types.NewFloat(math.Pi),
		"e":     types.NewFloat(math.E),
		"abs":   fn("abs", mathAbs),
		"sqrt":  fn("sqrt", mathFloat1("sqrt", math.Sqrt)),
		"pow":   fn("pow", mathPow),
		"floor": fn("floor", mathFloat1("floor", math.Floor)),
		"ceil":  fn("ceil", mathFloat1("ceil", math.Ceil)),
		"sin":   fn("sin", mathFloat1("sin", math.Sin)),
		"cos":   fn("cos", mathFloat1("cos", math.Cos)),
		"tan":   fn("tan", mathFloat1("tan", math.Tan)),
		"log":   fn("log", mathFloat1("log", math.Log)),
		"min":   fn("min", mathMin),
		"max":   fn("max", mathMax),
	})
}

// mathAbs returns absolute value, preserving int/float
// abs(number) -> int|float
func mathAbs(args []types.Value) (types.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("abs takes 1 argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case types.IntValue:
		if v.Val < 0 {
			return types.NewInt(-v.Val), nil
		}
		return v, nil
	case types.FloatValue:
		return types.NewFloat(math.Abs(v.Val)), nil
	default:
		return nil, fmt.Errorf("abs requires a number, got %s", args[0].Type())
	}
}

// mathFloat1 adapts a one-argument float function
func mathFloat1(name string, f func(float64) float64) types.BuiltinFunc {
	return func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument (%d given)", name, len(args))
		}
		x, err := asFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return types.NewFloat(f(x)), nil
	}
}

// mathPow raises base to exponent
// pow(base, exp) -> float
func mathPow(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow takes 2 arguments (%d given)", len(args))
	}
	base, err := asFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	return types.NewFloat(math.Pow(base, exp)), nil
}

// mathMin returns the smallest argument
// min(num1, num2, ...) -> int|float
func mathMin(args []types.Value) (types.Value, error) {
	return extremum("min", args, func(ord int) bool { return ord < 0 })
}

// mathMax returns the largest argument
// max(num1, num2, ...) -> int|float
func mathMax(args []types.Value) (types.Value, error) {
	return extremum("max", args, func(ord int) bool { return ord > 0 })
}

func extremum(name string, args []types.Value, better func(int) bool) (types.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s requires at least one argument", name)
	}
	best := args[0]
	for _, arg := range args[1:] {
		ord, err := types.Compare(arg, best)
		if err != nil {
			return nil, err
		}
		if better(ord) {
			best = arg
		}
	}
	return best, nil
}

func asFloat(name string, v types.Value) (float64, error) {
	switch n := v.(type) {
	case types.IntValue:
		return float64(n.Val), nil
	case types.FloatValue:
		return n.Val, nil
	default:
		return 0, fmt.Errorf("%s requires a number, got %s", name, v.Type())
	}
}
