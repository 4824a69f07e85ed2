package types

import "fmt"

// Numeric operations over values with int/float promotion. These are shared
// by the VM's arithmetic opcodes and the variadic built-in operators so the
// two agree on semantics. Two integers stay in int64 end to end; float64 is
// only entered for mixed or float operands, so large integers keep full
// precision.

func intPair(a, b Value) (int64, int64, bool) {
	ai, aok := a.(IntValue)
	bi, bok := b.(IntValue)
	if !aok || !bok {
		return 0, 0, false
	}
	return ai.Val, bi.Val, true
}

func floatPair(a, b Value) (float64, float64, error) {
	af, aok := asArithFloat(a)
	bf, bok := asArithFloat(b)
	if !aok || !bok {
		return 0, 0, fmt.Errorf("type mismatch: %s and %s are not numeric", a.Type(), b.Type())
	}
	return af, bf, nil
}

func asArithFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntValue:
		return float64(n.Val), true
	case FloatValue:
		return n.Val, true
	}
	return 0, false
}

// Add adds two numbers, concatenates two strings, or concatenates two lists
func Add(a, b Value) (Value, error) {
	if as, ok := a.(StrValue); ok {
		if bs, ok := b.(StrValue); ok {
			return NewStr(as.Value() + bs.Value()), nil
		}
	}
	if al, ok := a.(ListValue); ok {
		if bl, ok := b.(ListValue); ok {
			elems := make([]Value, 0, al.Len()+bl.Len())
			elems = append(elems, al.Elements()...)
			elems = append(elems, bl.Elements()...)
			return NewList(elems), nil
		}
	}
	if ai, bi, ok := intPair(a, b); ok {
		return NewInt(ai + bi), nil
	}
	af, bf, err := floatPair(a, b)
	if err != nil {
		return nil, err
	}
	return NewFloat(af + bf), nil
}

// Sub subtracts b from a
func Sub(a, b Value) (Value, error) {
	if ai, bi, ok := intPair(a, b); ok {
		return NewInt(ai - bi), nil
	}
	af, bf, err := floatPair(a, b)
	if err != nil {
		return nil, err
	}
	return NewFloat(af - bf), nil
}

// Mul multiplies two numbers
func Mul(a, b Value) (Value, error) {
	if ai, bi, ok := intPair(a, b); ok {
		return NewInt(ai * bi), nil
	}
	af, bf, err := floatPair(a, b)
	if err != nil {
		return nil, err
	}
	return NewFloat(af * bf), nil
}

// Div divides a by b. Integer operands use truncating integer division.
func Div(a, b Value) (Value, error) {
	if ai, bi, ok := intPair(a, b); ok {
		if bi == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return NewInt(ai / bi), nil
	}
	af, bf, err := floatPair(a, b)
	if err != nil {
		return nil, err
	}
	if bf == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return NewFloat(af / bf), nil
}

// Mod computes a modulo b on integers
func Mod(a, b Value) (Value, error) {
	ai, bi, ok := intPair(a, b)
	if !ok {
		return nil, fmt.Errorf("type mismatch: %% requires integers, got %s and %s", a.Type(), b.Type())
	}
	if bi == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return NewInt(ai % bi), nil
}

// Neg negates a number
func Neg(a Value) (Value, error) {
	switch v := a.(type) {
	case IntValue:
		return NewInt(-v.Val), nil
	case FloatValue:
		return NewFloat(-v.Val), nil
	}
	return nil, fmt.Errorf("type mismatch: cannot negate %s", a.Type())
}

// Pos is the unary plus: identity on numbers
func Pos(a Value) (Value, error) {
	switch a.(type) {
	case IntValue, FloatValue:
		return a, nil
	}
	return nil, fmt.Errorf("type mismatch: unary + requires a number, got %s", a.Type())
}

// Compare orders two values: -1, 0, or 1. Numbers compare numerically,
// strings lexicographically. Anything else is a type error.
func Compare(a, b Value) (int, error) {
	if as, ok := a.(StrValue); ok {
		if bs, ok := b.(StrValue); ok {
			switch {
			case as.Value() < bs.Value():
				return -1, nil
			case as.Value() > bs.Value():
				return 1, nil
			}
			return 0, nil
		}
	}
	if ai, bi, ok := intPair(a, b); ok {
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		}
		return 0, nil
	}
	af, bf, err := floatPair(a, b)
	if err != nil {
		return 0, fmt.Errorf("type mismatch: cannot order %s and %s", a.Type(), b.Type())
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}
