package vm

import (
	"fmt"

	"wisp/types"
)

// executeBinary pops b then a and applies a binary arithmetic opcode
func (vm *VM) executeBinary(op OpCode) error {
	b := vm.Pop()
	a := vm.Pop()

	var result types.Value
	var err error
	switch op {
	case OP_ADD:
		result, err = types.Add(a, b)
	case OP_SUB:
		result, err = types.Sub(a, b)
	case OP_MUL:
		result, err = types.Mul(a, b)
	case OP_DIV:
		result, err = types.Div(a, b)
	case OP_MOD:
		result, err = types.Mod(a, b)
	default:
		err = fmt.Errorf("not a binary opcode: %s", op)
	}
	if err != nil {
		return err
	}
	vm.Push(result)
	return nil
}

// executeUnary pops a and applies a sign opcode
func (vm *VM) executeUnary(op OpCode) error {
	a := vm.Pop()

	var result types.Value
	var err error
	switch op {
	case OP_NEG:
		result, err = types.Neg(a)
	case OP_POS:
		result, err = types.Pos(a)
	default:
		err = fmt.Errorf("not a unary opcode: %s", op)
	}
	if err != nil {
		return err
	}
	vm.Push(result)
	return nil
}

// executeCompare pops b then a and pushes the two-operand comparison result
// as 1 or 0. Equality is deep; ordering is numeric or lexicographic.
func (vm *VM) executeCompare(op OpCode) error {
	b := vm.Pop()
	a := vm.Pop()

	var truth bool
	switch op {
	case OP_EQ:
		truth = a.Equal(b)
	case OP_NE:
		truth = !a.Equal(b)
	default:
		ord, err := types.Compare(a, b)
		if err != nil {
			return err
		}
		switch op {
		case OP_LT:
			truth = ord < 0
		case OP_LE:
			truth = ord <= 0
		case OP_GT:
			truth = ord > 0
		case OP_GE:
			truth = ord >= 0
		default:
			return fmt.Errorf("not a comparison opcode: %s", op)
		}
	}

	if truth {
		vm.Push(types.NewInt(1))
	} else {
		vm.Push(types.NewInt(0))
	}
	return nil
}
