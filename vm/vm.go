package vm

import (
	"fmt"

	"wisp/types"
)

// VM is the bytecode virtual machine: an operand stack plus a call stack of
// frames, executing one CodeUnit per frame against a global environment.
type VM struct {
	Stack     []types.Value // Operand stack
	SP        int           // Stack pointer
	Frames    []*Frame      // Call stack
	Env       *Environment  // Global environment
	suspended bool          // Last resume stopped at a yield
}

// Frame is one activation of a code unit
type Frame struct {
	Unit   *CodeUnit
	IP     int
	Base   int // Operand stack base for this frame
	Locals []types.Value
}

// New creates a virtual machine over a global environment
func New(env *Environment) *VM {
	return &VM{
		Stack:  make([]types.Value, 0, 64),
		Frames: make([]*Frame, 0, 8),
		Env:    env,
	}
}

// Run executes a non-generator unit to completion and returns its value
func (vm *VM) Run(unit *CodeUnit) (types.Value, error) {
	vm.pushUnitFrame(unit)
	val, yielded, err := vm.resume()
	if err != nil {
		return nil, err
	}
	if yielded {
		return nil, fmt.Errorf("yield outside of a generator invocation")
	}
	return val, nil
}

// CallValue invokes a callable or builtin value with evaluated arguments.
// Used by the compiler for macro expansion and by the host driver.
func (vm *VM) CallValue(fn types.Value, args []types.Value) (types.Value, error) {
	switch f := fn.(type) {
	case types.BuiltinValue:
		return f.Fn(args)
	case *Callable:
		if f.Unit.IsGenerator {
			return NewGenerator(f, args)
		}
		if err := vm.pushCallFrame(f, args); err != nil {
			return nil, err
		}
		val, yielded, err := vm.resume()
		if err != nil {
			return nil, err
		}
		if yielded {
			return nil, fmt.Errorf("yield outside of a generator invocation")
		}
		return val, nil
	default:
		return nil, fmt.Errorf("%s is not callable", fn.Type())
	}
}

// pushUnitFrame activates a unit with no arguments (toplevel/assignment)
func (vm *VM) pushUnitFrame(unit *CodeUnit) {
	frame := &Frame{
		Unit:   unit,
		Base:   vm.SP,
		Locals: make([]types.Value, len(unit.Locals)),
	}
	for i := range frame.Locals {
		frame.Locals[i] = types.Nothing
	}
	vm.Frames = append(vm.Frames, frame)
}

// pushCallFrame activates a callable with a fixed-arity argument check.
// Parameters occupy the leading local slots and shadow globals of the same
// name for the duration of the call.
func (vm *VM) pushCallFrame(c *Callable, args []types.Value) error {
	if len(args) != len(c.Unit.Params) {
		return fmt.Errorf("%s takes %d arguments (%d given)", c.String(), len(c.Unit.Params), len(args))
	}
	frame := &Frame{
		Unit:   c.Unit,
		Base:   vm.SP,
		Locals: make([]types.Value, len(c.Unit.Locals)),
	}
	copy(frame.Locals, args)
	for i := len(args); i < len(frame.Locals); i++ {
		frame.Locals[i] = types.Nothing
	}
	vm.Frames = append(vm.Frames, frame)
	return nil
}

// resume executes until the machine yields or the outermost frame returns.
// The bool result reports a yield; the saved frames, locals, and operand
// stack carry the suspension state until the next resume.
func (vm *VM) resume() (types.Value, bool, error) {
	if vm.suspended {
		// Re-entering after a yield: the yield expression itself
		// evaluates to nothing.
		vm.suspended = false
		vm.Push(types.Nothing)
	}

	for len(vm.Frames) > 0 {
		val, yielded, err := vm.step()
		if err != nil {
			return nil, false, err
		}
		if yielded {
			return val, true, nil
		}
	}

	if vm.SP == 0 {
		return types.Nothing, false, nil
	}
	return vm.Pop(), false, nil
}

// step executes a single instruction
func (vm *VM) step() (types.Value, bool, error) {
	frame := vm.currentFrame()
	if frame.IP >= len(frame.Unit.Code) {
		// The compiler appends OP_RETURN to every unit; running off the
		// end means the instruction stream is malformed.
		return nil, false, fmt.Errorf("instruction pointer out of range in %q", frame.Unit.Name)
	}

	op := OpCode(frame.Unit.Code[frame.IP])
	frame.IP++

	switch op {
	case OP_PUSH:
		idx := vm.readByte()
		vm.Push(frame.Unit.Constants[idx])

	case OP_POP:
		vm.Pop()

	case OP_DUP:
		vm.Push(vm.Peek(0))

	case OP_NOTHING:
		vm.Push(types.Nothing)

	case OP_GET_LOCAL:
		idx := vm.readByte()
		vm.Push(frame.Locals[idx])

	case OP_SET_LOCAL:
		idx := vm.readByte()
		frame.Locals[idx] = vm.Pop()

	case OP_GET_GLOBAL:
		name := frame.Unit.Names[vm.readByte()]
		val, ok := vm.Env.Get(name)
		if !ok {
			return nil, false, fmt.Errorf("name %q is not defined", name)
		}
		vm.Push(val)

	case OP_SET_GLOBAL:
		name := frame.Unit.Names[vm.readByte()]
		vm.Env.Define(name, vm.Pop())

	case OP_GET_ATTR:
		name := frame.Unit.Names[vm.readByte()]
		obj := vm.Pop()
		mod, ok := obj.(*types.ModuleValue)
		if !ok {
			return nil, false, fmt.Errorf("%s has no attributes", obj.Type())
		}
		attr, ok := mod.Attr(name)
		if !ok {
			return nil, false, fmt.Errorf("module %s has no attribute %q", mod.Name, name)
		}
		vm.Push(attr)

	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
		if err := vm.executeBinary(op); err != nil {
			return nil, false, err
		}

	case OP_NEG, OP_POS:
		if err := vm.executeUnary(op); err != nil {
			return nil, false, err
		}

	case OP_EQ, OP_NE, OP_LT, OP_LE, OP_GT, OP_GE:
		if err := vm.executeCompare(op); err != nil {
			return nil, false, err
		}

	case OP_JUMP:
		offset := vm.readShort()
		frame.IP += int(offset)

	case OP_JUMP_IF_FALSE:
		offset := vm.readShort()
		if !vm.Pop().Truthy() {
			frame.IP += int(offset)
		}

	case OP_LOOP:
		offset := vm.readShort()
		frame.IP -= int(offset)

	case OP_RETURN:
		vm.returnValue(vm.Pop())

	case OP_CALL:
		argc := int(vm.readByte())
		args := vm.PopN(argc)
		if err := vm.call(vm.Pop(), args); err != nil {
			return nil, false, err
		}

	case OP_CALL_SPREAD:
		argsVal := vm.Pop()
		list, ok := argsVal.(types.ListValue)
		if !ok {
			return nil, false, fmt.Errorf("apply requires a list of arguments, got %s", argsVal.Type())
		}
		if err := vm.call(vm.Pop(), list.Elements()); err != nil {
			return nil, false, err
		}

	case OP_MAKE_LIST:
		n := int(vm.readByte())
		vm.Push(types.NewList(vm.PopN(n)))

	case OP_UNPACK:
		n := int(vm.readByte())
		val := vm.Pop()
		list, ok := val.(types.ListValue)
		if !ok {
			return nil, false, fmt.Errorf("cannot unpack %s", val.Type())
		}
		if list.Len() != n {
			return nil, false, fmt.Errorf("unpack expected %d values, got %d", n, list.Len())
		}
		// Push in reverse so the first element ends on top and stores
		// pop in target order.
		for i := list.Len() - 1; i >= 0; i-- {
			vm.Push(list.Get(i))
		}

	case OP_IMPORT:
		name := frame.Unit.Names[vm.readByte()]
		if _, ok := vm.Env.Import(name); !ok {
			return nil, false, fmt.Errorf("unknown module %q", name)
		}

	case OP_YIELD:
		val := vm.Pop()
		vm.suspended = true
		return val, true, nil

	default:
		return nil, false, fmt.Errorf("unknown opcode: %s (%d)", op, byte(op))
	}

	return nil, false, nil
}

// call dispatches a call to a builtin, a compiled function, or a generator
// constructor. Compiled calls push a frame; execution continues in the main
// loop rather than recursing.
func (vm *VM) call(fn types.Value, args []types.Value) error {
	switch f := fn.(type) {
	case types.BuiltinValue:
		res, err := f.Fn(args)
		if err != nil {
			return err
		}
		vm.Push(res)
		return nil
	case *Callable:
		if f.Unit.IsGenerator {
			gen, err := NewGenerator(f, args)
			if err != nil {
				return err
			}
			vm.Push(gen)
			return nil
		}
		return vm.pushCallFrame(f, args)
	default:
		return fmt.Errorf("%s is not callable", fn.Type())
	}
}

// returnValue pops the current frame and leaves the value for the caller
func (vm *VM) returnValue(val types.Value) {
	frame := vm.Frames[len(vm.Frames)-1]
	vm.SP = frame.Base
	vm.Frames = vm.Frames[:len(vm.Frames)-1]
	vm.Push(val)
}

func (vm *VM) currentFrame() *Frame {
	return vm.Frames[len(vm.Frames)-1]
}

// Push pushes a value onto the operand stack
func (vm *VM) Push(v types.Value) {
	if vm.SP >= len(vm.Stack) {
		vm.Stack = append(vm.Stack, v)
	} else {
		vm.Stack[vm.SP] = v
	}
	vm.SP++
}

// Pop pops a value from the operand stack
func (vm *VM) Pop() types.Value {
	if vm.SP == 0 {
		panic("stack underflow")
	}
	vm.SP--
	return vm.Stack[vm.SP]
}

// Peek peeks at a value on the stack (0 = top)
func (vm *VM) Peek(offset int) types.Value {
	if vm.SP-1-offset < 0 {
		panic("stack underflow")
	}
	return vm.Stack[vm.SP-1-offset]
}

// PopN pops N values, returned in push order
func (vm *VM) PopN(n int) []types.Value {
	if vm.SP < n {
		panic("stack underflow")
	}
	values := make([]types.Value, n)
	for i := n - 1; i >= 0; i-- {
		values[i] = vm.Pop()
	}
	return values
}

// readByte reads a byte operand from the current instruction stream
func (vm *VM) readByte() byte {
	frame := vm.currentFrame()
	b := frame.Unit.Code[frame.IP]
	frame.IP++
	return b
}

// readShort reads a 2-byte big-endian operand
func (vm *VM) readShort() uint16 {
	frame := vm.currentFrame()
	hi := frame.Unit.Code[frame.IP]
	lo := frame.Unit.Code[frame.IP+1]
	frame.IP += 2
	return uint16(hi)<<8 | uint16(lo)
}
