package vm

// OpCode represents a bytecode instruction
type OpCode byte

// Stack Operations
const (
	OP_PUSH    OpCode = iota // Push constant from pool [index]
	OP_POP                   // Discard top of stack
	OP_DUP                   // Duplicate top of stack
	OP_NOTHING               // Push the unit "no value"
)

// Variable Operations
const (
	OP_GET_LOCAL  OpCode = OP_NOTHING + 1 + iota // Push local variable [index]
	OP_SET_LOCAL                                 // Pop and store to local [index]
	OP_GET_GLOBAL                                // Push global by name [name index]
	OP_SET_GLOBAL                                // Pop and store global by name [name index]
	OP_GET_ATTR                                  // Pop obj; push obj.attr [name index]
)

// Arithmetic Operations
const (
	OP_ADD OpCode = OP_GET_ATTR + 1 + iota // Pop b, a; push a + b
	OP_SUB                                 // Pop b, a; push a - b
	OP_MUL                                 // Pop b, a; push a * b
	OP_DIV                                 // Pop b, a; push a / b
	OP_MOD                                 // Pop b, a; push a % b
	OP_NEG                                 // Pop a; push -a
	OP_POS                                 // Pop a; push +a
)

// Comparison Operations
const (
	OP_EQ OpCode = OP_POS + 1 + iota // Pop b, a; push a == b
	OP_NE                            // Pop b, a; push a != b
	OP_LT                            // Pop b, a; push a < b
	OP_LE                            // Pop b, a; push a <= b
	OP_GT                            // Pop b, a; push a > b
	OP_GE                            // Pop b, a; push a >= b
)

// Control Flow
const (
	OP_JUMP          OpCode = OP_GE + 1 + iota // Forward jump [offset]
	OP_JUMP_IF_FALSE                           // Pop; forward jump if falsy [offset]
	OP_LOOP                                    // Backward jump [offset] (IP -= offset)
	OP_RETURN                                  // Pop and return from current frame
)

// Calls
const (
	OP_CALL        OpCode = OP_RETURN + 1 + iota // Pop argc args and callee; fixed-arity call [argc]
	OP_CALL_SPREAD                               // Pop args list and callee; spread call
)

// Collections and the rest
const (
	OP_MAKE_LIST OpCode = OP_CALL_SPREAD + 1 + iota // Pop N items, make list [count]
	OP_UNPACK                                       // Pop list of N, push elements (first ends on top) [count]
	OP_IMPORT                                       // Bind host module into globals [name index]
	OP_YIELD                                        // Pop value, suspend the generator
)

// OpCodeNames maps opcodes to their string names for debugging
var OpCodeNames = map[OpCode]string{
	OP_PUSH:          "PUSH",
	OP_POP:           "POP",
	OP_DUP:           "DUP",
	OP_NOTHING:       "NOTHING",
	OP_GET_LOCAL:     "GET_LOCAL",
	OP_SET_LOCAL:     "SET_LOCAL",
	OP_GET_GLOBAL:    "GET_GLOBAL",
	OP_SET_GLOBAL:    "SET_GLOBAL",
	OP_GET_ATTR:      "GET_ATTR",
	OP_ADD:           "ADD",
	OP_SUB:           "SUB",
	OP_MUL:           "MUL",
	OP_DIV:           "DIV",
	OP_MOD:           "MOD",
	OP_NEG:           "NEG",
	OP_POS:           "POS",
	OP_EQ:            "EQ",
	OP_NE:            "NE",
	OP_LT:            "LT",
	OP_LE:            "LE",
	OP_GT:            "GT",
	OP_GE:            "GE",
	OP_JUMP:          "JUMP",
	OP_JUMP_IF_FALSE: "JUMP_IF_FALSE",
	OP_LOOP:          "LOOP",
	OP_RETURN:        "RETURN",
	OP_CALL:          "CALL",
	OP_CALL_SPREAD:   "CALL_SPREAD",
	OP_MAKE_LIST:     "MAKE_LIST",
	OP_UNPACK:        "UNPACK",
	OP_IMPORT:        "IMPORT",
	OP_YIELD:         "YIELD",
}

// String returns the name of an opcode
func (op OpCode) String() string {
	if name, ok := OpCodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// operandWidth returns the number of operand bytes following an opcode
func operandWidth(op OpCode) int {
	switch op {
	case OP_PUSH, OP_GET_LOCAL, OP_SET_LOCAL, OP_GET_GLOBAL, OP_SET_GLOBAL,
		OP_GET_ATTR, OP_CALL, OP_MAKE_LIST, OP_UNPACK, OP_IMPORT:
		return 1
	case OP_JUMP, OP_JUMP_IF_FALSE, OP_LOOP:
		return 2
	default:
		return 0
	}
}
