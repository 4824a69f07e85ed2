package vm

import (
	"fmt"
	"strings"

	"wisp/types"
)

// UnitKind tells the caller what to do with a compiled unit
type UnitKind int

const (
	UnitToplevel   UnitKind = iota // evaluate for its value
	UnitAssignment                 // evaluate once, bind result to Name
	UnitFunction                   // bind the callable itself to Name
	UnitMacro                      // register as a macro transformer
)

// String returns the kind name
func (k UnitKind) String() string {
	switch k {
	case UnitToplevel:
		return "toplevel"
	case UnitAssignment:
		return "assignment"
	case UnitFunction:
		return "function"
	case UnitMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// CodeUnit is the compiled output for one function, one top-level
// assignment, one macro, or one bare top-level expression. A unit owns all
// of its tables; nothing is shared between units.
type CodeUnit struct {
	Name        string        // function/assignment/macro name, empty for toplevel
	Kind        UnitKind      // what the caller should do with the unit
	Params      []string      // ordered parameter symbols, fixed arity
	Locals      []string      // superset of Params; grows on first local assignment
	Constants   []types.Value // deduplicated-by-value constant pool
	Names       []string      // deduplicated global/attribute symbol names
	Code        []byte        // linear instruction stream
	IsGenerator bool          // set once any yield is compiled in the unit
}

// Disassemble renders the instruction stream for debugging
func (u *CodeUnit) Disassemble() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; %s %s params=%v locals=%v generator=%v\n",
		u.Kind, u.Name, u.Params, u.Locals, u.IsGenerator)
	ip := 0
	for ip < len(u.Code) {
		op := OpCode(u.Code[ip])
		fmt.Fprintf(&b, "%04d %s", ip, op)
		switch operandWidth(op) {
		case 1:
			arg := u.Code[ip+1]
			fmt.Fprintf(&b, " %d", arg)
			if op == OP_PUSH && int(arg) < len(u.Constants) {
				fmt.Fprintf(&b, " ; %s", u.Constants[arg].String())
			}
			if (op == OP_GET_GLOBAL || op == OP_SET_GLOBAL || op == OP_GET_ATTR || op == OP_IMPORT) && int(arg) < len(u.Names) {
				fmt.Fprintf(&b, " ; %s", u.Names[arg])
			}
			ip += 2
		case 2:
			off := int(u.Code[ip+1])<<8 | int(u.Code[ip+2])
			fmt.Fprintf(&b, " %d", off)
			ip += 3
		default:
			ip++
		}
		b.WriteByte('\n')
	}
	return b.String()
}
