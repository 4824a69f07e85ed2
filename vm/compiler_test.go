package vm

import (
	"testing"

	"wisp/parser"
	"wisp/types"
)

func compileErr(t *testing.T, src string) error {
	t.Helper()
	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	s := newSession()
	_, err = NewCompiler(s.env, s.macros).Compile(node)
	if err == nil {
		t.Fatalf("compile %q succeeded, want error", src)
	}
	return err
}

func TestCompileArithmeticBytecode(t *testing.T) {
	unit := newSession().compile(t, "(+ 1 2 3)")
	want := []byte{
		byte(OP_PUSH), 0,
		byte(OP_PUSH), 1,
		byte(OP_ADD),
		byte(OP_PUSH), 2,
		byte(OP_ADD),
		byte(OP_RETURN),
	}
	if len(unit.Code) != len(want) {
		t.Fatalf("code = %v, want %v", unit.Code, want)
	}
	for i := range want {
		if unit.Code[i] != want[i] {
			t.Fatalf("code[%d] = %d, want %d (full: %v)", i, unit.Code[i], want[i], unit.Code)
		}
	}
}

func TestConstantPoolDeduplicates(t *testing.T) {
	unit := newSession().compile(t, "(+ 1 1 1)")
	if len(unit.Constants) != 1 {
		t.Errorf("constant pool = %v, want a single entry", unit.Constants)
	}
}

func TestNameTableDeduplicates(t *testing.T) {
	unit := newSession().compile(t, "(+ x x)")
	if len(unit.Names) != 1 {
		t.Errorf("name table = %v, want a single entry", unit.Names)
	}
}

func TestUnitKinds(t *testing.T) {
	tests := []struct {
		src    string
		kind   UnitKind
		name   string
		params int
	}{
		{"(+ 1 2)", UnitToplevel, "", 0},
		{"(def x 1)", UnitAssignment, "x", 0},
		{"(def (f a b) (+ a b))", UnitFunction, "f", 2},
		{"(defmacro (m e) e)", UnitMacro, "m", 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			unit := newSession().compile(t, tt.src)
			if unit.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", unit.Kind, tt.kind)
			}
			if unit.Name != tt.name {
				t.Errorf("name = %q, want %q", unit.Name, tt.name)
			}
			if len(unit.Params) != tt.params {
				t.Errorf("params = %v, want %d", unit.Params, tt.params)
			}
		})
	}
}

func TestParamsSeedLocals(t *testing.T) {
	unit := newSession().compile(t, "(def (f a b) (= c 1) (+ a b c))")
	if len(unit.Params) != 2 {
		t.Fatalf("params = %v, want [a b]", unit.Params)
	}
	if len(unit.Locals) != 3 || unit.Locals[0] != "a" || unit.Locals[1] != "b" || unit.Locals[2] != "c" {
		t.Errorf("locals = %v, want [a b c]", unit.Locals)
	}
}

func TestJumpOffsetsLandInsideCode(t *testing.T) {
	// Nested branches at two levels; every emitted jump must target a
	// valid instruction boundary inside the stream.
	unit := newSession().compile(t, "(if 1 (if 2 3 4) (if 5 6 7))")
	ip := 0
	for ip < len(unit.Code) {
		op := OpCode(unit.Code[ip])
		switch operandWidth(op) {
		case 1:
			ip += 2
		case 2:
			offset := int(unit.Code[ip+1])<<8 | int(unit.Code[ip+2])
			if offset == 0xFFFF {
				t.Fatalf("unpatched jump at %d", ip)
			}
			target := ip + 3 + offset
			if op == OP_LOOP {
				target = ip + 3 - offset
			}
			if target < 0 || target > len(unit.Code) {
				t.Fatalf("%s at %d targets %d, out of range", op, ip, target)
			}
			ip += 3
		default:
			ip++
		}
	}
}

func TestLoopJumpsBackward(t *testing.T) {
	s := newSession()
	s.eval(t, "(= n 0)")
	unit := s.compile(t, "(while (< n 3) (= n (+ n 1)))")

	found := false
	ip := 0
	for ip < len(unit.Code) {
		op := OpCode(unit.Code[ip])
		if op == OP_LOOP {
			offset := int(unit.Code[ip+1])<<8 | int(unit.Code[ip+2])
			target := ip + 3 - offset
			if target != 0 {
				t.Errorf("loop targets %d, want 0 (the condition)", target)
			}
			found = true
		}
		switch operandWidth(op) {
		case 1:
			ip += 2
		case 2:
			ip += 3
		default:
			ip++
		}
	}
	if !found {
		t.Error("no OP_LOOP emitted for while")
	}
}

func TestYieldMarksGenerator(t *testing.T) {
	unit := newSession().compile(t, "(def (g) (yield 1))")
	if !unit.IsGenerator {
		t.Error("IsGenerator = false, want true")
	}
	plain := newSession().compile(t, "(def (f) 1)")
	if plain.IsGenerator {
		t.Error("IsGenerator = true for a unit with no yield")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"destructuring arity mismatch", "(= (x y z) (1 2))"},
		{"destructuring non-symbol target", "(= (x 1) (1 2))"},
		{"chained comparison", "(< 1 2 3)"},
		{"nested def", "(def (f) (def (g) 1))"},
		{"nested defmacro", "(def (f) (defmacro (m e) e))"},
		{"duplicate parameters", "(def (f a a) a)"},
		{"non-symbol parameter", "(def (f 1) 1)"},
		{"if without else", "(if 1 2)"},
		{"empty call form", "()"},
		{"unquote outside quasiquote", ",x"},
		{"spelled-out unquote outside quasiquote", "(unquote x)"},
		{"quote with two expressions", "(quote 1 2)"},
		{"quasiquote with no expression", "(quasiquote)"},
		{"yield with no value", "(yield)"},
		{"return with no value", "(return)"},
		{"import non-symbol", "(import 3)"},
		{"dot form without attribute", "(. m)"},
		{"assignment to literal", "(= 1 2)"},
		{"def with no body", "(def (f))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileErr(t, tt.src)
			if _, ok := err.(*CompileError); !ok {
				t.Errorf("error type = %T, want *CompileError", err)
			}
		})
	}
}

func TestComparisonSingleOperandDegenerates(t *testing.T) {
	// A one-operand comparison compiles to the operand alone. This is a
	// documented gap, kept rather than fixed.
	got := newSession().eval(t, "(< 5)")
	if got.String() != "5" {
		t.Errorf("(< 5) = %s, want 5", got.String())
	}
}

func TestCompileErrorIncludesPosition(t *testing.T) {
	err := compileErr(t, "(< 1 2 3)")
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("error type = %T, want *CompileError", err)
	}
	if ce.Position.Line != 1 {
		t.Errorf("position line = %d, want 1", ce.Position.Line)
	}
}

func TestFailedCompileInstallsNothing(t *testing.T) {
	s := newSession()
	if _, err := s.run("(def (broken a a) a)"); err == nil {
		t.Fatal("compile succeeded, want error")
	}
	if _, ok := s.env.Get("broken"); ok {
		t.Error("failed def still installed a global")
	}
	if _, ok := s.macros.Lookup("broken"); ok {
		t.Error("failed def still registered a macro")
	}
}

func TestDisassembleCoversStream(t *testing.T) {
	unit := newSession().compile(t, "(if (< 1 2) 3 4)")
	text := unit.Disassemble()
	if text == "" {
		t.Fatal("empty disassembly")
	}
	for _, op := range []string{"PUSH", "LT", "JUMP_IF_FALSE", "JUMP", "RETURN"} {
		if !containsLine(text, op) {
			t.Errorf("disassembly missing %s:\n%s", op, text)
		}
	}
}

func containsLine(text, sub string) bool {
	for i := 0; i+len(sub) <= len(text); i++ {
		if text[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestValueNodeRoundTrip(t *testing.T) {
	// Macro results travel value -> node -> compile; the conversion must
	// invert nodeToValue for everything expressible.
	srcs := []string{
		"42", "3.5", `"hi"`, "foo",
		"(+ 1 2)", "(a (b c))",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			node, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			back, err := valueToNode(nodeToValue(node))
			if err != nil {
				t.Fatalf("valueToNode: %v", err)
			}
			if back.String() != node.String() {
				t.Errorf("round trip = %q, want %q", back.String(), node.String())
			}
		})
	}
}

func TestValueToNodeRejectsOpaqueValues(t *testing.T) {
	if _, err := valueToNode(types.NewBuiltin("f", nil)); err == nil {
		t.Error("builtin converted to a node, want error")
	}
}
