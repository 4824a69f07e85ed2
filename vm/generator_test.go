package vm

import (
	"testing"

	"wisp/types"
)

func nextVal(t *testing.T, g *Generator) (types.Value, bool) {
	t.Helper()
	val, more, err := g.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	return val, more
}

func TestGeneratorYieldsInOrder(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen) (yield 1) (yield 2) (yield 3))")
	g := s.eval(t, "(gen)").(*Generator)

	for _, want := range []string{"1", "2", "3"} {
		val, more := nextVal(t, g)
		if !more {
			t.Fatalf("sequence ended early, want %s", want)
		}
		if val.String() != want {
			t.Errorf("yielded %s, want %s", val.String(), want)
		}
	}
	if _, more := nextVal(t, g); more {
		t.Error("sequence continued past the last yield")
	}
}

func TestGeneratorStaysDone(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen) (yield 1))")
	g := s.eval(t, "(gen)").(*Generator)

	nextVal(t, g)
	for i := 0; i < 3; i++ {
		if val, more := nextVal(t, g); more || val != types.Nothing {
			t.Fatalf("exhausted Next = %s, %v; want nothing, false", val.String(), more)
		}
	}
}

func TestGeneratorRestartableAcrossInvocations(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen) (yield 1) (yield 2))")

	a := s.eval(t, "(gen)").(*Generator)
	nextVal(t, a)
	nextVal(t, a)
	nextVal(t, a)

	b := s.eval(t, "(gen)").(*Generator)
	val, more := nextVal(t, b)
	if !more || val.String() != "1" {
		t.Errorf("fresh invocation yields %s, want 1 from the start", val.String())
	}
}

func TestGeneratorLocalsPersistAcrossYields(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (counter limit) (= n 0) (while (< n limit) (yield n) (= n (+ n 1))))")
	g := s.eval(t, "(counter 3)").(*Generator)

	for _, want := range []string{"0", "1", "2"} {
		val, more := nextVal(t, g)
		if !more || val.String() != want {
			t.Fatalf("yielded %v, want %s", val, want)
		}
	}
	if _, more := nextVal(t, g); more {
		t.Error("counter continued past its limit")
	}
}

func TestGeneratorArgumentsBind(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen x) (yield (* x 2)))")
	g := s.eval(t, "(gen 21)").(*Generator)
	val, _ := nextVal(t, g)
	if val.String() != "42" {
		t.Errorf("yielded %s, want 42", val.String())
	}
}

func TestGeneratorArityChecked(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen x) (yield x))")
	if _, err := s.run("(gen)"); err == nil {
		t.Error("(gen) with no arguments succeeded, want arity error")
	}
}

func TestGeneratorBodyDoesNotRunUntilFirstNext(t *testing.T) {
	s := newSession()
	s.eval(t, "(= touched 0)")
	s.eval(t, "(def (gen) (= touched 1) (yield touched))")
	s.eval(t, "(gen)")
	if got := s.eval(t, "touched"); got.String() != "0" {
		t.Errorf("touched = %s before first Next, want 0", got.String())
	}
}

func TestYieldExpressionValueIsNothing(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen) (= got (yield 1)) (yield got))")
	g := s.eval(t, "(gen)").(*Generator)
	nextVal(t, g)
	val, more := nextVal(t, g)
	if !more || val != types.Nothing {
		t.Errorf("second yield = %s, want nothing", val.String())
	}
}

func TestToplevelYieldProducesGenerator(t *testing.T) {
	s := newSession()
	val := s.eval(t, "(yield 7)")
	g, ok := val.(*Generator)
	if !ok {
		t.Fatalf("toplevel yield = %T, want *Generator", val)
	}
	got, more := nextVal(t, g)
	if !more || got.String() != "7" {
		t.Errorf("yielded %s, want 7", got.String())
	}
}

func TestYieldOutsideGeneratorInvocationFails(t *testing.T) {
	// A hand-built unit with a yield but no generator flag must not run.
	unit := &CodeUnit{
		Constants: []types.Value{types.NewInt(1)},
		Code: []byte{
			byte(OP_PUSH), 0,
			byte(OP_YIELD),
			byte(OP_RETURN),
		},
	}
	if _, err := New(NewEnvironment()).Run(unit); err == nil {
		t.Error("bare Run of a yielding unit succeeded, want error")
	}
}

func TestGeneratorTruthyAndString(t *testing.T) {
	s := newSession()
	s.eval(t, "(def (gen) (yield 1))")
	g := s.eval(t, "(gen)").(*Generator)
	if !g.Truthy() {
		t.Error("generator is falsy")
	}
	if g.String() != "<generator gen>" {
		t.Errorf("String() = %q, want %q", g.String(), "<generator gen>")
	}
	if g.Type() != types.TYPE_GENERATOR {
		t.Errorf("Type() = %v, want TYPE_GENERATOR", g.Type())
	}
}
