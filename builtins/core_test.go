package builtins

import (
	"testing"

	"wisp/types"
	"wisp/vm"
)

// fakeSeq is a minimal iterator value for exercising next
type fakeSeq struct {
	vals []types.Value
	pos  int
}

func (f *fakeSeq) Type() types.TypeCode        { return types.TYPE_GENERATOR }
func (f *fakeSeq) String() string              { return "<fake>" }
func (f *fakeSeq) Equal(other types.Value) bool { return false }
func (f *fakeSeq) Truthy() bool                { return true }

func (f *fakeSeq) Next() (types.Value, bool, error) {
	if f.pos >= len(f.vals) {
		return types.Nothing, false, nil
	}
	v := f.vals[f.pos]
	f.pos++
	return v, true, nil
}

func TestBuiltinList(t *testing.T) {
	got, err := builtinList(ints(1, 2, 3))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if got.String() != "(1 2 3)" {
		t.Errorf("list = %s, want (1 2 3)", got.String())
	}
}

func TestBuiltinLen(t *testing.T) {
	if got, _ := builtinLen([]types.Value{types.NewList(ints(1, 2))}); got.String() != "2" {
		t.Errorf("len(list) = %s, want 2", got.String())
	}
	if got, _ := builtinLen([]types.Value{types.NewStr("abc")}); got.String() != "3" {
		t.Errorf("len(str) = %s, want 3", got.String())
	}
	if _, err := builtinLen(ints(1)); err == nil {
		t.Error("len(int) succeeded, want error")
	}
}

func TestBuiltinNext(t *testing.T) {
	seq := &fakeSeq{vals: ints(1, 2)}
	args := []types.Value{seq}

	for _, want := range []string{"1", "2", "nothing"} {
		got, err := builtinNext(args)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if got.String() != want {
			t.Errorf("next = %s, want %s", got.String(), want)
		}
	}

	if _, err := builtinNext(ints(1)); err == nil {
		t.Error("next(int) succeeded, want error")
	}
}

func TestInstallSeedsEnvironment(t *testing.T) {
	env := vm.NewEnvironment()
	NewRegistry().Install(env)

	for _, name := range []string{"+", "-", "*", "/", "%", "print", "list", "len", "next"} {
		val, ok := env.Get(name)
		if !ok {
			t.Errorf("builtin %q not installed", name)
			continue
		}
		if val.Type() != types.TYPE_BUILTIN {
			t.Errorf("%q type = %v, want TYPE_BUILTIN", name, val.Type())
		}
	}

	// The module loader is wired too
	if _, ok := env.Import("math"); !ok {
		t.Error("math module not importable after Install")
	}
}
