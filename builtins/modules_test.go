package builtins

import (
	"testing"

	"wisp/types"
)

func modAttr(t *testing.T, modName, attr string) types.Value {
	t.Helper()
	mod, ok := LoadModule(modName)
	if !ok {
		t.Fatalf("module %q not loadable", modName)
	}
	m := mod.(*types.ModuleValue)
	val, ok := m.Attr(attr)
	if !ok {
		t.Fatalf("module %q has no attribute %q", modName, attr)
	}
	return val
}

func callAttr(t *testing.T, modName, attr string, args ...types.Value) types.Value {
	t.Helper()
	fn := modAttr(t, modName, attr).(types.BuiltinValue)
	val, err := fn.Fn(args)
	if err != nil {
		t.Fatalf("%s.%s: %v", modName, attr, err)
	}
	return val
}

func TestLoadModuleUnknown(t *testing.T) {
	if _, ok := LoadModule("nosuchmodule"); ok {
		t.Error("unknown module loaded")
	}
}

func TestLoadModuleCaches(t *testing.T) {
	a, _ := LoadModule("math")
	b, _ := LoadModule("math")
	if a != b {
		t.Error("math module rebuilt instead of cached")
	}
}

func TestMathModule(t *testing.T) {
	if got := callAttr(t, "math", "abs", types.NewInt(-3)); got.String() != "3" {
		t.Errorf("abs(-3) = %s, want 3", got.String())
	}
	if got := callAttr(t, "math", "abs", types.NewFloat(-2.5)); got.String() != "2.5" {
		t.Errorf("abs(-2.5) = %s, want 2.5", got.String())
	}
	if got := callAttr(t, "math", "sqrt", types.NewInt(9)); got.String() != "3.0" {
		t.Errorf("sqrt(9) = %s, want 3.0", got.String())
	}
	if got := callAttr(t, "math", "pow", types.NewInt(2), types.NewInt(10)); got.String() != "1024.0" {
		t.Errorf("pow(2,10) = %s, want 1024.0", got.String())
	}
	if got := callAttr(t, "math", "min", types.NewInt(3), types.NewInt(1), types.NewInt(2)); got.String() != "1" {
		t.Errorf("min = %s, want 1", got.String())
	}
	if got := callAttr(t, "math", "max", types.NewFloat(1.5), types.NewInt(1)); got.String() != "1.5" {
		t.Errorf("max = %s, want 1.5", got.String())
	}
	if pi := modAttr(t, "math", "pi"); pi.Type() != types.TYPE_FLOAT {
		t.Errorf("pi type = %v, want TYPE_FLOAT", pi.Type())
	}
}

func TestStringsModule(t *testing.T) {
	str := types.NewStr
	if got := callAttr(t, "strings", "upcase", str("abc")); got.String() != `"ABC"` {
		t.Errorf("upcase = %s", got.String())
	}
	if got := callAttr(t, "strings", "downcase", str("ABC")); got.String() != `"abc"` {
		t.Errorf("downcase = %s", got.String())
	}
	if got := callAttr(t, "strings", "trim", str("  x  ")); got.String() != `"x"` {
		t.Errorf("trim = %s", got.String())
	}
	if got := callAttr(t, "strings", "index", str("hello"), str("ll")); got.String() != "2" {
		t.Errorf("index = %s, want 2", got.String())
	}
	if got := callAttr(t, "strings", "index", str("hello"), str("zz")); got.String() != "-1" {
		t.Errorf("index miss = %s, want -1", got.String())
	}
	if got := callAttr(t, "strings", "strsub", str("a-b-c"), str("-"), str("+")); got.String() != `"a+b+c"` {
		t.Errorf("strsub = %s", got.String())
	}
	if got := callAttr(t, "strings", "explode", str("a,b"), str(",")); got.String() != `("a" "b")` {
		t.Errorf("explode = %s", got.String())
	}
	joined := callAttr(t, "strings", "implode",
		types.NewList([]types.Value{str("a"), str("b")}), str("-"))
	if joined.String() != `"a-b"` {
		t.Errorf("implode = %s", joined.String())
	}
}
