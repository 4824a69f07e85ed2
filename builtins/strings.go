package builtins

import (
	"fmt"
	"strings"

	"wisp/types"
)

func stringsModule() *types.ModuleValue {
	return types.NewModule("strings", map[string]types.Value{
		"upcase":   fn("upcase", str1("upcase", strings.ToUpper)),
		"downcase": fn("downcase", str1("downcase", strings.ToLower)),
		"trim":     fn("trim", str1("trim", strings.TrimSpace)),
		"index":    fn("index", strIndex),
		"strsub":   fn("strsub", strSub),
		"explode":  fn("explode", strExplode),
		"implode":  fn("implode", strImplode),
	})
}

// str1 adapts a one-argument string transform
func str1(name string, f func(string) string) types.BuiltinFunc {
	return func(args []types.Value) (types.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument (%d given)", name, len(args))
		}
		s, err := asStr(name, args[0])
		if err != nil {
			return nil, err
		}
		return types.NewStr(f(s)), nil
	}
}

// strIndex returns the 0-based position of needle in haystack, -1 if absent
// index(haystack, needle) -> int
func strIndex(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("index takes 2 arguments (%d given)", len(args))
	}
	haystack, err := asStr("index", args[0])
	if err != nil {
		return nil, err
	}
	needle, err := asStr("index", args[1])
	if err != nil {
		return nil, err
	}
	return types.NewInt(int64(strings.Index(haystack, needle))), nil
}

// strSub replaces every occurrence of old with new
// strsub(str, old, new) -> str
func strSub(args []types.Value) (types.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("strsub takes 3 arguments (%d given)", len(args))
	}
	parts := make([]string, 3)
	for i, arg := range args {
		s, err := asStr("strsub", arg)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return types.NewStr(strings.ReplaceAll(parts[0], parts[1], parts[2])), nil
}

// strExplode splits a string on a separator
// explode(str, sep) -> list of str
func strExplode(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("explode takes 2 arguments (%d given)", len(args))
	}
	s, err := asStr("explode", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := asStr("explode", args[1])
	if err != nil {
		return nil, err
	}
	pieces := strings.Split(s, sep)
	elems := make([]types.Value, len(pieces))
	for i, p := range pieces {
		elems[i] = types.NewStr(p)
	}
	return types.NewList(elems), nil
}

// strImplode joins a list of strings with a separator
// implode(list, sep) -> str
func strImplode(args []types.Value) (types.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("implode takes 2 arguments (%d given)", len(args))
	}
	list, ok := args[0].(types.ListValue)
	if !ok {
		return nil, fmt.Errorf("implode requires a list, got %s", args[0].Type())
	}
	sep, err := asStr("implode", args[1])
	if err != nil {
		return nil, err
	}
	pieces := make([]string, list.Len())
	for i, e := range list.Elements() {
		s, err := asStr("implode", e)
		if err != nil {
			return nil, err
		}
		pieces[i] = s
	}
	return types.NewStr(strings.Join(pieces, sep)), nil
}

func asStr(name string, v types.Value) (string, error) {
	s, ok := v.(types.StrValue)
	if !ok {
		return "", fmt.Errorf("%s requires a string, got %s", name, v.Type())
	}
	return s.Value(), nil
}
