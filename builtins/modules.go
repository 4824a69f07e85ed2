package builtins

import "wisp/types"

// Host modules importable with the import form. Each module builds once and
// is shared; import binds it into the requesting environment under its own
// name.

var moduleCache = map[string]*types.ModuleValue{}

var moduleBuilders = map[string]func() *types.ModuleValue{
	"math":    mathModule,
	"strings": stringsModule,
	"crypto":  cryptoModule,
}

// LoadModule resolves a module name for an import form
func LoadModule(name string) (types.Value, bool) {
	if mod, ok := moduleCache[name]; ok {
		return mod, true
	}
	build, ok := moduleBuilders[name]
	if !ok {
		return nil, false
	}
	mod := build()
	moduleCache[name] = mod
	return mod, true
}

func fn(name string, f types.BuiltinFunc) types.Value {
	return types.NewBuiltin(name, f)
}
