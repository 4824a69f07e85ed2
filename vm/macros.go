package vm

// MacroTable maps a symbol to its transformer: a compiled callable taking
// unevaluated argument expressions and returning a replacement expression.
// Once registered, a macro name shadows ordinary call compilation for any
// list form whose head matches.
type MacroTable struct {
	transformers map[string]*Callable
}

// NewMacroTable creates an empty macro table
func NewMacroTable() *MacroTable {
	return &MacroTable{
		transformers: make(map[string]*Callable),
	}
}

// Register installs a transformer under a name
func (t *MacroTable) Register(name string, transformer *Callable) {
	t.transformers[name] = transformer
}

// Lookup finds a transformer by name
func (t *MacroTable) Lookup(name string) (*Callable, bool) {
	tr, ok := t.transformers[name]
	return tr, ok
}
