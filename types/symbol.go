package types

// SymbolValue represents an interned name. Symbols appear at runtime only
// inside quoted data and as macro arguments; equality is by name.
type SymbolValue struct {
	Name string
}

// NewSymbol creates a new symbol value
func NewSymbol(name string) SymbolValue {
	return SymbolValue{Name: name}
}

// Type returns the type code for symbols
func (s SymbolValue) Type() TypeCode {
	return TYPE_SYMBOL
}

// String returns the bare symbol name
func (s SymbolValue) String() string {
	return s.Name
}

// Equal checks equality by name
func (s SymbolValue) Equal(other Value) bool {
	o, ok := other.(SymbolValue)
	return ok && s.Name == o.Name
}

// Truthy is always true for symbols
func (s SymbolValue) Truthy() bool {
	return true
}
