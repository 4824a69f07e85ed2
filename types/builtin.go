package types

// BuiltinValue wraps a host-provided function as a callable value
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunc
}

// NewBuiltin creates a new builtin function value
func NewBuiltin(name string, fn BuiltinFunc) BuiltinValue {
	return BuiltinValue{Name: name, Fn: fn}
}

// Type returns the type code for builtin functions
func (b BuiltinValue) Type() TypeCode {
	return TYPE_BUILTIN
}

// String returns the literal representation
func (b BuiltinValue) String() string {
	return "<builtin " + b.Name + ">"
}

// Equal checks equality by name
func (b BuiltinValue) Equal(other Value) bool {
	o, ok := other.(BuiltinValue)
	return ok && b.Name == o.Name
}

// Truthy is always true for builtins
func (b BuiltinValue) Truthy() bool {
	return true
}
