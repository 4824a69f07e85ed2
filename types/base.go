package types

// Value is the interface all runtime values implement
type Value interface {
	Type() TypeCode
	String() string   // Literal representation
	Equal(Value) bool // Deep equality
	Truthy() bool     // Truthiness rules
}

// BuiltinFunc is the signature of host-provided functions installed in the
// global environment and in importable modules.
type BuiltinFunc func(args []Value) (Value, error)

// Iterator is implemented by values that produce a lazy sequence, one
// element per Next call. The second result is false once the sequence is
// exhausted.
type Iterator interface {
	Next() (Value, bool, error)
}
