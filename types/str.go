package types

// StrValue represents a string
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// Value returns the raw string content
func (s StrValue) Value() string {
	return s.val
}

// Type returns the type code for strings
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// String returns the literal representation, double-quoted. The surface
// syntax has no escape processing, so none is applied here either.
func (s StrValue) String() string {
	return "\"" + s.val + "\""
}

// Equal checks deep equality
func (s StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && s.val == o.val
}

// Truthy returns false only for the empty string
func (s StrValue) Truthy() bool {
	return s.val != ""
}
