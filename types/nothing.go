package types

// NothingValue is the unit "no value": the result of a terminated while
// loop, an import form, and an exhausted generator step.
type NothingValue struct{}

// Nothing is the shared unit value
var Nothing = NothingValue{}

// Type returns the type code for the unit value
func (n NothingValue) Type() TypeCode {
	return TYPE_NOTHING
}

// String returns the literal representation
func (n NothingValue) String() string {
	return "nothing"
}

// Equal checks equality; all NothingValues are equal
func (n NothingValue) Equal(other Value) bool {
	_, ok := other.(NothingValue)
	return ok
}

// Truthy is always false for the unit value
func (n NothingValue) Truthy() bool {
	return false
}
