package types

// ModuleValue is a host module bound into the global environment by an
// import form. Attributes are reached through dotted access.
type ModuleValue struct {
	Name  string
	attrs map[string]Value
}

// NewModule creates a module with the given attribute table
func NewModule(name string, attrs map[string]Value) *ModuleValue {
	return &ModuleValue{Name: name, attrs: attrs}
}

// Attr looks up an attribute by name
func (m *ModuleValue) Attr(name string) (Value, bool) {
	v, ok := m.attrs[name]
	return v, ok
}

// Type returns the type code for modules
func (m *ModuleValue) Type() TypeCode {
	return TYPE_MODULE
}

// String returns the literal representation
func (m *ModuleValue) String() string {
	return "<module " + m.Name + ">"
}

// Equal checks equality by identity
func (m *ModuleValue) Equal(other Value) bool {
	o, ok := other.(*ModuleValue)
	return ok && m == o
}

// Truthy is always true for modules
func (m *ModuleValue) Truthy() bool {
	return true
}
