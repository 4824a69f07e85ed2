package types

import "strings"

// ListValue represents an ordered sequence of values
type ListValue struct {
	elements []Value
}

// NewList creates a new list value
func NewList(elements []Value) ListValue {
	return ListValue{elements: elements}
}

// NewEmptyList creates an empty list
func NewEmptyList() ListValue {
	return ListValue{elements: []Value{}}
}

// Len returns the number of elements
func (l ListValue) Len() int {
	return len(l.elements)
}

// Get returns the element at a 0-based index, or nil if out of range
func (l ListValue) Get(i int) Value {
	if i < 0 || i >= len(l.elements) {
		return nil
	}
	return l.elements[i]
}

// Elements returns the underlying element slice
func (l ListValue) Elements() []Value {
	return l.elements
}

// Type returns the type code for lists
func (l ListValue) Type() TypeCode {
	return TYPE_LIST
}

// String returns the parenthesized literal representation
func (l ListValue) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Equal checks deep equality
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(l.elements) != len(o.elements) {
		return false
	}
	for i, e := range l.elements {
		if !e.Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// Truthy returns false only for the empty list
func (l ListValue) Truthy() bool {
	return len(l.elements) > 0
}
