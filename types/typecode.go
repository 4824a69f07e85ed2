package types

// TypeCode identifies the runtime type of a Value
type TypeCode int

const (
	TYPE_INT TypeCode = iota
	TYPE_FLOAT
	TYPE_STR
	TYPE_SYMBOL
	TYPE_LIST
	TYPE_NOTHING
	TYPE_BUILTIN
	TYPE_FUNC
	TYPE_GENERATOR
	TYPE_MODULE
)

// String returns the string representation of the type code
func (t TypeCode) String() string {
	switch t {
	case TYPE_INT:
		return "INT"
	case TYPE_FLOAT:
		return "FLOAT"
	case TYPE_STR:
		return "STR"
	case TYPE_SYMBOL:
		return "SYMBOL"
	case TYPE_LIST:
		return "LIST"
	case TYPE_NOTHING:
		return "NOTHING"
	case TYPE_BUILTIN:
		return "BUILTIN"
	case TYPE_FUNC:
		return "FUNC"
	case TYPE_GENERATOR:
		return "GENERATOR"
	case TYPE_MODULE:
		return "MODULE"
	default:
		return "UNKNOWN"
	}
}
