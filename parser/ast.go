package parser

import "strings"

// Node is the interface implemented by every S-expression node
type Node interface {
	Position() Position
	String() string
}

// IntLit is an integer literal
type IntLit struct {
	Pos Position
	Val int64
}

// FloatLit is a floating point literal
type FloatLit struct {
	Pos Position
	Val float64
}

// StrLit is a string literal (delimiters already stripped)
type StrLit struct {
	Pos Position
	Val string
}

// SymbolNode is an interned name used for variable and function reference
type SymbolNode struct {
	Pos  Position
	Name string
}

// DottedPathNode is a bare token containing dots that is not a valid
// number: attribute-access sugar, e.g. obj.a.b. Not evaluated at parse time.
type DottedPathNode struct {
	Pos      Position
	Segments []string // base variable first, then attribute names in order
}

// ListNode is an ordered sequence of child nodes
type ListNode struct {
	Pos      Position
	Elements []Node
}

// QuoteNode fully suppresses evaluation of its child
type QuoteNode struct {
	Pos Position
	X   Node
}

// QuasiQuoteNode suppresses evaluation except at unquoted sub-positions
type QuasiQuoteNode struct {
	Pos Position
	X   Node
}

// UnquoteNode marks a sub-position of a quasiquoted expression for
// evaluation
type UnquoteNode struct {
	Pos Position
	X   Node
}

func (n *IntLit) Position() Position         { return n.Pos }
func (n *FloatLit) Position() Position       { return n.Pos }
func (n *StrLit) Position() Position         { return n.Pos }
func (n *SymbolNode) Position() Position     { return n.Pos }
func (n *DottedPathNode) Position() Position { return n.Pos }
func (n *ListNode) Position() Position       { return n.Pos }
func (n *QuoteNode) Position() Position      { return n.Pos }
func (n *QuasiQuoteNode) Position() Position { return n.Pos }
func (n *UnquoteNode) Position() Position    { return n.Pos }

func (n *IntLit) String() string {
	return formatInt(n.Val)
}

func (n *FloatLit) String() string {
	return formatFloat(n.Val)
}

func (n *StrLit) String() string {
	return "\"" + n.Val + "\""
}

func (n *SymbolNode) String() string {
	return n.Name
}

func (n *DottedPathNode) String() string {
	return strings.Join(n.Segments, ".")
}

func (n *ListNode) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (n *QuoteNode) String() string {
	return "'" + n.X.String()
}

func (n *QuasiQuoteNode) String() string {
	return "`" + n.X.String()
}

func (n *UnquoteNode) String() string {
	return "," + n.X.String()
}
