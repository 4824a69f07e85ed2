package vm

import (
	"fmt"

	"wisp/parser"
	"wisp/types"
)

// Quoted code is data: these conversions carry expressions across the
// compile-time boundary. A quoting marker embedded in quoted data becomes a
// two-element list headed by the quote/quasiquote/unquote symbol, so a
// plain quote preserves nested unquote markers as literal structure.

// nodeToValue embeds the unevaluated literal structure of an expression as
// a runtime value.
func nodeToValue(node parser.Node) types.Value {
	switch n := node.(type) {
	case *parser.IntLit:
		return types.NewInt(n.Val)
	case *parser.FloatLit:
		return types.NewFloat(n.Val)
	case *parser.StrLit:
		return types.NewStr(n.Val)
	case *parser.SymbolNode:
		return types.NewSymbol(n.Name)
	case *parser.DottedPathNode:
		elems := make([]types.Value, 0, len(n.Segments)+1)
		elems = append(elems, types.NewSymbol("."))
		for _, seg := range n.Segments {
			elems = append(elems, types.NewSymbol(seg))
		}
		return types.NewList(elems)
	case *parser.ListNode:
		elems := make([]types.Value, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = nodeToValue(e)
		}
		return types.NewList(elems)
	case *parser.QuoteNode:
		return markerList("quote", n.X)
	case *parser.QuasiQuoteNode:
		return markerList("quasiquote", n.X)
	case *parser.UnquoteNode:
		return markerList("unquote", n.X)
	default:
		return types.Nothing
	}
}

func markerList(marker string, x parser.Node) types.Value {
	return types.NewList([]types.Value{types.NewSymbol(marker), nodeToValue(x)})
}

// valueToNode converts a runtime value (typically a macro expansion result)
// back into an expression for compilation.
func valueToNode(v types.Value) (parser.Node, error) {
	switch val := v.(type) {
	case types.IntValue:
		return &parser.IntLit{Val: val.Val}, nil
	case types.FloatValue:
		return &parser.FloatLit{Val: val.Val}, nil
	case types.StrValue:
		return &parser.StrLit{Val: val.Value()}, nil
	case types.SymbolValue:
		return &parser.SymbolNode{Name: val.Name}, nil
	case types.ListValue:
		if node, ok, err := markerNode(val); ok || err != nil {
			return node, err
		}
		list := &parser.ListNode{}
		for _, e := range val.Elements() {
			child, err := valueToNode(e)
			if err != nil {
				return nil, err
			}
			list.Elements = append(list.Elements, child)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("cannot use %s as an expression", v.Type())
	}
}

func markerNode(list types.ListValue) (parser.Node, bool, error) {
	if list.Len() != 2 {
		return nil, false, nil
	}
	head, ok := list.Get(0).(types.SymbolValue)
	if !ok {
		return nil, false, nil
	}
	switch head.Name {
	case "quote", "quasiquote", "unquote":
		x, err := valueToNode(list.Get(1))
		if err != nil {
			return nil, false, err
		}
		switch head.Name {
		case "quote":
			return &parser.QuoteNode{X: x}, true, nil
		case "quasiquote":
			return &parser.QuasiQuoteNode{X: x}, true, nil
		default:
			return &parser.UnquoteNode{X: x}, true, nil
		}
	}
	return nil, false, nil
}
