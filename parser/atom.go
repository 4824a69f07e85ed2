package parser

import (
	"strconv"
	"strings"
)

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ClassifyAtom turns one raw token into a literal node. Attempts are
// ordered: integer, float, string, dotted path, symbol. The numeric parses
// fail cleanly for all-punctuation tokens like + or <=, which therefore
// classify as symbols.
func ClassifyAtom(tok Token) Node {
	if tok.Type == TOKEN_STRING {
		return &StrLit{Pos: tok.Position, Val: strings.Trim(tok.Value, "\"")}
	}

	if v, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
		return &IntLit{Pos: tok.Position, Val: v}
	}
	if v, err := strconv.ParseFloat(tok.Value, 64); err == nil {
		return &FloatLit{Pos: tok.Position, Val: v}
	}
	if strings.Contains(tok.Value, ".") && tok.Value != "." {
		return &DottedPathNode{Pos: tok.Position, Segments: strings.Split(tok.Value, ".")}
	}
	return &SymbolNode{Pos: tok.Position, Name: tok.Value}
}
