package parser

import "fmt"

// LexError reports source text that no token rule matches
type LexError struct {
	Position Position
	Message  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// SyntaxError reports a malformed expression: unbalanced parentheses, a
// quote prefix with nothing following it, or leftover tokens after one
// complete expression.
type SyntaxError struct {
	Position Position
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Position.Line, e.Position.Column, e.Message)
}
