package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	TOKEN_LPAREN     // (
	TOKEN_RPAREN     // )
	TOKEN_QUOTE      // '
	TOKEN_QUASIQUOTE // `
	TOKEN_UNQUOTE    // ,

	TOKEN_STRING // "hello" (no escape processing)
	TOKEN_WORD   // raw atom text; classified later by ClassifyAtom
)

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token. Tokens are immutable slices of the
// source text; a TOKEN_STRING keeps its surrounding double quotes in Value.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ILLEGAL:
		return "ILLEGAL"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	case TOKEN_QUOTE:
		return "QUOTE"
	case TOKEN_QUASIQUOTE:
		return "QUASIQUOTE"
	case TOKEN_UNQUOTE:
		return "UNQUOTE"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_WORD:
		return "WORD"
	default:
		return "UNKNOWN"
	}
}
