package parser

import "unicode"

// Lexer tokenizes source text
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// skipWhitespace skips over whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Position = Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}

	switch {
	case l.ch == 0:
		tok.Type = TOKEN_EOF
		tok.Value = ""
	case l.ch == '(':
		tok.Type = TOKEN_LPAREN
		tok.Value = string(l.ch)
		l.readChar()
	case l.ch == ')':
		tok.Type = TOKEN_RPAREN
		tok.Value = string(l.ch)
		l.readChar()
	case l.ch == '\'':
		tok.Type = TOKEN_QUOTE
		tok.Value = string(l.ch)
		l.readChar()
	case l.ch == '`':
		tok.Type = TOKEN_QUASIQUOTE
		tok.Value = string(l.ch)
		l.readChar()
	case l.ch == ',':
		tok.Type = TOKEN_UNQUOTE
		tok.Value = string(l.ch)
		l.readChar()
	case l.ch == '"':
		return l.readString(tok)
	case isWordChar(l.ch):
		tok.Type = TOKEN_WORD
		tok.Value = l.readWord()
	default:
		tok.Type = TOKEN_ILLEGAL
		tok.Value = string(l.ch)
		l.readChar()
	}

	return tok
}

// readString reads a double-quoted string literal. No escape sequences are
// processed; the literal runs to the next double quote. The quotes are kept
// in the token value and stripped by the atom classifier.
func (l *Lexer) readString(tok Token) Token {
	start := l.position
	l.readChar() // opening quote
	for l.ch != '"' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		tok.Type = TOKEN_ILLEGAL
		tok.Value = l.input[start:l.position]
		return tok
	}
	l.readChar() // closing quote
	tok.Type = TOKEN_STRING
	tok.Value = l.input[start:l.position]
	return tok
}

// readWord reads an identifier-like run: letters, digits, and the symbol
// characters. This deliberately covers numbers, operators, and dotted paths
// alike; the atom classifier sorts them out.
func (l *Lexer) readWord() string {
	start := l.position
	for isWordChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// isWordChar reports whether a character may appear in a raw word token
func isWordChar(ch byte) bool {
	if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) {
		return true
	}
	switch ch {
	case '_', '+', '-', '/', '*', '<', '>', '=', '!', '%', '.':
		return true
	}
	return false
}

// Tokenize runs the lexer over the whole input and returns the token
// sequence, excluding the trailing EOF. An ILLEGAL token aborts with a
// LexError.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var toks []Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case TOKEN_EOF:
			return toks, nil
		case TOKEN_ILLEGAL:
			return nil, &LexError{Position: tok.Position, Message: "no token matches input at " + quoteSnippet(tok.Value)}
		}
		toks = append(toks, tok)
	}
}

func quoteSnippet(s string) string {
	if len(s) > 12 {
		s = s[:12] + "..."
	}
	return "'" + s + "'"
}
