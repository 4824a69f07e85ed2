package parser

// Reader parses a token sequence into S-expression nodes by recursive
// descent. Tokens are consumed strictly left to right.
type Reader struct {
	tokens []Token
	pos    int
}

// NewReader creates a reader over a token sequence
func NewReader(tokens []Token) *Reader {
	return &Reader{tokens: tokens}
}

// Parse reads exactly one complete expression and requires the entire token
// stream to be consumed; any leftover token is a SyntaxError. The REPL
// relies on this to read one form per input line.
func Parse(input string) (Node, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	r := NewReader(toks)
	node, err := r.readExpr()
	if err != nil {
		return nil, err
	}
	if r.pos < len(r.tokens) {
		return nil, &SyntaxError{
			Position: r.tokens[r.pos].Position,
			Message:  "leftover tokens after expression, starting at '" + r.tokens[r.pos].Value + "'",
		}
	}
	return node, nil
}

func (r *Reader) peek() (Token, bool) {
	if r.pos >= len(r.tokens) {
		return Token{}, false
	}
	return r.tokens[r.pos], true
}

func (r *Reader) next() (Token, bool) {
	tok, ok := r.peek()
	if ok {
		r.pos++
	}
	return tok, ok
}

func (r *Reader) endPosition() Position {
	if len(r.tokens) == 0 {
		return Position{Line: 1}
	}
	return r.tokens[len(r.tokens)-1].Position
}

// readExpr reads one expression: a parenthesized list, a quoting prefix
// applied to the following expression, or a single atom.
func (r *Reader) readExpr() (Node, error) {
	tok, ok := r.next()
	if !ok {
		return nil, &SyntaxError{Position: r.endPosition(), Message: "unexpected end of input"}
	}

	switch tok.Type {
	case TOKEN_LPAREN:
		return r.readList(tok)

	case TOKEN_RPAREN:
		return nil, &SyntaxError{Position: tok.Position, Message: "unexpected ')'"}

	case TOKEN_QUOTE:
		x, err := r.readPrefixed(tok, "'")
		if err != nil {
			return nil, err
		}
		return &QuoteNode{Pos: tok.Position, X: x}, nil

	case TOKEN_QUASIQUOTE:
		x, err := r.readPrefixed(tok, "`")
		if err != nil {
			return nil, err
		}
		return &QuasiQuoteNode{Pos: tok.Position, X: x}, nil

	case TOKEN_UNQUOTE:
		x, err := r.readPrefixed(tok, ",")
		if err != nil {
			return nil, err
		}
		return &UnquoteNode{Pos: tok.Position, X: x}, nil

	default:
		return ClassifyAtom(tok), nil
	}
}

// readList reads child expressions until the matching close paren. Running
// out of tokens first is an error, not a crash.
func (r *Reader) readList(open Token) (Node, error) {
	list := &ListNode{Pos: open.Position}
	for {
		tok, ok := r.peek()
		if !ok {
			return nil, &SyntaxError{Position: open.Position, Message: "missing ')'"}
		}
		if tok.Type == TOKEN_RPAREN {
			r.pos++
			return list, nil
		}
		child, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, child)
	}
}

// readPrefixed reads the single expression following a quoting mark
func (r *Reader) readPrefixed(mark Token, name string) (Node, error) {
	if _, ok := r.peek(); !ok {
		return nil, &SyntaxError{Position: mark.Position, Message: "expected expression after " + name}
	}
	return r.readExpr()
}
