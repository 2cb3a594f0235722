package symdiff

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexeme scanned from an expression.
type Token struct {
	// Kind is the token category.
	Kind TokenKind
	// Text is the scanned lexeme. For FunctionName tokens it is the function
	// name followed by the open parenthesis, e.g. "sin(", regardless of any
	// whitespace between them in the input.
	Text string
	// Pos is the 1-based rune column of the first rune of the token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the category of a token.
type TokenKind int

const (
	tokenNone TokenKind = iota
	// End indicates the end of the input.
	End
	Plus
	Minus
	Star
	Slash
	Caret
	LParen
	RParen
	// Number is an unsigned decimal literal, optionally with an exponent.
	Number
	// Identifier is a variable name.
	Identifier
	// FunctionName is one of the reserved function names immediately
	// followed by an open parenthesis.
	FunctionName
)

var tokenKindNames = [...]string{
	tokenNone:    "None",
	End:          "End",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Caret:        "Caret",
	LParen:       "LParen",
	RParen:       "RParen",
	Number:       "Number",
	Identifier:   "Identifier",
	FunctionName: "FunctionName",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are single-character operator tokens.
const Operators = "+-*/^()"

var operkinds = [...]TokenKind{Plus, Minus, Star, Slash, Caret, LParen, RParen}

// Lexer scans tokens from an expression.
type Lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    Token
	eof  bool
}

// NewLexer creates a lexer reading from src.
func NewLexer(src io.RuneScanner) *Lexer {
	return &Lexer{
		src:  src,
		rune: 1,
	}
}

// Next scans the next token. Once the input is exhausted, every call returns
// an End token.
func (l *Lexer) Next() (Token, error) {
	return l.next("")
}

// Tokens scans all tokens in src, up to and including the End token.
func Tokens(src string) ([]Token, error) {
	l := NewLexer(strings.NewReader(src))
	var r []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return r, err
		}
		r = append(r, tok)
		if tok.Kind == End {
			return r, nil
		}
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *Lexer) push(tok Token) {
	if l.p.Kind != tokenNone {
		panic("symdiff: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *Lexer) must() Token {
	tok := l.p
	if tok.Kind == tokenNone {
		panic("symdiff: no pushed token")
	}
	l.p = Token{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *Lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *Lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. Whitespace runes in wseof end the
// input as if it were EOF.
func (l *Lexer) next(wseof string) (Token, error) {
	if l.p.Kind != tokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if l.eof {
		return Token{Kind: End, Pos: l.rune}, nil
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = End
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(wseof, r) {
				tok.Kind = End
				l.eof = true
				return tok, nil
			}
			tok.Pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = Number
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = Identifier
			if isfunc(tok.Text) {
				ok, err := l.scanCall(wseof)
				if err != nil {
					return tok, err
				}
				if ok {
					tok.Text += "("
					tok.Kind = FunctionName
				}
			}
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Text = Operators[k : k+1]
				tok.Kind = operkinds[k]
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("", tok.Pos)
		}
	}
}

// scanNum scans a maximal number literal into the buffer. The first rune must
// be a digit.
func (l *Lexer) scanNum() error {
	var dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			if e {
				ed = true
			}
			le = false
		case r == '.' && !dot && !e:
			dot = true
		case (r == 'e' || r == 'E') && !e:
			e = true
			le = true
		case (r == '+' || r == '-') && le:
			// Sign immediately following an exponent marker.
			le = false
		default:
			l.unreadRune()
			if e && !ed {
				return l.error("number", l.rune)
			}
			return nil
		}
		l.buf.WriteRune(r)
	}
	if e && !ed {
		return l.error("number", l.rune)
	}
	return nil
}

func (l *Lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// scanCall skips whitespace following a function name and reports whether the
// next rune is an open parenthesis, consuming it if so.
func (l *Lexer) scanCall(wseof string) (bool, error) {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch {
		case r == '(':
			return true, nil
		case unicode.IsSpace(r) && !strings.ContainsRune(wseof, r):
			continue
		default:
			l.unreadRune()
			return false, nil
		}
	}
}

func (l *Lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

// LexError indicates a character that cannot begin or continue a token. It
// implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" for
	// malformed number literals or the empty string for an unrecognized
	// character.
	Kind string
	// Col is the column of the rune that could not be scanned, or one past
	// the end of the input if the input ended in the middle of a token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "unrecognized character at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
