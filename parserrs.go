package symdiff

import (
	"strconv"
	"strings"
)

// TokenError is an error indicating a token that is not allowed where it
// appears, including any token following a complete expression. It
// implements InputError.
type TokenError struct {
	// Col is the position of the unexpected token.
	Col int
	// Found is the token that was scanned.
	Found Token
	// Expected is the set of token kinds that would have been accepted.
	Expected []TokenKind
}

func (err *TokenError) Error() string {
	var b strings.Builder
	b.WriteString("unexpected ")
	if err.Found.Kind == End {
		b.WriteString("end of input")
	} else {
		b.WriteString(err.Found.Kind.String())
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(err.Found.Text))
	}
	if len(err.Expected) > 0 {
		b.WriteString(", expected ")
		for i, k := range err.Expected {
			if i > 0 {
				if i == len(err.Expected)-1 {
					b.WriteString(" or ")
				} else {
					b.WriteString(", ")
				}
			}
			b.WriteString(k.String())
		}
	}
	return errpos(err.Col, b.String())
}

func (err *TokenError) Pos() int {
	return err.Col
}

// unexpected creates a TokenError for tok.
func unexpected(tok Token, expected ...TokenKind) error {
	return &TokenError{Col: tok.Pos, Found: tok, Expected: expected}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the start of the token that
	// caused the error.
	Pos() int
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*LexError)(nil)
)
