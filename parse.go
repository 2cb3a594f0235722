package symdiff

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Expr    = Term { ('+' | '-') Term }
// Term    = Power { ('*' | '/') Power }
// Power   = Factor [ '^' Power ]
// Factor  = num | name | '(' Expr ')' | funcname '(' Expr ')'

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type eofopt struct {
	ws string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// depth is the number of open parentheses around the current position.
	depth int
}

// eof returns the whitespace that ends the expression at the current
// position. Whitespace never ends an expression inside parentheses.
func (p *parsectx) eof() string {
	if p.depth > 0 {
		return ""
	}
	return p.wseof
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. Whitespace does not end an expression where a term is
// expected, e.g. at the beginning of an expression or following an operator,
// or anywhere inside parentheses. Parsing may then resume on the same reader
// to obtain the next expression.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("symdiff: cannot stop on " + strconv.QuoteRune(r))
		}
		if strings.ContainsRune(string(v), r) {
			continue
		}
		v = append(v, r)
	}
	return &eofopt{ws: string(v)}
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}

// Parse parses an expression so it can be evaluated or differentiated. The
// entire input must form one expression, unless StopOn ends it earlier.
func Parse[T Scalar[T]](src io.RuneScanner, opts ...ParseOption) (Expr[T], error) {
	scan := NewLexer(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseexpr[T](scan, &p)
	if err != nil {
		return Expr[T]{}, err
	}
	if tok := scan.must(); tok.Kind != End {
		return Expr[T]{}, unexpected(tok, End)
	}
	return Expr[T]{n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString[T Scalar[T]](src string, opts ...ParseOption) (Expr[T], error) {
	return Parse[T](strings.NewReader(src), opts...)
}

// parseexpr parses a sum of terms. If there is no error, then parseexpr pushes
// the last token it scans.
func parseexpr[T Scalar[T]](scan *Lexer, p *parsectx) (*node[T], error) {
	n, err := parseterm[T](scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		var k nodeKind
		switch tok.Kind {
		case Plus:
			k = nodeAdd
		case Minus:
			k = nodeSub
		default:
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseterm[T](scan, p)
		if err != nil {
			return nil, err
		}
		n = &node[T]{kind: k, left: n, right: rhs}
	}
}

// parseterm parses a product of powers. If there is no error, then parseterm
// pushes the last token it scans.
func parseterm[T Scalar[T]](scan *Lexer, p *parsectx) (*node[T], error) {
	n, err := parsepower[T](scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next(p.eof())
		if err != nil {
			return nil, err
		}
		var k nodeKind
		switch tok.Kind {
		case Star:
			k = nodeMul
		case Slash:
			k = nodeDiv
		default:
			scan.push(tok)
			return n, nil
		}
		rhs, err := parsepower[T](scan, p)
		if err != nil {
			return nil, err
		}
		n = &node[T]{kind: k, left: n, right: rhs}
	}
}

// parsepower parses a factor with an optional exponent. The exponent is itself
// a power, so a^b^c is a^(b^c). If there is no error, then parsepower pushes
// the last token it scans.
func parsepower[T Scalar[T]](scan *Lexer, p *parsectx) (*node[T], error) {
	n, err := parsefactor[T](scan, p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next(p.eof())
	if err != nil {
		return nil, err
	}
	if tok.Kind != Caret {
		scan.push(tok)
		return n, nil
	}
	rhs, err := parsepower[T](scan, p)
	if err != nil {
		return nil, err
	}
	return &node[T]{kind: nodePow, left: n, right: rhs}, nil
}

// parsefactor parses a single operand. It does not push a token.
func parsefactor[T Scalar[T]](scan *Lexer, p *parsectx) (*node[T], error) {
	// Whitespace never ends the input where an operand is required.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case Number:
		var z T
		v, err := z.parse(tok.Text)
		if err != nil {
			panic("symdiff: invalid number: " + tok.Text + " (" + err.Error() + ")")
		}
		return &node[T]{kind: nodeNum, num: v}, nil
	case Identifier:
		return &node[T]{kind: nodeName, name: tok.Text}, nil
	case LParen:
		return parsegroup[T](scan, p, nodeNone)
	case FunctionName:
		k := funckind(strings.TrimSuffix(tok.Text, "("))
		if k == nodeNone {
			panic("symdiff: unknown function token " + tok.String())
		}
		return parsegroup[T](scan, p, k)
	default:
		return nil, unexpected(tok, Number, Identifier, LParen, FunctionName)
	}
}

// parsegroup parses an expression followed by a close parenthesis, the open
// parenthesis having already been scanned. If k is not nodeNone, the result
// is wrapped in a node of that kind.
func parsegroup[T Scalar[T]](scan *Lexer, p *parsectx, k nodeKind) (*node[T], error) {
	p.depth++
	n, err := parseexpr[T](scan, p)
	p.depth--
	if err != nil {
		return nil, err
	}
	if end := scan.must(); end.Kind != RParen {
		return nil, unexpected(end, RParen)
	}
	if k != nodeNone {
		n = &node[T]{kind: k, left: n}
	}
	return n, nil
}
