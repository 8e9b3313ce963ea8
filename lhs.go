package notation

import (
	"strconv"
	"strings"
)

// LHS = "y" | Name | Name "(" [ArgList] ")"
// Name = Letter ["_{" Content "}"] {"'"}
// ArgList = Name {"," Name}
//
// Primes are accepted only when the symbol table allows them.

// Kind is the kind of thing a definition defines.
type Kind int8

const (
	KindNone Kind = iota
	// KindParameter is a numeric parameter.
	KindParameter
	// KindFunction is a named function.
	KindFunction
	// KindPlot is the anonymous plot y.
	KindPlot
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind

// LHS is the classified left-hand side of a definition. It is one of
// *Parameter, *Function, or AnonymousPlot.
type LHS interface {
	// Kind returns the kind of the definition.
	Kind() Kind
	// Ident returns the name being defined.
	Ident() string
	// String returns the canonical source form of the left-hand side.
	String() string

	lhs()
}

// Parameter is a definition of a numeric parameter.
type Parameter struct {
	Name string
}

// Function is a definition of a named function.
type Function struct {
	Name string
	// Params is the list of formal parameters in order.
	Params []string
}

// AnonymousPlot is the definition y = expr.
type AnonymousPlot struct{}

// PlotName is the name of the anonymous plot.
const PlotName = "y"

func (*Parameter) Kind() Kind { return KindParameter }
func (*Function) Kind() Kind { return KindFunction }
func (AnonymousPlot) Kind() Kind { return KindPlot }

func (p *Parameter) Ident() string { return p.Name }
func (f *Function) Ident() string { return f.Name }
func (AnonymousPlot) Ident() string { return PlotName }

func (*Parameter) lhs() {}
func (*Function) lhs() {}
func (AnonymousPlot) lhs() {}

func (p *Parameter) String() string {
	return p.Name
}

func (f *Function) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

func (AnonymousPlot) String() string {
	return PlotName
}

// Arity returns the number of formal parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Subscript returns the subscript of the function's name, if it has one.
func (f *Function) Subscript() (string, bool) {
	n, _ := splitName(f.Name)
	return n.sub, n.hassub
}

// ParseLHS classifies the left-hand side of a normalized definition using
// the default symbol table.
func ParseLHS(text string) (LHS, error) {
	return defaultSymbols.ParseLHS(text)
}

// ParseLHS classifies the left-hand side of a normalized definition. Names
// must be a single letter with an optional subscript; a name like index
// results in a *MultiLetterNameError suggesting i_{index}.
func (t *SymbolTable) ParseLHS(text string) (LHS, error) {
	return t.parseLHS([]rune(text), 0)
}

type lhsTokenKind int8

const (
	lhsNone lhsTokenKind = iota
	lhsEOF
	lhsName
	lhsOpen
	lhsClose
	lhsComma
)

type lhsToken struct {
	kind lhsTokenKind
	text string
	// letters is the number of letters in the base of a name.
	letters int
	pos     int
}

// lhsLexer scans the left-hand side of a definition. off is the number of
// runes of input preceding src, for positions.
type lhsLexer struct {
	src    []rune
	k      int
	off    int
	primes bool
	p      lhsToken
}

func (l *lhsLexer) push(tok lhsToken) {
	if l.p.kind != lhsNone {
		panic("notation: double push")
	}
	l.p = tok
}

func (l *lhsLexer) next() (lhsToken, error) {
	if l.p.kind != lhsNone {
		tok := l.p
		l.p = lhsToken{}
		return tok, nil
	}
	for l.k < len(l.src) && (l.src[l.k] == ' ' || l.src[l.k] == '\t') {
		l.k++
	}
	tok := lhsToken{pos: l.off + l.k + 1}
	if l.k >= len(l.src) {
		tok.kind = lhsEOF
		return tok, nil
	}
	r := l.src[l.k]
	switch {
	case r == '(':
		tok.kind, tok.text = lhsOpen, "("
		l.k++
	case r == ')':
		tok.kind, tok.text = lhsClose, ")"
		l.k++
	case r == ',':
		tok.kind, tok.text = lhsComma, ","
		l.k++
	case isLetter(r):
		start := l.k
		l.k = letterRun(l.src, l.k)
		tok.letters = l.k - start
		if l.k < len(l.src) && l.src[l.k] == '_' {
			e := subscriptEnd(l.src, l.k)
			switch {
			case e < 0 && l.k+1 < len(l.src) && l.src[l.k+1] == '{':
				return tok, &SyntaxError{Col: l.off + l.k + 1, Msg: "subscript is missing its closing brace"}
			case e < 0:
				return tok, &SyntaxError{Col: l.off + l.k + 1, Msg: "subscript must be enclosed in braces"}
			case e == l.k+3:
				return tok, &SyntaxError{Col: l.off + l.k + 1, Msg: "empty subscript"}
			}
			l.k = e
		}
		if l.primes {
			for l.k < len(l.src) && l.src[l.k] == '\'' {
				l.k++
			}
		}
		tok.kind, tok.text = lhsName, string(l.src[start:l.k])
	default:
		return tok, &SyntaxError{Col: tok.pos, Msg: "unexpected " + strconv.QuoteRune(r) + " in name"}
	}
	return tok, nil
}

func (t *SymbolTable) parseLHS(src []rune, off int) (LHS, error) {
	scan := &lhsLexer{src: src, off: off, primes: t.primes}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case lhsName: // do nothing
	case lhsEOF:
		return nil, &SyntaxError{Col: tok.pos, Msg: "missing name before ="}
	default:
		return nil, &SyntaxError{Col: tok.pos, Msg: "expected a name, not " + strconv.Quote(tok.text)}
	}
	fn := tok
	tok, err = scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case lhsEOF:
		if fn.text == PlotName {
			return AnonymousPlot{}, nil
		}
		if err := single(fn, false); err != nil {
			return nil, err
		}
		return &Parameter{Name: fn.text}, nil
	case lhsOpen:
		if err := single(fn, false); err != nil {
			return nil, err
		}
		params, err := parseParams(scan)
		if err != nil {
			return nil, err
		}
		return &Function{Name: fn.text, Params: params}, nil
	default:
		if fn.letters > 1 {
			return nil, single(fn, false)
		}
		return nil, &SyntaxError{Col: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text) + " after name"}
	}
}

// parseParams parses a formal parameter list following its open bracket,
// through the end of the input.
func parseParams(scan *lhsLexer) ([]string, error) {
	var params []string
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == lhsClose {
		// Arity zero.
		return params, end(scan)
	}
	scan.push(tok)
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != lhsName {
			return nil, &SyntaxError{Col: tok.pos, Msg: "expected a parameter name"}
		}
		if err := single(tok, true); err != nil {
			return nil, err
		}
		for _, p := range params {
			if p == tok.text {
				return nil, &SyntaxError{Col: tok.pos, Msg: "duplicate parameter " + strconv.Quote(tok.text)}
			}
		}
		params = append(params, tok.text)
		tok, err = scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case lhsComma: // continue
		case lhsClose:
			return params, end(scan)
		case lhsEOF:
			return nil, &SyntaxError{Col: tok.pos, Msg: "parameter list is missing its closing bracket"}
		default:
			return nil, &SyntaxError{Col: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text) + " in parameter list"}
		}
	}
}

// end checks that the lexer is at the end of its input.
func end(scan *lhsLexer) error {
	tok, err := scan.next()
	if err != nil {
		return err
	}
	if tok.kind != lhsEOF {
		return &SyntaxError{Col: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text) + " after parameter list"}
	}
	return nil
}

// single checks that a name token has a single letter base.
func single(tok lhsToken, param bool) error {
	if tok.letters <= 1 {
		return nil
	}
	r := []rune(tok.text)
	sub, rest := string(r[:tok.letters]), r[tok.letters:]
	// An existing subscript joins the word, as in ab_{1} to a_{ab1}.
	if e := subscriptEnd(rest, 0); e > 0 {
		sub += string(rest[2 : e-1])
		rest = rest[e:]
	}
	return &MultiLetterNameError{
		Col:        tok.pos,
		Name:       tok.text,
		Suggestion: string(r[0]) + "_{" + sub + "}" + string(rest),
		Param:      param,
	}
}
