package eval

import (
	"sort"
	"strings"
)

// Expr is a parsed expression.
type Expr struct {
	n    *node
	vars []string
}

// Parse parses an expression. The default functions and constants are
// available unless options remove them.
//
// Operators bind in the usual order: ^ is right-associative and binds
// tightest, then unary signs, then *, /, and juxtaposition, then + and -. A
// function name followed by a bracketed list is a call. A function of one
// argument may also be called without brackets, as in "sin x", in which case
// its argument is the single factor that follows, so "sin x^2" is sin(x^2)
// while "sin 2*x" is sin(2)*x. A bracketed term after anything else is a
// multiplication.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := parser{
		lex:   lex(strings.NewReader(src)),
		funcs: make(map[string]Func, len(globalfuncs)),
	}
	for k, v := range globalfuncs {
		p.funcs[k] = v
	}
	for _, opt := range opts {
		opt.apply(&p)
	}
	p.lex.funcs = p.funcs
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		// sum consumes everything else.
		panic("eval: parse stopped at " + tok.String())
	}
	m := make(map[string]bool)
	n.vars(m)
	ex := Expr{n: n, vars: make([]string, 0, len(m))}
	for k := range m {
		ex.vars = append(ex.vars, k)
	}
	sort.Strings(ex.vars)
	return &ex, nil
}

// Vars returns the sorted names of the variables in the expression.
func (ex *Expr) Vars() []string {
	return ex.vars
}

// String formats the expression with each operation in parentheses.
func (ex *Expr) String() string {
	var b strings.Builder
	ex.n.format(&b)
	return b.String()
}

type parser struct {
	lex   *lexer
	funcs map[string]Func
	// tok is the lookahead token when ahead is true.
	tok   lexToken
	ahead bool
}

// peek returns the next token without consuming it.
func (p *parser) peek() (lexToken, error) {
	if p.ahead {
		return p.tok, nil
	}
	tok, err := p.lex.next()
	if err != nil {
		return tok, err
	}
	p.tok, p.ahead = tok, true
	return tok, nil
}

// take consumes the token returned by the last peek.
func (p *parser) take() lexToken {
	p.ahead = false
	return p.tok
}

// operand reports whether tok begins a factor with no sign.
func operand(tok lexToken) bool {
	switch tok.kind {
	case tokenNum, tokenIdent, tokenOpen:
		return true
	}
	return false
}

// sum parses terms joined by + and -.
func (p *parser) sum() (*node, error) {
	l, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "+" && tok.text != "-" {
			return l, nil
		}
		p.take()
		r, err := p.product()
		if err != nil {
			return nil, err
		}
		l = binary(tok.text, l, r)
	}
}

// product parses factors joined by multiplication, division, or nothing.
func (p *parser) product() (*node, error) {
	l, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenOp && strings.Contains("*×/÷", tok.text):
			p.take()
			r, err := p.factor()
			if err != nil {
				return nil, err
			}
			l = binary(tok.text, l, r)
		case operand(tok):
			r, err := p.power()
			if err != nil {
				return nil, err
			}
			l = binary("*", l, r)
		default:
			return l, nil
		}
	}
}

// factor parses a power with any number of leading signs.
func (p *parser) factor() (*node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "+" && tok.text != "-" {
		return p.power()
	}
	p.take()
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	if tok.text == "+" {
		return x, nil
	}
	return &node{kind: negNode, args: []*node{x}}, nil
}

// power parses a primary, possibly raised to a signed exponent.
func (p *parser) power() (*node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "^" {
		return x, nil
	}
	p.take()
	y, err := p.factor()
	if err != nil {
		return nil, err
	}
	return binary("^", x, y), nil
}

// primary parses a number, name, call, or bracketed expression.
func (p *parser) primary() (*node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		p.take()
		return &node{kind: numNode, text: tok.text}, nil
	case tokenIdent:
		p.take()
		if fn := p.funcs[tok.text]; fn != nil {
			return p.call(tok, fn)
		}
		return &node{kind: varNode, text: tok.text}, nil
	case tokenOpen:
		p.take()
		return p.group(tok)
	case tokenOp:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
	default:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
}

// group parses the rest of a bracketed expression opened by open.
func (p *parser) group(open lexToken) (*node, error) {
	x, err := p.sum()
	if err != nil {
		return nil, err
	}
	if _, err := p.close(open); err != nil {
		return nil, err
	}
	return x, nil
}

// close consumes the bracket matching open.
func (p *parser) close(open lexToken) (lexToken, error) {
	tok, err := p.peek()
	if err != nil {
		return tok, err
	}
	switch tok.kind {
	case tokenClose:
		if strings.Index(OpenBrackets, open.text) != strings.Index(CloseBrackets, tok.text) {
			return tok, &BracketError{Col: tok.pos, Left: open.text, Right: tok.text}
		}
		return p.take(), nil
	case tokenSep:
		return tok, &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return tok, &BracketError{Col: open.pos, Left: open.text}
	}
}

// call parses the arguments of a function named by tok.
func (p *parser) call(tok lexToken, fn Func) (*node, error) {
	c := &node{kind: callNode, text: tok.text, fn: fn}
	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case next.kind == tokenOpen:
		p.take()
		args, end, err := p.arglist(next)
		if err != nil {
			return nil, err
		}
		switch {
		case fn.CanCall(len(args)):
			c.args = args
			return c, nil
		case len(args) == 1 && fn.CanCall(0):
			// A constant times a bracketed term, like π(r+1).
			return binary("*", c, args[0]), nil
		default:
			return nil, &CallError{Col: end.pos, Func: tok.text, Len: len(args)}
		}
	case fn.CanCall(0):
		return c, nil
	case fn.CanCall(1) && operand(next):
		x, err := p.power()
		if err != nil {
			return nil, err
		}
		c.args = []*node{x}
		return c, nil
	default:
		n := 0
		if operand(next) {
			n = 1
		}
		return nil, &CallError{Col: tok.pos, Func: tok.text, Len: n}
	}
}

// arglist parses comma-separated arguments up to the bracket matching open.
// It returns the closing bracket.
func (p *parser) arglist(open lexToken) ([]*node, lexToken, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, tok, err
	}
	if tok.kind == tokenClose {
		end, err := p.close(open)
		return nil, end, err
	}
	var args []*node
	for {
		x, err := p.sum()
		if err != nil {
			return nil, tok, err
		}
		args = append(args, x)
		tok, err = p.peek()
		if err != nil {
			return nil, tok, err
		}
		if tok.kind != tokenSep {
			end, err := p.close(open)
			return args, end, err
		}
		p.take()
	}
}
