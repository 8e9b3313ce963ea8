package eval

import (
	"errors"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context holds variable values and the precision for evaluating
// expressions. A Context must not be used concurrently.
type Context struct {
	vars map[string]*big.Float
	// nums caches parsed numbers at prec.
	nums map[string]*big.Float
	prec uint
	err  error
}

// ContextOption is an option for NewContext.
type ContextOption interface {
	apply(*Context)
}

type (
	varsOption map[string]*big.Float
	precOption uint
)

func (o varsOption) apply(ctx *Context) {
	for k, v := range o {
		ctx.vars[k] = v
	}
}

func (o precOption) apply(ctx *Context) {
	ctx.prec = uint(o)
}

// SetVars gives values to variables. The context does not modify them.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsOption(vars)
}

// Prec sets the precision of results. The default is 64.
func Prec(prec uint) ContextOption {
	return precOption(prec)
}

// NewContext creates an evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		vars: make(map[string]*big.Float),
		nums: make(map[string]*big.Float),
		prec: 64,
	}
	for _, opt := range opts {
		opt.apply(&ctx)
	}
	return &ctx
}

// Eval evaluates an expression. If evaluation fails, e.g. because a variable
// has no value or a function is called outside its domain, the result is nil
// and Err returns the reason.
func (ctx *Context) Eval(ex *Expr) (r *big.Float) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		err, ok := p.(error)
		if !ok || !errors.As(err, new(big.ErrNaN)) {
			panic(p)
		}
		r, ctx.err = nil, err
	}()
	r, ctx.err = ex.n.eval(ctx)
	return r
}

// Err returns the error from the last call to Eval.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision of results.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// EvalString parses and evaluates an expression with the default functions.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	ex, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	r := ctx.Eval(ex)
	return r, ctx.Err()
}

// num returns the value of a number token.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	t := s
	if t == "∞" {
		t = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(t, 10)
	switch {
	case err == nil:
	case err.Error() == "exponent overflow", strings.HasSuffix(err.Error(), "value out of range"):
		// Parse reports overflow only through its message.
		r = new(big.Float).SetInf(false)
	default:
		panic("eval: lexer accepted invalid number " + s + ": " + err.Error())
	}
	ctx.nums[s] = r
	return r
}

// eval computes the value of n. The result is always a new value.
func (n *node) eval(ctx *Context) (*big.Float, error) {
	switch n.kind {
	case numNode:
		return new(big.Float).SetPrec(ctx.prec).Set(ctx.num(n.text)), nil
	case varNode:
		v := ctx.vars[n.text]
		if v == nil {
			return nil, &NameError{Name: n.text}
		}
		return new(big.Float).SetPrec(ctx.prec).Set(v), nil
	case callNode:
		args := make([]*big.Float, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(ctx)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		r := new(big.Float).SetPrec(ctx.prec)
		if err := n.fn.Call(ctx, args, r); err != nil {
			return nil, attribute(n.text, err)
		}
		return r, nil
	case negNode:
		x, err := n.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	}
	l, err := n.args[0].eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.args[1].eval(ctx)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case addNode:
		return l.Add(l, r), nil
	case subNode:
		return l.Sub(l, r), nil
	case mulNode:
		return l.Mul(l, r), nil
	case divNode:
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{X: r, Arg: 2, Func: "/"}
		}
		return l.Quo(l, r), nil
	case powNode:
		if err := pow(l, r); err != nil {
			return nil, err
		}
		return l, nil
	}
	panic("eval: bad node kind")
}

// pow sets l to l^r. A negative base needs an integer exponent.
func pow(l, r *big.Float) error {
	odd := false
	switch {
	case l.Sign() == 0:
		// Pow rejects -0.
		l.Abs(l)
	case l.Signbit():
		if !r.IsInt() {
			return &DomainError{X: new(big.Float).Copy(l), Arg: 1, Func: "^"}
		}
		i, _ := r.Int(nil)
		odd = i.Bit(0) == 1
		l.Neg(l)
	}
	// Pow returns a new value for some arguments instead of setting its
	// first.
	l.Set(bigfloat.Pow(new(big.Float).SetPrec(l.Prec()), l, r))
	if odd {
		l.Neg(l)
	}
	return nil
}

// attribute names the function responsible for a domain error.
func attribute(name string, err error) error {
	if d, ok := err.(*DomainError); ok && d.Func == "" {
		d.Func = name
	}
	return err
}
