package eval

import (
	"errors"
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call sets r to the function's value at args, a list of a length for
	// which CanCall is true. Call may modify the elements of args.
	Call(ctx *Context, args []*big.Float, r *big.Float) error

	// CanCall reports whether the function takes n arguments. A name that
	// can be called with no arguments is a constant. A name that can be
	// called with one argument may take it without brackets, as in "exp x".
	CanCall(n int) bool
}

// constants are the names of the niladic functions which stand for numbers.
var constants = []string{"e", "π", "τ"}

var globalfuncs = map[string]Func{
	"exp":  Monadic(bigfloat.Exp),
	"ln":   logfn{},
	"log":  logfn{base10: true},
	"sqrt": Monadic(sqrt),

	// trig and hyperbolic functions are computed in float64
	"sin":   Float64(math.Sin),
	"cos":   Float64(math.Cos),
	"tan":   Float64(math.Tan),
	"sec":   Float64(func(x float64) float64 { return 1 / math.Cos(x) }),
	"csc":   Float64(func(x float64) float64 { return 1 / math.Sin(x) }),
	"cot":   Float64(func(x float64) float64 { return 1 / math.Tan(x) }),
	"asin":  Float64(math.Asin),
	"acos":  Float64(math.Acos),
	"atan":  Float64(math.Atan),
	"sinh":  Float64(math.Sinh),
	"cosh":  Float64(math.Cosh),
	"tanh":  Float64(math.Tanh),
	"asinh": Float64(math.Asinh),
	"acosh": Float64(math.Acosh),
	"atanh": Float64(math.Atanh),

	"abs":   Monadic((*big.Float).Abs),
	"floor": Monadic(floor),
	"ceil":  Monadic(ceil),
	"round": Monadic(round),
	"sign": Monadic(func(out, in *big.Float) *big.Float {
		return out.SetInt64(int64(in.Sign()))
	}),
	"min": extremum{less: true},
	"max": extremum{},

	// constants
	"π": Niladic(bigfloat.Pi),
	"τ": Niladic(func(out *big.Float) *big.Float {
		bigfloat.Pi(out)
		return out.Add(out, out)
	}),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// FuncNames returns the names of the default functions, not including
// constants, in sorted order.
func FuncNames() []string {
	r := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		if !IsConstant(k) {
			r = append(r, k)
		}
	}
	sort.Strings(r)
	return r
}

// IsConstant returns whether name is one of the default constants, e, π, or
// τ.
func IsConstant(name string) bool {
	for _, c := range constants {
		if c == name {
			return true
		}
	}
	return false
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	in := args[0]
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok || !errors.As(e, new(*DomainError)) && !errors.As(e, new(big.ErrNaN)) {
			panic(p)
		}
		err = e
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of in; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with an error of
// type big.ErrNaN or *DomainError, or that unwraps to one.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

type float64fn struct {
	f func(float64) float64
}

func (m float64fn) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	x, _ := args[0].Float64()
	y := m.f(x)
	if math.IsNaN(y) {
		return &DomainError{X: new(big.Float).Copy(args[0]), Arg: 1}
	}
	r.SetPrec(ctx.Prec()).SetFloat64(y)
	return nil
}

func (m float64fn) CanCall(n int) bool {
	return n == 1
}

// Float64 wraps a function of one float64 variable into a Func. Arguments are
// rounded to float64 and results have at most float64 precision. A NaN result
// becomes a DomainError.
func Float64(f func(float64) float64) Func {
	return float64fn{f}
}

// logfn is the natural logarithm, or with base10, the common logarithm which
// also accepts an explicit base as a second argument.
type logfn struct {
	base10 bool
}

func (l logfn) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	for i, x := range args {
		if x.Signbit() && x.Sign() != 0 {
			return &DomainError{X: new(big.Float).Copy(x), Arg: i + 1}
		}
		if x.Sign() == 0 {
			// Log panics on -0.
			x.Abs(x)
		}
	}
	r.SetPrec(ctx.Prec())
	bigfloat.Log(r, args[0])
	if !l.base10 {
		return nil
	}
	base := new(big.Float).SetPrec(ctx.Prec()).SetFloat64(10)
	if len(args) > 1 {
		base.Set(args[1])
	}
	if base.Sign() == 0 || base.Cmp(big.NewFloat(1)) == 0 {
		return &DomainError{X: base, Arg: 2}
	}
	bigfloat.Log(base, base)
	r.Quo(r, base)
	return nil
}

func (l logfn) CanCall(n int) bool {
	return n == 1 || l.base10 && n == 2
}

// extremum is min or max of any positive number of arguments.
type extremum struct {
	less bool
}

func (m extremum) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	best := args[0]
	for _, x := range args[1:] {
		if c := x.Cmp(best); c < 0 && m.less || c > 0 && !m.less {
			best = x
		}
	}
	r.SetPrec(ctx.Prec()).Set(best)
	return nil
}

func (extremum) CanCall(n int) bool {
	return n > 0
}

// imaginary is the imaginary unit in a real-valued evaluator.
type imaginary struct{}

func (imaginary) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	return ErrComplex
}

func (imaginary) CanCall(n int) bool {
	return n == 0
}

func sqrt(out, in *big.Float) *big.Float {
	if in.Sign() < 0 {
		panic(&DomainError{X: new(big.Float).Copy(in), Arg: 1})
	}
	return out.Sqrt(in)
}

// trunc sets out to in rounded toward zero and reports whether that changed
// the value.
func trunc(out, in *big.Float) big.Accuracy {
	if in.IsInf() {
		out.Set(in)
		return big.Exact
	}
	i, acc := in.Int(nil)
	out.SetInt(i)
	return acc
}

func floor(out, in *big.Float) *big.Float {
	if trunc(out, in) == big.Above {
		out.Sub(out, big.NewFloat(1))
	}
	return out
}

func ceil(out, in *big.Float) *big.Float {
	if trunc(out, in) == big.Below {
		out.Add(out, big.NewFloat(1))
	}
	return out
}

// round rounds half away from zero.
func round(out, in *big.Float) *big.Float {
	if in.IsInf() || in.IsInt() {
		return out.Set(in)
	}
	h := new(big.Float).SetPrec(in.Prec() + 1).SetFloat64(0.5)
	if in.Signbit() {
		h.Neg(h)
	}
	h.Add(h, in)
	trunc(out, h)
	return out
}
