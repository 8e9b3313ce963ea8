package workspace

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/eval"
)

// evaluation is the state of one top-level evaluation. Parameter values are
// computed at most once per evaluation.
type evaluation struct {
	ws     *Workspace
	funcs  map[string]eval.Func
	values map[string]*big.Float
	// stack is the names currently being evaluated, outermost first.
	stack []string
	// fixed holds values overriding parameters, e.g. the variable of a plot
	// being sampled.
	fixed map[string]*big.Float
}

// evaluation creates an evaluation over the current definitions.
func (ws *Workspace) evaluation() *evaluation {
	ev := &evaluation{
		ws:     ws,
		funcs:  make(map[string]eval.Func),
		values: make(map[string]*big.Float),
	}
	for name, e := range ws.entries {
		if e.Kind == notation.KindFunction {
			ev.funcs[name] = userFunc{ev: ev, e: e}
		}
	}
	return ev
}

// parse parses a right-hand side. Formal parameters shadow functions of the
// same name.
func (ev *evaluation) parse(rhs string, params []string) (*eval.Expr, error) {
	fns := make(map[string]eval.Func, len(ev.funcs)+len(params))
	for k, v := range ev.funcs {
		fns[k] = v
	}
	for _, p := range params {
		fns[p] = nil
	}
	opts := []eval.ParseOption{eval.ParseFuncs(fns)}
	if ev.ws.binder.Symbols.Complex() {
		opts = append(opts, eval.Imaginary())
	}
	return eval.Parse(rhs, opts...)
}

// enter marks name as being evaluated, or returns a CycleError if it already
// is.
func (ev *evaluation) enter(name string) error {
	for i, n := range ev.stack {
		if n == name {
			path := append(append([]string(nil), ev.stack[i:]...), name)
			return &CycleError{Path: path}
		}
	}
	ev.stack = append(ev.stack, name)
	return nil
}

func (ev *evaluation) leave() {
	ev.stack = ev.stack[:len(ev.stack)-1]
}

// value computes the value of a live name used as a variable.
func (ev *evaluation) value(name string) (*big.Float, error) {
	if v := ev.fixed[name]; v != nil {
		return v, nil
	}
	if v := ev.values[name]; v != nil {
		return v, nil
	}
	e := ev.ws.entries[name]
	if e == nil {
		return nil, &UndefinedError{Name: name}
	}
	if e.Kind == notation.KindFunction {
		return nil, &KindError{Name: name, Kind: e.Kind, Want: notation.KindParameter}
	}
	if e.value != nil {
		ev.values[name] = e.value
		return e.value, nil
	}
	if err := ev.enter(name); err != nil {
		return nil, err
	}
	defer ev.leave()
	r, err := ev.run(e, nil)
	if err != nil {
		return nil, err
	}
	if e.Kind == notation.KindParameter {
		// The plot depends on whatever its variable is fixed to, so only
		// parameters are remembered.
		ev.values[name] = r
	}
	return r, nil
}

// call evaluates a user function with arguments.
func (ev *evaluation) call(e *Entry, args []*big.Float) (*big.Float, error) {
	if len(args) != len(e.Params) {
		return nil, fmt.Errorf("%s takes %d arguments, not %d", e.Name, len(e.Params), len(args))
	}
	if err := ev.enter(e.Name); err != nil {
		return nil, err
	}
	defer ev.leave()
	bound := make(map[string]*big.Float, len(args))
	for i, p := range e.Params {
		bound[p] = args[i]
	}
	return ev.run(e, bound)
}

// run evaluates the right-hand side of an entry with its formal parameters
// bound.
func (ev *evaluation) run(e *Entry, bound map[string]*big.Float) (*big.Float, error) {
	x, err := ev.parse(e.RHS, e.Params)
	if err != nil {
		return nil, &CompileError{Name: e.Name, RHS: e.RHS, Err: err}
	}
	vars := make(map[string]*big.Float, len(x.Vars()))
	for _, name := range x.Vars() {
		if v := bound[name]; v != nil {
			vars[name] = v
			continue
		}
		v, err := ev.value(name)
		if err != nil {
			return nil, err
		}
		vars[name] = v
	}
	ctx := eval.NewContext(eval.Prec(ev.ws.prec), eval.SetVars(vars))
	r := ctx.Eval(x)
	if r == nil {
		if e.Name == "" {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", e.Name, ctx.Err())
	}
	return new(big.Float).Copy(r), nil
}

// userFunc is a function defined in a workspace, as seen by the evaluator.
type userFunc struct {
	ev *evaluation
	e  *Entry
}

func (f userFunc) Call(ctx *eval.Context, args []*big.Float, r *big.Float) error {
	v, err := f.ev.call(f.e, args)
	if err != nil {
		return err
	}
	r.SetPrec(ctx.Prec()).Set(v)
	return nil
}

func (f userFunc) CanCall(n int) bool {
	return n == len(f.e.Params)
}

// Value evaluates a parameter or the plot at the current values of its
// dependencies.
func (ws *Workspace) Value(name string) (*big.Float, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.evaluation().value(name)
}

// Evaluate evaluates an expression, like "f(2) + a", against the live
// definitions. The expression is normalized and rewritten the same way as
// the right-hand side of a definition, but it defines nothing.
func (ws *Workspace) Evaluate(input string) (*big.Float, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	t := ws.binder.Symbols
	rhs := t.InsertImplicitMultiplication(strings.TrimSpace(t.Normalize(input)))
	return ws.evaluation().run(&Entry{RHS: rhs}, nil)
}

// Call evaluates a function with arguments. The plot may be called with one
// argument, which is used as the value of its variable.
func (ws *Workspace) Call(name string, args ...*big.Float) (*big.Float, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	e := ws.entries[name]
	if e == nil {
		return nil, &UndefinedError{Name: name}
	}
	ev := ws.evaluation()
	switch e.Kind {
	case notation.KindFunction:
		return ev.call(e, args)
	case notation.KindPlot:
		return ev.plot(e, args)
	default:
		return nil, &KindError{Name: name, Kind: e.Kind, Want: notation.KindFunction}
	}
}

// plot evaluates the plot with its variable fixed to args[0].
func (ev *evaluation) plot(e *Entry, args []*big.Float) (*big.Float, error) {
	switch len(args) {
	case 0:
		return ev.value(e.Name)
	case 1:
		v := e.Var()
		if v == "" {
			return ev.value(e.Name)
		}
		ev.fixed = map[string]*big.Float{v: args[0]}
		// Values computed before fixing the variable may depend on it.
		ev.values = make(map[string]*big.Float)
		return ev.value(e.Name)
	default:
		return nil, fmt.Errorf("%s takes 1 argument, not %d", e.Name, len(args))
	}
}

// Point is a sample of a function or the plot.
type Point struct {
	X, Y *big.Float
	// Err is the reason Y could not be computed, if it is nil.
	Err error
}

// Sample evaluates a function of one variable or the plot at n evenly spaced
// points from from to to inclusive. Points outside the domain of the function
// have a nil Y and a non-nil Err. Errors unrelated to the domain, like
// cycles, stop sampling.
func (ws *Workspace) Sample(name string, from, to *big.Float, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, not %d", n)
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	e := ws.entries[name]
	if e == nil {
		return nil, &UndefinedError{Name: name}
	}
	switch {
	case e.Kind == notation.KindFunction && len(e.Params) == 1:
	case e.Kind == notation.KindPlot:
	default:
		return nil, &KindError{Name: name, Kind: e.Kind, Want: notation.KindFunction}
	}
	step := new(big.Float).SetPrec(ws.prec).Sub(to, from)
	step.Quo(step, new(big.Float).SetInt64(int64(n-1)))
	r := make([]Point, n)
	for i := range r {
		x := new(big.Float).SetPrec(ws.prec).SetInt64(int64(i))
		x.Mul(x, step).Add(x, from)
		ev := ws.evaluation()
		var y *big.Float
		var err error
		if e.Kind == notation.KindFunction {
			y, err = ev.call(e, []*big.Float{x})
		} else {
			y, err = ev.plot(e, []*big.Float{x})
		}
		if err != nil && !isDomain(err) {
			return nil, err
		}
		r[i] = Point{X: x, Y: y, Err: err}
	}
	log.WithFields(log.Fields{"name": name, "n": n}).Debug("sampled")
	return r, nil
}

// isDomain reports whether err means only that a point is outside the domain
// of some function.
func isDomain(err error) bool {
	var nan big.ErrNaN
	return errors.As(err, new(*eval.DomainError)) ||
		errors.As(err, &nan) ||
		errors.Is(err, eval.ErrComplex)
}
