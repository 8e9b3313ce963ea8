package eval_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/notation/eval"
)

func floats(m map[string]float64) map[string]*big.Float {
	r := make(map[string]*big.Float, len(m))
	for k, v := range m {
		r[k] = big.NewFloat(v)
	}
	return r
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]float64
		want float64
	}{
		{"num", "1", nil, 1},
		{"ident", "x", map[string]float64{"x": 4}, 4},
		{"plus", "+x", map[string]float64{"x": 5}, 5},
		{"neg", "-x", map[string]float64{"x": 6}, -6},
		{"add", "4+5+6", nil, 4 + 5 + 6},
		{"sub", "4-5-6", nil, 4 - 5 - 6},
		{"mul", "4*5*6", nil, 4 * 5 * 6},
		{"div", "4/5/6", nil, 4.0 / 5.0 / 6.0},
		{"pow", "4^3^2", nil, 262144},
		{"neg-pow", "-2^2", nil, -4},
		{"pow-neg", "2^-1", nil, 0.5},
		{"pi", "π", nil, math.Pi},
		{"tau", "τ", nil, 2 * math.Pi},
		{"e", "e", nil, math.E},
		{"exp", "exp 1", nil, math.E},
		{"inf", "∞", nil, math.Inf(0)},
		{"log", "log 1000", nil, 3},
		{"log-base", "log(8, 2)", nil, 3},
		{"ln", "ln e", nil, 1},
		{"pow-neg-int", "(-2)^3", nil, -8},
		{"pow-neg-even", "(-2)^2", nil, 4},
		{"sin", "sin(x)", map[string]float64{"x": 1}, math.Sin(1)},
		{"cos", "cos x", map[string]float64{"x": 0}, 1},
		{"bare-power", "sin x^2", map[string]float64{"x": 1}, math.Sin(1)},
		{"abs", "abs(-x)", map[string]float64{"x": 2.5}, 2.5},
		{"floor", "floor(x)", map[string]float64{"x": -2.5}, -3},
		{"ceil", "ceil(x)", map[string]float64{"x": -2.5}, -2},
		{"round", "round(x)", map[string]float64{"x": 2.5}, 3},
		{"round-neg", "round(x)", map[string]float64{"x": -2.5}, -3},
		{"sign", "sign(x)", map[string]float64{"x": -7}, -1},
		{"min", "min(3, x, 2)", map[string]float64{"x": 1}, 1},
		{"max", "max(3, x, 2)", map[string]float64{"x": 1}, 3},
		{"implicit", "2xy", map[string]float64{"x": 3, "y": 4}, 24},
		{"subscript", "ax_{mode}", map[string]float64{"a": 2, "x_{mode}": 3}, 6},
		{"number-group", "2(x+1)", map[string]float64{"x": 2}, 6},
		{"name-group", "x(x+1)", map[string]float64{"x": 2}, 6},
		{"name-space-group", "x (x+1)", map[string]float64{"x": 2}, 6},
		{"group-group", "(x-1)[x+1]", map[string]float64{"x": 3}, 8},
		{"constant-group", "π(r+1)", map[string]float64{"r": 1}, 2 * math.Pi},
		{"spaced", "a t", map[string]float64{"a": 2, "t": 5}, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := eval.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			ctx := eval.NewContext(eval.Prec(64), eval.SetVars(floats(c.vars)))
			r := ctx.Eval(a)
			if err := ctx.Err(); err != nil {
				t.Fatalf("%q: evaluation error: %v", c.src, err)
			}
			if f, _ := r.Float64(); f != c.want {
				t.Errorf("%q: want %g, got %g", c.src, c.want, r)
			}
		})
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"x", "x"},
		{"neg", "-x"},
		{"add-rhs", "1+x"},
		{"mul-lhs", "x*1"},
		{"div-rhs", "1/x"},
		{"pow-rhs", "1^x"},
		{"call", "exp(x)"},
		{"group", "2(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := eval.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); !reflect.DeepEqual(v, []string{"x"}) {
				t.Errorf("%q gave wrong variables %q", c.src, v)
			}
			ctx := eval.NewContext()
			if r := ctx.Eval(a); r != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, r)
			}
			var u *eval.NameError
			if !errors.As(ctx.Err(), &u) {
				t.Fatalf("error was %#v, not NameError", ctx.Err())
			}
			if u.Name != "x" || !strings.Contains(u.Error(), `"x"`) {
				t.Errorf("wrong name error %q", u.Error())
			}
		})
	}
}

func TestEvalDomainError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		fn   string
	}{
		{"sqrt", "sqrt(-1)", "sqrt"},
		{"log", "log(-1)", "log"},
		{"log-base", "log(1, -1)", "log"},
		{"log-base-one", "log(8, 1)", "log"},
		{"div-zero", "0/0", "/"},
		{"div-inf", "∞/∞", "/"},
		{"div-alt-zero", "0÷0", "/"},
		{"pow-neg", "(-1)^0.5", "^"},
		{"asin", "asin 2", "asin"},
		{"acosh", "acosh 0", "acosh"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := eval.EvalString(c.src)
			var d *eval.DomainError
			if !errors.As(err, &d) {
				t.Fatalf("%q: %#v is not *eval.DomainError", c.src, err)
			}
			if d.Func != c.fn {
				t.Errorf("%q: want domain error of %s, got %v", c.src, c.fn, d)
			}
		})
	}
}

func TestEvalNaN(t *testing.T) {
	for _, src := range []string{"∞-∞", "0∞", "∞+-∞"} {
		r, err := eval.EvalString(src)
		if r != nil {
			t.Errorf("%q gave %g", src, r)
		}
		if !errors.As(err, new(big.ErrNaN)) {
			t.Errorf("%q: want big.ErrNaN, got %#v", src, err)
		}
	}
}

func TestContextReuse(t *testing.T) {
	ctx := eval.NewContext(eval.SetVars(floats(map[string]float64{"x": 2})))
	bad, err := eval.Parse("y")
	if err != nil {
		t.Fatal(err)
	}
	good, err := eval.Parse("x^2")
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Eval(bad) != nil || ctx.Err() == nil {
		t.Fatal("y evaluated")
	}
	if r := ctx.Eval(good); r == nil || ctx.Err() != nil {
		t.Fatalf("x^2 failed after a failure: %v", ctx.Err())
	} else if f, _ := r.Float64(); f != 4 {
		t.Errorf("want 4, got %g", r)
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", []string{}},
		{"one", "1+2+x", []string{"x"}},
		{"sort", "z+y+x+w+b+a", strings.Fields("a b w x y z")},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
		{"call-arg", "sin(t) + f_{1}", []string{"f_{1}", "t"}},
		{"constants", "πe τ", []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := eval.Parse(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := a.Vars()
			if !reflect.DeepEqual(vars, c.vars) {
				t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
		})
	}
}

func BenchmarkEval(b *testing.B) {
	vars := floats(map[string]float64{"x": 2, "y": 3, "z": 4})
	for _, src := range []string{"2+3+4", "x+y+z", "sin(x) y^z"} {
		b.Run(src, func(b *testing.B) {
			b.ReportAllocs()
			a, err := eval.Parse(src)
			if err != nil {
				b.Fatal(err)
			}
			ctx := eval.NewContext(eval.SetVars(vars))
			for i := 0; i < b.N; i++ {
				ctx.Eval(a)
			}
		})
	}
}

func Example() {
	fx, _ := eval.Parse("x^3/2 - x")
	dfx, _ := eval.Parse("3 x^2/2 - 1")
	ddfx, _ := eval.Parse("3 x")

	for i := 0; i < 4; i++ {
		x := big.NewFloat(float64(i))
		ctx := eval.NewContext(eval.SetVars(map[string]*big.Float{"x": x}))
		y := ctx.Eval(fx)
		yp := ctx.Eval(dfx)
		ypp := ctx.Eval(ddfx)
		fmt.Printf("x = %g   y = %-4g  y' = %-4g  y'' = %g\n", x, y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}
