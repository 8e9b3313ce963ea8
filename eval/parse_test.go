package eval

import (
	"errors"
	"math/big"
	"reflect"
	"regexp"
	"testing"
)

type mockfn struct {
	can []int
}

func mockFunc(n ...int) Func {
	return mockfn{can: n}
}

func (f mockfn) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	return nil
}

func (f mockfn) CanCall(n int) bool {
	for _, v := range f.can {
		if v == n {
			return true
		}
	}
	return false
}

var testfns = map[string]Func{
	"zero":    mockFunc(0),
	"one":     mockFunc(1),
	"zeroone": mockFunc(0, 1),
	"five":    mockFunc(5),
	"f_{1}":   mockFunc(1),
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"paren", "(x)", "x"},
		{"square", "[x]", "x"},
		{"curly", "{x}", "x"},
		{"nested", "([{{[((x))]}}])", "x"},

		{"plus", "+x", "x"},
		{"neg", "-x", "(-x)"},
		{"negnum", "-1", "(-1)"},
		{"add", "x+y", "(x + y)"},
		{"sub", "x-y", "(x - y)"},
		{"mul", "x*y", "(x * y)"},
		{"div", "x/y", "(x / y)"},
		{"pow", "x^y", "(x ^ y)"},
		{"altmul", "x×y", "(x * y)"},
		{"altdiv", "x÷y", "(x / y)"},
		{"terms", "x y", "(x * y)"},
		{"parenterms", "x(y)", "(x * y)"},

		{"number-sum", "2(x+1)", "(2 * (x + 1))"},
		{"name-sum", "x(x+1)", "(x * (x + 1))"},
		{"name-space-sum", "x (x+1)", "(x * (x + 1))"},
		{"sum-sum", "(a)(b+c)", "(a * (b + c))"},
		{"mul-sum", "x*y(z-w)", "((x * y) * (z - w))"},
		{"sum-pow", "2(x+1)^2", "(2 * ((x + 1) ^ 2))"},

		{"call0", "zero()", "zero()"},
		{"call0-bare", "zero", "zero()"},
		{"call0-terms", "zero x", "(zero() * x)"},
		{"call0-paren", "zero(x)", "(zero() * x)"},
		{"call0-up", "zero^x(y)", "((zero() ^ x) * y)"},
		{"call1", "one(x+y)", "one((x + y))"},
		{"call1-bare", "one x", "one(x)"},
		{"call1-bare-pow", "one x^y", "one((x ^ y))"},
		{"call1-bare-terms", "one x y", "(one(x) * y)"},
		{"call1-bare-add", "one x + y", "(one(x) + y)"},
		{"call1-nested", "one one x", "one(one(x))"},
		{"call1-up", "one(x)^2", "(one(x) ^ 2)"},
		{"zeroone", "zeroone(x)", "zeroone(x)"},
		{"zeroone-bare", "zeroone x", "(zeroone() * x)"},
		{"call5", "five(a, b, c, d, v)", "five(a, b, c, d, v)"},
		{"subscripted-call", "f_{1}(x)", "f_{1}(x)"},
		{"constant-sum", "π(r+1)", "(π() * (r + 1))"},

		{"add4", "w+x+y+z", "(((w + x) + y) + z)"},
		{"sub4", "w-x-y-z", "(((w - x) - y) - z)"},
		{"mul4", "w*x*y*z", "(((w * x) * y) * z)"},
		{"div4", "w/x/y/z", "(((w / x) / y) / z)"},
		{"pow4", "w^x^y^z", "(w ^ (x ^ (y ^ z)))"},
		{"terms4", "w x y z", "(((w * x) * y) * z)"},

		{"negpow", "-1^n", "(-(1 ^ n))"},
		{"desc", "w^x*y+z", "(((w ^ x) * y) + z)"},
		{"asc", "w+x*y^z", "(w + (x * (y ^ z)))"},
		{"negneg", "--x", "(-(-x))"},
		{"negsub", "-x-x", "((-x) - x)"},
		{"powparen", "x^y(z)", "((x ^ y) * z)"},
		{"powneg", "x^-1", "(x ^ (-1))"},
		{"powterms", "x y^z", "(x * (y ^ z))"},
		{"pownegpow", "x^-y^-z", "(x ^ (-(y ^ (-z))))"},
		{"divterms", "x/y z", "((x / y) * z)"},

		{"split", "ab", "(a * b)"},
		{"split-pow", "ab^2", "(a * (b ^ 2))"},
		{"split-sub", "xk_{1}", "(x * k_{1})"},
		{"split-num", "2xy", "((2 * x) * y)"},
		{"primes", "f'x''", "(f' * x'')"},
		{"infinity", "-∞", "(-∞)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src, ParseFuncs(testfns))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.want {
				t.Errorf("%q: want %s, got %s", c.src, c.want, got)
			}
			// Formatted expressions parse to themselves.
			b, err := Parse(a.String(), ParseFuncs(testfns))
			if err != nil {
				t.Fatalf("%s failed to reparse: %v", a, err)
			}
			if b.String() != a.String() {
				t.Errorf("%s reparsed as %s", a, b)
			}
		})
	}
}

func TestParseFuncsRemove(t *testing.T) {
	a, err := Parse("sin x + f_{1}(x)", ParseFuncs(map[string]Func{"sin": nil}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := a.String(), "((((s * i) * n) * x) + (f_{1} * x))"; got != want {
		t.Errorf("want %s, got %s", want, got)
	}
	if got := a.Vars(); !reflect.DeepEqual(got, []string{"f_{1}", "i", "n", "s", "x"}) {
		t.Errorf("wrong variables %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		pos  int
		msg  string
	}{
		{"empty", "", new(EmptyExpressionError), 1, `^1: no expression$`},
		{"spaces", "  ", new(EmptyExpressionError), 3, `expression ends early`},
		{"emptyparen", "()", new(EmptyExpressionError), 2, `no expression before "\)"`},
		{"emptyterm", "x()", new(EmptyExpressionError), 3, `"\)"`},
		{"emptyoperand", "x*", new(EmptyExpressionError), 3, `ends early`},
		{"emptyunary", "x*-", new(EmptyExpressionError), 4, `ends early`},
		{"emptysum", "(+)", new(EmptyExpressionError), 3, `"\)"`},
		{"left", "(x", new(BracketError), 1, `\( is never closed`},
		{"left-inner", "(x+(y)", new(BracketError), 1, `\( is never closed`},
		{"right", "x)", new(BracketError), 2, `no open bracket for \)`},
		{"mismatch", "(x]", new(BracketError), 3, `\( closed by ]`},
		{"mismatch-terms", "x(y]", new(BracketError), 4, `\( closed by ]`},
		{"operator", "*x", new(OperatorError), 1, `operand before "\*"`},
		{"operator-after", "b + *c", new(OperatorError), 5, `"\*"`},
		{"operator-pow", "x^*2", new(OperatorError), 3, `"\*"`},
		{"sep", "x, y", new(SeparatorError), 2, `","`},
		{"sepbrackets", "(x, y)", new(SeparatorError), 3, `","`},
		{"call0-mismatch", "zero(x]", new(BracketError), 7, `closed by`},
		{"call0-args", "zero(x, y)", new(CallError), 10, `zero does not take 2 arguments`},
		{"call1-0", "one()", new(CallError), 5, `one does not take 0 arguments`},
		{"call1-eof", "one", new(CallError), 1, `one does not take 0`},
		{"call1-op", "one + x", new(CallError), 1, `one does not take 0`},
		{"call1-open", "one(", new(EmptyExpressionError), 5, `ends early`},
		{"call1-mismatch", "one(x]", new(BracketError), 6, `closed by`},
		{"call1-2", "one(x, y)", new(CallError), 9, `one does not take 2`},
		{"call1-empty", "one(, x)", new(EmptyExpressionError), 5, `","`},
		{"call5-4", "five(a, b, c, d)", new(CallError), 16, `five does not take 4`},
		{"call5-bare", "five x", new(CallError), 1, `five does not take 1`},
		{"call5-empty", "five(a,,b)", new(EmptyExpressionError), 8, `","`},
		{"lexer", "2^exp(-$)", new(LexError), 8, `\$`},
		{"semicolon", "five(a; b)", new(LexError), 7, `;`},
		{"bare-subscript", "_{2}", new(LexError), 1, `_`},
		{"short-subscript", "x_1", new(LexError), 3, `x_1`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src, ParseFuncs(testfns))
			if err == nil {
				t.Fatalf("%q parsed as %s", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("%q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			var in InputError
			if !errors.As(err, &in) {
				t.Fatalf("%q: %T is not an InputError", c.src, err)
			}
			if in.Pos() != c.pos {
				t.Errorf("%q: want position %d, got %d (%v)", c.src, c.pos, in.Pos(), err)
			}
			if !regexp.MustCompile(c.msg).MatchString(err.Error()) {
				t.Errorf("%q: %q doesn't match %#q", c.src, err.Error(), c.msg)
			}
		})
	}
}

// TestParseBinderOutput checks right-hand sides in the forms the binder
// writes.
func TestParseBinderOutput(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"product", "a*x_{mode}", []string{"a", "x_{mode}"}},
		{"glyphs", "2*π*x", []string{"x"}},
		{"call-after-name", "x*sin(x)", []string{"x"}},
		{"subscripts", "k_{1}*k_{2}", []string{"k_{1}", "k_{2}"}},
		{"braced-exponent", "e^{2*x}", []string{"x"}},
		{"calls", "sqrt(x)*sqrt(y)", []string{"x", "y"}},
		{"spaced-terms", "a t + b_{1}(t)", []string{"a", "b_{1}", "t"}},
		{"log-base", "log(8, 2)", []string{}},
		{"extremum", "min(a, b, c)", []string{"a", "b", "c"}},
		{"negative-square", "-x^2", []string{"x"}},
		{"primed", "k'*x", []string{"k'", "x"}},
		{"glyph-subscript", "x_{α} + τ", []string{"x_{α}"}},
		{"loose-operator", "b* c", []string{"b", "c"}},
		{"bare-call", "sin x", []string{"x"}},
		{"gaussian", "exp(-x^2/(2*σ^2))", []string{"x", "σ"}},
		{"division", "k_{max}/2", []string{"k_{max}"}},
		{"bracketed-product", "x(x+1)", []string{"x"}},
		{"number-bracket", "2(x+1)", []string{"x"}},
		{"spaced-bracket", "x (x+1)", []string{"x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.Vars(); !reflect.DeepEqual(got, c.vars) {
				t.Errorf("%q: want variables %q, got %q", c.src, c.vars, got)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for _, src := range []string{"x", "2*π*x + sin(x)", "exp(-x^2/(2*σ^2))/(σ*sqrt(τ))"} {
		b.Run(src, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(src)
			}
		})
	}
}
