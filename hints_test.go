package notation

import (
	"regexp"
	"testing"
)

func TestCallHints(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"none", "2x + sin(x)", nil},
		{"short", "ab(x)", nil},
		{"suffix-function", "xsin(x)", nil},
		{"subscript", "k_{abc}(x)", nil},
		{"not-call", "abc + 1", nil},
		{"swapped", "sni(x)", []string{`^"sni" is not a function and is read as s\*n\*i; did you mean "sin"\?$`}},
		{"abbreviated", "sqt(x)", []string{`read as s\*q\*t; did you mean "sqrt"\?$`}},
		{"spaced", "foo (x)", []string{`did you mean "floor"\?$`}},
		{"unlike", "zzz(x)", []string{`^"zzz" is not a function and is read as z\*z\*z$`}},
		{"two", "sni(x) + cso(x)", []string{`"sin"`, `"cos"`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := defaultSymbols.callHints([]rune(c.in))
			if len(got) != len(c.want) {
				t.Fatalf("%q: want %d hints, got %q", c.in, len(c.want), got)
			}
			for i, r := range c.want {
				if !regexp.MustCompile(r).MatchString(got[i]) {
					t.Errorf("%q: hint %q doesn't match %#q", c.in, got[i], r)
				}
			}
		})
	}
}

func TestClosestFunc(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sni", "sin"},
		{"sqt", "sqrt"},
		{"cso", "cos"},
		{"xyzzy", ""},
	}
	for _, c := range cases {
		if got := defaultSymbols.closestFunc(c.in); got != c.want {
			t.Errorf("%q: want %q, got %q", c.in, c.want, got)
		}
	}
}
