package notation

import (
	"strings"
	"testing"
)

func TestCheckName(t *testing.T) {
	live := Live{
		"k":        KindParameter,
		"k_{1}":    KindParameter,
		"m":        KindParameter,
		"f":        KindFunction,
		"k_{a}":    KindParameter,
		"k_{new}":  KindParameter,
		"q_{9}":    KindParameter,
		"rate":     KindParameter,
		"s_{spin}": KindParameter,
	}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"free", "a", ""},
		{"free-sub", "k_{2}", ""},
		{"plain", "m", "m_{1} m_{new} m_{2} m_{3}"},
		{"skip-taken", "k", "k_{2} k_{new} k_{3} k_{4}"},
		{"new-tag", "k_{new}", "k_{new1} k_{alt} k_{new2} k_{new3}"},
		{"function", "f", "f_{1} f_{new} f_{2} f_{3}"},
		{"numbered", "k_{1}", "k_{2} k_{new} k_{3} k_{4}"},
		{"tagged", "k_{a}", "k_{a1} k_{new} k_{a2} k_{a3}"},
		{"carry", "q_{9}", "q_{10} q_{new} q_{11} q_{12}"},
		{"word-sub", "s_{spin}", "s_{spin1} s_{new} s_{spin2} s_{spin3}"},
		{"reserved", "e", "e_{1} e_{new} e_{2} e_{3}"},
		{"reserved-glyph", "π", "π_{1} π_{new} π_{2} π_{3}"},
		{"invalid", "rate", "rate_{1}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := CheckName(c.in, live)
			if r.Name != c.in {
				t.Errorf("wrong name %q", r.Name)
			}
			got := strings.Join(r.Suggestions, " ")
			if got != c.want {
				t.Errorf("%q: want %q, got %q", c.in, c.want, got)
			}
			if r.OK() != (c.want == "") {
				t.Errorf("%q: OK() is %t", c.in, r.OK())
			}
			for _, s := range r.Suggestions {
				if s == c.in {
					t.Errorf("%q suggested itself", c.in)
				}
			}
		})
	}
}

func TestCheckNameTables(t *testing.T) {
	live := Live{"k": KindParameter, "k'": KindParameter}
	cases := []struct {
		name string
		tbl  *SymbolTable
		in   string
		want string
	}{
		{"primes", NewSymbolTable(Primes()), "k", "k_{1} k_{new} k' k_{2}"},
		{"primed", NewSymbolTable(Primes()), "k'", "k_{1} k_{new} k'' k_{2}"},
		{"complex", NewSymbolTable(ComplexMode()), "i", "i_{1} i_{new} i_{2} i_{3}"},
		{"real", DefaultSymbols(), "i", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := strings.Join(c.tbl.CheckName(c.in, live).Suggestions, " ")
			if got != c.want {
				t.Errorf("%q: want %q, got %q", c.in, c.want, got)
			}
		})
	}
}

func TestLiveUnchanged(t *testing.T) {
	live := Live{"k": KindParameter}
	CheckName("k", live)
	if len(live) != 1 || live["k"] != KindParameter {
		t.Errorf("live was modified: %v", live)
	}
}
