package notation

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// SymbolTable holds the alias tables, reserved constants, and reserved
// function names used to bind expressions. A SymbolTable is immutable once
// created, so it is safe to share between any number of Binders.
type SymbolTable struct {
	// escapes maps backslash aliases, without the backslash, to their
	// replacement text.
	escapes map[string]string
	// words maps bare words to canonical glyphs.
	words map[string]string
	// consts is the set of reserved constant names.
	consts map[string]bool
	// funcs is the set of reserved function names.
	funcs map[string]bool
	// fnames is funcs in sorted order.
	fnames []string
	// longest is the length in bytes of the longest escape or function name.
	longest int
	// complex and primes are the notation flags.
	complex, primes bool
}

// Option is an option for creating a SymbolTable.
type Option interface {
	symbolOption(symcfg) symcfg
}

type symcfg struct {
	funcs   []string
	aliases map[string]string
	complex bool
	primes  bool
}

type (
	complexopt struct{}
	primesopt  struct{}
	funcsopt   []string
	aliasopt   struct{ alias, glyph string }
)

func (complexopt) symbolOption(c symcfg) symcfg {
	c.complex = true
	return c
}

func (primesopt) symbolOption(c symcfg) symcfg {
	c.primes = true
	return c
}

func (o funcsopt) symbolOption(c symcfg) symcfg {
	c.funcs = append([]string(nil), o...)
	return c
}

func (o aliasopt) symbolOption(c symcfg) symcfg {
	if c.aliases == nil {
		c.aliases = make(map[string]string)
	}
	c.aliases[o.alias] = o.glyph
	return c
}

// ComplexMode reserves the letter i as the imaginary unit. Without it, i is
// an ordinary name.
func ComplexMode() Option {
	return complexopt{}
}

// Primes allows names to end in any number of prime marks, as in k' or f''.
// Collision suggestions include a primed variant only with this option.
func Primes() Option {
	return primesopt{}
}

// Functions replaces the set of reserved function names. Names of reserved
// functions are protected from implicit multiplication when followed by an
// argument list and are never reported as dependencies.
func Functions(names ...string) Option {
	return funcsopt(names)
}

// Alias adds an alias for a glyph. If alias begins with a backslash, it is
// matched only in backslash form; otherwise it is a bare word and also
// available in backslash form. Panics if glyph is not a single letter or if
// alias is not made of ASCII letters.
func Alias(alias, glyph string) Option {
	r, sz := utf8.DecodeRuneInString(glyph)
	if sz == 0 || sz != len(glyph) || !unicode.IsLetter(r) {
		panic("notation: alias glyph must be a single letter: " + glyph)
	}
	word := alias
	if len(word) > 0 && word[0] == '\\' {
		word = word[1:]
	}
	if word == "" {
		panic("notation: empty alias")
	}
	for i := 0; i < len(word); i++ {
		if !isASCIILetter(rune(word[i])) {
			panic("notation: alias must be ASCII letters: " + alias)
		}
	}
	return aliasopt{alias, glyph}
}

// greek lists the Greek letter aliases. The var- forms are only available
// with a backslash.
var greek = [...]struct {
	name  string
	glyph string
	bare  bool
}{
	{"alpha", "α", true},
	{"beta", "β", true},
	{"gamma", "γ", true},
	{"delta", "δ", true},
	{"epsilon", "ε", true},
	{"varepsilon", "ϵ", false},
	{"zeta", "ζ", true},
	{"eta", "η", true},
	{"theta", "θ", true},
	{"vartheta", "ϑ", false},
	{"iota", "ι", true},
	{"kappa", "κ", true},
	{"lambda", "λ", true},
	{"mu", "μ", true},
	{"nu", "ν", true},
	{"xi", "ξ", true},
	{"pi", "π", true},
	{"varpi", "ϖ", false},
	{"rho", "ρ", true},
	{"varrho", "ϱ", false},
	{"sigma", "σ", true},
	{"varsigma", "ς", false},
	{"tau", "τ", true},
	{"upsilon", "υ", true},
	{"phi", "φ", true},
	{"varphi", "ϕ", false},
	{"chi", "χ", true},
	{"psi", "ψ", true},
	{"omega", "ω", true},
	{"Gamma", "Γ", true},
	{"Delta", "Δ", true},
	{"Theta", "Θ", true},
	{"Lambda", "Λ", true},
	{"Xi", "Ξ", true},
	{"Pi", "Π", true},
	{"Sigma", "Σ", true},
	{"Upsilon", "Υ", true},
	{"Phi", "Φ", true},
	{"Psi", "Ψ", true},
	{"Omega", "Ω", true},
}

// operatorEscapes are backslash commands which stand for operators or which
// only affect typesetting.
var operatorEscapes = map[string]string{
	"cdot":  "*",
	"times": "*",
	"div":   "/",
	"left":  "",
	"right": "",
}

// DefaultFunctions is the set of reserved function names used when no
// Functions option is given.
var DefaultFunctions = []string{
	"exp", "ln", "log", "sqrt",
	"sin", "cos", "tan", "sec", "csc", "cot",
	"asin", "acos", "atan",
	"sinh", "cosh", "tanh", "asinh", "acosh", "atanh",
	"abs", "floor", "ceil", "round", "sign",
	"min", "max",
}

// NewSymbolTable creates a symbol table with the built-in aliases and the
// given options applied in order.
func NewSymbolTable(opts ...Option) *SymbolTable {
	var c symcfg
	for _, opt := range opts {
		c = opt.symbolOption(c)
	}
	if c.funcs == nil {
		c.funcs = DefaultFunctions
	}
	t := SymbolTable{
		escapes: make(map[string]string, len(greek)+len(operatorEscapes)+len(c.aliases)),
		words:   make(map[string]string, len(greek)+len(c.aliases)),
		consts:  map[string]bool{"e": true, "π": true, "τ": true},
		funcs:   make(map[string]bool, len(c.funcs)),
		complex: c.complex,
		primes:  c.primes,
	}
	if c.complex {
		t.consts["i"] = true
	}
	for _, g := range greek {
		t.escapes[g.name] = g.glyph
		if g.bare {
			t.words[g.name] = g.glyph
		}
	}
	for k, v := range operatorEscapes {
		t.escapes[k] = v
	}
	for k, v := range c.aliases {
		if k[0] == '\\' {
			t.escapes[k[1:]] = v
			continue
		}
		t.escapes[k] = v
		t.words[k] = v
	}
	for _, f := range c.funcs {
		if f == "" {
			continue
		}
		t.funcs[f] = true
		t.fnames = append(t.fnames, f)
	}
	sort.Strings(t.fnames)
	for k := range t.escapes {
		t.longest = max(t.longest, len(k))
	}
	for k := range t.funcs {
		t.longest = max(t.longest, len(k))
	}
	return &t
}

var defaultSymbols = NewSymbolTable()

// DefaultSymbols returns the symbol table with built-in aliases, the default
// reserved functions, complex mode off, and primes disallowed.
func DefaultSymbols() *SymbolTable {
	return defaultSymbols
}

// IsConstant returns whether name is a reserved constant.
func (t *SymbolTable) IsConstant(name string) bool {
	return t.consts[name]
}

// IsFunction returns whether name is a reserved function.
func (t *SymbolTable) IsFunction(name string) bool {
	return t.funcs[name]
}

// Functions returns the reserved function names in sorted order.
func (t *SymbolTable) Functions() []string {
	return append([]string(nil), t.fnames...)
}

// Constants returns the reserved constant names in sorted order.
func (t *SymbolTable) Constants() []string {
	r := make([]string, 0, len(t.consts))
	for k := range t.consts {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Complex returns whether i is reserved as the imaginary unit.
func (t *SymbolTable) Complex() bool {
	return t.complex
}

// AllowsPrimes returns whether names may carry prime marks.
func (t *SymbolTable) AllowsPrimes() bool {
	return t.primes
}

// Glyph returns the canonical glyph for a bare word alias, or the empty
// string if word is not one.
func (t *SymbolTable) Glyph(word string) string {
	return t.words[word]
}

// escape finds the longest escape or function name that is a prefix of run.
// The result is the replacement text and the number of bytes of run matched,
// or 0 if nothing matches.
func (t *SymbolTable) escape(run string) (string, int) {
	for n := min(len(run), t.longest); n > 0; n-- {
		k := run[:n]
		if r, ok := t.escapes[k]; ok {
			return r, n
		}
		if t.funcs[k] {
			return k, n
		}
	}
	return "", 0
}
