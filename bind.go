package notation

import (
	"strconv"
	"strings"
)

// ID identifies a symbol created on behalf of the binder. Its meaning belongs
// to whoever creates the symbol.
type ID int64

// MissingFunc creates a parameter for a free symbol which is not live. It
// returns the new parameter's ID, or an error if the symbol cannot be created.
type MissingFunc func(name string) (ID, error)

// Expression is a classified, dependency-resolved definition.
type Expression struct {
	// Source is the normalized input.
	Source string
	// LHS is the classified left-hand side.
	LHS LHS
	// RHS is the right-hand side with implicit multiplications made explicit.
	RHS string
	// Dependencies lists the free symbols of RHS in order of first use. It
	// never contains formal parameters of LHS or reserved constants.
	Dependencies []string
	// Missing lists the dependencies which were not live when the
	// expression was planned, in order.
	Missing []string
	// Resolved maps each symbol in Missing to the ID of the parameter created
	// for it. It is nil for an expression which is only planned.
	Resolved map[string]ID
	// Hints lists notes about parts of RHS which may not mean what the user
	// intended, e.g. a misspelled function name read as a product.
	Hints []string

	// pos maps dependencies to their first positions in Source.
	pos map[string]int
}

// Binder binds definitions using a symbol table. A Binder holds no state
// between calls.
type Binder struct {
	Symbols *SymbolTable
}

// NewBinder creates a binder. If t is nil, the binder uses the default
// symbol table.
func NewBinder(t *SymbolTable) *Binder {
	if t == nil {
		t = defaultSymbols
	}
	return &Binder{Symbols: t}
}

// Plan binds a definition without creating anything using the default
// symbol table.
func Plan(input string, live Live) (*Expression, error) {
	return NewBinder(nil).Plan(input, live)
}

// Bind binds a definition using the default symbol table.
func Bind(input string, live Live, missing MissingFunc) (*Expression, error) {
	return NewBinder(nil).Bind(input, live, missing)
}

// Plan normalizes and classifies a definition, checks its name, rewrites its
// right-hand side, and lists the dependencies that Bind would need to create,
// but does not create them. live is not modified.
//
// Defining the name of a live parameter as a function, or the name of a live
// function as a parameter, is a promotion or demotion and is not a
// collision. Defining a live name as the same kind again is.
func (b *Binder) Plan(input string, live Live) (*Expression, error) {
	t := b.Symbols
	norm := t.Normalize(input)
	src := []rune(norm)
	eq := topLevelEquals(src)
	if eq < 0 {
		return nil, &SyntaxError{Col: len(src) + 1, Msg: "missing = in definition"}
	}
	if eq > 0 && strings.ContainsRune("<>!", src[eq-1]) || eq+1 < len(src) && src[eq+1] == '=' {
		return nil, &SyntaxError{Col: eq + 1, Msg: "comparisons are not definitions"}
	}
	lhs, err := t.parseLHS(src[:eq], 0)
	if err != nil {
		return nil, err
	}
	if err := t.checkLHS(lhs, src[:eq], live); err != nil {
		return nil, err
	}

	// Right-hand side. off is the index in src of the first rune of rhs.
	off := eq + 1
	for off < len(src) && (src[off] == ' ' || src[off] == '\t') {
		off++
	}
	k := len(src)
	for k > off && (src[k-1] == ' ' || src[k-1] == '\t') {
		k--
	}
	rhs := src[off:k]
	if len(rhs) == 0 {
		return nil, &EmptyExpressionError{Col: eq + 1}
	}
	if err := checkBrackets(rhs, off); err != nil {
		return nil, err
	}

	var bound []string
	if f, ok := lhs.(*Function); ok {
		bound = f.Params
	}
	ex := Expression{
		Source: norm,
		LHS:    lhs,
		RHS:    t.InsertImplicitMultiplication(string(rhs)),
		pos:    make(map[string]int),
	}
	ex.Dependencies = t.FreeSymbols(ex.RHS, bound)
	// Positions come from the text as written. Implicit multiplication only
	// adds operators between terms, so the symbols are the same.
	for _, o := range t.occurrences(rhs, bound) {
		ex.pos[o.name] = off + o.pos + 1
	}
	for _, d := range ex.Dependencies {
		if d == lhs.Ident() {
			return nil, &SelfReferenceError{Col: ex.posOf(d), Name: d}
		}
		if !live.Has(d) {
			ex.Missing = append(ex.Missing, d)
		}
	}
	ex.Hints = t.callHints(rhs)
	return &ex, nil
}

// Bind binds a definition. After planning as by Plan, Bind calls missing for
// each dependency which is not live, in order of first use, so that the
// caller can create a parameter for it. If missing fails, Bind stops and
// returns an *UnresolvedDependencyError listing the symbols already created;
// removing them is up to the caller. If missing is nil, any missing
// dependency is an error.
//
// Bind does not modify live. Callers binding from multiple goroutines against
// shared state must serialize their calls.
func (b *Binder) Bind(input string, live Live, missing MissingFunc) (*Expression, error) {
	ex, err := b.Plan(input, live)
	if err != nil {
		return nil, err
	}
	ex.Resolved = make(map[string]ID, len(ex.Missing))
	var created []string
	for _, nm := range ex.Missing {
		if missing == nil {
			return nil, &UnresolvedDependencyError{Col: ex.posOf(nm), Name: nm, Created: created}
		}
		id, err := missing(nm)
		if err != nil {
			return nil, &UnresolvedDependencyError{Col: ex.posOf(nm), Name: nm, Created: created, Err: err}
		}
		ex.Resolved[nm] = id
		created = append(created, nm)
	}
	for _, d := range ex.Dependencies {
		if _, ok := ex.Resolved[d]; !ok && !live.Has(d) {
			panic("notation: unresolved dependency " + strconv.Quote(d) + " after binding")
		}
	}
	return ex, nil
}

// Kind returns the kind of the definition.
func (ex *Expression) Kind() Kind {
	return ex.LHS.Kind()
}

// Name returns the name being defined.
func (ex *Expression) Name() string {
	return ex.LHS.Ident()
}

// Params returns the formal parameters of a function definition, or nil.
func (ex *Expression) Params() []string {
	if f, ok := ex.LHS.(*Function); ok {
		return f.Params
	}
	return nil
}

// posOf returns the position of the first use of a dependency.
func (ex *Expression) posOf(name string) int {
	if p, ok := ex.pos[name]; ok {
		return p
	}
	return len([]rune(ex.Source)) + 1
}

// checkLHS checks a classified name against live names and reserved
// constants.
func (t *SymbolTable) checkLHS(lhs LHS, src []rune, live Live) error {
	col := 1
	for col <= len(src) && (src[col-1] == ' ' || src[col-1] == '\t') {
		col++
	}
	switch lhs := lhs.(type) {
	case AnonymousPlot:
		return nil
	case *Function:
		for _, p := range lhs.Params {
			if t.consts[p] {
				return &NameCollisionError{
					Col:         paramCol(src, p),
					Name:        p,
					Reserved:    true,
					Suggestions: t.suggest(p, nil),
				}
			}
		}
	}
	nm := lhs.Ident()
	if t.consts[nm] {
		return &NameCollisionError{Col: col, Name: nm, Reserved: true, Suggestions: t.suggest(nm, live)}
	}
	if k, ok := live[nm]; ok && k == lhs.Kind() {
		return &NameCollisionError{Col: col, Name: nm, Suggestions: t.suggest(nm, live)}
	}
	return nil
}

// paramCol finds the position of a formal parameter in the left-hand side.
func paramCol(src []rune, p string) int {
	open := strings.IndexRune(string(src), '(')
	if open < 0 {
		return 1
	}
	k := strings.Index(string(src)[open:], p)
	if k < 0 {
		return 1
	}
	return len([]rune(string(src)[:open+k])) + 1
}

// checkBrackets checks that brackets in the right-hand side are balanced and
// matched. off is the index of rhs in the normalized input.
func checkBrackets(rhs []rune, off int) error {
	var stack []int
	for i := 0; i < len(rhs); i++ {
		r := rhs[i]
		if e := subscriptEnd(rhs, i); e > 0 {
			if i == 0 || !isLetter(rhs[i-1]) {
				return &SyntaxError{Col: off + i + 1, Msg: "subscript has no letter to attach to"}
			}
			i = e - 1
			continue
		}
		switch r {
		case '(', '[', '{':
			stack = append(stack, i)
		case ')', ']', '}':
			if len(stack) == 0 {
				return &SyntaxError{Col: off + i + 1, Msg: "close bracket " + string(r) + " with no open bracket"}
			}
			l := rhs[stack[len(stack)-1]]
			if strings.IndexRune("([{", l) != strings.IndexRune(")]}", r) {
				return &SyntaxError{Col: off + i + 1, Msg: "mismatched bracket: " + string(l) + "expr" + string(r)}
			}
			stack = stack[:len(stack)-1]
		case '_':
			if i+1 < len(rhs) && rhs[i+1] == '{' {
				return &SyntaxError{Col: off + i + 1, Msg: "subscript is missing its closing brace"}
			}
			return &SyntaxError{Col: off + i + 1, Msg: "subscript must be enclosed in braces"}
		case '=':
			if len(stack) == 0 {
				return &SyntaxError{Col: off + i + 1, Msg: "more than one = in definition"}
			}
		}
	}
	if len(stack) > 0 {
		return &SyntaxError{Col: off + stack[len(stack)-1] + 1, Msg: "open bracket " + string(rhs[stack[len(stack)-1]]) + " with no close bracket"}
	}
	return nil
}
