package notation

import (
	"strings"
)

// InsertImplicitMultiplication inserts the default symbol table's
// multiplication operators into rhs.
func InsertImplicitMultiplication(rhs string) string {
	return defaultSymbols.InsertImplicitMultiplication(rhs)
}

// InsertImplicitMultiplication rewrites juxtaposed symbols and numbers in a
// normalized right-hand side as explicit products: 2x becomes 2*x, 2πx
// becomes 2*π*x, and k_{1}k_{2} becomes k_{1}*k_{2}. Reserved function names
// followed by an argument list are left whole, so sin(x) stays sin(x) and
// xsin(x) becomes x*sin(x). Subscripts are never rewritten.
//
// Explicit operators and whitespace separate terms, so rewriting the result
// again changes nothing.
func (t *SymbolTable) InsertImplicitMultiplication(rhs string) string {
	s := []rune(rhs)
	safe := t.protect(s)
	var b strings.Builder
	b.Grow(len(rhs) + len(rhs)/2)
	prev := termNone
	for i := 0; i < len(s); {
		r := s[i]
		switch {
		case safe[i]:
			k := i
			for k < len(s) && safe[k] {
				k++
			}
			if prev.juxtaposes() {
				b.WriteByte('*')
			}
			b.WriteString(string(s[i:k]))
			prev = termFunc
			i = k
		case isLetter(r):
			k := atomEnd(s, i, t.primes)
			if prev.juxtaposes() {
				b.WriteByte('*')
			}
			b.WriteString(string(s[i:k]))
			prev = termName
			i = k
		case startsNumber(s, i):
			k := i
			for k < len(s) && isNumeric(s[k]) {
				k++
			}
			if prev.juxtaposes() {
				b.WriteByte('*')
			}
			b.WriteString(string(s[i:k]))
			prev = termNum
			i = k
		case subscriptEnd(s, i) > 0:
			// A subscript with no letter to attach to. Keep it intact.
			k := subscriptEnd(s, i)
			b.WriteString(string(s[i:k]))
			prev = termName
			i = k
		case r == ')' || r == ']' || r == '}':
			b.WriteRune(r)
			prev = termClose
			i++
		default:
			b.WriteRune(r)
			prev = termNone
			i++
		}
	}
	return b.String()
}

// term classifies the last term written by the multiplication inserter.
type term int8

const (
	termNone term = iota
	termNum
	termName
	termClose
	termFunc
)

// juxtaposes reports whether a name or number following a term of this kind
// is a multiplication.
func (p term) juxtaposes() bool {
	return p == termNum || p == termName || p == termClose
}

func startsNumber(s []rune, i int) bool {
	if isDigit(s[i]) {
		return true
	}
	return s[i] == '.' && i+1 < len(s) && isDigit(s[i+1])
}

// protect marks the runes of s which belong to reserved function names used
// as functions. A letter run directly before an argument list, optionally
// separated by spaces, is protected if the whole run or else its longest
// suffix is a reserved function. A run exactly equal to a reserved function
// name is protected anywhere, so that bare calls like sin x survive.
// Subscript contents are never protected.
func (t *SymbolTable) protect(s []rune) []bool {
	safe := make([]bool, len(s))
	for i := 0; i < len(s); {
		if e := subscriptEnd(s, i); e > 0 {
			i = e
			continue
		}
		if !isLetter(s[i]) {
			i++
			continue
		}
		k := letterRun(s, i)
		if k-i > 1 {
			if j := t.funcSuffix(s[i:k], callFollows(s, k)); j >= 0 {
				for m := i + j; m < k; m++ {
					safe[m] = true
				}
			}
		}
		i = k
	}
	return safe
}

// funcSuffix finds the start of the function name in run. If call is false,
// only the whole run may match. The result is -1 if there is no match.
func (t *SymbolTable) funcSuffix(run []rune, call bool) int {
	if t.funcs[string(run)] {
		return 0
	}
	if !call {
		return -1
	}
	for j := 1; j < len(run)-1; j++ {
		if t.funcs[string(run[j:])] {
			return j
		}
	}
	return -1
}

// callFollows reports whether an open bracket follows s[k], possibly after
// spaces.
func callFollows(s []rune, k int) bool {
	for k < len(s) && s[k] == ' ' {
		k++
	}
	return k < len(s) && s[k] == '('
}
