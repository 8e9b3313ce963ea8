package notation

import (
	"strings"
	"unicode"
)

func isASCIILetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

// isNumeric reports whether r continues a number.
func isNumeric(r rune) bool {
	return isDigit(r) || r == '.'
}

// subscriptEnd returns the index just past the closing brace of a subscript
// group beginning at s[i], or -1 if s[i:] does not begin a closed group.
// Subscript content runs to the first close brace.
func subscriptEnd(s []rune, i int) int {
	if i+1 >= len(s) || s[i] != '_' || s[i+1] != '{' {
		return -1
	}
	for k := i + 2; k < len(s); k++ {
		if s[k] == '}' {
			return k + 1
		}
	}
	return -1
}

// atomEnd returns the end of the name atom whose base letter is s[i]: the
// letter, an optional subscript group, and trailing primes if allowed.
func atomEnd(s []rune, i int, primes bool) int {
	k := i + 1
	if e := subscriptEnd(s, k); e > 0 {
		k = e
	}
	if primes {
		for k < len(s) && s[k] == '\'' {
			k++
		}
	}
	return k
}

// letterRun returns the end of the maximal run of letters starting at s[i].
func letterRun(s []rune, i int) int {
	k := i
	for k < len(s) && isLetter(s[k]) {
		k++
	}
	return k
}

// topLevelEquals finds the index of the first = in s which is not inside any
// bracket, or -1 if there is none.
func topLevelEquals(s []rune) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// name is a decomposed name: a base letter, an optional subscript, and some
// number of primes.
type name struct {
	base   rune
	sub    string
	hassub bool
	primes int
}

func (n name) String() string {
	var b strings.Builder
	b.WriteRune(n.base)
	if n.hassub {
		b.WriteString("_{")
		b.WriteString(n.sub)
		b.WriteByte('}')
	}
	for i := 0; i < n.primes; i++ {
		b.WriteByte('\'')
	}
	return b.String()
}

// splitName decomposes s according to the name grammar. ok is false if s is
// not exactly one name.
func splitName(s string) (n name, ok bool) {
	r := []rune(s)
	if len(r) == 0 || !isLetter(r[0]) {
		return name{}, false
	}
	n.base = r[0]
	k := 1
	if e := subscriptEnd(r, k); e > 0 {
		n.sub = string(r[k+2 : e-1])
		n.hassub = true
		if n.sub == "" {
			return name{}, false
		}
		k = e
	}
	for k < len(r) && r[k] == '\'' {
		n.primes++
		k++
	}
	return n, k == len(r)
}
