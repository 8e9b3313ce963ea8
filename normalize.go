package notation

import (
	"strings"
)

// Normalize rewrites s into canonical notation. Backslash aliases are replaced
// first, longest alias first, so that no later pass can see half of an escape.
// Then subscript shorthand like x_1 or x_a is braced, and finally bare words
// like pi or alpha are replaced by their glyphs where they stand alone.
//
// Bare words are left alone inside subscripts and in the name position of a
// definition, so s_{pin} stays as it is and pi = 3 keeps its (invalid)
// multi-letter name for the classifier to reject.
//
// Normalize never fails, and Normalize(Normalize(s)) == Normalize(s).
func (t *SymbolTable) Normalize(s string) string {
	s = t.escapeAliases(s)
	s = subscriptShorthand(s)
	return t.bareWords(s)
}

// Normalize normalizes s with the default symbol table.
func Normalize(s string) string {
	return defaultSymbols.Normalize(s)
}

// escapeAliases replaces backslash aliases.
func (t *SymbolTable) escapeAliases(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '\\' {
			// A line break. Copy it whole so that the second backslash
			// doesn't start an escape.
			b.WriteString(`\\`)
			i += 2
			continue
		}
		k := i + 1
		for k < len(s) && isASCIILetter(rune(s[k])) {
			k++
		}
		repl, n := t.escape(s[i+1 : k])
		if n == 0 || repl == "" && !t.sized(s, i+1+n) {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(repl)
		i += 1 + n
	}
	return b.String()
}

// sized reports whether s[i:] continues with a bracket, as must follow \left
// and \right, possibly after more of them.
func (t *SymbolTable) sized(s string, i int) bool {
	for i < len(s) && s[i] == '\\' {
		k := i + 1
		for k < len(s) && isASCIILetter(rune(s[k])) {
			k++
		}
		repl, n := t.escape(s[i+1 : k])
		if n == 0 || repl != "" {
			return false
		}
		i += 1 + n
	}
	return i < len(s) && strings.IndexByte("()[]{}|", s[i]) >= 0
}

// subscriptShorthand braces subscripts written without braces. The subscript
// is the single letter or digit following the underscore, so k_1k_2 is two
// subscripted names.
func subscriptShorthand(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	r := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(r); i++ {
		b.WriteRune(r[i])
		if r[i] != '_' || i+1 >= len(r) || !(isLetter(r[i+1]) || isDigit(r[i+1])) {
			continue
		}
		b.WriteByte('{')
		b.WriteRune(r[i+1])
		b.WriteByte('}')
		i++
	}
	return b.String()
}

// bareWords replaces whole-word aliases outside subscripts and outside the
// definition's name position.
func (t *SymbolTable) bareWords(s string) string {
	r := []rune(s)
	skip := lhsNameRun(r)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(r); {
		if e := subscriptEnd(r, i); e > 0 {
			b.WriteString(string(r[i:e]))
			i = e
			continue
		}
		if !isLetter(r[i]) {
			b.WriteRune(r[i])
			i++
			continue
		}
		k := letterRun(r, i)
		word := string(r[i:k])
		if g := t.words[word]; g != "" && i != skip {
			b.WriteString(g)
		} else {
			b.WriteString(word)
		}
		i = k
	}
	return b.String()
}

// lhsNameRun returns the index of the letter run in the name position of a
// definition, or -1 if s is not a definition or does not begin with a name.
func lhsNameRun(s []rune) int {
	eq := topLevelEquals(s)
	if eq < 0 {
		return -1
	}
	for i := 0; i < eq; i++ {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			continue
		case isLetter(s[i]):
			return i
		default:
			return -1
		}
	}
	return -1
}
