package notation

// FreeSymbols returns the free symbols of rhs under the default symbol table.
func FreeSymbols(rhs string, bound []string) []string {
	return defaultSymbols.FreeSymbols(rhs, bound)
}

// FreeSymbols returns the names used in rhs which are not reserved constants,
// reserved functions, or in bound, in order of first occurrence. rhs should
// already have implicit multiplications made explicit; any remaining run of
// letters that is not a function name is read as a product of single-letter
// names.
func (t *SymbolTable) FreeSymbols(rhs string, bound []string) []string {
	occ := t.occurrences([]rune(rhs), bound)
	r := make([]string, len(occ))
	for i, o := range occ {
		r[i] = o.name
	}
	return r
}

// occurrence is the first use of a free symbol.
type occurrence struct {
	name string
	// pos is the rune index of the symbol.
	pos int
}

func (t *SymbolTable) occurrences(s []rune, bound []string) []occurrence {
	safe := t.protect(s)
	seen := make(map[string]bool)
	var occ []occurrence
	for i := 0; i < len(s); {
		switch {
		case safe[i]:
			for i < len(s) && safe[i] {
				i++
			}
		case isLetter(s[i]):
			k := atomEnd(s, i, t.primes)
			nm := string(s[i:k])
			if !seen[nm] && !t.consts[nm] && !contains(bound, nm) {
				seen[nm] = true
				occ = append(occ, occurrence{name: nm, pos: i})
			}
			i = k
		case subscriptEnd(s, i) > 0:
			i = subscriptEnd(s, i)
		default:
			i++
		}
	}
	return occ
}

func contains(v []string, s string) bool {
	for _, x := range v {
		if x == s {
			return true
		}
	}
	return false
}
