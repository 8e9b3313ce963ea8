package notation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxHintDistance is the largest edit distance at which a misspelled
// function name is matched to a reserved function.
const maxHintDistance = 2

// callHints describes letter runs before argument lists which are not
// functions and so are read as products, e.g. sni(x) as s*n*i*(x). Short runs
// are skipped; ab(x) is more likely meant as a product than a typo.
func (t *SymbolTable) callHints(s []rune) []string {
	safe := t.protect(s)
	var hints []string
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
		if k-i >= 3 && !safe[k-1] && callFollows(s, k) {
			hints = append(hints, t.callHint(string(s[i:k])))
		}
		i = k
	}
	return hints
}

func (t *SymbolTable) callHint(word string) string {
	letters := strings.Split(word, "")
	h := strconv.Quote(word) + " is not a function and is read as " + strings.Join(letters, "*")
	if f := t.closestFunc(word); f != "" {
		h += "; did you mean " + strconv.Quote(f) + "?"
	}
	return h
}

// closestFunc finds the reserved function most like word. Abbreviations, like
// sqt for sqrt, rank first; otherwise the nearest function by edit distance
// within maxHintDistance, counting a rearrangement of the same letters as a
// single edit. The result is empty if nothing is close.
func (t *SymbolTable) closestFunc(word string) string {
	ranks := fuzzy.RankFindFold(word, t.fnames)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, dist := "", maxHintDistance+1
	for _, f := range t.fnames {
		d := fuzzy.LevenshteinDistance(word, f)
		if d > 1 && anagram(word, f) {
			d = 1
		}
		if d < dist {
			best, dist = f, d
		}
	}
	return best
}

func anagram(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := []rune(a), []rune(b)
	sort.Slice(x, func(i, j int) bool { return x[i] < x[j] })
	sort.Slice(y, func(i, j int) bool { return y[i] < y[j] })
	return string(x) == string(y)
}
