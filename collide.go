package notation

// Live is the set of names of live parameters and functions, with their
// kinds. The caller owns it; binding never modifies it.
type Live map[string]Kind

// Has returns whether name is live.
func (l Live) Has(name string) bool {
	_, ok := l[name]
	return ok
}

// Collision is the result of checking a candidate name.
type Collision struct {
	// Name is the candidate name.
	Name string
	// Suggestions lists alternative names if the candidate is taken. It is
	// empty if the name is free.
	Suggestions []string
}

// OK returns whether the name is free.
func (c Collision) OK() bool {
	return len(c.Suggestions) == 0
}

// maxSuggestions is the most alternatives offered for a taken name.
const maxSuggestions = 4

// CheckName checks a candidate name against the default symbol table.
func CheckName(candidate string, live Live) Collision {
	return defaultSymbols.CheckName(candidate, live)
}

// CheckName checks whether candidate is free, i.e. neither live nor a
// reserved constant. If it is taken, the result suggests up to four other
// names, in order: the next free numeric subscript, an alternate subscript
// tag, a primed name if the table allows primes, and further numeric
// subscripts. Suggestions never include the candidate itself, but they may be
// taken as well; callers should check them again before use.
func (t *SymbolTable) CheckName(candidate string, live Live) Collision {
	c := Collision{Name: candidate}
	if !live.Has(candidate) && !t.consts[candidate] {
		return c
	}
	c.Suggestions = t.suggest(candidate, live)
	return c
}

func (t *SymbolTable) suggest(candidate string, live Live) []string {
	taken := func(s string) bool { return live.Has(s) || t.consts[s] }
	var r []string
	add := func(s string) {
		if s == candidate || len(r) >= maxSuggestions || contains(r, s) {
			return
		}
		r = append(r, s)
	}
	n, ok := splitName(candidate)
	if !ok {
		// Not a valid name. The best we can do is give it a subscript.
		add(candidate + "_{1}")
		return r
	}
	n.primes = 0
	inc := increments(n)
	first := inc()
	// Skip numbered names that are already taken, within reason.
	for i := 0; i < 100 && taken(first.String()); i++ {
		first = inc()
	}
	add(first.String())
	alt := n
	alt.hassub, alt.sub = true, "new"
	if n.sub == "new" {
		alt.sub = "alt"
	}
	add(alt.String())
	if t.primes {
		add(candidate + "'")
	}
	for len(r) < maxSuggestions {
		add(inc().String())
	}
	return r
}

// increments returns a function that produces successive numbered variants
// of n: k gives k_{1}, k_{2}, ...; k_{1} gives k_{2}, k_{3}, ...; and k_{a}
// gives k_{a1}, k_{a2}, ...
func increments(n name) func() name {
	prefix, digits := "", "0"
	if n.hassub {
		k := len(n.sub)
		for k > 0 && '0' <= n.sub[k-1] && n.sub[k-1] <= '9' {
			k--
		}
		prefix = n.sub[:k]
		if k < len(n.sub) {
			digits = n.sub[k:]
		}
	}
	return func() name {
		digits = incDecimal(digits)
		m := n
		m.hassub, m.sub = true, prefix+digits
		return m
	}
}

// incDecimal adds one to a string of decimal digits.
func incDecimal(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
