package eval

// ParseOption is an option for Parse.
type ParseOption interface {
	apply(*parser)
}

type funcsOption map[string]Func

func (o funcsOption) apply(p *parser) {
	for k, v := range o {
		if v == nil {
			delete(p.funcs, k)
			continue
		}
		p.funcs[k] = v
	}
}

// ParseFuncs adds functions to the defaults, replacing any with the same
// name. A nil Func removes the name, so that it parses as a variable.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsOption(fns)
}

// Imaginary reserves i as the imaginary unit. Evaluating it results in
// ErrComplex. Without this option, i is an ordinary variable.
func Imaginary() ParseOption {
	return funcsOption{"i": imaginary{}}
}
