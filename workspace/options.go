package workspace

import (
	"math/big"

	"github.com/zephyrtronium/notation"
)

// Option is an option for creating a Workspace.
type Option interface {
	wsOption(config) config
}

type config struct {
	syms *notation.SymbolTable
	prec uint
	def  *big.Float
}

type (
	symsopt struct{ t *notation.SymbolTable }
	precopt uint
	defopt  struct{ v *big.Float }
)

func (o symsopt) wsOption(c config) config {
	c.syms = o.t
	return c
}

func (o precopt) wsOption(c config) config {
	c.prec = uint(o)
	return c
}

func (o defopt) wsOption(c config) config {
	c.def = new(big.Float).Copy(o.v)
	return c
}

// WithSymbols sets the symbol table used to bind definitions. The default is
// notation.DefaultSymbols.
func WithSymbols(t *notation.SymbolTable) Option {
	return symsopt{t}
}

// WithPrec sets the precision of evaluation. The default is 64.
func WithPrec(prec uint) Option {
	return precopt(prec)
}

// WithDefaultValue sets the value of automatically created parameters. The
// default is 1.
func WithDefaultValue(v *big.Float) Option {
	return defopt{v}
}
