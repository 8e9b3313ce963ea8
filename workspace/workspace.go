// Package workspace holds the parameters and functions bound from user input
// and evaluates them.
//
// A Workspace is the host for a notation.Binder. It owns the set of live
// names, creates parameters for free symbols as definitions need them, and
// undoes those creations when a definition fails. All methods are safe for
// concurrent use.
package workspace

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/eval"
)

// Entry is a live definition.
type Entry struct {
	// ID identifies the entry. IDs are never reused within a workspace.
	ID notation.ID
	// Name is the defined name.
	Name string
	// Kind is the kind of definition.
	Kind notation.Kind
	// Params is the list of formal parameters of a function.
	Params []string
	// Source is the normalized definition. It is empty for parameters
	// created automatically and not yet set.
	Source string
	// RHS is the right-hand side with multiplications explicit.
	RHS string
	// Dependencies lists the free symbols of RHS.
	Dependencies []string
	// Auto is whether the entry was created to satisfy another definition.
	Auto bool
	// Created lists the parameters created for this definition, in order.
	Created []string
	// Hints lists notes from binding.
	Hints []string

	// value is the value of a parameter set directly rather than by formula.
	value *big.Float
}

// Var returns the independent variable of a function or plot: the first
// formal parameter of a function, or for a plot, x if it depends on x and
// otherwise its first dependency. The result is empty if there is none.
func (e *Entry) Var() string {
	switch e.Kind {
	case notation.KindFunction:
		if len(e.Params) > 0 {
			return e.Params[0]
		}
	case notation.KindPlot:
		for _, d := range e.Dependencies {
			if d == "x" {
				return d
			}
		}
		if len(e.Dependencies) > 0 {
			return e.Dependencies[0]
		}
	}
	return ""
}

// String returns the definition with multiplications explicit, like
// "f(x) = a*x_{mode}".
func (e *Entry) String() string {
	if e.Kind == notation.KindFunction {
		return e.Name + "(" + strings.Join(e.Params, ", ") + ") = " + e.RHS
	}
	return e.Name + " = " + e.RHS
}

func (e *Entry) clone() *Entry {
	r := *e
	r.Params = append([]string(nil), e.Params...)
	r.Dependencies = append([]string(nil), e.Dependencies...)
	r.Created = append([]string(nil), e.Created...)
	r.Hints = append([]string(nil), e.Hints...)
	if e.value != nil {
		r.value = new(big.Float).Copy(e.value)
	}
	return &r
}

// Workspace is a set of live parameters and functions.
type Workspace struct {
	mu      sync.Mutex
	binder  *notation.Binder
	prec    uint
	def     *big.Float
	entries map[string]*Entry
	// order is the names of entries in the order they were defined.
	order []string
	last  notation.ID
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	c := config{prec: 64, def: big.NewFloat(1)}
	for _, opt := range opts {
		c = opt.wsOption(c)
	}
	return &Workspace{
		binder:  notation.NewBinder(c.syms),
		prec:    c.prec,
		def:     c.def,
		entries: make(map[string]*Entry),
	}
}

// Symbols returns the symbol table the workspace binds with.
func (ws *Workspace) Symbols() *notation.SymbolTable {
	return ws.binder.Symbols
}

// Precision returns the precision of evaluation in bits.
func (ws *Workspace) Precision() uint {
	return ws.prec
}

// Define binds a definition and adds it to the workspace. Parameters are
// created with the default value for any free symbols which are not live.
// If binding or compiling the right-hand side fails, every parameter created
// for the definition is removed again and the workspace is unchanged.
//
// Defining a function with the name of a live parameter promotes the
// parameter to a function, and defining a parameter with the name of a live
// function demotes it. Defining y replaces any existing plot. Defining a
// parameter which was created automatically gives it a formula.
func (ws *Workspace) Define(input string) (*Entry, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	e, err := ws.define(input, ws.live(""), "")
	var nc *notation.NameCollisionError
	if errors.As(err, &nc) && !nc.Reserved {
		if old := ws.entries[nc.Name]; old != nil && old.Auto && old.Kind == notation.KindParameter {
			return ws.define(input, ws.live(nc.Name), nc.Name)
		}
	}
	return e, err
}

// Replace edits the definition of name. The new definition may use a
// different name, in which case name is removed.
func (ws *Workspace) Replace(name, input string) (*Entry, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.entries[name] == nil {
		return nil, &UndefinedError{Name: name}
	}
	return ws.define(input, ws.live(name), name)
}

// Remove removes a definition. Definitions which depend on it are kept and
// fail to evaluate until it is defined again.
func (ws *Workspace) Remove(name string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.entries[name] == nil {
		return &UndefinedError{Name: name}
	}
	ws.remove(name)
	log.WithField("name", name).Debug("removed definition")
	return nil
}

// Set sets a parameter to a value directly, replacing any formula.
func (ws *Workspace) Set(name string, v *big.Float) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	e := ws.entries[name]
	if e == nil {
		return &UndefinedError{Name: name}
	}
	if e.Kind != notation.KindParameter {
		return &KindError{Name: name, Kind: e.Kind, Want: notation.KindParameter}
	}
	e.value = new(big.Float).SetPrec(ws.prec).Set(v)
	e.RHS = e.value.Text('g', -1)
	e.Source = name + " = " + e.RHS
	e.Dependencies = nil
	return nil
}

// Lookup returns a copy of the entry for name.
func (ws *Workspace) Lookup(name string) (*Entry, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	e := ws.entries[name]
	if e == nil {
		return nil, false
	}
	return e.clone(), true
}

// Names returns the live names in the order they were defined.
func (ws *Workspace) Names() []string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]string(nil), ws.order...)
}

// Live returns the live names and kinds, suitable for planning a binding.
func (ws *Workspace) Live() notation.Live {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.live("")
}

// Plan plans a definition against the workspace without changing it.
func (ws *Workspace) Plan(input string) (*notation.Expression, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.binder.Plan(input, ws.live(""))
}

func (ws *Workspace) live(except string) notation.Live {
	l := make(notation.Live, len(ws.entries))
	for k, e := range ws.entries {
		if k != except {
			l[k] = e.Kind
		}
	}
	return l
}

func (ws *Workspace) define(input string, live notation.Live, replacing string) (*Entry, error) {
	var created []string
	create := func(name string) (notation.ID, error) {
		if ws.entries[name] != nil {
			// Only possible when replacing, since live excludes that name.
			return 0, fmt.Errorf("%q is being replaced", name)
		}
		e := ws.add(&Entry{Name: name, Kind: notation.KindParameter, Auto: true})
		e.value = new(big.Float).SetPrec(ws.prec).Set(ws.def)
		e.RHS = e.value.Text('g', -1)
		created = append(created, name)
		log.WithField("name", name).Debug("created parameter")
		return e.ID, nil
	}
	ex, err := ws.binder.Bind(input, live, create)
	if err != nil {
		ws.rollback(created)
		return nil, err
	}
	if err := ws.compile(ex); err != nil {
		ws.rollback(created)
		return nil, err
	}

	e := &Entry{
		Name:         ex.Name(),
		Kind:         ex.Kind(),
		Params:       ex.Params(),
		Source:       ex.Source,
		RHS:          ex.RHS,
		Dependencies: ex.Dependencies,
		Created:      created,
		Hints:        ex.Hints,
	}
	if old := ws.entries[e.Name]; old != nil {
		// Promotion, demotion, or a new plot. Keep the position.
		switch {
		case old.Kind == notation.KindParameter && e.Kind == notation.KindFunction:
			log.WithField("name", e.Name).Debug("promoted parameter to function")
		case old.Kind == notation.KindFunction && e.Kind == notation.KindParameter:
			log.WithField("name", e.Name).Debug("demoted function to parameter")
		}
		ws.last++
		e.ID = ws.last
		ws.entries[e.Name] = e
	} else {
		ws.add(e)
	}
	if replacing != "" && replacing != e.Name {
		ws.remove(replacing)
		log.WithFields(log.Fields{"from": replacing, "to": e.Name}).Debug("renamed definition")
	}
	log.WithFields(log.Fields{"name": e.Name, "kind": e.Kind, "rhs": e.RHS}).Debug("defined")
	return e.clone(), nil
}

// add assigns an ID to a new entry and adds it.
func (ws *Workspace) add(e *Entry) *Entry {
	ws.last++
	e.ID = ws.last
	ws.entries[e.Name] = e
	ws.order = append(ws.order, e.Name)
	return e
}

func (ws *Workspace) remove(name string) {
	delete(ws.entries, name)
	for i, n := range ws.order {
		if n == name {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
}

// rollback removes automatically created parameters, latest first.
func (ws *Workspace) rollback(created []string) {
	for i := len(created) - 1; i >= 0; i-- {
		ws.remove(created[i])
		log.WithField("name", created[i]).Debug("rolled back parameter")
	}
}

// compile checks that the right-hand side of a bound expression parses
// against the live functions.
func (ws *Workspace) compile(ex *notation.Expression) error {
	ev := ws.evaluation()
	if _, err := ev.parse(ex.RHS, ex.Params()); err != nil {
		return &CompileError{Name: ex.Name(), RHS: ex.RHS, Err: err}
	}
	return nil
}

// UndefinedError is an error for an operation on a name that is not live.
type UndefinedError struct {
	Name string
}

func (err *UndefinedError) Error() string {
	return fmt.Sprintf("%q is not defined", err.Name)
}

// CompileError is an error parsing a bound right-hand side for evaluation.
// Positions in Err refer to RHS.
type CompileError struct {
	// Name is the name being defined, or empty for an expression.
	Name string
	// RHS is the text that failed to parse.
	RHS string
	Err error
}

func (err *CompileError) Error() string {
	if err.Name == "" {
		return err.Err.Error()
	}
	return "compiling " + err.Name + ": " + err.Err.Error()
}

func (err *CompileError) Unwrap() error {
	return err.Err
}

// KindError is an error for an operation on a definition of the wrong kind.
type KindError struct {
	Name string
	Kind notation.Kind
	Want notation.Kind
}

func (err *KindError) Error() string {
	return fmt.Sprintf("%q is a %s, not a %s", err.Name, strings.ToLower(err.Kind.String()), strings.ToLower(err.Want.String()))
}

// CycleError is an error evaluating definitions which depend on each other.
type CycleError struct {
	// Path lists the names in the cycle, beginning and ending with the same
	// name.
	Path []string
}

func (err *CycleError) Error() string {
	return "circular definition: " + strings.Join(err.Path, " → ")
}

// IsInputError reports whether err resulted from invalid input, rather than
// from evaluation.
func IsInputError(err error) bool {
	var a notation.InputError
	var b eval.InputError
	return errors.As(err, &a) || errors.As(err, &b)
}
