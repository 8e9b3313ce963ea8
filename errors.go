package notation

import (
	"strconv"
	"strings"
)

// SyntaxError is an error indicating text which does not match the grammar
// of definitions, e.g. a missing = or an unclosed subscript. It implements
// InputError.
type SyntaxError struct {
	// Col is the position of the offending text.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// MultiLetterNameError is an error indicating a name, or a formal parameter,
// made of more than one letter. It implements InputError.
type MultiLetterNameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name as written.
	Name string
	// Suggestion is a valid name to use instead.
	Suggestion string
	// Param is whether the name is a formal parameter.
	Param bool
}

func (err *MultiLetterNameError) Error() string {
	s := "name "
	if err.Param {
		s = "parameter name "
	}
	return errpos(err.Col, s+strconv.Quote(err.Name)+" has more than one letter; use a single letter with a subscript, like "+strconv.Quote(err.Suggestion))
}

func (err *MultiLetterNameError) Pos() int {
	return err.Col
}

// NameCollisionError is an error indicating a definition of a name which is
// already in use. It implements InputError.
type NameCollisionError struct {
	// Col is the position of the name.
	Col int
	// Name is the conflicting name.
	Name string
	// Reserved is whether the name is a reserved constant rather than a
	// live parameter or function.
	Reserved bool
	// Suggestions lists alternative names, best first.
	Suggestions []string
}

func (err *NameCollisionError) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(err.Name))
	if err.Reserved {
		b.WriteString(" is a reserved constant")
	} else {
		b.WriteString(" is already defined")
	}
	for i, s := range err.Suggestions {
		if i == 0 {
			b.WriteString("; try ")
		} else {
			b.WriteString(" or ")
		}
		b.WriteString(strconv.Quote(s))
	}
	return errpos(err.Col, b.String())
}

func (err *NameCollisionError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating a definition with nothing on
// the right-hand side. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the =.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression after =")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// UnresolvedDependencyError is an error indicating that a free symbol could
// not be created. It implements InputError and unwraps to the error from the
// creation callback.
type UnresolvedDependencyError struct {
	// Col is the position of the first occurrence of the symbol.
	Col int
	// Name is the symbol which could not be created.
	Name string
	// Created lists the symbols created by the same call before the failure,
	// in creation order. The caller is responsible for removing them.
	Created []string
	// Err is the error from the callback.
	Err error
}

func (err *UnresolvedDependencyError) Error() string {
	s := "cannot create " + strconv.Quote(err.Name)
	if err.Err != nil {
		s += ": " + err.Err.Error()
	}
	return errpos(err.Col, s)
}

func (err *UnresolvedDependencyError) Pos() int {
	return err.Col
}

func (err *UnresolvedDependencyError) Unwrap() error {
	return err.Err
}

// SelfReferenceError is an error indicating a new definition whose
// right-hand side uses the name being defined. It implements InputError.
type SelfReferenceError struct {
	// Col is the position of the reference on the right-hand side.
	Col int
	// Name is the name being defined.
	Name string
}

func (err *SelfReferenceError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Name)+" is defined in terms of itself")
}

func (err *SelfReferenceError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the text that caused the error, counted in the
	// normalized input.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*MultiLetterNameError)(nil)
	_ InputError = (*NameCollisionError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*UnresolvedDependencyError)(nil)
	_ InputError = (*SelfReferenceError)(nil)
)
