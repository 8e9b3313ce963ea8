package eval

import (
	"errors"
	"math/big"
	"strconv"
)

// InputError is an error caused by text the parser could not accept. Pos is
// the 1-based rune column of the token responsible.
type InputError interface {
	error
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)

// OperatorError is an operator where an operand was expected, like the * in
// "b + *c".
type OperatorError struct {
	Col      int
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "expected an operand before "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int { return err.Col }

// BracketError is a bracket without a partner, or a pair of brackets of
// different kinds. Exactly one of Left and Right is empty for an unpaired
// bracket.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, "no open bracket for "+err.Right)
	case err.Right == "":
		return errpos(err.Col, err.Left+" is never closed")
	default:
		return errpos(err.Col, err.Left+" closed by "+err.Right)
	}
}

func (err *BracketError) Pos() int { return err.Col }

// SeparatorError is a comma outside a function's argument list.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Sep)+" outside an argument list")
}

func (err *SeparatorError) Pos() int { return err.Col }

// CallError is a call with a number of arguments the function does not take.
// Col is the position of the end of the call.
type CallError struct {
	Col  int
	Func string
	Len  int
}

func (err *CallError) Error() string {
	return errpos(err.Col, err.Func+" does not take "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int { return err.Col }

// EmptyExpressionError is a missing operand. End is the token found in its
// place, or empty at the end of the input.
type EmptyExpressionError struct {
	Col int
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "no expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return errpos(err.Col, "no expression")
	default:
		return errpos(err.Col, "expression ends early")
	}
}

func (err *EmptyExpressionError) Pos() int { return err.Col }

func errpos(col int, msg string) string {
	return strconv.Itoa(col) + ": " + msg
}

// NameError is a variable with no value in the evaluation context.
type NameError struct {
	Name string
}

func (err *NameError) Error() string {
	return "no value for " + strconv.Quote(err.Name)
}

// DomainError is an argument outside the domain of a function or operator.
// Arg is 1-based, or 0 when unknown.
type DomainError struct {
	X    *big.Float
	Arg  int
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " is outside the domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// ErrComplex is the result of evaluating the imaginary unit.
var ErrComplex = errors.New("complex numbers are not supported")
