package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/workspace"
)

// printError prints an error for a line of input. Errors with positions get
// the offending text with a marker under the position.
func printError(w io.Writer, t *notation.SymbolTable, input string, err error) {
	var ce *workspace.CompileError
	var ie notation.InputError
	switch {
	case errors.As(err, &ce) && errors.As(ce.Err, &ie):
		// Evaluator positions refer to the rewritten right-hand side.
		printSyntaxError(w, ce.RHS, ie.Pos(), err.Error())
	case errors.As(err, &ie):
		printSyntaxError(w, t.Normalize(input), ie.Pos(), ie.Error())
	default:
		fmt.Fprintln(w, err)
	}
}

// printSyntaxError prints a message with the line it refers to and a marker
// under the 1-based rune position pos.
func printSyntaxError(w io.Writer, line string, pos int, msg string) {
	n := utf8.RuneCountInString(line)
	if pos < 1 {
		pos = 1
	}
	if pos > n+1 {
		pos = n + 1
	}
	fmt.Fprintln(w, msg)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, strings.Repeat(" ", pos-1)+"^")
}
