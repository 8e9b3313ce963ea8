// Package notation binds user-typed definitions like "f(x) = ax_{mode}" into
// a graph of parameters and functions.
//
// Binding takes a line of input through a fixed pipeline. First the input is
// normalized: backslash aliases like \alpha and \cdot become glyphs and
// operators, subscripts like x_1 gain braces, and bare words like pi become
// π. Then the left-hand side is classified as a parameter, a function with
// formal parameters, or the anonymous plot y. Names are a single letter with
// an optional subscript, so "rate = 3" is rejected in favor of "r_{rate} = 3".
// The right-hand side has its implicit multiplications made explicit, so
// "2πx" becomes "2*π*x" while "sin(x)" is left alone. Finally the free symbols
// of the right-hand side are collected, and any which are not yet defined are
// created through a callback.
//
// A Binder holds no state between calls. The caller owns the set of live
// names and is responsible for serializing binds against it. Every error from
// invalid input implements InputError and carries a position in the
// normalized input.
package notation
