// Package eval implements an arbitrary-precision floating-point evaluator for
// bound right-hand sides.
//
// The syntax is the canonical notation produced by package notation. Names
// are a single letter with an optional braced subscript and primes, like x,
// k_{mode}, or f'. A run of letters that is not a function name is read as a
// product of single letters, so "ab" is the same as "a*b". "2 x y" is a
// multiplication of three terms, and so is "{2}[x](y)". "-2^2^n" is the same
// as "-(2^(2^n))", where "a^b" is exponentiation.
//
// The constants π, τ, and e and the functions named by FuncNames are
// available by default. An Expr is parsed once and can be evaluated in any
// number of contexts, each giving values to its variables.
package eval
