// Package calc implements a sandboxed calculator for text typed into a
// calculator display.
//
// Input passes through a fixed pipeline: Normalize rewrites display glyphs
// like "×" and "÷" to ASCII operators, Parse builds a syntax tree over a small
// closed grammar, Validate checks every name and call against a Namespace,
// Evaluate reduces the tree to a float64, and Format renders the result the
// way a calculator display shows it. Calculate runs all of them. Nothing in
// the pipeline can reach anything outside the Namespace it is given.
//
// The grammar is the usual one for arithmetic. "-2^2" is "-(2^2)", "2^3^2" is
// "2^(3^2)", and "%" is a remainder whose sign follows the divisor. Functions
// are called with parentheses, "sqrt(16)" or "pow(2, 10)".
//
// Every stage is a pure function, so parsed expressions and namespaces are
// safe to share between goroutines.
package calc
