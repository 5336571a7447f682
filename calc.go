package calc

import "strings"

// Calculate evaluates text typed into a calculator display and returns the
// text the display should show. It normalizes raw, parses it with opts,
// evaluates it in the Default namespace and formats the result. The first
// failing stage determines the error; KindOf classifies it.
func Calculate(raw string, opts ...ParseOption) (string, error) {
	v, err := EvalString(strings.TrimSpace(raw), opts...)
	if err != nil {
		return "", err
	}
	return Format(v)
}

// Percent converts a number on the display to a percentage, dividing it by
// 100. number must be a single numeric literal, optionally signed; anything
// else is a *LexError.
func Percent(number string) (string, error) {
	text := Normalize(strings.TrimSpace(number))
	e, err := ParseString(text)
	if err != nil {
		return "", err
	}
	n := e.n.literal()
	if n == nil {
		return "", &LexError{Text: text, Kind: "number", Col: 1}
	}
	v := n.val
	if e.n.kind == nodeNeg {
		v = -v
	}
	return Format(v / 100)
}

// literal returns the number node of a literal with at most one sign, or
// nil if the node is anything else.
func (n *node) literal() *node {
	switch n.kind {
	case nodeNum:
		return n
	case nodeNeg, nodeNop:
		if n.left.kind == nodeNum {
			return n.left
		}
	}
	return nil
}
