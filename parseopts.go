package calc

import "strconv"

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 256

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type depthopt int

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of identifiers that have been seen this parse.
	names map[string]bool
	// depth is the current nesting depth.
	depth int
	// maxdepth is the limit on both nesting depth and tree height.
	maxdepth int
}

// MaxDepth limits how deeply an expression may nest, counting parentheses,
// signs, operands and function arguments. Expressions exceeding the limit
// fail to parse with a *DepthError, and evaluating them is bounded by the same
// limit. MaxDepth panics if n is not positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("calc: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// enter descends one level of nesting.
func (p *parsectx) enter(col int) error {
	p.depth++
	if p.depth > p.maxdepth {
		return &DepthError{Col: col, Max: p.maxdepth}
	}
	return nil
}

// leave ascends one level of nesting.
func (p *parsectx) leave() {
	p.depth--
}

// join records the height of a new interior node and checks it against the
// depth limit.
func (p *parsectx) join(n *node) (*node, error) {
	h := 0
	if n.left != nil {
		h = n.left.h
	}
	if n.right != nil && n.right.h > h {
		h = n.right.h
	}
	for _, arg := range n.args {
		if arg.h > h {
			h = arg.h
		}
	}
	n.h = h + 1
	if n.h > p.maxdepth {
		return nil, &DepthError{Col: n.col, Max: p.maxdepth}
	}
	return n, nil
}
