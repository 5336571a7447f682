package calc

import (
	"io"
	"math"
	"strings"
)

// Evaluate validates e against ns and then computes its value. Arithmetic
// follows IEEE-754 double precision, except that division or remainder by
// zero is a *DivideByZeroError and operations without a real result are a
// *DomainError. Evaluate does not modify e or ns and is safe for concurrent
// use.
func Evaluate(e *Expr, ns *Namespace) (float64, error) {
	if err := Validate(e, ns); err != nil {
		return 0, err
	}
	return e.n.eval(ns, 0, e.maxdepth)
}

// Eval is a shortcut to normalize and parse an expression and return its value
// in the Default namespace.
func Eval(src io.Reader, opts ...ParseOption) (float64, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, src); err != nil {
		return 0, err
	}
	return EvalString(b.String(), opts...)
}

// EvalString is a shortcut to normalize, parse and evaluate a string
// expression in the Default namespace.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	a, err := ParseString(Normalize(src), opts...)
	if err != nil {
		return 0, err
	}
	return Evaluate(a, Default())
}

// eval computes the node's value. Validation has already checked names and
// calls, but eval still refuses anything it does not understand.
func (n *node) eval(ns *Namespace, depth, max int) (float64, error) {
	if n == nil {
		return 0, &ValidationError{Kind: UnknownNode}
	}
	if depth > max {
		return 0, &DepthError{Col: n.col, Max: max}
	}
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		ent, ok := ns.Lookup(n.name)
		if !ok || ent.IsFunc() {
			return 0, &ValidationError{Col: n.col, Kind: UnknownIdentifier, Name: n.name}
		}
		return ent.Value, nil
	case nodeCall:
		ent, ok := ns.Lookup(n.name)
		if !ok || !ent.IsFunc() || !ent.Func.CanCall(len(n.args)) {
			return 0, &ValidationError{Col: n.col, Kind: NotCallable, Name: n.name, Args: len(n.args)}
		}
		invoc := make([]float64, len(n.args))
		for i, arg := range n.args {
			x, err := arg.eval(ns, depth+1, max)
			if err != nil {
				return 0, err
			}
			invoc[i] = x
		}
		r, err := ent.Func.Call(invoc)
		if err != nil {
			return 0, n.annotate(err, n.name)
		}
		return r, nil
	case nodeNeg:
		x, err := n.left.eval(ns, depth+1, max)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case nodeNop:
		return n.left.eval(ns, depth+1, max)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval(ns, depth+1, max)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ns, depth+1, max)
		if err != nil {
			return 0, err
		}
		return n.arith(l, r)
	default:
		return 0, &ValidationError{Col: n.col, Kind: UnknownNode}
	}
}

// arith applies a binary operator node to its evaluated operands.
func (n *node) arith(l, r float64) (float64, error) {
	switch n.kind {
	case nodeAdd:
		return l + r, nil
	case nodeSub:
		return l - r, nil
	case nodeMul:
		return l * r, nil
	case nodeDiv:
		if r == 0 {
			return 0, &DivideByZeroError{Op: "/", Col: n.col}
		}
		return l / r, nil
	case nodeMod:
		if r == 0 {
			return 0, &DivideByZeroError{Op: "%", Col: n.col}
		}
		return mod(l, r), nil
	case nodePow:
		v, err := power(l, r)
		if err != nil {
			return 0, n.annotate(err, "^")
		}
		return v, nil
	default:
		panic("calc: arith on " + n.kind.String())
	}
}

// annotate fills in the position and operation of an error from a function
// or operator.
func (n *node) annotate(err error, op string) error {
	switch err := err.(type) {
	case *DomainError:
		if err.Func == "" {
			err.Func = op
		}
		if err.Col == 0 {
			err.Col = n.col
		}
	case *DivideByZeroError:
		if err.Op == "" {
			err.Op = op
		}
		if err.Col == 0 {
			err.Col = n.col
		}
	}
	return err
}

// mod computes the remainder of x/y rounded toward negative infinity, so the
// result has the sign of y.
func mod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	if r == 0 {
		r = math.Copysign(0, y)
	}
	return r
}

// DivideByZeroError is an error from dividing by zero, taking a remainder by
// zero, or raising zero to a negative power. It implements InputError.
type DivideByZeroError struct {
	// Op is the operator or function that divided by zero.
	Op string
	// Col is the position of the operator or call.
	Col int
}

func (err *DivideByZeroError) Error() string {
	return errpos(err.Col, "division by zero in "+err.Op)
}

func (err *DivideByZeroError) Pos() int {
	return err.Col
}
