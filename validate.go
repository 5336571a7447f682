package calc

import (
	"errors"
	"strconv"
)

// ValidationKind classifies a ValidationError.
type ValidationKind int8

const (
	// UnknownIdentifier is a name that is not in the namespace.
	UnknownIdentifier ValidationKind = iota + 1
	// ArityMismatch is a call with the wrong number of arguments.
	ArityMismatch
	// NotCallable is a call of a constant.
	NotCallable
	// NotAValue is a function used without calling it.
	NotAValue
	// UnknownNode is a syntax tree node outside the evaluator's grammar.
	UnknownNode
)

// ValidationError is an error indicating an expression that refers to
// something its namespace does not allow. It implements InputError.
type ValidationError struct {
	// Col is the position of the offending name or node.
	Col int
	// Kind is the reason for rejection.
	Kind ValidationKind
	// Name is the offending identifier, if any.
	Name string
	// Args is the number of arguments in a rejected call.
	Args int
}

func (err *ValidationError) Error() string {
	switch err.Kind {
	case UnknownIdentifier:
		return errpos(err.Col, "unknown name "+strconv.Quote(err.Name))
	case ArityMismatch:
		return errpos(err.Col, "cannot call "+err.Name+" with "+strconv.Itoa(err.Args)+" arguments")
	case NotCallable:
		return errpos(err.Col, err.Name+" is a constant, not a function")
	case NotAValue:
		return errpos(err.Col, err.Name+" is a function and must be called")
	default:
		return errpos(err.Col, "unsupported expression")
	}
}

func (err *ValidationError) Pos() int {
	return err.Col
}

// Validate checks that every name in e is in ns, that every call is of a
// function with an argument count it accepts, that every constant is used as
// a value, and that the expression is within its depth limit. Validate
// rejects anything it does not recognize.
func Validate(e *Expr, ns *Namespace) error {
	if ns == nil {
		return ErrNilNamespace
	}
	if e == nil {
		return &ValidationError{Kind: UnknownNode}
	}
	return e.n.validate(ns, 0, e.maxdepth)
}

// ErrNilNamespace is the error from validating or evaluating in a nil
// namespace.
var ErrNilNamespace = errors.New("calc: nil namespace")

func (n *node) validate(ns *Namespace, depth, max int) error {
	if n == nil {
		return &ValidationError{Kind: UnknownNode}
	}
	if depth > max {
		return &DepthError{Col: n.col, Max: max}
	}
	switch {
	case n.kind == nodeNum:
		return nil
	case n.kind == nodeName:
		ent, ok := ns.Lookup(n.name)
		if !ok {
			return &ValidationError{Col: n.col, Kind: UnknownIdentifier, Name: n.name}
		}
		if ent.IsFunc() {
			return &ValidationError{Col: n.col, Kind: NotAValue, Name: n.name}
		}
		return nil
	case n.kind == nodeCall:
		ent, ok := ns.Lookup(n.name)
		if !ok {
			return &ValidationError{Col: n.col, Kind: UnknownIdentifier, Name: n.name}
		}
		if !ent.IsFunc() {
			return &ValidationError{Col: n.col, Kind: NotCallable, Name: n.name, Args: len(n.args)}
		}
		if !ent.Func.CanCall(len(n.args)) {
			return &ValidationError{Col: n.col, Kind: ArityMismatch, Name: n.name, Args: len(n.args)}
		}
		for _, arg := range n.args {
			if arg == nil {
				return &ValidationError{Col: n.col, Kind: UnknownNode}
			}
			if err := arg.validate(ns, depth+1, max); err != nil {
				return err
			}
		}
		return nil
	case n.kind == nodeNeg, n.kind == nodeNop:
		if n.left == nil {
			return &ValidationError{Col: n.col, Kind: UnknownNode}
		}
		return n.left.validate(ns, depth+1, max)
	case n.kind.binary():
		if n.left == nil || n.right == nil {
			return &ValidationError{Col: n.col, Kind: UnknownNode}
		}
		if err := n.left.validate(ns, depth+1, max); err != nil {
			return err
		}
		return n.right.validate(ns, depth+1, max)
	default:
		return &ValidationError{Col: n.col, Kind: UnknownNode}
	}
}
