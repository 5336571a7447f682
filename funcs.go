package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. If an argument is outside the function's domain, Call
	// returns a *DomainError or *DivideByZeroError. Call must not modify args
	// or retain it.
	Call(args []float64) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// Validation rejects calls with any other number of arguments.
	CanCall(n int) bool
}

// Default returns the namespace of expressions evaluated by Calculate. It holds
// the functions sqrt, sin, cos, tan, log, ln, abs and pow and the constants pi
// and e. log and ln are both the natural logarithm. Every call returns the same
// namespace, which cannot be modified.
func Default() *Namespace {
	return defaultNS
}

var defaultNS = NewNamespace(
	Function("sqrt", Monadic(math.Sqrt, nonnegative)),
	Function("sin", Monadic(math.Sin, nil)),
	Function("cos", Monadic(math.Cos, nil)),
	Function("tan", Monadic(math.Tan, nil)),
	Function("log", Monadic(math.Log, positive)),
	Function("ln", Monadic(math.Log, positive)),
	Function("abs", Monadic(math.Abs, nil)),
	Function("pow", Dyadic(power)),

	Const("pi", bigconst(bigfloat.Pi)),
	Const("e", bigconst(func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	})),
)

// bigconst computes a constant at high precision and rounds it to the nearest
// float64.
func bigconst(f func(out *big.Float) *big.Float) float64 {
	r, _ := f(new(big.Float).SetPrec(128)).Float64()
	return r
}

func nonnegative(x float64) bool { return x >= 0 }
func positive(x float64) bool    { return x > 0 }

type monadic struct {
	f      func(float64) float64
	domain func(float64) bool
}

func (m monadic) Call(args []float64) (float64, error) {
	x := args[0]
	if m.domain != nil && !m.domain(x) {
		return 0, &DomainError{X: x, Arg: 1}
	}
	r := m.f(x)
	if math.IsNaN(r) && !math.IsNaN(x) {
		// e.g. sin(inf)
		return 0, &DomainError{X: x, Arg: 1}
	}
	return r, nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. If domain is not nil,
// arguments for which it returns false are rejected with a *DomainError
// before f is called. A NaN result from a non-NaN argument is also reported as
// a *DomainError.
func Monadic(f func(float64) float64, domain func(float64) bool) Func {
	return monadic{f, domain}
}

type dyadic struct {
	f func(x, y float64) (float64, error)
}

func (d dyadic) Call(args []float64) (float64, error) {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables into a Func. f reports domain
// violations itself.
func Dyadic(f func(x, y float64) (float64, error)) Func {
	return dyadic{f}
}

// power computes x^y. A negative base with a fractional exponent has no real
// result, and zero to a negative power is a division by zero.
func power(x, y float64) (float64, error) {
	switch {
	case math.IsNaN(x), math.IsNaN(y), math.IsInf(y, 0):
	case x == 0 && y < 0:
		return 0, &DivideByZeroError{}
	case x < 0 && !math.IsInf(x, 0) && y != math.Trunc(y):
		return 0, &DomainError{X: x, Arg: 1}
	}
	return math.Pow(x, y), nil
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain. It implements InputError.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
	// Col is the position of the call or operator.
	Col int
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}
