package calc_test

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ns   *calc.Namespace
		r    float64
	}{
		{"num", "1", nil, 1},
		{"frac", ".25", nil, 0.25},
		{"ident", "x", calc.NewNamespace(calc.Const("x", 4)), 4},
		{"plus", "+x", calc.NewNamespace(calc.Const("x", 5)), 5},
		{"neg", "-x", calc.NewNamespace(calc.Const("x", 6)), -6},
		{"add", "4+5+6", nil, 15},
		{"sub", "4-5-6", nil, -7},
		{"mul", "4*5*6", nil, 120},
		{"div", "1/4/2", nil, 0.125},
		{"prec", "2+3*4", nil, 14},
		{"paren", "(2+3)*4", nil, 20},
		{"pow", "4^3^2", nil, 262144},
		{"powright", "2^3^2", nil, 512},
		{"negpow", "-2^2", nil, -4},
		{"parenpow", "(-2)^2", nil, 4},
		{"powneg", "2^-1", nil, 0.5},
		{"negmul", "-2*3", nil, -6},
		{"negneg", "--2", nil, 2},
		{"mod", "7%3", nil, 1},
		{"mod-negdividend", "-7%3", nil, 2},
		{"mod-negdivisor", "7%-3", nil, -2},
		{"mod-negboth", "-7%-3", nil, -1},
		{"mod-frac", "7.5%2", nil, 1.5},
		{"mod-prec", "2*7%4", nil, 2},
		{"pow-int-negbase", "(-2)^3", nil, -8},
		{"pow-zero", "0^0", nil, 1},
		{"sqrt", "sqrt(16)", nil, 4},
		{"abs", "abs(-3)", nil, 3},
		{"pow-func", "pow(2, 10)", nil, 1024},
		{"ln", "ln(1)", nil, 0},
		{"log", "log(1)", nil, 0},
		{"sin", "sin(0)", nil, 0},
		{"cos", "cos(0)", nil, 1},
		{"tan", "tan(0)", nil, 0},
		{"nested", "sqrt(abs(-16)) + pow(2, 1+1)", nil, 8},
		{"overflow", "10^400", nil, math.Inf(1)},
		{"underflow", "10^-400", nil, 0},
		{"biglit", "1" + strings.Repeat("0", 400), nil, math.Inf(1)},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ns := c.ns
			if ns == nil {
				ns = calc.Default()
			}
			a, err := calc.ParseString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			r, err := calc.Evaluate(a, ns)
			if err != nil {
				t.Fatal("evaluation error:", err)
			}
			if r != c.r {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestEvalModSign(t *testing.T) {
	for _, src := range []string{"6%3", "-6%3", "0%5"} {
		r, err := calc.EvalString(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if r != 0 || math.Signbit(r) {
			t.Errorf("%q: want +0, got %g", src, r)
		}
	}
	r, err := calc.EvalString("6%-3")
	if err != nil {
		t.Fatal(err)
	}
	if r != 0 || !math.Signbit(r) {
		t.Errorf("6%%-3: want -0, got %g", r)
	}
}

func TestEvalConstants(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"2*pi", 2 * math.Pi},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if math.Abs(r-c.r) > 1e-15*c.r {
			t.Errorf("%q: want %.17g, got %.17g", c.src, c.r, r)
		}
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		id   string
	}{
		{"x", "x", "x"},
		{"plus", "+x", "x"},
		{"neg", "-x", "x"},
		{"add-lhs", "x+1", "x"},
		{"add-rhs", "1+x", "x"},
		{"sub-lhs", "x-1", "x"},
		{"sub-rhs", "1-x", "x"},
		{"mul-lhs", "x*1", "x"},
		{"mul-rhs", "1*x", "x"},
		{"div-lhs", "x/1", "x"},
		{"div-rhs", "1/x", "x"},
		{"mod-rhs", "1%x", "x"},
		{"pow-lhs", "x^1", "x"},
		{"pow-rhs", "1^x", "x"},
		{"arg", "sqrt(x)", "x"},
		{"call", "foo(1)", "foo"},
		{"exp", "exp(1)", "exp"},
		{"builtin", "__import__(1)", "__import__"},
		{"case", "PI", "PI"},
	}
	ure := regexp.MustCompile(`(?i)\bunknown\b`)
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := calc.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, err := calc.Evaluate(a, calc.Default())
			if err == nil {
				t.Fatalf("evaluating %q gave no error and result %g", c.src, r)
			}
			u, ok := err.(*calc.ValidationError)
			if !ok {
				t.Fatalf("error was %#v, not ValidationError", err)
			}
			if u.Kind != calc.UnknownIdentifier {
				t.Errorf("wrong kind %v", u.Kind)
			}
			if u.Name != c.id {
				t.Errorf("ValidationError on %q, want %q", u.Name, c.id)
			}
			msg := err.Error()
			if !ure.MatchString(msg) {
				t.Errorf(`%q doesn't mention "unknown"`, msg)
			}
			if !strings.Contains(msg, c.id) {
				t.Errorf(`%q doesn't mention %q`, msg, c.id)
			}
		})
	}
}

func TestEvalFuncError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		fn   string
		x    float64
		col  int
	}{
		{"sqrt", "sqrt(-1)", "sqrt", -1, 1},
		{"log", "log(0)", "log", 0, 1},
		{"ln", "1 + ln(-2)", "ln", -2, 5},
		{"sin-inf", "sin(10^400)", "sin", math.Inf(1), 1},
		{"pow-func", "pow(-8, 1/3)", "pow", -8, 1},
		{"pow-op", "(-8)^(1/3)", "^", -8, 5},
		{"pow-op-neg", "2*(-1)^0.5", "^", -1, 7},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error and result %g", c.src, r)
			}
			var de *calc.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("%#v is not *calc.DomainError", err)
			}
			if de.Func != c.fn {
				t.Errorf("wrong function: want %q, got %q", c.fn, de.Func)
			}
			if de.X != c.x {
				t.Errorf("wrong argument: want %g, got %g", c.x, de.X)
			}
			if de.Pos() != c.col {
				t.Errorf("wrong position: want %d, got %d", c.col, de.Pos())
			}
			if k := calc.KindOf(err); k != calc.KindDomain {
				t.Errorf("classified as %v", k)
			}
		})
	}
}

func TestEvalOpError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		op   string
		col  int
	}{
		{"div-zero", "10/0", "/", 3},
		{"div-zerozero", "0/0", "/", 2},
		{"div-negzero", "1/-0", "/", 2},
		{"div-expr", "1/(2-2)", "/", 2},
		{"mod-zero", "5%0", "%", 2},
		{"pow-zero-neg", "0^-1", "^", 2},
		{"pow-func-zero-neg", "pow(0, -2)", "pow", 1},
		{"nested", "sqrt(1/0)", "/", 7},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error and result %g", c.src, r)
			}
			dz, ok := err.(*calc.DivideByZeroError)
			if !ok {
				t.Fatalf("%#v is not *calc.DivideByZeroError", err)
			}
			if dz.Op != c.op {
				t.Errorf("wrong operator: want %q, got %q", c.op, dz.Op)
			}
			if dz.Pos() != c.col {
				t.Errorf("wrong position: want %d, got %d", c.col, dz.Pos())
			}
		})
	}
}

func TestEvalDepth(t *testing.T) {
	// The parse limit carries over to evaluation.
	src := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
	if _, err := calc.EvalString(src); calc.KindOf(err) != calc.KindDepth {
		t.Errorf("want depth error, got %v", err)
	}
	r, err := calc.EvalString(src, calc.MaxDepth(300))
	if err != nil {
		t.Fatal(err)
	}
	if r != 1 {
		t.Errorf("wrong result %g", r)
	}
}

func TestEvalReader(t *testing.T) {
	r, err := calc.Eval(strings.NewReader("2×3−1"))
	if err != nil {
		t.Fatal(err)
	}
	if r != 5 {
		t.Errorf("want 5, got %g", r)
	}
}

func BenchmarkEval(b *testing.B) {
	ns := calc.NewNamespace(calc.Const("x", 2), calc.Const("y", 3), calc.Const("z", 4))
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := calc.ParseString("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			calc.Evaluate(a, ns)
		}
	})
	b.Run("names", func(b *testing.B) {
		b.ReportAllocs()
		a, err := calc.ParseString("x+y*z^2")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			calc.Evaluate(a, ns)
		}
	})
	b.Run("calls", func(b *testing.B) {
		b.ReportAllocs()
		a, err := calc.ParseString("sqrt(pow(3, 2) + pow(4, 2))")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			calc.Evaluate(a, calc.Default())
		}
	})
}

func Example() {
	a, _ := calc.ParseString("x^3/2 - x")
	for i := 0; i < 4; i++ {
		ns := calc.NewNamespace(calc.Const("x", float64(i)))
		y, _ := calc.Evaluate(a, ns)
		s, _ := calc.Format(y)
		fmt.Printf("x = %d   y = %s\n", i, s)
	}

	// Output:
	// x = 0   y = 0
	// x = 1   y = -0.5
	// x = 2   y = 2
	// x = 3   y = 10.5
}
