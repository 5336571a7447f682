package calc_test

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2+3*4", "14"},
		{"2^3^2", "512"},
		{"-2^2", "-4"},
		{"sqrt(16)", "4"},
		{"2×3", "6"},
		{"8÷4", "2"},
		{"5−7", "-2"},
		{"1+2;", "3"},
		{"  1 + 1  ", "2"},
		{"0.1+0.2", "0.3"},
		{"1/3", "0.333333333333"},
		{"10^21", "1000000000000000000000"},
		{"-7%3", "2"},
		{"7%-3", "-2"},
		{"-0", "0"},
		{"0*-1", "0"},
		{"2^-1", "0.5"},
		{"pow(2, 0.5)^2", "2"},
		{"log(e)", "1"},
		{"ln(e^2)", "2"},
		{"abs(-2.5)", "2.5"},
		{"cos(pi)", "-1"},
		{"1e", ""},
	}
	for _, c := range cases {
		c := c
		t.Run(c.raw, func(t *testing.T) {
			got, err := calc.Calculate(c.raw)
			if c.want == "" {
				assert.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	cases := []struct {
		raw  string
		kind calc.Kind
	}{
		{"", calc.KindParse},
		{"   ", calc.KindParse},
		{";", calc.KindParse},
		{"2+", calc.KindParse},
		{"(1+2", calc.KindParse},
		{"1+2)", calc.KindParse},
		{"1e10", calc.KindParse},
		{"2 3", calc.KindParse},
		{"x = 1", calc.KindParse},
		{"foo(1)", calc.KindValidation},
		{"__import__(1)", calc.KindValidation},
		{"pow(1)", calc.KindValidation},
		{"pi(1)", calc.KindValidation},
		{"sqrt", calc.KindValidation},
		{"10/0", calc.KindDivideByZero},
		{"10÷0", calc.KindDivideByZero},
		{"1%0", calc.KindDivideByZero},
		{"0^-1", calc.KindDivideByZero},
		{"sqrt(-1)", calc.KindDomain},
		{"log(0)", calc.KindDomain},
		{"ln(-1)", calc.KindDomain},
		{"(-1)^0.5", calc.KindDomain},
		{"10^400", calc.KindNonFinite},
		{"10^400-10^400", calc.KindNonFinite},
		{strings.Repeat("(", 257) + "1" + strings.Repeat(")", 257), calc.KindDepth},
		{strings.Repeat("(", 100000), calc.KindDepth},
	}
	for _, c := range cases {
		c := c
		name := c.raw
		if len(name) > 20 {
			name = name[:20] + "..."
		}
		t.Run(name, func(t *testing.T) {
			got, err := calc.Calculate(c.raw)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, c.kind, calc.KindOf(err), "%v", err)
		})
	}
}

func TestCalculateDepthBoundary(t *testing.T) {
	ok := strings.Repeat("(", calc.DefaultMaxDepth) + "1" + strings.Repeat(")", calc.DefaultMaxDepth)
	r, err := calc.Calculate(ok)
	require.NoError(t, err)
	assert.Equal(t, "1", r)

	_, err = calc.Calculate("(" + ok + ")")
	var de *calc.DepthError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, calc.DefaultMaxDepth, de.Max)

	_, err = calc.Calculate("((1))", calc.MaxDepth(1))
	assert.ErrorAs(t, err, &de)
}

func TestCalculateFlatChainDepth(t *testing.T) {
	ok := "1" + strings.Repeat("+1", calc.DefaultMaxDepth)
	r, err := calc.Calculate(ok)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(calc.DefaultMaxDepth+1), r)

	_, err = calc.Calculate(ok + "+1")
	var de *calc.DepthError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, calc.KindDepth, calc.KindOf(err))
	assert.Equal(t, 2*calc.DefaultMaxDepth+2, de.Col)
	assert.Equal(t, "514: expression deeper than 256 levels", err.Error())
}

func TestCalculateConcurrent(t *testing.T) {
	srcs := map[string]string{
		"2+3*4":    "14",
		"sqrt(16)": "4",
		"2^3^2":    "512",
		"1/3":      "0.333333333333",
	}
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for src, want := range srcs {
					got, err := calc.Calculate(src)
					if err != nil || got != want {
						errs <- fmt.Errorf("%q: got %q, %v", src, got, err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"50", "0.5"},
		{"100", "1"},
		{"12.5", "0.125"},
		{"-5", "-0.05"},
		{"−5", "-0.05"},
		{"+5", "0.05"},
		{" 1 ", "0.01"},
		{"0", "0"},
		{"1;", "0.01"},
		{"33.3333333333333", "0.333333333333"},
	}
	for _, c := range cases {
		got, err := calc.Percent(c.in)
		if assert.NoError(t, err, c.in) {
			assert.Equal(t, c.want, got, c.in)
		}
	}
}

func TestPercentErrors(t *testing.T) {
	for _, in := range []string{"", "1+2", "--5", "pi", "sqrt(4)", "5%", "abc"} {
		got, err := calc.Percent(in)
		assert.Error(t, err, in)
		assert.Empty(t, got, in)
		assert.Equal(t, calc.KindParse, calc.KindOf(err), "%q: %v", in, err)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind calc.Kind
	}{
		{nil, calc.KindNone},
		{io.EOF, calc.KindOther},
		{&calc.LexError{}, calc.KindParse},
		{&calc.OperatorError{}, calc.KindParse},
		{&calc.BracketError{}, calc.KindParse},
		{&calc.SeparatorError{}, calc.KindParse},
		{&calc.EmptyExpressionError{}, calc.KindParse},
		{&calc.TrailingError{}, calc.KindParse},
		{&calc.ValidationError{}, calc.KindValidation},
		{&calc.DivideByZeroError{}, calc.KindDivideByZero},
		{&calc.DomainError{}, calc.KindDomain},
		{&calc.DepthError{}, calc.KindDepth},
		{&calc.NonFiniteError{}, calc.KindNonFinite},
		{fmt.Errorf("evaluating: %w", &calc.DomainError{}), calc.KindDomain},
		{fmt.Errorf("line 3: %w", &calc.TrailingError{}), calc.KindParse},
		{errors.New("other"), calc.KindOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, calc.KindOf(c.err), "%#v", c.err)
	}
}

func TestKindString(t *testing.T) {
	kinds := []calc.Kind{
		calc.KindNone,
		calc.KindParse,
		calc.KindValidation,
		calc.KindDivideByZero,
		calc.KindDomain,
		calc.KindDepth,
		calc.KindNonFinite,
		calc.KindOther,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate name %q", s)
		seen[s] = true
	}
	assert.Equal(t, "divide by zero", calc.KindDivideByZero.String())
}
