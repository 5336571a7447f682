package calc

import (
	"math"
	"strconv"
)

// Digits is the number of significant decimal digits Format renders.
const Digits = 12

// Format renders v the way a calculator display shows it. v is rounded to
// Digits significant digits. If the rounded value is an integer, it is written
// in full without a decimal point or exponent, and negative zero is "0".
// Otherwise the rounded digits are written without trailing zeros, with an
// exponent for very small magnitudes. NaN and infinities produce a
// *NonFiniteError.
func Format(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", &NonFiniteError{X: v}
	}
	s := strconv.FormatFloat(v, 'g', Digits, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Rounding to fewer digits can carry past the largest float64.
		return "", &NonFiniteError{X: v}
	}
	if r == math.Trunc(r) {
		if r == 0 {
			return "0", nil
		}
		return strconv.FormatFloat(r, 'f', 0, 64), nil
	}
	return s, nil
}

// NonFiniteError is an error indicating that an expression evaluated to NaN
// or an infinity, which have no display form.
type NonFiniteError struct {
	// X is the value.
	X float64
}

func (err *NonFiniteError) Error() string {
	return "result " + strconv.FormatFloat(err.X, 'g', -1, 64) + " is not a finite number"
}
