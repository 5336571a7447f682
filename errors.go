package calc

import "errors"

// Kind classifies the errors produced by the stages of Calculate.
type Kind int8

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = iota
	// KindParse is a lexing or parsing error.
	KindParse
	// KindValidation is a *ValidationError.
	KindValidation
	// KindDivideByZero is a *DivideByZeroError.
	KindDivideByZero
	// KindDomain is a *DomainError.
	KindDomain
	// KindDepth is a *DepthError.
	KindDepth
	// KindNonFinite is a *NonFiniteError.
	KindNonFinite
	// KindOther is any error not produced by this package, e.g. from reading
	// input.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindDivideByZero:
		return "divide by zero"
	case KindDomain:
		return "domain"
	case KindDepth:
		return "depth exceeded"
	case KindNonFinite:
		return "non-finite"
	default:
		return "other"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped as by errors.As.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		depth  *DepthError
		valid  *ValidationError
		zero   *DivideByZeroError
		domain *DomainError
		nonfin *NonFiniteError
		input  InputError
	)
	switch {
	case errors.As(err, &depth):
		return KindDepth
	case errors.As(err, &valid), errors.Is(err, ErrNilNamespace):
		return KindValidation
	case errors.As(err, &zero):
		return KindDivideByZero
	case errors.As(err, &domain):
		return KindDomain
	case errors.As(err, &nonfin):
		return KindNonFinite
	case errors.As(err, &input):
		// Everything else with a position comes from the lexer or parser.
		return KindParse
	default:
		return KindOther
	}
}
