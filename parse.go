package calc

import (
	"io"
	"strconv"
	"strings"
)

// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = name '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be validated and evaluated against a
// Namespace. An Expr is immutable and safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of identifiers used in the expression.
	names []string
	// maxdepth is the depth limit the expression was parsed under.
	maxdepth int
}

// Parse parses an expression so it can be evaluated. The given options are
// applied in order. Parse reads the entire input; anything after a complete
// expression is an error.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names:    make(map[string]bool),
		maxdepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	ex := Expr{
		n:        n,
		names:    make([]string, 0, len(p.names)),
		maxdepth: p.maxdepth,
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term of operators at least as binding as until.
// If there is no error, then parseterm pushes the last token it scans,
// including EOF.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp {
			// Anything else ends the term. The caller decides whether the
			// token is legal there.
			scan.push(tok)
			return n, nil
		}
		prec := binop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
		}
		if !prec.moreBinding(until) {
			scan.push(tok)
			return n, nil
		}
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		p.leave()
		n, err = p.join(&node{kind: prec.op, col: tok.pos, left: n, right: rhs})
		if err != nil {
			return nil, err
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !isRange(err) {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		// Out of range literals become ±Inf or 0, as IEEE-754 rounds them.
		return &node{kind: nodeNum, name: tok.text, val: v, col: tok.pos}, nil
	case tokenIdent:
		p.names[tok.text] = true
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.kind != tokenOpen {
			scan.push(open)
			return &node{kind: nodeName, name: tok.text, col: tok.pos}, nil
		}
		args, err := parseargs(scan, p, open)
		if err != nil {
			return nil, err
		}
		return p.join(&node{kind: nodeCall, name: tok.text, col: tok.pos, args: args})
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		p.leave()
		return p.join(&node{kind: prec.op, col: tok.pos, left: rhs})
	case tokenOpen:
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, unclosed(err, tok)
		}
		p.leave()
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		return rhs, nil
	case tokenClose, tokenSep, tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parseargs parses a parenthesized list of one or more arguments following
// the open parenthesis.
func parseargs(scan *lexer, p *parsectx, open lexToken) ([]*node, error) {
	var args []*node
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	for {
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, unclosed(err, open)
		}
		args = append(args, arg)
		switch end := scan.must(); end.kind {
		case tokenClose:
			return args, nil
		case tokenSep:
			// Next argument.
		default:
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
	}
}

// unclosed converts an empty expression at the end of input inside brackets
// into a report of the unclosed bracket, which is more helpful.
func unclosed(err error, open lexToken) error {
	if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
		return &BracketError{Col: ee.Col, Left: open.text}
	}
	return err
}

// isRange returns whether err is a strconv range error.
func isRange(err error) bool {
	ne, _ := err.(*strconv.NumError)
	return ne != nil && ne.Err == strconv.ErrRange
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. paren is whether the subexpression is
// inside parentheses.
func itShouldNotHaveEndedThisWay(tok lexToken, paren bool) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: "("}
	case tokenClose:
		if paren {
			// Callers check for their own close bracket first.
			panic("calc: close bracket in bracketed subexpression")
		}
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &TrailingError{Col: tok.pos, Text: tok.text}
	}
}

// Names returns the identifiers used in the expression, sorted.
func (e *Expr) Names() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression with every
// term in parentheses. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Signs bind tighter than
// multiplication but looser than exponentiation, so -2^2 is -(2^2).
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
