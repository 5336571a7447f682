package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/qiniu/log"

	"github.com/zephyrtronium/calc"
)

// result is the outcome of one expression, as written in JSON mode.
type result struct {
	Input  string `json:"input"`
	Tree   string `json:"tree,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Pos    int    `json:"pos,omitempty"`
}

// printer evaluates expressions and writes their results.
type printer struct {
	out  io.Writer
	echo bool
	json *jsoniter.Encoder
	opts []calc.ParseOption

	ok   *color.Color
	fail *color.Color
}

func newPrinter(out io.Writer, cfg Config) *printer {
	p := &printer{
		out:  out,
		echo: cfg.Echo,
		opts: []calc.ParseOption{calc.MaxDepth(cfg.MaxDepth)},
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
	if cfg.JSON {
		p.json = jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	}
	if !cfg.Color {
		p.ok.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

// calculate runs one expression through the pipeline.
func (p *printer) calculate(input string) result {
	r := result{Input: input}
	e, err := calc.ParseString(calc.Normalize(strings.TrimSpace(input)), p.opts...)
	if err == nil {
		r.Tree = e.String()
		log.Debugf("%q parsed as %s, names %q", input, r.Tree, e.Names())
		var v float64
		v, err = calc.Evaluate(e, calc.Default())
		if err == nil {
			log.Debugf("%q evaluated to %v", input, v)
			r.Result, err = calc.Format(v)
		}
	}
	if err != nil {
		p.failed(&r, err)
	}
	return r
}

// percent converts a number to a percentage.
func (p *printer) percent(input string) result {
	r := result{Input: input}
	s, err := calc.Percent(input)
	if err != nil {
		p.failed(&r, err)
		return r
	}
	r.Result = s
	return r
}

func (p *printer) failed(r *result, err error) {
	r.Result = ""
	r.Error = err.Error()
	r.Kind = calc.KindOf(err).String()
	if ie, ok := err.(calc.InputError); ok {
		r.Pos = ie.Pos()
	}
	log.Debugf("%q failed: %v", r.Input, err)
}

// print writes a result and reports whether it succeeded.
func (p *printer) print(r result) (bool, error) {
	if p.json != nil {
		if !p.echo {
			r.Tree = ""
		}
		return r.Error == "", p.json.Encode(r)
	}
	if p.echo && r.Tree != "" {
		if _, err := io.WriteString(p.out, r.Tree+" : "); err != nil {
			return false, err
		}
	}
	if r.Error != "" {
		_, err := p.fail.Fprintf(p.out, "%s error: %s\n", r.Kind, r.Error)
		return false, err
	}
	_, err := p.ok.Fprintln(p.out, r.Result)
	return true, err
}

// eval calculates and prints one expression.
func (p *printer) eval(input string) (bool, error) {
	return p.print(p.calculate(input))
}

// maxLine is the longest input line calc evaluates. Longer lines fail without
// being parsed.
const maxLine = 1 << 20

// lineTooLongError is the failure for an input line longer than maxLine.
type lineTooLongError struct {
	line int
}

func (err *lineTooLongError) Error() string {
	return fmt.Sprintf("line %d is longer than %d bytes", err.line, maxLine)
}

// evalLines evaluates each non-blank line of in, returning the number of
// expressions that failed.
func (p *printer) evalLines(in io.Reader) (int, error) {
	r := bufio.NewReader(in)
	failed := 0
	for n := 1; ; n++ {
		line, long, err := readLine(r)
		if err == io.EOF {
			return failed, nil
		}
		if err != nil {
			return failed, err
		}
		var ok bool
		switch {
		case long:
			res := result{Input: line[:32] + "..."}
			p.failed(&res, &lineTooLongError{line: n})
			ok, err = p.print(res)
		case strings.TrimSpace(line) == "":
			continue
		default:
			ok, err = p.eval(line)
		}
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}
}

// readLine reads one line without its terminator. A line longer than maxLine
// is consumed entirely, and only its first maxLine bytes are returned with
// long set.
func readLine(r *bufio.Reader) (line string, long bool, err error) {
	var b []byte
	for {
		frag, more, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && (b != nil || long) {
				return string(b), long, nil
			}
			return "", false, err
		}
		if !long {
			if len(b)+len(frag) > maxLine {
				long = true
				frag = frag[:maxLine-len(b)]
			}
			b = append(b, frag...)
			if b == nil {
				b = []byte{}
			}
		}
		if !more {
			return string(b), long, nil
		}
	}
}
