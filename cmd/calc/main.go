package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/qiniu/log"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

// options are the command line flags shared by all commands.
type options struct {
	config   string
	in       string
	echo     bool
	json     bool
	noColor  bool
	debug    bool
	maxDepth int
}

// failures is the error for a run in which some expressions failed. Each
// failure has already been reported.
type failures struct {
	n int
}

func (err *failures) Error() string {
	return strconv.Itoa(err.n) + " expressions failed"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var f *failures
		if errors.As(err, &f) {
			os.Exit(1)
		}
		log.Fatalf("calc: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "calc [flags] [expression...]",
		Short: "Sandboxed calculator",
		Long: `Calc evaluates arithmetic expressions the way a calculator display does.

Expressions use + - * / % ^ and parentheses, the glyphs × ÷ −, the functions
sqrt sin cos tan log ln abs pow, and the constants pi and e. Each argument is
one expression; put -- before expressions that start with a minus sign. With
no arguments, calc reads one expression per line from --in or standard input;
a line longer than 1 MiB fails without being evaluated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), cfg)
			if len(args) > 0 {
				failed := 0
				for _, arg := range args {
					ok, err := p.eval(arg)
					if err != nil {
						return err
					}
					if !ok {
						failed++
					}
				}
				return outcome(failed)
			}
			in, err := o.input(cmd)
			if err != nil {
				return err
			}
			defer in.Close()
			failed, err := p.evalLines(in)
			if err != nil {
				return fmt.Errorf("couldn't read input: %w", err)
			}
			return outcome(failed)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&o.config, "config", "", "TOML configuration file")
	flags.BoolVar(&o.echo, "echo", false, "print parse trees before results")
	flags.BoolVar(&o.json, "json", false, "print one JSON object per result")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&o.debug, "debug", false, "log pipeline stages")
	flags.IntVar(&o.maxDepth, "max-depth", calc.DefaultMaxDepth, "maximum expression nesting depth")
	root.Flags().StringVar(&o.in, "in", "", "input file, one expression per line (default stdin)")

	root.AddCommand(newReplCmd(&o), newNamesCmd(&o))
	return root
}

func outcome(failed int) error {
	if failed > 0 {
		return &failures{n: failed}
	}
	return nil
}

// load reads the configuration file, applies flags that were set explicitly,
// and sets the log level.
func (o *options) load(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(o.config)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = o.maxDepth
	}
	if flags.Changed("echo") {
		cfg.Echo = o.echo
	}
	if flags.Changed("json") {
		cfg.JSON = o.json
	}
	if o.noColor {
		cfg.Color = false
	}
	if o.debug {
		cfg.DebugLevel = log.Ldebug
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	log.SetOutputLevel(cfg.DebugLevel)
	log.Debugf("config: %+v", cfg)
	return cfg, nil
}

// input opens the file named by --in, or standard input.
func (o *options) input(cmd *cobra.Command) (io.ReadCloser, error) {
	if o.in == "" || o.in == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(o.in)
	if err != nil {
		return nil, fmt.Errorf("couldn't open input: %w", err)
	}
	return f, nil
}

func newNamesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the functions and constants expressions may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := o.load(cmd); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range calc.Default().Names() {
				ent, _ := calc.Default().Lookup(name)
				if ent.IsFunc() {
					fmt.Fprintf(out, "%s\tfunction\n", name)
					continue
				}
				v, err := calc.Format(ent.Value)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\tconstant\t%s\n", name, v)
			}
			return nil
		},
	}
}
