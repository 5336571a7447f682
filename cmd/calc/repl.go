package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/qiniu/log"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

const replHelp = `Type an expression to evaluate it. Commands:
  :percent <n>  divide the number n by 100
  :names        list functions and constants
  :help         show this message
  :quit         exit
Ctrl+C discards the current line; Ctrl+D exits.`

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return repl(cfg, newPrinter(cmd.OutOrStdout(), cfg))
		},
	}
}

// repl runs the interactive loop on the terminal.
func repl(cfg Config, p *printer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := cfg.historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warnf("couldn't read history from %s: %v", hist, err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				log.Warnf("couldn't save history: %v", err)
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warnf("couldn't save history to %s: %v", hist, err)
			}
		}()
	}

	fmt.Fprintln(p.out, `calc: type :help for help`)
	for {
		line, err := ln.Prompt(cfg.Prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(p.out)
			return nil
		case err != nil:
			return fmt.Errorf("couldn't read line: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		quit, err := p.command(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// command handles one line of REPL input. It reports whether the REPL should
// exit.
func (p *printer) command(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		_, err := p.eval(line)
		return false, err
	}
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help", ":h", ":?":
		_, err := fmt.Fprintln(p.out, replHelp)
		return false, err
	case ":percent", ":%":
		_, err := p.print(p.percent(arg))
		return false, err
	case ":names":
		_, err := fmt.Fprintln(p.out, strings.Join(calc.Default().Names(), " "))
		return false, err
	default:
		_, err := p.fail.Fprintf(p.out, "unknown command %s; type :help for help\n", cmd)
		return false, err
	}
}
