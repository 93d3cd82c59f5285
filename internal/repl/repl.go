// Package repl is a minimal line-editing loop over the front end:
// tokenize, parse, typecheck, print the inferred type. There is no
// evaluator in this repo (see SPEC_FULL.md §1), so unlike the
// teacher's REPL this one never produces a value — only a type, or a
// diagnostic when one of the three stages fails.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/thrush-lang/thrush/internal/diagnostics"
	"github.com/thrush-lang/thrush/internal/lexer"
	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Config toggles extra diagnostic output alongside the inferred type.
type Config struct {
	ShowTokens bool
	ShowTree   bool
}

// REPL is a Read-Eval-Print Loop over the lexer/parser/type-engine
// pipeline. Unlike the teacher's REPL there is no persistent
// evaluator environment to carry between lines — each line is
// type-checked against a fresh types.NewState, since nothing in this
// language lets one top-level expression's bindings outlive it.
type REPL struct {
	config  *Config
	history []string
}

// New creates a REPL with default configuration.
func New() *REPL {
	return &REPL{config: &Config{}}
}

func (r *REPL) getPrompt() string { return "λ> " }

// Start begins the REPL session, reading lines from the terminal via
// liner (in is not read) and writing results and diagnostics to out.
// Grounded on the teacher's
// internal/repl/repl.go Start loop (liner history file, multiline
// continuation on a trailing backslash, :-prefixed commands), trimmed
// to this repo's narrower surface (no module imports, no persistent
// evaluator state).
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".thrush_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("THRUSH"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(in string) (c []string) {
		if !strings.HasPrefix(in, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":tokens", ":tree", ":history", ":clear", ":reset"} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt(r.getPrompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		for strings.HasSuffix(input, "\\") {
			cont, err := line.Prompt("... ")
			if err != nil {
				break
			}
			input = strings.TrimSuffix(input, "\\") + "\n" + cont
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" || input == ":exit" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.ProcessExpression(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// ProcessExpression runs input through tokenize -> parse -> typecheck
// and prints "input :: Type" (plus optional token/tree dumps), or a
// colorized diagnostic on failure.
func (r *REPL) ProcessExpression(input string, out io.Writer) {
	toks := lexer.Tokenize([]byte(input))
	if r.config.ShowTokens {
		var b strings.Builder
		for _, t := range toks {
			fmt.Fprintf(&b, "%s(%q) ", t.Kind, t.Value)
		}
		fmt.Fprintf(out, "%s %s\n", dim("tokens:"), b.String())
	}

	prog, err := parser.ParseTokens(toks)
	if err != nil {
		fmt.Fprintln(out, diagnostics.Format(err))
		return
	}

	ty, dec, _, err := types.TypeAndDecorate(prog)
	if err != nil {
		fmt.Fprintln(out, diagnostics.Format(err))
		return
	}

	if r.config.ShowTree {
		fmt.Fprintln(out, dim(dec.String()))
	}
	fmt.Fprintf(out, "%s :: %s\n", input, cyan(ty.String()))
}
