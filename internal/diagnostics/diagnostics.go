// Package diagnostics renders the plain error values returned by
// internal/parser and internal/types into colorized, terminal-
// friendly text at the CLI/REPL boundary. Core packages never import
// this package and never format color themselves — they return
// *parser.ParserError and *types.TypeCheckError, and this is the one
// place those get dressed up for a human reader.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// FormatParseError renders a *parser.ParserError as a single colorized
// line: "parse error at line N: message".
func FormatParseError(err *parser.ParserError) string {
	return fmt.Sprintf("%s at line %d: %s", red(bold("parse error")), err.Line, err.Message)
}

// FormatTypeError renders a *types.TypeCheckError, including the
// Expected/Got pair when the error carries one.
func FormatTypeError(err *types.TypeCheckError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s\n", red(bold(string(err.Kind))), err.Loc)
	fmt.Fprintf(&b, "  %s: %s\n", dim("during"), err.Operation)
	if err.Expected != "" || err.Got != "" {
		fmt.Fprintf(&b, "  %s %s\n", yellow("expected:"), cyan(err.Expected))
		fmt.Fprintf(&b, "  %s      %s\n", yellow("got:"), cyan(err.Got))
	}
	fmt.Fprintf(&b, "  %s\n", err.Reason)
	return b.String()
}

// Format renders any error this module surfaces — a ParseError, a
// TypeCheckError, or anything else via its plain Error() string —
// choosing the richer rendering when the concrete type is recognized.
func Format(err error) string {
	switch e := err.(type) {
	case *parser.ParserError:
		return FormatParseError(e)
	case *types.TypeCheckError:
		return FormatTypeError(e)
	default:
		return fmt.Sprintf("%s: %v", red(bold("error")), err)
	}
}
