// Command thrush is the CLI front end for the language's lexer,
// parser, and type engine: `thrush check <file>` type-checks a
// source file and prints its inferred type, `thrush tokens <file>`
// dumps its token stream, and `thrush repl` starts the interactive
// loop. Grounded on the teacher's cmd/ailang/main.go (flag-based
// subcommands, a color.SprintFunc palette), trimmed to the three
// subcommands this repo's narrower scope actually supports — no
// evaluator, no file watcher, no training-data export.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thrush-lang/thrush/internal/diagnostics"
	"github.com/thrush-lang/thrush/internal/lexer"
	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/repl"
	"github.com/thrush-lang/thrush/internal/types"
)

var (
	// Version is set by ldflags during release builds.
	Version = "dev"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	versionFlag := flag.Bool("version", false, "print version information")
	helpFlag := flag.Bool("help", false, "show help")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", bold("thrush"), Version)
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: thrush check <file>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1))

	case "tokens":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: thrush tokens <file>")
			os.Exit(1)
		}
		tokensFile(flag.Arg(1))

	case "repl":
		repl.New().Start(os.Stdin, os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("thrush"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  thrush <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>    Type-check a file and print its inferred type\n", cyan("check"))
	fmt.Printf("  %s <file>   Dump a file's token stream\n", cyan("tokens"))
	fmt.Printf("  %s            Start the interactive REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version    Print version information")
	fmt.Println("  --help       Show this help message")
}

func checkFile(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	prog, err := parser.Parse(content)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Format(err))
		os.Exit(1)
	}

	ty, _, err := types.TypeProgram(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Format(err))
		os.Exit(1)
	}

	fmt.Printf("%s %s :: %s\n", green("✓"), filename, cyan(ty.String()))
}

func tokensFile(filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	for _, t := range lexer.Tokenize(content) {
		fmt.Printf("%-12s %q\n", t.Kind, t.Value)
	}
}
