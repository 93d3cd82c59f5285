package repl

import (
	"fmt"
	"io"
	"strings"
)

// HandleCommand processes a `:`-prefixed REPL command.
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)

	case ":tokens":
		r.config.ShowTokens = !r.config.ShowTokens
		fmt.Fprintf(out, "Token dumping %s\n", yellow(toggleWord(r.config.ShowTokens)))

	case ":tree":
		r.config.ShowTree = !r.config.ShowTree
		fmt.Fprintf(out, "Decorated-tree dumping %s\n", yellow(toggleWord(r.config.ShowTree)))

	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}

	case ":clear":
		fmt.Fprint(out, "\033[H\033[2J")

	case ":reset":
		r.history = nil
		fmt.Fprintln(out, green("History cleared"))

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(out, "Type :help for help")
	}
}

func toggleWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("REPL Commands:"))
	fmt.Fprintln(out, "  :help, :h     Show this help")
	fmt.Fprintln(out, "  :quit, :q     Exit the REPL")
	fmt.Fprintln(out, "  :tokens       Toggle token-stream dumping")
	fmt.Fprintln(out, "  :tree         Toggle decorated-AST dumping")
	fmt.Fprintln(out, "  :history      Show command history")
	fmt.Fprintln(out, "  :clear        Clear the screen")
	fmt.Fprintln(out, "  :reset        Clear command history")
	fmt.Fprintln(out)
	fmt.Fprintln(out, bold("Examples:"))
	fmt.Fprintln(out, "  fn x => x + 1")
	fmt.Fprintln(out, "  {@name \"Alice\", @age 30} | @name")
	fmt.Fprintln(out, "  match Some 5 with (None => 0; Some x => x)")
}
