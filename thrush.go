// Package thrush re-exports the four entry points an external
// consumer (an evaluator, a build tool, an editor plugin) needs to
// drive this language's front end without reaching into internal/...
// itself. Unlike the teacher, whose cmd/ailang calls straight into its
// own internal packages because nothing outside the repo is meant to
// import it, Thrush's core is designed to be embedded by a separate
// evaluator project, so it gets a small non-internal façade. The real
// implementations live in internal/lexer, internal/parser, and
// internal/types; this file is thin wiring, not a fifth package.
package thrush

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/lexer"
	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

// Token is the lexer's token shape, re-exported for callers that want
// to drive tokenization directly (a syntax-highlighting client, for
// instance) without depending on internal/lexer.
type Token = lexer.Token

// Tokenize turns source bytes into a token stream.
func Tokenize(src []byte) []Token { return lexer.Tokenize(src) }

// Parse tokenizes and parses src as a complete program.
func Parse(src []byte) (*ast.Program, error) { return parser.Parse(src) }

// ParseTypeExpression parses src as a standalone type expression,
// independent of any surrounding program.
func ParseTypeExpression(src []byte) (ast.Type, error) {
	return parser.ParseTypeExpression(src)
}

// TypeProgram type-checks prog and returns its top-level type.
func TypeProgram(prog *ast.Program) (types.Type, *types.TypeState, error) {
	return types.TypeProgram(prog)
}

// TypeAndDecorate type-checks prog and additionally returns the
// decorated AST overlay with every node's inferred type attached.
func TypeAndDecorate(prog *ast.Program) (types.Type, *types.Decorated, *types.TypeState, error) {
	return types.TypeAndDecorate(prog)
}
