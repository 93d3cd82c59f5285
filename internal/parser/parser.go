// Package parser builds the grammar in SPEC_FULL.md §4.3 on top of
// internal/combinator, producing internal/ast nodes. Entry point is
// Parse, which tokenizes, runs the Program grammar, and requires
// ParseAll to succeed (no trailing tokens).
package parser

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

// ParserError is the furthest-reaching combinator.ParseError, wrapped
// with the structured shape used throughout diagnostics.
type ParserError struct {
	Message string
	Line    int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

func wrap(err *combinator.ParseError) *ParserError {
	return &ParserError{Message: err.Message, Line: err.Position}
}

// Parse tokenizes src and parses it as a complete Program.
func Parse(src []byte) (*ast.Program, error) {
	toks := lexer.Tokenize(src)
	return ParseTokens(toks)
}

// ParseTokens runs the Program grammar over an existing token stream.
func ParseTokens(toks []lexer.Token) (*ast.Program, error) {
	if isEffectivelyEmpty(toks) {
		return &ast.Program{Root: &ast.Unit{Loc: ast.Location{}}}, nil
	}
	r := combinator.ParseAll(program())(toks)
	if r.Err != nil {
		return nil, wrap(r.Err)
	}
	return &ast.Program{Root: r.Value.(ast.Expr)}, nil
}

func isEffectivelyEmpty(toks []lexer.Token) bool {
	return len(toks) == 0 || (len(toks) == 1 && toks[0].Kind == lexer.EOF)
}

// ParseTypeExpression tokenizes src and parses it as a standalone type
// expression — the grammar typeExpr() implements, exposed on its own
// for callers (the type engine's annotation parsing, an external
// evaluator) that need to parse a type without a surrounding program.
func ParseTypeExpression(src []byte) (ast.Type, error) {
	toks := lexer.Tokenize(src)
	r := combinator.ParseAll(typeExpr())(toks)
	if r.Err != nil {
		return nil, wrap(r.Err)
	}
	return r.Value.(ast.Type), nil
}

// loc builds a Location spanning from start's beginning to end's end.
func loc(start lexer.Token, end ast.Location) ast.Location {
	return ast.Location{Start: start.Loc.Start, End: end.End}
}

func tokLoc(t lexer.Token) ast.Location { return t.Loc }
