package parser

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

func pattern() combinator.Parser {
	return combinator.Choice(
		constructorPattern(),
		wildcardPattern(),
		literalPattern(),
		variablePattern(),
	)
}

func wildcardPattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Punctuation("_")(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.Wildcard{Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func variablePattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		if isUpper(t.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a lowercase pattern variable", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: &ast.PatternVariable{Name: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func literalPattern() combinator.Parser {
	return combinator.Choice(numberLiteralPattern(), stringLiteralPattern())
}

func numberLiteralPattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Number()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.PatternLiteral{Kind: ast.NumberLiteral, Value: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func stringLiteralPattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.String()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.PatternLiteral{Kind: ast.StringLiteral, Value: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

// constructorPattern matches an uppercase constructor name optionally
// applied to sub-patterns: `None`, `Some x`, `Pair a b`.
func constructorPattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		nameR := combinator.Identifier()(toks)
		if nameR.Err != nil {
			return nameR
		}
		name := nameR.Value.(lexer.Token)
		if !isUpper(name.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a constructor name", Position: name.Loc.Start.Line}}
		}
		remaining := nameR.Remaining
		var sub []ast.Pattern
		end := name.Loc
		for {
			save := remaining
			argR := simplePattern()(remaining)
			if argR.Err != nil {
				remaining = save
				break
			}
			p := argR.Value.(ast.Pattern)
			sub = append(sub, p)
			end = p.Location()
			remaining = argR.Remaining
		}
		return combinator.Result{
			Value:     &ast.ConstructorPattern{Name: name.Value, SubPatterns: sub, Loc: ast.Location{Start: name.Loc.Start, End: end.End}},
			Remaining: remaining,
		}
	}
}

// simplePattern parses sub-patterns of a constructor application: any
// pattern except a further bare constructor application (to keep
// `Pair a b` from misparsing `a` and `b` as nested applications).
func simplePattern() combinator.Parser {
	return combinator.Choice(
		bareConstructorPattern(),
		wildcardPattern(),
		literalPattern(),
		variablePattern(),
	)
}

func bareConstructorPattern() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		if !isUpper(t.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a constructor name", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: &ast.ConstructorPattern{Name: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}
