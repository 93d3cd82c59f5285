package parser

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

// constraintExpr parses the `given ...` grammar: primary forms
// composed with `and` (higher precedence) and `or`.
func constraintExpr() combinator.Parser {
	return orConstraint()
}

func orConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		leftR := andConstraint()(toks)
		if leftR.Err != nil {
			return leftR
		}
		left := leftR.Value.(ast.ConstraintExpr)
		remaining := leftR.Remaining
		for {
			opR := combinator.Keyword("or")(remaining)
			if opR.Err != nil {
				break
			}
			rightR := andConstraint()(opR.Remaining)
			if rightR.Err != nil {
				return rightR
			}
			right := rightR.Value.(ast.ConstraintExpr)
			left = &ast.OrConstraintExpr{Left: left, Right: right, Loc: ast.Location{Start: left.Location().Start, End: right.Location().End}}
			remaining = rightR.Remaining
		}
		return combinator.Result{Value: left, Remaining: remaining}
	}
}

func andConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		leftR := constraintPrimary()(toks)
		if leftR.Err != nil {
			return leftR
		}
		left := leftR.Value.(ast.ConstraintExpr)
		remaining := leftR.Remaining
		for {
			opR := combinator.Keyword("and")(remaining)
			if opR.Err != nil {
				break
			}
			rightR := constraintPrimary()(opR.Remaining)
			if rightR.Err != nil {
				return rightR
			}
			right := rightR.Value.(ast.ConstraintExpr)
			left = &ast.AndConstraintExpr{Left: left, Right: right, Loc: ast.Location{Start: left.Location().Start, End: right.Location().End}}
			remaining = rightR.Remaining
		}
		return combinator.Result{Value: left, Remaining: remaining}
	}
}

func constraintPrimary() combinator.Parser {
	return combinator.Choice(
		parenConstraint(),
		hasFieldConstraint(),
		hasStructureConstraint(),
		isConstraint(),
		implementsConstraint(),
	)
}

func parenConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Punctuation("("), constraintExpr(), combinator.Punctuation(")"))(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		open := values[0].(lexer.Token)
		inner := values[1].(ast.ConstraintExpr)
		close := values[2].(lexer.Token)
		return combinator.Result{
			Value:     &ast.ParenConstraintExpr{Inner: inner, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
			Remaining: r.Remaining,
		}
	}
}

func isConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Keyword("is"), combinator.Choice(combinator.Identifier(), combinator.Keyword("")))(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		v := values[0].(lexer.Token)
		name := values[2].(lexer.Token)
		return combinator.Result{
			Value:     &ast.IsConstraintExpr{Var: v.Value, Name: name.Value, Loc: ast.Location{Start: v.Loc.Start, End: name.Loc.End}},
			Remaining: r.Remaining,
		}
	}
}

func implementsConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Keyword("implements"), combinator.Identifier())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		v := values[0].(lexer.Token)
		name := values[2].(lexer.Token)
		return combinator.Result{
			Value:     &ast.ImplementsConstraintExpr{Var: v.Value, Name: name.Value, Loc: ast.Location{Start: v.Loc.Start, End: name.Loc.End}},
			Remaining: r.Remaining,
		}
	}
}

// hasFieldConstraint is `a has field "fname" of type T`.
func hasFieldConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(
			combinator.Identifier(),
			combinator.Keyword("has"),
			combinator.Identifier(), // "field"
			combinator.String(),
			combinator.Identifier(), // "of"
			combinator.Keyword("type"),
			typeExpr(),
		)(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		v := values[0].(lexer.Token)
		fieldTag := values[2].(lexer.Token)
		if fieldTag.Value != "field" {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected 'field' in has-field constraint", Position: fieldTag.Loc.Start.Line}}
		}
		ofTag := values[4].(lexer.Token)
		typeTag := values[5].(lexer.Token)
		if ofTag.Value != "of" || typeTag.Value != "type" {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected 'of type' in has-field constraint", Position: ofTag.Loc.Start.Line}}
		}
		field := values[3].(lexer.Token)
		typ := values[6].(ast.Type)
		return combinator.Result{
			Value: &ast.HasFieldConstraintExpr{
				Var: v.Value, Field: field.Value, FieldType: typ,
				Loc: ast.Location{Start: v.Loc.Start, End: typ.Location().End},
			},
			Remaining: r.Remaining,
		}
	}
}

// hasStructureConstraint is `a has {@f T, ...}`.
func hasStructureConstraint() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Keyword("has"), recordOrTupleType())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		v := values[0].(lexer.Token)
		rec, ok := values[2].(ast.Type).(*ast.RecordTypeExpr)
		if !ok {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a record structure after 'has'", Position: v.Loc.Start.Line}}
		}
		return combinator.Result{
			Value:     &ast.HasStructureConstraintExpr{Var: v.Value, Structure: rec, Loc: ast.Location{Start: v.Loc.Start, End: rec.Loc.End}},
			Remaining: r.Remaining,
		}
	}
}
