package parser

import (
	"strings"

	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

func primaryExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		baseR := basePrimary()(toks)
		if baseR.Err != nil {
			return baseR
		}
		expr := baseR.Value.(ast.Expr)
		remaining := baseR.Remaining
		for {
			progressed := false

			typedR := typedSuffix(expr)(remaining)
			if typedR.Err != nil {
				return typedR
			}
			if applied := typedR.Value.(ast.Expr); applied != expr {
				expr, remaining, progressed = applied, typedR.Remaining, true
			}

			whereR := whereSuffix(expr)(remaining)
			if whereR.Err != nil {
				return whereR
			}
			if applied := whereR.Value.(ast.Expr); applied != expr {
				expr, remaining, progressed = applied, whereR.Remaining, true
			}

			if !progressed {
				break
			}
		}
		return combinator.Result{Value: expr, Remaining: remaining}
	}
}

func basePrimary() combinator.Parser {
	return combinator.Choice(
		numberLiteral(),
		stringLiteral(),
		accessorExpr(),
		functionExpr(),
		ifExpr(),
		matchExpr(),
		parenExpr(),
		listExpr(),
		braceFormExpr(),
		variableExpr(),
	)
}

// ---- literals and variables ---------------------------------------------

func numberLiteral() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Number()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.Literal{Kind: ast.NumberLiteral, Value: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func stringLiteral() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.String()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.Literal{Kind: ast.StringLiteral, Value: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func variableExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		return combinator.Result{Value: &ast.Variable{Name: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func accessorExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Accessor()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		value := t.Value
		optional := strings.HasSuffix(value, "?")
		field := strings.TrimSuffix(value, "?")
		return combinator.Result{Value: &ast.Accessor{Field: field, Optional: optional, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func parenExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Punctuation("("), expr(), combinator.Punctuation(")"))(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		return combinator.Result{Value: values[1].(ast.Expr), Remaining: r.Remaining}
	}
}

// ---- lists -----------------------------------------------------------------

func listExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		openR := combinator.Punctuation("[")(toks)
		if openR.Err != nil {
			return openR
		}
		open := openR.Value.(lexer.Token)
		elemsR := combinator.SepBy(expr(), combinator.Punctuation(","))(openR.Remaining)
		elems := asExprSlice(elemsR.Value)
		remaining := elemsR.Remaining
		if commaR := combinator.Punctuation(",")(remaining); commaR.Err == nil {
			remaining = commaR.Remaining
		}
		closeR := combinator.Punctuation("]")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value:     &ast.List{Elements: elems, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
			Remaining: closeR.Remaining,
		}
	}
}

func asExprSlice(v any) []ast.Expr {
	raw, _ := v.([]any)
	out := make([]ast.Expr, len(raw))
	for i, x := range raw {
		out[i] = x.(ast.Expr)
	}
	return out
}

// ---- brace form: unit / record / tuple -------------------------------------

// braceFormExpr implements the single-lookahead disambiguation: `{}`
// is unit, a leading `@name` is a record, anything else is a tuple.
func braceFormExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		openR := combinator.Punctuation("{")(toks)
		if openR.Err != nil {
			return openR
		}
		open := openR.Value.(lexer.Token)
		remaining := openR.Remaining

		if closeR := combinator.Punctuation("}")(remaining); closeR.Err == nil {
			close := closeR.Value.(lexer.Token)
			return combinator.Result{Value: &ast.Unit{Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}}, Remaining: closeR.Remaining}
		}

		if fieldR := recordFieldExpr()(remaining); fieldR.Err == nil {
			fields := []ast.RecordField{fieldR.Value.(ast.RecordField)}
			remaining = fieldR.Remaining
			for {
				commaR := combinator.Punctuation(",")(remaining)
				if commaR.Err != nil {
					break
				}
				nextR := recordFieldExpr()(commaR.Remaining)
				if nextR.Err != nil {
					break
				}
				fields = append(fields, nextR.Value.(ast.RecordField))
				remaining = nextR.Remaining
			}
			if commaR := combinator.Punctuation(",")(remaining); commaR.Err == nil {
				remaining = commaR.Remaining
			}
			closeR := combinator.Punctuation("}")(remaining)
			if closeR.Err != nil {
				return closeR
			}
			close := closeR.Value.(lexer.Token)
			return combinator.Result{
				Value:     &ast.Record{Fields: fields, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
				Remaining: closeR.Remaining,
			}
		}

		elemsR := combinator.SepBy(expr(), combinator.Punctuation(","))(remaining)
		elems := asExprSlice(elemsR.Value)
		remaining = elemsR.Remaining
		if commaR := combinator.Punctuation(",")(remaining); commaR.Err == nil {
			remaining = commaR.Remaining
		}
		closeR := combinator.Punctuation("}")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value:     &ast.Tuple{Elements: elems, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
			Remaining: closeR.Remaining,
		}
	}
}

func recordFieldExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		accR := combinator.Accessor()(toks)
		if accR.Err != nil {
			return accR
		}
		acc := accR.Value.(lexer.Token)
		valR := applicationExpr()(accR.Remaining)
		if valR.Err != nil {
			return valR
		}
		val := valR.Value.(ast.Expr)
		return combinator.Result{
			Value:     ast.RecordField{Name: acc.Value, Value: val, Loc: ast.Location{Start: acc.Loc.Start, End: val.Location().End}},
			Remaining: valR.Remaining,
		}
	}
}

// ---- functions --------------------------------------------------------------

func functionExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		kwR := combinator.Keyword("fn")(toks)
		if kwR.Err != nil {
			return kwR
		}
		kw := kwR.Value.(lexer.Token)
		paramsR := fnParams()(kwR.Remaining)
		if paramsR.Err != nil {
			return paramsR
		}
		params := paramsR.Value.([]string)
		arrowR := combinator.Operator("=>")(paramsR.Remaining)
		if arrowR.Err != nil {
			return arrowR
		}
		bodyR := expr()(arrowR.Remaining)
		if bodyR.Err != nil {
			return bodyR
		}
		body := bodyR.Value.(ast.Expr)
		return combinator.Result{
			Value:     &ast.Function{Params: params, Body: body, Loc: ast.Location{Start: kw.Loc.Start, End: body.Location().End}},
			Remaining: bodyR.Remaining,
		}
	}
}

func fnParams() combinator.Parser {
	return combinator.Choice(emptyParensParams(), unitBraceParams(), identifierParams())
}

func emptyParensParams() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Punctuation("("), combinator.Punctuation(")"))(toks)
		if r.Err != nil {
			return r
		}
		return combinator.Result{Value: []string{}, Remaining: r.Remaining}
	}
}

func unitBraceParams() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Punctuation("{"), combinator.Punctuation("}"))(toks)
		if r.Err != nil {
			return r
		}
		return combinator.Result{Value: []string{"_unit"}, Remaining: r.Remaining}
	}
}

func identifierParams() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Many1(paramName())(toks)
		if r.Err != nil {
			return r
		}
		raw := r.Value.([]any)
		names := make([]string, len(raw))
		for i, x := range raw {
			names[i] = x.(string)
		}
		return combinator.Result{Value: names, Remaining: r.Remaining}
	}
}

// paramName accepts a regular identifier, or the contextual bare `_`
// wildcard token as a parameter named "_".
func paramName() combinator.Parser {
	return combinator.Choice(
		func(toks []lexer.Token) combinator.Result {
			r := combinator.Identifier()(toks)
			if r.Err != nil {
				return r
			}
			return combinator.Result{Value: r.Value.(lexer.Token).Value, Remaining: r.Remaining}
		},
		func(toks []lexer.Token) combinator.Result {
			r := combinator.Punctuation("_")(toks)
			if r.Err != nil {
				return r
			}
			return combinator.Result{Value: "_", Remaining: r.Remaining}
		},
	)
}

// ---- control flow ---------------------------------------------------------

func ifExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(
			combinator.Keyword("if"), expr(),
			combinator.Keyword("then"), expr(),
			combinator.Keyword("else"), expr(),
		)(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		kw := values[0].(lexer.Token)
		cond := values[1].(ast.Expr)
		then := values[3].(ast.Expr)
		els := values[5].(ast.Expr)
		return combinator.Result{
			Value:     &ast.If{Condition: cond, Then: then, Else: els, Loc: ast.Location{Start: kw.Loc.Start, End: els.Location().End}},
			Remaining: r.Remaining,
		}
	}
}

func matchExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(combinator.Keyword("match"), expr(), combinator.Keyword("with"), combinator.Punctuation("("))(toks)
		if headR.Err != nil {
			return headR
		}
		headValues := headR.Value.([]any)
		kw := headValues[0].(lexer.Token)
		scrutinee := headValues[1].(ast.Expr)

		casesR := combinator.SepBy(matchCase(), combinator.Punctuation(";"))(headR.Remaining)
		raw := casesR.Value.([]any)
		cases := make([]ast.MatchCase, len(raw))
		for i, c := range raw {
			cases[i] = c.(ast.MatchCase)
		}
		remaining := casesR.Remaining
		if semiR := combinator.Punctuation(";")(remaining); semiR.Err == nil {
			remaining = semiR.Remaining
		}
		closeR := combinator.Punctuation(")")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value:     &ast.Match{Scrutinee: scrutinee, Cases: cases, Loc: ast.Location{Start: kw.Loc.Start, End: close.Loc.End}},
			Remaining: closeR.Remaining,
		}
	}
}

func matchCase() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(pattern(), combinator.Operator("=>"), expr())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		pat := values[0].(ast.Pattern)
		body := values[2].(ast.Expr)
		return combinator.Result{
			Value:     ast.MatchCase{Pattern: pat, Body: body, Loc: ast.Location{Start: pat.Location().Start, End: body.Location().End}},
			Remaining: r.Remaining,
		}
	}
}

// ---- postfix: where, typed/constrained -------------------------------------

func whereSuffix(main ast.Expr) combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(combinator.Keyword("where"), combinator.Punctuation("("))(toks)
		if headR.Err != nil {
			return combinator.Result{Value: main, Remaining: toks}
		}
		defsR := combinator.SepBy(statement(), combinator.Punctuation(";"))(headR.Remaining)
		raw := defsR.Value.([]any)
		defs := make([]ast.Expr, len(raw))
		for i, d := range raw {
			defs[i] = d.(ast.Expr)
		}
		remaining := defsR.Remaining
		if semiR := combinator.Punctuation(";")(remaining); semiR.Err == nil {
			remaining = semiR.Remaining
		}
		closeR := combinator.Punctuation(")")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value:     ast.Expr(&ast.Where{Definitions: defs, Main: main, Loc: ast.Location{Start: main.Location().Start, End: close.Loc.End}}),
			Remaining: closeR.Remaining,
		}
	}
}

func typedSuffix(base ast.Expr) combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		colonR := combinator.Punctuation(":")(toks)
		if colonR.Err != nil {
			return combinator.Result{Value: base, Remaining: toks}
		}
		typeR := typeExpr()(colonR.Remaining)
		if typeR.Err != nil {
			return typeR
		}
		typ := typeR.Value.(ast.Type)
		remaining := typeR.Remaining

		givenR := combinator.Keyword("given")(remaining)
		if givenR.Err != nil {
			return combinator.Result{
				Value:     ast.Expr(&ast.Typed{Expr: base, TypeExpr: typ, Loc: ast.Location{Start: base.Location().Start, End: typ.Location().End}}),
				Remaining: remaining,
			}
		}
		constrR := constraintExpr()(givenR.Remaining)
		if constrR.Err != nil {
			return constrR
		}
		constr := constrR.Value.(ast.ConstraintExpr)
		return combinator.Result{
			Value: ast.Expr(&ast.Constrained{
				Expr: base, TypeExpr: typ, Constraint: constr,
				Loc: ast.Location{Start: base.Location().Start, End: constr.Location().End},
			}),
			Remaining: constrR.Remaining,
		}
	}
}
