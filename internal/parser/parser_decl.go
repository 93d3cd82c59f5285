package parser

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

// program is the top level: a left-associative ';'-chain over
// statements. A single statement need not be followed by ';'.
func program() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		firstR := statement()(toks)
		if firstR.Err != nil {
			return firstR
		}
		result := firstR.Value.(ast.Expr)
		remaining := firstR.Remaining
		for {
			semiR := combinator.Punctuation(";")(remaining)
			if semiR.Err != nil {
				break
			}
			if isEffectivelyEmpty(semiR.Remaining) {
				remaining = semiR.Remaining
				break
			}
			nextR := statement()(semiR.Remaining)
			if nextR.Err != nil {
				break
			}
			next := nextR.Value.(ast.Expr)
			result = &ast.Binary{Operator: ";", Left: result, Right: next, Loc: ast.Location{Start: result.Location().Start, End: next.Location().End}}
			remaining = nextR.Remaining
		}
		return combinator.Result{Value: result, Remaining: remaining}
	}
}

// statement is one of: expression, definition, mutable-definition,
// mutation, import, type-definition, user-defined-type,
// constraint-definition, implement-definition.
func statement() combinator.Parser {
	return combinator.Choice(
		importStmt(),
		typeDefinitionStmt(),
		userDefinedTypeStmt(),
		constraintDefinitionStmt(),
		implementDefinitionStmt(),
		mutableDefinitionStmt(),
		mutationStmt(),
		definitionStmt(),
		expr(),
	)
}

func importStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Keyword("import"), combinator.String())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		kw := values[0].(lexer.Token)
		path := values[1].(lexer.Token)
		return combinator.Result{
			Value:     &ast.Import{Path: path.Value, Loc: ast.Location{Start: kw.Loc.Start, End: path.Loc.End}},
			Remaining: r.Remaining,
		}
	}
}

// definitionStmt is `name = expr`.
func definitionStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Operator("="), expr())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		name := values[0].(lexer.Token)
		value := values[2].(ast.Expr)
		return combinator.Result{
			Value:     &ast.Definition{Name: name.Value, Value: value, Loc: ast.Location{Start: name.Loc.Start, End: value.Location().End}},
			Remaining: r.Remaining,
		}
	}
}

// mutableDefinitionStmt is `mut name = expr` (also accepts `mut!`).
func mutableDefinitionStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		kwR := combinator.Choice(combinator.Keyword("mut"), combinator.Keyword("mut!"))(toks)
		if kwR.Err != nil {
			return kwR
		}
		kw := kwR.Value.(lexer.Token)
		rest := combinator.Seq(combinator.Identifier(), combinator.Operator("="), expr())(kwR.Remaining)
		if rest.Err != nil {
			return rest
		}
		values := rest.Value.([]any)
		name := values[0].(lexer.Token)
		value := values[2].(ast.Expr)
		return combinator.Result{
			Value:     &ast.MutableDefinition{Name: name.Value, Value: value, Loc: ast.Location{Start: kw.Loc.Start, End: value.Location().End}},
			Remaining: rest.Remaining,
		}
	}
}

// mutationStmt is `name := expr`.
func mutationStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Punctuation(":"), combinator.Operator("="), expr())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		name := values[0].(lexer.Token)
		value := values[3].(ast.Expr)
		return combinator.Result{
			Value:     &ast.Mutation{Name: name.Value, Value: value, Loc: ast.Location{Start: name.Loc.Start, End: value.Location().End}},
			Remaining: r.Remaining,
		}
	}
}

// ---- ADT and trait declarations --------------------------------------------

// typeDefinitionStmt is `variant Name params = Ctor args | Ctor args | ...`.
func typeDefinitionStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(combinator.Keyword("variant"), combinator.Identifier())(toks)
		if headR.Err != nil {
			return headR
		}
		headValues := headR.Value.([]any)
		kw := headValues[0].(lexer.Token)
		name := headValues[1].(lexer.Token)

		paramsR := combinator.Many(typeParamName())(headR.Remaining)
		params := asStringSlice(paramsR.Value)
		remaining := paramsR.Remaining

		eqR := combinator.Operator("=")(remaining)
		if eqR.Err != nil {
			return eqR
		}
		ctorsR := sepByPipe(constructorDecl())(eqR.Remaining)
		raw := ctorsR.Value.([]any)
		ctors := make([]ast.ConstructorDecl, len(raw))
		for i, c := range raw {
			ctors[i] = c.(ast.ConstructorDecl)
		}
		if len(ctors) == 0 {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected at least one constructor", Position: kw.Loc.Start.Line}}
		}
		end := ctors[len(ctors)-1].Loc
		return combinator.Result{
			Value: &ast.TypeDefinition{
				Name: name.Value, Params: params, Constructors: ctors,
				Loc: ast.Location{Start: kw.Loc.Start, End: end.End},
			},
			Remaining: ctorsR.Remaining,
		}
	}
}

func typeParamName() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		if isUpper(t.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a lowercase type parameter", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: t.Value, Remaining: r.Remaining}
	}
}

func constructorDecl() combinator.Parser {
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
		var args []ast.Type
		end := name.Loc
		for {
			save := remaining
			argR := typeAtom()(remaining)
			if argR.Err != nil {
				remaining = save
				break
			}
			args = append(args, argR.Value.(ast.Type))
			end = argR.Value.(ast.Type).Location()
			remaining = argR.Remaining
		}
		return combinator.Result{
			Value:     ast.ConstructorDecl{Name: name.Value, Args: args, Loc: ast.Location{Start: name.Loc.Start, End: end.End}},
			Remaining: remaining,
		}
	}
}

// sepByPipe parses p separated by the '|' operator; when the first p
// fails it succeeds with an empty list and consumes nothing.
func sepByPipe(p combinator.Parser) combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		firstR := p(toks)
		if firstR.Err != nil {
			return combinator.Result{Value: []any{}, Remaining: toks}
		}
		values := []any{firstR.Value}
		remaining := firstR.Remaining
		for {
			pipeR := combinator.Operator("|")(remaining)
			if pipeR.Err != nil {
				break
			}
			nextR := p(pipeR.Remaining)
			if nextR.Err != nil {
				break
			}
			values = append(values, nextR.Value)
			remaining = nextR.Remaining
		}
		return combinator.Result{Value: values, Remaining: remaining}
	}
}

// userDefinedTypeStmt is `type Name params = structured-type-or-union`.
func userDefinedTypeStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(combinator.Keyword("type"), combinator.Identifier())(toks)
		if headR.Err != nil {
			return headR
		}
		headValues := headR.Value.([]any)
		kw := headValues[0].(lexer.Token)
		name := headValues[1].(lexer.Token)

		paramsR := combinator.Many(typeParamName())(headR.Remaining)
		params := asStringSlice(paramsR.Value)
		remaining := paramsR.Remaining

		eqR := combinator.Operator("=")(remaining)
		if eqR.Err != nil {
			return eqR
		}
		defR := unionOrType()(eqR.Remaining)
		if defR.Err != nil {
			return defR
		}
		def := defR.Value.(ast.Type)
		return combinator.Result{
			Value: &ast.UserDefinedType{
				Name: name.Value, Params: params, Def: def,
				Loc: ast.Location{Start: kw.Loc.Start, End: def.Location().End},
			},
			Remaining: defR.Remaining,
		}
	}
}

// unionOrType parses `A | B | ...` (a union of alternatives) or a
// single structured/primitive type expression.
func unionOrType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		firstR := typeExpr()(toks)
		if firstR.Err != nil {
			return firstR
		}
		alts := []ast.Type{firstR.Value.(ast.Type)}
		remaining := firstR.Remaining
		for {
			pipeR := combinator.Operator("|")(remaining)
			if pipeR.Err != nil {
				break
			}
			nextR := typeExpr()(pipeR.Remaining)
			if nextR.Err != nil {
				return nextR
			}
			alts = append(alts, nextR.Value.(ast.Type))
			remaining = nextR.Remaining
		}
		if len(alts) == 1 {
			return combinator.Result{Value: alts[0], Remaining: remaining}
		}
		return combinator.Result{
			Value:     &ast.UnionTypeExpr{Alternatives: alts, Loc: ast.Location{Start: alts[0].Location().Start, End: alts[len(alts)-1].Location().End}},
			Remaining: remaining,
		}
	}
}

// constraintDefinitionStmt is `constraint Name typeParam (sig; sig; ...)`.
func constraintDefinitionStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(
			combinator.Keyword("constraint"), combinator.Identifier(),
			typeParamName(), combinator.Punctuation("("),
		)(toks)
		if headR.Err != nil {
			return headR
		}
		values := headR.Value.([]any)
		kw := values[0].(lexer.Token)
		name := values[1].(lexer.Token)
		typeParam := values[2].(string)

		sigsR := combinator.SepBy(signature(), combinator.Punctuation(";"))(headR.Remaining)
		raw := sigsR.Value.([]any)
		sigs := make([]ast.Signature, len(raw))
		for i, s := range raw {
			sigs[i] = s.(ast.Signature)
		}
		remaining := sigsR.Remaining
		if semiR := combinator.Punctuation(";")(remaining); semiR.Err == nil {
			remaining = semiR.Remaining
		}
		closeR := combinator.Punctuation(")")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value: &ast.ConstraintDefinition{
				Name: name.Value, TypeParam: typeParam, Signatures: sigs,
				Loc: ast.Location{Start: kw.Loc.Start, End: close.Loc.End},
			},
			Remaining: closeR.Remaining,
		}
	}
}

// signature is `name typeParams : TypeExpr`.
func signature() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		nameR := combinator.Identifier()(toks)
		if nameR.Err != nil {
			return nameR
		}
		name := nameR.Value.(lexer.Token)
		paramsR := combinator.Many(typeParamName())(nameR.Remaining)
		params := asStringSlice(paramsR.Value)
		colonR := combinator.Punctuation(":")(paramsR.Remaining)
		if colonR.Err != nil {
			return colonR
		}
		typeR := typeExpr()(colonR.Remaining)
		if typeR.Err != nil {
			return typeR
		}
		typ := typeR.Value.(ast.Type)
		return combinator.Result{
			Value:     ast.Signature{Name: name.Value, TypeParams: params, TypeExpr: typ, Loc: ast.Location{Start: name.Loc.Start, End: typ.Location().End}},
			Remaining: typeR.Remaining,
		}
	}
}

// implementDefinitionStmt is `implement Name TypeName (name = expr; ...)`.
func implementDefinitionStmt() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := combinator.Seq(
			combinator.Keyword("implement"), combinator.Identifier(),
			combinator.Choice(combinator.Identifier(), combinator.Keyword("")), combinator.Punctuation("("),
		)(toks)
		if headR.Err != nil {
			return headR
		}
		values := headR.Value.([]any)
		kw := values[0].(lexer.Token)
		constraintName := values[1].(lexer.Token)
		typeName := values[2].(lexer.Token)

		implsR := combinator.SepBy(definitionStmt(), combinator.Punctuation(";"))(headR.Remaining)
		raw := implsR.Value.([]any)
		impls := make([]ast.Definition, len(raw))
		for i, d := range raw {
			impls[i] = *d.(*ast.Definition)
		}
		remaining := implsR.Remaining
		if semiR := combinator.Punctuation(";")(remaining); semiR.Err == nil {
			remaining = semiR.Remaining
		}
		closeR := combinator.Punctuation(")")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		return combinator.Result{
			Value: &ast.ImplementDefinition{
				ConstraintName: constraintName.Value, TypeName: typeName.Value, Implementations: impls,
				Loc: ast.Location{Start: kw.Loc.Start, End: close.Loc.End},
			},
			Remaining: closeR.Remaining,
		}
	}
}

func asStringSlice(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, len(raw))
	for i, x := range raw {
		out[i] = x.(string)
	}
	return out
}
