package parser

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

var primitiveNames = map[string]bool{
	"Float": true, "Number": true, "String": true, "Unit": true, "Unknown": true,
}

// typeExpr parses a right-associative arrow chain with optional
// trailing effects on the outermost arrow.
func typeExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		first := typeAtomChain()(toks)
		if first.Err != nil {
			return first
		}
		atoms := []ast.Type{first.Value.(ast.Type)}
		remaining := first.Remaining

		for {
			arrowR := combinator.Operator("->")(remaining)
			if arrowR.Err != nil {
				break
			}
			nextR := typeAtomChain()(arrowR.Remaining)
			if nextR.Err != nil {
				return nextR
			}
			atoms = append(atoms, nextR.Value.(ast.Type))
			remaining = nextR.Remaining
		}

		if len(atoms) == 1 {
			return combinator.Result{Value: atoms[0], Remaining: remaining}
		}

		effectsR := effectTags()(remaining)
		effects, _ := effectsR.Value.([]string)
		remaining = effectsR.Remaining

		ret := atoms[len(atoms)-1]
		params := atoms[:len(atoms)-1]
		return combinator.Result{
			Value: &ast.FunctionType{
				Params:  params,
				Return:  ret,
				Effects: effects,
				Loc:     ast.Location{Start: params[0].Location().Start, End: ret.Location().End},
			},
			Remaining: remaining,
		}
	}
}

func effectTags() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		var effects []string
		remaining := toks
		for {
			bangR := combinator.Operator("!")(remaining)
			if bangR.Err != nil {
				break
			}
			nameR := combinator.Identifier()(bangR.Remaining)
			if nameR.Err != nil {
				break
			}
			effects = append(effects, nameR.Value.(lexer.Token).Value)
			remaining = nameR.Remaining
		}
		return combinator.Result{Value: effects, Remaining: remaining}
	}
}

// typeAtomChain parses a single atom, or an uppercase variant
// constructor applied to zero or more following atoms: `Option a`.
func typeAtomChain() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := typeAtom()(toks)
		if headR.Err != nil {
			return headR
		}
		head := headR.Value.(ast.Type)
		variant, isVariant := head.(*ast.VariantTypeExpr)
		if !isVariant {
			return headR
		}
		remaining := headR.Remaining
		var args []ast.Type
		for {
			save := remaining
			argR := typeAtom()(remaining)
			if argR.Err != nil {
				remaining = save
				break
			}
			args = append(args, argR.Value.(ast.Type))
			remaining = argR.Remaining
		}
		if len(args) == 0 {
			return headR
		}
		end := args[len(args)-1].Location().End
		return combinator.Result{
			Value: &ast.VariantTypeExpr{
				Name: variant.Name,
				Args: args,
				Loc:  ast.Location{Start: variant.Loc.Start, End: end},
			},
			Remaining: remaining,
		}
	}
}

func typeAtom() combinator.Parser {
	return combinator.Choice(
		parenType(),
		listType(),
		recordOrTupleType(),
		primitiveType(),
		typeVariable(),
		variantTypeHead(),
	)
}

func parenType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Punctuation("("), typeExpr(), combinator.Punctuation(")"))(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		return combinator.Result{Value: values[1].(ast.Type), Remaining: r.Remaining}
	}
}

func listType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Keyword("List"), typeAtom())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		kw := values[0].(lexer.Token)
		elem := values[1].(ast.Type)
		return combinator.Result{
			Value:     &ast.ListTypeExpr{Element: elem, Loc: ast.Location{Start: kw.Loc.Start, End: elem.Location().End}},
			Remaining: r.Remaining,
		}
	}
}

// recordOrTupleType parses the brace-form type grammar: `{}` is never
// valid here (use Unit), `{name: T, ...}` / `{@name T, ...}` is a
// record, and `{T, T, ...}` is a tuple.
func recordOrTupleType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		openR := combinator.Punctuation("{")(toks)
		if openR.Err != nil {
			return openR
		}
		open := openR.Value.(lexer.Token)
		remaining := openR.Remaining

		if fieldR := recordFieldType()(remaining); fieldR.Err == nil {
			fields := []ast.RecordFieldType{fieldR.Value.(ast.RecordFieldType)}
			remaining = fieldR.Remaining
			for {
				commaR := combinator.Punctuation(",")(remaining)
				if commaR.Err != nil {
					break
				}
				nextR := recordFieldType()(commaR.Remaining)
				if nextR.Err != nil {
					break
				}
				fields = append(fields, nextR.Value.(ast.RecordFieldType))
				remaining = nextR.Remaining
			}
			closeR := combinator.Punctuation("}")(remaining)
			if closeR.Err != nil {
				return closeR
			}
			close := closeR.Value.(lexer.Token)
			return combinator.Result{
				Value:     &ast.RecordTypeExpr{Fields: fields, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
				Remaining: closeR.Remaining,
			}
		}

		elemsR := combinator.SepBy(typeExpr(), combinator.Punctuation(","))(remaining)
		elems := asTypeSlice(elemsR.Value)
		remaining = elemsR.Remaining
		closeR := combinator.Punctuation("}")(remaining)
		if closeR.Err != nil {
			return closeR
		}
		close := closeR.Value.(lexer.Token)
		if len(elems) == 0 {
			return combinator.Result{Err: &combinator.ParseError{Message: "empty braces are not a type; use Unit", Position: open.Loc.Start.Line}}
		}
		return combinator.Result{
			Value:     &ast.TupleTypeExpr{Elements: elems, Loc: ast.Location{Start: open.Loc.Start, End: close.Loc.End}},
			Remaining: closeR.Remaining,
		}
	}
}

func recordFieldType() combinator.Parser {
	return combinator.Choice(namedFieldType(), accessorFieldType())
}

func namedFieldType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Identifier(), combinator.Punctuation(":"), typeExpr())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		name := values[0].(lexer.Token).Value
		typ := values[2].(ast.Type)
		return combinator.Result{Value: ast.RecordFieldType{Name: name, Type: typ}, Remaining: r.Remaining}
	}
}

func accessorFieldType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Seq(combinator.Accessor(), typeExpr())(toks)
		if r.Err != nil {
			return r
		}
		values := r.Value.([]any)
		name := values[0].(lexer.Token).Value
		typ := values[1].(ast.Type)
		return combinator.Result{Value: ast.RecordFieldType{Name: name, Type: typ}, Remaining: r.Remaining}
	}
}

func primitiveType() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		if len(toks) == 0 {
			return combinator.Result{Err: &combinator.ParseError{Message: "end of input", Position: 0}}
		}
		t := toks[0]
		if t.Kind != lexer.KEYWORD || !primitiveNames[t.Value] {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a primitive type keyword", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: &ast.PrimitiveType{Name: t.Value, Loc: t.Loc}, Remaining: toks[1:]}
	}
}

func typeVariable() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		if isUpper(t.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a lowercase type variable", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: &ast.TypeVariable{Name: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

// variantTypeHead parses a bare uppercase constructor name with no
// arguments yet applied; typeAtomChain attaches trailing atoms.
func variantTypeHead() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		r := combinator.Identifier()(toks)
		if r.Err != nil {
			return r
		}
		t := r.Value.(lexer.Token)
		if !isUpper(t.Value) {
			return combinator.Result{Err: &combinator.ParseError{Message: "expected a type constructor name", Position: t.Loc.Start.Line}}
		}
		return combinator.Result{Value: &ast.VariantTypeExpr{Name: t.Value, Loc: t.Loc}, Remaining: r.Remaining}
	}
}

func isUpper(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r >= 'A' && r <= 'Z'
}

func asTypeSlice(v any) []ast.Type {
	raw, _ := v.([]any)
	out := make([]ast.Type, len(raw))
	for i, x := range raw {
		out[i] = x.(ast.Type)
	}
	return out
}
