package parser

import (
	"testing"

	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/testutil"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog.Root
}

func TestParseArithmetic(t *testing.T) {
	root := mustParse(t, "2 + 3")
	bin, ok := root.(*ast.Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected binary '+', got %#v", root)
	}
}

func TestParseFunctionMultipleParams(t *testing.T) {
	root := mustParse(t, "fn x y => x + y")
	fn, ok := root.(*ast.Function)
	if !ok {
		t.Fatalf("expected Function, got %#v", root)
	}
	testutil.RequireEqual(t, []string{"x", "y"}, fn.Params)
}

func TestParseVariantAndApplication(t *testing.T) {
	prog, err := Parse([]byte("variant Option a = None | Some a; Some 3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := prog.Root.(*ast.Binary)
	if !ok || bin.Operator != ";" {
		t.Fatalf("expected top-level ';' chain, got %#v", prog.Root)
	}
	typeDef, ok := bin.Left.(*ast.TypeDefinition)
	if !ok || typeDef.Name != "Option" {
		t.Fatalf("expected TypeDefinition Option, got %#v", bin.Left)
	}
	if len(typeDef.Constructors) != 2 {
		t.Fatalf("expected 2 constructors, got %d", len(typeDef.Constructors))
	}
	app, ok := bin.Right.(*ast.Application)
	if !ok {
		t.Fatalf("expected Application, got %#v", bin.Right)
	}
	fn, ok := app.Func.(*ast.Variable)
	if !ok || fn.Name != "Some" {
		t.Fatalf("expected Variable Some, got %#v", app.Func)
	}
}

func TestParseRecordAndAccessorThrush(t *testing.T) {
	root := mustParse(t, `{@name "Alice", @age 30} | @name`)
	app, ok := root.(*ast.Application)
	if !ok {
		t.Fatalf("expected Application (thrush '|' desugars to f a), got %#v", root)
	}
	acc, ok := app.Func.(*ast.Accessor)
	if !ok || acc.Field != "name" {
		t.Fatalf("expected Accessor(name) as function, got %#v", app.Func)
	}
	rec, ok := app.Args[0].(*ast.Record)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected 2-field Record as argument, got %#v", app.Args[0])
	}
}

func TestParseMatch(t *testing.T) {
	root := mustParse(t, "match opt with (None => 0; Some x => x)")
	m, ok := root.(*ast.Match)
	if !ok {
		t.Fatalf("expected Match, got %#v", root)
	}
	if len(m.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(m.Cases))
	}
	ctor, ok := m.Cases[1].Pattern.(*ast.ConstructorPattern)
	if !ok || ctor.Name != "Some" || len(ctor.SubPatterns) != 1 {
		t.Fatalf("expected ConstructorPattern Some(x), got %#v", m.Cases[1].Pattern)
	}
}

func TestParseUnaryMinusDesugars(t *testing.T) {
	root := mustParse(t, "-5")
	bin, ok := root.(*ast.Binary)
	if !ok || bin.Operator != "*" {
		t.Fatalf("expected desugared binary '*', got %#v", root)
	}
	left, ok := bin.Left.(*ast.Literal)
	if !ok || left.Value != "-1" {
		t.Fatalf("expected literal -1 on the left, got %#v", bin.Left)
	}
}

func TestParseBraceFormUnit(t *testing.T) {
	root := mustParse(t, "{}")
	if _, ok := root.(*ast.Unit); !ok {
		t.Fatalf("expected Unit, got %#v", root)
	}
}

func TestParseRecordTrailingComma(t *testing.T) {
	root := mustParse(t, `{@name "Alice", @age 30,}`)
	rec, ok := root.(*ast.Record)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected 2-field Record, got %#v", root)
	}
}

func TestParseBraceFormTuple(t *testing.T) {
	root := mustParse(t, "{1, 2, 3}")
	tup, ok := root.(*ast.Tuple)
	if !ok || len(tup.Elements) != 3 {
		t.Fatalf("expected 3-element Tuple, got %#v", root)
	}
}

func TestParseListTrailingComma(t *testing.T) {
	root := mustParse(t, "[1, 2, 3,]")
	l, ok := root.(*ast.List)
	if !ok || len(l.Elements) != 3 {
		t.Fatalf("expected 3-element List, got %#v", root)
	}
}

func TestParseTypedExpression(t *testing.T) {
	root := mustParse(t, "3 : Float")
	typed, ok := root.(*ast.Typed)
	if !ok {
		t.Fatalf("expected Typed, got %#v", root)
	}
	prim, ok := typed.TypeExpr.(*ast.PrimitiveType)
	if !ok || prim.Name != "Float" {
		t.Fatalf("expected PrimitiveType Float, got %#v", typed.TypeExpr)
	}
}

func TestParseConstrainedExpression(t *testing.T) {
	root := mustParse(t, "x : a given a is Number")
	constrained, ok := root.(*ast.Constrained)
	if !ok {
		t.Fatalf("expected Constrained, got %#v", root)
	}
	is, ok := constrained.Constraint.(*ast.IsConstraintExpr)
	if !ok || is.Var != "a" || is.Name != "Number" {
		t.Fatalf("expected IsConstraintExpr(a, Number), got %#v", constrained.Constraint)
	}
}

func TestParsePipeline(t *testing.T) {
	root := mustParse(t, "xs |> head |> id")
	p, ok := root.(*ast.Pipeline)
	if !ok || len(p.Steps) != 3 {
		t.Fatalf("expected 3-step Pipeline, got %#v", root)
	}
}

func TestParseWhere(t *testing.T) {
	root := mustParse(t, "x where (x = 1)")
	w, ok := root.(*ast.Where)
	if !ok || len(w.Definitions) != 1 {
		t.Fatalf("expected Where with 1 definition, got %#v", root)
	}
}

func TestParseEmptyInput(t *testing.T) {
	prog, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if _, ok := prog.Root.(*ast.Unit); !ok {
		t.Fatalf("expected empty input to parse as Unit, got %#v", prog.Root)
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Parse([]byte("1 2 )"))
	if err == nil {
		t.Fatal("expected a parse error due to unmatched trailing ')'")
	}
}

func TestParseConstraintDefinitionAndImplement(t *testing.T) {
	src := `constraint Show a (show a : a -> String); implement Show Float (show = fn x => x)`
	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin := prog.Root.(*ast.Binary)
	cdef, ok := bin.Left.(*ast.ConstraintDefinition)
	if !ok || cdef.Name != "Show" || len(cdef.Signatures) != 1 {
		t.Fatalf("expected ConstraintDefinition Show, got %#v", bin.Left)
	}
	impl, ok := bin.Right.(*ast.ImplementDefinition)
	if !ok || impl.ConstraintName != "Show" || impl.TypeName != "Float" {
		t.Fatalf("expected ImplementDefinition Show Float, got %#v", bin.Right)
	}
}

func TestParseTypeExpressionStandalone(t *testing.T) {
	ty, err := ParseTypeExpression([]byte("List a -> a !log"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := ty.(*ast.FunctionType)
	if !ok {
		t.Fatalf("expected FunctionType, got %#v", ty)
	}
	if len(fn.Params) != 1 || len(fn.Effects) != 1 || fn.Effects[0] != "log" {
		t.Fatalf("expected one param and effect 'log', got %#v", fn)
	}
}

func TestParseTypeExpressionRejectsTrailingGarbage(t *testing.T) {
	if _, err := ParseTypeExpression([]byte("Float )")); err == nil {
		t.Fatal("expected a parse error due to unmatched trailing ')'")
	}
}
