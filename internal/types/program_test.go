package types_test

import (
	"testing"

	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

func typeOf(t *testing.T, src string) types.Type {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	ty, _, err := types.TypeProgram(prog)
	if err != nil {
		t.Fatalf("type error for %q: %v", src, err)
	}
	return ty
}

func TestArithmeticTypesToFloat(t *testing.T) {
	ty := typeOf(t, "1 + 2 * 3")
	if ty.String() != "Float" {
		t.Fatalf("got %s, want Float", ty)
	}
}

func TestMultiParamFunctionType(t *testing.T) {
	ty := typeOf(t, "fn x y => x + y")
	if ty.String() != "Float -> Float -> Float" {
		t.Fatalf("got %s", ty)
	}
}

func TestVariantApplicationTyping(t *testing.T) {
	src := `variant Box a = Full a | Empty;
		Full 5`
	ty := typeOf(t, src)
	if ty.String() != "Box Float" {
		t.Fatalf("got %s, want Box Float", ty)
	}
}

func TestComposeHeadPropagatesConstraint(t *testing.T) {
	ty := typeOf(t, "compose head id")
	fnType, ok := ty.(*types.TFunc)
	if !ok || len(fnType.Params) != 1 {
		t.Fatalf("expected a 1-param function, got %#v", ty)
	}
	list, ok := fnType.Params[0].(*types.TList)
	if !ok {
		t.Fatalf("expected a List parameter, got %#v", fnType.Params[0])
	}
	elem, ok := list.Element.(*types.TVar)
	if !ok {
		t.Fatalf("expected a type variable element, got %#v", list.Element)
	}
	found := false
	for _, c := range elem.Constraints {
		if c.String() == "is Number" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected head's 'is Number' constraint to survive composition, got %#v", elem.Constraints)
	}
}

func TestComposeHeadRejectsNonNumberList(t *testing.T) {
	prog, err := parser.Parse([]byte(`(compose head id) ["a", "b"]`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, _, typeErr := types.TypeProgram(prog)
	tce, ok := typeErr.(*types.TypeCheckError)
	if !ok {
		t.Fatalf("expected a *types.TypeCheckError, got %v (%T)", typeErr, typeErr)
	}
	if tce.Kind != types.KindConstraintViolated {
		t.Fatalf("expected KindConstraintViolated, got %s", tce.Kind)
	}
}

func TestRecordAccessorThrushTyping(t *testing.T) {
	ty := typeOf(t, `{@name "Alice", @age 30} | @name`)
	if ty.String() != "String" {
		t.Fatalf("got %s, want String", ty)
	}
}

func TestOptionMatchTyping(t *testing.T) {
	src := `match Some 5 with (
		None => 0;
		Some x => x
	)`
	ty := typeOf(t, src)
	if ty.String() != "Float" {
		t.Fatalf("got %s, want Float", ty)
	}
}

func TestIfBranchMismatchFails(t *testing.T) {
	prog, err := parser.Parse([]byte(`if True then 1 else "nope"`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, _, err := types.TypeProgram(prog); err == nil {
		t.Fatalf("expected a type error for mismatched if branches")
	}
}

func TestUndefinedVariableFails(t *testing.T) {
	prog, err := parser.Parse([]byte("undefinedThing"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, _, err := types.TypeProgram(prog); err == nil {
		t.Fatalf("expected an undefined-variable error")
	}
}

func TestWhereGeneralizesPureDefinitions(t *testing.T) {
	src := `{identity 1, identity "a"} where (
		identity = fn x => x
	)`
	// identity must be generalized so it can be applied to both a
	// Float and a String argument within the same where-block.
	ty := typeOf(t, src)
	if ty.String() != "{Float, String}" {
		t.Fatalf("got %s", ty)
	}
}
