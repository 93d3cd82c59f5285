package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/thrush-lang/thrush/internal/diagnostics"
	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

func TestFormatTypeErrorIncludesExpectedAndGot(t *testing.T) {
	prog, err := parser.Parse([]byte(`if True then 1 else "nope"`))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, _, typeErr := types.TypeProgram(prog)
	if typeErr == nil {
		t.Fatalf("expected a type error")
	}
	tce, ok := typeErr.(*types.TypeCheckError)
	if !ok {
		t.Fatalf("expected *types.TypeCheckError, got %T", typeErr)
	}

	out := diagnostics.FormatTypeError(tce)
	if !strings.Contains(out, "expected:") || !strings.Contains(out, "got:") {
		t.Fatalf("expected rendering to mention both sides of the mismatch, got:\n%s", out)
	}
}

func TestFormatDispatchesOnErrorType(t *testing.T) {
	_, err := parser.Parse([]byte("fn =>"))
	if err == nil {
		t.Fatalf("expected a parse error for malformed function syntax")
	}
	out := diagnostics.Format(err)
	if !strings.Contains(out, "parse error") {
		t.Fatalf("expected 'parse error' in formatted output, got:\n%s", out)
	}
}
