package types_test

import (
	"strings"
	"testing"

	"github.com/thrush-lang/thrush/internal/parser"
	"github.com/thrush-lang/thrush/internal/types"
)

func TestDecoratedStringShowsEveryNode(t *testing.T) {
	prog, err := parser.Parse([]byte("fn x => x + 1"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, dec, _, err := types.TypeAndDecorate(prog)
	if err != nil {
		t.Fatalf("unexpected type error: %v", err)
	}
	out := dec.String()
	if !strings.Contains(out, "Function(x)") {
		t.Fatalf("expected the function node to be rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "Float -> Float") {
		t.Fatalf("expected the function's inferred type to be rendered, got:\n%s", out)
	}
}
