package thrush_test

import (
	"testing"

	thrush "github.com/thrush-lang/thrush"
)

func TestTokenizeReturnsTokens(t *testing.T) {
	toks := thrush.Tokenize([]byte("1 + 2"))
	if len(toks) == 0 {
		t.Fatalf("expected a non-empty token stream")
	}
}

func TestParseAndTypeProgram(t *testing.T) {
	prog, err := thrush.Parse([]byte("1 + 2"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	ty, _, err := thrush.TypeProgram(prog)
	if err != nil {
		t.Fatalf("unexpected type error: %v", err)
	}
	if ty.String() != "Float" {
		t.Fatalf("got %s, want Float", ty)
	}
}

func TestTypeAndDecorateReturnsOverlay(t *testing.T) {
	prog, err := thrush.Parse([]byte("fn x => x + 1"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	ty, dec, _, err := thrush.TypeAndDecorate(prog)
	if err != nil {
		t.Fatalf("unexpected type error: %v", err)
	}
	if ty.String() != "Float -> Float" {
		t.Fatalf("got %s, want Float -> Float", ty)
	}
	if dec == nil {
		t.Fatalf("expected a non-nil decorated overlay")
	}
}

func TestParseTypeExpressionFacade(t *testing.T) {
	if _, err := thrush.ParseTypeExpression([]byte("List a -> a !log")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
