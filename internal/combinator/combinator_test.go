package combinator

import (
	"testing"

	"github.com/thrush-lang/thrush/internal/lexer"
)

func TestTokSuccess(t *testing.T) {
	toks := lexer.Tokenize([]byte("let"))
	r := Tok(lexer.KEYWORD, "let")(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if len(r.Remaining) != 1 || r.Remaining[0].Kind != lexer.EOF {
		t.Fatalf("expected only EOF remaining, got %v", r.Remaining)
	}
}

func TestTokEOFFails(t *testing.T) {
	toks := lexer.Tokenize([]byte(""))
	r := Tok(lexer.IDENTIFIER, "")(toks)
	if r.Err == nil {
		t.Fatal("expected failure at end of input")
	}
}

func TestSeq(t *testing.T) {
	toks := lexer.Tokenize([]byte("let x"))
	p := Seq(Keyword("let"), Identifier())
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	values := r.Value.([]any)
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
}

func TestChoiceFurthestError(t *testing.T) {
	toks := lexer.Tokenize([]byte("123"))
	p := Choice(Keyword("let"), Identifier())
	r := p(toks)
	if r.Err == nil {
		t.Fatal("expected failure")
	}
}

func TestChoicePicksFirstSuccess(t *testing.T) {
	toks := lexer.Tokenize([]byte("x"))
	p := Choice(Keyword("let"), Identifier())
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
}

func TestMany(t *testing.T) {
	toks := lexer.Tokenize([]byte("1 2 3"))
	p := Many(Number())
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	values := r.Value.([]any)
	if len(values) != 3 {
		t.Fatalf("expected 3 numbers, got %d", len(values))
	}
}

func TestMany1RequiresOne(t *testing.T) {
	toks := lexer.Tokenize([]byte("x"))
	r := Many1(Number())(toks)
	if r.Err == nil {
		t.Fatal("expected failure: no numbers present")
	}
}

func TestOptionalNeverFails(t *testing.T) {
	toks := lexer.Tokenize([]byte("x"))
	r := Optional(Number())(toks)
	if r.Err != nil {
		t.Fatalf("Optional must never fail, got %v", r.Err)
	}
	ov := r.Value.(OptionalValue)
	if ov.Present {
		t.Fatal("expected Present=false")
	}
}

func TestMap(t *testing.T) {
	toks := lexer.Tokenize([]byte("42"))
	p := Map(Number(), func(v any) any {
		return v.(lexer.Token).Value + "!"
	})
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Value.(string) != "42!" {
		t.Fatalf("expected transformed value, got %v", r.Value)
	}
}

func TestSepByCollectsAndStopsCleanly(t *testing.T) {
	toks := lexer.Tokenize([]byte("1, 2, 3,"))
	p := SepBy(Number(), Punctuation(","))
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	values := r.Value.([]any)
	if len(values) != 3 {
		t.Fatalf("expected 3 elements despite trailing comma, got %d", len(values))
	}
}

func TestSepByEmpty(t *testing.T) {
	toks := lexer.Tokenize([]byte("x"))
	p := SepBy(Number(), Punctuation(","))
	r := p(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	values := r.Value.([]any)
	if len(values) != 0 {
		t.Fatalf("expected 0 elements, got %d", len(values))
	}
}

func TestParseAllRejectsTrailingTokens(t *testing.T) {
	toks := lexer.Tokenize([]byte("1 2"))
	r := ParseAll(Number())(toks)
	if r.Err == nil {
		t.Fatal("expected failure: trailing token not consumed")
	}
}

func TestParseAllAcceptsExactConsumption(t *testing.T) {
	toks := lexer.Tokenize([]byte("1"))
	r := ParseAll(Number())(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
}

func TestLazyRecursion(t *testing.T) {
	var expr Parser
	expr = Lazy(func() Parser {
		return Choice(Number(), Seq(Punctuation("("), expr, Punctuation(")")))
	})
	toks := lexer.Tokenize([]byte("((1))"))
	r := expr(toks)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
}
