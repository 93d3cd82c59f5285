package lexer

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeEndsInEOF(t *testing.T) {
	toks := Tokenize([]byte("let x = 1"))
	if len(toks) == 0 {
		t.Fatal("expected non-empty token stream")
	}
	last := toks[len(toks)-1]
	if last.Kind != EOF {
		t.Fatalf("expected final token EOF, got %v", last.Kind)
	}
	for _, tok := range toks[:len(toks)-1] {
		if tok.Kind == EOF {
			t.Fatal("EOF must appear exactly once, at the end")
		}
	}
}

func TestEmptyInput(t *testing.T) {
	toks := Tokenize([]byte(""))
	if len(toks) != 1 || toks[0].Kind != EOF {
		t.Fatalf("expected a single EOF token for empty input, got %v", toks)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := Tokenize([]byte(`"abc`))
	if toks[0].Kind != STRING || toks[0].Value != "abc" {
		t.Fatalf("expected STRING(abc), got %v", toks[0])
	}
}

func TestStringEscapeIsVerbatim(t *testing.T) {
	toks := Tokenize([]byte(`"a\nb"`))
	if toks[0].Kind != STRING || toks[0].Value != "anb" {
		t.Fatalf("expected backslash-escape to copy next char verbatim, got %q", toks[0].Value)
	}
}

func TestNumberTrailingDot(t *testing.T) {
	toks := Tokenize([]byte("123."))
	if toks[0].Kind != NUMBER || toks[0].Value != "123" {
		t.Fatalf("expected NUMBER(123), got %v", toks[0])
	}
	if toks[1].Kind != PUNCTUATION || toks[1].Value != "." {
		t.Fatalf("expected PUNCTUATION(.), got %v", toks[1])
	}
}

func TestNumberWithFraction(t *testing.T) {
	toks := Tokenize([]byte("123.456"))
	if toks[0].Kind != NUMBER || toks[0].Value != "123.456" {
		t.Fatalf("expected single NUMBER(123.456), got %v", toks[0])
	}
}

func TestMutBang(t *testing.T) {
	toks := Tokenize([]byte("mut! x = 1"))
	if toks[0].Kind != KEYWORD || toks[0].Value != "mut!" {
		t.Fatalf("expected KEYWORD(mut!), got %v", toks[0])
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := Tokenize([]byte("let letter"))
	if toks[0].Kind != KEYWORD || toks[0].Value != "let" {
		t.Fatalf("expected KEYWORD(let), got %v", toks[0])
	}
	if toks[1].Kind != IDENTIFIER || toks[1].Value != "letter" {
		t.Fatalf("expected IDENTIFIER(letter), got %v", toks[1])
	}
}

func TestBareUnderscoreIsPunctuation(t *testing.T) {
	toks := Tokenize([]byte("_"))
	if toks[0].Kind != PUNCTUATION || toks[0].Value != "_" {
		t.Fatalf("expected PUNCTUATION(_), got %v", toks[0])
	}
}

func TestUnderscorePrefixedIdentifier(t *testing.T) {
	toks := Tokenize([]byte("_foo"))
	if toks[0].Kind != IDENTIFIER || toks[0].Value != "_foo" {
		t.Fatalf("expected IDENTIFIER(_foo), got %v", toks[0])
	}
}

func TestAccessorBasic(t *testing.T) {
	toks := Tokenize([]byte("@name"))
	if toks[0].Kind != ACCESSOR || toks[0].Value != "name" {
		t.Fatalf("expected ACCESSOR(name), got %v", toks[0])
	}
}

func TestAccessorOptional(t *testing.T) {
	toks := Tokenize([]byte("@name?"))
	if toks[0].Kind != ACCESSOR || toks[0].Value != "name?" {
		t.Fatalf("expected ACCESSOR(name?), got %v", toks[0])
	}
}

func TestBareAccessor(t *testing.T) {
	toks := Tokenize([]byte("@"))
	if toks[0].Kind != ACCESSOR || toks[0].Value != "" {
		t.Fatalf("expected empty ACCESSOR, got %v", toks[0])
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	cases := map[string]string{
		"|?": "|?", "|>": "|>", "<|": "<|", "==": "==", "!=": "!=",
		"<=": "<=", ">=": ">=", "=>": "=>", "->": "->",
	}
	for src, want := range cases {
		toks := Tokenize([]byte(src))
		if toks[0].Kind != OPERATOR || toks[0].Value != want {
			t.Fatalf("src %q: expected OPERATOR(%s), got %v", src, want, toks[0])
		}
	}
}

func TestOperatorSingleCharFallback(t *testing.T) {
	toks := Tokenize([]byte("+ - * % / < > = | $"))
	want := []string{"+", "-", "*", "%", "/", "<", ">", "=", "|", "$"}
	for i, w := range want {
		if toks[i].Kind != OPERATOR || toks[i].Value != w {
			t.Fatalf("index %d: expected OPERATOR(%s), got %v", i, w, toks[i])
		}
	}
}

func TestPunctuation(t *testing.T) {
	toks := Tokenize([]byte("( ) , ; : [ ] { }"))
	want := []string{"(", ")", ",", ";", ":", "[", "]", "{", "}"}
	for i, w := range want {
		if toks[i].Kind != PUNCTUATION || toks[i].Value != w {
			t.Fatalf("index %d: expected PUNCTUATION(%s), got %v", i, w, toks[i])
		}
	}
}

func TestCommentSkipped(t *testing.T) {
	toks := Tokenize([]byte("1 # trailing comment\n2"))
	if kinds(toks)[0] != NUMBER || toks[0].Value != "1" {
		t.Fatalf("expected NUMBER(1), got %v", toks[0])
	}
	if toks[1].Kind != NUMBER || toks[1].Value != "2" {
		t.Fatalf("expected comment skipped straight to NUMBER(2), got %v", toks[1])
	}
}

func TestUnicodeNBSPSkipped(t *testing.T) {
	toks := Tokenize([]byte("1 2"))
	if toks[0].Kind != NUMBER || toks[0].Value != "1" {
		t.Fatalf("expected NUMBER(1), got %v", toks[0])
	}
	if toks[1].Kind != NUMBER || toks[1].Value != "2" {
		t.Fatalf("expected NBSP to be treated as whitespace, got %v", toks[1])
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := Tokenize([]byte("a\nb"))
	if toks[0].Loc.Start.Line != 1 || toks[0].Loc.Start.Col != 1 {
		t.Fatalf("expected first token at 1:1, got %v", toks[0].Loc.Start)
	}
	if toks[1].Loc.Start.Line != 2 || toks[1].Loc.Start.Col != 1 {
		t.Fatalf("expected second token at 2:1, got %v", toks[1].Loc.Start)
	}
}

func TestUnknownCharacterDegradesToPunctuation(t *testing.T) {
	toks := Tokenize([]byte("~"))
	if toks[0].Kind != PUNCTUATION || toks[0].Value != "~" {
		t.Fatalf("expected best-effort PUNCTUATION(~), got %v", toks[0])
	}
}
