// Package combinator is a small parser-combinator library: a Parser is
// a total function from a token slice to a Result. Grammars (see
// internal/parser) are built by composing the primitives here rather
// than by hand-writing a descent for every production.
package combinator

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/lexer"
)

// ParseError carries a message and the line it occurred on, used by
// Choice to pick the "furthest-reaching" failure among alternatives.
type ParseError struct {
	Message  string
	Position int // line number
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Position, e.Message)
}

// Result is the outcome of running a Parser: either a Value and the
// unconsumed Remaining tokens, or a non-nil Err.
type Result struct {
	Value     any
	Remaining []lexer.Token
	Err       *ParseError
}

func (r Result) ok() bool { return r.Err == nil }

func success(value any, remaining []lexer.Token) Result {
	return Result{Value: value, Remaining: remaining}
}

func failure(message string, position int) Result {
	return Result{Err: &ParseError{Message: message, Position: position}}
}

// Parser is a total function from a token slice to a Result.
type Parser func([]lexer.Token) Result

func errPos(toks []lexer.Token) int {
	if len(toks) == 0 {
		return 0
	}
	return toks[0].Loc.Start.Line
}

// Tok consumes exactly one token matching kind and, if value is
// non-empty, also matching that value. EOF fails with "end of input".
func Tok(kind lexer.Kind, value string) Parser {
	return func(toks []lexer.Token) Result {
		if len(toks) == 0 {
			return failure("end of input", 0)
		}
		t := toks[0]
		if t.Kind == lexer.EOF {
			return failure("end of input", errPos(toks))
		}
		if t.Kind != kind {
			return failure(fmt.Sprintf("expected %s, got %s %q", kind, t.Kind, t.Value), errPos(toks))
		}
		if value != "" && t.Value != value {
			return failure(fmt.Sprintf("expected %s %q, got %q", kind, value, t.Value), errPos(toks))
		}
		return success(t, toks[1:])
	}
}

// Seq runs parsers in order; the first failure propagates. On success
// it returns a []any of each stage's value.
func Seq(parsers ...Parser) Parser {
	return func(toks []lexer.Token) Result {
		values := make([]any, 0, len(parsers))
		remaining := toks
		for _, p := range parsers {
			r := p(remaining)
			if !r.ok() {
				return r
			}
			values = append(values, r.Value)
			remaining = r.Remaining
		}
		return success(values, remaining)
	}
}

// Choice tries parsers left-to-right, succeeding on the first success.
// On total failure it returns the error of whichever alternative
// advanced furthest (by line number), the most informative failure.
func Choice(parsers ...Parser) Parser {
	return func(toks []lexer.Token) Result {
		var furthest *ParseError
		for _, p := range parsers {
			r := p(toks)
			if r.ok() {
				return r
			}
			if furthest == nil || r.Err.Position >= furthest.Position {
				furthest = r.Err
			}
		}
		if furthest == nil {
			furthest = &ParseError{Message: "no alternative matched", Position: errPos(toks)}
		}
		return Result{Err: furthest}
	}
}

// Many applies p zero or more times; always succeeds.
func Many(p Parser) Parser {
	return func(toks []lexer.Token) Result {
		var values []any
		remaining := toks
		for {
			r := p(remaining)
			if !r.ok() {
				break
			}
			values = append(values, r.Value)
			if len(r.Remaining) == len(remaining) {
				// no progress: avoid an infinite loop on an always-succeeding p
				break
			}
			remaining = r.Remaining
		}
		return success(values, remaining)
	}
}

// Many1 requires at least one successful application of p.
func Many1(p Parser) Parser {
	return func(toks []lexer.Token) Result {
		r := Many(p)(toks)
		values := r.Value.([]any)
		if len(values) == 0 {
			return failure("expected at least one match", errPos(toks))
		}
		return r
	}
}

// Optional never fails: it yields (value, true) on success of p or
// (nil, false) otherwise, consuming nothing on failure.
type OptionalValue struct {
	Value   any
	Present bool
}

func Optional(p Parser) Parser {
	return func(toks []lexer.Token) Result {
		r := p(toks)
		if r.ok() {
			return success(OptionalValue{Value: r.Value, Present: true}, r.Remaining)
		}
		return success(OptionalValue{Present: false}, toks)
	}
}

// Map transforms a successful parse's value with f.
func Map(p Parser, f func(any) any) Parser {
	return func(toks []lexer.Token) Result {
		r := p(toks)
		if !r.ok() {
			return r
		}
		return success(f(r.Value), r.Remaining)
	}
}

// Lazy defers construction of p until first use, allowing recursive
// grammars to refer to a parser defined in terms of themselves.
func Lazy(build func() Parser) Parser {
	var cached Parser
	return func(toks []lexer.Token) Result {
		if cached == nil {
			cached = build()
		}
		return cached(toks)
	}
}

// SepBy parses zero or more occurrences of p separated by sep. It
// stops cleanly before a trailing separator or an invalid element,
// returning what it has collected so far rather than failing.
func SepBy(p Parser, sep Parser) Parser {
	return func(toks []lexer.Token) Result {
		var values []any
		remaining := toks
		first := p(remaining)
		if !first.ok() {
			return success(values, toks)
		}
		values = append(values, first.Value)
		remaining = first.Remaining
		for {
			sr := sep(remaining)
			if !sr.ok() {
				break
			}
			er := p(sr.Remaining)
			if !er.ok() {
				break
			}
			values = append(values, er.Value)
			remaining = er.Remaining
		}
		return success(values, remaining)
	}
}

// ParseAll succeeds only if p consumes every token before EOF (the EOF
// token itself may be left over); otherwise it reports the first
// unconsumed token.
func ParseAll(p Parser) Parser {
	return func(toks []lexer.Token) Result {
		r := p(toks)
		if !r.ok() {
			return r
		}
		if len(r.Remaining) == 0 {
			return r
		}
		if len(r.Remaining) == 1 && r.Remaining[0].Kind == lexer.EOF {
			return r
		}
		return failure(fmt.Sprintf("unexpected %s %q at end of input", r.Remaining[0].Kind, r.Remaining[0].Value), errPos(r.Remaining))
	}
}

// ---- convenience parsers ------------------------------------------------

func Identifier() Parser       { return Tok(lexer.IDENTIFIER, "") }
func Number() Parser           { return Tok(lexer.NUMBER, "") }
func String() Parser           { return Tok(lexer.STRING, "") }
func Keyword(v string) Parser  { return Tok(lexer.KEYWORD, v) }
func Operator(v string) Parser { return Tok(lexer.OPERATOR, v) }
func Punctuation(v string) Parser { return Tok(lexer.PUNCTUATION, v) }
func Accessor() Parser         { return Tok(lexer.ACCESSOR, "") }
