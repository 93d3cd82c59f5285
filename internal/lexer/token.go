package lexer

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// Kind is the tag of a Token, per spec §3.1.
type Kind int

const (
	NUMBER Kind = iota
	STRING
	IDENTIFIER
	KEYWORD
	OPERATOR
	PUNCTUATION
	ACCESSOR
	COMMENT // reserved; never emitted in the final stream
	EOF
)

var kindNames = map[Kind]string{
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	IDENTIFIER:  "IDENTIFIER",
	KEYWORD:     "KEYWORD",
	OPERATOR:    "OPERATOR",
	PUNCTUATION: "PUNCTUATION",
	ACCESSOR:    "ACCESSOR",
	COMMENT:     "COMMENT",
	EOF:         "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is immutable once produced by the lexer.
type Token struct {
	Kind  Kind
	Value string
	Loc   ast.Location
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%s, %q, %s}", t.Kind, t.Value, t.Loc)
}

// Keywords is the fixed keyword set from spec §4.1.4. Anything matching
// the identifier shape that is not in this set is an IDENTIFIER.
var Keywords = map[string]bool{
	"if": true, "then": true, "else": true,
	"let": true, "in": true,
	"fn": true, "import": true,
	"mut": true, "mut!": true,
	"where": true, "variant": true, "type": true,
	"match": true, "with": true, "given": true, "is": true,
	"has": true, "and": true, "or": true, "implements": true,
	"constraint": true, "implement": true,
	"Float": true, "Number": true, "String": true, "Unit": true,
	"List": true, "Unknown": true,
}

// IsKeyword reports whether ident is one of the fixed keywords.
func IsKeyword(ident string) bool {
	return Keywords[ident]
}
