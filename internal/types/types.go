// Package types implements the Hindley-Milner type engine: semantic
// types, unification, generalization, and per-expression-kind
// inference rules, producing a decorated overlay tree for an external
// evaluator to consume.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the semantic type algebra produced by inference. It is
// distinct from ast.Type, which is the parser's syntactic rendering
// of a TypeExpr; FromASTType bridges the two.
type Type interface {
	String() string
	typeTag()
}

// TVar is a type variable. Name is a fresh greek-prefixed display
// name and is what equality, substitution and the occurs check
// compare; ID records the counter value it was created from.
// Constraints accumulate as inference attaches
// predicates to this variable before it is ever bound.
type TVar struct {
	Name        string
	ID          int
	Constraints []Constraint
}

func (t *TVar) String() string { return t.Name }
func (t *TVar) typeTag()       {}

// TPrim is a primitive: Float or String. Number resolves to Float,
// Unit is TUnit, Unknown is a fresh TVar, and Bool is a TVariant.
type TPrim struct {
	Name string
}

func (t *TPrim) String() string { return t.Name }
func (t *TPrim) typeTag()       {}

// TFunc is a (possibly multi-parameter, uncurried-for-display)
// function type with an order-insensitive effect set.
type TFunc struct {
	Params  []Type
	Return  Type
	Effects []string
}

func (t *TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	s := strings.Join(params, " -> ")
	if s != "" {
		s += " -> "
	}
	s += t.Return.String()
	if len(t.Effects) > 0 {
		eff := make([]string, len(t.Effects))
		copy(eff, t.Effects)
		sort.Strings(eff)
		for _, e := range eff {
			s += " !" + e
		}
	}
	return s
}
func (t *TFunc) typeTag() {}

// EffectsEqual reports order-insensitive equality of two effect sets.
func EffectsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// FixedEffects is the closed set of valid effect tags.
var FixedEffects = map[string]bool{
	"log": true, "read": true, "write": true, "state": true,
	"time": true, "rand": true, "ffi": true, "async": true,
}

type TList struct {
	Element Type
}

func (t *TList) String() string { return fmt.Sprintf("List %s", t.Element) }
func (t *TList) typeTag()       {}

type TTuple struct {
	Elements []Type
}

func (t *TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (t *TTuple) typeTag() {}

type TRecordField struct {
	Name string
	Type Type
}

type TRecord struct {
	Fields []TRecordField
}

func (t *TRecord) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = fmt.Sprintf("@%s %s", f.Name, f.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (t *TRecord) typeTag() {}

func (t *TRecord) field(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

type TUnion struct {
	Alternatives []Type
}

func (t *TUnion) String() string {
	parts := make([]string, len(t.Alternatives))
	for i, a := range t.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}
func (t *TUnion) typeTag() {}

// TVariant is a type headed by a user-declared ADT name with its
// type-argument sequence.
type TVariant struct {
	Name string
	Args []Type
}

func (t *TVariant) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + " " + strings.Join(parts, " ")
}
func (t *TVariant) typeTag() {}

type TUnit struct{}

func (t *TUnit) String() string { return "Unit" }
func (t *TUnit) typeTag()       {}

// Scheme is a polymorphic type: a set of quantified variable names
// (by display name) closing over a monotype.
type Scheme struct {
	Quantified []string
	Type       Type
}

func (s *Scheme) String() string {
	if len(s.Quantified) == 0 {
		return s.Type.String()
	}
	return "forall " + strings.Join(s.Quantified, " ") + ". " + s.Type.String()
}

// Mono wraps a monotype with no quantified variables.
func Mono(t Type) *Scheme { return &Scheme{Type: t} }
