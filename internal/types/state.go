package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

var greekLetters = []string{
	"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
	"ν", "ξ", "ο", "π", "ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω",
}

// PendingImplement records an `implements` constraint bound to a
// concrete type head, awaiting resolution against an
// ImplementationRegistry once inference finishes.
type PendingImplement struct {
	ConstraintName string
	TypeHead       string
	Loc            ast.Location
}

// TypeState is the thread-through-the-pipeline inference state.
type TypeState struct {
	Env          *Env
	Substitution Substitution
	counter      int
	ADTs         *ADTRegistry
	Aliases      map[string]*TypeAlias
	Impls        *ImplementationRegistry
	Pending      []PendingImplement
}

// NewState builds a fresh TypeState seeded with the built-in
// environment and ADT registry (see builtins.go).
func NewState() *TypeState {
	st := &TypeState{
		Env:          NewEnv(),
		Substitution: Substitution{},
		ADTs:         NewADTRegistry(),
		Aliases:      map[string]*TypeAlias{},
		Impls:        NewImplementationRegistry(),
	}
	InstallBuiltins(st)
	installManifestEffects(st)
	return st
}

// Fresh allocates a new type variable with a unique greek-prefixed
// display name; the identity is the monotonic counter value.
func (st *TypeState) Fresh() *TVar {
	id := st.counter
	st.counter++
	letter := greekLetters[id%len(greekLetters)]
	suffix := id / len(greekLetters)
	name := letter
	if suffix > 0 {
		name = fmt.Sprintf("%s%d", letter, suffix)
	}
	return &TVar{Name: name, ID: id}
}

// Unify unifies a and b under st's current substitution, updating it
// in place on success.
func (st *TypeState) Unify(a, b Type, loc ast.Location, operation string) error {
	s, err := unify(st, a, b, st.Substitution, loc, operation)
	if err != nil {
		return err
	}
	st.Substitution = s
	return nil
}

// Apply substitutes t under st's current substitution.
func (st *TypeState) Apply(t Type) Type {
	return Substitute(t, st.Substitution)
}
