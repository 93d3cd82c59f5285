package types

import "github.com/thrush-lang/thrush/internal/ast"

// TypeProgram infers prog's type against a fresh builtin-seeded state,
// resolving any `implements` obligations gathered along the way.
// Returns the final type (fully applied) and the state used, so a
// caller can inspect st.Substitution / st.Env for further queries.
func TypeProgram(prog *ast.Program) (Type, *TypeState, error) {
	st := NewState()
	t, _, err := Infer(st, st.Env, prog.Root)
	if err != nil {
		return nil, st, err
	}
	if err := ResolvePending(st); err != nil {
		return nil, st, err
	}
	return st.Apply(t), st, nil
}

// TypeAndDecorate behaves like TypeProgram but also returns the
// Decorated overlay tree built alongside inference.
func TypeAndDecorate(prog *ast.Program) (Type, *Decorated, *TypeState, error) {
	st := NewState()
	t, dec, err := Infer(st, st.Env, prog.Root)
	if err != nil {
		return nil, nil, st, err
	}
	if err := ResolvePending(st); err != nil {
		return nil, nil, st, err
	}
	return st.Apply(t), decorateFinal(st, dec), st, nil
}

// decorateFinal rewrites every node's Type through st's final
// substitution, since a node decorated early in inference may have
// been typed with a variable that was only later resolved.
func decorateFinal(st *TypeState, d *Decorated) *Decorated {
	if d == nil {
		return nil
	}
	children := make([]*Decorated, len(d.Children))
	for i, c := range d.Children {
		children[i] = decorateFinal(st, c)
	}
	return &Decorated{Source: d.Source, Type: st.Apply(d.Type), Children: children}
}

// ResolvePending checks every `implements` obligation gathered while
// binding type variables against st.Impls, failing on the first type
// head with no matching `implement` block.
func ResolvePending(st *TypeState) error {
	for _, p := range st.Pending {
		if !st.Impls.Has(p.ConstraintName, p.TypeHead) {
			return &TypeCheckError{
				Kind: KindConstraintNotSatisfied, Operation: "implements resolution", Loc: p.Loc,
				Reason:   p.TypeHead + " has no `implement " + p.ConstraintName + "` block",
				Expected: p.ConstraintName, Got: p.TypeHead,
			}
		}
	}
	return nil
}
