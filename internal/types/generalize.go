package types

import "sort"

// Generalize closes t (after applying st's current substitution) over
// every free type variable not also free in the environment, with
// definitionName's own placeholder binding excluded first so a
// recursive definition does not see itself as an external constraint.
func Generalize(env *Env, st *TypeState, definitionName string, t Type) *Scheme {
	applied := st.Apply(t)
	envFree := env.freeTypeVars(definitionName)
	var quantified []string
	for name := range freeTypeVars(applied) {
		if !envFree[name] {
			quantified = append(quantified, name)
		}
	}
	sort.Strings(quantified)
	return &Scheme{Quantified: quantified, Type: applied}
}

// Instantiate replaces every quantified variable in s with a fresh
// type variable, copying across whatever constraints were attached to
// the scheme's own placeholder for that name.
func Instantiate(st *TypeState, s *Scheme) Type {
	if len(s.Quantified) == 0 {
		return s.Type
	}
	sub := make(Substitution, len(s.Quantified))
	constraintsByName := collectConstraintsByName(s.Type)
	for _, name := range s.Quantified {
		fresh := st.Fresh()
		fresh.Constraints = append([]Constraint(nil), constraintsByName[name]...)
		sub[name] = fresh
	}
	return Substitute(s.Type, sub)
}

// collectConstraintsByName walks t gathering the Constraints attached
// to each named type variable it finds, so Instantiate can carry them
// onto the fresh replacement.
func collectConstraintsByName(t Type) map[string][]Constraint {
	out := map[string][]Constraint{}
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case *TVar:
			if len(v.Constraints) > 0 {
				out[v.Name] = mergeConstraints(out[v.Name], v.Constraints)
			}
		case *TFunc:
			for _, p := range v.Params {
				walk(p)
			}
			walk(v.Return)
		case *TList:
			walk(v.Element)
		case *TTuple:
			for _, e := range v.Elements {
				walk(e)
			}
		case *TRecord:
			for _, f := range v.Fields {
				walk(f.Type)
			}
		case *TUnion:
			for _, a := range v.Alternatives {
				walk(a)
			}
		case *TVariant:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}
