package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// unify structurally unifies a and b under the current substitution
// s, returning the extended substitution. It implements the dispatch
// table: equal-structurally is a no-op; a variable on either side
// binds (with occurs check, merging constraints onto the target);
// functions/lists/tuples/records/unions/variants/primitives/unit
// recurse per their shape. st carries the ADT registry and pending
// constraint bookkeeping needed while merging constraints on bind.
func unify(st *TypeState, a, b Type, s Substitution, loc ast.Location, operation string) (Substitution, error) {
	a = Substitute(a, s)
	b = Substitute(b, s)

	if structurallyEqual(a, b) {
		return s, nil
	}

	if va, ok := a.(*TVar); ok {
		return bind(st, va, b, s, loc, operation)
	}
	if vb, ok := b.(*TVar); ok {
		return bind(st, vb, a, s, loc, operation)
	}

	switch ta := a.(type) {
	case *TFunc:
		tb, ok := b.(*TFunc)
		if !ok {
			return nil, mismatchError(operation, a, b, loc, "function expected")
		}
		if len(ta.Params) != len(tb.Params) {
			return nil, &TypeCheckError{Kind: KindArityMismatch, Operation: operation, Loc: loc,
				Reason: "function arities differ", Expected: a.String(), Got: b.String()}
		}
		cur := s
		var err error
		for i := range ta.Params {
			cur, err = unify(st, ta.Params[i], tb.Params[i], cur, loc, operation)
			if err != nil {
				return nil, err
			}
		}
		cur, err = unify(st, ta.Return, tb.Return, cur, loc, operation)
		if err != nil {
			return nil, err
		}
		if !EffectsEqual(ta.Effects, tb.Effects) {
			return nil, &TypeCheckError{Kind: KindMismatch, Operation: operation, Loc: loc,
				Reason: "effect sets differ", Expected: a.String(), Got: b.String()}
		}
		return cur, nil

	case *TList:
		tb, ok := b.(*TList)
		if !ok {
			return nil, mismatchError(operation, a, b, loc, "list expected")
		}
		return unify(st, ta.Element, tb.Element, s, loc, operation)

	case *TTuple:
		tb, ok := b.(*TTuple)
		if !ok || len(ta.Elements) != len(tb.Elements) {
			return nil, mismatchError(operation, a, b, loc, "tuple shape mismatch")
		}
		cur := s
		var err error
		for i := range ta.Elements {
			cur, err = unify(st, ta.Elements[i], tb.Elements[i], cur, loc, operation)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *TRecord:
		tb, ok := b.(*TRecord)
		if !ok {
			return nil, mismatchError(operation, a, b, loc, "record expected")
		}
		cur := s
		var err error
		for _, fa := range ta.Fields {
			fbType, found := tb.field(fa.Name)
			if !found {
				return nil, mismatchError(operation, a, b, loc, "missing field "+fa.Name)
			}
			cur, err = unify(st, fa.Type, fbType, cur, loc, operation)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *TUnion:
		tb, ok := b.(*TUnion)
		if !ok || len(ta.Alternatives) != len(tb.Alternatives) {
			return nil, mismatchError(operation, a, b, loc, "union shape mismatch")
		}
		cur := s
		var err error
		for i := range ta.Alternatives {
			cur, err = unify(st, ta.Alternatives[i], tb.Alternatives[i], cur, loc, operation)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *TVariant:
		tb, ok := b.(*TVariant)
		if !ok || ta.Name != tb.Name || len(ta.Args) != len(tb.Args) {
			return nil, mismatchError(operation, a, b, loc, "variant head or arity mismatch")
		}
		cur := s
		var err error
		for i := range ta.Args {
			cur, err = unify(st, ta.Args[i], tb.Args[i], cur, loc, operation)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case *TPrim:
		tb, ok := b.(*TPrim)
		if !ok || ta.Name != tb.Name {
			return nil, mismatchError(operation, a, b, loc, "primitive mismatch")
		}
		return s, nil

	case *TUnit:
		if _, ok := b.(*TUnit); !ok {
			return nil, mismatchError(operation, a, b, loc, "unit expected")
		}
		return s, nil
	}

	return nil, mismatchError(operation, a, b, loc, "incompatible type shapes")
}

// bind binds variable v to t, checking occurs and merging v's
// accumulated constraints onto t (or onto t's own variable, if t is
// itself a variable).
func bind(st *TypeState, v *TVar, t Type, s Substitution, loc ast.Location, operation string) (Substitution, error) {
	if occursIn(v.Name, t) {
		return nil, &TypeCheckError{
			Kind: KindOccursCheck, Operation: operation, Loc: loc,
			Reason:   "type variable " + v.Name + " occurs in " + t.String(),
			Expected: v.Name, Got: t.String(),
		}
	}
	out := make(Substitution, len(s)+1)
	for k, val := range s {
		out[k] = val
	}

	out, err := mergeConstraintsOnBind(st, v.Constraints, t, out, loc, operation)
	if err != nil {
		return nil, err
	}

	if tv, ok := t.(*TVar); ok {
		tv.Constraints = mergeConstraints(tv.Constraints, v.Constraints)
	} else {
		propagateConstraints(v.Constraints, t)
	}

	out[v.Name] = t
	return out, nil
}

// mergeConstraintsOnBind checks v's accumulated constraints against
// the concrete type t it is being bound to: hasField/hasStructure
// unify the named shape into t (extending s further), is checks the
// built-in predicate, and implements is recorded as pending for later
// resolution rather than enforced here.
func mergeConstraintsOnBind(st *TypeState, constraints []Constraint, t Type, s Substitution, loc ast.Location, operation string) (Substitution, error) {
	cur := s
	for _, c := range constraints {
		switch cc := c.(type) {
		case *HasFieldConstraint:
			rec, ok := Substitute(t, cur).(*TRecord)
			if !ok {
				return nil, &TypeCheckError{Kind: KindConstraintViolated, Operation: operation, Loc: loc,
					Reason: fmt.Sprintf("expected a record with field %q, got %s", cc.Field, t.String())}
			}
			fieldType, found := rec.field(cc.Field)
			if !found {
				return nil, &TypeCheckError{Kind: KindConstraintViolated, Operation: operation, Loc: loc,
					Reason: fmt.Sprintf("record %s has no field %q", t.String(), cc.Field)}
			}
			var err error
			cur, err = unify(st, fieldType, cc.Type, cur, loc, operation)
			if err != nil {
				return nil, err
			}

		case *HasStructureConstraint:
			rec, ok := Substitute(t, cur).(*TRecord)
			if !ok {
				return nil, &TypeCheckError{Kind: KindConstraintViolated, Operation: operation, Loc: loc,
					Reason: "expected a record matching " + cc.Structure.String() + ", got " + t.String()}
			}
			for _, f := range cc.Structure.Fields {
				fieldType, found := rec.field(f.Name)
				if !found {
					return nil, &TypeCheckError{Kind: KindConstraintViolated, Operation: operation, Loc: loc,
						Reason: fmt.Sprintf("record %s has no field %q", t.String(), f.Name)}
				}
				var err error
				cur, err = unify(st, fieldType, f.Type, cur, loc, operation)
				if err != nil {
					return nil, err
				}
			}

		case *IsConstraint:
			if !satisfiesPredicate(cc.Name, Substitute(t, cur)) {
				return nil, &TypeCheckError{Kind: KindConstraintViolated, Operation: operation, Loc: loc,
					Reason: fmt.Sprintf("%s does not satisfy %s", t.String(), cc.Name),
					Expected: cc.Name, Got: t.String()}
			}

		case *ImplementsConstraint:
			st.Pending = append(st.Pending, PendingImplement{
				ConstraintName: cc.Name, TypeHead: typeHead(Substitute(t, cur)), Loc: loc,
			})
		}
	}
	return cur, nil
}

// propagateConstraints pushes constraints onto every type variable
// reachable from t, mutating each variable's Constraints field in
// place. Used when v binds to a compound type built from other, still
// free, variables: a constraint on v survives onto them.
func propagateConstraints(constraints []Constraint, t Type) {
	if len(constraints) == 0 {
		return
	}
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case *TVar:
			v.Constraints = mergeConstraints(v.Constraints, constraints)
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
}
