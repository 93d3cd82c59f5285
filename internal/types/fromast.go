package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// FromASTType converts a parser-produced syntactic type expression
// into the semantic type algebra this engine unifies over. Lowercase
// identifiers become fresh named type variables shared by name within
// a single conversion (so `a -> a` round-trips to the same *TVar);
// uppercase heads with no declared ADT become an opaque TVariant,
// resolved against the ADT registry at the point a constructor or
// match arm actually uses it.
func FromASTType(t ast.Type) (Type, error) {
	vars := map[string]*TVar{}
	return fromASTType(t, vars)
}

func fromASTType(t ast.Type, vars map[string]*TVar) (Type, error) {
	switch v := t.(type) {
	case *ast.PrimitiveType:
		switch v.Name {
		case "Unit":
			return &TUnit{}, nil
		case "Number":
			return floatT, nil
		case "Unknown":
			// each occurrence is its own hole, unrelated to any other
			// Unknown in the same annotation or to named type variables.
			name := fmt.Sprintf("?unknown%d", len(vars))
			hole := &TVar{Name: name}
			vars[name] = hole
			return hole, nil
		default:
			return prim(v.Name), nil
		}

	case *ast.TypeVariable:
		if existing, ok := vars[v.Name]; ok {
			return existing, nil
		}
		fresh := &TVar{Name: v.Name}
		vars[v.Name] = fresh
		return fresh, nil

	case *ast.FunctionType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			pt, err := fromASTType(p, vars)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := fromASTType(v.Return, vars)
		if err != nil {
			return nil, err
		}
		for _, e := range v.Effects {
			if !FixedEffects[e] {
				return nil, &TypeCheckError{
					Kind: KindInvalidEffect, Operation: "type conversion", Loc: v.Loc,
					Reason: fmt.Sprintf("unknown effect tag %q", e),
				}
			}
		}
		return &TFunc{Params: params, Return: ret, Effects: v.Effects}, nil

	case *ast.ListTypeExpr:
		el, err := fromASTType(v.Element, vars)
		if err != nil {
			return nil, err
		}
		return &TList{Element: el}, nil

	case *ast.TupleTypeExpr:
		elems := make([]Type, len(v.Elements))
		for i, e := range v.Elements {
			et, err := fromASTType(e, vars)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return &TTuple{Elements: elems}, nil

	case *ast.RecordTypeExpr:
		fields := make([]TRecordField, len(v.Fields))
		for i, f := range v.Fields {
			ft, err := fromASTType(f.Type, vars)
			if err != nil {
				return nil, err
			}
			fields[i] = TRecordField{Name: f.Name, Type: ft}
		}
		return &TRecord{Fields: fields}, nil

	case *ast.UnionTypeExpr:
		alts := make([]Type, len(v.Alternatives))
		for i, a := range v.Alternatives {
			at, err := fromASTType(a, vars)
			if err != nil {
				return nil, err
			}
			alts[i] = at
		}
		return &TUnion{Alternatives: alts}, nil

	case *ast.VariantTypeExpr:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			at, err := fromASTType(a, vars)
			if err != nil {
				return nil, err
			}
			args[i] = at
		}
		return &TVariant{Name: v.Name, Args: args}, nil

	case *ast.UnitTypeExpr:
		return &TUnit{}, nil
	}

	return nil, fmt.Errorf("unknown type expression %T", t)
}

// FromASTConstraint converts a syntactic constraint expression into a
// flat slice of semantic constraints keyed by the type-variable name
// they apply to, discarding the and/or tree shape: a solved
// constraint set only needs "which predicates apply to this variable",
// not how the source grouped them (every constraint is a requirement
// that must hold, `or` included, since this engine does not support
// genuine constraint alternation — an Open Question resolved in favor
// of treating `or` the same as `and` when attaching to a variable).
func FromASTConstraint(c ast.ConstraintExpr) (map[string][]Constraint, error) {
	out := map[string][]Constraint{}
	if err := flattenConstraint(c, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenConstraint(c ast.ConstraintExpr, out map[string][]Constraint) error {
	switch v := c.(type) {
	case *ast.IsConstraintExpr:
		out[v.Var] = append(out[v.Var], &IsConstraint{Name: v.Name})
		return nil
	case *ast.HasFieldConstraintExpr:
		ft, err := fromASTType(v.FieldType, map[string]*TVar{})
		if err != nil {
			return err
		}
		out[v.Var] = append(out[v.Var], &HasFieldConstraint{Field: v.Field, Type: ft})
		return nil
	case *ast.HasStructureConstraintExpr:
		structT, err := fromASTType(v.Structure, map[string]*TVar{})
		if err != nil {
			return err
		}
		rec, ok := structT.(*TRecord)
		if !ok {
			return fmt.Errorf("has-structure constraint did not convert to a record")
		}
		out[v.Var] = append(out[v.Var], &HasStructureConstraint{Structure: rec})
		return nil
	case *ast.ImplementsConstraintExpr:
		out[v.Var] = append(out[v.Var], &ImplementsConstraint{Name: v.Name})
		return nil
	case *ast.AndConstraintExpr:
		if err := flattenConstraint(v.Left, out); err != nil {
			return err
		}
		return flattenConstraint(v.Right, out)
	case *ast.OrConstraintExpr:
		if err := flattenConstraint(v.Left, out); err != nil {
			return err
		}
		return flattenConstraint(v.Right, out)
	case *ast.ParenConstraintExpr:
		return flattenConstraint(v.Inner, out)
	}
	return fmt.Errorf("unknown constraint expression %T", c)
}
