package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// inferTypeDefinition registers a `variant` declaration's ADT shape
// and injects each constructor into the term environment as a
// (possibly nullary) polymorphic function over the declaration's
// parameters.
func inferTypeDefinition(st *TypeState, env *Env, e *ast.TypeDefinition) (Type, *Decorated, error) {
	vars := map[string]*TVar{}
	paramVars := make([]*TVar, len(e.Params))
	for i, p := range e.Params {
		v := &TVar{Name: p}
		vars[p] = v
		paramVars[i] = v
	}
	variantArgs := make([]Type, len(paramVars))
	for i, v := range paramVars {
		variantArgs[i] = v
	}
	variantType := &TVariant{Name: e.Name, Args: variantArgs}

	ctors := map[string][]Type{}
	order := make([]string, len(e.Constructors))
	for i, ctor := range e.Constructors {
		argTypes := make([]Type, len(ctor.Args))
		for j, a := range ctor.Args {
			at, err := fromASTType(a, vars)
			if err != nil {
				return nil, nil, err
			}
			argTypes[j] = at
		}
		ctors[ctor.Name] = argTypes
		order[i] = ctor.Name

		var ctorType Type = variantType
		if len(argTypes) > 0 {
			ctorType = &TFunc{Params: argTypes, Return: variantType}
		}
		env.Bind(ctor.Name, &Scheme{Quantified: e.Params, Type: ctorType})
	}

	st.ADTs.Register(&ADTDecl{
		Name: e.Name, TypeParams: e.Params, Constructors: ctors, CtorOrder: order,
	})
	return decorated(e, &TUnit{})
}

// inferUserDefinedType registers a `type Name params = ...` alias for
// later reference; it introduces no term-level bindings.
func inferUserDefinedType(st *TypeState, env *Env, e *ast.UserDefinedType) (Type, *Decorated, error) {
	vars := map[string]*TVar{}
	for _, p := range e.Params {
		vars[p] = &TVar{Name: p}
	}
	body, err := fromASTType(e.Def, vars)
	if err != nil {
		return nil, nil, err
	}
	st.Aliases[e.Name] = &TypeAlias{Name: e.Name, Params: e.Params, Body: body}
	return decorated(e, &TUnit{})
}

// inferMatch infers the scrutinee, then for every case binds its
// pattern against a fresh copy of the scrutinee's type in a child
// environment and infers the body there, unifying every case's body
// type with the first.
func inferMatch(st *TypeState, env *Env, e *ast.Match) (Type, *Decorated, error) {
	scrutineeType, scrutineeDec, err := Infer(st, env, e.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	children := []*Decorated{scrutineeDec}

	var resultType Type
	for i, c := range e.Cases {
		caseEnv := env.Child()
		if err := bindPattern(st, caseEnv, c.Pattern, scrutineeType); err != nil {
			return nil, nil, err
		}
		bodyType, bodyDec, err := Infer(st, caseEnv, c.Body)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			resultType = bodyType
		} else if err := st.Unify(resultType, bodyType, c.Loc, "match case"); err != nil {
			return nil, nil, err
		}
		children = append(children, bodyDec)
	}
	if resultType == nil {
		resultType = &TUnit{}
	}
	return decorated(e, st.Apply(resultType), children...)
}

// bindPattern unifies pat's shape against scrutinee, binding any
// variables it introduces into env.
func bindPattern(st *TypeState, env *Env, pat ast.Pattern, scrutinee Type) error {
	switch p := pat.(type) {
	case *ast.Wildcard:
		return nil

	case *ast.PatternVariable:
		env.Bind(p.Name, Mono(scrutinee))
		return nil

	case *ast.PatternLiteral:
		var lit Type
		switch p.Kind {
		case ast.NumberLiteral:
			lit = floatT
		case ast.StringLiteral:
			lit = stringT
		default:
			return fmt.Errorf("unknown pattern literal kind %d", p.Kind)
		}
		return st.Unify(scrutinee, lit, p.Loc, "pattern literal")

	case *ast.ConstructorPattern:
		decl, argTypes, ok := st.ADTs.Constructor(p.Name)
		if !ok {
			return &TypeCheckError{
				Kind: KindUnknownConstructor, Operation: "pattern match", Loc: p.Loc,
				Reason: fmt.Sprintf("unknown constructor %q", p.Name),
			}
		}
		if len(p.SubPatterns) != len(argTypes) {
			return &TypeCheckError{
				Kind: KindArityMismatch, Operation: "pattern match", Loc: p.Loc,
				Reason: fmt.Sprintf("constructor %s expects %d argument(s), got %d", p.Name, len(argTypes), len(p.SubPatterns)),
			}
		}
		sub := make(Substitution, len(decl.TypeParams))
		variantArgs := make([]Type, len(decl.TypeParams))
		for i, tparam := range decl.TypeParams {
			fresh := st.Fresh()
			sub[tparam] = fresh
			variantArgs[i] = fresh
		}
		variantType := &TVariant{Name: decl.Name, Args: variantArgs}
		if err := st.Unify(scrutinee, variantType, p.Loc, "constructor pattern"); err != nil {
			return err
		}
		for i, argType := range argTypes {
			instArg := Substitute(argType, sub)
			if err := bindPattern(st, env, p.SubPatterns[i], instArg); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown pattern type %T", pat)
}

// inferConstraintDefinition binds each of a constraint's signatures as
// a generic function quantified over (at least) the constraint's own
// type parameter, attaching an ImplementsConstraint to that parameter
// so any call site propagates the obligation onto the caller's type.
func inferConstraintDefinition(st *TypeState, env *Env, e *ast.ConstraintDefinition) (Type, *Decorated, error) {
	for _, sig := range e.Signatures {
		vars := map[string]*TVar{}
		sigType, err := fromASTType(sig.TypeExpr, vars)
		if err != nil {
			return nil, nil, err
		}
		if tv, ok := vars[e.TypeParam]; ok {
			tv.Constraints = append(tv.Constraints, &ImplementsConstraint{Name: e.Name})
		}
		quantified := append([]string{}, sig.TypeParams...)
		if !containsString(quantified, e.TypeParam) {
			quantified = append(quantified, e.TypeParam)
		}
		env.Bind(sig.Name, &Scheme{Quantified: quantified, Type: sigType})
	}
	return decorated(e, &TUnit{})
}

// inferImplementDefinition typechecks each method body (a normal
// expression in the ambient environment) and registers the
// (constraint, type) pair as implemented for later PendingImplement
// resolution.
func inferImplementDefinition(st *TypeState, env *Env, e *ast.ImplementDefinition) (Type, *Decorated, error) {
	children := make([]*Decorated, 0, len(e.Implementations))
	for _, impl := range e.Implementations {
		_, d, err := Infer(st, env, &impl)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, d)
	}
	st.Impls.Register(e.ConstraintName, e.TypeName)
	return decorated(e, &TUnit{}, children...)
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
