package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// Infer is the dispatcher over every ast.Expr tag (spec §3.2 /
// §4.4.2): it returns the expression's type under st's accumulating
// substitution together with the Decorated overlay node recording it.
func Infer(st *TypeState, env *Env, expr ast.Expr) (Type, *Decorated, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return inferLiteral(e)
	case *ast.Variable:
		return inferVariable(st, env, e)
	case *ast.Function:
		return inferFunction(st, env, e)
	case *ast.Application:
		return inferApplication(st, env, e)
	case *ast.Binary:
		return inferBinary(st, env, e)
	case *ast.Pipeline:
		return inferPipeline(st, env, e)
	case *ast.If:
		return inferIf(st, env, e)
	case *ast.List:
		return inferList(st, env, e)
	case *ast.Tuple:
		return inferTuple(st, env, e)
	case *ast.Record:
		return inferRecord(st, env, e)
	case *ast.Accessor:
		return inferAccessor(st, e)
	case *ast.Unit:
		return decorated(e, &TUnit{})
	case *ast.Definition:
		return inferDefinition(st, env, e)
	case *ast.MutableDefinition:
		return inferMutableDefinition(st, env, e)
	case *ast.Mutation:
		return inferMutation(st, env, e)
	case *ast.Import:
		return decorated(e, &TUnit{})
	case *ast.Where:
		return inferWhere(st, env, e)
	case *ast.Typed:
		return inferTyped(st, env, e)
	case *ast.Constrained:
		return inferConstrained(st, env, e)
	case *ast.TypeDefinition:
		return inferTypeDefinition(st, env, e)
	case *ast.UserDefinedType:
		return inferUserDefinedType(st, env, e)
	case *ast.Match:
		return inferMatch(st, env, e)
	case *ast.ConstraintDefinition:
		return inferConstraintDefinition(st, env, e)
	case *ast.ImplementDefinition:
		return inferImplementDefinition(st, env, e)
	}
	return nil, nil, fmt.Errorf("unhandled expression type %T", expr)
}

func decorated(e ast.Expr, t Type, children ...*Decorated) (Type, *Decorated, error) {
	return t, decorate(e, t, children...), nil
}

func inferLiteral(e *ast.Literal) (Type, *Decorated, error) {
	switch e.Kind {
	case ast.NumberLiteral:
		return decorated(e, floatT)
	case ast.StringLiteral:
		return decorated(e, stringT)
	}
	return nil, nil, fmt.Errorf("unknown literal kind %d", e.Kind)
}

func inferVariable(st *TypeState, env *Env, e *ast.Variable) (Type, *Decorated, error) {
	scheme, ok := env.Lookup(e.Name)
	if !ok {
		return nil, nil, undefinedVariableError(e.Name, e.Loc)
	}
	return decorated(e, Instantiate(st, scheme))
}

// inferFunction binds a fresh type variable per parameter in a child
// environment and infers the body there; the result is the curried
// right-nested function type (displayed as a single n-ary TFunc, per
// the parser's un-curried function-node shape).
func inferFunction(st *TypeState, env *Env, e *ast.Function) (Type, *Decorated, error) {
	child := env.Child()
	params := make([]Type, len(e.Params))
	for i, name := range e.Params {
		v := st.Fresh()
		params[i] = v
		child.Bind(name, Mono(v))
	}
	bodyType, bodyDec, err := Infer(st, child, e.Body)
	if err != nil {
		return nil, nil, err
	}
	fnType := &TFunc{Params: params, Return: st.Apply(bodyType)}
	return decorated(e, fnType, bodyDec)
}

func inferApplication(st *TypeState, env *Env, e *ast.Application) (Type, *Decorated, error) {
	fnType, fnDec, err := Infer(st, env, e.Func)
	if err != nil {
		return nil, nil, err
	}
	argTypes := make([]Type, len(e.Args))
	children := []*Decorated{fnDec}
	for i, a := range e.Args {
		at, ad, err := Infer(st, env, a)
		if err != nil {
			return nil, nil, err
		}
		argTypes[i] = at
		children = append(children, ad)
	}
	result, err := applyArgs(st, fnType, argTypes, e.Loc)
	if err != nil {
		return nil, nil, err
	}
	return decorated(e, result, children...)
}

// applyArgs applies a function-shaped type to a sequence of argument
// types, handling exact arity (full application), under-application
// (curried partial application returning the remaining arrow), and
// over-application (the result of a full application must itself be a
// function, applied to the rest).
func applyArgs(st *TypeState, fnType Type, argTypes []Type, loc ast.Location) (Type, error) {
	fnType = st.Apply(fnType)
	tf, ok := fnType.(*TFunc)
	if !ok {
		tv, isVar := fnType.(*TVar)
		if !isVar {
			return nil, &TypeCheckError{
				Kind: KindMismatch, Operation: "application", Loc: loc,
				Reason: "attempt to call a non-function value", Got: fnType.String(),
			}
		}
		params := make([]Type, len(argTypes))
		for i := range params {
			params[i] = st.Fresh()
		}
		shaped := &TFunc{Params: params, Return: st.Fresh()}
		if err := st.Unify(tv, shaped, loc, "application"); err != nil {
			return nil, err
		}
		tf = shaped
	}

	n, np := len(argTypes), len(tf.Params)
	if n <= np {
		for i := 0; i < n; i++ {
			if err := st.Unify(tf.Params[i], argTypes[i], loc, "application"); err != nil {
				return nil, err
			}
		}
		if n == np {
			return st.Apply(tf.Return), nil
		}
		return &TFunc{Params: tf.Params[n:], Return: tf.Return, Effects: tf.Effects}, nil
	}

	for i := 0; i < np; i++ {
		if err := st.Unify(tf.Params[i], argTypes[i], loc, "application"); err != nil {
			return nil, err
		}
	}
	return applyArgs(st, st.Apply(tf.Return), argTypes[np:], loc)
}

// inferBinary handles the sequence operator specially (its left side's
// type is discarded) and otherwise treats the operator as a builtin
// function looked up by its literal symbol.
func inferBinary(st *TypeState, env *Env, e *ast.Binary) (Type, *Decorated, error) {
	leftType, leftDec, err := Infer(st, env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	rightType, rightDec, err := Infer(st, env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	if e.Operator == ";" {
		return decorated(e, st.Apply(rightType), leftDec, rightDec)
	}
	scheme, ok := env.Lookup(e.Operator)
	if !ok {
		return nil, nil, undefinedVariableError(e.Operator, e.Loc)
	}
	opType := Instantiate(st, scheme)
	result, err := applyArgs(st, opType, []Type{leftType, rightType}, e.Loc)
	if err != nil {
		return nil, nil, err
	}
	return decorated(e, result, leftDec, rightDec)
}

func inferPipeline(st *TypeState, env *Env, e *ast.Pipeline) (Type, *Decorated, error) {
	if len(e.Steps) == 0 {
		return decorated(e, &TUnit{})
	}
	acc, firstDec, err := Infer(st, env, e.Steps[0])
	if err != nil {
		return nil, nil, err
	}
	children := []*Decorated{firstDec}
	for _, step := range e.Steps[1:] {
		fnType, stepDec, err := Infer(st, env, step)
		if err != nil {
			return nil, nil, err
		}
		acc, err = applyArgs(st, fnType, []Type{acc}, e.Loc)
		if err != nil {
			return nil, nil, &TypeCheckError{
				Kind: KindMismatch, Operation: "pipeline", Loc: e.Loc,
				Reason: err.Error(),
			}
		}
		children = append(children, stepDec)
	}
	return decorated(e, st.Apply(acc), children...)
}

func inferIf(st *TypeState, env *Env, e *ast.If) (Type, *Decorated, error) {
	condType, condDec, err := Infer(st, env, e.Condition)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Unify(condType, boolT(), e.Loc, "if condition"); err != nil {
		return nil, nil, err
	}
	thenType, thenDec, err := Infer(st, env, e.Then)
	if err != nil {
		return nil, nil, err
	}
	elseType, elseDec, err := Infer(st, env, e.Else)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Unify(thenType, elseType, e.Loc, "if branches"); err != nil {
		return nil, nil, err
	}
	return decorated(e, st.Apply(thenType), condDec, thenDec, elseDec)
}

func inferList(st *TypeState, env *Env, e *ast.List) (Type, *Decorated, error) {
	if len(e.Elements) == 0 {
		return decorated(e, &TList{Element: st.Fresh()})
	}
	firstType, firstDec, err := Infer(st, env, e.Elements[0])
	if err != nil {
		return nil, nil, err
	}
	children := []*Decorated{firstDec}
	for _, elem := range e.Elements[1:] {
		t, d, err := Infer(st, env, elem)
		if err != nil {
			return nil, nil, err
		}
		if err := st.Unify(firstType, t, e.Loc, "list element"); err != nil {
			return nil, nil, err
		}
		children = append(children, d)
	}
	return decorated(e, &TList{Element: st.Apply(firstType)}, children...)
}

func inferTuple(st *TypeState, env *Env, e *ast.Tuple) (Type, *Decorated, error) {
	elems := make([]Type, len(e.Elements))
	children := make([]*Decorated, len(e.Elements))
	for i, el := range e.Elements {
		t, d, err := Infer(st, env, el)
		if err != nil {
			return nil, nil, err
		}
		elems[i] = t
		children[i] = d
	}
	return decorated(e, &TTuple{Elements: elems}, children...)
}

func inferRecord(st *TypeState, env *Env, e *ast.Record) (Type, *Decorated, error) {
	fields := make([]TRecordField, len(e.Fields))
	children := make([]*Decorated, len(e.Fields))
	for i, f := range e.Fields {
		t, d, err := Infer(st, env, f.Value)
		if err != nil {
			return nil, nil, err
		}
		fields[i] = TRecordField{Name: f.Name, Type: t}
		children[i] = d
	}
	return decorated(e, &TRecord{Fields: fields}, children...)
}

// inferAccessor types a bare `@field` as a function `a -> b` where a
// carries a hasField(field, b) constraint, per spec: accessors are
// always applied (via application or pipeline), never evaluated bare.
func inferAccessor(st *TypeState, e *ast.Accessor) (Type, *Decorated, error) {
	fieldType := st.Fresh()
	recordVar := st.Fresh()
	recordVar.Constraints = append(recordVar.Constraints, &HasFieldConstraint{Field: e.Field, Type: fieldType})
	return decorated(e, &TFunc{Params: []Type{recordVar}, Return: fieldType})
}

// inferDefinition generalizes the inferred value type over the
// ambient environment (minus the placeholder it binds for itself, so
// that the rest of a `where` chain or top-level program sees the
// binding as polymorphic) and binds it.
func inferDefinition(st *TypeState, env *Env, e *ast.Definition) (Type, *Decorated, error) {
	placeholder := st.Fresh()
	env.Bind(e.Name, Mono(placeholder))
	valType, valDec, err := Infer(st, env, e.Value)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Unify(placeholder, valType, e.Loc, "definition"); err != nil {
		return nil, nil, err
	}
	scheme := Generalize(env, st, e.Name, placeholder)
	env.Bind(e.Name, scheme)
	return decorated(e, &TUnit{}, valDec)
}

// inferMutableDefinition binds a monomorphic (non-generalized)
// placeholder: `mut`/`mut!` bindings may later be reassigned with
// `:=`, so widening their type across uses would unsoundly let two
// mutations disagree on the variable's type.
func inferMutableDefinition(st *TypeState, env *Env, e *ast.MutableDefinition) (Type, *Decorated, error) {
	valType, valDec, err := Infer(st, env, e.Value)
	if err != nil {
		return nil, nil, err
	}
	env.Bind(e.Name, Mono(st.Apply(valType)))
	return decorated(e, &TUnit{}, valDec)
}

func inferMutation(st *TypeState, env *Env, e *ast.Mutation) (Type, *Decorated, error) {
	scheme, ok := env.Lookup(e.Name)
	if !ok {
		return nil, nil, undefinedVariableError(e.Name, e.Loc)
	}
	boundType := Instantiate(st, scheme)
	valType, valDec, err := Infer(st, env, e.Value)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Unify(boundType, valType, e.Loc, "mutation"); err != nil {
		return nil, nil, err
	}
	return decorated(e, &TUnit{}, valDec)
}

// inferWhere extends a child environment with each definition in
// order (so later definitions may reference earlier ones), then
// infers Main there.
func inferWhere(st *TypeState, env *Env, e *ast.Where) (Type, *Decorated, error) {
	child := env.Child()
	children := make([]*Decorated, 0, len(e.Definitions)+1)
	for _, def := range e.Definitions {
		_, d, err := Infer(st, child, def)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, d)
	}
	mainType, mainDec, err := Infer(st, child, e.Main)
	if err != nil {
		return nil, nil, err
	}
	children = append(children, mainDec)
	return decorated(e, st.Apply(mainType), children...)
}

func inferTyped(st *TypeState, env *Env, e *ast.Typed) (Type, *Decorated, error) {
	innerType, innerDec, err := Infer(st, env, e.Expr)
	if err != nil {
		return nil, nil, err
	}
	annotated, err := FromASTType(e.TypeExpr)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Unify(innerType, annotated, e.Loc, "type annotation"); err != nil {
		return nil, nil, err
	}
	return decorated(e, st.Apply(annotated), innerDec)
}

func inferConstrained(st *TypeState, env *Env, e *ast.Constrained) (Type, *Decorated, error) {
	innerType, innerDec, err := Infer(st, env, e.Expr)
	if err != nil {
		return nil, nil, err
	}
	annotated, err := FromASTType(e.TypeExpr)
	if err != nil {
		return nil, nil, err
	}
	byVar, err := FromASTConstraint(e.Constraint)
	if err != nil {
		return nil, nil, err
	}
	varsByName := collectVarsByName(annotated)
	for name, cs := range byVar {
		if tv, ok := varsByName[name]; ok {
			tv.Constraints = mergeConstraints(tv.Constraints, cs)
		}
	}
	if err := st.Unify(innerType, annotated, e.Loc, "constrained annotation"); err != nil {
		return nil, nil, err
	}
	return decorated(e, st.Apply(annotated), innerDec)
}

// collectVarsByName indexes every distinct type variable reachable
// from t by its display name, so a `given` clause's per-variable
// constraints can be attached to the right one.
func collectVarsByName(t Type) map[string]*TVar {
	out := map[string]*TVar{}
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case *TVar:
			out[v.Name] = v
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
