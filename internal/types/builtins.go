package types

// satisfiesPredicate implements the built-in `is` predicates: a
// concrete type either does or does not belong to the named class.
// Grounded on the shape of the teacher's instance-coherence checks
// (instances.go), simplified to a structural predicate since this
// engine tracks `implements` separately via ImplementationRegistry.
func satisfiesPredicate(name string, t Type) bool {
	switch name {
	case "Number":
		p, ok := t.(*TPrim)
		return ok && p.Name == "Float"
	case "String":
		p, ok := t.(*TPrim)
		return ok && p.Name == "String"
	case "Boolean":
		v, ok := t.(*TVariant)
		return ok && v.Name == "Bool" && len(v.Args) == 0
	case "List":
		_, ok := t.(*TList)
		return ok
	case "Record":
		_, ok := t.(*TRecord)
		return ok
	case "Function":
		_, ok := t.(*TFunc)
		return ok
	case "Show":
		switch t.(type) {
		case *TPrim, *TList, *TRecord:
			return true
		}
		return false
	case "Eq":
		switch t.(type) {
		case *TPrim, *TList, *TRecord:
			return true
		}
		return false
	default:
		return false
	}
}

func prim(name string) *TPrim { return &TPrim{Name: name} }

var floatT = prim("Float")
var stringT = prim("String")
var unitT = &TUnit{}

// boolT is the Bool variant type (booleans are the zero-argument
// constructors True/False, not a primitive — see installBoolADT).
func boolT() *TVariant { return &TVariant{Name: "Bool"} }

func fn(params []Type, ret Type, effects ...string) *TFunc {
	return &TFunc{Params: params, Return: ret, Effects: effects}
}

// poly builds a scheme quantified over the given variable names, using
// mk to construct the body type from fresh *TVar placeholders sharing
// those names (the placeholders are instantiated afresh on every
// lookup, so sharing the *TVar pointer across a scheme's uses is safe:
// Instantiate substitutes by name, never by identity).
func poly(vars []string, mk func(v map[string]*TVar) Type) *Scheme {
	vs := make(map[string]*TVar, len(vars))
	for _, name := range vars {
		vs[name] = &TVar{Name: name}
	}
	return &Scheme{Quantified: vars, Type: mk(vs)}
}

// InstallBuiltins seeds st's environment and ADT registry with the
// fixed prelude: arithmetic/comparison operators, list/string/record
// primitives, math helpers, `print`, and the built-in Option/Result
// ADTs. The pipeline, thrush, dollar and sequence operators have no
// binding here; they are typed directly by the inference rules.
func InstallBuiltins(st *TypeState) {
	env := st.Env

	arith := poly(nil, func(map[string]*TVar) Type { return fn([]Type{floatT, floatT}, floatT) })
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		env.Bind(op, arith)
	}
	compare := poly(nil, func(map[string]*TVar) Type { return fn([]Type{floatT, floatT}, boolT()) })
	for _, op := range []string{"<", ">", "<=", ">="} {
		env.Bind(op, compare)
	}
	eq := poly([]string{"a"}, func(v map[string]*TVar) Type { return fn([]Type{v["a"], v["a"]}, boolT()) })
	env.Bind("==", eq)
	env.Bind("!=", eq)

	// head's element variable carries an `is Number` constraint (spec:
	// List element must satisfy the Number predicate); bound directly
	// rather than via v["a"] so the same constrained *TVar is shared
	// between the parameter and return positions.
	env.Bind("head", poly([]string{"a"}, func(v map[string]*TVar) Type {
		elem := &TVar{Name: "a", Constraints: []Constraint{&IsConstraint{Name: "Number"}}}
		return fn([]Type{&TList{Element: elem}}, elem)
	}))
	env.Bind("tail", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TList{Element: v["a"]}}, &TList{Element: v["a"]})
	}))
	env.Bind("cons", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"], &TList{Element: v["a"]}}, &TList{Element: v["a"]})
	}))
	env.Bind("map", poly([]string{"a", "b"}, func(v map[string]*TVar) Type {
		return fn([]Type{fn([]Type{v["a"]}, v["b"]), &TList{Element: v["a"]}}, &TList{Element: v["b"]})
	}))
	env.Bind("filter", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{fn([]Type{v["a"]}, boolT()), &TList{Element: v["a"]}}, &TList{Element: v["a"]})
	}))
	env.Bind("reduce", poly([]string{"a", "b"}, func(v map[string]*TVar) Type {
		return fn([]Type{fn([]Type{v["b"], v["a"]}, v["b"]), v["b"], &TList{Element: v["a"]}}, v["b"])
	}))
	env.Bind("length", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TList{Element: v["a"]}}, floatT)
	}))
	env.Bind("isEmpty", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TList{Element: v["a"]}}, boolT())
	}))
	env.Bind("append", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TList{Element: v["a"]}, &TList{Element: v["a"]}}, &TList{Element: v["a"]})
	}))
	env.Bind("list_get", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TList{Element: v["a"]}, floatT}, v["a"])
	}))

	env.Bind("concat", poly(nil, func(map[string]*TVar) Type { return fn([]Type{stringT, stringT}, stringT) }))
	env.Bind("toString", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"]}, stringT)
	}))

	env.Bind("hasKey", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"], stringT}, boolT())
	}))
	env.Bind("hasValue", poly([]string{"a", "b"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"], v["b"]}, boolT())
	}))
	env.Bind("set", poly([]string{"a", "b"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"], stringT, v["b"]}, v["a"])
	}))

	env.Bind("abs", poly(nil, func(map[string]*TVar) Type { return fn([]Type{floatT}, floatT) }))
	env.Bind("max", poly(nil, func(map[string]*TVar) Type { return fn([]Type{floatT, floatT}, floatT) }))
	env.Bind("min", poly(nil, func(map[string]*TVar) Type { return fn([]Type{floatT, floatT}, floatT) }))

	env.Bind("compose", poly([]string{"a", "b", "c"}, func(v map[string]*TVar) Type {
		return fn([]Type{fn([]Type{v["b"]}, v["c"]), fn([]Type{v["a"]}, v["b"])}, fn([]Type{v["a"]}, v["c"]))
	}))
	env.Bind("id", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"]}, v["a"])
	}))

	// print's effect tag is not set here — it comes from the stdlib
	// manifest via ApplyManifestEffects, called from NewState.
	env.Bind("print", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"]}, unitT)
	}))

	installOptionResult(st)
	installBoolADT(st)
}

// installBoolADT registers Bool as a built-in zero-argument variant
// with constructors True/False — booleans are ordinary ADT values in
// this language, not a primitive.
func installBoolADT(st *TypeState) {
	st.ADTs.Register(&ADTDecl{
		Name:         "Bool",
		Constructors: map[string][]Type{"True": {}, "False": {}},
		CtorOrder:    []string{"True", "False"},
	})
	st.Env.Bind("True", Mono(boolT()))
	st.Env.Bind("False", Mono(boolT()))
}

// installOptionResult registers the two fixed built-in ADTs: Option a
// (Some a | None) and Result e a (Ok a | Err e), plus the
// isSome/isNone/isOk/isErr/unwrap helpers over them.
func installOptionResult(st *TypeState) {
	env := st.Env
	reg := st.ADTs

	optionDecl := &ADTDecl{
		Name:       "Option",
		TypeParams: []string{"a"},
		Constructors: map[string][]Type{
			"Some": {&TVar{Name: "a"}},
			"None": {},
		},
		CtorOrder: []string{"Some", "None"},
	}
	reg.Register(optionDecl)
	env.Bind("Some", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"]}, &TVariant{Name: "Option", Args: []Type{v["a"]}})
	}))
	env.Bind("None", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return &TVariant{Name: "Option", Args: []Type{v["a"]}}
	}))

	resultDecl := &ADTDecl{
		Name:       "Result",
		TypeParams: []string{"e", "a"},
		Constructors: map[string][]Type{
			"Ok":  {&TVar{Name: "a"}},
			"Err": {&TVar{Name: "e"}},
		},
		CtorOrder: []string{"Ok", "Err"},
	}
	reg.Register(resultDecl)
	env.Bind("Ok", poly([]string{"e", "a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["a"]}, &TVariant{Name: "Result", Args: []Type{v["e"], v["a"]}})
	}))
	env.Bind("Err", poly([]string{"e", "a"}, func(v map[string]*TVar) Type {
		return fn([]Type{v["e"]}, &TVariant{Name: "Result", Args: []Type{v["e"], v["a"]}})
	}))

	env.Bind("isSome", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TVariant{Name: "Option", Args: []Type{v["a"]}}}, boolT())
	}))
	env.Bind("isNone", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TVariant{Name: "Option", Args: []Type{v["a"]}}}, boolT())
	}))
	env.Bind("isOk", poly([]string{"e", "a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TVariant{Name: "Result", Args: []Type{v["e"], v["a"]}}}, boolT())
	}))
	env.Bind("isErr", poly([]string{"e", "a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TVariant{Name: "Result", Args: []Type{v["e"], v["a"]}}}, boolT())
	}))
	env.Bind("unwrap", poly([]string{"a"}, func(v map[string]*TVar) Type {
		return fn([]Type{&TVariant{Name: "Option", Args: []Type{v["a"]}}}, v["a"])
	}))
}
