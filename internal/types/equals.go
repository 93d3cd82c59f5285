package types

// structurallyEqual reports whether a and b are the same type up to
// the names of any bound type variables already resolved by the
// caller's substitution (Unify applies the substitution before calling
// this). Two distinct, still-free type variables are equal only if
// they share a name.
func structurallyEqual(a, b Type) bool {
	switch va := a.(type) {
	case *TVar:
		vb, ok := b.(*TVar)
		return ok && va.Name == vb.Name
	case *TPrim:
		vb, ok := b.(*TPrim)
		return ok && va.Name == vb.Name
	case *TUnit:
		_, ok := b.(*TUnit)
		return ok
	case *TFunc:
		vb, ok := b.(*TFunc)
		if !ok || len(va.Params) != len(vb.Params) || !EffectsEqual(va.Effects, vb.Effects) {
			return false
		}
		for i := range va.Params {
			if !structurallyEqual(va.Params[i], vb.Params[i]) {
				return false
			}
		}
		return structurallyEqual(va.Return, vb.Return)
	case *TList:
		vb, ok := b.(*TList)
		return ok && structurallyEqual(va.Element, vb.Element)
	case *TTuple:
		vb, ok := b.(*TTuple)
		if !ok || len(va.Elements) != len(vb.Elements) {
			return false
		}
		for i := range va.Elements {
			if !structurallyEqual(va.Elements[i], vb.Elements[i]) {
				return false
			}
		}
		return true
	case *TRecord:
		vb, ok := b.(*TRecord)
		if !ok || len(va.Fields) != len(vb.Fields) {
			return false
		}
		for _, fa := range va.Fields {
			fbType, found := vb.field(fa.Name)
			if !found || !structurallyEqual(fa.Type, fbType) {
				return false
			}
		}
		return true
	case *TUnion:
		vb, ok := b.(*TUnion)
		if !ok || len(va.Alternatives) != len(vb.Alternatives) {
			return false
		}
		for i := range va.Alternatives {
			if !structurallyEqual(va.Alternatives[i], vb.Alternatives[i]) {
				return false
			}
		}
		return true
	case *TVariant:
		vb, ok := b.(*TVariant)
		if !ok || va.Name != vb.Name || len(va.Args) != len(vb.Args) {
			return false
		}
		for i := range va.Args {
			if !structurallyEqual(va.Args[i], vb.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// typeHead returns the head name used to key implements-constraint
// resolution: a variant or union head name, or the primitive/compound
// kind name otherwise.
func typeHead(t Type) string {
	switch v := t.(type) {
	case *TVariant:
		return v.Name
	case *TPrim:
		return v.Name
	case *TList:
		return "List"
	case *TTuple:
		return "Tuple"
	case *TRecord:
		return "Record"
	case *TFunc:
		return "Function"
	case *TUnit:
		return "Unit"
	case *TUnion:
		return "Union"
	default:
		return t.String()
	}
}
