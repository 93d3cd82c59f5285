package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/stdlib"
)

// ApplyManifestEffects merges a stdlib.Manifest's declared effect tags
// onto the matching prelude bindings already present in st.Env. Only
// entries with at least one effect do anything; every other builtin
// keeps the effect set its Go construction gave it. A manifest entry
// naming a binding that InstallBuiltins never bound, or whose bound
// type isn't a function of matching arity, is a manifest/prelude
// drift and is reported rather than silently ignored.
func ApplyManifestEffects(st *TypeState, m *stdlib.Manifest) error {
	for _, spec := range m.Effectful() {
		scheme, ok := st.Env.Lookup(spec.Name)
		if !ok {
			return fmt.Errorf("stdlib manifest: %q has no matching prelude binding", spec.Name)
		}
		tf, ok := scheme.Type.(*TFunc)
		if !ok {
			return fmt.Errorf("stdlib manifest: %q is not bound to a function type", spec.Name)
		}
		if len(tf.Params) != spec.Arity {
			return fmt.Errorf("stdlib manifest: %q declares arity %d, prelude binds arity %d", spec.Name, spec.Arity, len(tf.Params))
		}
		st.Env.Bind(spec.Name, &Scheme{
			Quantified: scheme.Quantified,
			Type:       &TFunc{Params: tf.Params, Return: tf.Return, Effects: spec.Effects},
		})
	}
	return nil
}

// installManifestEffects loads the embedded default manifest and
// applies it; called once from NewState. A decode or drift error here
// indicates the embedded manifest.yaml and builtins.go have gone out
// of sync, which is a programmer error worth surfacing loudly rather
// than swallowing.
func installManifestEffects(st *TypeState) {
	m, err := stdlib.DefaultManifest()
	if err != nil {
		panic(fmt.Sprintf("types: loading embedded stdlib manifest: %v", err))
	}
	if err := ApplyManifestEffects(st, m); err != nil {
		panic(fmt.Sprintf("types: applying embedded stdlib manifest: %v", err))
	}
}
