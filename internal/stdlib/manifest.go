// Package stdlib decodes the manifest describing the fixed prelude's
// arity and effect tags. It carries no dependency on internal/types:
// it is pure data, read with gopkg.in/yaml.v3 and handed to a caller
// that knows how to merge it into a type environment (internal/types
// does this in its NewState). Keeping the manifest effect-free of the
// type engine means callers can point LoadManifest at an alternate
// source (a project-supplied prelude description) without this
// package ever needing to know what a Scheme or a TFunc is.
package stdlib

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifestSource []byte

// BuiltinSpec describes one prelude binding's effect-relevant shape.
type BuiltinSpec struct {
	Name    string   `yaml:"name"`
	Arity   int      `yaml:"arity"`
	Effects []string `yaml:"effects"`
}

// Manifest is the decoded prelude description.
type Manifest struct {
	Builtins []BuiltinSpec `yaml:"builtins"`
}

// LoadManifest decodes a manifest from an arbitrary YAML source,
// the injectable seam: a caller may supply its own document instead
// of the embedded default.
func LoadManifest(src []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(src, &m); err != nil {
		return nil, fmt.Errorf("stdlib: decoding manifest: %w", err)
	}
	return &m, nil
}

// DefaultManifest decodes the manifest embedded in this package.
func DefaultManifest() (*Manifest, error) {
	return LoadManifest(defaultManifestSource)
}

// Effectful returns the subset of specs that carry at least one
// effect tag — the only ones an applier needs to act on, since a
// builtin with no declared effects keeps whatever effect set its Go
// construction already gave it (the empty set, for every builtin but
// print).
func (m *Manifest) Effectful() []BuiltinSpec {
	var out []BuiltinSpec
	for _, b := range m.Builtins {
		if len(b.Effects) > 0 {
			out = append(out, b)
		}
	}
	return out
}
