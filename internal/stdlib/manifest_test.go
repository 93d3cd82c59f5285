package stdlib_test

import (
	"testing"

	"github.com/thrush-lang/thrush/internal/stdlib"
)

func TestDefaultManifestDecodes(t *testing.T) {
	m, err := stdlib.DefaultManifest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Builtins) == 0 {
		t.Fatalf("expected at least one builtin in the default manifest")
	}
}

func TestEffectfulFiltersToTaggedEntries(t *testing.T) {
	m, err := stdlib.DefaultManifest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eff := m.Effectful()
	if len(eff) != 1 || eff[0].Name != "print" {
		t.Fatalf("expected exactly one effectful builtin (print), got %+v", eff)
	}
	if len(eff[0].Effects) != 1 || eff[0].Effects[0] != "log" {
		t.Fatalf("expected print to carry the log effect, got %v", eff[0].Effects)
	}
}

func TestLoadManifestFromCustomSource(t *testing.T) {
	src := []byte(`
builtins:
  - name: myFn
    arity: 1
    effects: [state]
`)
	m, err := stdlib.LoadManifest(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Builtins) != 1 || m.Builtins[0].Name != "myFn" {
		t.Fatalf("got %+v", m.Builtins)
	}
}
