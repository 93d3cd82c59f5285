package types

import (
	"testing"

	"github.com/thrush-lang/thrush/internal/stdlib"
)

func TestNewStateAppliesPrintLogEffect(t *testing.T) {
	st := NewState()
	scheme, ok := st.Env.Lookup("print")
	if !ok {
		t.Fatalf("expected print to be bound")
	}
	tf, ok := scheme.Type.(*TFunc)
	if !ok {
		t.Fatalf("expected print to be a function type, got %T", scheme.Type)
	}
	if len(tf.Effects) != 1 || tf.Effects[0] != "log" {
		t.Fatalf("expected print's effect set to be [log], got %v", tf.Effects)
	}
}

func TestApplyManifestEffectsRejectsArityDrift(t *testing.T) {
	st := NewState()
	m := &stdlib.Manifest{Builtins: []stdlib.BuiltinSpec{
		{Name: "print", Arity: 2, Effects: []string{"log"}},
	}}
	if err := ApplyManifestEffects(st, m); err == nil {
		t.Fatalf("expected an arity-drift error")
	}
}

func TestApplyManifestEffectsRejectsUnknownBinding(t *testing.T) {
	st := NewState()
	m := &stdlib.Manifest{Builtins: []stdlib.BuiltinSpec{
		{Name: "doesNotExist", Arity: 1, Effects: []string{"log"}},
	}}
	if err := ApplyManifestEffects(st, m); err == nil {
		t.Fatalf("expected an unknown-binding error")
	}
}
