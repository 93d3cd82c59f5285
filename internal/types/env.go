package types

// Env is name -> TypeScheme, the inference environment.
type Env struct {
	parent *Env
	table  map[string]*Scheme
}

// NewEnv creates an empty root environment.
func NewEnv() *Env {
	return &Env{table: make(map[string]*Scheme)}
}

// Child returns a new environment extending e; lookups fall back to e.
func (e *Env) Child() *Env {
	return &Env{parent: e, table: make(map[string]*Scheme)}
}

// Bind introduces name -> scheme in this environment frame.
func (e *Env) Bind(name string, scheme *Scheme) {
	e.table[name] = scheme
}

// Lookup searches this frame and its ancestors.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	for env := e; env != nil; env = env.parent {
		if s, ok := env.table[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// freeTypeVars returns the set of free type variables across every
// scheme currently bound in e and its ancestors, excluding excludeName
// (used by generalize to drop the definition's own placeholder before
// computing which variables are safe to quantify).
func (e *Env) freeTypeVars(excludeName string) map[string]bool {
	out := map[string]bool{}
	for env := e; env != nil; env = env.parent {
		for name, scheme := range env.table {
			if name == excludeName {
				continue
			}
			ftv := freeTypeVars(scheme.Type)
			quantified := map[string]bool{}
			for _, q := range scheme.Quantified {
				quantified[q] = true
			}
			for v := range ftv {
				if !quantified[v] {
					out[v] = true
				}
			}
		}
	}
	return out
}
