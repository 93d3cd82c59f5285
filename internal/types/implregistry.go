package types

import "fmt"

// implKey is (constraintName, typeHeadName): the same coherence key
// the teacher's InstanceEnv uses (see canonicalKey in instances.go),
// simplified here to string concatenation since this engine has no
// per-method dictionary to store, only membership.
type implKey struct {
	constraint string
	typeHead   string
}

// ImplementationRegistry records which (constraint, type) pairs have a
// matching `implement` block, for resolving `implements` constraints
// once a type variable carrying one has been bound to a concrete
// type. Unlike unification, this resolution happens once per program
// after inference completes (see ResolvePending in program.go).
type ImplementationRegistry struct {
	entries map[implKey]bool
}

func NewImplementationRegistry() *ImplementationRegistry {
	return &ImplementationRegistry{entries: map[implKey]bool{}}
}

func (r *ImplementationRegistry) Register(constraintName, typeHead string) {
	r.entries[implKey{constraintName, typeHead}] = true
}

func (r *ImplementationRegistry) Has(constraintName, typeHead string) bool {
	return r.entries[implKey{constraintName, typeHead}]
}

func (r *ImplementationRegistry) String() string {
	return fmt.Sprintf("ImplementationRegistry(%d entries)", len(r.entries))
}
