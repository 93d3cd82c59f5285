package types

import (
	"fmt"

	"github.com/thrush-lang/thrush/internal/ast"
)

// TypeCheckErrorKind tags the reason a TypeCheckError was raised.
type TypeCheckErrorKind string

const (
	KindMismatch             TypeCheckErrorKind = "TypeMismatch"
	KindUndefinedVariable    TypeCheckErrorKind = "UndefinedVariable"
	KindOccursCheck          TypeCheckErrorKind = "OccursCheck"
	KindArityMismatch        TypeCheckErrorKind = "ArityMismatch"
	KindUnknownConstraint    TypeCheckErrorKind = "UnknownConstraint"
	KindConstraintViolated   TypeCheckErrorKind = "ConstraintViolated"
	KindUnknownConstructor   TypeCheckErrorKind = "UnknownConstructor"
	KindInvalidEffect        TypeCheckErrorKind = "InvalidEffect"
	KindConstraintNotSatisfied TypeCheckErrorKind = "ConstraintNotSatisfied"
)

// TypeCheckError is the structured error surfaced by unification and
// inference failures: expected/got, a reason tag, the operation being
// performed, and a source location.
type TypeCheckError struct {
	Kind      TypeCheckErrorKind
	Expected  string
	Got       string
	Reason    string
	Operation string
	Loc       ast.Location
}

func (e *TypeCheckError) Error() string {
	if e.Expected != "" || e.Got != "" {
		return fmt.Sprintf("%s at %s: %s: expected %s, got %s (%s)", e.Kind, e.Loc, e.Operation, e.Expected, e.Got, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s: %s", e.Kind, e.Loc, e.Operation, e.Reason)
}

func mismatchError(operation string, expected, got Type, loc ast.Location, reason string) *TypeCheckError {
	return &TypeCheckError{
		Kind: KindMismatch, Expected: expected.String(), Got: got.String(),
		Reason: reason, Operation: operation, Loc: loc,
	}
}

func undefinedVariableError(name string, loc ast.Location) *TypeCheckError {
	return &TypeCheckError{
		Kind: KindUndefinedVariable, Operation: "variable lookup",
		Reason: fmt.Sprintf("%q is not defined", name), Loc: loc,
	}
}
