package ast

// Type is the syntactic type-expression family produced by the parser
// in TypeExpr position (`expr : TypeExpr`, ADT constructor arguments,
// constraint field types, ...). The type engine converts these into
// its own semantic type representation (see internal/types); keeping
// the two separate avoids a parser<->type-engine import cycle and
// mirrors how the teacher keeps ast.Type distinct from types.Type.
type Type interface {
	Node
	typeTag()
}

// PrimitiveType covers the fixed keyword primitives: Float, String,
// Unit, Number, Unknown.
type PrimitiveType struct {
	Name string
	Loc  Location
}

func (p *PrimitiveType) Location() Location { return p.Loc }
func (p *PrimitiveType) typeTag()           {}

// TypeVariable is a lowercase identifier used as a type variable.
type TypeVariable struct {
	Name string
	Loc  Location
}

func (t *TypeVariable) Location() Location { return t.Loc }
func (t *TypeVariable) typeTag()           {}

// FunctionType is a right-associative arrow chain with trailing effects
// on the outermost arrow: `a -> b -> c !log !rand`.
type FunctionType struct {
	Params  []Type
	Return  Type
	Effects []string
	Loc     Location
}

func (f *FunctionType) Location() Location { return f.Loc }
func (f *FunctionType) typeTag()           {}

type ListTypeExpr struct {
	Element Type
	Loc     Location
}

func (l *ListTypeExpr) Location() Location { return l.Loc }
func (l *ListTypeExpr) typeTag()           {}

type TupleTypeExpr struct {
	Elements []Type
	Loc      Location
}

func (t *TupleTypeExpr) Location() Location { return t.Loc }
func (t *TupleTypeExpr) typeTag()           {}

type RecordFieldType struct {
	Name string
	Type Type
}

// RecordTypeExpr is `{name: T, ...}` or `{@name T, ...}`.
type RecordTypeExpr struct {
	Fields []RecordFieldType
	Loc    Location
}

func (r *RecordTypeExpr) Location() Location { return r.Loc }
func (r *RecordTypeExpr) typeTag()           {}

// UnionTypeExpr is an ordered set of alternative structural types,
// used on the right-hand side of a `type Name = A | B` declaration.
type UnionTypeExpr struct {
	Alternatives []Type
	Loc          Location
}

func (u *UnionTypeExpr) Location() Location { return u.Loc }
func (u *UnionTypeExpr) typeTag()           {}

// VariantTypeExpr is an uppercase type constructor with optional
// arguments: `Option a`, `Result e a`, or a bare `Bool`.
type VariantTypeExpr struct {
	Name string
	Args []Type
	Loc  Location
}

func (v *VariantTypeExpr) Location() Location { return v.Loc }
func (v *VariantTypeExpr) typeTag()           {}

type UnitTypeExpr struct {
	Loc Location
}

func (u *UnitTypeExpr) Location() Location { return u.Loc }
func (u *UnitTypeExpr) typeTag()           {}
