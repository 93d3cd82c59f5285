package types

import (
	"fmt"
	"strings"

	"github.com/thrush-lang/thrush/internal/ast"
)

// Decorated is the type-engine's overlay tree: one node per ast.Expr
// node it was built from, carrying that node's final inferred Type
// alongside children decorated the same way. It is built as a
// parallel structure rather than by mutating ast.Expr in place, so the
// parser's output stays immutable and reusable across re-typechecking
// (adapted from the teacher's internal/typedast split from internal/ast).
type Decorated struct {
	Source   ast.Expr
	Type     Type
	Children []*Decorated
}

func decorate(src ast.Expr, t Type, children ...*Decorated) *Decorated {
	return &Decorated{Source: src, Type: t, Children: children}
}

// String renders one node as "<kind> : <type>" with indented children,
// the `:dump-typed` shape (adapted from the teacher's
// TypedNode.String()/PrintTypedProgram family, which walked a
// core.CoreExpr-backed tree this repo has no equivalent of).
func (d *Decorated) String() string {
	var b strings.Builder
	d.write(&b, "")
	return strings.TrimRight(b.String(), "\n")
}

func (d *Decorated) write(b *strings.Builder, indent string) {
	fmt.Fprintf(b, "%s%s : %s\n", indent, exprKind(d.Source), d.Type)
	for _, c := range d.Children {
		c.write(b, indent+"  ")
	}
}

func exprKind(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Literal:
		return fmt.Sprintf("Literal(%s)", v.Value)
	case *ast.Variable:
		return fmt.Sprintf("Variable(%s)", v.Name)
	case *ast.Function:
		return fmt.Sprintf("Function(%s)", strings.Join(v.Params, ", "))
	case *ast.Application:
		return "Application"
	case *ast.Binary:
		return fmt.Sprintf("Binary(%s)", v.Operator)
	case *ast.Pipeline:
		return "Pipeline"
	case *ast.If:
		return "If"
	case *ast.List:
		return "List"
	case *ast.Tuple:
		return "Tuple"
	case *ast.Record:
		return "Record"
	case *ast.Accessor:
		return fmt.Sprintf("Accessor(@%s)", v.Field)
	case *ast.Unit:
		return "Unit"
	case *ast.Definition:
		return fmt.Sprintf("Definition(%s)", v.Name)
	case *ast.MutableDefinition:
		return fmt.Sprintf("MutableDefinition(%s)", v.Name)
	case *ast.Mutation:
		return fmt.Sprintf("Mutation(%s)", v.Name)
	case *ast.Where:
		return "Where"
	case *ast.Match:
		return "Match"
	default:
		return fmt.Sprintf("%T", e)
	}
}
