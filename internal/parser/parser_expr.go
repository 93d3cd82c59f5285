package parser

import (
	"github.com/thrush-lang/thrush/internal/ast"
	"github.com/thrush-lang/thrush/internal/combinator"
	"github.com/thrush-lang/thrush/internal/lexer"
)

// expr is the full expression grammar, precedence level 2 downward
// (level 1, the top-level ';' sequence, lives in program()).
func expr() combinator.Parser {
	return combinator.Lazy(func() combinator.Parser { return thrushExpr() })
}

// thrushExpr: `|` and `$` (left-assoc). `a | f` means `f a`;
// `f $ a` means `f a`.
func thrushExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		leftR := pipelineExpr()(toks)
		if leftR.Err != nil {
			return leftR
		}
		left := leftR.Value.(ast.Expr)
		remaining := leftR.Remaining
		for {
			if opR := combinator.Operator("|")(remaining); opR.Err == nil {
				rhsR := pipelineExpr()(opR.Remaining)
				if rhsR.Err != nil {
					return rhsR
				}
				rhs := rhsR.Value.(ast.Expr)
				left = &ast.Application{Func: rhs, Args: []ast.Expr{left}, Loc: ast.Location{Start: left.Location().Start, End: rhs.Location().End}}
				remaining = rhsR.Remaining
				continue
			}
			if opR := combinator.Operator("$")(remaining); opR.Err == nil {
				rhsR := pipelineExpr()(opR.Remaining)
				if rhsR.Err != nil {
					return rhsR
				}
				rhs := rhsR.Value.(ast.Expr)
				left = &ast.Application{Func: left, Args: []ast.Expr{rhs}, Loc: ast.Location{Start: left.Location().Start, End: rhs.Location().End}}
				remaining = rhsR.Remaining
				continue
			}
			break
		}
		return combinator.Result{Value: left, Remaining: remaining}
	}
}

// pipelineExpr: `|>` (left-assoc), composes left-to-right.
func pipelineExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		firstR := comparisonExpr()(toks)
		if firstR.Err != nil {
			return firstR
		}
		steps := []ast.Expr{firstR.Value.(ast.Expr)}
		remaining := firstR.Remaining
		for {
			opR := combinator.Operator("|>")(remaining)
			if opR.Err != nil {
				break
			}
			nextR := comparisonExpr()(opR.Remaining)
			if nextR.Err != nil {
				return nextR
			}
			steps = append(steps, nextR.Value.(ast.Expr))
			remaining = nextR.Remaining
		}
		if len(steps) == 1 {
			return combinator.Result{Value: steps[0], Remaining: remaining}
		}
		return combinator.Result{
			Value:     &ast.Pipeline{Steps: steps, Loc: ast.Location{Start: steps[0].Location().Start, End: steps[len(steps)-1].Location().End}},
			Remaining: remaining,
		}
	}
}

var comparisonOps = []string{"==", "!=", "<=", ">=", "<", ">"}

// comparisonExpr: `== != < > <= >=` (non-chained; left-assoc).
func comparisonExpr() combinator.Parser {
	return leftAssocBinary(additiveExpr, comparisonOps)
}

var additiveOps = []string{"+", "-"}

// additiveExpr: `+ -` (left-assoc).
func additiveExpr() combinator.Parser {
	return leftAssocBinary(multiplicativeExpr, additiveOps)
}

var multiplicativeOps = []string{"*", "/", "%"}

// multiplicativeExpr: `* / %` (left-assoc), with the unary-minus
// literal desugaring as its operand.
func multiplicativeExpr() combinator.Parser {
	return leftAssocBinary(unaryMinusExpr, multiplicativeOps)
}

// leftAssocBinary builds a left-associative chain of `operand (op
// operand)*`, trying operators longest-string-first per level.
func leftAssocBinary(operand func() combinator.Parser, ops []string) combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		leftR := operand()(toks)
		if leftR.Err != nil {
			return leftR
		}
		left := leftR.Value.(ast.Expr)
		remaining := leftR.Remaining
		for {
			matched := ""
			var afterOp []lexer.Token
			for _, op := range ops {
				opR := combinator.Operator(op)(remaining)
				if opR.Err == nil {
					matched = op
					afterOp = opR.Remaining
					break
				}
			}
			if matched == "" {
				break
			}
			rightR := operand()(afterOp)
			if rightR.Err != nil {
				return rightR
			}
			right := rightR.Value.(ast.Expr)
			left = &ast.Binary{Operator: matched, Left: left, Right: right, Loc: ast.Location{Start: left.Location().Start, End: right.Location().End}}
			remaining = rightR.Remaining
		}
		return combinator.Result{Value: left, Remaining: remaining}
	}
}

// unaryMinusExpr desugars `-N` (a '-' directly followed by a numeric
// literal) into `binary('*', literal(-1), literal(N))`. A '-' not
// immediately followed by a number falls through to application.
func unaryMinusExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		minusR := combinator.Operator("-")(toks)
		if minusR.Err == nil {
			if numR := combinator.Number()(minusR.Remaining); numR.Err == nil {
				minus := minusR.Value.(lexer.Token)
				num := numR.Value.(lexer.Token)
				negOne := &ast.Literal{Kind: ast.NumberLiteral, Value: "-1", Loc: minus.Loc}
				lit := &ast.Literal{Kind: ast.NumberLiteral, Value: num.Value, Loc: num.Loc}
				return combinator.Result{
					Value:     &ast.Binary{Operator: "*", Left: negOne, Right: lit, Loc: ast.Location{Start: minus.Loc.Start, End: num.Loc.End}},
					Remaining: numR.Remaining,
				}
			}
		}
		return applicationExpr()(toks)
	}
}

// applicationExpr: juxtaposition, left-assoc, tightest of the
// algebraic operators: `f a b` means `((f a) b)`.
func applicationExpr() combinator.Parser {
	return func(toks []lexer.Token) combinator.Result {
		headR := primaryExpr()(toks)
		if headR.Err != nil {
			return headR
		}
		head := headR.Value.(ast.Expr)
		remaining := headR.Remaining
		var args []ast.Expr
		for {
			save := remaining
			argR := primaryExpr()(remaining)
			if argR.Err != nil {
				remaining = save
				break
			}
			args = append(args, argR.Value.(ast.Expr))
			remaining = argR.Remaining
		}
		if len(args) == 0 {
			return combinator.Result{Value: head, Remaining: remaining}
		}
		return combinator.Result{
			Value:     &ast.Application{Func: head, Args: args, Loc: ast.Location{Start: head.Location().Start, End: args[len(args)-1].Location().End}},
			Remaining: remaining,
		}
	}
}
