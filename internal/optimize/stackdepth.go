package optimize

import "pegc/internal/ast"

// StackDepths annotates every node in g with the resultStackDepth and
// posStackDepth of spec §4.3, so the emitter can size each generated
// rule's slot arrays without a second traversal. Depths are computed
// bottom-up in a single walk per rule.
func StackDepths(g *ast.Grammar) *ast.Grammar {
	for _, name := range g.RuleOrder {
		r, ok := g.Rules[name]
		if !ok {
			continue
		}
		exprResult, exprPos := depths(r.Expr)
		r.ResultStackDepth = exprResult + 1
		r.PosStackDepth = exprPos + 1
	}
	return g
}

// depths computes and records (result, pos) for e and everything beneath
// it, following the recurrence table of spec §4.3.
func depths(e ast.Expression) (result, pos int) {
	switch n := e.(type) {
	case *ast.RuleRefExpr, *ast.LiteralExpr, *ast.AnyExpr, *ast.ClassExpr,
		*ast.SemanticAndExpr, *ast.SemanticNotExpr:
		result, pos = 0, 0

	case *ast.LabeledExpr:
		result, pos = depths(n.Expr)

	case *ast.OptionalExpr:
		result, pos = depths(n.Expr)

	case *ast.SimpleAndExpr:
		cr, cp := depths(n.Expr)
		result, pos = cr, cp+1

	case *ast.SimpleNotExpr:
		cr, cp := depths(n.Expr)
		result, pos = cr, cp+1

	case *ast.ActionExpr:
		cr, cp := depths(n.Expr)
		result, pos = cr, cp+1

	case *ast.ZeroOrMoreExpr:
		cr, cp := depths(n.Expr)
		result, pos = cr+1, cp

	case *ast.OneOrMoreExpr:
		cr, cp := depths(n.Expr)
		result, pos = cr+1, cp

	case *ast.ChoiceExpr:
		for _, alt := range n.Alternatives {
			cr, cp := depths(alt)
			if cr > result {
				result = cr
			}
			if cp > pos {
				pos = cp
			}
		}

	case *ast.SeqExpr:
		maxResult, maxPos := 0, 0
		for i, el := range n.Elements {
			cr, cp := depths(el)
			if i+cr > maxResult {
				maxResult = i + cr
			}
			if cp > maxPos {
				maxPos = cp
			}
		}
		result, pos = 1+maxResult, 1+maxPos

	default:
		panic("optimize: StackDepths: unknown expression type")
	}

	e.SetDepths(result, pos)
	return result, pos
}
