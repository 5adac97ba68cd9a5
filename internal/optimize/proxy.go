// Package optimize implements the two AST passes of spec §4.2 and §4.3:
// proxy-rule elimination and stack-depth annotation. Both mutate the
// *ast.Grammar they're given in place and return it, mirroring the
// teacher's own grammarOptimizer, which walks and rewrites an AST in
// place rather than building a new tree.
package optimize

import (
	"sort"

	"pegc/internal/ast"
)

// ProxyRules removes every rule whose body is exactly a rule_ref (a
// "proxy" rule per spec §4.2), rewriting all references to it to point at
// its target instead. It iterates the rule set once, in a deterministic
// (sorted) order; a chain of proxies may therefore need more than one
// call to fully collapse — spec §4.2's tie-break clause and §9's open
// question both allow this, and callers must not assume full collapse.
func ProxyRules(g *ast.Grammar) *ast.Grammar {
	names := make([]string, len(g.RuleOrder))
	copy(names, g.RuleOrder)
	sort.Strings(names)

	for _, name := range names {
		r, ok := g.Rules[name]
		if !ok {
			continue // already removed as another proxy's chain partner
		}
		ref, isProxy := r.Expr.(*ast.RuleRefExpr)
		if !isProxy || ref.Name == name {
			continue
		}
		target := ref.Name

		ast.RewriteGrammar(g, func(e ast.Expression) ast.Expression {
			if rr, ok := e.(*ast.RuleRefExpr); ok && rr.Name == name {
				rr.Name = target
			}
			return e
		})
		if g.StartRule == name {
			g.StartRule = target
		}
		g.RemoveRule(name)
	}
	return g
}
