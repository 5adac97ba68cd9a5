package ast

// Rewrite replaces e's children with the result of applying fn to each of
// them, recursively, and returns fn(e). fn is expected to mutate nodes it
// wants to change in place and return them unchanged, or to return a
// replacement node; leaf nodes are passed through fn with no children to
// recurse into. This is the generic traversal spec §4.1 calls for: the
// proxy-elimination pass (`optimize.ProxyRules`) is built directly on it
// to rewrite every `rule_ref` pointing at an eliminated proxy.
func Rewrite(e Expression, fn func(Expression) Expression) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ChoiceExpr:
		for i, alt := range n.Alternatives {
			n.Alternatives[i] = Rewrite(alt, fn)
		}
	case *SeqExpr:
		for i, el := range n.Elements {
			n.Elements[i] = Rewrite(el, fn)
		}
	case *LabeledExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *SimpleAndExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *SimpleNotExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *OptionalExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *ZeroOrMoreExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *OneOrMoreExpr:
		n.Expr = Rewrite(n.Expr, fn)
	case *ActionExpr:
		n.Expr = Rewrite(n.Expr, fn)
	}
	return fn(e)
}

// RewriteGrammar applies Rewrite to every rule body in g, in place.
func RewriteGrammar(g *Grammar, fn func(Expression) Expression) {
	for _, name := range g.RuleOrder {
		if r, ok := g.Rules[name]; ok {
			r.Expr = Rewrite(r.Expr, fn)
		}
	}
}
