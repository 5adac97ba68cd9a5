package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegc/internal/ast"
)

func litRule(name string, value string) *ast.Rule {
	return &ast.Rule{Name: name, Expr: &ast.LiteralExpr{Value: value}}
}

func refRule(name, target string) *ast.Rule {
	return &ast.Rule{Name: name, Expr: &ast.RuleRefExpr{Name: target}}
}

func grammarOf(rules ...*ast.Rule) *ast.Grammar {
	g := &ast.Grammar{Rules: make(map[string]*ast.Rule)}
	for _, r := range rules {
		g.Rules[r.Name] = r
		g.RuleOrder = append(g.RuleOrder, r.Name)
	}
	g.StartRule = g.RuleOrder[0]
	return g
}

func TestProxyRulesInlinesReferences(t *testing.T) {
	g := grammarOf(
		refRule("start", "word"),
		litRule("word", "hello"),
	)

	ProxyRules(g)

	_, stillThere := g.Rules["start"]
	assert.False(t, stillThere)
	assert.Equal(t, "word", g.StartRule)

	word, ok := g.Rules["word"]
	require.True(t, ok)
	assert.Equal(t, "hello", word.Expr.(*ast.LiteralExpr).Value)
}

func TestProxyRulesRewritesInternalReferences(t *testing.T) {
	g := grammarOf(
		&ast.Rule{Name: "top", Expr: &ast.SeqExpr{Elements: []ast.Expression{
			&ast.RuleRefExpr{Name: "alias"},
			&ast.RuleRefExpr{Name: "alias"},
		}}},
		refRule("alias", "word"),
		litRule("word", "x"),
	)

	ProxyRules(g)

	_, aliasStillThere := g.Rules["alias"]
	assert.False(t, aliasStillThere)

	seq := g.Rules["top"].Expr.(*ast.SeqExpr)
	for _, el := range seq.Elements {
		assert.Equal(t, "word", el.(*ast.RuleRefExpr).Name)
	}
}

func TestProxyRulesLeavesNonProxyRulesAlone(t *testing.T) {
	g := grammarOf(litRule("start", "x"))
	ProxyRules(g)
	_, ok := g.Rules["start"]
	assert.True(t, ok)
}

func TestProxyRulesIgnoresSelfReferencingProxy(t *testing.T) {
	g := grammarOf(refRule("loop", "loop"))
	ProxyRules(g)
	_, ok := g.Rules["loop"]
	assert.True(t, ok, "a rule that only refers to itself is not eliminated")
}
