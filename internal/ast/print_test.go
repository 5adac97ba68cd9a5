package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintExprRendersEachOperatorShape(t *testing.T) {
	cases := []struct {
		name string
		expr Expression
		want string
	}{
		{"literal", &LiteralExpr{Value: "hi"}, `"hi"`},
		{"any", &AnyExpr{}, "."},
		{"class", &ClassExpr{RawText: "[a-z]"}, "[a-z]"},
		{"ruleRef", &RuleRefExpr{Name: "word"}, "word"},
		{"optional", &OptionalExpr{Expr: &LiteralExpr{Value: "a"}}, `"a"?`},
		{"zeroOrMore", &ZeroOrMoreExpr{Expr: &LiteralExpr{Value: "a"}}, `"a"*`},
		{"oneOrMore", &OneOrMoreExpr{Expr: &LiteralExpr{Value: "a"}}, `"a"+`},
		{"simpleAnd", &SimpleAndExpr{Expr: &LiteralExpr{Value: "a"}}, `&"a"`},
		{"simpleNot", &SimpleNotExpr{Expr: &LiteralExpr{Value: "a"}}, `!"a"`},
		{"semanticAnd", &SemanticAndExpr{Code: "x > 0"}, "&{x > 0}"},
		{"semanticNot", &SemanticNotExpr{Code: "x < 0"}, "!{x < 0}"},
		{"labeled", &LabeledExpr{Label: "x", Expr: &LiteralExpr{Value: "a"}}, `x:"a"`},
		{"action", &ActionExpr{Expr: &LiteralExpr{Value: "a"}, Code: "return x"}, `"a" {return x}`},
		{
			"choice",
			&ChoiceExpr{Alternatives: []Expression{&LiteralExpr{Value: "a"}, &LiteralExpr{Value: "b"}}},
			`"a" / "b"`,
		},
		{
			"sequence",
			&SeqExpr{Elements: []Expression{&LiteralExpr{Value: "a"}, &LiteralExpr{Value: "b"}}},
			`"a" "b"`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, printExpr(c.expr))
		})
	}
}

func TestRuleStringWithoutDisplayNameOrDepths(t *testing.T) {
	r := &Rule{Name: "start", Expr: &LiteralExpr{Value: "x"}}
	assert.Equal(t, `start = "x"`, r.String())
}

func TestRuleStringIncludesDisplayName(t *testing.T) {
	r := &Rule{Name: "word", HasDisplay: true, DisplayName: "a word", Expr: &LiteralExpr{Value: "x"}}
	assert.Equal(t, `word "a word" = "x"`, r.String())
}

func TestRuleStringAnnotatesStackDepthsWhenPresent(t *testing.T) {
	r := &Rule{Name: "start", Expr: &LiteralExpr{Value: "x"}, ResultStackDepth: 2, PosStackDepth: 1}
	assert.Equal(t, `start = "x"  // result[2] pos[1]`, r.String())
}

func TestGrammarStringJoinsRulesAndInitializer(t *testing.T) {
	g := &Grammar{
		Init: &Initializer{Code: "var count = 0"},
		Rules: map[string]*Rule{
			"start": {Name: "start", Expr: &RuleRefExpr{Name: "word"}},
			"word":  {Name: "word", Expr: &LiteralExpr{Value: "hi"}},
		},
		RuleOrder: []string{"start", "word"},
	}
	want := "{var count = 0}\n\nstart = word\nword = \"hi\""
	assert.Equal(t, want, g.String())
}

func TestGrammarStringWithoutInitializer(t *testing.T) {
	g := &Grammar{
		Rules:     map[string]*Rule{"start": {Name: "start", Expr: &LiteralExpr{Value: "x"}}},
		RuleOrder: []string{"start"},
	}
	assert.Equal(t, `start = "x"`, g.String())
}
