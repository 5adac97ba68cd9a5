package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegc/internal/ast"
)

func TestLiteralEmitsPrefixCheck(t *testing.T) {
	e := newEmitter()
	lit := &ast.LiteralExpr{Value: "foo"}
	out, err := e.emit(lit, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, `hasPrefix(p.input, p.pos, "foo")`)
	assert.Contains(t, out, "p.pos += 3")
	assert.Contains(t, out, `p.matchFailed("\"foo\"")`)
}

func TestLiteralEmptyStringAlwaysMatches(t *testing.T) {
	e := newEmitter()
	lit := &ast.LiteralExpr{Value: ""}
	out, err := e.emit(lit, Context{})
	require.NoError(t, err)
	assert.Equal(t, `result[0] = ""`, out)
}

func TestAnyEmitsBoundsCheck(t *testing.T) {
	e := newEmitter()
	out, err := e.emit(&ast.AnyExpr{}, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "p.pos < len(p.input)")
	assert.Contains(t, out, "p.pos++")
}

func TestClassEmitsRangeAndSingleCharConditions(t *testing.T) {
	e := newEmitter()
	cls := &ast.ClassExpr{
		Parts:   []ast.ClassPart{{IsRange: true, Lo: 'a', Hi: 'z'}, {Lo: '_'}},
		RawText: "[a-z_]",
	}
	out, err := e.emit(cls, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "ch >= 'a' && ch <= 'z'")
	assert.Contains(t, out, "ch == '_'")
	assert.Contains(t, out, `p.matchFailed("[a-z_]")`)
}

func TestClassInvertedWrapsCondition(t *testing.T) {
	e := newEmitter()
	cls := &ast.ClassExpr{
		Parts:    []ast.ClassPart{{Lo: 'a'}},
		Inverted: true,
		RawText:  "[^a]",
	}
	out, err := e.emit(cls, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "!(ch == 'a')")
}

func TestClassEmptyNeverMatchesWithoutBindingCh(t *testing.T) {
	e := newEmitter()
	cls := &ast.ClassExpr{RawText: "[]"}
	out, err := e.emit(cls, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "if p.pos < len(p.input) && false {")
	assert.NotContains(t, out, "ch :=")
}

func TestClassEmptyInvertedMatchesAnyCharWithoutBindingCh(t *testing.T) {
	e := newEmitter()
	cls := &ast.ClassExpr{Inverted: true, RawText: "[^]"}
	out, err := e.emit(cls, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "if p.pos < len(p.input) && true {")
	assert.NotContains(t, out, "ch :=")
}

func TestRuleRefCallsParseMethod(t *testing.T) {
	e := newEmitter()
	out, err := e.emit(&ast.RuleRefExpr{Name: "word"}, Context{})
	require.NoError(t, err)
	assert.Equal(t, "result[0] = p.parse_word()", out)
}

func TestSequenceOffsetsElementSlotsByPosition(t *testing.T) {
	e := newEmitter()
	seq := &ast.SeqExpr{Elements: []ast.Expression{
		&ast.LiteralExpr{Value: "a"},
		&ast.LiteralExpr{Value: "b"},
	}}
	out, err := e.emit(seq, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "result[1]")
	assert.Contains(t, out, "result[2]")
	assert.Contains(t, out, "pos[0] = p.pos")
	assert.Contains(t, out, "p.pos = pos[0]")
}

func TestChoiceTriesEachAlternativeAtSameContext(t *testing.T) {
	e := newEmitter()
	ch := &ast.ChoiceExpr{Alternatives: []ast.Expression{
		&ast.LiteralExpr{Value: "a"},
		&ast.LiteralExpr{Value: "b"},
	}}
	out, err := e.emit(ch, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, `hasPrefix(p.input, p.pos, "a")`)
	assert.Contains(t, out, `hasPrefix(p.input, p.pos, "b")`)
	assert.Contains(t, out, "if result[0] == nil {")
}

func TestOptionalDefaultsToEmptyStringOnMiss(t *testing.T) {
	e := newEmitter()
	opt := &ast.OptionalExpr{Expr: &ast.LiteralExpr{Value: "a"}}
	out, err := e.emit(opt, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, `result[0] = ""`)
}

func TestZeroOrMoreAccumulatesAndNeverFails(t *testing.T) {
	e := newEmitter()
	z := &ast.ZeroOrMoreExpr{Expr: &ast.LiteralExpr{Value: "a"}}
	out, err := e.emit(z, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "acc0 := []interface{}{}")
	assert.Contains(t, out, "for {")
	assert.Contains(t, out, "result[0] = acc0")
	assert.NotContains(t, out, "len(acc0) > 0")
}

func TestOneOrMoreFailsWhenAccumulatorEmpty(t *testing.T) {
	e := newEmitter()
	o := &ast.OneOrMoreExpr{Expr: &ast.LiteralExpr{Value: "a"}}
	out, err := e.emit(o, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "if len(acc0) > 0 {")
}

func TestSimpleAndRestoresPositionRegardless(t *testing.T) {
	e := newEmitter()
	sa := &ast.SimpleAndExpr{Expr: &ast.LiteralExpr{Value: "a"}}
	out, err := e.emit(sa, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "p.reportFailures++")
	assert.Contains(t, out, "p.reportFailures--")
	assert.Contains(t, out, "p.pos = pos[0]")
}

func TestSimpleNotInvertsMatchOutcome(t *testing.T) {
	e := newEmitter()
	sn := &ast.SimpleNotExpr{Expr: &ast.LiteralExpr{Value: "a"}}
	out, err := e.emit(sn, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, `if result[0] == nil {`)
}

func TestSemanticAndBindsVisibleLabels(t *testing.T) {
	e := newEmitter()
	pred := &ast.SemanticAndExpr{Code: "return x > 0"}
	ctx := Context{Labels: []LabelBinding{{Name: "x", Expr: "result[0]"}}}
	out, err := e.emit(pred, ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "x := result[0]")
	assert.Contains(t, out, "return x > 0")
}

func TestActionExtractsLabelsPositionallyFromSequence(t *testing.T) {
	e := newEmitter()
	act := &ast.ActionExpr{
		Expr: &ast.SeqExpr{Elements: []ast.Expression{
			&ast.LabeledExpr{Label: "a", Expr: &ast.LiteralExpr{Value: "x"}},
			&ast.LabeledExpr{Label: "b", Expr: &ast.LiteralExpr{Value: "y"}},
		}},
		Code: "return a",
	}
	out, err := e.emit(act, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "a := result[0].([]interface{})[0]")
	assert.Contains(t, out, "b := result[0].([]interface{})[1]")
	assert.Contains(t, out, "return a")
}

func TestActionOnBareLabelBindsWholeValue(t *testing.T) {
	e := newEmitter()
	act := &ast.ActionExpr{
		Expr: &ast.LabeledExpr{Label: "v", Expr: &ast.LiteralExpr{Value: "x"}},
		Code: "return v",
	}
	out, err := e.emit(act, Context{})
	require.NoError(t, err)
	assert.Contains(t, out, "v := result[0]")
}
