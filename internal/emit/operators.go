package emit

import (
	"fmt"
	"strings"

	"pegc/internal/ast"
	"pegc/internal/template"
)

// indent prefixes every line of s with one tab, for readability of the
// generated source; Go doesn't care about indentation, so this is purely
// cosmetic nesting to keep generated rule bodies legible.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "\t" + l
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) literal(n ast.Node, args ...any) (any, error) {
	lit := n.(*ast.LiteralExpr)
	ctx := args[0].(Context)

	if lit.Value == "" {
		return template.Format(`${r} = ""`, template.Vars{"r": ctx.R()})
	}

	src := goLiteral(lit.Value)
	expected := goLiteralOf(src)
	n64 := len([]rune(lit.Value))
	return template.Format(
		"if hasPrefix(p.input, p.pos, ${lit}) {",
		"    ${r} = ${lit}",
		"    p.pos += ${n}",
		"} else {",
		"    ${r} = nil",
		"    if p.reportFailures == 0 {",
		"        p.matchFailed(${expected})",
		"    }",
		"}",
		template.Vars{
			"lit":      src,
			"r":        ctx.R(),
			"n":        fmt.Sprintf("%d", n64),
			"expected": expected,
		},
	)
}

func (e *emitter) any(n ast.Node, args ...any) (any, error) {
	ctx := args[0].(Context)
	expected := goLiteral("any character")
	return template.Format(
		"if p.pos < len(p.input) {",
		"    ${r} = string(p.input[p.pos])",
		"    p.pos++",
		"} else {",
		"    ${r} = nil",
		"    if p.reportFailures == 0 {",
		"        p.matchFailed(${expected})",
		"    }",
		"}",
		template.Vars{"r": ctx.R(), "expected": expected},
	)
}

func (e *emitter) class(n ast.Node, args ...any) (any, error) {
	cls := n.(*ast.ClassExpr)
	ctx := args[0].(Context)

	parts := make([]string, 0, len(cls.Parts))
	for _, p := range cls.Parts {
		if p.IsRange {
			parts = append(parts, fmt.Sprintf("(ch >= %s && ch <= %s)", goRune(p.Lo), goRune(p.Hi)))
		} else {
			parts = append(parts, fmt.Sprintf("ch == %s", goRune(p.Char())))
		}
	}
	// An empty class ("[]", or its "[^]" inverted "match anything" idiom,
	// spec §4.6) has a condition that never mentions ch; binding ch for it
	// anyway would leave the emitted closure with an unused variable, so
	// those two cases skip the closure and use a bare boolean instead.
	var cond string
	switch {
	case len(parts) == 0 && cls.Inverted:
		cond = "true"
	case len(parts) == 0:
		cond = "false"
	default:
		joined := strings.Join(parts, " || ")
		if cls.Inverted {
			joined = "!(" + joined + ")"
		}
		cond = "func() bool { ch := p.input[p.pos]; return " + joined + " }()"
	}

	expected := goLiteral(cls.RawText)
	return template.Format(
		"if p.pos < len(p.input) && ${cond} {",
		"    ${r} = string(p.input[p.pos])",
		"    p.pos++",
		"} else {",
		"    ${r} = nil",
		"    if p.reportFailures == 0 {",
		"        p.matchFailed(${expected})",
		"    }",
		"}",
		template.Vars{"cond": cond, "r": ctx.R(), "expected": expected},
	)
}

func (e *emitter) ruleRef(n ast.Node, args ...any) (any, error) {
	ref := n.(*ast.RuleRefExpr)
	ctx := args[0].(Context)
	return template.Format(
		"${r} = p.parse_${name}()",
		template.Vars{"r": ctx.R(), "name": ref.Name},
	)
}

// sequence emits every element at its own non-overlapping result slot
// (spec §4.3's "i + child.result" recurrence) and a shared position slot,
// threading each labeled element's binding forward so a semantic
// predicate later in the same sequence can see it, mirroring the
// reference builder's argsStack scoping.
func (e *emitter) sequence(n ast.Node, args ...any) (any, error) {
	seq := n.(*ast.SeqExpr)
	ctx := args[0].(Context)

	elemResults := make([]string, len(seq.Elements))
	elemSnips := make([]string, len(seq.Elements))
	visible := append([]LabelBinding(nil), ctx.Labels...)
	for i, el := range seq.Elements {
		childCtx := ctx.Child(1+i, 1).WithLabels(visible)
		snip, err := e.emit(el, childCtx)
		if err != nil {
			return nil, err
		}
		elemSnips[i] = snip
		elemResults[i] = childCtx.R()
		if lab, ok := el.(*ast.LabeledExpr); ok {
			visible = append(visible, LabelBinding{Name: lab.Label, Expr: childCtx.R()})
		}
	}

	body := ctx.R() + " = []interface{}{" + strings.Join(elemResults, ", ") + "}\n"
	for i := len(seq.Elements) - 1; i >= 0; i-- {
		body = elemSnips[i] + "\n" +
			"if " + elemResults[i] + " != nil {\n" + indent(body) + "\n} else {\n" +
			indent(ctx.R()+" = nil\np.pos = "+ctx.Pos(0)) + "\n}\n"
	}
	return ctx.Pos(0) + " = p.pos\n" + body, nil
}

// choice tries each alternative in order at the exact same context: an
// alternative that fails has already restored pos per its own contract,
// so choice itself needs no bookkeeping of its own (spec §4.6).
func (e *emitter) choice(n ast.Node, args ...any) (any, error) {
	ch := n.(*ast.ChoiceExpr)
	ctx := args[0].(Context)

	var b strings.Builder
	for i, alt := range ch.Alternatives {
		snip, err := e.emit(alt, ctx)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			b.WriteString(snip + "\n")
			continue
		}
		b.WriteString("if " + ctx.R() + " == nil {\n" + indent(snip) + "\n}\n")
	}
	return b.String(), nil
}

func (e *emitter) labeled(n ast.Node, args ...any) (any, error) {
	lab := n.(*ast.LabeledExpr)
	ctx := args[0].(Context)
	return e.emit(lab.Expr, ctx)
}

func (e *emitter) optional(n ast.Node, args ...any) (any, error) {
	opt := n.(*ast.OptionalExpr)
	ctx := args[0].(Context)
	snip, err := e.emit(opt.Expr, ctx)
	if err != nil {
		return nil, err
	}
	return snip + "\n" + "if " + ctx.R() + " == nil {\n" + indent(ctx.R()+` = ""`) + "\n}\n", nil
}

func (e *emitter) zeroOrMore(n ast.Node, args ...any) (any, error) {
	z := n.(*ast.ZeroOrMoreExpr)
	ctx := args[0].(Context)
	childCtx := ctx.Child(1, 0)
	snip, err := e.emit(z.Expr, childCtx)
	if err != nil {
		return nil, err
	}
	acc := fmt.Sprintf("acc%d", ctx.ResultIndex)
	return acc + " := []interface{}{}\n" +
		"for {\n" + indent(snip) + "\n" +
		indent("if "+childCtx.R()+" == nil {\n\tbreak\n}") + "\n" +
		indent(acc+" = append("+acc+", "+childCtx.R()+")") + "\n" +
		"}\n" +
		ctx.R() + " = " + acc + "\n", nil
}

func (e *emitter) oneOrMore(n ast.Node, args ...any) (any, error) {
	o := n.(*ast.OneOrMoreExpr)
	ctx := args[0].(Context)
	childCtx := ctx.Child(1, 0)
	snip, err := e.emit(o.Expr, childCtx)
	if err != nil {
		return nil, err
	}
	acc := fmt.Sprintf("acc%d", ctx.ResultIndex)
	return acc + " := []interface{}{}\n" +
		"for {\n" + indent(snip) + "\n" +
		indent("if "+childCtx.R()+" == nil {\n\tbreak\n}") + "\n" +
		indent(acc+" = append("+acc+", "+childCtx.R()+")") + "\n" +
		"}\n" +
		"if len(" + acc + ") > 0 {\n" +
		indent(ctx.R()+" = "+acc) + "\n} else {\n" +
		indent(ctx.R()+" = nil") + "\n}\n", nil
}

func (e *emitter) simpleAnd(n ast.Node, args ...any) (any, error) {
	sa := n.(*ast.SimpleAndExpr)
	ctx := args[0].(Context)
	childCtx := ctx.Child(0, 1)

	p0 := ctx.Pos(0)
	snip, err := e.emit(sa.Expr, childCtx)
	if err != nil {
		return nil, err
	}
	return p0 + " = p.pos\n" +
		"p.reportFailures++\n" +
		snip + "\n" +
		"p.reportFailures--\n" +
		"p.pos = " + p0 + "\n" +
		"if " + childCtx.R() + " != nil {\n" +
		indent(ctx.R()+` = ""`) + "\n} else {\n" +
		indent(ctx.R()+" = nil") + "\n}\n", nil
}

func (e *emitter) simpleNot(n ast.Node, args ...any) (any, error) {
	sn := n.(*ast.SimpleNotExpr)
	ctx := args[0].(Context)
	childCtx := ctx.Child(0, 1)

	p0 := ctx.Pos(0)
	snip, err := e.emit(sn.Expr, childCtx)
	if err != nil {
		return nil, err
	}
	return p0 + " = p.pos\n" +
		"p.reportFailures++\n" +
		snip + "\n" +
		"p.reportFailures--\n" +
		"p.pos = " + p0 + "\n" +
		"if " + childCtx.R() + " == nil {\n" +
		indent(ctx.R()+` = ""`) + "\n} else {\n" +
		indent(ctx.R()+" = nil") + "\n}\n", nil
}

func bindLabels(labels []LabelBinding) string {
	lines := make([]string, len(labels))
	for i, l := range labels {
		lines[i] = l.Name + " := " + l.Expr
	}
	return strings.Join(lines, "\n")
}

func (e *emitter) semanticAnd(n ast.Node, args ...any) (any, error) {
	sp := n.(*ast.SemanticAndExpr)
	ctx := args[0].(Context)
	binds := bindLabels(ctx.Labels)
	return "if func() bool {\n" +
		indent(binds) + "\n" +
		indent(sp.Code) + "\n" +
		"}() {\n" +
		indent(ctx.R()+` = ""`) + "\n} else {\n" +
		indent(ctx.R()+" = nil") + "\n}\n", nil
}

func (e *emitter) semanticNot(n ast.Node, args ...any) (any, error) {
	sp := n.(*ast.SemanticNotExpr)
	ctx := args[0].(Context)
	binds := bindLabels(ctx.Labels)
	return "if func() bool {\n" +
		indent(binds) + "\n" +
		indent(sp.Code) + "\n" +
		"}() {\n" +
		indent(ctx.R()+" = nil") + "\n} else {\n" +
		indent(ctx.R()+` = ""`) + "\n}\n", nil
}

// action runs Code once its wrapped expression matches, binding the
// labels spec §4.6 says are visible to it, and backtracks like a failed
// match when Code returns nil.
func (e *emitter) action(n ast.Node, args ...any) (any, error) {
	act := n.(*ast.ActionExpr)
	ctx := args[0].(Context)
	childCtx := ctx.Child(0, 1)

	snip, err := e.emit(act.Expr, childCtx)
	if err != nil {
		return nil, err
	}

	slots := actionLabels(act.Expr)
	binds := make([]string, len(slots))
	for i, s := range slots {
		expr := childCtx.R()
		if s.FromSeq {
			expr = fmt.Sprintf("%s.([]interface{})[%d]", childCtx.R(), s.Index)
		}
		binds[i] = s.Name + " := " + expr
	}

	call := ctx.R() + " = func() interface{} {\n" +
		indent(strings.Join(binds, "\n")) + "\n" +
		indent(act.Code) + "\n" +
		"}()\n"

	p0 := ctx.Pos(0)
	return p0 + " = p.pos\n" +
		snip + "\n" +
		"if " + childCtx.R() + " != nil {\n" +
		indent(call) + "\n} else {\n" +
		indent(ctx.R()+" = nil") + "\n}\n" +
		"if " + ctx.R() + " == nil {\n" +
		indent("p.pos = "+p0) + "\n}\n", nil
}
