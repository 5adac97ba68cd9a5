package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the grammar back to PEG-like source, annotated with the
// stack depths computed by the depth pass when they are non-zero. It is
// used by the REPL to show what the passes did to a grammar, not by the
// emitter, which walks the tree directly.
func (g *Grammar) String() string {
	var b strings.Builder
	if g.Init != nil {
		b.WriteString("{" + g.Init.Code + "}\n\n")
	}
	for _, r := range g.OrderedRules() {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.HasDisplay {
		b.WriteString(fmt.Sprintf(" %q", r.DisplayName))
	}
	b.WriteString(" = ")
	b.WriteString(printExpr(r.Expr))
	if r.ResultStackDepth > 0 || r.PosStackDepth > 0 {
		b.WriteString(fmt.Sprintf("  // result[%d] pos[%d]", r.ResultStackDepth, r.PosStackDepth))
	}
	return b.String()
}

func printExpr(e Expression) string {
	switch n := e.(type) {
	case *ChoiceExpr:
		parts := make([]string, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			parts[i] = printExpr(alt)
		}
		return strings.Join(parts, " / ")
	case *SeqExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = printExpr(el)
		}
		return strings.Join(parts, " ")
	case *LabeledExpr:
		return n.Label + ":" + printExpr(n.Expr)
	case *SimpleAndExpr:
		return "&" + printExpr(n.Expr)
	case *SimpleNotExpr:
		return "!" + printExpr(n.Expr)
	case *SemanticAndExpr:
		return "&{" + n.Code + "}"
	case *SemanticNotExpr:
		return "!{" + n.Code + "}"
	case *OptionalExpr:
		return printExpr(n.Expr) + "?"
	case *ZeroOrMoreExpr:
		return printExpr(n.Expr) + "*"
	case *OneOrMoreExpr:
		return printExpr(n.Expr) + "+"
	case *ActionExpr:
		return printExpr(n.Expr) + " {" + n.Code + "}"
	case *RuleRefExpr:
		return n.Name
	case *LiteralExpr:
		return strconv.Quote(n.Value)
	case *AnyExpr:
		return "."
	case *ClassExpr:
		return n.RawText
	default:
		return "?"
	}
}
