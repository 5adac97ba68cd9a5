package emit

import (
	"fmt"

	"pegc/internal/ast"
	"pegc/internal/template"
)

// emitRule renders one rule's parse_<name> method, wiring the packrat memo
// of spec §4.7 around the body produced by the expression emitter. The
// body is emitted at the rule's own base (result/pos index 0), so it
// writes its answer directly into result[0]; a rule's stack depths are
// already its expression's depths plus one (spec §4.3), which is exactly
// the slot count that placement needs, not an extra reserved slot.
func (e *emitter) emitRule(r *ast.Rule) (string, error) {
	bodyCtx := Context{ResultIndex: 0, PosIndex: 0}
	body, err := e.emit(r.Expr, bodyCtx)
	if err != nil {
		return "", fmt.Errorf("emit: rule %q: %w", r.Name, err)
	}

	failureReporting := ""
	enterReporting := ""
	if r.HasDisplay {
		expected := goLiteral(r.DisplayName)
		enterReporting = "p.reportFailures++\n"
		failureReporting, err = template.Format(
			"p.reportFailures--",
			"if p.reportFailures == 0 && result[0] == nil {",
			"    p.matchFailed(${expected})",
			"}",
			template.Vars{"expected": expected},
		)
		if err != nil {
			return "", err
		}
	}

	return template.Format(
		"func (p *parser) parse_${name}() interface{} {",
		"    startPos := p.pos",
		"    key := fmt.Sprintf(\"%s@%d\", ${nameLit}, startPos)",
		"    if entry, ok := p.memo[key]; ok {",
		"        p.pos = entry.nextPos",
		"        return entry.result",
		"    }",
		"",
		"    result := make([]interface{}, ${resultDepth})",
		"    pos := make([]int, ${posDepth})",
		"    _ = pos",
		"",
		"    ${enter}${body}",
		"    ${exit}",
		"",
		"    p.memo[key] = memoEntry{nextPos: p.pos, result: result[0]}",
		"    return result[0]",
		"}",
		"",
		template.Vars{
			"name":        r.Name,
			"nameLit":     goLiteral(r.Name),
			"resultDepth": fmt.Sprintf("%d", r.ResultStackDepth),
			"posDepth":    fmt.Sprintf("%d", r.PosStackDepth),
			"enter":       enterReporting,
			"body":        body,
			"exit":        failureReporting,
		},
	)
}
