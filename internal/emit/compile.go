package emit

import (
	"sort"
	"strconv"
	"strings"

	"pegc/internal/ast"
	"pegc/internal/optimize"
)

// Compile runs the optimizer pipeline (spec §4.2, §4.3) over g and emits
// the Go source of the parser it describes. g is mutated in place by the
// optimizer passes, matching their own documented behavior.
func Compile(g *ast.Grammar, opts Options) (string, error) {
	optimize.ProxyRules(g)
	optimize.StackDepths(g)

	starts, err := resolveStartRules(g, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writePreamble(&b, g, opts)
	writeRuntime(&b, opts)

	e := newEmitter()
	for _, r := range g.OrderedRules() {
		src, err := e.emitRule(r)
		if err != nil {
			return "", err
		}
		b.WriteString(src)
		b.WriteString("\n")
	}

	if err := writeDispatch(&b, g, starts); err != nil {
		return "", err
	}

	writeSourceMethod(&b, b.String())

	return b.String(), nil
}

// writeSourceMethod appends the toSource() method spec §6.1 requires of
// the emitted parser value, alongside parse(input, startRule?). body is
// everything emitted before this point (preamble, runtime, rules,
// dispatch); toSource returns that text verbatim as a package-level
// string constant, since Go has no built-in way for a running program to
// recover its own compiled source.
func writeSourceMethod(b *strings.Builder, body string) {
	b.WriteString("\nvar generatedSource = ")
	b.WriteString(quoteGoSource(body))
	b.WriteString("\n\n")
	b.WriteString("// toSource returns the parser's own generated Go source.\n")
	b.WriteString("func (p *parser) toSource() string { return generatedSource }\n")
}

// quoteGoSource renders s as a Go string literal, preferring a raw
// backtick string for readability and falling back to an escaped literal
// only when s itself contains a backtick (possible if a grammar's action
// code does).
func quoteGoSource(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

// resolveStartRules validates Options.StartRules against g's rule set and
// returns the (deterministically ordered) set of rule names the generated
// Parse method's dispatch will expose, per spec §6.1. An empty
// Options.StartRules exposes every rule in the grammar.
func resolveStartRules(g *ast.Grammar, opts Options) ([]string, error) {
	if len(opts.StartRules) == 0 {
		all := make([]string, len(g.RuleOrder))
		copy(all, g.RuleOrder)
		sort.Strings(all)
		return all, nil
	}

	var found []string
	for _, name := range opts.StartRules {
		if _, ok := g.Rules[name]; ok {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return nil, &NoStartRuleError{Requested: opts.StartRules}
	}
	sort.Strings(found)
	return found, nil
}
