// Package emit implements the tree-walking emitter of spec §4.5-§4.8: it
// turns an annotated *ast.Grammar into the Go source of a recursive
// descent, packrat-memoized parser. The expression emitter itself never
// mutates the AST; Compile first runs the optimizer passes, which do
// mutate the grammar in place. Compiling equal grammars produces
// byte-identical output (spec §8 invariant 6).
package emit

import "fmt"

// Options are the compile-time options of spec §6.1.
type Options struct {
	// StartRules restricts the rules exposed by the generated parser's
	// dispatch. Empty means expose every rule in the grammar.
	StartRules []string
	// SelfParsing omits the quote/escape/padLeft helpers from the
	// generated source; the caller guarantees they already exist in the
	// scope the generated file is compiled into.
	SelfParsing bool
	// Package names the package clause of the generated source.
	Package string
}

// NoStartRuleError is spec §7's NoStartRule: Options.StartRules names no
// rule present in the grammar.
type NoStartRuleError struct {
	Requested []string
}

func (e *NoStartRuleError) Error() string {
	return fmt.Sprintf("emit: no requested start rule found in grammar: %v", e.Requested)
}

// Context carries the slot-contract counters of spec §4.5: every handler
// must write its result into Result(0) and may use Result(k) for k >= 1
// and Pos(k) for k >= 0 (Pos(0) holds a saved entry position) as its own
// temporaries; a container node hands its children a
// Context shifted further out via Child so that nested temporaries never
// alias.
type Context struct {
	ResultIndex int
	PosIndex    int
	// Labels holds the label -> Go expression bindings currently visible
	// to a semantic predicate emitted at this context: the labeled
	// elements that precede it in every enclosing sequence, inner
	// sequences adding to the labels inherited from outer ones.
	Labels []LabelBinding
}

// LabelBinding pairs a label name with the Go expression that currently
// holds its value.
type LabelBinding struct {
	Name string
	Expr string
}

// Result returns the Go expression naming result slot resultIndex+k.
func (c Context) Result(k int) string { return fmt.Sprintf("result[%d]", c.ResultIndex+k) }

// R is shorthand for Result(0), the slot a handler must fill per the slot
// contract.
func (c Context) R() string { return c.Result(0) }

// Pos returns the Go expression naming position slot posIndex+k.
func (c Context) Pos(k int) string { return fmt.Sprintf("pos[%d]", c.PosIndex+k) }

// Child returns the context a container handler must use to emit a direct
// sub-expression, offsetting both slot counters so the child's own
// temporaries never alias the parent's.
func (c Context) Child(resultOffset, posOffset int) Context {
	return Context{
		ResultIndex: c.ResultIndex + resultOffset,
		PosIndex:    c.PosIndex + posOffset,
		Labels:      c.Labels,
	}
}

// WithLabels returns a copy of c scoped to a fresh label set, used when
// entering a node that starts a new label-visibility scope (spec §4.6).
func (c Context) WithLabels(labels []LabelBinding) Context {
	c.Labels = labels
	return c
}
