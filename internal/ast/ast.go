// Package ast defines the abstract syntax tree for a PEG grammar: the tagged
// node variants of spec §3, plus the generic dispatch and traversal
// machinery of §4.1 that the optimizer passes and the emitter build on.
package ast

import "fmt"

// Position is a 1-based line/column plus a 0-based byte offset into the
// grammar source that produced a node. The front end fills it in and
// uses it in its own error messages; the optimizer and emitter never
// read it.
type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// NodeType is the tag discriminator described in spec §3.1 and §4.1.
type NodeType string

const (
	GrammarType     NodeType = "grammar"
	InitializerType NodeType = "initializer"
	RuleType        NodeType = "rule"
	ChoiceType      NodeType = "choice"
	SequenceType    NodeType = "sequence"
	LabeledType     NodeType = "labeled"
	SimpleAndType   NodeType = "simple_and"
	SimpleNotType   NodeType = "simple_not"
	SemanticAndType NodeType = "semantic_and"
	SemanticNotType NodeType = "semantic_not"
	OptionalType    NodeType = "optional"
	ZeroOrMoreType  NodeType = "zero_or_more"
	OneOrMoreType   NodeType = "one_or_more"
	ActionType      NodeType = "action"
	RuleRefType     NodeType = "rule_ref"
	LiteralType     NodeType = "literal"
	AnyType         NodeType = "any"
	ClassType       NodeType = "class"
)

// Node is implemented by every tagged AST node, expression or not.
type Node interface {
	Type() NodeType
}

// Expression is implemented by all expression node variants (spec §3.1).
// Every expression carries the two-tiered stack depths computed by the
// stack-depth annotation pass (spec §4.3); before that pass runs they are
// zero.
type Expression interface {
	Node
	Pos() Position
	Depths() (result, pos int)
	SetDepths(result, pos int)
}

// exprBase is embedded by every expression variant. It plays the role the
// teacher's posValue struct plays for pigeon-style AST nodes: a single
// place that carries position and (here) the annotated stack depths.
type exprBase struct {
	P           Position
	ResultDepth int
	PosDepth    int
}

func (b *exprBase) Pos() Position { return b.P }

func (b *exprBase) Depths() (int, int) { return b.ResultDepth, b.PosDepth }

func (b *exprBase) SetDepths(result, pos int) {
	b.ResultDepth = result
	b.PosDepth = pos
}

// Grammar is the top-level AST node (spec §3.1).
type Grammar struct {
	Init      *Initializer
	StartRule string
	Rules     map[string]*Rule
	// RuleOrder preserves declaration order so that emission (and thus
	// the generated source) is deterministic even though Rules is a map.
	RuleOrder []string
}

func (g *Grammar) Type() NodeType { return GrammarType }

// OrderedRules returns the grammar's rules in declaration order, skipping
// any name present in RuleOrder but no longer in Rules (as happens after
// proxy elimination removes a rule).
func (g *Grammar) OrderedRules() []*Rule {
	rules := make([]*Rule, 0, len(g.Rules))
	for _, name := range g.RuleOrder {
		if r, ok := g.Rules[name]; ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// RemoveRule deletes a rule by name from both the map and the order slice.
func (g *Grammar) RemoveRule(name string) {
	delete(g.Rules, name)
	for i, n := range g.RuleOrder {
		if n == name {
			g.RuleOrder = append(g.RuleOrder[:i], g.RuleOrder[i+1:]...)
			break
		}
	}
}

// Initializer holds a raw code block inserted verbatim into the emitted
// parser's top scope (spec §3.1, §6.3).
type Initializer struct {
	Code string
	P    Position
}

func (i *Initializer) Type() NodeType { return InitializerType }
func (i *Initializer) Pos() Position  { return i.P }

// Rule is a named production (spec §3.1). After the stack-depths pass it
// also carries ResultStackDepth/PosStackDepth.
type Rule struct {
	Name        string
	DisplayName string
	HasDisplay  bool
	Expr        Expression
	P           Position

	ResultStackDepth int
	PosStackDepth    int
}

func (r *Rule) Type() NodeType { return RuleType }
func (r *Rule) Pos() Position  { return r.P }

// ChoiceExpr is an ordered sequence of alternatives (spec §3.1, §4.6).
type ChoiceExpr struct {
	exprBase
	Alternatives []Expression
}

func (*ChoiceExpr) Type() NodeType { return ChoiceType }

// SeqExpr is an ordered sequence all of whose elements must match.
type SeqExpr struct {
	exprBase
	Elements []Expression
}

func (*SeqExpr) Type() NodeType { return SequenceType }

// LabeledExpr binds its child's result to a name visible in an enclosing
// action's code block.
type LabeledExpr struct {
	exprBase
	Label string
	Expr  Expression
}

func (*LabeledExpr) Type() NodeType { return LabeledType }

// SimpleAndExpr is a zero-length positive lookahead (`&e`).
type SimpleAndExpr struct {
	exprBase
	Expr Expression
}

func (*SimpleAndExpr) Type() NodeType { return SimpleAndType }

// SimpleNotExpr is a zero-length negative lookahead (`!e`).
type SimpleNotExpr struct {
	exprBase
	Expr Expression
}

func (*SimpleNotExpr) Type() NodeType { return SimpleNotType }

// SemanticAndExpr is a zero-length predicate; matches iff Code is truthy.
type SemanticAndExpr struct {
	exprBase
	Code string
}

func (*SemanticAndExpr) Type() NodeType { return SemanticAndType }

// SemanticNotExpr is a zero-length predicate; matches iff Code is falsy.
type SemanticNotExpr struct {
	exprBase
	Code string
}

func (*SemanticNotExpr) Type() NodeType { return SemanticNotType }

// OptionalExpr matches its child zero or one time (`e?`).
type OptionalExpr struct {
	exprBase
	Expr Expression
}

func (*OptionalExpr) Type() NodeType { return OptionalType }

// ZeroOrMoreExpr matches its child zero or more times (`e*`).
type ZeroOrMoreExpr struct {
	exprBase
	Expr Expression
}

func (*ZeroOrMoreExpr) Type() NodeType { return ZeroOrMoreType }

// OneOrMoreExpr matches its child one or more times (`e+`).
type OneOrMoreExpr struct {
	exprBase
	Expr Expression
}

func (*OneOrMoreExpr) Type() NodeType { return OneOrMoreType }

// ActionExpr runs Code over the labels bound within Expr when Expr matches.
type ActionExpr struct {
	exprBase
	Expr Expression
	Code string
}

func (*ActionExpr) Type() NodeType { return ActionType }

// RuleRefExpr references another rule by name.
type RuleRefExpr struct {
	exprBase
	Name string
}

func (*RuleRefExpr) Type() NodeType { return RuleRefType }

// LiteralExpr matches a fixed string.
type LiteralExpr struct {
	exprBase
	Value string
}

func (*LiteralExpr) Type() NodeType { return LiteralType }

// AnyExpr matches any single character except end of input.
type AnyExpr struct {
	exprBase
}

func (*AnyExpr) Type() NodeType { return AnyType }

// ClassPart is either a single character (IsRange false, Lo used) or an
// inclusive [Lo, Hi] range (spec §3.1).
type ClassPart struct {
	IsRange bool
	Lo, Hi  rune
}

// Char returns the single character represented by a non-range part.
func (p ClassPart) Char() rune { return p.Lo }

// ClassExpr matches a single character against a character set.
type ClassExpr struct {
	exprBase
	Parts    []ClassPart
	Inverted bool
	RawText  string
}

func (*ClassExpr) Type() NodeType { return ClassType }
