package emit

import "pegc/internal/ast"

// emitter walks an expression tree and produces Go statement blocks that
// obey the slot contract of spec §4.5. Its Visit table is an ast.Dispatch
// (spec §4.1) rather than a type switch: unlike the optimizer's
// Rewrite-based passes, the emitter must fail loudly the moment a new AST
// node type appears without a matching code generator, and Dispatch's
// panic-on-miss behavior gives us that for free.
type emitter struct {
	dispatch ast.Dispatch
}

func newEmitter() *emitter {
	e := &emitter{}
	e.dispatch = ast.Dispatch{
		ast.LiteralType:     e.literal,
		ast.AnyType:         e.any,
		ast.ClassType:       e.class,
		ast.RuleRefType:     e.ruleRef,
		ast.SequenceType:    e.sequence,
		ast.ChoiceType:      e.choice,
		ast.LabeledType:     e.labeled,
		ast.OptionalType:    e.optional,
		ast.ZeroOrMoreType:  e.zeroOrMore,
		ast.OneOrMoreType:   e.oneOrMore,
		ast.SimpleAndType:   e.simpleAnd,
		ast.SimpleNotType:   e.simpleNot,
		ast.SemanticAndType: e.semanticAnd,
		ast.SemanticNotType: e.semanticNot,
		ast.ActionType:      e.action,
	}
	return e
}

// emit renders expr at ctx, returning the Go statements that implement it.
func (e *emitter) emit(expr ast.Expression, ctx Context) (string, error) {
	v, err := e.dispatch.Visit(expr, ctx)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
