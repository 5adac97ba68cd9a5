package ast

import "fmt"

// Dispatch is the generic node visitor of spec §4.1: a mapping from a
// node's type tag to the handler that knows how to process it. Handlers
// receive the node and whatever extra arguments the caller passed through
// unchanged. A missing handler for a tag encountered at dispatch time is a
// programming fault, so Visit panics rather than returning an error — the
// emitter (§4.5) is built directly on this type.
type Dispatch map[NodeType]func(Node, ...any) (any, error)

// Visit looks up n's handler by its Type tag and invokes it, forwarding
// args unchanged. It panics if no handler is registered for the tag.
func (d Dispatch) Visit(n Node, args ...any) (any, error) {
	h, ok := d[n.Type()]
	if !ok {
		panic(fmt.Sprintf("ast: Dispatch: no handler registered for node type %q", n.Type()))
	}
	return h(n, args...)
}
