package emit

import "pegc/internal/ast"

// actionLabels derives the formal parameter list of an action or semantic
// predicate wrapping expr, per spec §4.6's action parameter derivation:
// a direct sequence contributes one parameter per labeled element, in
// declaration order; a bare labeled expression contributes the single
// label it declares; anything else contributes no parameters.
func actionLabels(expr ast.Expression) []labelSlot {
	switch e := expr.(type) {
	case *ast.SeqExpr:
		var labels []labelSlot
		for i, el := range e.Elements {
			if lab, ok := el.(*ast.LabeledExpr); ok {
				labels = append(labels, labelSlot{Name: lab.Label, Index: i, FromSeq: true})
			}
		}
		return labels
	case *ast.LabeledExpr:
		return []labelSlot{{Name: e.Label, FromSeq: false}}
	default:
		return nil
	}
}

// labelSlot locates one label's value within the collected result of the
// expression an action or predicate wraps.
type labelSlot struct {
	Name string
	// Index is the position of this label's element within the wrapped
	// sequence's collected array. Only meaningful when FromSeq is true.
	Index int
	// FromSeq is false when the wrapped expression is itself the labeled
	// node, so its whole value (not an array element) is the binding.
	FromSeq bool
}
