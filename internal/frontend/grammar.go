package frontend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"pegc/internal/ast"
)

// The struct tags below are participle's grammar-as-Go-types convention,
// the same one the teacher uses for Kanso's own AST in grammar/grammar.go
// — a struct field's tag is a small PEG-like pattern describing how to
// populate it, and `@@` recurses into another such struct.
type grammarNode struct {
	Init  *initializerNode `@@?`
	Rules []*ruleNode      `@@+`
}

type initializerNode struct {
	Pos  lexer.Position
	Code string `@CodeBlock`
}

type ruleNode struct {
	Pos         lexer.Position
	Name        string      `@Ident`
	DisplayName *string     `@String?`
	Expr        *choiceNode `"=" @@`
}

type choiceNode struct {
	Alternatives []*actionSeqNode `@@ ("/" @@)*`
}

type actionSeqNode struct {
	Elements []*labeledNode `@@+`
	Code     *string        `@CodeBlock?`
}

type labeledNode struct {
	Label string        `(@Ident ":")?`
	Expr  *prefixedNode `@@`
}

type prefixedNode struct {
	Pos        lexer.Position
	SemAndCode *string       `(  "&" @CodeBlock`
	SemNotCode *string       ` | "!" @CodeBlock`
	And        *suffixedNode ` | "&" @@`
	Not        *suffixedNode ` | "!" @@`
	Plain      *suffixedNode ` | @@ )`
}

type suffixedNode struct {
	Primary *primaryNode `@@`
	Suffix  string       `@("?" | "*" | "+")?`
}

type primaryNode struct {
	Pos     lexer.Position
	Literal *string     `(  @String`
	Class   *string     ` | @Class`
	Any     bool        ` | @"."`
	RuleRef *string     ` | @Ident`
	Group   *choiceNode ` | "(" @@ ")" )`
}

// ParseSource parses .peg grammar text into an *ast.Grammar, mirroring
// the (path, source) -> (tree, parseErrors, scanErrors) shape a caller of
// this compiler's front end expects.
func ParseSource(path, source string) (*ast.Grammar, []ParseError, []ScanError) {
	parser, err := participle.Build[grammarNode](
		participle.Lexer(Lexer),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, []ParseError{{Message: fmt.Sprintf("frontend: building parser: %v", err)}}, nil
	}

	tree, err := parser.ParseString(path, source)
	if err != nil {
		var scanErr *ScanError
		if errors.As(err, &scanErr) {
			return nil, nil, []ScanError{*scanErr}
		}
		var pErr participle.Error
		if errors.As(err, &pErr) {
			pos := pErr.Position()
			return nil, []ParseError{{
				Message:  pErr.Message(),
				Position: Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset},
			}}, nil
		}
		return nil, []ParseError{{Message: err.Error()}}, nil
	}

	g, err := toGrammar(tree)
	if err != nil {
		return nil, []ParseError{{Message: err.Error()}}, nil
	}
	return g, nil, nil
}

func toGrammar(tree *grammarNode) (*ast.Grammar, error) {
	g := &ast.Grammar{
		Rules: make(map[string]*ast.Rule),
	}
	if tree.Init != nil {
		g.Init = &ast.Initializer{
			Code: strings.TrimSpace(tree.Init.Code),
			P:    toASTPosition(fromLexerPos(tree.Init.Pos)),
		}
	}
	for i, rn := range tree.Rules {
		r, err := toRule(rn)
		if err != nil {
			return nil, err
		}
		if _, dup := g.Rules[r.Name]; dup {
			return nil, fmt.Errorf("%s: rule %q redeclared", r.P, r.Name)
		}
		g.Rules[r.Name] = r
		g.RuleOrder = append(g.RuleOrder, r.Name)
		if i == 0 {
			g.StartRule = r.Name
		}
	}
	if len(g.Rules) == 0 {
		return nil, fmt.Errorf("frontend: grammar declares no rules")
	}
	return g, nil
}

func toRule(n *ruleNode) (*ast.Rule, error) {
	expr, err := toChoice(n.Expr)
	if err != nil {
		return nil, err
	}
	r := &ast.Rule{
		Name: n.Name,
		Expr: expr,
		P:    toASTPosition(fromLexerPos(n.Pos)),
	}
	if n.DisplayName != nil {
		r.HasDisplay = true
		r.DisplayName = *n.DisplayName
	}
	return r, nil
}

func toChoice(n *choiceNode) (ast.Expression, error) {
	if len(n.Alternatives) == 1 {
		return toActionSeq(n.Alternatives[0])
	}
	alts := make([]ast.Expression, len(n.Alternatives))
	for i, a := range n.Alternatives {
		e, err := toActionSeq(a)
		if err != nil {
			return nil, err
		}
		alts[i] = e
	}
	return &ast.ChoiceExpr{Alternatives: alts}, nil
}

func toActionSeq(n *actionSeqNode) (ast.Expression, error) {
	elems := make([]ast.Expression, len(n.Elements))
	for i, el := range n.Elements {
		e, err := toLabeled(el)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}

	var body ast.Expression
	if len(elems) == 1 {
		body = elems[0]
	} else {
		body = &ast.SeqExpr{Elements: elems}
	}

	if n.Code != nil {
		return &ast.ActionExpr{Expr: body, Code: strings.TrimSpace(*n.Code)}, nil
	}
	return body, nil
}

func toLabeled(n *labeledNode) (ast.Expression, error) {
	e, err := toPrefixed(n.Expr)
	if err != nil {
		return nil, err
	}
	if n.Label == "" {
		return e, nil
	}
	return &ast.LabeledExpr{Label: n.Label, Expr: e}, nil
}

func toPrefixed(n *prefixedNode) (ast.Expression, error) {
	pos := toASTPosition(fromLexerPos(n.Pos))
	switch {
	case n.SemAndCode != nil:
		e := &ast.SemanticAndExpr{Code: strings.TrimSpace(*n.SemAndCode)}
		e.P = pos
		return e, nil
	case n.SemNotCode != nil:
		e := &ast.SemanticNotExpr{Code: strings.TrimSpace(*n.SemNotCode)}
		e.P = pos
		return e, nil
	case n.And != nil:
		child, err := toSuffixed(n.And)
		if err != nil {
			return nil, err
		}
		e := &ast.SimpleAndExpr{Expr: child}
		e.P = pos
		return e, nil
	case n.Not != nil:
		child, err := toSuffixed(n.Not)
		if err != nil {
			return nil, err
		}
		e := &ast.SimpleNotExpr{Expr: child}
		e.P = pos
		return e, nil
	default:
		return toSuffixed(n.Plain)
	}
}

func toSuffixed(n *suffixedNode) (ast.Expression, error) {
	e, err := toPrimary(n.Primary)
	if err != nil {
		return nil, err
	}
	switch n.Suffix {
	case "?":
		return &ast.OptionalExpr{Expr: e}, nil
	case "*":
		return &ast.ZeroOrMoreExpr{Expr: e}, nil
	case "+":
		return &ast.OneOrMoreExpr{Expr: e}, nil
	default:
		return e, nil
	}
}

func toPrimary(n *primaryNode) (ast.Expression, error) {
	pos := toASTPosition(fromLexerPos(n.Pos))
	switch {
	case n.Literal != nil:
		e := &ast.LiteralExpr{Value: *n.Literal}
		e.P = pos
		return e, nil
	case n.Class != nil:
		parts, inverted, err := parseClassBody(*n.Class)
		if err != nil {
			return nil, err
		}
		e := &ast.ClassExpr{Parts: parts, Inverted: inverted, RawText: *n.Class}
		e.P = pos
		return e, nil
	case n.Any:
		e := &ast.AnyExpr{}
		e.P = pos
		return e, nil
	case n.RuleRef != nil:
		e := &ast.RuleRefExpr{Name: *n.RuleRef}
		e.P = pos
		return e, nil
	case n.Group != nil:
		return toChoice(n.Group)
	default:
		return nil, fmt.Errorf("%s: empty primary expression", pos)
	}
}

// parseClassBody decodes a raw `[...]` character class into its parts and
// inversion flag, handling `^` inversion, `a-z` ranges, and backslash
// escapes.
func parseClassBody(raw string) ([]ast.ClassPart, bool, error) {
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return nil, false, fmt.Errorf("frontend: malformed character class %q", raw)
	}
	body := []rune(raw[1 : len(raw)-1])
	inverted := false
	i := 0
	if i < len(body) && body[i] == '^' {
		inverted = true
		i++
	}

	var parts []ast.ClassPart
	for i < len(body) {
		lo, next, err := readClassChar(body, i)
		if err != nil {
			return nil, false, err
		}
		i = next
		if i+1 < len(body) && body[i] == '-' && body[i+1] != ']' {
			i++ // consume '-'
			hi, next2, err := readClassChar(body, i)
			if err != nil {
				return nil, false, err
			}
			i = next2
			parts = append(parts, ast.ClassPart{IsRange: true, Lo: lo, Hi: hi})
			continue
		}
		parts = append(parts, ast.ClassPart{Lo: lo})
	}
	return parts, inverted, nil
}

func readClassChar(body []rune, i int) (rune, int, error) {
	if i >= len(body) {
		return 0, i, fmt.Errorf("frontend: character class ends unexpectedly")
	}
	if body[i] != '\\' {
		return body[i], i + 1, nil
	}
	if i+1 >= len(body) {
		return 0, i, fmt.Errorf("frontend: character class ends mid-escape")
	}
	esc := body[i+1]
	switch esc {
	case 'n':
		return '\n', i + 2, nil
	case 't':
		return '\t', i + 2, nil
	case 'r':
		return '\r', i + 2, nil
	default:
		return esc, i + 2, nil
	}
}
