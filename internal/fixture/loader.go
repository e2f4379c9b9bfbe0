// Package fixture builds ASTs from YAML documents.
//
// A fixture stands in for the parser and name-resolution stages: it
// describes an already-resolved compilation unit, and every node takes its
// source location from the YAML node it was decoded from. A document looks
// like:
//
//	declarations:
//	  - function:
//	      name: F
//	      returns: i32
//	      body:
//	        - if:
//	            cond: c
//	            then: [{return: 1}]
//	            else: [{return: 2}]
package fixture

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/martimartins/carbon-lang/internal/ast"
	"github.com/martimartins/carbon-lang/internal/source"
)

// Load reads and parses the fixture at filename.
func Load(filename string) (*ast.AST, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(filename, data)
}

// Parse builds an AST from fixture data. filename is recorded in every
// source location.
func Parse(filename string, data []byte) (*ast.AST, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	l := &loader{filename: filename}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return ast.NewAST(), nil
	}
	root := doc.Content[0]
	fields, err := l.fields(root, "declarations")
	if err != nil {
		return nil, err
	}
	decls, err := l.declarations(fields["declarations"])
	if err != nil {
		return nil, err
	}
	return ast.NewAST(decls...), nil
}

type loader struct {
	filename string
}

func (l *loader) loc(n *yaml.Node) source.Loc {
	return source.Loc{Filename: l.filename, Line: n.Line, Column: n.Column}
}

func (l *loader) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s: %s", l.loc(n), fmt.Sprintf(format, args...))
}

// fields returns the values of a mapping node by key, rejecting keys that
// are not in allowed.
func (l *loader) fields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, "expected mapping with keys %s", strings.Join(allowed, ", "))
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if !slices.Contains(allowed, key.Value) {
			return nil, l.errorf(key, "unknown key %q (want one of %s)", key.Value, strings.Join(allowed, ", "))
		}
		if _, dup := out[key.Value]; dup {
			return nil, l.errorf(key, "duplicate key %q", key.Value)
		}
		out[key.Value] = value
	}
	return out, nil
}

// tagged splits a `kind: value` node. A bare scalar `kind` is accepted as a
// tag with a null value.
func (l *loader) tagged(n *yaml.Node) (kind string, key, value *yaml.Node, err error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, n, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Line: n.Line, Column: n.Column}, nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return "", nil, nil, l.errorf(n, "expected a single-key mapping")
		}
		return n.Content[0].Value, n.Content[0], n.Content[1], nil
	default:
		return "", nil, nil, l.errorf(n, "expected a mapping or a scalar")
	}
}

func (l *loader) sequence(n *yaml.Node) ([]*yaml.Node, error) {
	if n == nil || isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, "expected a sequence")
	}
	return n.Content, nil
}

func (l *loader) name(n *yaml.Node, what string) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%s: missing %s", l.filename, what)
	}
	if n.Kind != yaml.ScalarNode || isNull(n) || n.Value == "" {
		return "", l.errorf(n, "expected %s", what)
	}
	return n.Value, nil
}

func (l *loader) declarations(n *yaml.Node) ([]ast.Declaration, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	decls := make([]ast.Declaration, 0, len(items))
	for _, item := range items {
		decl, err := l.declaration(item)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func (l *loader) declaration(n *yaml.Node) (ast.Declaration, error) {
	kind, key, value, err := l.tagged(n)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "function":
		return l.function(key, value)
	case "class":
		f, err := l.fields(value, "name", "members")
		if err != nil {
			return nil, err
		}
		name, err := l.name(f["name"], "class name")
		if err != nil {
			return nil, err
		}
		members, err := l.declarations(f["members"])
		if err != nil {
			return nil, err
		}
		return ast.NewClassDeclaration(name, members, l.loc(key)), nil
	case "choice":
		return l.choice(key, value)
	case "var":
		f, err := l.fields(value, "name", "type", "init")
		if err != nil {
			return nil, err
		}
		binding, err := l.binding(value, f)
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if n := f["init"]; n != nil {
			if init, err = l.expression(n); err != nil {
				return nil, err
			}
		}
		return ast.NewVariableDeclaration(binding, init, l.loc(key)), nil
	default:
		return nil, l.errorf(key, "unknown declaration kind %q", kind)
	}
}

func (l *loader) function(key, value *yaml.Node) (*ast.FunctionDeclaration, error) {
	f, err := l.fields(value, "name", "params", "returns", "body")
	if err != nil {
		return nil, err
	}
	name, err := l.name(f["name"], "function name")
	if err != nil {
		return nil, err
	}

	paramNodes, err := l.sequence(f["params"])
	if err != nil {
		return nil, err
	}
	params := make([]*ast.BindingPattern, 0, len(paramNodes))
	for _, p := range paramNodes {
		pf, err := l.fields(p, "name", "type")
		if err != nil {
			return nil, err
		}
		binding, err := l.binding(p, pf)
		if err != nil {
			return nil, err
		}
		params = append(params, binding)
	}

	term := ast.OmittedReturn(l.loc(key))
	if r := f["returns"]; r != nil && !isNull(r) {
		switch {
		case r.Kind == yaml.ScalarNode && r.Value == "auto":
			term = ast.AutoReturn(l.loc(r))
		case r.Kind == yaml.ScalarNode && r.Value == "omitted":
			term = ast.OmittedReturn(l.loc(r))
		default:
			typ, err := l.expression(r)
			if err != nil {
				return nil, err
			}
			term = ast.ExplicitReturn(typ)
		}
	}

	var body *ast.Block
	if b, ok := f["body"]; ok {
		if body, err = l.block(b); err != nil {
			return nil, err
		}
	}
	return ast.NewFunctionDeclaration(name, params, term, body, l.loc(key)), nil
}

func (l *loader) choice(key, value *yaml.Node) (*ast.ChoiceDeclaration, error) {
	f, err := l.fields(value, "name", "alternatives")
	if err != nil {
		return nil, err
	}
	name, err := l.name(f["name"], "choice name")
	if err != nil {
		return nil, err
	}
	items, err := l.sequence(f["alternatives"])
	if err != nil {
		return nil, err
	}
	alts := make([]ast.ChoiceAlternative, 0, len(items))
	for _, item := range items {
		if item.Kind == yaml.ScalarNode {
			alts = append(alts, ast.ChoiceAlternative{Name: item.Value})
			continue
		}
		af, err := l.fields(item, "name", "type")
		if err != nil {
			return nil, err
		}
		altName, err := l.name(af["name"], "alternative name")
		if err != nil {
			return nil, err
		}
		alt := ast.ChoiceAlternative{Name: altName}
		if t := af["type"]; t != nil {
			if alt.Signature, err = l.expression(t); err != nil {
				return nil, err
			}
		}
		alts = append(alts, alt)
	}
	return ast.NewChoiceDeclaration(name, alts, l.loc(key)), nil
}

// binding builds `name: type` from already-split fields; a missing type
// means auto.
func (l *loader) binding(n *yaml.Node, f map[string]*yaml.Node) (*ast.BindingPattern, error) {
	nameNode := f["name"]
	if nameNode == nil {
		return nil, l.errorf(n, "missing binding name")
	}
	name, err := l.name(nameNode, "binding name")
	if err != nil {
		return nil, err
	}
	var typ ast.Expression
	if t := f["type"]; t != nil && !(t.Kind == yaml.ScalarNode && t.Value == "auto") {
		if typ, err = l.expression(t); err != nil {
			return nil, err
		}
	}
	return ast.NewBindingPattern(name, typ, l.loc(nameNode)), nil
}

func (l *loader) block(n *yaml.Node) (*ast.Block, error) {
	items, err := l.sequence(n)
	if err != nil {
		return nil, err
	}
	stmts := make([]ast.Statement, 0, len(items))
	for _, item := range items {
		stmt, err := l.statement(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewBlock(stmts, l.loc(n)), nil
}

func (l *loader) requireBlock(n *yaml.Node, f map[string]*yaml.Node, key string) (*ast.Block, error) {
	b, ok := f[key]
	if !ok {
		return nil, l.errorf(n, "missing %q", key)
	}
	return l.block(b)
}

func (l *loader) requireExpression(n *yaml.Node, f map[string]*yaml.Node, key string) (ast.Expression, error) {
	e, ok := f[key]
	if !ok {
		return nil, l.errorf(n, "missing %q", key)
	}
	return l.expression(e)
}

func (l *loader) statement(n *yaml.Node) (ast.Statement, error) {
	kind, key, value, err := l.tagged(n)
	if err != nil {
		return nil, err
	}
	loc := l.loc(key)

	switch kind {
	case "return":
		if isNull(value) {
			return ast.NewReturn(nil, loc), nil
		}
		expr, err := l.expression(value)
		if err != nil {
			return nil, err
		}
		return ast.NewReturn(expr, loc), nil

	case "break":
		return ast.NewBreak(loc), nil

	case "continue":
		return ast.NewContinue(loc), nil

	case "await":
		return ast.NewAwait(loc), nil

	case "if":
		f, err := l.fields(value, "cond", "then", "else")
		if err != nil {
			return nil, err
		}
		cond, err := l.requireExpression(value, f, "cond")
		if err != nil {
			return nil, err
		}
		then, err := l.requireBlock(value, f, "then")
		if err != nil {
			return nil, err
		}
		var elseBlock *ast.Block
		if e, ok := f["else"]; ok {
			if elseBlock, err = l.block(e); err != nil {
				return nil, err
			}
		}
		return ast.NewIf(cond, then, elseBlock, loc), nil

	case "block":
		b, err := l.block(value)
		if err != nil {
			return nil, err
		}
		b.SetLoc(loc)
		return b, nil

	case "while":
		f, err := l.fields(value, "cond", "body")
		if err != nil {
			return nil, err
		}
		cond, err := l.requireExpression(value, f, "cond")
		if err != nil {
			return nil, err
		}
		body, err := l.requireBlock(value, f, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(cond, body, loc), nil

	case "match":
		return l.match(value, loc)

	case "continuation":
		f, err := l.fields(value, "name", "body")
		if err != nil {
			return nil, err
		}
		name, err := l.name(f["name"], "continuation name")
		if err != nil {
			return nil, err
		}
		body, err := l.requireBlock(value, f, "body")
		if err != nil {
			return nil, err
		}
		return ast.NewContinuation(name, body, loc), nil

	case "expr":
		expr, err := l.expression(value)
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr, loc), nil

	case "assign":
		f, err := l.fields(value, "lhs", "rhs")
		if err != nil {
			return nil, err
		}
		lhs, err := l.requireExpression(value, f, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := l.requireExpression(value, f, "rhs")
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(lhs, rhs, loc), nil

	case "var":
		f, err := l.fields(value, "name", "type", "init")
		if err != nil {
			return nil, err
		}
		binding, err := l.binding(value, f)
		if err != nil {
			return nil, err
		}
		init, err := l.requireExpression(value, f, "init")
		if err != nil {
			return nil, err
		}
		return ast.NewVariableDefinition(binding, init, loc), nil

	case "run":
		arg, err := l.expression(value)
		if err != nil {
			return nil, err
		}
		return ast.NewRun(arg, loc), nil

	default:
		return nil, l.errorf(key, "unknown statement kind %q", kind)
	}
}

func (l *loader) match(value *yaml.Node, loc source.Loc) (*ast.Match, error) {
	f, err := l.fields(value, "expr", "clauses")
	if err != nil {
		return nil, err
	}
	expr, err := l.requireExpression(value, f, "expr")
	if err != nil {
		return nil, err
	}
	items, err := l.sequence(f["clauses"])
	if err != nil {
		return nil, err
	}
	clauses := make([]*ast.MatchClause, 0, len(items))
	for _, item := range items {
		cf, err := l.fields(item, "pattern", "default", "body")
		if err != nil {
			return nil, err
		}
		var pattern ast.Pattern
		switch p := cf["pattern"]; {
		case p != nil && cf["default"] != nil:
			return nil, l.errorf(item, "clause has both pattern and default")
		case p == nil && cf["default"] == nil:
			return nil, l.errorf(item, "clause needs a pattern or default")
		case p != nil && p.Kind == yaml.MappingNode && hasKey(p, "name"):
			pf, err := l.fields(p, "name", "type")
			if err != nil {
				return nil, err
			}
			if pattern, err = l.binding(p, pf); err != nil {
				return nil, err
			}
		case p != nil:
			e, err := l.expression(p)
			if err != nil {
				return nil, err
			}
			pattern = ast.NewExpressionPattern(e)
		}
		bodyNode, ok := cf["body"]
		if !ok {
			return nil, l.errorf(item, "missing %q", "body")
		}
		var body ast.Statement
		if bodyNode.Kind == yaml.SequenceNode {
			body, err = l.block(bodyNode)
		} else {
			body, err = l.statement(bodyNode)
		}
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.NewMatchClause(pattern, body))
	}
	return ast.NewMatch(expr, clauses, loc), nil
}

func (l *loader) expression(n *yaml.Node) (ast.Expression, error) {
	loc := l.loc(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			v, err := strconv.ParseInt(n.Value, 0, 64)
			if err != nil {
				return nil, l.errorf(n, "invalid integer %q: %v", n.Value, err)
			}
			return ast.NewIntLiteral(v, loc), nil
		case "!!bool":
			var v bool
			if err := n.Decode(&v); err != nil {
				return nil, l.errorf(n, "invalid boolean %q: %v", n.Value, err)
			}
			return ast.NewBoolLiteral(v, loc), nil
		case "!!str":
			if n.Value == "" {
				return nil, l.errorf(n, "empty identifier")
			}
			return ast.NewIdentifier(n.Value, loc), nil
		default:
			return nil, l.errorf(n, "expected an expression, got %s", n.ShortTag())
		}

	case yaml.SequenceNode:
		elems, err := l.expressions(n.Content)
		if err != nil {
			return nil, err
		}
		return ast.NewTupleLiteral(elems, loc), nil

	case yaml.MappingNode:
		if hasKey(n, "tuple") {
			f, err := l.fields(n, "tuple")
			if err != nil {
				return nil, err
			}
			elemNodes, err := l.sequence(f["tuple"])
			if err != nil {
				return nil, err
			}
			elems, err := l.expressions(elemNodes)
			if err != nil {
				return nil, err
			}
			return ast.NewTupleLiteral(elems, loc), nil
		}
		f, err := l.fields(n, "call", "args")
		if err != nil {
			return nil, err
		}
		callee, err := l.requireExpression(n, f, "call")
		if err != nil {
			return nil, err
		}
		argNodes, err := l.sequence(f["args"])
		if err != nil {
			return nil, err
		}
		args, err := l.expressions(argNodes)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(callee, args, loc), nil

	default:
		return nil, l.errorf(n, "expected an expression")
	}
}

func (l *loader) expressions(nodes []*yaml.Node) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(nodes))
	for _, n := range nodes {
		e, err := l.expression(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

