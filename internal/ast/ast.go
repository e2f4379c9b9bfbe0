package ast

import (
	"strings"

	"github.com/martimartins/carbon-lang/internal/source"
)

// Node represents any AST node with an associated source location.
type Node interface {
	Loc() source.Loc
}

// Expression represents an expression node.
type Expression interface {
	Node
	String() string
	expressionNode()
}

// Pattern represents a pattern node, as found in variable definitions,
// parameters and match clauses.
type Pattern interface {
	Node
	String() string
	patternNode()
}

// Statement represents a statement node.
//
// The set of statements is closed: every implementation lives in this
// package, and passes over statements switch on the concrete type.
type Statement interface {
	Node
	Kind() StatementKind
	String() string
	statementNode()
}

// Declaration represents a declaration, either at the top level or as a
// class member.
type Declaration interface {
	Node
	Kind() DeclarationKind
	Name() string
	String() string
	declarationNode()
}

// AST is a parsed, name-resolved compilation unit.
type AST struct {
	Declarations []Declaration
}

// NewAST constructs a compilation unit from its declarations.
func NewAST(decls ...Declaration) *AST {
	return &AST{Declarations: decls}
}

// DeclarationKind identifies the concrete type of a Declaration.
type DeclarationKind int

const (
	FunctionDeclarationKind DeclarationKind = iota
	ClassDeclarationKind
	ChoiceDeclarationKind
	VariableDeclarationKind
)

func (k DeclarationKind) String() string {
	switch k {
	case FunctionDeclarationKind:
		return "FunctionDeclaration"
	case ClassDeclarationKind:
		return "ClassDeclaration"
	case ChoiceDeclarationKind:
		return "ChoiceDeclaration"
	case VariableDeclarationKind:
		return "VariableDeclaration"
	default:
		return "DeclarationKind(?)"
	}
}

// FunctionDeclaration represents a function or method declaration.
type FunctionDeclaration struct {
	name       string
	Params     []*BindingPattern
	ReturnTerm ReturnTerm
	Body       *Block // nil for a forward declaration
	loc        source.Loc
}

// NewFunctionDeclaration constructs a function declaration node.
func NewFunctionDeclaration(name string, params []*BindingPattern, returnTerm ReturnTerm, body *Block, loc source.Loc) *FunctionDeclaration {
	return &FunctionDeclaration{
		name:       name,
		Params:     params,
		ReturnTerm: returnTerm,
		Body:       body,
		loc:        loc,
	}
}

// Loc returns the declaration location.
func (d *FunctionDeclaration) Loc() source.Loc { return d.loc }

// Kind returns FunctionDeclarationKind.
func (*FunctionDeclaration) Kind() DeclarationKind { return FunctionDeclarationKind }

// Name returns the function name.
func (d *FunctionDeclaration) Name() string { return d.name }

func (d *FunctionDeclaration) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(d.name)
	b.WriteString("(")
	for i, p := range d.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if term := d.ReturnTerm.String(); term != "" {
		b.WriteString(" ")
		b.WriteString(term)
	}
	if d.Body == nil {
		b.WriteString(";")
		return b.String()
	}
	b.WriteString(" ")
	b.WriteString(d.Body.String())
	return b.String()
}

func (*FunctionDeclaration) declarationNode() {}

// ClassDeclaration represents a class with member declarations.
type ClassDeclaration struct {
	name    string
	Members []Declaration
	loc     source.Loc
}

// NewClassDeclaration constructs a class declaration node.
func NewClassDeclaration(name string, members []Declaration, loc source.Loc) *ClassDeclaration {
	return &ClassDeclaration{
		name:    name,
		Members: members,
		loc:     loc,
	}
}

// Loc returns the declaration location.
func (d *ClassDeclaration) Loc() source.Loc { return d.loc }

// Kind returns ClassDeclarationKind.
func (*ClassDeclaration) Kind() DeclarationKind { return ClassDeclarationKind }

// Name returns the class name.
func (d *ClassDeclaration) Name() string { return d.name }

func (d *ClassDeclaration) String() string {
	if len(d.Members) == 0 {
		return "class " + d.name + " {}"
	}
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(d.name)
	b.WriteString(" {")
	for _, m := range d.Members {
		b.WriteString(" ")
		b.WriteString(m.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (*ClassDeclaration) declarationNode() {}

// ChoiceAlternative is a single alternative of a choice type.
type ChoiceAlternative struct {
	Name      string
	Signature Expression // nil for an alternative without payload
}

// ChoiceDeclaration represents a choice (sum) type declaration.
type ChoiceDeclaration struct {
	name         string
	Alternatives []ChoiceAlternative
	loc          source.Loc
}

// NewChoiceDeclaration constructs a choice declaration node.
func NewChoiceDeclaration(name string, alternatives []ChoiceAlternative, loc source.Loc) *ChoiceDeclaration {
	return &ChoiceDeclaration{
		name:         name,
		Alternatives: alternatives,
		loc:          loc,
	}
}

// Loc returns the declaration location.
func (d *ChoiceDeclaration) Loc() source.Loc { return d.loc }

// Kind returns ChoiceDeclarationKind.
func (*ChoiceDeclaration) Kind() DeclarationKind { return ChoiceDeclarationKind }

// Name returns the choice name.
func (d *ChoiceDeclaration) Name() string { return d.name }

func (d *ChoiceDeclaration) String() string {
	alts := make([]string, len(d.Alternatives))
	for i, alt := range d.Alternatives {
		alts[i] = alt.Name
		if alt.Signature != nil {
			alts[i] += "(" + alt.Signature.String() + ")"
		}
	}
	if len(alts) == 0 {
		return "choice " + d.name + " {}"
	}
	return "choice " + d.name + " { " + strings.Join(alts, ", ") + " }"
}

func (*ChoiceDeclaration) declarationNode() {}

// VariableDeclaration represents a global variable declaration.
type VariableDeclaration struct {
	Binding *BindingPattern
	Init    Expression
	loc     source.Loc
}

// NewVariableDeclaration constructs a variable declaration node.
func NewVariableDeclaration(binding *BindingPattern, init Expression, loc source.Loc) *VariableDeclaration {
	return &VariableDeclaration{
		Binding: binding,
		Init:    init,
		loc:     loc,
	}
}

// Loc returns the declaration location.
func (d *VariableDeclaration) Loc() source.Loc { return d.loc }

// Kind returns VariableDeclarationKind.
func (*VariableDeclaration) Kind() DeclarationKind { return VariableDeclarationKind }

// Name returns the bound variable name.
func (d *VariableDeclaration) Name() string {
	if d.Binding == nil {
		return ""
	}
	return d.Binding.Name
}

func (d *VariableDeclaration) String() string {
	binding := "?"
	if d.Binding != nil {
		binding = d.Binding.String()
	}
	if d.Init == nil {
		return "var " + binding + ";"
	}
	return "var " + binding + " = " + d.Init.String() + ";"
}

func (*VariableDeclaration) declarationNode() {}
