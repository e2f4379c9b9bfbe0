package ast

import (
	"strconv"
	"strings"

	"github.com/martimartins/carbon-lang/internal/source"
)

// Identifier represents a reference to a named entity.
type Identifier struct {
	Name string
	loc  source.Loc
}

// NewIdentifier constructs an identifier node.
func NewIdentifier(name string, loc source.Loc) *Identifier {
	return &Identifier{Name: name, loc: loc}
}

// Loc returns the identifier location.
func (e *Identifier) Loc() source.Loc { return e.loc }

func (e *Identifier) String() string { return e.Name }

func (*Identifier) expressionNode() {}

// IntLiteral represents an integer literal.
type IntLiteral struct {
	Value int64
	loc   source.Loc
}

// NewIntLiteral constructs an integer literal node.
func NewIntLiteral(value int64, loc source.Loc) *IntLiteral {
	return &IntLiteral{Value: value, loc: loc}
}

// Loc returns the literal location.
func (e *IntLiteral) Loc() source.Loc { return e.loc }

func (e *IntLiteral) String() string { return strconv.FormatInt(e.Value, 10) }

func (*IntLiteral) expressionNode() {}

// BoolLiteral represents `true` or `false`.
type BoolLiteral struct {
	Value bool
	loc   source.Loc
}

// NewBoolLiteral constructs a boolean literal node.
func NewBoolLiteral(value bool, loc source.Loc) *BoolLiteral {
	return &BoolLiteral{Value: value, loc: loc}
}

// Loc returns the literal location.
func (e *BoolLiteral) Loc() source.Loc { return e.loc }

func (e *BoolLiteral) String() string { return strconv.FormatBool(e.Value) }

func (*BoolLiteral) expressionNode() {}

// TupleLiteral represents a parenthesized, comma-separated list of
// expressions. The empty tuple is the unit value.
type TupleLiteral struct {
	Elements []Expression
	loc      source.Loc
}

// NewTupleLiteral constructs a tuple literal node.
func NewTupleLiteral(elements []Expression, loc source.Loc) *TupleLiteral {
	return &TupleLiteral{Elements: elements, loc: loc}
}

// Loc returns the literal location.
func (e *TupleLiteral) Loc() source.Loc { return e.loc }

func (e *TupleLiteral) String() string {
	return "(" + joinExpressions(e.Elements) + ")"
}

func (*TupleLiteral) expressionNode() {}

// Call represents a call expression.
type Call struct {
	Callee Expression
	Args   []Expression
	loc    source.Loc
}

// NewCall constructs a call expression node.
func NewCall(callee Expression, args []Expression, loc source.Loc) *Call {
	return &Call{Callee: callee, Args: args, loc: loc}
}

// Loc returns the call location.
func (e *Call) Loc() source.Loc { return e.loc }

func (e *Call) String() string {
	return e.Callee.String() + "(" + joinExpressions(e.Args) + ")"
}

func (*Call) expressionNode() {}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
