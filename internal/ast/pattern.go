package ast

import "github.com/martimartins/carbon-lang/internal/source"

// BindingPattern binds a name, optionally with a type: `x: i32`.
// A nil Type means `auto`.
type BindingPattern struct {
	Name string
	Type Expression
	loc  source.Loc
}

// NewBindingPattern constructs a binding pattern node.
func NewBindingPattern(name string, typ Expression, loc source.Loc) *BindingPattern {
	return &BindingPattern{Name: name, Type: typ, loc: loc}
}

// Loc returns the pattern location.
func (p *BindingPattern) Loc() source.Loc { return p.loc }

func (p *BindingPattern) String() string {
	if p.Type == nil {
		return p.Name + ": auto"
	}
	return p.Name + ": " + p.Type.String()
}

func (*BindingPattern) patternNode() {}

// ExpressionPattern matches values equal to an expression.
type ExpressionPattern struct {
	Expression Expression
}

// NewExpressionPattern constructs an expression pattern node.
func NewExpressionPattern(expr Expression) *ExpressionPattern {
	return &ExpressionPattern{Expression: expr}
}

// Loc returns the location of the wrapped expression.
func (p *ExpressionPattern) Loc() source.Loc { return p.Expression.Loc() }

func (p *ExpressionPattern) String() string { return p.Expression.String() }

func (*ExpressionPattern) patternNode() {}
