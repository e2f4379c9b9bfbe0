package ast

import "github.com/martimartins/carbon-lang/internal/source"

// ReturnTermKind describes how a function declares its return type.
type ReturnTermKind int

const (
	// ReturnOmitted means no return type was written; the function returns
	// no value.
	ReturnOmitted ReturnTermKind = iota
	// ReturnAuto means the return type is deduced from the single return
	// statement in the body.
	ReturnAuto
	// ReturnExpression means the return type is given explicitly.
	ReturnExpression
)

// ReturnTerm is the declared return contract of a function.
type ReturnTerm struct {
	Kind ReturnTermKind
	Type Expression // set only for ReturnExpression
	loc  source.Loc
}

// OmittedReturn returns the term of a function declared without a return type.
func OmittedReturn(loc source.Loc) ReturnTerm {
	return ReturnTerm{Kind: ReturnOmitted, loc: loc}
}

// AutoReturn returns the term of a function declared `-> auto`.
func AutoReturn(loc source.Loc) ReturnTerm {
	return ReturnTerm{Kind: ReturnAuto, loc: loc}
}

// ExplicitReturn returns the term of a function declared `-> typ`.
func ExplicitReturn(typ Expression) ReturnTerm {
	t := ReturnTerm{Kind: ReturnExpression, Type: typ}
	if typ != nil {
		t.loc = typ.Loc()
	}
	return t
}

// Loc returns the location of the return term.
func (t ReturnTerm) Loc() source.Loc { return t.loc }

// IsAuto reports whether the return type is deduced.
func (t ReturnTerm) IsAuto() bool { return t.Kind == ReturnAuto }

// IsOmitted reports whether the function returns no value.
func (t ReturnTerm) IsOmitted() bool { return t.Kind == ReturnOmitted }

func (t ReturnTerm) String() string {
	switch t.Kind {
	case ReturnAuto:
		return "-> auto"
	case ReturnExpression:
		if t.Type == nil {
			return "-> ?"
		}
		return "-> " + t.Type.String()
	default:
		return ""
	}
}
