// Package controlflow links jump statements to the constructs they target.
//
// After a successful pass every Return in a function body knows the
// FunctionDeclaration it returns from, and every Break and Continue knows its
// innermost enclosing While. The pass stops at the first violation and
// returns it as a diag.Diagnostic.
package controlflow

import (
	"fmt"
	"io"

	"github.com/martimartins/carbon-lang/internal/ast"
	"github.com/martimartins/carbon-lang/internal/diag"
	"github.com/martimartins/carbon-lang/internal/source"
)

// Options configures a Resolver.
type Options struct {
	// Trace, when non-nil, receives a line for every resolved edge.
	Trace io.Writer
}

// Resolver resolves control-flow edges in declarations.
type Resolver struct {
	opts Options
}

// New creates a resolver with the given options.
func New(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// ResolveProgram resolves every declaration of tree in order.
func ResolveProgram(tree *ast.AST) error {
	return New(Options{}).ResolveProgram(tree)
}

// ResolveDeclaration resolves a single declaration.
func ResolveDeclaration(decl ast.Declaration) error {
	return New(Options{}).ResolveDeclaration(decl)
}

// functionData is the per-function state carried through a body.
type functionData struct {
	declaration *ast.FunctionDeclaration

	// True if the function has an auto return type and a return has
	// already been seen in its body.
	sawReturnInAuto bool
	firstReturn     source.Loc
}

// ResolveProgram resolves every declaration of tree in order, stopping at
// the first error.
func (r *Resolver) ResolveProgram(tree *ast.AST) error {
	if r.opts.Trace != nil {
		r.tracef("********** source program **********\n")
		for _, decl := range tree.Declarations {
			r.tracef("%s\n", decl)
		}
	}
	r.tracef("********** resolving control flow **********\n")
	for _, decl := range tree.Declarations {
		if err := r.ResolveDeclaration(decl); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDeclaration resolves the body of a function, or the members of a
// class. Other declarations have no statements and are left alone.
func (r *Resolver) ResolveDeclaration(decl ast.Declaration) error {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		if d.Body == nil {
			return nil
		}
		data := &functionData{declaration: d}
		return r.resolveStatement(d.Body, nil, data)
	case *ast.ClassDeclaration:
		for _, member := range d.Members {
			if err := r.ResolveDeclaration(member); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// resolveStatement resolves the statements rooted at stmt. loop is the
// innermost loop that statically encloses stmt, or nil. fn describes the
// function body stmt belongs to and is updated by this call; it is nil when
// stmt is not part of a function body, e.g. inside a continuation.
func (r *Resolver) resolveStatement(stmt ast.Statement, loop *ast.While, fn *functionData) error {
	switch s := stmt.(type) {
	case *ast.Return:
		return r.resolveReturn(s, fn)

	case *ast.Break:
		if loop == nil {
			return jumpOutsideLoop("break", s.Loc())
		}
		s.SetLoop(loop)
		r.traceEdge(s, loop)
		return nil

	case *ast.Continue:
		if loop == nil {
			return jumpOutsideLoop("continue", s.Loc())
		}
		s.SetLoop(loop)
		r.traceEdge(s, loop)
		return nil

	case *ast.If:
		if err := r.resolveStatement(s.Then, loop, fn); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStatement(s.Else, loop, fn)
		}
		return nil

	case *ast.Block:
		if s == nil {
			return nil
		}
		for _, child := range s.Statements {
			if err := r.resolveStatement(child, loop, fn); err != nil {
				return err
			}
		}
		return nil

	case *ast.While:
		return r.resolveStatement(s.Body, s, fn)

	case *ast.Match:
		for _, clause := range s.Clauses {
			if err := r.resolveStatement(clause.Body, loop, fn); err != nil {
				return err
			}
		}
		return nil

	case *ast.Continuation:
		return r.resolveStatement(s.Body, nil, nil)

	case *ast.ExpressionStatement, *ast.Assign, *ast.VariableDefinition, *ast.Run, *ast.Await:
		return nil

	default:
		panic(fmt.Sprintf("controlflow: unexpected statement %T", stmt))
	}
}

func (r *Resolver) resolveReturn(ret *ast.Return, fn *functionData) error {
	if fn == nil {
		return diag.New(diag.StageControlFlow, diag.CodeReturnOutsideFunction, ret.Loc(),
			"return is not within a function body")
	}

	term := fn.declaration.ReturnTerm
	if term.IsAuto() {
		if fn.sawReturnInAuto {
			d := diag.New(diag.StageControlFlow, diag.CodeMultipleAutoReturns, ret.Loc(),
				"Only one return is allowed in a function with an `auto` return type.")
			if fn.firstReturn.IsValid() {
				d = d.WithSecondarySpan(diag.SpanFromLoc(fn.firstReturn), "first return is here")
			}
			return d.WithNote("the return type of `" + fn.declaration.Name() + "` is deduced from its single return statement")
		}
		fn.sawReturnInAuto = true
		fn.firstReturn = ret.Loc()
	}

	ret.SetFunction(fn.declaration)
	r.traceEdge(ret, fn.declaration)

	if ret.IsOmittedExpression() != term.IsOmitted() {
		not := ""
		if term.IsOmitted() {
			not = " not"
		}
		d := diag.New(diag.StageControlFlow, diag.CodeReturnValueMismatch, ret.Loc(),
			fmt.Sprintf("%s should%s provide a return value, to match the function's signature.", ret, not))
		if loc := fn.declaration.Loc(); loc.IsValid() {
			d = d.WithSecondarySpan(diag.SpanFromLoc(loc), "function `"+fn.declaration.Name()+"` declared here")
		}
		return d
	}
	return nil
}

func jumpOutsideLoop(keyword string, loc source.Loc) error {
	return diag.New(diag.StageControlFlow, diag.CodeJumpOutsideLoop, loc,
		keyword+" is not within a loop body").
		WithHelp(keyword + " may only appear in the body of a while loop in the same function")
}

func (r *Resolver) tracef(format string, args ...any) {
	if r.opts.Trace != nil {
		fmt.Fprintf(r.opts.Trace, format, args...)
	}
}

func (r *Resolver) traceEdge(stmt ast.Statement, target ast.Node) {
	if r.opts.Trace == nil {
		return
	}
	r.tracef("%s: %s -> %s\n", stmt.Loc(), stmt, Describe(target))
}

// Describe names a resolution target for humans: `fn F` for a function,
// `while (c) at 3:5` for a loop.
func Describe(target ast.Node) string {
	switch t := target.(type) {
	case *ast.FunctionDeclaration:
		return "fn " + t.Name()
	case *ast.While:
		return "while (" + t.Condition.String() + ") at " + t.Loc().String()
	default:
		return fmt.Sprintf("%T", target)
	}
}
