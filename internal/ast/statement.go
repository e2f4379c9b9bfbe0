package ast

import (
	"fmt"
	"strings"

	"github.com/martimartins/carbon-lang/internal/source"
)

// StatementKind identifies the concrete type of a Statement.
type StatementKind int

const (
	ReturnKind StatementKind = iota
	BreakKind
	ContinueKind
	IfKind
	BlockKind
	WhileKind
	MatchKind
	ContinuationKind
	ExpressionStatementKind
	AssignKind
	VariableDefinitionKind
	RunKind
	AwaitKind
)

var statementKindNames = [...]string{
	ReturnKind:              "Return",
	BreakKind:               "Break",
	ContinueKind:            "Continue",
	IfKind:                  "If",
	BlockKind:               "Block",
	WhileKind:               "While",
	MatchKind:               "Match",
	ContinuationKind:        "Continuation",
	ExpressionStatementKind: "ExpressionStatement",
	AssignKind:              "Assign",
	VariableDefinitionKind:  "VariableDefinition",
	RunKind:                 "Run",
	AwaitKind:               "Await",
}

func (k StatementKind) String() string {
	if k >= 0 && int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return fmt.Sprintf("StatementKind(%d)", int(k))
}

// Return represents `return expr;` or `return;`.
type Return struct {
	Expression Expression // nil when the value is omitted
	function   *FunctionDeclaration
	loc        source.Loc
}

// NewReturn constructs a return statement. A nil expression omits the value.
func NewReturn(expr Expression, loc source.Loc) *Return {
	return &Return{Expression: expr, loc: loc}
}

// Loc returns the statement location.
func (s *Return) Loc() source.Loc { return s.loc }

// Kind returns ReturnKind.
func (*Return) Kind() StatementKind { return ReturnKind }

// IsOmittedExpression reports whether the statement is a bare `return;`.
func (s *Return) IsOmittedExpression() bool { return s.Expression == nil }

// Function returns the function this statement returns from, or nil before
// control-flow resolution.
func (s *Return) Function() *FunctionDeclaration { return s.function }

// SetFunction records the function this statement returns from. It may be
// called only once.
func (s *Return) SetFunction(fn *FunctionDeclaration) {
	if s.function != nil {
		panic(fmt.Sprintf("%s: return already resolved to function %s", s.loc, s.function.Name()))
	}
	s.function = fn
}

// IsResolved reports whether the target function has been set.
func (s *Return) IsResolved() bool { return s.function != nil }

func (s *Return) String() string {
	if s.Expression == nil {
		return "return;"
	}
	return "return " + s.Expression.String() + ";"
}

func (*Return) statementNode() {}

// Break represents `break;`.
type Break struct {
	loop *While
	loc  source.Loc
}

// NewBreak constructs a break statement.
func NewBreak(loc source.Loc) *Break {
	return &Break{loc: loc}
}

// Loc returns the statement location.
func (s *Break) Loc() source.Loc { return s.loc }

// Kind returns BreakKind.
func (*Break) Kind() StatementKind { return BreakKind }

// Loop returns the loop this statement exits, or nil before control-flow
// resolution.
func (s *Break) Loop() *While { return s.loop }

// SetLoop records the loop this statement exits. It may be called only once.
func (s *Break) SetLoop(loop *While) {
	if s.loop != nil {
		panic(fmt.Sprintf("%s: break already resolved to loop at %s", s.loc, s.loop.Loc()))
	}
	s.loop = loop
}

// IsResolved reports whether the target loop has been set.
func (s *Break) IsResolved() bool { return s.loop != nil }

func (*Break) String() string { return "break;" }

func (*Break) statementNode() {}

// Continue represents `continue;`.
type Continue struct {
	loop *While
	loc  source.Loc
}

// NewContinue constructs a continue statement.
func NewContinue(loc source.Loc) *Continue {
	return &Continue{loc: loc}
}

// Loc returns the statement location.
func (s *Continue) Loc() source.Loc { return s.loc }

// Kind returns ContinueKind.
func (*Continue) Kind() StatementKind { return ContinueKind }

// Loop returns the loop this statement continues, or nil before
// control-flow resolution.
func (s *Continue) Loop() *While { return s.loop }

// SetLoop records the loop this statement continues. It may be called only
// once.
func (s *Continue) SetLoop(loop *While) {
	if s.loop != nil {
		panic(fmt.Sprintf("%s: continue already resolved to loop at %s", s.loc, s.loop.Loc()))
	}
	s.loop = loop
}

// IsResolved reports whether the target loop has been set.
func (s *Continue) IsResolved() bool { return s.loop != nil }

func (*Continue) String() string { return "continue;" }

func (*Continue) statementNode() {}

// If represents `if (cond) { ... } else { ... }`.
type If struct {
	Condition Expression
	Then      *Block
	Else      *Block // nil when there is no else branch
	loc       source.Loc
}

// NewIf constructs an if statement. elseBlock may be nil.
func NewIf(cond Expression, then, elseBlock *Block, loc source.Loc) *If {
	return &If{Condition: cond, Then: then, Else: elseBlock, loc: loc}
}

// Loc returns the statement location.
func (s *If) Loc() source.Loc { return s.loc }

// Kind returns IfKind.
func (*If) Kind() StatementKind { return IfKind }

func (s *If) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

func (*If) statementNode() {}

// Block represents a braced sequence of statements.
type Block struct {
	Statements []Statement
	loc        source.Loc
}

// NewBlock constructs a block statement.
func NewBlock(stmts []Statement, loc source.Loc) *Block {
	return &Block{Statements: stmts, loc: loc}
}

// Loc returns the statement location.
func (s *Block) Loc() source.Loc { return s.loc }

// SetLoc updates the block location.
func (s *Block) SetLoc(loc source.Loc) {
	s.loc = loc
}

// Kind returns BlockKind.
func (*Block) Kind() StatementKind { return BlockKind }

func (s *Block) String() string {
	if s == nil || len(s.Statements) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for _, stmt := range s.Statements {
		b.WriteString(" ")
		b.WriteString(stmt.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (*Block) statementNode() {}

// While represents `while (cond) { ... }`. It is the target of break and
// continue statements in its body.
type While struct {
	Condition Expression
	Body      *Block
	loc       source.Loc
}

// NewWhile constructs a while statement.
func NewWhile(cond Expression, body *Block, loc source.Loc) *While {
	return &While{Condition: cond, Body: body, loc: loc}
}

// Loc returns the statement location.
func (s *While) Loc() source.Loc { return s.loc }

// Kind returns WhileKind.
func (*While) Kind() StatementKind { return WhileKind }

func (s *While) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

func (*While) statementNode() {}

// MatchClause is a single `case pattern => statement` arm. A nil Pattern is
// the `default` arm.
type MatchClause struct {
	Pattern Pattern
	Body    Statement
}

// NewMatchClause constructs a match clause.
func NewMatchClause(pattern Pattern, body Statement) *MatchClause {
	return &MatchClause{Pattern: pattern, Body: body}
}

// Loc returns the location of the clause's pattern, or of its body for the
// default clause.
func (c *MatchClause) Loc() source.Loc {
	if c.Pattern != nil {
		return c.Pattern.Loc()
	}
	return c.Body.Loc()
}

// IsDefault reports whether this is the `default` clause.
func (c *MatchClause) IsDefault() bool { return c.Pattern == nil }

func (c *MatchClause) String() string {
	if c.Pattern == nil {
		return "default => " + c.Body.String()
	}
	return "case " + c.Pattern.String() + " => " + c.Body.String()
}

// Match represents `match (expr) { clauses }`.
type Match struct {
	Expression Expression
	Clauses    []*MatchClause
	loc        source.Loc
}

// NewMatch constructs a match statement.
func NewMatch(expr Expression, clauses []*MatchClause, loc source.Loc) *Match {
	return &Match{Expression: expr, Clauses: clauses, loc: loc}
}

// Loc returns the statement location.
func (s *Match) Loc() source.Loc { return s.loc }

// Kind returns MatchKind.
func (*Match) Kind() StatementKind { return MatchKind }

func (s *Match) String() string {
	var b strings.Builder
	b.WriteString("match (")
	b.WriteString(s.Expression.String())
	b.WriteString(") {")
	for _, clause := range s.Clauses {
		b.WriteString(" ")
		b.WriteString(clause.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (*Match) statementNode() {}

// Continuation represents `__continuation name { ... }`. Its body is an
// independent control region: it is not part of the enclosing function or
// loop.
type Continuation struct {
	Name string
	Body *Block
	loc  source.Loc
}

// NewContinuation constructs a continuation statement.
func NewContinuation(name string, body *Block, loc source.Loc) *Continuation {
	return &Continuation{Name: name, Body: body, loc: loc}
}

// Loc returns the statement location.
func (s *Continuation) Loc() source.Loc { return s.loc }

// Kind returns ContinuationKind.
func (*Continuation) Kind() StatementKind { return ContinuationKind }

func (s *Continuation) String() string {
	return "__continuation " + s.Name + " " + s.Body.String()
}

func (*Continuation) statementNode() {}

// ExpressionStatement evaluates an expression for its effects.
type ExpressionStatement struct {
	Expression Expression
	loc        source.Loc
}

// NewExpressionStatement constructs an expression statement.
func NewExpressionStatement(expr Expression, loc source.Loc) *ExpressionStatement {
	return &ExpressionStatement{Expression: expr, loc: loc}
}

// Loc returns the statement location.
func (s *ExpressionStatement) Loc() source.Loc { return s.loc }

// Kind returns ExpressionStatementKind.
func (*ExpressionStatement) Kind() StatementKind { return ExpressionStatementKind }

func (s *ExpressionStatement) String() string { return s.Expression.String() + ";" }

func (*ExpressionStatement) statementNode() {}

// Assign represents `lhs = rhs;`.
type Assign struct {
	LHS Expression
	RHS Expression
	loc source.Loc
}

// NewAssign constructs an assignment statement.
func NewAssign(lhs, rhs Expression, loc source.Loc) *Assign {
	return &Assign{LHS: lhs, RHS: rhs, loc: loc}
}

// Loc returns the statement location.
func (s *Assign) Loc() source.Loc { return s.loc }

// Kind returns AssignKind.
func (*Assign) Kind() StatementKind { return AssignKind }

func (s *Assign) String() string { return s.LHS.String() + " = " + s.RHS.String() + ";" }

func (*Assign) statementNode() {}

// VariableDefinition represents `var pattern = init;`.
type VariableDefinition struct {
	Pattern Pattern
	Init    Expression
	loc     source.Loc
}

// NewVariableDefinition constructs a variable definition statement.
func NewVariableDefinition(pattern Pattern, init Expression, loc source.Loc) *VariableDefinition {
	return &VariableDefinition{Pattern: pattern, Init: init, loc: loc}
}

// Loc returns the statement location.
func (s *VariableDefinition) Loc() source.Loc { return s.loc }

// Kind returns VariableDefinitionKind.
func (*VariableDefinition) Kind() StatementKind { return VariableDefinitionKind }

func (s *VariableDefinition) String() string {
	return "var " + s.Pattern.String() + " = " + s.Init.String() + ";"
}

func (*VariableDefinition) statementNode() {}

// Run represents `__run expr;`, which resumes a continuation.
type Run struct {
	Argument Expression
	loc      source.Loc
}

// NewRun constructs a run statement.
func NewRun(arg Expression, loc source.Loc) *Run {
	return &Run{Argument: arg, loc: loc}
}

// Loc returns the statement location.
func (s *Run) Loc() source.Loc { return s.loc }

// Kind returns RunKind.
func (*Run) Kind() StatementKind { return RunKind }

func (s *Run) String() string { return "__run " + s.Argument.String() + ";" }

func (*Run) statementNode() {}

// Await represents `__await;`, which suspends the running continuation.
type Await struct {
	loc source.Loc
}

// NewAwait constructs an await statement.
func NewAwait(loc source.Loc) *Await {
	return &Await{loc: loc}
}

// Loc returns the statement location.
func (s *Await) Loc() source.Loc { return s.loc }

// Kind returns AwaitKind.
func (*Await) Kind() StatementKind { return AwaitKind }

func (*Await) String() string { return "__await;" }

func (*Await) statementNode() {}
