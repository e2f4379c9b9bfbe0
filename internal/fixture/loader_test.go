package fixture_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/martimartins/carbon-lang/internal/ast"
	"github.com/martimartins/carbon-lang/internal/fixture"
	"github.com/martimartins/carbon-lang/internal/source"
)

func load(t *testing.T, name string) *ast.AST {
	t.Helper()
	tree, err := fixture.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return tree
}

func TestLoad_Branches(t *testing.T) {
	tree := load(t, "branches.yaml")
	if len(tree.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(tree.Declarations))
	}
	f, ok := tree.Declarations[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", tree.Declarations[0])
	}
	if f.Name() != "F" {
		t.Fatalf("expected name F, got %q", f.Name())
	}
	if f.ReturnTerm.Kind != ast.ReturnExpression || f.ReturnTerm.Type.String() != "i32" {
		t.Fatalf("expected explicit i32 return term, got %q", f.ReturnTerm)
	}
	wantLoc := source.Loc{Filename: filepath.Join("testdata", "branches.yaml"), Line: 3, Column: 5}
	if f.Loc() != wantLoc {
		t.Fatalf("expected loc %v, got %v", wantLoc, f.Loc())
	}

	if got, want := f.Body.String(), "{ if (c) { return 1; } else { return 2; } }"; got != want {
		t.Fatalf("expected body %q, got %q", want, got)
	}
	ifStmt := f.Body.Statements[0].(*ast.If)
	ret := ifStmt.Else.Statements[0].(*ast.Return)
	if ret.Loc().Line != 12 || ret.Loc().Column != 17 {
		t.Fatalf("expected else return at 12:17, got %v", ret.Loc())
	}
}

func TestLoad_Program(t *testing.T) {
	tree := load(t, "program.yaml")

	kinds := make([]string, len(tree.Declarations))
	for i, d := range tree.Declarations {
		kinds[i] = d.Kind().String() + ":" + d.Name()
	}
	want := "ChoiceDeclaration:Ints VariableDeclaration:limit ClassDeclaration:Counter FunctionDeclaration:Main"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("expected declarations %q, got %q", want, got)
	}

	choice := tree.Declarations[0].(*ast.ChoiceDeclaration)
	if len(choice.Alternatives) != 2 || choice.Alternatives[1].Signature.String() != "i32" {
		t.Fatalf("unexpected alternatives %+v", choice.Alternatives)
	}

	class := tree.Declarations[2].(*ast.ClassDeclaration)
	if len(class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(class.Members))
	}
	next := class.Members[0].(*ast.FunctionDeclaration)
	if !next.ReturnTerm.IsAuto() || len(next.Params) != 1 || next.Params[0].String() != "n: i32" {
		t.Fatalf("unexpected Next signature: %v %v", next.Params, next.ReturnTerm)
	}
	reset := class.Members[1].(*ast.FunctionDeclaration)
	if !reset.ReturnTerm.IsOmitted() {
		t.Fatalf("expected Reset to have an omitted return term")
	}
	if got := reset.Body.String(); got != "{ n = 0; return; }" {
		t.Fatalf("unexpected Reset body %q", got)
	}
	if declared := class.Members[2].(*ast.FunctionDeclaration); declared.Body != nil {
		t.Fatalf("expected Declared to have no body")
	}

	main := tree.Declarations[3].(*ast.FunctionDeclaration)
	wantBody := "{ var x: i32 = 0; " +
		"while (true) { match (x) { case 0 => { continue; } case y: i32 => break; default => { { return (x, 1); } } } } " +
		"__continuation k { while (c) { break; } __await; } " +
		"__run k; return 0; }"
	if got := main.Body.String(); got != wantBody {
		t.Fatalf("unexpected Main body:\n got  %s\n want %s", got, wantBody)
	}
}

func TestParse_Expressions(t *testing.T) {
	src := "declarations:\n" +
		"  - function:\n" +
		"      name: F\n" +
		"      body:\n" +
		"        - expr: {call: Print, args: [0x10, false, [], [a, {call: G}]]}\n"
	tree, err := fixture.Parse("inline.yaml", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := tree.Declarations[0].(*ast.FunctionDeclaration)
	if got, want := f.Body.String(), "{ Print(16, false, (), (a, G())); }"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParse_TupleMapping(t *testing.T) {
	src := "declarations:\n" +
		"  - function:\n" +
		"      name: F\n" +
		"      body:\n" +
		"        - return: {tuple: [1, 2]}\n" +
		"        - expr: {call: G, args: [{tuple: []}]}\n"
	tree, err := fixture.Parse("inline.yaml", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := tree.Declarations[0].(*ast.FunctionDeclaration)
	if got, want := f.Body.String(), "{ return (1, 2); G(()); }"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	ret := f.Body.Statements[0].(*ast.Return)
	if _, ok := ret.Expression.(*ast.TupleLiteral); !ok {
		t.Fatalf("expected *ast.TupleLiteral, got %T", ret.Expression)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bad yaml",
			src:  "declarations: [",
			want: "bad.yaml:",
		},
		{
			name: "unknown top-level key",
			src:  "decls: []\n",
			want: `bad.yaml:1:1: unknown key "decls"`,
		},
		{
			name: "unknown declaration",
			src:  "declarations:\n  - struct: {}\n",
			want: `bad.yaml:2:5: unknown declaration kind "struct"`,
		},
		{
			name: "unknown statement",
			src:  "declarations:\n  - function:\n      name: F\n      body:\n        - goto: L\n",
			want: `bad.yaml:5:11: unknown statement kind "goto"`,
		},
		{
			name: "missing while body",
			src:  "declarations:\n  - function:\n      name: F\n      body:\n        - while: {cond: c}\n",
			want: `missing "body"`,
		},
		{
			name: "missing function name",
			src:  "declarations:\n  - function: {body: []}\n",
			want: "missing function name",
		},
		{
			name: "null expression",
			src:  "declarations:\n  - function:\n      name: F\n      body:\n        - expr: ~\n",
			want: "expected an expression, got !!null",
		},
		{
			name: "tuple mixed with call",
			src:  "declarations:\n  - function:\n      name: F\n      body:\n        - expr: {tuple: [1], call: G}\n",
			want: `unknown key "call"`,
		},
		{
			name: "tuple not a sequence",
			src:  "declarations:\n  - function:\n      name: F\n      body:\n        - expr: {tuple: 1}\n",
			want: "expected a sequence",
		},
		{
			name: "clause without pattern",
			src: "declarations:\n  - function:\n      name: F\n      body:\n" +
				"        - match: {expr: x, clauses: [{body: []}]}\n",
			want: "clause needs a pattern or default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.Parse("bad.yaml", []byte(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	tree, err := fixture.Parse("empty.yaml", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tree.Declarations) != 0 {
		t.Fatalf("expected no declarations, got %d", len(tree.Declarations))
	}
}
