package controlflow_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/martimartins/carbon-lang/internal/ast"
	"github.com/martimartins/carbon-lang/internal/controlflow"
	"github.com/martimartins/carbon-lang/internal/diag"
	"github.com/martimartins/carbon-lang/internal/fixture"
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		file     string
		wantCode diag.Code
		wantErr  string
	}{
		{file: "branches.yaml"},
		{file: "program.yaml"},
		{
			file:     "auto_after_loop.yaml",
			wantCode: diag.CodeMultipleAutoReturns,
			wantErr:  "testdata/auto_after_loop.yaml:11:11: Only one return is allowed in a function with an `auto` return type.",
		},
		{
			file:     "bare_break.yaml",
			wantCode: diag.CodeJumpOutsideLoop,
			wantErr:  "testdata/bare_break.yaml:6:11: break is not within a loop body",
		},
		{
			file:     "continuation_return.yaml",
			wantCode: diag.CodeReturnOutsideFunction,
			wantErr:  "testdata/continuation_return.yaml:8:17: return is not within a function body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			tree, err := fixture.Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("load: %v", err)
			}

			err = controlflow.ResolveProgram(tree)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var d diag.Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("expected diagnostic, got %v", err)
			}
			if d.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, d.Code)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestScenario_ProgramEdges(t *testing.T) {
	tree, err := fixture.Load(filepath.Join("testdata", "program.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := controlflow.ResolveProgram(tree); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var edges []string
	ast.Inspect(tree, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.Return:
			edges = append(edges, s.String()+" -> "+controlflow.Describe(s.Function()))
		case *ast.Break:
			edges = append(edges, s.String()+" -> "+s.Loop().Condition.String())
		case *ast.Continue:
			edges = append(edges, s.String()+" -> "+s.Loop().Condition.String())
		}
		return true
	})

	want := []string{
		"return n; -> fn Next",
		"return; -> fn Reset",
		"continue; -> true",
		"break; -> true",
		"return (x, 1); -> fn Main",
		"break; -> c",
		"return 0; -> fn Main",
	}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %d: %v", len(want), len(edges), edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("edge %d: expected %q, got %q", i, want[i], edges[i])
		}
	}
}
