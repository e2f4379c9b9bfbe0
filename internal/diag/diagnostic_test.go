package diag_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/martimartins/carbon-lang/internal/diag"
	"github.com/martimartins/carbon-lang/internal/source"
)

func TestNew(t *testing.T) {
	loc := source.Loc{Filename: "f.carbon", Line: 3, Column: 5}
	d := diag.New(diag.StageControlFlow, diag.CodeJumpOutsideLoop, loc, "break is not within a loop body")

	if d.Stage != diag.StageControlFlow {
		t.Fatalf("expected stage %q, got %q", diag.StageControlFlow, d.Stage)
	}
	if d.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, d.Severity)
	}
	wantSpan := diag.Span{Filename: "f.carbon", Line: 3, Column: 5}
	if d.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, d.Span)
	}
	if len(d.LabeledSpans) != 1 || d.LabeledSpans[0].Style != "primary" {
		t.Fatalf("expected one primary labeled span, got %+v", d.LabeledSpans)
	}
	if got, want := d.Error(), "f.carbon:3:5: break is not within a loop body"; got != want {
		t.Fatalf("expected error %q, got %q", want, got)
	}
}

func TestNewWithoutLocation(t *testing.T) {
	d := diag.New(diag.StageControlFlow, diag.CodeJumpOutsideLoop, source.Loc{}, "oops")
	if len(d.LabeledSpans) != 0 {
		t.Fatalf("expected no labeled spans, got %+v", d.LabeledSpans)
	}
	if d.Error() != "oops" {
		t.Fatalf("expected bare message, got %q", d.Error())
	}
}

func TestDiagnosticAsError(t *testing.T) {
	var err error = diag.New(diag.StageControlFlow, diag.CodeMultipleAutoReturns, source.Loc{Line: 1, Column: 1}, "x")
	wrapped := fmt.Errorf("resolving: %w", err)

	var d diag.Diagnostic
	if !errors.As(wrapped, &d) {
		t.Fatalf("expected errors.As to find the diagnostic")
	}
	if d.Code != diag.CodeMultipleAutoReturns {
		t.Fatalf("expected code %q, got %q", diag.CodeMultipleAutoReturns, d.Code)
	}
}

func TestFormatterWithSource(t *testing.T) {
	var out bytes.Buffer
	f := diag.NewFormatter(&out)
	f.AddSource("f.carbon", "fn F() {\n  break;\n}\n")

	d := diag.New(diag.StageControlFlow, diag.CodeJumpOutsideLoop,
		source.Loc{Filename: "f.carbon", Line: 2, Column: 3}, "break is not within a loop body").
		WithNote("innermost enclosing construct is function F")
	f.Format(d)

	got := out.String()
	for _, want := range []string{
		"error[CONTROL_FLOW_JUMP_OUTSIDE_LOOP]: break is not within a loop body\n",
		"  --> f.carbon:2:3\n",
		" 2 |   break;\n",
		"   |   ^\n",
		"  = note: innermost enclosing construct is function F\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestFormatterWithoutSource(t *testing.T) {
	var out bytes.Buffer
	f := diag.NewFormatter(&out)

	d := diag.New(diag.StageControlFlow, diag.CodeReturnOutsideFunction,
		source.Loc{Filename: "does-not-exist.carbon", Line: 7, Column: 1}, "return is not within a function body").
		WithHelp("move the return into a function body")
	f.Format(d)

	want := "error[CONTROL_FLOW_RETURN_OUTSIDE_FUNCTION]: return is not within a function body\n" +
		"  --> does-not-exist.carbon:7:1\n" +
		"help: move the return into a function body\n"
	if out.String() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}
