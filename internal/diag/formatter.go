package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Formatter renders diagnostics with source snippets.
type Formatter struct {
	out         io.Writer
	sourceCache map[string][]string // source lines by filename
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string][]string),
	}
}

// AddSource registers source text for a file, bypassing the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = strings.Split(src, "\n")
}

// loadSource loads the lines of a file (cached).
func (f *Formatter) loadSource(filename string) ([]string, error) {
	if lines, ok := f.sourceCache[filename]; ok {
		return lines, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	f.AddSource(filename, string(data))
	return f.sourceCache[filename], nil
}

// Format writes d to the formatter's output.
func (f *Formatter) Format(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span)
	}

	spans := d.LabeledSpans
	if len(spans) == 0 && d.Span.IsValid() {
		spans = []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	f.printSnippets(spans)

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// printSnippets prints each spanned line once, with carets under primary
// spans and tildes under secondary ones. Files that cannot be read are
// skipped.
func (f *Formatter) printSnippets(spans []LabeledSpan) {
	sorted := make([]LabeledSpan, 0, len(spans))
	for _, s := range spans {
		if s.Span.IsValid() && s.Span.Filename != "" {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Span, sorted[j].Span
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	for _, s := range sorted {
		lines, err := f.loadSource(s.Span.Filename)
		if err != nil || s.Span.Line > len(lines) {
			continue
		}
		content := lines[s.Span.Line-1]
		gutter := strings.Repeat(" ", len(fmt.Sprint(s.Span.Line)))
		mark := "^"
		if s.Style == "secondary" {
			mark = "~"
		}
		fmt.Fprintf(f.out, " %s |\n", gutter)
		fmt.Fprintf(f.out, " %d | %s\n", s.Span.Line, content)
		underline := strings.Repeat(" ", s.Span.Column-1) + mark
		if s.Label != "" {
			underline += " " + s.Label
		}
		fmt.Fprintf(f.out, " %s | %s\n", gutter, underline)
	}
}
