package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/martimartins/carbon-lang/internal/ast"
	"github.com/martimartins/carbon-lang/internal/controlflow"
	"github.com/martimartins/carbon-lang/internal/diag"
	"github.com/martimartins/carbon-lang/internal/fixture"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("carbon-resolve", flag.ContinueOnError)
	flags.SetOutput(stderr)
	trace := flags.Bool("trace", false, "Print every resolved control-flow edge to stderr")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: carbon-resolve [options] <command> <file>\n")
		fmt.Fprintf(stderr, "\nCommands:\n")
		fmt.Fprintf(stderr, "  check <file>    Resolve control flow and report the first error\n")
		fmt.Fprintf(stderr, "  dump <file>     Resolve control flow and print every edge\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 1 {
		flags.Usage()
		return 2
	}

	command := flags.Arg(0)
	rest := flags.Args()[1:]

	opts := controlflow.Options{}
	if *trace {
		opts.Trace = stderr
	}

	switch command {
	case "check":
		return runCheck(rest, opts, stdout, stderr)
	case "dump":
		return runDump(rest, opts, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		flags.Usage()
		return 2
	}
}

// resolveFile loads and resolves a fixture, rendering any diagnostic to
// stderr. It returns nil if the caller should stop.
func resolveFile(command string, args []string, opts controlflow.Options, stderr io.Writer) *ast.AST {
	if len(args) != 1 {
		fmt.Fprintf(stderr, "Usage: carbon-resolve %s <file>\n", command)
		return nil
	}
	tree, err := fixture.Load(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "carbon-resolve: %v\n", err)
		return nil
	}
	if err := controlflow.New(opts).ResolveProgram(tree); err != nil {
		var d diag.Diagnostic
		if errors.As(err, &d) {
			diag.NewFormatter(stderr).Format(d)
		} else {
			fmt.Fprintf(stderr, "carbon-resolve: %v\n", err)
		}
		return nil
	}
	return tree
}

func runCheck(args []string, opts controlflow.Options, stdout, stderr io.Writer) int {
	tree := resolveFile("check", args, opts, stderr)
	if tree == nil {
		return 1
	}
	fmt.Fprintf(stdout, "%s: ok\n", args[0])
	return 0
}

func runDump(args []string, opts controlflow.Options, stdout, stderr io.Writer) int {
	tree := resolveFile("dump", args, opts, stderr)
	if tree == nil {
		return 1
	}
	ast.Inspect(tree, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.Return:
			fmt.Fprintf(stdout, "%s: %s -> %s\n", s.Loc(), s, controlflow.Describe(s.Function()))
		case *ast.Break:
			fmt.Fprintf(stdout, "%s: %s -> %s\n", s.Loc(), s, controlflow.Describe(s.Loop()))
		case *ast.Continue:
			fmt.Fprintf(stdout, "%s: %s -> %s\n", s.Loc(), s, controlflow.Describe(s.Loop()))
		}
		return true
	})
	return 0
}
