package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/zdef/diag"
	"github.com/wippyai/zdef/ffi"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the CLI and returns the process exit code. Deferred calls
// run before main exits.
func execute(args []string) int {
	flags := flag.NewFlagSet("zdef", flag.ContinueOnError)
	var (
		expr        = flags.String("e", "", "Type expression to resolve, e.g. '[*:0]const u8'")
		file        = flags.String("f", "", "Binding file with one declaration per statement")
		interactive = flags.Bool("i", false, "Interactive mode with TUI")
		pointerSize = flags.Uint("ptr", 0, "Target pointer size in bytes (0 = platform)")
		showWIT     = flags.Bool("wit", false, "Also print the WIT projection")
		verbose     = flags.Bool("v", false, "Log engine activity to stderr")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *expr == "" && *file == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: zdef -e <type expression> [-ptr 4|8] [-wit]")
		fmt.Fprintln(os.Stderr, "       zdef -f <bindings.zdef> [-ptr 4|8] [-wit]")
		fmt.Fprintln(os.Stderr, "       zdef -i [-f <bindings.zdef>]  (interactive mode)")
		return 1
	}

	if *pointerSize != 0 && *pointerSize != 4 && *pointerSize != 8 {
		fmt.Fprintln(os.Stderr, "Error: -ptr must be 4 or 8")
		return 1
	}

	opts := ffi.DefaultOptions()
	if *pointerSize != 0 {
		opts.PointerSize = uint32(*pointerSize)
	}
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			opts.Logger = l
			diag.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}
	engine := ffi.New(opts)

	if *interactive {
		if err := runInteractive(engine, *file, *showWIT); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	r := newRenderer(engine.PointerSize(), styled, *showWIT)

	if err := run(engine, r, *file, *expr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(engine *ffi.Engine, r *renderer, file, expr string) error {
	failed := false

	if file != "" {
		src, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		descs, err := engine.ParseUnit(string(src), file)
		for _, d := range descs {
			fmt.Println(r.descriptor(d))
		}
		if err != nil {
			failed = true
		}
	}

	if expr != "" {
		d, err := engine.ParseTypeExpression(expr)
		if d != nil {
			fmt.Println(r.descriptor(d))
		}
		if err != nil {
			failed = true
		}
	}

	if diags := engine.Diagnostics(); len(diags) > 0 {
		fmt.Fprint(os.Stderr, r.diagnostics(diags))
	}
	if failed {
		return fmt.Errorf("%d diagnostic(s)", len(engine.Diagnostics()))
	}
	return nil
}
