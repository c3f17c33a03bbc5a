// Command argusmon is a command-line front end for offline STL monitoring:
// check a formula against a recorded trace, or canonicalize a formula's
// concrete syntax.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"argus/expr"
	"argus/internal/traceio"
	"argus/parser"
	"argus/semantics"
	"argus/signal"
	"argus/trace"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	runID := uuid.New().String()[:8]
	logger := log.New(os.Stderr, fmt.Sprintf("argusmon[%s] ", runID), log.LstdFlags)

	var err error
	switch os.Args[1] {
	case "check":
		err = runCheck(logger, os.Args[2:])
	case "fmt":
		err = runFmt(os.Args[2:])
	case "version":
		fmt.Println("argusmon " + version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "argusmon: "+err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  argusmon check <formula> <trace-file> [--interp linear|constant] [--mode bool|robust]
  argusmon fmt <formula>
  argusmon version`)
}

func runFmt(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("fmt requires exactly one argument: the formula")
	}
	node, err := parser.Parse(args[0])
	if err != nil {
		return err
	}
	fmt.Println(expr.Sprint(node))
	return nil
}

type checkOpts struct {
	formula string
	file    string
	mode    string
}

func parseCheckArgs(args []string) (*checkOpts, error) {
	opts := &checkOpts{mode: "bool"}
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mode":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--mode requires a value")
			}
			opts.mode = args[i]
		case "--interp":
			i++ // accepted for forward compatibility with traceio loaders that need an explicit hint; unused today since both loaders infer interpolation per column/signal.
			if i >= len(args) {
				return nil, fmt.Errorf("--interp requires a value")
			}
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) != 2 {
		return nil, fmt.Errorf("check requires exactly two positional arguments: formula and trace-file")
	}
	opts.formula, opts.file = positional[0], positional[1]
	if opts.mode != "bool" && opts.mode != "robust" {
		return nil, fmt.Errorf("--mode must be \"bool\" or \"robust\", got %q", opts.mode)
	}
	return opts, nil
}

func runCheck(logger *log.Logger, args []string) error {
	opts, err := parseCheckArgs(args)
	if err != nil {
		return err
	}

	node, err := parser.Parse(opts.formula)
	if err != nil {
		return err
	}

	logger.Printf("loading trace %s", opts.file)
	tr, err := loadTrace(opts.file)
	if err != nil {
		return err
	}

	switch opts.mode {
	case "bool":
		result, err := semantics.EvalBool(node, tr)
		if err != nil {
			return err
		}
		return printBoolVerdict(result)
	default:
		result, err := semantics.EvalRobust(node, tr)
		if err != nil {
			return err
		}
		return printRobustVerdict(result)
	}
}

func loadTrace(path string) (*trace.Trace, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return traceio.LoadCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		return traceio.LoadSQLite(path)
	default:
		return nil, fmt.Errorf("unrecognized trace file extension %q (want .csv, .db, .sqlite)", ext)
	}
}

func printBoolVerdict(result *signal.Signal[bool]) error {
	t, ok := result.StartTime()
	if !ok {
		fmt.Println("(empty trace: no verdict)")
		return nil
	}
	v, _ := result.At(t)
	fmt.Printf("%s at %s\n", colorBool(v), humanize.FtoaWithDigits(t, 3)+"s")
	return nil
}

func printRobustVerdict(result *signal.Signal[float64]) error {
	t, ok := result.StartTime()
	if !ok {
		fmt.Println("(empty trace: no verdict)")
		return nil
	}
	v, _ := result.At(t)
	fmt.Printf("robustness = %.6f at %s\n", v, humanize.FtoaWithDigits(t, 3)+"s")
	return nil
}

func colorBool(v bool) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	if v {
		return "\x1b[32mTRUE\x1b[0m"
	}
	return "\x1b[31mFALSE\x1b[0m"
}
