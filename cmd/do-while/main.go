package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/arthomnix/do-while/internal/preprocessor"
)

const version = "0.2.1"

const usage = `do-while

Usage:
  do-while [-v] [-k] [-o OUTPUT] [FILE]
  do-while -h | --help
  do-while --version

Arguments:
  FILE  Source file to preprocess. A file named *.dw.go is rewritten to
        the matching *.go file next to it. Reads stdin when omitted.

Options:
  -o, --output=OUTPUT  Write to OUTPUT instead of the derived name.
  -k, --keep-lines     Record the original file:line above each expansion.
  -v, --verbose        Log each expansion to stderr.
  -h, --help           Display this help.
  --version            Print do-while version.
`

func main() {
	opts, err := docopt.ParseArgs(usage, nil, "do-while "+version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	file, _ := opts.String("FILE")
	output, _ := opts.String("--output")
	keep, _ := opts.Bool("--keep-lines")
	verbose, _ := opts.Bool("--verbose")

	pp := preprocessor.New()
	pp.KeepLineComments = keep
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal("Cannot create new logger:", err)
		}
		// Sync error ignored. See https://github.com/uber-go/zap/issues/328
		defer l.Sync()
		pp.Log = l.Sugar()
	}

	in := os.Stdin
	name := "<stdin>"
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		in, name = f, file
	}

	var buf bytes.Buffer
	if err := pp.Process(name, in, &buf); err != nil {
		fatal(err)
	}

	if output == "" {
		output = derivedName(file)
	}
	if output == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			fatal(err)
		}
		return
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fatal(err)
	}
}

// derivedName maps foo.dw.go to foo.go; anything else goes to stdout.
func derivedName(file string) string {
	if strings.HasSuffix(file, ".dw.go") {
		return strings.TrimSuffix(file, ".dw.go") + ".go"
	}
	return ""
}

func fatal(err error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
