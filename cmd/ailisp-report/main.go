// Command ailisp-report renders a captured trace log (produced by
// piping `ailisp`'s output, or copied from the eval_history table) into
// a syntax-highlighted HTML transcript.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/melvinzhang/ailisp/report"
)

var (
	title = flag.String("title", "ailisp trace", "page title of the rendered report")
	out   = flag.String("out", "", "output HTML path; empty writes to stdout")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ailisp-report: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	trace, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailisp-report: %s\n", err)
		os.Exit(1)
	}

	recs := report.ParseTrace(string(trace))
	htmlDoc, err := report.Render(*title, recs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailisp-report: %s\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(htmlDoc)
		return
	}
	if err := os.WriteFile(*out, htmlDoc, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ailisp-report: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ailisp-report [options] [trace-file]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
