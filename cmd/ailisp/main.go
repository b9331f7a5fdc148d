package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/melvinzhang/ailisp/arena"
	"github.com/melvinzhang/ailisp/config"
	"github.com/melvinzhang/ailisp/eval"
	"github.com/melvinzhang/ailisp/lang"
	"github.com/melvinzhang/ailisp/reader"
	"github.com/melvinzhang/ailisp/run"
	"github.com/melvinzhang/ailisp/telemetry"
)

var (
	execute  = flag.Bool("e", false, "execute arguments as a single expression")
	prompt   = flag.String("prompt", "", "command prompt")
	maxNodes = flag.Int("max-nodes", 0, "arena node limit; 0 means unbounded")
	logLevel = flag.String("log-level", "warn", "zap log level: debug, info, warn, error")
	panicDbg = flag.Bool("panic", false, "let a fatal arena error panic instead of being caught")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logger, err := telemetry.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailisp: %s\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	conf := config.New(logger)
	conf.SetPrompt(*prompt)
	conf.SetDebug("panic", *panicDbg)
	conf.SetRunID(telemetry.NewRunID())
	conf.Logger().Infow("starting run", "run_id", conf.RunID())

	if *execute {
		runSource(conf, strings.NewReader(strings.Join(flag.Args(), " ")+"\n"), os.Stdout)
		return
	}

	if flag.NArg() > 0 {
		for i := 0; i < flag.NArg(); i++ {
			name := flag.Arg(i)
			fd, err := os.Open(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ailisp: %s\n", err)
				os.Exit(1)
			}
			runSource(conf, bufio.NewReader(fd), os.Stdout)
			fd.Close()
		}
		return
	}

	runSource(conf, bufio.NewReader(os.Stdin), os.Stdout)
}

// runSource wires a fresh arena, vocabulary, reader and evaluator around
// src and drives them to completion; each invocation is an independent
// interpreter instance, matching the reference interpreter's one-arena-
// per-process model.
func runSource(conf *config.Config, src io.Reader, out io.Writer) {
	a := arena.New(*maxNodes)
	sym := lang.Bootstrap(a)
	p := arena.NewPrinter(out)
	ev := eval.New(a, sym, conf, p)
	lex := reader.NewLexer(a, src)
	parser := reader.NewParser(a, sym, lex)
	runner := run.New(a, sym, ev, p, parser, conf)

	if err := runner.Run(out); err != nil {
		conf.Logger().Errorw("run terminated", "run_id", conf.RunID(), "error", err)
		fmt.Fprintf(conf.ErrOutput(), "ailisp: %s\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ailisp [options] [file ...]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}
