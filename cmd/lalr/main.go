package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/wberndt/lalr"
	"github.com/wberndt/lalr/parser"
	"github.com/wberndt/lalr/reader"
	"github.com/wberndt/lalr/scanner"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 Wolf Berndt <wolf@berndt.dev>

*/

// main() loads a grammar file, generates the LALR(1) parse tables for it,
// performs any requested exports, and then always starts an interactive
// loop (there is no export-only mode): every input line is tokenized with
// the demo C-like lexer and handed to the parser, and the verdict is
// printed, followed by the parse trace on failure or, with -steps, always.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	grammarFile := flag.String("grammar", "", "Grammar file to load")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	dotFile := flag.String("dot", "", "Export the CFSM to a Graphviz file")
	htmlFile := flag.String("html", "", "Export the parse tables to an HTML file")
	showTables := flag.Bool("tables", false, "Print the parse tables")
	showTrace := flag.Bool("steps", false, "Print the parse trace after every parse")
	flag.Parse()
	for _, key := range []string{"lalr.gen", "lalr.reader", "lalr.scanner", "lalr.parser"} {
		tracing.Select(key).SetTraceLevel(traceLevel(*tlevel))
	}
	if *grammarFile == "" {
		pterm.Error.Println("no grammar file given, use -grammar")
		os.Exit(1)
	}
	//
	// load and analyse the grammar, generate the tables
	g, err := reader.LoadFile(*grammarFile)
	if err != nil {
		pterm.Error.Printf("cannot load grammar: %v\n", err)
		os.Exit(1)
	}
	a, err := lalr.Analyze(g)
	if err != nil {
		pterm.Error.Printf("cannot analyse grammar: %v\n", err)
		os.Exit(1)
	}
	g.Dump() // only visible in debug mode
	gen := lalr.NewTableGenerator(a)
	if err := gen.CreateTables(); err != nil {
		pterm.Error.Printf("table generation failed:\n%v\n", err)
		os.Exit(2)
	}
	pterm.Info.Printf("grammar %q: %d productions, %d states, no conflicts\n",
		g.Name, g.ProductionCount(), gen.CFSM().StateCount())
	if *showTables {
		lalr.TablesAsText(gen, os.Stdout)
	}
	if *dotFile != "" {
		if err := gen.CFSM().CFSM2GraphViz(*dotFile); err != nil {
			pterm.Error.Println(err.Error())
		} else {
			pterm.Info.Printf("exported CFSM to %s\n", *dotFile)
		}
	}
	if *htmlFile != "" {
		export(*htmlFile, func(w io.Writer) {
			lalr.ActionTableAsHTML(gen, w)
			lalr.GotoTableAsHTML(gen, w)
		})
	}
	//
	// set up the lexer and the REPL
	lx, err := scanner.CLexer()
	if err != nil {
		pterm.Error.Printf("cannot compile lexer: %v\n", err)
		os.Exit(3)
	}
	repl, err := readline.New("parse> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	p := parser.NewParser(gen.Grammar(), gen.GotoTable(), gen.ActionTable())
	pterm.Info.Println("enter input to parse, quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens, err := lx.Tokenize(line)
		if err != nil {
			pterm.Error.Printf("cannot tokenize input: %v\n", err)
			continue
		}
		result := p.Parse(tokens)
		if result.Success {
			pterm.Success.Println("input accepted")
		} else {
			pterm.Error.Println(result.ErrorMessage)
		}
		if *showTrace || !result.Success {
			for _, step := range result.Trace {
				fmt.Println("  " + step)
			}
		}
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func export(filename string, f func(io.Writer)) {
	w, err := os.Create(filename)
	if err != nil {
		pterm.Error.Printf("cannot export to %s: %v\n", filename, err)
		return
	}
	defer w.Close()
	f(w)
	pterm.Info.Printf("exported to %s\n", filename)
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}
