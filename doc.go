/*
Package lalr implements an LALR(1) parser generator.

Clients construct a grammar, either programmatically or from a grammar
text file (see package reader), subject it to static analysis, and then
generate parse tables from it.

Building a Grammar

Grammars consist of productions over terminal and non-terminal symbols.
Productions may have an epsilon right-hand side, denoting the empty
derivation.

Example:

    g := lalr.NewGrammar("G")
    g.AddProduction(lalr.NonTerm("S"), []lalr.Symbol{lalr.NonTerm("A"), lalr.NonTerm("B")})
    g.AddProduction(lalr.NonTerm("A"), []lalr.Symbol{lalr.Term("a")})
    g.AddProduction(lalr.NonTerm("A"), []lalr.Symbol{lalr.EpsilonSymbol})
    g.AddProduction(lalr.NonTerm("B"), []lalr.Symbol{lalr.Term("b")})

Static Grammar Analysis

After the grammar is complete it has to be analysed. The analysis
augments the grammar with a fresh start rule S' → S (production 0) and
computes FIRST sets for all symbols and symbol sequences.

    a, err := lalr.Analyze(g)
    fmt.Printf("FIRST(A) = %v", a.First(lalr.NonTerm("A")))

Table Generation

Using the grammar analysis as input, the canonical LR(0) automaton (the
characteristic finite state machine, CFSM) is constructed, promoted to
LALR(1) by lookahead propagation, and materialized as ACTION and GOTO
tables. Conflicts are fatal and reported with full diagnostics.

    gen := lalr.NewTableGenerator(a)
    if err := gen.CreateTables(); err != nil { ... }  // e.g. *lalr.ConflictError

The CFSM is kept around after table generation. It can be exported to
Graphviz's Dot format, the tables to HTML; both are intended for
debugging.

A table-driven shift/reduce runtime lives in package parser, a scanner
interface plus a lexmachine-backed demo lexer in package scanner.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 Wolf Berndt <wolf@berndt.dev>

*/
package lalr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.gen'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.gen")
}
