/*
Package parser provides the table-driven LALR(1) shift/reduce runtime.
Clients have to use package lalr to prepare the necessary parse tables.
The parser utilizes these tables to recognize a token sequence, provided
by any lexer producing scanner.Token values.

The parser is strictly a recognizer: it reports acceptance or the first
failure, together with a structured trace of every step taken, so
failures can be reproduced. There is no error recovery and no semantic
action execution.

Usage

Clients construct and analyse a grammar, then generate tables:

	g, _ := reader.LoadFile("expr.g")
	a, _ := lalr.Analyze(g)
	gen := lalr.NewTableGenerator(a)
	if err := gen.CreateTables(); err != nil { ... }

Finally parse some input:

	p := parser.NewParser(gen.Grammar(), gen.GotoTable(), gen.ActionTable())
	result := p.Parse(tokens)
	if !result.Success { fmt.Println(result.ErrorMessage) }

The generated tables are read-only; multiple parsers may share them
concurrently. A parser allocates only its two stacks per parse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 Wolf Berndt <wolf@berndt.dev>

*/
package parser

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/wberndt/lalr"
	"github.com/wberndt/lalr/scanner"
)

// tracer traces with key 'lalr.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.parser")
}

// Result is the outcome of a parse. On success ErrorMessage is empty.
// Trace holds one line per parser step.
type Result struct {
	Success      bool
	ErrorMessage string
	Trace        []string
}

// Parser is a table-driven shift/reduce parser. Create and initialize
// one with parser.NewParser(...).
type Parser struct {
	g          *lalr.Grammar
	gotoT      *lalr.Table // transition table, terminals and non-terminals
	actionT    *lalr.Table // ACTION table
	stateStack []int
	symStack   []lalr.Symbol
	trace      []string
}

// NewParser creates an LALR(1) parser from generated tables.
func NewParser(g *lalr.Grammar, gotoTable *lalr.Table, actionTable *lalr.Table) *Parser {
	return &Parser{
		g:       g,
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// Parse runs the shift/reduce loop over the token sequence. The end
// marker '$' is appended internally. Parse may be called repeatedly;
// every call starts a fresh trace.
func (p *Parser) Parse(tokens []scanner.Token) Result {
	if p.g == nil || p.gotoT == nil || p.actionT == nil {
		return Result{ErrorMessage: "parser not initialized"}
	}
	p.stateStack = append(p.stateStack[:0], 0)
	p.symStack = append(p.symStack[:0], lalr.EndMarker)
	p.trace = nil
	input := make([]scanner.Token, len(tokens), len(tokens)+1)
	copy(input, tokens)
	input = append(input, scanner.Token{Terminal: lalr.EndMarker, Lexeme: "$"})
	p.tracef("start parsing")
	index := 0
	for {
		state := p.stateStack[len(p.stateStack)-1]
		token := input[index]
		action := p.actionT.Value(state, token.Terminal)
		tracer().Debugf("ACTION(%d, %s) = %d", state, token.Terminal.Name, action)
		switch {
		case action == p.actionT.NullValue():
			return p.fail(fmt.Sprintf("ACTION(%d, %s) has no entry",
				state, token.Terminal.Name), token)
		case action == lalr.ShiftAction:
			next := p.gotoT.Value(state, token.Terminal)
			if next == p.gotoT.NullValue() {
				return p.fail(fmt.Sprintf("shift target missing for (%d, %s)",
					state, token.Terminal.Name), token)
			}
			p.stateStack = append(p.stateStack, int(next))
			p.symStack = append(p.symStack, token.Terminal)
			p.tracef("shift to state %d on %q", next, token.Lexeme)
			index++
		case action == lalr.AcceptAction:
			p.tracef("reduce %v", p.g.Production(0))
			p.tracef("accept")
			return Result{Success: true, Trace: p.trace}
		case action > 0:
			prod := p.g.Production(int(action))
			if result, ok := p.reduce(prod, token); !ok {
				return result
			}
		default:
			return p.fail(fmt.Sprintf("corrupt ACTION entry %d at (%d, %s)",
				action, state, token.Terminal.Name), token)
		}
	}
}

// reduce performs a reduce step for a rule A → X₁ … Xₖ: pop k entries
// off both stacks, then push A and GOTO(top, A). The empty production
// pops nothing but still performs the goto. Underflow means the tables
// are corrupt and is fatal.
func (p *Parser) reduce(prod *lalr.Production, lookahead scanner.Token) (Result, bool) {
	p.tracef("reduce %v", prod)
	if !prod.IsEpsilon() {
		for n := 0; n < len(prod.RHS); n++ {
			if len(p.stateStack) <= 1 {
				return p.fail(fmt.Sprintf("stack underflow while reducing %v", prod),
					lookahead), false
			}
			p.tracef("pop state %d", p.stateStack[len(p.stateStack)-1])
			p.stateStack = p.stateStack[:len(p.stateStack)-1]
			p.symStack = p.symStack[:len(p.symStack)-1]
		}
	}
	state := p.stateStack[len(p.stateStack)-1]
	next := p.gotoT.Value(state, prod.LHS)
	if next == p.gotoT.NullValue() {
		return p.fail(fmt.Sprintf("GOTO(%d, %s) has no entry", state, prod.LHS.Name),
			lookahead), false
	}
	p.stateStack = append(p.stateStack, int(next))
	p.symStack = append(p.symStack, prod.LHS)
	p.tracef("goto state %d on %s", next, prod.LHS.Name)
	return Result{}, true
}

// fail aborts the parse, recording the current token and the contents of
// both stacks.
func (p *Parser) fail(msg string, token scanner.Token) Result {
	state := p.stateStack[len(p.stateStack)-1]
	p.tracef("syntax error at %v in state %d", token, state)
	p.tracef("state stack: %s", stackString(p.stateStack))
	p.tracef("symbol stack: %s", symbolStackString(p.symStack))
	tracer().Errorf("%s", msg)
	return Result{ErrorMessage: msg, Trace: p.trace}
}

func (p *Parser) tracef(format string, args ...interface{}) {
	step := fmt.Sprintf(format, args...)
	tracer().Debugf("%s", step)
	p.trace = append(p.trace, step)
}

func stackString(stack []int) string {
	var b bytes.Buffer
	for i, s := range stack {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", s)
	}
	return b.String()
}

func symbolStackString(stack []lalr.Symbol) string {
	var b bytes.Buffer
	for i, s := range stack {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s.Name)
	}
	return b.String()
}
