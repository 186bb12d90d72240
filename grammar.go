package lalr

import (
	"bytes"
	"fmt"
)

// Production is a single grammar rule LHS → RHS. The RHS may consist of a
// single epsilon symbol, denoting the empty production.
//
// Productions carry a serial number, dense and starting at 0. Serial 0 is
// reserved for the augmented start rule S' → S, which Analyze inserts
// before any automaton work begins. Serial numbers are assigned by the
// owning grammar; two grammars built in one process do not interfere.
type Production struct {
	Serial int
	LHS    Symbol
	RHS    []Symbol
}

// IsEpsilon is true for the empty production.
func (p *Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsEpsilon()
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(p.LHS.Name)
	b.WriteString(" ->")
	for _, sym := range p.RHS {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}

// Grammar holds the productions of a context-free grammar, together with
// its terminal and non-terminal alphabets. The zero value is not usable;
// create grammars with NewGrammar.
type Grammar struct {
	Name      string
	Start     Symbol // first LHS added, unless set explicitly
	prods     []*Production
	byLHS     map[Symbol][]*Production
	terms     *SymbolSet
	nonterms  *SymbolSet
	augmented bool
}

// NewGrammar creates an empty grammar.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:     name,
		prods:    []*Production{nil}, // slot 0 reserved for S' → S
		byLHS:    make(map[Symbol][]*Production),
		terms:    NewSymbolSet(),
		nonterms: NewSymbolSet(),
	}
}

// AddProduction appends a rule to the grammar and assigns it the next
// serial number. lhs is registered as a non-terminal; every terminal of
// rhs except epsilon is added to the terminal alphabet, every
// non-terminal to the non-terminal alphabet. The first lhs ever added
// becomes the start symbol.
func (g *Grammar) AddProduction(lhs Symbol, rhs []Symbol) *Production {
	if g.augmented {
		tracer().Errorf("grammar %q is frozen, ignoring production for %v", g.Name, lhs)
		return nil
	}
	lhs.Kind = NonTerminal
	if g.Start == (Symbol{}) {
		g.Start = lhs
	}
	p := &Production{
		Serial: len(g.prods),
		LHS:    lhs,
		RHS:    rhs,
	}
	g.prods = append(g.prods, p)
	g.byLHS[lhs] = append(g.byLHS[lhs], p)
	g.nonterms.Add(lhs)
	for _, sym := range rhs {
		switch sym.Kind {
		case Terminal:
			g.terms.Add(sym)
		case NonTerminal:
			g.nonterms.Add(sym)
		}
	}
	return p
}

// augment inserts the start rule S' → S at serial 0. Called by Analyze;
// afterwards the grammar is frozen.
func (g *Grammar) augment() (*Production, error) {
	if g.augmented {
		return g.prods[0], nil
	}
	if g.Start == (Symbol{}) {
		return nil, fmt.Errorf("grammar %q has no productions", g.Name)
	}
	super := NonTerm(g.Start.Name + "'")
	p := &Production{
		Serial: 0,
		LHS:    super,
		RHS:    []Symbol{g.Start},
	}
	g.prods[0] = p
	g.byLHS[super] = []*Production{p}
	g.nonterms.Add(super)
	g.augmented = true
	return p, nil
}

// Production returns the rule with the given serial number, or nil.
// Serial 0 is the augmented start rule (available after Analyze).
func (g *Grammar) Production(serial int) *Production {
	if serial < 0 || serial >= len(g.prods) {
		return nil
	}
	return g.prods[serial]
}

// ProductionCount returns the number of rules, including the augmented
// start rule once the grammar has been analysed.
func (g *Grammar) ProductionCount() int {
	if g.augmented {
		return len(g.prods)
	}
	return len(g.prods) - 1
}

// ProductionsFor returns the rules with the given left-hand side, in
// insertion order.
func (g *Grammar) ProductionsFor(lhs Symbol) []*Production {
	lhs.Kind = NonTerminal
	return g.byLHS[lhs]
}

// Terminals returns the terminal alphabet in deterministic order. The
// end marker '$' is not part of the alphabet.
func (g *Grammar) Terminals() []Symbol {
	return g.terms.Symbols()
}

// NonTerminals returns the non-terminal alphabet in deterministic order,
// including S' after analysis.
func (g *Grammar) NonTerminals() []Symbol {
	return g.nonterms.Symbols()
}

// EachSymbol calls f for every terminal (including '$') and every
// non-terminal, in deterministic (kind, name) order.
func (g *Grammar) EachSymbol(f func(Symbol)) {
	all := NewSymbolSet(EndMarker)
	all.AddAll(g.terms)
	all.AddAll(g.nonterms)
	for _, sym := range all.Symbols() {
		f(sym)
	}
}

// Dump logs all productions of the grammar; debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %q, start symbol %v", g.Name, g.Start)
	for i, p := range g.prods {
		if p == nil {
			continue
		}
		tracer().Debugf("%3d: %v", i, p)
	}
}
