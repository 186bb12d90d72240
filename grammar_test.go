package lalr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S -> A B
// A -> a | ε
// B -> b
func epsilonGrammar(t *testing.T) *Grammar {
	g := NewGrammar("eps")
	g.AddProduction(NonTerm("S"), []Symbol{NonTerm("A"), NonTerm("B")})
	g.AddProduction(NonTerm("A"), []Symbol{Term("a")})
	g.AddProduction(NonTerm("A"), []Symbol{EpsilonSymbol})
	g.AddProduction(NonTerm("B"), []Symbol{Term("b")})
	return g
}

func TestGrammarSerials(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	g := epsilonGrammar(t)
	if g.Start != NonTerm("S") {
		t.Errorf("expected start symbol S, got %v", g.Start)
	}
	a, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	super := a.Grammar().Production(0)
	if super == nil || super.LHS != NonTerm("S'") {
		t.Fatalf("expected production 0 to be S' -> S, got %v", super)
	}
	if len(super.RHS) != 1 || super.RHS[0] != NonTerm("S") {
		t.Errorf("augmented rule has wrong RHS: %v", super)
	}
	for serial := 0; serial < g.ProductionCount(); serial++ {
		p := g.Production(serial)
		if p == nil {
			t.Errorf("production serials are not dense: %d missing", serial)
		} else if p.Serial != serial {
			t.Errorf("production %v stored under serial %d", p, serial)
		}
	}
}

func TestGrammarAlphabets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	g := epsilonGrammar(t)
	terms := NewSymbolSet(g.Terminals()...)
	if terms.Size() != 2 || !terms.Contains(Term("a")) || !terms.Contains(Term("b")) {
		t.Errorf("expected terminal alphabet {a b}, got %v", terms)
	}
	if terms.Contains(EpsilonSymbol) {
		t.Errorf("epsilon must not enter the terminal alphabet")
	}
	nonterms := NewSymbolSet(g.NonTerminals()...)
	for _, name := range []string{"S", "A", "B"} {
		if !nonterms.Contains(NonTerm(name)) {
			t.Errorf("missing non-terminal %s", name)
		}
	}
}

func TestEpsilonProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	g := epsilonGrammar(t)
	var eps *Production
	for _, p := range g.ProductionsFor(NonTerm("A")) {
		if p.IsEpsilon() {
			eps = p
		}
	}
	if eps == nil {
		t.Fatal("expected an epsilon production for A")
	}
	item := StartItem(eps)
	if !item.Completed() {
		t.Errorf("the start item of an epsilon production must count as completed")
	}
	if _, ok := item.PeekSymbol(); ok {
		t.Errorf("an epsilon production must not expose a symbol after the dot")
	}
}
