package lalr

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The classic expression grammar:
//
//     E -> E + T | T
//     T -> T * F | F
//     F -> ( E ) | id
//
func exprGrammar(t *testing.T) *Grammar {
	g := NewGrammar("expr")
	g.AddProduction(NonTerm("E"), []Symbol{NonTerm("E"), Term("+"), NonTerm("T")})
	g.AddProduction(NonTerm("E"), []Symbol{NonTerm("T")})
	g.AddProduction(NonTerm("T"), []Symbol{NonTerm("T"), Term("*"), NonTerm("F")})
	g.AddProduction(NonTerm("T"), []Symbol{NonTerm("F")})
	g.AddProduction(NonTerm("F"), []Symbol{Term("("), NonTerm("E"), Term(")")})
	g.AddProduction(NonTerm("F"), []Symbol{Term("id")})
	return g
}

func TestCFSMStateCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	a, err := Analyze(exprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	cfsm := a.buildCFSM()
	if cfsm.StateCount() != 12 {
		t.Errorf("expected 12 LR(0) states for the expression grammar, got %d",
			cfsm.StateCount())
	}
	if cfsm.S0 == nil || cfsm.S0.ID != 0 {
		t.Errorf("start state must have id 0")
	}
}

// Every recorded transition I --X--> J must satisfy: J's kernel cores are
// exactly the advanced cores of I's items with X after the dot.
func TestCFSMGotoKernels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	a, err := Analyze(exprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	cfsm := a.buildCFSM()
	for _, s := range cfsm.states {
		for _, X := range a.transitionSymbols(s.items) {
			target, ok := cfsm.GotoTarget(s.ID, X)
			if !ok {
				t.Fatalf("no transition recorded for state %d on %v", s.ID, X)
			}
			expected := make(map[itemCore]bool)
			for _, item := range s.Items() {
				if sym, ok := item.PeekSymbol(); ok && sym == X {
					expected[item.Advance().core()] = true
				}
			}
			J := cfsm.State(target)
			got := make(map[itemCore]bool)
			for _, item := range J.Kernel() {
				got[item.core()] = true
			}
			if len(got) != len(expected) {
				t.Errorf("state %d on %v: kernel of state %d has %d cores, expected %d",
					s.ID, X, target, len(got), len(expected))
			}
			for core := range expected {
				if !got[core] {
					t.Errorf("state %d on %v: kernel core %v missing in state %d",
						s.ID, X, core, target)
				}
			}
		}
	}
}

// State 0 contains S' → · S and must not reduce on anything (S6).
func TestStartStateInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	a, err := Analyze(exprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	gen := NewTableGenerator(a)
	if err := gen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, item := range gen.CFSM().State(0).Items() {
		if item.Production().Serial == 0 && item.Dot() == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("state 0 does not contain the augmented start item")
	}
	gen.Grammar().EachSymbol(func(sym Symbol) {
		if !sym.IsTerminal() {
			return
		}
		if act := gen.Action(0, sym); act.Type == ActionReduce {
			t.Errorf("state 0 must not reduce, but ACTION(0, %s) = %v", sym.Name, act)
		}
	})
	if act := gen.Action(0, Term("id")); act.Type != ActionShift {
		t.Errorf("ACTION(0, id) = %v, expected a shift", act)
	}
}

// Two builds over the identical grammar must produce identical state
// numbering and identical tables.
func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.gen")
	defer teardown()
	//
	dump := func() []byte {
		a, err := Analyze(exprGrammar(t))
		if err != nil {
			t.Fatal(err)
		}
		gen := NewTableGenerator(a)
		if err := gen.CreateTables(); err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		TablesAsText(gen, &buf)
		gen.CFSM().toGraphViz(&buf)
		return buf.Bytes()
	}
	first, second := dump(), dump()
	if !bytes.Equal(first, second) {
		t.Errorf("two builds over the same grammar differ")
	}
}
