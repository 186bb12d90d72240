package lalr

import (
	"fmt"
	"io"
	"os"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Compilers — Principles, Techniques, & Tools" by Aho, Lam,
// Sethi & Ullman, Section 4.6.2 (the canonical LR(0) collection).

// closure0 computes CLOSURE₀ of an item set: for every item A → α · B β
// with B non-terminal, every B → · γ is included; iterated to a fixed
// point. Productions B → ε enter as their (completed) start items, so a
// blocked A → α · B β can be unblocked at parse time by an ε-reduction
// and a GOTO on B.
func (a *Analysis) closure0(S *treeset.Set) *treeset.Set {
	C := newItemSet()
	C.Add(S.Values()...)
	changed := true
	for changed {
		changed = false
		for _, item := range itemsOf(C) {
			B, ok := item.PeekSymbol()
			if !ok || !B.IsNonTerminal() {
				continue
			}
			for _, p := range a.g.ProductionsFor(B) {
				if addItem(C, StartItem(p)) {
					changed = true
				}
			}
		}
	}
	return C
}

// goto0 computes GOTO₀(I, X): advance the dot over X in every item of I
// that has X immediately after the dot, then take the closure.
func (a *Analysis) goto0(I *treeset.Set, X Symbol) *treeset.Set {
	gotoset := newItemSet()
	for _, item := range itemsOf(I) {
		if sym, ok := item.PeekSymbol(); ok && sym == X {
			gotoset.Add(item.Advance())
		}
	}
	gclosure := a.closure0(gotoset)
	tracer().Debugf("GOTO --%v--> %s", X, itemSetString(gclosure))
	return gclosure
}

// transitionSymbols collects every symbol appearing immediately after a
// dot in I, in deterministic (kind, name) order. Epsilon never is a
// transition symbol.
func (a *Analysis) transitionSymbols(I *treeset.Set) []Symbol {
	syms := NewSymbolSet()
	for _, item := range itemsOf(I) {
		if sym, ok := item.PeekSymbol(); ok && !sym.IsEpsilon() {
			syms.Add(sym)
		}
	}
	return syms.Symbols()
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int          // serial ID of this state; assigned in discovery order
	items  *treeset.Set // closure items within this state
	Accept bool         // does this state contain the completed start rule?
}

// CFSM edge between 2 states, directed and labelled with a symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label Symbol
}

// gotoKey keys the transition map over both terminals and non-terminals.
type gotoKey struct {
	state int
	sym   Symbol
}

// Items returns the state's items in deterministic core order.
func (s *CFSMState) Items() []Item {
	return itemsOf(s.items)
}

// Kernel returns the state's kernel items: dot not leftmost, or the
// augmented start item.
func (s *CFSMState) Kernel() []Item {
	var kernel []Item
	for _, i := range s.Items() {
		if i.IsKernel() {
			kernel = append(kernel, i)
		}
	}
	return kernel
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.Items() {
		if i.prod.Serial == 0 && i.Completed() {
			return true
		}
	}
	return false
}

// Dump is a debugging helper.
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// CFSM is the characteristic finite state machine for an LR grammar,
// i.e. the canonical LR(0) state diagram. It is constructed by a
// TableGenerator; clients normally do not use it directly, but it is
// exposed for debugging and for exporting to Graphviz.
type CFSM struct {
	g          *Grammar
	states     []*CFSMState          // states indexed by ID
	edges      *arraylist.List       // all the edges between states
	signatures map[string]*CFSMState // kernel signature → state
	gotoMap    map[gotoKey]int       // the lr0_goto transition map
	S0         *CFSMState            // start state
}

func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:          g,
		edges:      arraylist.New(),
		signatures: make(map[string]*CFSMState),
		gotoMap:    make(map[gotoKey]int),
	}
}

// addState registers an item set as a state, re-using an existing state
// with the same kernel cores.
func (c *CFSM) addState(iset *treeset.Set) (*CFSMState, bool) {
	sig := kernelSignature(iset)
	if s, ok := c.signatures[sig]; ok {
		return s, false
	}
	s := &CFSMState{ID: len(c.states), items: iset}
	c.states = append(c.states, s)
	c.signatures[sig] = s
	return s, true
}

func (c *CFSM) addEdge(from, to *CFSMState, sym Symbol) {
	c.edges.Add(&cfsmEdge{from: from, to: to, label: sym})
	c.gotoMap[gotoKey{state: from.ID, sym: sym}] = to.ID
}

// State returns the state with the given id, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// StateCount returns the number of states of the automaton.
func (c *CFSM) StateCount() int {
	return len(c.states)
}

// GotoTarget returns the target of the transition lr0_goto[(state, sym)].
func (c *CFSM) GotoTarget(state int, sym Symbol) (int, bool) {
	id, ok := c.gotoMap[gotoKey{state: state, sym: sym}]
	return id, ok
}

// EachEdge calls f for every transition, in recording order.
func (c *CFSM) EachEdge(f func(from, to int, sym Symbol)) {
	c.edges.Each(func(_ int, v interface{}) {
		e := v.(*cfsmEdge)
		f(e.from.ID, e.to.ID, e.label)
	})
}

// buildCFSM constructs the canonical collection of LR(0) item sets.
// State ids are assigned in discovery order; together with the sorted
// iteration over transition symbols this makes the numbering
// deterministic, and it becomes the state numbering the parser uses.
func (a *Analysis) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(a.g)
	start := newItemSet()
	start.Add(StartItem(a.super))
	closure0 := a.closure0(start)
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	// Worklist over states; new states are appended, so indexing by ID
	// processes them in discovery order.
	for n := 0; n < len(cfsm.states); n++ {
		s := cfsm.states[n]
		for _, X := range a.transitionSymbols(s.items) {
			gotoset := a.goto0(s.items, X)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				snew.Dump()
			}
			tracer().Debugf("state %d --%v--> state %d", s.ID, X, snew.ID)
			cfsm.addEdge(s, snew, X)
		}
	}
	tracer().Debugf("CFSM has %d states", len(cfsm.states))
	return cfsm
}

// === Export ================================================================

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot export CFSM: %w", err)
	}
	defer f.Close()
	c.toGraphViz(f)
	return nil
}

func (c *CFSM) toGraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	c.EachEdge(func(from, to int, sym Symbol) {
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", from, to, sym.Name)
	})
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(set *treeset.Set) string {
	var s string
	for _, i := range itemsOf(set) {
		s = s + i.String() + "\\n"
	}
	return s
}
