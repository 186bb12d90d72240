package lalr

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// The LALR(1) lookahead engine. Lookahead sets are computed for the
// kernel items of every CFSM state with the spontaneous-generation /
// propagation algorithm (Aho, Lam, Sethi & Ullman, §4.7.5), using the
// sentinel terminal '#'. Lookaheads are kept in a side table keyed by
// (state, item core); items inside hashed sets are never mutated.

// laSet is an LALR(1) item set: an ordered set of item cores plus their
// lookahead sets. Items are equal modulo core; lookaheads merge by union
// on insert.
type laSet struct {
	items *treeset.Set
	las   map[itemCore]*SymbolSet
}

func newLASet() *laSet {
	return &laSet{
		items: newItemSet(),
		las:   make(map[itemCore]*SymbolSet),
	}
}

// add merges [i, la] into the set, reporting whether the set changed.
func (s *laSet) add(i Item, la *SymbolSet) bool {
	core := i.core()
	if existing, ok := s.las[core]; ok {
		return existing.AddAll(la)
	}
	s.items.Add(i)
	s.las[core] = la.Copy()
	return true
}

// lookaheads returns the lookahead set recorded for i's core.
func (s *laSet) lookaheads(i Item) *SymbolSet {
	if la, ok := s.las[i.core()]; ok {
		return la
	}
	return NewSymbolSet()
}

// closure1 computes CLOSURE₁ of an LALR(1) item set, in place. For every
// [A → α · B β, L] and every production B → γ, the item [B → · γ, L']
// with L' = FIRST(β, L) is merged in. ε-capable prefixes of β are walked
// through by FIRST; lookaheads always union, duplicates never arise.
func (a *Analysis) closure1(S *laSet) {
	changed := true
	for changed {
		changed = false
		for _, item := range itemsOf(S.items) {
			B, ok := item.PeekSymbol()
			if !ok || !B.IsNonTerminal() {
				continue
			}
			L := S.lookaheads(item)
			beta := item.prod.RHS[item.dot+1:]
			Lprime := a.FirstOfSequence(beta, L)
			for _, p := range a.g.ProductionsFor(B) {
				if S.add(StartItem(p), Lprime) {
					changed = true
				}
			}
		}
	}
}

// goto1 computes GOTO₁(I, X): advance the dot over X, lookaheads travel
// along, then take the LALR(1) closure.
func (a *Analysis) goto1(S *laSet, X Symbol) *laSet {
	G := newLASet()
	for _, item := range itemsOf(S.items) {
		if sym, ok := item.PeekSymbol(); ok && sym == X {
			G.add(item.Advance(), S.lookaheads(item))
		}
	}
	a.closure1(G)
	return G
}

// --- Spontaneous generation and propagation --------------------------------

// stateCore addresses a kernel item within a CFSM state.
type stateCore struct {
	state int
	core  itemCore
}

// propEdge is an edge of the propagation graph: lookaheads of from flow
// into to.
type propEdge struct {
	from stateCore
	to   stateCore
}

// computeLookaheads runs the lookahead determination pass over the CFSM:
// for every kernel item K of every state I, the closure of [K, {#}] is
// inspected; a non-sentinel lookahead on an item with a transition is
// generated spontaneously at the successor kernel item, the sentinel
// records a propagation edge instead. The augmented start item is seeded
// with '$', then the propagation graph is swept to a fixed point.
func (gen *TableGenerator) computeLookaheads() (map[stateCore]*SymbolSet, error) {
	a := gen.a
	cfsm := gen.cfsm
	la := make(map[stateCore]*SymbolSet)
	for _, s := range cfsm.states {
		for _, K := range s.Kernel() {
			la[stateCore{state: s.ID, core: K.core()}] = NewSymbolSet()
		}
	}
	var edges []propEdge
	for _, s := range cfsm.states {
		for _, K := range s.Kernel() {
			source := stateCore{state: s.ID, core: K.core()}
			J := newLASet()
			J.add(K, NewSymbolSet(sentinelSymbol))
			a.closure1(J)
			for _, item := range itemsOf(J.items) {
				X, ok := item.PeekSymbol()
				if !ok {
					continue
				}
				target, ok := cfsm.GotoTarget(s.ID, X)
				if !ok {
					return nil, fmt.Errorf("missing GOTO target for state %d on symbol %s",
						s.ID, X.Name)
				}
				tkey := stateCore{state: target, core: item.Advance().core()}
				tla, ok := la[tkey]
				if !ok {
					return nil, fmt.Errorf("state %d has no kernel item %v expected via GOTO(%d, %s)",
						target, item.Advance(), s.ID, X.Name)
				}
				for _, sym := range J.lookaheads(item).Symbols() {
					if sym == sentinelSymbol {
						edges = append(edges, propEdge{from: source, to: tkey})
					} else {
						// spontaneous generation
						tla.Add(sym)
					}
				}
			}
		}
	}
	// seed: the augmented start item gets the end marker
	la[stateCore{state: 0, core: itemCore{Serial: 0, Dot: 0}}].Add(EndMarker)
	tracer().Debugf("propagation graph has %d edges", len(edges))
	// fixed-point sweep over the propagation graph, in recording order
	changed := true
	for changed {
		changed = false
		for _, e := range edges {
			if la[e.to].AddAll(la[e.from]) {
				changed = true
			}
		}
	}
	return la, nil
}

// stateClosure recreates the full LALR(1) item set of a state from its
// kernel items and their final lookahead sets.
func (gen *TableGenerator) stateClosure(s *CFSMState, la map[stateCore]*SymbolSet) *laSet {
	J := newLASet()
	for _, K := range s.Kernel() {
		J.add(K, la[stateCore{state: s.ID, core: K.core()}])
	}
	gen.a.closure1(J)
	return J
}
