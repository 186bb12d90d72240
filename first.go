package lalr

// Analysis is the static-analysis view of a grammar. Creating one
// augments the grammar with the start rule S' → S (serial 0) and
// computes the FIRST table. All table generation starts from an
// Analysis.
type Analysis struct {
	g        *Grammar
	super    *Production // S' → S
	first    map[Symbol]*SymbolSet
	symIndex map[Symbol]int
	symbols  []Symbol // column order of the parse tables
}

// Analyze augments a grammar and computes its FIRST sets. The grammar is
// frozen afterwards.
func Analyze(g *Grammar) (*Analysis, error) {
	super, err := g.augment()
	if err != nil {
		return nil, err
	}
	a := &Analysis{
		g:     g,
		super: super,
	}
	a.first = a.computeFirstSets()
	a.indexSymbols()
	return a, nil
}

// Grammar returns the underlying (augmented) grammar.
func (a *Analysis) Grammar() *Grammar {
	return a.g
}

// computeFirstSets iterates to a fixed point; termination is guaranteed
// by monotone set growth.
func (a *Analysis) computeFirstSets() map[Symbol]*SymbolSet {
	first := make(map[Symbol]*SymbolSet)
	for _, nt := range a.g.NonTerminals() {
		first[nt] = NewSymbolSet()
	}
	changed := true
	for changed {
		changed = false
		for _, p := range a.g.prods {
			lhs := first[p.LHS]
			i := 0
			for i < len(p.RHS) {
				sym := p.RHS[i]
				if !sym.IsNonTerminal() {
					// terminal or epsilon: contributes itself, ends the walk
					if lhs.Add(sym) {
						changed = true
					}
					break
				}
				for _, f := range first[sym].Symbols() {
					if f.IsEpsilon() {
						continue
					}
					if lhs.Add(f) {
						changed = true
					}
				}
				if !first[sym].Contains(EpsilonSymbol) {
					break
				}
				i++
			}
			if i == len(p.RHS) {
				// every RHS symbol is ε-capable
				if lhs.Add(EpsilonSymbol) {
					changed = true
				}
			}
		}
	}
	return first
}

// First returns FIRST(sym). For a terminal t this is {t}, for epsilon
// it is {ε}. The returned set is shared; callers must not mutate it.
func (a *Analysis) First(sym Symbol) *SymbolSet {
	if !sym.IsNonTerminal() {
		return NewSymbolSet(sym)
	}
	if f, ok := a.first[sym]; ok {
		return f
	}
	return NewSymbolSet()
}

// FirstOfSequence computes FIRST(α, L) for a symbol sequence α with
// inherited lookahead set L: the terminals that can begin a derivation
// of α, plus all of L if α as a whole can derive ε. Terminals are not
// ε-capable; epsilon symbols inside α are skipped.
func (a *Analysis) FirstOfSequence(seq []Symbol, inherited *SymbolSet) *SymbolSet {
	result := NewSymbolSet()
	allEpsilon := true
	for _, sym := range seq {
		if sym.IsEpsilon() {
			continue
		}
		if sym.IsTerminal() {
			result.Add(sym)
			allEpsilon = false
			break
		}
		for _, f := range a.First(sym).Symbols() {
			if !f.IsEpsilon() {
				result.Add(f)
			}
		}
		if !a.epsilonCapable(sym) {
			allEpsilon = false
			break
		}
	}
	if allEpsilon && inherited != nil {
		result.AddAll(inherited)
	}
	return result
}

// epsilonCapable is true if sym can derive the empty string.
func (a *Analysis) epsilonCapable(sym Symbol) bool {
	switch sym.Kind {
	case Epsilon:
		return true
	case Terminal:
		return false
	}
	return a.First(sym).Contains(EpsilonSymbol)
}

// indexSymbols assigns every table-relevant symbol a dense column index:
// all terminals including '$', then all non-terminals including S', in
// deterministic order. Epsilon and the propagation sentinel are never
// part of the table key space.
func (a *Analysis) indexSymbols() {
	a.symIndex = make(map[Symbol]int)
	a.g.EachSymbol(func(sym Symbol) {
		a.symIndex[sym] = len(a.symbols)
		a.symbols = append(a.symbols, sym)
	})
}
