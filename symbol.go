package lalr

import (
	"bytes"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolKind classifies grammar symbols.
type SymbolKind int8

// Symbols are either terminals, non-terminals, or the epsilon
// pseudo-symbol denoting the empty derivation.
const (
	Terminal SymbolKind = iota
	NonTerminal
	Epsilon
)

// Symbol is a named grammar symbol. Symbols are value types; equality is
// structural over (Name, Kind).
type Symbol struct {
	Name string
	Kind SymbolKind
}

// Two terminals are reserved and may not appear in user grammars:
// the end-of-input marker '$' and the lookahead propagation sentinel '#'.
var (
	// EpsilonSymbol denotes the empty right-hand side of a production.
	EpsilonSymbol = Symbol{Name: "ε", Kind: Epsilon}

	// EndMarker is the end-of-input pseudo-terminal '$'.
	EndMarker = Symbol{Name: "$", Kind: Terminal}

	// propagation sentinel '#' for the lookahead determination pass
	sentinelSymbol = Symbol{Name: "#", Kind: Terminal}
)

// Term creates a terminal symbol.
func Term(name string) Symbol {
	return Symbol{Name: name, Kind: Terminal}
}

// NonTerm creates a non-terminal symbol.
func NonTerm(name string) Symbol {
	return Symbol{Name: name, Kind: NonTerminal}
}

// IsTerminal returns true for terminal symbols (epsilon is not a terminal).
func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

// IsNonTerminal returns true for non-terminal symbols.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminal
}

// IsEpsilon returns true for the epsilon pseudo-symbol.
func (s Symbol) IsEpsilon() bool {
	return s.Kind == Epsilon
}

func (s Symbol) String() string {
	return s.Name
}

// compareSymbols orders symbols by (kind, name). This ordering is part of
// the determinism contract: transition symbols within a state are always
// iterated in this order.
func compareSymbols(a, b Symbol) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	return strings.Compare(a.Name, b.Name)
}

// symbolComparator adapts compareSymbols for gods containers.
func symbolComparator(x, y interface{}) int {
	return compareSymbols(x.(Symbol), y.(Symbol))
}

var _ utils.Comparator = symbolComparator

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is an ordered set of symbols. Iteration order is the
// deterministic (kind, name) order.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a symbol set containing the given symbols.
func NewSymbolSet(syms ...Symbol) *SymbolSet {
	s := &SymbolSet{set: treeset.NewWith(symbolComparator)}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

// Add inserts a symbol, reporting whether the set changed.
func (s *SymbolSet) Add(sym Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

// AddAll inserts every symbol of other, reporting whether the set changed.
func (s *SymbolSet) AddAll(other *SymbolSet) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, sym := range other.Symbols() {
		if s.Add(sym) {
			changed = true
		}
	}
	return changed
}

// Contains checks set membership.
func (s *SymbolSet) Contains(sym Symbol) bool {
	return s.set.Contains(sym)
}

// Size returns the number of symbols in the set.
func (s *SymbolSet) Size() int {
	return s.set.Size()
}

// Empty is true for the empty set.
func (s *SymbolSet) Empty() bool {
	return s.set.Empty()
}

// Symbols returns the members in (kind, name) order.
func (s *SymbolSet) Symbols() []Symbol {
	vals := s.set.Values()
	syms := make([]Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(Symbol)
	}
	return syms
}

// Copy clones the set.
func (s *SymbolSet) Copy() *SymbolSet {
	c := NewSymbolSet()
	c.AddAll(s)
	return c
}

// Equals compares two sets for equal membership.
func (s *SymbolSet) Equals(other *SymbolSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, sym := range s.Symbols() {
		if !other.Contains(sym) {
			return false
		}
	}
	return true
}

func (s *SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, sym := range s.Symbols() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	b.WriteString("}")
	return b.String()
}
