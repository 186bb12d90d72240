package lalr

import (
	"bytes"
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
)

// Item is a production with a dot position, 0 ≤ dot ≤ |RHS|. Items are
// value records; their core identity is the pair (production serial,
// dot). Lookahead sets are never part of item identity, they live in
// side tables keyed by cores (see lookahead.go).
type Item struct {
	prod *Production
	dot  int
}

// itemCore is the hashable identity of an item.
type itemCore struct {
	Serial int
	Dot    int
}

// StartItem returns p with the dot at the leftmost position.
func StartItem(p *Production) Item {
	return Item{prod: p, dot: 0}
}

// Production returns the item's underlying rule.
func (i Item) Production() *Production {
	return i.prod
}

// Dot returns the dot position.
func (i Item) Dot() int {
	return i.dot
}

func (i Item) core() itemCore {
	return itemCore{Serial: i.prod.Serial, Dot: i.dot}
}

// Completed is true when the dot has reached the end of the RHS. The
// empty production counts as completed at dot 0.
func (i Item) Completed() bool {
	return i.dot >= len(i.prod.RHS) || i.prod.IsEpsilon()
}

// PeekSymbol returns the symbol immediately after the dot. ok is false
// for completed items.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.Completed() {
		return Symbol{}, false
	}
	return i.prod.RHS[i.dot], true
}

// Advance moves the dot one position to the right. Advancing a
// completed item is a programmer error.
func (i Item) Advance() Item {
	if i.Completed() {
		panic(fmt.Sprintf("cannot advance completed item %v", i))
	}
	return Item{prod: i.prod, dot: i.dot + 1}
}

// IsKernel is true for items with the dot not at the leftmost position,
// and for the augmented start item S' → · S.
func (i Item) IsKernel() bool {
	return i.dot > 0 || i.prod.Serial == 0
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.prod.LHS.Name)
	b.WriteString(" ->")
	for pos, sym := range i.prod.RHS {
		if pos == i.dot {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	if i.dot == len(i.prod.RHS) {
		b.WriteString(" .")
	}
	return b.String()
}

// itemComparator orders items by core; this makes item-set iteration
// deterministic.
func itemComparator(x, y interface{}) int {
	a, b := x.(Item), y.(Item)
	if a.prod.Serial != b.prod.Serial {
		return a.prod.Serial - b.prod.Serial
	}
	return a.dot - b.dot
}

// newItemSet creates an empty, ordered item set.
func newItemSet() *treeset.Set {
	return treeset.NewWith(itemComparator)
}

// addItem inserts an item, reporting whether the set changed.
func addItem(set *treeset.Set, i Item) bool {
	if set.Contains(i) {
		return false
	}
	set.Add(i)
	return true
}

// itemsOf converts a set's values back to items, in core order.
func itemsOf(set *treeset.Set) []Item {
	vals := set.Values()
	items := make([]Item, len(vals))
	for n, v := range vals {
		items[n] = v.(Item)
	}
	return items
}

// kernelSignature produces a stable fingerprint over the kernel cores of
// an item set. Two states are LR(0)-equal iff their kernel signatures
// match; the CFSM keeps a signature → state map for O(1) state identity
// lookup during construction.
type coreList struct {
	Cores []itemCore
}

func kernelSignature(set *treeset.Set) string {
	sig := coreList{}
	for _, i := range itemsOf(set) {
		if i.IsKernel() {
			sig.Cores = append(sig.Cores, i.core())
		}
	}
	return fmt.Sprintf("%x", structhash.Sha1(sig, 1))
}

// Dump logs the items of a set; debugging helper.
func Dump(set *treeset.Set) {
	for n, i := range itemsOf(set) {
		tracer().Debugf("%3d: %v", n, i)
	}
}

func itemSetString(set *treeset.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, i := range itemsOf(set) {
		if n > 0 {
			b.WriteString(", ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}
