package lalr

import (
	"fmt"
	"io"

	"github.com/wberndt/lalr/sparse"
)

// Action markers for parser action tables. Reduce actions are encoded as
// the serial number of the production to reduce (always positive, serial
// 0 being the augmented rule whose reduction is the accept action).
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// ActionType tags a decoded ACTION table entry.
type ActionType int8

// The four possible entries of an ACTION table cell.
const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is a decoded ACTION table entry: shift(State), reduce
// (Production), accept, or error.
type Action struct {
	Type       ActionType
	State      int         // shift target, for ActionShift
	Production *Production // rule to reduce, for ActionReduce
}

func (act Action) String() string {
	switch act.Type {
	case ActionShift:
		return fmt.Sprintf("shift to %d", act.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %v (#%d)", act.Production, act.Production.Serial)
	case ActionAccept:
		return "accept"
	}
	return "error"
}

func (act Action) kind() string {
	switch act.Type {
	case ActionShift:
		return "Shift"
	case ActionReduce:
		return "Reduce"
	case ActionAccept:
		return "Accept"
	}
	return "Error"
}

// ConflictError reports two incompatible entries assigned to the same
// ACTION table cell. Conflicts are fatal; no precedence or associativity
// resolution is attempted.
type ConflictError struct {
	State    int
	Symbol   Symbol
	Existing Action
	Incoming Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s-%s conflict at state %d on symbol %s: %v vs %v",
		e.Existing.kind(), e.Incoming.kind(), e.State, e.Symbol.Name,
		e.Existing, e.Incoming)
}

// --- Parse tables ----------------------------------------------------------

// Table is a parse table: states × symbols, backed by a sparse integer
// matrix. Columns are addressed by symbol; the column order is the
// deterministic symbol order of the grammar. Tables are read-only after
// generation; concurrent parsers may share them.
type Table struct {
	matrix  *sparse.IntMatrix
	index   map[Symbol]int
	symbols []Symbol
}

func newTable(states int, a *Analysis) *Table {
	return &Table{
		matrix:  sparse.NewIntMatrix(states, len(a.symbols), sparse.DefaultNullValue),
		index:   a.symIndex,
		symbols: a.symbols,
	}
}

func (t *Table) set(state int, sym Symbol, val int32) {
	col, ok := t.index[sym]
	if !ok {
		panic(fmt.Sprintf("symbol %v is not in the table key space", sym))
	}
	t.matrix.Set(state, col, val)
}

// NullValue returns the marker for empty cells.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the entry at (state, sym), or NullValue.
func (t *Table) Value(state int, sym Symbol) int32 {
	col, ok := t.index[sym]
	if !ok {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(state, col)
}

// StateCount returns the number of state rows.
func (t *Table) StateCount() int {
	return t.matrix.M()
}

// --- Table generation ------------------------------------------------------

// TableGenerator constructs LALR(1) parser tables. Clients create a
// Grammar, analyse it, and call CreateTables on a generator for the
// analysis. The generated tables and the CFSM are immutable afterwards.
type TableGenerator struct {
	a           *Analysis
	g           *Grammar
	cfsm        *CFSM
	gototable   *Table
	actiontable *Table
}

// NewTableGenerator creates a TableGenerator for a previously analysed
// grammar.
func NewTableGenerator(a *Analysis) *TableGenerator {
	return &TableGenerator{a: a, g: a.Grammar()}
}

// CFSM returns the characteristic finite state machine for the grammar.
// It will be created if it has not been constructed previously.
func (gen *TableGenerator) CFSM() *CFSM {
	if gen.cfsm == nil {
		gen.cfsm = gen.a.buildCFSM()
	}
	return gen.cfsm
}

// GotoTable returns the GOTO table. The tables have to be built by
// calling CreateTables() previously.
func (gen *TableGenerator) GotoTable() *Table {
	if gen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return gen.gototable
}

// ActionTable returns the ACTION table. The tables have to be built by
// calling CreateTables() previously.
func (gen *TableGenerator) ActionTable() *Table {
	if gen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return gen.actiontable
}

// Grammar returns the generator's (augmented) grammar.
func (gen *TableGenerator) Grammar() *Grammar {
	return gen.g
}

// CreateTables builds the CFSM, runs the lookahead engine, and
// materializes the ACTION and GOTO tables. A conflict aborts the build
// with a *ConflictError; no partial tables are exposed.
func (gen *TableGenerator) CreateTables() error {
	gen.cfsm = gen.a.buildCFSM()
	la, err := gen.computeLookaheads()
	if err != nil {
		return err
	}
	gototable := gen.buildGotoTable()
	actiontable, err := gen.buildActionTable(la)
	if err != nil {
		return err
	}
	gen.gototable = gototable
	gen.actiontable = actiontable
	return nil
}

// buildGotoTable materializes the transition map of the CFSM. The table
// spans both terminals and non-terminals: the non-terminal columns form
// the GOTO table proper, the terminal columns hold the shift targets the
// ACTION table refers to.
func (gen *TableGenerator) buildGotoTable() *Table {
	gototable := newTable(gen.cfsm.StateCount(), gen.a)
	for _, s := range gen.cfsm.states {
		for _, sym := range gen.a.symbols {
			if target, ok := gen.cfsm.GotoTarget(s.ID, sym); ok {
				gototable.set(s.ID, sym, int32(target))
			}
		}
	}
	tracer().Debugf("GOTO table of size %d x %d", gototable.matrix.M(), gototable.matrix.N())
	return gototable
}

// buildActionTable walks every state's full LALR(1) closure. An item
// with a terminal after the dot produces a shift entry; a completed item
// produces a reduce entry for each of its lookaheads; the completed
// start rule produces the accept entry at '$'.
func (gen *TableGenerator) buildActionTable(la map[stateCore]*SymbolSet) (*Table, error) {
	actions := newTable(gen.cfsm.StateCount(), gen.a)
	for _, s := range gen.cfsm.states {
		tracer().Debugf("--- state %d --------------------------------", s.ID)
		J := gen.stateClosure(s, la)
		for _, item := range itemsOf(J.items) {
			if item.Completed() {
				if item.prod.Serial == 0 {
					if err := gen.setAction(actions, s.ID, EndMarker,
						Action{Type: ActionAccept}); err != nil {
						return nil, err
					}
					continue
				}
				for _, lookahead := range J.lookaheads(item).Symbols() {
					err := gen.setAction(actions, s.ID, lookahead,
						Action{Type: ActionReduce, Production: item.prod})
					if err != nil {
						return nil, err
					}
				}
				continue
			}
			X, _ := item.PeekSymbol()
			if !X.IsTerminal() {
				continue
			}
			target, ok := gen.cfsm.GotoTarget(s.ID, X)
			if !ok {
				return nil, fmt.Errorf("missing GOTO target for state %d on symbol %s",
					s.ID, X.Name)
			}
			err := gen.setAction(actions, s.ID, X,
				Action{Type: ActionShift, State: target})
			if err != nil {
				return nil, err
			}
		}
	}
	return actions, nil
}

// setAction enters an action into the table, checking the cell for a
// conflicting prior entry.
func (gen *TableGenerator) setAction(actions *Table, state int, sym Symbol, act Action) error {
	existing := actions.Value(state, sym)
	if existing != actions.NullValue() {
		prior := gen.decode(existing, state, sym)
		if prior == act || (prior.Type == ActionReduce && act.Type == ActionReduce &&
			prior.Production.Serial == act.Production.Serial) {
			return nil
		}
		return &ConflictError{State: state, Symbol: sym, Existing: prior, Incoming: act}
	}
	tracer().Debugf("ACTION(%d, %s) = %v", state, sym.Name, act)
	actions.set(state, sym, encode(act))
	return nil
}

func encode(act Action) int32 {
	switch act.Type {
	case ActionShift:
		return ShiftAction
	case ActionAccept:
		return AcceptAction
	case ActionReduce:
		return int32(act.Production.Serial)
	}
	panic("cannot encode error action")
}

func (gen *TableGenerator) decode(val int32, state int, sym Symbol) Action {
	switch {
	case val == ShiftAction:
		target, _ := gen.cfsm.GotoTarget(state, sym)
		return Action{Type: ActionShift, State: target}
	case val == AcceptAction:
		return Action{Type: ActionAccept}
	case val > 0:
		return Action{Type: ActionReduce, Production: gen.g.Production(int(val))}
	}
	return Action{Type: ActionError}
}

// Action decodes the ACTION table entry at (state, terminal).
func (gen *TableGenerator) Action(state int, terminal Symbol) Action {
	if gen.actiontable == nil {
		return Action{Type: ActionError}
	}
	val := gen.actiontable.Value(state, terminal)
	if val == gen.actiontable.NullValue() {
		return Action{Type: ActionError}
	}
	return gen.decode(val, state, terminal)
}

// Goto returns the GOTO table entry at (state, nonterminal).
func (gen *TableGenerator) Goto(state int, nonterminal Symbol) (int, bool) {
	if gen.gototable == nil || !nonterminal.IsNonTerminal() {
		return 0, false
	}
	val := gen.gototable.Value(state, nonterminal)
	if val == gen.gototable.NullValue() {
		return 0, false
	}
	return int(val), true
}

// === Export ================================================================

// GotoTableAsHTML exports the GOTO table in HTML format.
func GotoTableAsHTML(gen *TableGenerator, w io.Writer) {
	if gen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(gen, "GOTO", gen.gototable, w)
}

// ActionTableAsHTML exports the ACTION table in HTML format.
func ActionTableAsHTML(gen *TableGenerator, w io.Writer) {
	if gen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(gen, "ACTION", gen.actiontable, w)
}

func parserTableAsHTML(gen *TableGenerator, tname string, table *Table, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, sym := range table.symbols {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", sym.Name))
	}
	io.WriteString(w, "</tr>\n")
	for state := 0; state < table.StateCount(); state++ {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state))
		for _, sym := range table.symbols {
			v := table.Value(state, sym)
			td := "&nbsp;"
			if v != table.NullValue() {
				td = valstring(v, table)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// TablesAsText writes a plain text rendering of both tables; debugging
// helper for the CLI.
func TablesAsText(gen *TableGenerator, w io.Writer) {
	if gen.actiontable == nil || gen.gototable == nil {
		tracer().Errorf("tables not yet created, cannot render")
		return
	}
	fmt.Fprintf(w, "ACTION / GOTO tables for grammar %q, %d states\n",
		gen.g.Name, gen.cfsm.StateCount())
	for state := 0; state < gen.cfsm.StateCount(); state++ {
		fmt.Fprintf(w, "state %d:\n", state)
		for _, sym := range gen.a.symbols {
			if sym.IsTerminal() {
				if act := gen.Action(state, sym); act.Type != ActionError {
					fmt.Fprintf(w, "    %-12s %v\n", sym.Name, act)
				}
			} else if target, ok := gen.Goto(state, sym); ok {
				fmt.Fprintf(w, "    %-12s goto %d\n", sym.Name, target)
			}
		}
	}
}

// valstring is a short helper to stringify a table entry.
func valstring(v int32, t *Table) string {
	if v == t.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
