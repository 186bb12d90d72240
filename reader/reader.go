/*
Package reader loads grammars from line-oriented text files.

Rule syntax is

    LHS -> RHS₁ | RHS₂ | …

where the arrow may be spelled '->' or '→'. The LHS is a non-terminal
name, optionally bracketed as <Name>. Within an RHS, whitespace
separates symbols; a symbol is a non-terminal if it is bracketed or
begins with an uppercase ASCII letter, otherwise it is a terminal. The
words 'epsilon' and 'ε' denote the empty production. '#' introduces a
comment to end of line; blank lines are ignored. The first non-terminal
encountered becomes the start symbol.

Malformed lines are reported and skipped; the remainder of the file
still loads.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 Wolf Berndt <wolf@berndt.dev>

*/
package reader

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/wberndt/lalr"
)

// tracer traces with key 'lalr.reader'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.reader")
}

// arrows in order of matching priority; all spellings are normalized
// while reading, the grammar model sees none of them.
var arrows = []string{"->", "→"}

// LoadFile reads a grammar from a file. An unreadable file is an error;
// malformed lines within a readable file are reported and skipped.
func LoadFile(path string) (*lalr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads a grammar from r. The name is used for diagnostics only.
func Parse(name string, r io.Reader) (*lalr.Grammar, error) {
	g := lalr.NewGrammar(name)
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		parseLine(g, lineno, lines.Text())
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseLine(g *lalr.Grammar, lineno int, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	if pos := strings.Index(line, "#"); pos >= 0 {
		line = strings.TrimSpace(line[:pos])
	}
	arrowPos, arrowLen := findArrow(line)
	if arrowPos < 0 {
		tracer().Errorf("line %d: no arrow found: %q", lineno, line)
		return
	}
	lhsText := strings.TrimSpace(line[:arrowPos])
	rhsText := strings.TrimSpace(line[arrowPos+arrowLen:])
	lhsName := unbracket(lhsText)
	if lhsName == "" {
		tracer().Errorf("line %d: empty left-hand side: %q", lineno, line)
		return
	}
	for _, alt := range strings.Split(rhsText, "|") {
		g.AddProduction(lalr.NonTerm(lhsName), parseAlternative(strings.TrimSpace(alt)))
	}
}

// parseAlternative splits one RHS alternative into symbols. An empty
// alternative counts as the empty production.
func parseAlternative(alt string) []lalr.Symbol {
	if alt == "" || alt == "ε" || alt == "epsilon" {
		return []lalr.Symbol{lalr.EpsilonSymbol}
	}
	var rhs []lalr.Symbol
	for _, field := range strings.Fields(alt) {
		rhs = append(rhs, classify(field))
	}
	return rhs
}

// classify decides terminal vs. non-terminal for an RHS symbol.
func classify(field string) lalr.Symbol {
	if field == "ε" || field == "epsilon" {
		return lalr.EpsilonSymbol
	}
	name := unbracket(field)
	if isBracketed(field) || startsUppercase(name) {
		return lalr.NonTerm(name)
	}
	return lalr.Term(name)
}

func findArrow(line string) (pos int, length int) {
	for _, arrow := range arrows {
		if p := strings.Index(line, arrow); p >= 0 {
			return p, len(arrow)
		}
	}
	return -1, 0
}

func isBracketed(s string) bool {
	return len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>'
}

func unbracket(s string) string {
	if isBracketed(s) {
		return s[1 : len(s)-1]
	}
	return s
}

func startsUppercase(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
