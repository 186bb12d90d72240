package parser

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/wberndt/lalr"
	"github.com/wberndt/lalr/scanner"
)

// E -> E + T | T
// T -> T * F | F
// F -> ( E ) | id
func exprParser(t *testing.T) *Parser {
	g := lalr.NewGrammar("expr")
	g.AddProduction(lalr.NonTerm("E"), []lalr.Symbol{lalr.NonTerm("E"), lalr.Term("+"), lalr.NonTerm("T")})
	g.AddProduction(lalr.NonTerm("E"), []lalr.Symbol{lalr.NonTerm("T")})
	g.AddProduction(lalr.NonTerm("T"), []lalr.Symbol{lalr.NonTerm("T"), lalr.Term("*"), lalr.NonTerm("F")})
	g.AddProduction(lalr.NonTerm("T"), []lalr.Symbol{lalr.NonTerm("F")})
	g.AddProduction(lalr.NonTerm("F"), []lalr.Symbol{lalr.Term("("), lalr.NonTerm("E"), lalr.Term(")")})
	g.AddProduction(lalr.NonTerm("F"), []lalr.Symbol{lalr.Term("id")})
	return makeParser(t, g)
}

// S -> A B
// A -> a | ε
// B -> b
func epsilonParser(t *testing.T) *Parser {
	g := lalr.NewGrammar("eps")
	g.AddProduction(lalr.NonTerm("S"), []lalr.Symbol{lalr.NonTerm("A"), lalr.NonTerm("B")})
	g.AddProduction(lalr.NonTerm("A"), []lalr.Symbol{lalr.Term("a")})
	g.AddProduction(lalr.NonTerm("A"), []lalr.Symbol{lalr.EpsilonSymbol})
	g.AddProduction(lalr.NonTerm("B"), []lalr.Symbol{lalr.Term("b")})
	return makeParser(t, g)
}

func makeParser(t *testing.T, g *lalr.Grammar) *Parser {
	a, err := lalr.Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	gen := lalr.NewTableGenerator(a)
	if err := gen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	return NewParser(gen.Grammar(), gen.GotoTable(), gen.ActionTable())
}

func tokens(names ...string) []scanner.Token {
	toks := make([]scanner.Token, len(names))
	for i, name := range names {
		toks[i] = scanner.Token{Terminal: lalr.Term(name), Lexeme: name}
	}
	return toks
}

func containsStep(trace []string, step string) bool {
	for _, line := range trace {
		if strings.Contains(line, step) {
			return true
		}
	}
	return false
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	p := exprParser(t)
	result := p.Parse(tokens("id", "*", "id", "+", "id"))
	if !result.Success {
		t.Fatalf("valid input not accepted: %s", result.ErrorMessage)
	}
	if result.ErrorMessage != "" {
		t.Errorf("error message must be empty on success")
	}
	for _, reduction := range []string{
		"reduce F -> id",
		"reduce T -> F",
		"reduce T -> T * F",
		"reduce E -> T",
		"reduce E -> E + T",
		"reduce E' -> E",
		"accept",
	} {
		if !containsStep(result.Trace, reduction) {
			t.Errorf("trace lacks step %q", reduction)
		}
	}
}

func TestParseExpressionInputs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	p := exprParser(t)
	for _, input := range [][]string{
		{"id"},
		{"id", "+", "id"},
		{"id", "*", "id"},
		{"(", "id", "+", "id", ")", "*", "id"},
		{"id", "+", "id", "*", "id", "+", "id"},
	} {
		if result := p.Parse(tokens(input...)); !result.Success {
			t.Errorf("valid input %v not accepted: %s", input, result.ErrorMessage)
		}
	}
	for _, input := range [][]string{
		{},
		{"+"},
		{"id", "+"},
		{"id", "id"},
		{"(", "id"},
		{"id", "*", ")"},
	} {
		if result := p.Parse(tokens(input...)); result.Success {
			t.Errorf("invalid input %v accepted", input)
		}
	}
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	p := epsilonParser(t)
	result := p.Parse(tokens("b"))
	if !result.Success {
		t.Fatalf("input [b] not accepted: %s", result.ErrorMessage)
	}
	if !containsStep(result.Trace, "reduce A -> ε") {
		t.Errorf("trace lacks the epsilon reduction, got:\n%s", strings.Join(result.Trace, "\n"))
	}
	if result := p.Parse(tokens("a", "b")); !result.Success {
		t.Errorf("input [a b] not accepted: %s", result.ErrorMessage)
	}
}

func TestParseErrorReporting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	p := epsilonParser(t)
	result := p.Parse(tokens("a"))
	if result.Success {
		t.Fatal("input [a] must be rejected")
	}
	if !strings.Contains(result.ErrorMessage, "ACTION(") {
		t.Errorf("error message must name the dead ACTION cell: %s", result.ErrorMessage)
	}
	if !strings.Contains(result.ErrorMessage, "$") {
		t.Errorf("rejection of [a] must happen at the end marker: %s", result.ErrorMessage)
	}
	if !containsStep(result.Trace, "state stack:") || !containsStep(result.Trace, "symbol stack:") {
		t.Errorf("failure trace must dump both stacks, got:\n%s", strings.Join(result.Trace, "\n"))
	}
}

func TestParserReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	p := exprParser(t)
	if result := p.Parse(tokens("id", "+")); result.Success {
		t.Error("invalid input accepted")
	}
	// a failed parse must not poison the next one
	if result := p.Parse(tokens("id", "+", "id")); !result.Success {
		t.Errorf("parser not reusable after failure: %s", result.ErrorMessage)
	}
}
