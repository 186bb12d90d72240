package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func terminalNames(tokens []Token) []string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.Terminal.Name
	}
	return names
}

func TestTokenizeStatement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("x = y + 42;")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "=", "id", "+", "int_lit", ";"}, terminalNames(tokens))
	assert.Equal(t, "x", tokens[0].Lexeme)
	assert.Equal(t, "42", tokens[4].Lexeme)
}

func TestKeywordsBeforeIdentifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("if iffy while whiled")
	assert.NoError(t, err)
	assert.Equal(t, []string{"if", "id", "while", "id"}, terminalNames(tokens),
		"keywords win ties, longer identifiers win maximal munch")
}

func TestNumericLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("3 3.14 0.")
	assert.NoError(t, err)
	assert.Equal(t, []string{"int_lit", "float_lit", "float_lit"}, terminalNames(tokens))
}

func TestOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("a<=b == c<d")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "<=", "id", "==", "id", "<", "id"}, terminalNames(tokens))
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("x // trailing comment\n\t y")
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "id"}, terminalNames(tokens))
}

func TestSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lx, err := CLexer()
	assert.NoError(t, err)
	tokens, err := lx.Tokenize("ab cd")
	assert.NoError(t, err)
	if assert.Len(t, tokens, 2) {
		assert.Equal(t, uint64(0), tokens[0].Span.From())
		assert.Equal(t, uint64(2), tokens[0].Span.To())
		assert.Equal(t, uint64(3), tokens[1].Span.From())
	}
}
