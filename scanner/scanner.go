/*
Package scanner provides tokens and lexers for the LALR(1) parser
runtime.

The parser consumes an ordered sequence of (terminal symbol, lexeme)
pairs. Terminal names must match terminals declared in the grammar. Any
lexer producing such a sequence will do; this package ships an adapter
for lexmachine plus a demo lexer for a small C-like language, whose
patterns are configuration, not contract.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 Wolf Berndt <wolf@berndt.dev>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/wberndt/lalr"
)

// tracer traces with key 'lalr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.scanner")
}

// Span is a small type for capturing a length of input run: a start
// position and the position just behind the end.
type Span [2]uint64

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// Token is a single input token: the grammar terminal it belongs to,
// the lexeme as it appeared in the input, and the input span it covers.
type Token struct {
	Terminal lalr.Symbol
	Lexeme   string
	Span     Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Terminal.Name, t.Lexeme)
}

// Tokenizer is the scanner interface the parser driver relies on.
type Tokenizer interface {
	Tokenize(input string) ([]Token, error)
}

// --- lexmachine adapter ----------------------------------------------------

// Pattern maps a regular expression to a terminal name. An empty name
// skips the match (whitespace, comments).
type Pattern struct {
	Regex string
	Name  string
}

// Lexer is a lexmachine-backed Tokenizer. Patterns are matched with
// maximal munch; on equal length the pattern defined first wins, so
// keyword patterns must precede the identifier pattern.
type Lexer struct {
	lexer *lexmachine.Lexer
	names []string // token type → terminal name
}

var _ Tokenizer = (*Lexer)(nil)

// NewLexer compiles a lexer from patterns. It returns an error if
// compiling the DFA failed.
func NewLexer(patterns []Pattern) (*Lexer, error) {
	lx := &Lexer{lexer: lexmachine.NewLexer()}
	for _, p := range patterns {
		if p.Name == "" {
			lx.lexer.Add([]byte(p.Regex), Skip)
			continue
		}
		id := len(lx.names)
		lx.names = append(lx.names, p.Name)
		lx.lexer.Add([]byte(p.Regex), MakeToken(p.Name, id))
	}
	if err := lx.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lx, nil
}

// Tokenize scans the complete input. Unrecognized characters are
// reported and skipped; scanning continues after them.
func (lx *Lexer) Tokenize(input string) ([]Token, error) {
	s, err := lx.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []Token
	tok, err, eof := s.Next()
	for !eof {
		if err != nil {
			tracer().Errorf("scanner error: %v", err)
			if ui, is := err.(*machines.UnconsumedInput); is {
				s.TC = ui.FailTC // skip the unconsumed input
			} else {
				return tokens, err
			}
			tok, err, eof = s.Next()
			continue
		}
		token := tok.(*lexmachine.Token)
		tokens = append(tokens, Token{
			Terminal: lalr.Term(lx.names[token.Type]),
			Lexeme:   string(token.Lexeme),
			Span:     Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		})
		tok, err, eof = s.Next()
	}
	return tokens, nil
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
