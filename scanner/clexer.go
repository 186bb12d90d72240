package scanner

// The demo lexer: token patterns for a small C-like language. Terminal
// names match the ones the example grammars declare. The pattern list is
// plain data; replace it wholesale for a different input language.

// CLexemes returns the demo pattern set. Keywords precede the identifier
// pattern, multi-character operators precede their single-character
// prefixes.
func CLexemes() []Pattern {
	return []Pattern{
		{Regex: `( |\t|\n|\r)+`, Name: ""},
		{Regex: `//[^\n]*`, Name: ""},
		{Regex: `int`, Name: "int"},
		{Regex: `float`, Name: "float"},
		{Regex: `char`, Name: "char"},
		{Regex: `bool`, Name: "bool"},
		{Regex: `if`, Name: "if"},
		{Regex: `then`, Name: "then"},
		{Regex: `else`, Name: "else"},
		{Regex: `while`, Name: "while"},
		{Regex: `return`, Name: "return"},
		{Regex: `true|false`, Name: "bool_lit"},
		{Regex: `[a-zA-Z_][a-zA-Z0-9_]*`, Name: "id"},
		{Regex: `[0-9]+\.[0-9]*`, Name: "float_lit"},
		{Regex: `[0-9]+`, Name: "int_lit"},
		{Regex: `'.'`, Name: "char_lit"},
		{Regex: `==`, Name: "=="},
		{Regex: `!=`, Name: "!="},
		{Regex: `<=`, Name: "<="},
		{Regex: `>=`, Name: ">="},
		{Regex: `&&`, Name: "&&"},
		{Regex: `\|\|`, Name: "||"},
		{Regex: `=`, Name: "="},
		{Regex: `<`, Name: "<"},
		{Regex: `>`, Name: ">"},
		{Regex: `!`, Name: "!"},
		{Regex: `\+`, Name: "+"},
		{Regex: `-`, Name: "-"},
		{Regex: `\*`, Name: "*"},
		{Regex: `/`, Name: "/"},
		{Regex: `\(`, Name: "("},
		{Regex: `\)`, Name: ")"},
		{Regex: `\{`, Name: "{"},
		{Regex: `\}`, Name: "}"},
		{Regex: `;`, Name: ";"},
		{Regex: `,`, Name: ","},
	}
}

// CLexer compiles the demo lexer.
func CLexer() (*Lexer, error) {
	return NewLexer(CLexemes())
}
