package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var YulLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},
		{"BlockComment", `/\*([^*]|\*+[^*/])*\*+/`, nil},

		// Literals (hex before decimal so 0x is not split)
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Hex", `0x[0-9a-fA-F]+`, nil},
		{"Number", `[0-9]+`, nil},

		// Keywords, builtins and identifiers; Yul allows $ and . inside names
		{"Ident", `[a-zA-Z_$][a-zA-Z0-9_$.]*`, nil},

		// Operators
		{"Operator", `:=|->`, nil},

		// Punctuation (must come after operators)
		{"Punctuation", `[{}(),:]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
