package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is a sequence of top-level Yul statements, as found inside an assembly block
type Program struct {
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos        lexer.Position
	Block      *Block       `  @@`
	Function   *Function    `| @@`
	Let        *Let         `| @@`
	If         *If          `| @@`
	Switch     *Switch      `| @@`
	For        *For         `| @@`
	Break      bool         `| @"break"`
	Continue   bool         `| @"continue"`
	Leave      bool         `| @"leave"`
	Assignment *Assignment  `| @@`
	Expression *Expression  `| @@`
}

type Block struct {
	Statements []*Statement `"{" @@* "}"`
}

type Function struct {
	Name    string       `"function" @Ident`
	Params  []*TypedName `"(" ( @@ ( "," @@ )* )? ")"`
	Returns []*TypedName `( "->" @@ ( "," @@ )* )?`
	Body    *Block       `@@`
}

type TypedName struct {
	Name string `@Ident`
	Type string `( ":" @Ident )?`
}

type Let struct {
	Names []*TypedName `"let" @@ ( "," @@ )*`
	Value *Expression  `( ":=" @@ )?`
}

type Assignment struct {
	Names []string    `@Ident ( "," @Ident )*`
	Value *Expression `":=" @@`
}

type If struct {
	Condition *Expression `"if" @@`
	Body      *Block      `@@`
}

type Switch struct {
	Expression *Expression `"switch" @@`
	Cases      []*Case     `@@*`
	Default    *Block      `( "default" @@ )?`
}

type Case struct {
	Value *Literal `"case" @@`
	Body  *Block   `@@`
}

type For struct {
	Init      *Block      `"for" @@`
	Condition *Expression `@@`
	Post      *Block      `@@`
	Body      *Block      `@@`
}

type Expression struct {
	Pos     lexer.Position
	Literal *Literal `  @@`
	Call    *Call    `| @@`
	Ident   string   `| @Ident`
}

type Call struct {
	Name      string        `@Ident "("`
	Arguments []*Expression `( @@ ( "," @@ )* )? ")"`
}

type Literal struct {
	Hex    string `  @Hex`
	Number string `| @Number`
	String string `| @String`
	Bool   string `| @( "true" | "false" )`
}
