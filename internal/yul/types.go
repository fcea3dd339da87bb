package yul

import "fmt"

// Yul IR emitted by the code generator.
// Expressions and statements are closed sets: every variant lives in this file
// and carries an unexported marker method.

// Node is anything the printer can render
type Node interface {
	node()
}

// Expression is a Yul expression
type Expression interface {
	Node
	isExpression()
}

// Statement is a Yul statement
type Statement interface {
	Node
	isStatement()
}

// Literal is a Yul literal, usable both as an expression and as a switch case value
type Literal interface {
	Expression
	isLiteral()
}

// Type is a Yul variable type
type Type int

const (
	Any Type = iota
	Bool
	U8
	S8
	U32
	S32
	U64
	S64
	U128
	S128
	U256
	S256
)

func (t Type) String() string {
	switch t {
	case Any:
		return ""
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case S8:
		return "s8"
	case U32:
		return "u32"
	case S32:
		return "s32"
	case U64:
		return "u64"
	case S64:
		return "s64"
	case U128:
		return "u128"
	case S128:
		return "s128"
	case U256:
		return "u256"
	case S256:
		return "s256"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// TypedName is a name with an optional type, as used in declarations and signatures
type TypedName struct {
	Name string
	Type Type
}

// Expressions

// FunctionCall calls a builtin or a user-defined function
type FunctionCall struct {
	Name      string
	Arguments []Expression
}

// Identifier references a variable
type Identifier struct {
	Name string
}

// VariableDeclaration introduces one or more variables, optionally initialized.
// It only appears in statement position.
type VariableDeclaration struct {
	Names []TypedName
	Value Expression
}

// Assignment rebinds one or more existing variables
type Assignment struct {
	Names []string
	Value Expression
}

// InlineExpression is raw Yul text spliced in verbatim
type InlineExpression struct {
	Code string
}

// Catchable pairs a value with the expression reporting whether it succeeded
type Catchable struct {
	Value   Expression
	Success Expression
}

// NoopExpression renders as nothing
type NoopExpression struct{}

// Literals

// NumLiteral is an unsigned decimal literal
type NumLiteral struct {
	Value uint64
}

// StringLiteral is a quoted string literal
type StringLiteral struct {
	Value string
}

// BoolLiteral renders as 1 or 0
type BoolLiteral struct {
	Value bool
}

// DecimalLiteral has no Yul representation; printing one fails
type DecimalLiteral struct {
	Integer  uint64
	Fraction uint64
}

// HexLiteral is a hex number including its 0x prefix
type HexLiteral struct {
	Value string
}

// Statements

// Block is a braced list of statements
type Block struct {
	Statements []Statement
}

// FunctionDefinition declares a Yul function
type FunctionDefinition struct {
	Name    string
	Params  []TypedName
	Returns []TypedName
	Body    *Block
}

// If runs Body when Condition is nonzero
type If struct {
	Condition Expression
	Body      *Block
}

// ExpressionStatement evaluates an expression for its effect
type ExpressionStatement struct {
	Expression Expression
}

// Case is one arm of a switch
type Case struct {
	Value Literal
	Body  *Block
}

// Switch selects a case by value, falling back to Default when present
type Switch struct {
	Expression Expression
	Cases      []Case
	Default    *Block
}

// ForLoop is a Yul for loop
type ForLoop struct {
	Init      *Block
	Condition Expression
	Post      *Block
	Body      *Block
}

// Break leaves the innermost loop
type Break struct{}

// Continue jumps to the post block of the innermost loop
type Continue struct{}

// Leave exits the current function
type Leave struct{}

// NoopStatement renders as nothing
type NoopStatement struct{}

// InlineStatement is raw Yul text spliced in verbatim
type InlineStatement struct {
	Code string
}

func (*FunctionCall) node()        {}
func (*Identifier) node()          {}
func (*VariableDeclaration) node() {}
func (*Assignment) node()          {}
func (*InlineExpression) node()    {}
func (*Catchable) node()           {}
func (*NoopExpression) node()      {}
func (*NumLiteral) node()          {}
func (*StringLiteral) node()       {}
func (*BoolLiteral) node()         {}
func (*DecimalLiteral) node()      {}
func (*HexLiteral) node()          {}
func (*Block) node()               {}
func (*FunctionDefinition) node()  {}
func (*If) node()                  {}
func (*ExpressionStatement) node() {}
func (*Switch) node()              {}
func (*ForLoop) node()             {}
func (*Break) node()               {}
func (*Continue) node()            {}
func (*Leave) node()               {}
func (*NoopStatement) node()       {}
func (*InlineStatement) node()     {}

func (*FunctionCall) isExpression()        {}
func (*Identifier) isExpression()          {}
func (*VariableDeclaration) isExpression() {}
func (*Assignment) isExpression()          {}
func (*InlineExpression) isExpression()    {}
func (*Catchable) isExpression()           {}
func (*NoopExpression) isExpression()      {}
func (*NumLiteral) isExpression()          {}
func (*StringLiteral) isExpression()       {}
func (*BoolLiteral) isExpression()         {}
func (*DecimalLiteral) isExpression()      {}
func (*HexLiteral) isExpression()          {}

func (*NumLiteral) isLiteral()     {}
func (*StringLiteral) isLiteral()  {}
func (*BoolLiteral) isLiteral()    {}
func (*DecimalLiteral) isLiteral() {}
func (*HexLiteral) isLiteral()     {}

func (*Block) isStatement()               {}
func (*FunctionDefinition) isStatement()  {}
func (*If) isStatement()                  {}
func (*ExpressionStatement) isStatement() {}
func (*Switch) isStatement()              {}
func (*ForLoop) isStatement()             {}
func (*Break) isStatement()               {}
func (*Continue) isStatement()            {}
func (*Leave) isStatement()               {}
func (*NoopStatement) isStatement()       {}
func (*InlineStatement) isStatement()     {}
