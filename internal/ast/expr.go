package ast

// Expression is any expression of the contract language
type Expression interface {
	Node
	isExpr()
}

// Identifier references a local, a parameter or, when EnclosingType is set,
// a property of that type.
// Example: "balance", "self.owner" (as Identifier{Name: "owner", EnclosingType: "Bank"})
type Identifier struct {
	Pos           Position
	Name          string
	EnclosingType string
}

// BinaryExpression covers arithmetic, comparison, logic, assignment and property access
// Example: "a + b", "self.owner = caller", "account.balance"
type BinaryExpression struct {
	Pos Position
	Op  BinOp
	LHS Expression
	RHS Expression
}

// FunctionCall calls a function, method or initializer
// Example: "transfer(to, amount)", "Point(1, 2)"
type FunctionCall struct {
	Pos       Position
	Name      string
	Arguments []Expression
	// Mangled is filled in when the call target has already been resolved
	Mangled string
}

// ExternalCall invokes a function of an external trait at an address
// Example: "call! token.balanceOf(owner)"
type ExternalCall struct {
	Pos      Position
	Receiver Expression
	Trait    string
	Call     *FunctionCall
}

// VariableDeclaration declares a local, or a field when it appears in a type declaration
// Example: "let total: Int = 0", "var owner: Address"
type VariableDeclaration struct {
	Pos      Position
	Name     string
	Type     Type
	Constant bool
	Value    Expression
}

// SubscriptExpression indexes an array or dictionary; Base may itself be a subscript
// Example: "balances[owner]", "grid[x][y]"
type SubscriptExpression struct {
	Pos   Position
	Base  Expression
	Index Expression
}

// CastExpression converts a scalar to another width
// Example: "cast value to uint8"
type CastExpression struct {
	Pos   Position
	Value Expression
	Type  Type
}

// InoutExpression passes an lvalue by reference
// Example: "&account"
type InoutExpression struct {
	Pos   Position
	Value Expression
}

type BracketedExpression struct {
	Pos   Position
	Value Expression
}

type SelfExpression struct {
	Pos Position
}

type IntLiteral struct {
	Pos   Position
	Value uint64
}

type FloatLiteral struct {
	Pos   Position
	Value string
}

type BoolLiteral struct {
	Pos   Position
	Value bool
}

type StringLiteral struct {
	Pos   Position
	Value string
}

// AddressLiteral is a 0x-prefixed hex address
type AddressLiteral struct {
	Pos   Position
	Value string
}

type ArrayLiteral struct {
	Pos      Position
	Elements []Expression
}

type DictionaryEntry struct {
	Key   Expression
	Value Expression
}

type DictionaryLiteral struct {
	Pos     Position
	Entries []DictionaryEntry
}

// RangeExpression is "a..<b" or "a...b"
type RangeExpression struct {
	Pos       Position
	Start     Expression
	End       Expression
	Inclusive bool
}

// AttemptExpression is "try? f()" or "try! f()"
type AttemptExpression struct {
	Pos  Position
	Hard bool
	Call *FunctionCall
}

// RawAssembly is inline target code copied verbatim
type RawAssembly struct {
	Pos  Position
	Code string
}

// Sequence evaluates expressions in order, yielding the last
type Sequence struct {
	Pos         Position
	Expressions []Expression
}

func (*Identifier) isExpr()          {}
func (*BinaryExpression) isExpr()    {}
func (*FunctionCall) isExpr()        {}
func (*ExternalCall) isExpr()        {}
func (*VariableDeclaration) isExpr() {}
func (*SubscriptExpression) isExpr() {}
func (*CastExpression) isExpr()      {}
func (*InoutExpression) isExpr()     {}
func (*BracketedExpression) isExpr() {}
func (*SelfExpression) isExpr()      {}
func (*IntLiteral) isExpr()          {}
func (*FloatLiteral) isExpr()        {}
func (*BoolLiteral) isExpr()         {}
func (*StringLiteral) isExpr()       {}
func (*AddressLiteral) isExpr()      {}
func (*ArrayLiteral) isExpr()        {}
func (*DictionaryLiteral) isExpr()   {}
func (*RangeExpression) isExpr()     {}
func (*AttemptExpression) isExpr()   {}
func (*RawAssembly) isExpr()         {}
func (*Sequence) isExpr()            {}

// IsLocal reports whether the identifier is not a property of an enclosing type
func (i *Identifier) IsLocal() bool {
	return i.EnclosingType == ""
}
