package yul

import "fmt"

// Shorthand constructors used throughout code generation

// Call builds a function call expression
func Call(name string, args ...Expression) *FunctionCall {
	if args == nil {
		args = []Expression{}
	}
	return &FunctionCall{Name: name, Arguments: args}
}

// Ident builds an identifier expression
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Num builds an unsigned decimal literal
func Num(v uint64) *NumLiteral {
	return &NumLiteral{Value: v}
}

// Hex builds a hex literal from a value already prefixed with 0x
func Hex(v string) *HexLiteral {
	return &HexLiteral{Value: v}
}

// Hexf formats a number as a hex literal padded to width digits
func Hexf(v uint64, width int) *HexLiteral {
	return &HexLiteral{Value: fmt.Sprintf("0x%0*x", width, v)}
}

// Str builds a string literal
func Str(v string) *StringLiteral {
	return &StringLiteral{Value: v}
}

// True and False are the boolean literals
func True() *BoolLiteral  { return &BoolLiteral{Value: true} }
func False() *BoolLiteral { return &BoolLiteral{Value: false} }

// Let declares a single untyped variable
func Let(name string, value Expression) *VariableDeclaration {
	return &VariableDeclaration{Names: []TypedName{{Name: name}}, Value: value}
}

// Assign rebinds a single variable
func Assign(name string, value Expression) *Assignment {
	return &Assignment{Names: []string{name}, Value: value}
}

// Stmt wraps an expression as a statement
func Stmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: e}
}

// NewBlock builds a block from statements
func NewBlock(stmts ...Statement) *Block {
	if stmts == nil {
		stmts = []Statement{}
	}
	return &Block{Statements: stmts}
}

// Revert is the canonical abort: revert(0, 0)
func Revert() *ExpressionStatement {
	return Stmt(Call("revert", Num(0), Num(0)))
}

// Append adds statements to the end of the block
func (b *Block) Append(stmts ...Statement) {
	b.Statements = append(b.Statements, stmts...)
}

// IsEmpty reports whether the block has no statements that print anything
func (b *Block) IsEmpty() bool {
	for _, s := range b.Statements {
		switch s.(type) {
		case *NoopStatement:
			continue
		case *ExpressionStatement:
			if _, ok := s.(*ExpressionStatement).Expression.(*NoopExpression); ok {
				continue
			}
		}
		return false
	}
	return true
}
