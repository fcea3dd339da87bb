package ast

// Statement is any statement of a function body
type Statement interface {
	Node
	isStmt()
}

type ExpressionStatement struct {
	Expression Expression
}

// ReturnStatement returns Value, or nothing when Value is nil
type ReturnStatement struct {
	Pos   Position
	Value Expression
}

// IfStatement with an optional else branch
// Example: "if a > b { return a } else { return b }"
type IfStatement struct {
	Pos       Position
	Condition Expression
	Body      []Statement
	Else      []Statement
}

// BecomeStatement transitions the contract's type state
// Example: "become Closed"
type BecomeStatement struct {
	Pos   Position
	State string
}

// EmitStatement fires an event
type EmitStatement struct {
	Pos  Position
	Call *FunctionCall
}

// ForStatement iterates over a range or container
// Example: "for let i: Int in (0..<10) { ... }"
type ForStatement struct {
	Pos      Position
	Variable *VariableDeclaration
	Iterable Expression
	Body     []Statement
}

func (*ExpressionStatement) isStmt() {}
func (*ReturnStatement) isStmt()     {}
func (*IfStatement) isStmt()         {}
func (*BecomeStatement) isStmt()     {}
func (*EmitStatement) isStmt()       {}
func (*ForStatement) isStmt()        {}

// ContainsReturn reports whether some path through stmts reaches a return,
// including returns nested in if arms
func ContainsReturn(stmts []Statement) bool {
	for _, s := range stmts {
		switch s := s.(type) {
		case *ReturnStatement:
			return true
		case *IfStatement:
			if ContainsReturn(s.Body) || ContainsReturn(s.Else) {
				return true
			}
		}
	}
	return false
}
