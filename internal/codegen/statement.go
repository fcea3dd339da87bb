package codegen

import (
	"fmt"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/yul"
)

// lowerStatements lowers stmts into the open block. Statements after a
// return are unreachable and dropped.
func (c *FunctionContext) lowerStatements(stmts []ast.Statement) {
	for i, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ExpressionStatement:
			c.lowerExpressionStatement(s.Expression)
		case *ast.ReturnStatement:
			c.lowerReturn(s)
			return
		case *ast.IfStatement:
			rest := stmts[i+1:]
			if len(rest) > 0 && (ast.ContainsReturn(s.Body) || ast.ContainsReturn(s.Else)) {
				c.lowerIf(s, rest)
				return
			}
			c.lowerIf(s, nil)
		case *ast.BecomeStatement:
			c.gen.report(errors.UnsupportedStatement(s, "become"))
		case *ast.EmitStatement:
			c.gen.report(errors.UnsupportedStatement(s, "emit"))
		case *ast.ForStatement:
			c.gen.report(errors.UnsupportedStatement(s, "for"))
		default:
			panic(fmt.Sprintf("codegen: unhandled statement %T", s))
		}
	}
}

// lowerIf lowers to a switch on the condition. join holds the statements
// following the if. They are appended to both arms; lowering an arm stops at
// its first return and pushes join further into any nested if that can
// still fall through.
func (c *FunctionContext) lowerIf(s *ast.IfStatement, join []ast.Statement) {
	cond := c.lowerExpression(s.Condition)

	then, otherwise := s.Body, s.Else
	if len(join) > 0 {
		then = concat(then, join)
		otherwise = concat(otherwise, join)
	}

	sw := &yul.Switch{
		Expression: cond,
		Cases:      []yul.Case{{Value: yul.Num(1), Body: c.lowerBlock(then)}},
	}
	if len(otherwise) > 0 {
		if block := c.lowerBlock(otherwise); !block.IsEmpty() {
			sw.Default = block
		}
	}
	c.emit(sw)
}

func concat(a, b []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// lowerReturn binds the implicit return variable
func (c *FunctionContext) lowerReturn(s *ast.ReturnStatement) {
	if s.Value == nil {
		return
	}
	c.emit(yul.Stmt(yul.Assign(mangle.ReturnSlot, c.lowerExpression(s.Value))))
}

// lowerExpressionStatement evaluates e for its effects. Values of calls are
// discarded with pop; bare names and literals are dropped.
func (c *FunctionContext) lowerExpressionStatement(e ast.Expression) {
	switch x := e.(type) {
	case nil, *ast.Identifier, *ast.SelfExpression:
		return
	case *ast.Sequence:
		for _, inner := range x.Expressions {
			c.lowerExpressionStatement(inner)
		}
		return
	case *ast.BracketedExpression:
		c.lowerExpressionStatement(x.Value)
		return
	}

	lowered := c.lowerExpression(e)
	switch lowered.(type) {
	case *yul.NoopExpression, *yul.Identifier, *yul.NumLiteral, *yul.HexLiteral,
		*yul.StringLiteral, *yul.BoolLiteral:
		return
	case *yul.FunctionCall:
		if c.producesValue(e) {
			lowered = yul.Call("pop", lowered)
		}
	}
	c.emit(yul.Stmt(lowered))
}

// producesValue reports whether a call expression leaves a value to discard
func (c *FunctionContext) producesValue(e ast.Expression) bool {
	if b, ok := e.(*ast.BinaryExpression); ok && b.Op.IsAssignment() {
		return false
	}
	switch c.typeOf(e).(type) {
	case nil, ast.ErrorType:
		return false
	}
	return true
}
