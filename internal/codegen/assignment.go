package codegen

import (
	"quartz/internal/ast"
	"quartz/internal/env"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// lowerAssignment binds a new local, rebinds an existing one, or stores
// through the address of any other target
func (c *FunctionContext) lowerAssignment(lhs, rhs ast.Expression) yul.Expression {
	switch l := lhs.(type) {
	case *ast.VariableDeclaration:
		return c.lowerDeclaration(l, rhs)
	case *ast.Identifier:
		if l.IsLocal() && c.isLocal(l.Name) {
			return yul.Assign(mangle.Local(l.Name), c.lowerExpression(rhs))
		}
	}

	target, ok := c.lowerAddress(lhs, true)
	if !ok {
		return c.report(errors.InvalidAssignmentTarget(lhs))
	}
	if t := c.typeOf(lhs); c.isStruct(t) {
		return c.assignStruct(target, t, rhs)
	}
	return target.Store(c.lowerExpression(rhs))
}

// lowerDeclaration declares a local. Struct locals without a value get fresh memory.
func (c *FunctionContext) lowerDeclaration(v *ast.VariableDeclaration, value ast.Expression) yul.Expression {
	name := mangle.Local(v.Name)
	if value != nil {
		return yul.Let(name, c.lowerExpression(value))
	}
	if c.isStruct(v.Type) {
		size := c.env.TypeSize(v.Type)
		return yul.Let(name, runtime.AllocateMemory.Call(yul.Num(size*32)))
	}
	return &yul.VariableDeclaration{Names: []yul.TypedName{{Name: name}}}
}

// assignStruct initializes a struct in place or copies it word by word
func (c *FunctionContext) assignStruct(target Address, t ast.Type, rhs ast.Expression) yul.Expression {
	if call, ok := rhs.(*ast.FunctionCall); ok {
		match := c.env.MatchFunctionCall(call, c.enclosing, c.scope)
		if init, ok := match.(*env.MatchedInitializer); ok && !init.Generated {
			return c.initializeAt(target, init.Initializer, call)
		}
	}

	source, ok := c.lowerAddress(rhs, false)
	if !ok {
		source = Address{Base: c.lowerExpression(rhs), Space: MemorySpace{}}
	}
	size := c.env.TypeSize(t)
	for i := uint64(0); i < size; i++ {
		word := yul.Num(i)
		c.emit(yul.Stmt(target.Offset(word).Store(source.Offset(word).Load())))
	}
	return &yul.NoopExpression{}
}
