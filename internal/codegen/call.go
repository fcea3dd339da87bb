package codegen

import (
	"quartz/internal/ast"
	"quartz/internal/env"
	"quartz/internal/errors"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// receiver is the struct a method is invoked on
type receiver struct {
	addr  Address
	owner string
}

// lowerCall lowers a function, method or initializer call. recv is nil for
// calls without an explicit receiver.
func (c *FunctionContext) lowerCall(call *ast.FunctionCall, recv *receiver) yul.Expression {
	owner := c.enclosing
	if recv != nil {
		owner = recv.owner
	}

	switch m := c.env.MatchFunctionCall(call, owner, c.scope).(type) {
	case *env.MatchedInitializer:
		if m.Generated {
			return c.lowerExpression(call.Arguments[0])
		}
		size := c.env.TypeSize(ast.UserDefinedType{Name: m.Initializer.Owner})
		ptr := c.fresh()
		c.emit(yul.Stmt(yul.Let(ptr, runtime.AllocateMemory.Call(yul.Num(size*32)))))
		c.emit(yul.Stmt(c.initializeAt(Address{Base: yul.Ident(ptr), Space: MemorySpace{}}, m.Initializer, call)))
		return yul.Ident(ptr)

	case *env.MatchedFunction:
		var args []yul.Expression
		if c.env.IsStructDeclared(m.Function.Owner) {
			self := c.self()
			if recv != nil {
				self = recv.addr
			}
			args = append(args, self.Base, self.Flag())
		}
		args = append(args, c.lowerArguments(call.Arguments)...)
		return yul.Call(m.Function.Mangled, args...)

	case *env.MatchFailure:
		if c.env.IsStructDeclared(call.Name) {
			return c.report(errors.MissingInitializer(call, len(m.Candidates)))
		}
		if call.Mangled != "" {
			return yul.Call(call.Mangled, c.lowerArguments(call.Arguments)...)
		}
		if len(m.Candidates) > 1 {
			names := make([]string, len(m.Candidates))
			for i, f := range m.Candidates {
				names[i] = f.Mangled
			}
			return c.report(errors.AmbiguousCall(call, names))
		}
		return c.report(errors.UnsupportedExpression(call, "unresolved call"))
	}
	return c.report(errors.UnsupportedExpression(call, "call"))
}

// initializeAt runs a struct initializer on memory or storage at target
func (c *FunctionContext) initializeAt(target Address, init *env.FunctionInfo, call *ast.FunctionCall) yul.Expression {
	args := []yul.Expression{target.Base, target.Flag()}
	args = append(args, c.lowerArguments(call.Arguments)...)
	return yul.Call(init.Mangled, args...)
}

// lowerArguments lowers call arguments. A struct argument is passed as its
// base followed by its $isMem flag.
func (c *FunctionContext) lowerArguments(args []ast.Expression) []yul.Expression {
	out := make([]yul.Expression, 0, len(args))
	for _, arg := range args {
		if !c.isStruct(c.typeOf(arg)) {
			out = append(out, c.lowerExpression(arg))
			continue
		}
		if addr, ok := c.lowerAddress(arg, false); ok {
			out = append(out, addr.Base, addr.Flag())
			continue
		}
		out = append(out, c.lowerExpression(arg), yul.Num(1))
	}
	return out
}
