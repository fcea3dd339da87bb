package codegen

import (
	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// lowerExternalCall encodes the selector and one word per argument into fresh
// memory, calls the receiver with the configured gas stipend and no value,
// and yields the single returned word. A failed call reverts.
func (c *FunctionContext) lowerExternalCall(e *ast.ExternalCall) yul.Expression {
	f := c.env.TraitFunction(e.Trait, e.Call.Name)
	if f == nil {
		return c.report(errors.UnsupportedExpression(e, "external call to undeclared function"))
	}
	if len(f.Parameters) != len(e.Call.Arguments) {
		return c.report(errors.UnsupportedExpression(e, "external call with wrong argument count"))
	}

	failed := false
	for i, p := range f.Parameters {
		if !isScalar(p.Type) {
			c.report(errors.UnsupportedExternalCallType(f.Name, p.Type, e.Call.Arguments[i].NodePos()))
			failed = true
		}
	}
	if f.Result != nil && !isScalar(f.Result) {
		c.report(errors.UnsupportedExternalCallType(f.Name, f.Result, e.Pos))
		failed = true
	}
	if failed {
		return &yul.NoopExpression{}
	}
	signature, err := Signature(f.Name, f.ParameterTypes())
	if err != nil {
		return c.report(errors.UnsupportedExternalCallType(f.Name, ast.ErrorType{}, e.Pos))
	}
	selector := Selector(signature)

	address := c.lowerExpression(e.Receiver)
	inputSize := uint64(4 + 32*len(f.Parameters))

	input := c.fresh()
	c.emit(yul.Stmt(yul.Let(input, runtime.AllocateMemory.Call(yul.Num(inputSize)))))
	for i := 0; i < 4; i++ {
		b := uint64(selector>>(24-8*i)) & 0xff
		var at yul.Expression = yul.Ident(input)
		if i > 0 {
			at = yul.Call("add", yul.Ident(input), yul.Num(uint64(i)))
		}
		c.emit(yul.Stmt(yul.Call("mstore8", at, yul.Hexf(b, 2))))
	}
	for i, arg := range e.Call.Arguments {
		at := yul.Call("add", yul.Ident(input), yul.Num(uint64(4+32*i)))
		c.emit(yul.Stmt(yul.Call("mstore", at, c.lowerExpression(arg))))
	}

	output := c.fresh()
	c.emit(yul.Stmt(yul.Let(output, runtime.AllocateMemory.Call(yul.Num(32)))))

	success := c.fresh()
	c.emit(yul.Stmt(yul.Let(success, yul.Call("call",
		yul.Num(c.gen.cfg.GasStipend),
		address,
		yul.Num(0),
		yul.Ident(input),
		yul.Num(inputSize),
		yul.Ident(output),
		yul.Num(32),
	))))
	c.emit(&yul.If{
		Condition: yul.Call("iszero", yul.Ident(success)),
		Body:      yul.NewBlock(yul.Revert()),
	})
	c.emit(yul.Stmt(yul.Assign(output, yul.Call("mload", yul.Ident(output)))))
	return yul.Ident(output)
}

// isScalar reports whether values of t are a single word passed by value
func isScalar(t ast.Type) bool {
	if _, ok := t.(ast.InoutType); ok {
		return false
	}
	return ast.IsBasic(t)
}
