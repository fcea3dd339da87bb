package codegen

import (
	"fmt"

	"quartz/internal/ast"
	"quartz/internal/env"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/yul"
)

// FunctionContext is the mutable state of lowering one function. It is
// created per function and dropped once the function has been rendered.
type FunctionContext struct {
	gen       *Generator
	env       env.Environment
	scope     *ast.ScopeContext
	enclosing string
	inStruct  bool
	binding   string

	// blocks is never empty; lowerBlock is the only place that pushes and pops
	blocks  []*yul.Block
	counter int
}

func (g *Generator) newContext(enclosing string, inStruct bool, scope *ast.ScopeContext) *FunctionContext {
	if scope == nil {
		scope = &ast.ScopeContext{}
	}
	return &FunctionContext{
		gen:       g,
		env:       g.env,
		scope:     scope,
		enclosing: enclosing,
		inStruct:  inStruct,
		blocks:    []*yul.Block{yul.NewBlock()},
	}
}

// emit appends statements to the innermost open block
func (c *FunctionContext) emit(stmts ...yul.Statement) {
	top := c.blocks[len(c.blocks)-1]
	top.Append(stmts...)
}

// lowerBlock lowers a statement list into its own block
func (c *FunctionContext) lowerBlock(stmts []ast.Statement) *yul.Block {
	depth := len(c.blocks)
	c.blocks = append(c.blocks, yul.NewBlock())
	c.lowerStatements(stmts)
	if len(c.blocks) != depth+1 {
		panic(fmt.Sprintf("codegen: block stack at depth %d, want %d", len(c.blocks), depth+1))
	}
	block := c.blocks[depth]
	c.blocks = c.blocks[:depth]
	return block
}

// body returns the outermost block once lowering is complete
func (c *FunctionContext) body() *yul.Block {
	if len(c.blocks) != 1 {
		panic(fmt.Sprintf("codegen: block stack at depth %d after lowering", len(c.blocks)))
	}
	return c.blocks[0]
}

// fresh names a compiler temporary
func (c *FunctionContext) fresh() string {
	name := fmt.Sprintf("$temp%d", c.counter)
	c.counter++
	return name
}

// report records a diagnostic; lowering continues with a placeholder
func (c *FunctionContext) report(err errors.CompilerError) *yul.NoopExpression {
	c.gen.report(err)
	return &yul.NoopExpression{}
}

// typeOf asks the environment for the type of e inside the current function
func (c *FunctionContext) typeOf(e ast.Expression) ast.Type {
	return c.env.ExpressionType(e, c.enclosing, c.scope)
}

// isLocal reports whether a bare name is a parameter, a local or the caller binding
func (c *FunctionContext) isLocal(name string) bool {
	if name == c.binding && name != "" {
		return true
	}
	_, ok := c.scope.TypeOf(name)
	return ok
}

// self is the address of the value methods and properties are resolved against
func (c *FunctionContext) self() Address {
	if c.inStruct {
		self := mangle.Local(mangle.SelfParam)
		return Address{Base: yul.Ident(self), Space: DynamicSpace{Flag: mangle.Mem(self)}}
	}
	return StorageAt(0)
}

// isStruct reports whether t names a declared struct
func (c *FunctionContext) isStruct(t ast.Type) bool {
	u, ok := ast.Underlying(t).(ast.UserDefinedType)
	return ok && c.env.IsStructDeclared(u.Name)
}
