package codegen

import (
	"quartz/internal/ast"
	"quartz/internal/mangle"
	"quartz/internal/yul"
)

// functionInput is a function, method or initializer ready to be lowered
type functionInput struct {
	owner    string
	inStruct bool
	decl     *ast.FunctionDeclaration
	mangled  string
	binding  string
	// fields are assigned their declared values before the body runs
	fields []*ast.VariableDeclaration
	// fromCode reads parameters from the tail of the deployed code
	fromCode bool
}

// lowerFunction renders a Yul function definition. Struct methods take the
// receiver and its flag first; each struct parameter is followed by its flag.
func (g *Generator) lowerFunction(in functionInput) *yul.FunctionDefinition {
	decl := in.decl
	scope := decl.Scope
	if scope == nil {
		scope = ast.NewScope(decl.Parameters, decl.Body)
	}
	if in.binding != "" {
		bound := *scope
		bound.LocalVariables = append([]*ast.VariableDeclaration{{Name: in.binding, Type: ast.AddressType{}}}, scope.LocalVariables...)
		scope = &bound
	}

	c := g.newContext(in.owner, in.inStruct, scope)
	c.binding = in.binding

	def := &yul.FunctionDefinition{Name: in.mangled}
	if in.inStruct {
		self := mangle.Local(mangle.SelfParam)
		def.Params = append(def.Params, yul.TypedName{Name: self}, yul.TypedName{Name: mangle.Mem(self)})
	}
	if in.fromCode {
		c.loadParametersFromCode(decl.Parameters)
	} else {
		for _, p := range decl.Parameters {
			name := mangle.Local(p.Name)
			def.Params = append(def.Params, yul.TypedName{Name: name})
			if c.isStruct(p.Type) {
				def.Params = append(def.Params, yul.TypedName{Name: mangle.Mem(name)})
			}
		}
	}
	if decl.Result != nil {
		def.Returns = []yul.TypedName{{Name: mangle.ReturnSlot}}
	}

	if in.binding != "" {
		c.emit(yul.Stmt(yul.Let(mangle.Local(in.binding), yul.Call("caller"))))
	}
	for _, f := range in.fields {
		if f.Value == nil {
			continue
		}
		target := &ast.Identifier{Pos: f.Pos, Name: f.Name, EnclosingType: in.owner}
		c.lowerExpressionStatement(&ast.BinaryExpression{Pos: f.Pos, Op: ast.Assign, LHS: target, RHS: f.Value})
	}
	c.lowerStatements(decl.Body)

	def.Body = c.body()
	log.Debugf("lowered %s (%d statements)", in.mangled, len(def.Body.Statements))
	return def
}

// loadParametersFromCode binds the constructor arguments appended to the
// deployed code, one word each
func (c *FunctionContext) loadParametersFromCode(params []*ast.Parameter) {
	n := uint64(len(params))
	for i, p := range params {
		from := yul.Call("sub", yul.Call("codesize"), yul.Num(32*(n-uint64(i))))
		c.emit(yul.Stmt(yul.Call("codecopy", yul.Num(0), from, yul.Num(32))))
		c.emit(yul.Stmt(yul.Let(mangle.Local(p.Name), yul.Call("mload", yul.Num(0)))))
	}
}

// mangledName is the emitted name of a function owned by owner
func mangledName(owner string, decl *ast.FunctionDeclaration) string {
	if decl.Mangled != "" {
		return decl.Mangled
	}
	return mangle.Function(owner, decl.Name, decl.ParameterTypes())
}
