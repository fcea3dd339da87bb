package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quartz/internal/ast"
	"quartz/internal/config"
	"quartz/internal/env"
	"quartz/internal/errors"
	"quartz/internal/yul"
)

var point = ast.UserDefinedType{Name: "Point"}

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func num(v uint64) *ast.IntLiteral { return &ast.IntLiteral{Value: v} }

func param(name string, t ast.Type) *ast.Parameter { return &ast.Parameter{Name: name, Type: t} }

func bin(op ast.BinOp, lhs, rhs ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Op: op, LHS: lhs, RHS: rhs}
}

func assign(lhs, rhs ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Expression: bin(ast.Assign, lhs, rhs)}
}

func ret(e ast.Expression) ast.Statement { return &ast.ReturnStatement{Value: e} }

func call(name string, args ...ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{Name: name, Arguments: args}
}

// bankModule lays out Bank as owner@0 balances@1 history@2..5 accounts@6 total@7 origin@8..9
func bankModule(members ...ast.BehaviourMember) *ast.Module {
	return &ast.Module{Declarations: []ast.Declaration{
		&ast.ContractDeclaration{
			Name: "Bank",
			Fields: []*ast.VariableDeclaration{
				{Name: "owner", Type: ast.AddressType{}},
				{Name: "balances", Type: ast.DictionaryType{Key: ast.AddressType{}, Value: ast.IntType{}}},
				{Name: "history", Type: ast.FixedArrayType{Elem: ast.IntType{}, Size: 4}},
				{Name: "accounts", Type: ast.ArrayType{Elem: ast.AddressType{}}},
				{Name: "total", Type: ast.IntType{}, Value: num(100)},
				{Name: "origin", Type: point},
			},
		},
		&ast.StructDeclaration{
			Name: "Point",
			Fields: []*ast.VariableDeclaration{
				{Name: "x", Type: ast.IntType{}, Value: num(0)},
				{Name: "y", Type: ast.IntType{}},
			},
			Functions: []*ast.FunctionDeclaration{
				{Name: "sum", Result: ast.IntType{}, Body: []ast.Statement{ret(bin(ast.Plus, id("x"), id("y")))}},
			},
			Initializers: []*ast.SpecialDeclaration{{
				Kind:       ast.Init,
				Parameters: []*ast.Parameter{param("x", ast.IntType{}), param("y", ast.IntType{})},
				Body: []ast.Statement{
					assign(bin(ast.Dot, &ast.SelfExpression{}, id("x")), id("x")),
					assign(bin(ast.Dot, &ast.SelfExpression{}, id("y")), id("y")),
				},
			}},
		},
		&ast.TraitDeclaration{
			Name:     "Token",
			External: true,
			Functions: []*ast.FunctionDeclaration{
				{Name: "balanceOf", Parameters: []*ast.Parameter{param("owner", ast.AddressType{})}, Result: ast.IntType{}},
			},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Bank",
			CallerProtections: []ast.CallerProtection{{Name: "any"}},
			Members:           members,
		},
	}}
}

func newGenerator(module *ast.Module) *Generator {
	return New(env.Build(module), config.Default().Compiler)
}

// lowerFunc lowers decl as a function of owner and prints it
func lowerFunc(t *testing.T, module *ast.Module, owner string, decl *ast.FunctionDeclaration) (string, errors.List) {
	t.Helper()
	g := newGenerator(module)
	def := g.lowerFunction(functionInput{
		owner:    owner,
		inStruct: g.env.IsStructDeclared(owner),
		decl:     decl,
		mangled:  mangledName(owner, decl),
	})
	out, err := yul.Print(def)
	require.NoError(t, err)
	return out, g.Errors()
}

func codes(list errors.List) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Code
	}
	return out
}
