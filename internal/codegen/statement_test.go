package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quartz/internal/ast"
	"quartz/internal/errors"
)

func gtOne() ast.Expression { return bin(ast.GreaterThan, id("a"), num(1)) }

func withA(body ...ast.Statement) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		Name:       "f",
		Parameters: []*ast.Parameter{param("a", ast.IntType{})},
		Result:     ast.IntType{},
		Body:       body,
	}
}

func TestIfElse(t *testing.T) {
	f := withA(&ast.IfStatement{
		Condition: gtOne(),
		Body:      []ast.Statement{assign(id("total"), id("a"))},
		Else:      []ast.Statement{assign(id("total"), num(0))},
	})
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.Equal(t, `function Bank$f$Int(_a) -> ret {
  switch gt(_a, 1)
  case 1 {
    sstore(7, _a)
  }
  default {
    sstore(7, 0)
  }
}
`, out)
}

func TestIfWithoutElseHasNoDefault(t *testing.T) {
	f := withA(&ast.IfStatement{
		Condition: gtOne(),
		Body:      []ast.Statement{assign(id("total"), id("a"))},
	})
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.NotContains(t, out, "default")
	assert.Contains(t, out, "case 1 {\n    sstore(7, _a)\n  }\n")
}

func TestReturningBranchMovesFollowingStatementsToJoinPoint(t *testing.T) {
	f := withA(
		&ast.IfStatement{Condition: gtOne(), Body: []ast.Statement{ret(num(1))}},
		assign(id("total"), id("a")),
		ret(num(0)),
	)
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.Equal(t, `function Bank$f$Int(_a) -> ret {
  switch gt(_a, 1)
  case 1 {
    ret := 1
  }
  default {
    sstore(7, _a)
    ret := 0
  }
}
`, out)
}

func TestNestedReturnPushesJoinIntoEveryFallThrough(t *testing.T) {
	f := withA(
		&ast.IfStatement{Condition: gtOne(), Body: []ast.Statement{
			&ast.IfStatement{Condition: bin(ast.GreaterThan, id("a"), num(5)), Body: []ast.Statement{ret(num(1))}},
		}},
		ret(num(2)),
	)
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.Equal(t, `function Bank$f$Int(_a) -> ret {
  switch gt(_a, 1)
  case 1 {
    switch gt(_a, 5)
    case 1 {
      ret := 1
    }
    default {
      ret := 2
    }
  }
  default {
    ret := 2
  }
}
`, out)
}

func TestStatementsAfterBothArmsReturnAreDropped(t *testing.T) {
	f := withA(
		&ast.IfStatement{
			Condition: gtOne(),
			Body:      []ast.Statement{ret(num(1))},
			Else:      []ast.Statement{ret(num(2))},
		},
		assign(id("total"), id("a")),
	)
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.NotContains(t, out, "sstore")
	assert.Contains(t, out, "default {\n    ret := 2\n  }\n")
}

func TestStatementsAfterReturnAreDropped(t *testing.T) {
	f := withA(ret(id("a")), assign(id("total"), id("a")))
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.Equal(t, "function Bank$f$Int(_a) -> ret {\n  ret := _a\n}\n", out)
}

func TestCallerBinding(t *testing.T) {
	module := bankModule()
	g := newGenerator(module)
	def := g.lowerFunction(functionInput{
		owner:   "Bank",
		decl:    &ast.FunctionDeclaration{Name: "whoami", Result: ast.AddressType{}, Body: []ast.Statement{ret(id("sender"))}},
		mangled: "Bank$whoami",
		binding: "sender",
	})
	assert.Empty(t, g.Errors())
	assert.Len(t, def.Body.Statements, 2)

	out, errs := lowerFunc(t, module, "Bank", &ast.FunctionDeclaration{Name: "plain", Body: []ast.Statement{ret(id("owner"))}})
	assert.Empty(t, errs)
	assert.NotContains(t, out, "caller()")
}

func TestDiscardedCallValuesArePopped(t *testing.T) {
	module := bankModule(
		&ast.FunctionDeclaration{Name: "bump", Result: ast.IntType{}},
		&ast.FunctionDeclaration{Name: "reset"},
	)
	f := &ast.FunctionDeclaration{
		Name: "f",
		Body: []ast.Statement{
			&ast.ExpressionStatement{Expression: call("bump")},
			&ast.ExpressionStatement{Expression: call("reset")},
			&ast.ExpressionStatement{Expression: id("total")},
			&ast.ExpressionStatement{Expression: num(3)},
		},
	}
	out, errs := lowerFunc(t, module, "Bank", f)
	assert.Empty(t, errs)
	assert.Equal(t, "function Bank$f() {\n  pop(Bank$bump())\n  Bank$reset()\n}\n", out)
}

func TestSequenceLowersEachElement(t *testing.T) {
	f := withA(&ast.ExpressionStatement{Expression: &ast.Sequence{Expressions: []ast.Expression{
		bin(ast.Assign, id("total"), id("a")),
		bin(ast.Assign, id("owner"), &ast.AddressLiteral{Value: "0x01"}),
	}}})
	out, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Empty(t, errs)
	assert.Contains(t, out, "  sstore(7, _a)\n  sstore(0, 0x01)\n")
}

func TestUnsupportedStatements(t *testing.T) {
	f := &ast.FunctionDeclaration{
		Name: "f",
		Body: []ast.Statement{
			&ast.BecomeStatement{State: "Closed"},
			&ast.EmitStatement{Call: call("Moved")},
			&ast.ForStatement{Variable: &ast.VariableDeclaration{Name: "i", Type: ast.IntType{}}, Iterable: id("accounts")},
		},
	}
	_, errs := lowerFunc(t, bankModule(), "Bank", f)
	assert.Equal(t, []string{
		errors.ErrorUnsupportedStatement,
		errors.ErrorUnsupportedStatement,
		errors.ErrorUnsupportedStatement,
	}, codes(errs))
}
