package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"quartz/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `Bank :: (any) {
  public func check(a: Int, b: Int) -> Bool {
    return a <= b
  }
}`

	reporter := NewErrorReporter("bank.quartz", source)

	expr := &ast.BinaryExpression{
		Pos: ast.Position{Line: 3, Column: 12},
		Op:  ast.LessThanOrEqual,
		LHS: &ast.Identifier{Name: "a"},
		RHS: &ast.Identifier{Name: "b"},
	}
	err := UnsupportedOperator(expr)
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error["+ErrorUnsupportedOperator+"]")
	assert.Contains(t, formatted, "operator '<='")

	// Should contain location and the offending line
	assert.Contains(t, formatted, "bank.quartz:3:12")
	assert.Contains(t, formatted, "return a <= b")

	// Should contain the rewrite
	assert.Contains(t, formatted, "a < b || a == b")
}

func TestUnsupportedOperatorGreaterEqual(t *testing.T) {
	expr := &ast.BinaryExpression{
		Op:  ast.GreaterThanOrEqual,
		LHS: &ast.Identifier{Name: "x"},
		RHS: &ast.IntLiteral{Value: 3},
	}
	err := UnsupportedOperator(expr)

	assert.Equal(t, ErrorUnsupportedOperator, err.Code)
	assert.Equal(t, 2, err.Length)
	assert.Len(t, err.Suggestions, 1)
	assert.Equal(t, "x > 3 || x == 3", err.Suggestions[0].Replacement)
}

func TestMissingInitializer(t *testing.T) {
	call := &ast.FunctionCall{Name: "Point", Arguments: []ast.Expression{&ast.IntLiteral{Value: 1}}}

	err := MissingInitializer(call, 0)
	assert.Equal(t, ErrorMissingInitializer, err.Code)
	assert.Contains(t, err.Message, "1 argument")
	assert.Len(t, err.Suggestions, 1)

	err = MissingInitializer(call, 2)
	assert.Empty(t, err.Suggestions)
	assert.Contains(t, err.Notes[0], "2 initializer")
}

func TestInvalidCallerProtection(t *testing.T) {
	err := InvalidCallerProtection("manager", "Bank", nil, ast.Position{})
	assert.Contains(t, err.Message, "not a property")

	err = InvalidCallerProtection("count", "Bank", ast.IntType{}, ast.Position{})
	assert.Contains(t, err.Message, "type 'Int'")
	assert.NotEmpty(t, err.HelpText)
}

func TestCompilerErrorAsError(t *testing.T) {
	err := CustomFallback("Bank", ast.Position{Line: 4, Column: 2})
	assert.Equal(t, "error[E0707] 4:2: contract 'Bank' declares a fallback, which is not supported", err.Error())

	err = UnsupportedCast(ast.StringType{}, ast.IntType{}, ast.Position{})
	assert.Equal(t, "error[E0709]: cannot cast 'String' to 'Int'", err.Error())
}

func TestList(t *testing.T) {
	var empty List
	assert.False(t, empty.HasErrors())
	assert.NoError(t, empty.Err())

	warnings := List{NewCodegenWarning(ErrorUnsupportedStatement, "dropped", ast.Position{}).Build()}
	assert.False(t, warnings.HasErrors())
	assert.NoError(t, warnings.Err())

	list := List{
		UnsupportedCast(ast.StringType{}, ast.IntType{}, ast.Position{}),
		CustomFallback("Bank", ast.Position{}),
	}
	assert.True(t, list.HasErrors())
	assert.Error(t, list.Err())
	assert.Contains(t, list.Error(), "and 1 more errors")
}

func TestFormatAll(t *testing.T) {
	reporter := NewErrorReporter("x.quartz", "line one\nline two")
	list := List{
		UnknownProperty("a", "Bank", ast.Position{Line: 1, Column: 1}),
		UnknownProperty("b", "Bank", ast.Position{Line: 2, Column: 1}),
	}

	out := reporter.FormatAll(list)
	assert.Equal(t, 2, strings.Count(out, "error["+ErrorUnknownProperty+"]"))
}

func TestMarker(t *testing.T) {
	m := marker(5, 3, Error)
	assert.True(t, strings.HasPrefix(m, "    "))
	assert.Contains(t, m, "^^^")
	assert.Contains(t, marker(1, 0, Warning), "^")

	assert.Equal(t, 3, gutterWidth(7))
	assert.Equal(t, 4, gutterWidth(1234))
}

func TestFormatErrorAtFirstAndLastLine(t *testing.T) {
	reporter := NewErrorReporter("x.yul", "only line")
	out := reporter.FormatError(YulSyntax("unexpected token", ast.Position{Line: 1, Column: 6}))
	assert.Contains(t, out, "x.yul:1:6")
	assert.Contains(t, out, "only line")
	assert.Equal(t, 1, strings.Count(out, "only line"))
}
