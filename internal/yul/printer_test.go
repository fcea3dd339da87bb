package yul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinter(t *testing.T) {
	printer := NewPrinter()

	if printer == nil {
		t.Fatal("NewPrinter should not return nil")
	}
	if printer.indent != 0 {
		t.Errorf("NewPrinter should have indent 0, got %d", printer.indent)
	}
	if printer.output.Len() != 0 {
		t.Error("NewPrinter should have empty output buffer")
	}
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"call", Call("add", Ident("a"), Num(1)), "add(a, 1)"},
		{"nested call", Call("sload", Call("add", Num(0), Num(2))), "sload(add(0, 2))"},
		{"no args", Call("caller"), "caller()"},
		{"true", True(), "1"},
		{"false", False(), "0"},
		{"hex", Hexf(0xa9059cbb, 8), "0xa9059cbb"},
		{"string", Str("hi"), `"hi"`},
		{"let", Let("_x", Num(3)), "let _x := 3"},
		{"let typed", &VariableDeclaration{Names: []TypedName{{Name: "x", Type: U256}}}, "let x: u256"},
		{"assign", Assign("ret", Ident("_x")), "ret := _x"},
		{"multi assign", &Assignment{Names: []string{"a", "b"}, Value: Call("f")}, "a, b := f()"},
		{"inline", &InlineExpression{Code: "mload(0x40)"}, "mload(0x40)"},
		{"catchable", &Catchable{Value: Ident("v"), Success: Ident("ok")}, "v"},
		{"noop", &NoopExpression{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Print(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPrintDecimalLiteralFails(t *testing.T) {
	_, err := Print(Call("add", &DecimalLiteral{Integer: 1, Fraction: 5}, Num(1)))
	assert.ErrorIs(t, err, ErrDecimalLiteral)

	_, err = Print(NewBlock(Stmt(&DecimalLiteral{Integer: 1})))
	assert.ErrorIs(t, err, ErrDecimalLiteral)
}

func TestPrintFunctionDefinition(t *testing.T) {
	fn := &FunctionDefinition{
		Name:    "Quartz$Add",
		Params:  []TypedName{{Name: "a"}, {Name: "b"}},
		Returns: []TypedName{{Name: "ret"}},
		Body: NewBlock(
			Stmt(Let("c", Call("add", Ident("a"), Ident("b")))),
			&If{Condition: Call("lt", Ident("c"), Ident("a")), Body: NewBlock(Revert())},
			Stmt(Assign("ret", Ident("c"))),
		),
	}

	out, err := Print(fn)
	require.NoError(t, err)

	expected := `function Quartz$Add(a, b) -> ret {
  let c := add(a, b)
  if lt(c, a) {
    revert(0, 0)
  }
  ret := c
}
`
	assert.Equal(t, expected, out)
}

func TestPrintSwitch(t *testing.T) {
	sw := &Switch{
		Expression: Ident("c"),
		Cases: []Case{
			{Value: True(), Body: NewBlock(Stmt(Assign("ret", Num(1))))},
		},
		Default: NewBlock(Stmt(Assign("ret", Num(2)))),
	}

	out, err := Print(sw)
	require.NoError(t, err)

	expected := `switch c
case 1 {
  ret := 1
}
default {
  ret := 2
}
`
	assert.Equal(t, expected, out)
}

func TestPrintEmptyBlocks(t *testing.T) {
	out, err := Print(&FunctionDefinition{Name: "init", Body: NewBlock()})
	require.NoError(t, err)
	assert.Equal(t, "function init() { }\n", out)

	out, err = Print(NewBlock(&NoopStatement{}, Stmt(&NoopExpression{})))
	require.NoError(t, err)
	assert.Equal(t, "{ }\n", out)
}

func TestPrintForLoop(t *testing.T) {
	loop := &ForLoop{
		Init:      NewBlock(Stmt(Let("i", Num(0)))),
		Condition: Call("lt", Ident("i"), Ident("n")),
		Post:      NewBlock(Stmt(Assign("i", Call("add", Ident("i"), Num(1))))),
		Body:      NewBlock(&Break{}),
	}

	out, err := Print(loop)
	require.NoError(t, err)
	assert.Equal(t, "for { let i := 0 } lt(i, n) { i := add(i, 1) } {\n  break\n}\n", out)
}

func TestPrintInlineStatementIsReindented(t *testing.T) {
	block := NewBlock(&InlineStatement{Code: "\nfunction f() {\n  stop()\n}\n"})

	out, err := Print(block)
	require.NoError(t, err)
	assert.Equal(t, "{\n  function f() {\n    stop()\n  }\n}\n", out)
}

func TestPrintIndented(t *testing.T) {
	out, err := PrintIndented(2, Stmt(Call("stop")), &Leave{})
	require.NoError(t, err)
	assert.Equal(t, "    stop()\n    leave\n", out)
}

func TestPrintIsDeterministic(t *testing.T) {
	tree := NewBlock(
		Stmt(Let("x", Call("sload", Num(0)))),
		&Switch{
			Expression: Call("Quartz$Selector"),
			Cases: []Case{
				{Value: Hex("0x01020304"), Body: NewBlock(Stmt(Call("Quartz$Return32Bytes", Ident("x"))))},
				{Value: Hex("0x0a0b0c0d"), Body: NewBlock(Stmt(Call("sstore", Num(0), Num(1))))},
			},
			Default: NewBlock(Revert()),
		},
	)

	first, err := Print(tree)
	require.NoError(t, err)
	second, err := Print(tree)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
