package codegen

import (
	"strings"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// lowerCast is the identity unless the target is narrower than the source,
// in which case values above the target maximum revert
func (c *FunctionContext) lowerCast(e *ast.CastExpression) yul.Expression {
	from := c.typeOf(e.Value)
	fromBits, _, okFrom := ast.Width(from)
	toBits, _, okTo := ast.Width(e.Type)
	if !okFrom || !okTo {
		return c.report(errors.UnsupportedCast(from, e.Type, e.Pos))
	}

	value := c.lowerExpression(e.Value)
	if toBits >= fromBits {
		return value
	}
	return runtime.RevertIfGreater.Call(value, MaxValue(toBits))
}

// MaxValue is 2^bits - 1 as a hex literal
func MaxValue(bits int) *yul.HexLiteral {
	return yul.Hex("0x" + strings.Repeat("F", bits/4))
}
