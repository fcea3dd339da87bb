package codegen

import (
	"fmt"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// lowerExpression lowers e as a value. Statements the value depends on, such
// as memory allocation for external calls, are emitted into the open block.
func (c *FunctionContext) lowerExpression(e ast.Expression) yul.Expression {
	switch e := e.(type) {
	case *ast.Identifier:
		return c.lowerIdentifier(e)
	case *ast.SelfExpression:
		return c.self().Base
	case *ast.BinaryExpression:
		return c.lowerBinary(e)
	case *ast.FunctionCall:
		return c.lowerCall(e, nil)
	case *ast.ExternalCall:
		return c.lowerExternalCall(e)
	case *ast.VariableDeclaration:
		return c.lowerDeclaration(e, nil)
	case *ast.SubscriptExpression:
		addr, ok := c.lowerSubscript(e, false)
		if !ok {
			return &yul.NoopExpression{}
		}
		return c.valueAt(addr, c.typeOf(e))
	case *ast.CastExpression:
		return c.lowerCast(e)
	case *ast.InoutExpression:
		if addr, ok := c.lowerAddress(e.Value, false); ok {
			return addr.Base
		}
		return c.lowerExpression(e.Value)
	case *ast.BracketedExpression:
		return c.lowerExpression(e.Value)
	case *ast.IntLiteral:
		return yul.Num(e.Value)
	case *ast.BoolLiteral:
		if e.Value {
			return yul.True()
		}
		return yul.False()
	case *ast.StringLiteral:
		return yul.Str(e.Value)
	case *ast.AddressLiteral:
		return yul.Hex(e.Value)
	case *ast.FloatLiteral:
		return c.report(errors.UnsupportedLiteral(e))
	case *ast.ArrayLiteral:
		if len(e.Elements) > 0 {
			return c.report(errors.UnsupportedCollectionLiteral(e))
		}
		return yul.Num(0)
	case *ast.DictionaryLiteral:
		if len(e.Entries) > 0 {
			return c.report(errors.UnsupportedCollectionLiteral(e))
		}
		return yul.Num(0)
	case *ast.RangeExpression:
		return c.report(errors.UnsupportedExpression(e, "range"))
	case *ast.AttemptExpression:
		return c.report(errors.UnsupportedExpression(e, "attempt"))
	case *ast.RawAssembly:
		return &yul.InlineExpression{Code: e.Code}
	case *ast.Sequence:
		if len(e.Expressions) == 0 {
			return &yul.NoopExpression{}
		}
		last := len(e.Expressions) - 1
		for _, inner := range e.Expressions[:last] {
			c.lowerExpressionStatement(inner)
		}
		return c.lowerExpression(e.Expressions[last])
	}
	panic(fmt.Sprintf("codegen: unhandled expression %T", e))
}

// lowerIdentifier reads a local or a property of the enclosing type
func (c *FunctionContext) lowerIdentifier(id *ast.Identifier) yul.Expression {
	if id.IsLocal() && (c.isLocal(id.Name) || !c.isProperty(id.Name)) {
		return yul.Ident(mangle.Local(id.Name))
	}
	addr, ok := c.identifierAddress(id)
	if !ok {
		return &yul.NoopExpression{}
	}
	return c.valueAt(addr, c.typeOf(id))
}

func (c *FunctionContext) isProperty(name string) bool {
	_, ok := c.env.PropertyOffset(name, c.enclosing)
	return ok
}

// valueAt reads a basic value; structs and containers are referenced by their base
func (c *FunctionContext) valueAt(addr Address, t ast.Type) yul.Expression {
	switch ast.Underlying(t).(type) {
	case ast.ArrayType, ast.FixedArrayType, ast.DictionaryType:
		return addr.Base
	}
	if c.isStruct(t) {
		return addr.Base
	}
	return addr.Load()
}

// lowerAddress lowers e to the location it denotes. write selects the
// container helpers that may grow a dynamic array or register a new key.
func (c *FunctionContext) lowerAddress(e ast.Expression, write bool) (Address, bool) {
	switch e := e.(type) {
	case *ast.Identifier:
		return c.identifierAddress(e)
	case *ast.SelfExpression:
		return c.self(), true
	case *ast.BinaryExpression:
		if e.Op == ast.Dot {
			return c.memberAddress(e, write)
		}
	case *ast.SubscriptExpression:
		return c.lowerSubscript(e, write)
	case *ast.BracketedExpression:
		return c.lowerAddress(e.Value, write)
	case *ast.InoutExpression:
		return c.lowerAddress(e.Value, write)
	}
	return Address{}, false
}

// identifierAddress resolves a property, or a struct-typed local or parameter
func (c *FunctionContext) identifierAddress(id *ast.Identifier) (Address, bool) {
	if id.IsLocal() && c.isLocal(id.Name) {
		t, _ := c.scope.TypeOf(id.Name)
		if !c.isStruct(t) {
			return Address{}, false
		}
		name := mangle.Local(id.Name)
		if c.scope.Parameter(id.Name) != nil {
			return Address{Base: yul.Ident(name), Space: DynamicSpace{Flag: mangle.Mem(name)}}, true
		}
		return Address{Base: yul.Ident(name), Space: MemorySpace{}}, true
	}

	owner := id.EnclosingType
	if owner == "" {
		owner = c.enclosing
	}
	return c.propertyAddress(c.self(), owner, id.Name, id.Pos)
}

// propertyAddress offsets base by the slot of property inside owner
func (c *FunctionContext) propertyAddress(base Address, owner, property string, pos ast.Position) (Address, bool) {
	offset, ok := c.env.PropertyOffset(property, owner)
	if !ok {
		c.report(errors.UnknownProperty(property, owner, pos))
		return Address{}, false
	}
	return base.Offset(yul.Num(offset)), true
}

// memberAddress resolves lhs.property
func (c *FunctionContext) memberAddress(e *ast.BinaryExpression, write bool) (Address, bool) {
	rhs, ok := e.RHS.(*ast.Identifier)
	if !ok {
		return Address{}, false
	}
	owner, ok := ast.Underlying(c.typeOf(e.LHS)).(ast.UserDefinedType)
	if !ok {
		return Address{}, false
	}
	base, ok := c.lowerAddress(e.LHS, write)
	if !ok {
		return Address{}, false
	}
	return c.propertyAddress(base, owner.Name, rhs.Name, rhs.Pos)
}

// lowerDot routes property reads, container sizes and method calls
func (c *FunctionContext) lowerDot(e *ast.BinaryExpression) yul.Expression {
	lhsType := ast.Underlying(c.typeOf(e.LHS))

	switch rhs := e.RHS.(type) {
	case *ast.FunctionCall:
		owner, ok := lhsType.(ast.UserDefinedType)
		if !ok {
			return c.report(errors.UnsupportedExpression(e, "method call on"))
		}
		if !c.env.IsStructDeclared(owner.Name) {
			return c.lowerCall(rhs, nil)
		}
		addr, ok := c.lowerAddress(e.LHS, false)
		if !ok {
			return c.report(errors.UnsupportedExpression(e, "method call on"))
		}
		return c.lowerCall(rhs, &receiver{addr: addr, owner: owner.Name})
	case *ast.Identifier:
		if rhs.Name == "size" {
			switch t := lhsType.(type) {
			case ast.FixedArrayType:
				return yul.Num(t.Size)
			case ast.ArrayType, ast.DictionaryType:
				addr, ok := c.lowerAddress(e.LHS, false)
				if !ok {
					return c.report(errors.UnsupportedExpression(e, "size of"))
				}
				return addr.Load()
			}
		}
	}

	addr, ok := c.memberAddress(e, false)
	if !ok {
		return c.report(errors.UnsupportedExpression(e, "property access"))
	}
	return c.valueAt(addr, c.typeOf(e))
}

// lowerSubscript computes the address of a container element
func (c *FunctionContext) lowerSubscript(e *ast.SubscriptExpression, write bool) (Address, bool) {
	base, ok := c.lowerAddress(e.Base, write)
	if !ok {
		c.report(errors.UnsupportedExpression(e, "subscript"))
		return Address{}, false
	}
	index := c.lowerExpression(e.Index)

	switch t := ast.Underlying(c.typeOf(e.Base)).(type) {
	case ast.FixedArrayType:
		elemSize := c.env.TypeSize(t.Elem)
		if _, storage := base.Space.(StorageSpace); storage && elemSize == 1 {
			return Address{
				Base:  runtime.StorageFixedSizeArrayOffset.Call(base.Base, index, yul.Num(t.Size)),
				Space: StorageSpace{},
			}, true
		}
		var checked yul.Expression = runtime.StorageFixedSizeArrayOffset.Call(yul.Num(0), index, yul.Num(t.Size))
		if elemSize != 1 {
			checked = yul.Call("mul", checked, yul.Num(elemSize))
		}
		return base.Offset(checked), true
	case ast.ArrayType:
		helper := runtime.StorageArrayReadOffset
		if write {
			helper = runtime.StorageArrayOffset
		}
		return Address{Base: helper.Call(base.Base, index), Space: StorageSpace{}}, true
	case ast.DictionaryType:
		helper := runtime.StorageOffsetForKey
		if write {
			helper = runtime.StorageDictionaryOffsetForKey
		}
		return Address{Base: helper.Call(base.Base, index), Space: StorageSpace{}}, true
	}
	c.report(errors.UnsupportedExpression(e, "subscript"))
	return Address{}, false
}

// lowerBinary lowers operators; checked arithmetic goes through the runtime library
func (c *FunctionContext) lowerBinary(e *ast.BinaryExpression) yul.Expression {
	switch e.Op {
	case ast.Dot:
		return c.lowerDot(e)
	case ast.Assign:
		return c.lowerAssignment(e.LHS, e.RHS)
	case ast.PlusEqual, ast.MinusEqual, ast.TimesEqual, ast.DivideEqual:
		op, _ := e.Op.Compound()
		return c.lowerAssignment(e.LHS, &ast.BinaryExpression{Pos: e.Pos, Op: op, LHS: e.LHS, RHS: e.RHS})
	case ast.LessThanOrEqual, ast.GreaterThanOrEqual:
		return c.report(errors.UnsupportedOperator(e))
	case ast.DoubleEqual, ast.NotEqual:
		if c.isStruct(c.typeOf(e.LHS)) {
			return c.report(errors.UnsupportedExpression(e, "struct comparison"))
		}
	}

	lhs := c.lowerExpression(e.LHS)
	rhs := c.lowerExpression(e.RHS)

	switch e.Op {
	case ast.Plus:
		return runtime.Add.Call(lhs, rhs)
	case ast.Minus:
		return runtime.Sub.Call(lhs, rhs)
	case ast.Times:
		return runtime.Mul.Call(lhs, rhs)
	case ast.Divide:
		return runtime.Div.Call(lhs, rhs)
	case ast.Power:
		return runtime.Power.Call(lhs, rhs)
	case ast.OverflowingPlus:
		return yul.Call("add", lhs, rhs)
	case ast.OverflowingMinus:
		return yul.Call("sub", lhs, rhs)
	case ast.OverflowingTimes:
		return yul.Call("mul", lhs, rhs)
	case ast.Percent:
		return yul.Call("mod", lhs, rhs)
	case ast.DoubleEqual:
		return yul.Call("eq", lhs, rhs)
	case ast.NotEqual:
		return yul.Call("iszero", yul.Call("eq", lhs, rhs))
	case ast.LessThan:
		return yul.Call("lt", lhs, rhs)
	case ast.GreaterThan:
		return yul.Call("gt", lhs, rhs)
	case ast.Or:
		return yul.Call("or", lhs, rhs)
	case ast.And:
		return yul.Call("and", lhs, rhs)
	}
	panic(fmt.Sprintf("codegen: unhandled operator %s", e.Op))
}
