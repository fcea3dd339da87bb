package env

import "quartz/internal/ast"

// ExpressionType infers the type of an expression inside enclosing.
// Unknown expressions are typed ast.ErrorType rather than failing.
func (t *Table) ExpressionType(e ast.Expression, enclosing string, scope *ast.ScopeContext) ast.Type {
	switch e := e.(type) {
	case *ast.Identifier:
		if e.EnclosingType != "" {
			return t.PropertyType(e.Name, e.EnclosingType)
		}
		if typ, ok := scope.TypeOf(e.Name); ok {
			return typ
		}
		return t.PropertyType(e.Name, enclosing)
	case *ast.SelfExpression:
		return ast.UserDefinedType{Name: enclosing}
	case *ast.BinaryExpression:
		return t.binaryType(e, enclosing, scope)
	case *ast.FunctionCall:
		return t.callType(e, enclosing, scope)
	case *ast.ExternalCall:
		if f := t.TraitFunction(e.Trait, e.Call.Name); f != nil && f.Result != nil {
			return f.Result
		}
		return ast.ErrorType{}
	case *ast.VariableDeclaration:
		return e.Type
	case *ast.SubscriptExpression:
		switch base := ast.Underlying(t.ExpressionType(e.Base, enclosing, scope)).(type) {
		case ast.ArrayType:
			return base.Elem
		case ast.FixedArrayType:
			return base.Elem
		case ast.DictionaryType:
			return base.Value
		}
		return ast.ErrorType{}
	case *ast.CastExpression:
		return e.Type
	case *ast.InoutExpression:
		return ast.InoutType{Key: t.ExpressionType(e.Value, enclosing, scope)}
	case *ast.BracketedExpression:
		return t.ExpressionType(e.Value, enclosing, scope)
	case *ast.IntLiteral:
		return ast.IntType{}
	case *ast.BoolLiteral:
		return ast.BoolType{}
	case *ast.StringLiteral:
		return ast.StringType{}
	case *ast.AddressLiteral:
		return ast.AddressType{}
	case *ast.ArrayLiteral:
		if len(e.Elements) > 0 {
			return ast.ArrayType{Elem: t.ExpressionType(e.Elements[0], enclosing, scope)}
		}
		return ast.ArrayType{Elem: ast.ErrorType{}}
	case *ast.DictionaryLiteral:
		return ast.DictionaryType{Key: ast.ErrorType{}, Value: ast.ErrorType{}}
	case *ast.RangeExpression:
		return ast.RangeType{Elem: t.ExpressionType(e.Start, enclosing, scope)}
	case *ast.AttemptExpression:
		if !e.Hard {
			return ast.BoolType{}
		}
		return t.callType(e.Call, enclosing, scope)
	case *ast.Sequence:
		if n := len(e.Expressions); n > 0 {
			return t.ExpressionType(e.Expressions[n-1], enclosing, scope)
		}
	}
	return ast.ErrorType{}
}

func (t *Table) binaryType(e *ast.BinaryExpression, enclosing string, scope *ast.ScopeContext) ast.Type {
	switch e.Op {
	case ast.Dot:
		lhs := ast.Underlying(t.ExpressionType(e.LHS, enclosing, scope))
		if id, ok := e.RHS.(*ast.Identifier); ok && id.Name == "size" {
			switch lhs.(type) {
			case ast.ArrayType, ast.FixedArrayType, ast.DictionaryType:
				return ast.IntType{}
			}
		}
		owner, ok := lhs.(ast.UserDefinedType)
		if !ok {
			return ast.ErrorType{}
		}
		// Names on the right resolve against the owner, never against locals
		return t.ExpressionType(e.RHS, owner.Name, nil)
	case ast.Assign, ast.PlusEqual, ast.MinusEqual, ast.TimesEqual, ast.DivideEqual:
		return t.ExpressionType(e.LHS, enclosing, scope)
	case ast.Or, ast.And:
		return ast.BoolType{}
	}
	if e.Op.IsComparison() {
		return ast.BoolType{}
	}
	return t.ExpressionType(e.LHS, enclosing, scope)
}

func (t *Table) callType(call *ast.FunctionCall, enclosing string, scope *ast.ScopeContext) ast.Type {
	switch m := t.MatchFunctionCall(call, enclosing, scope).(type) {
	case *MatchedFunction:
		if m.Function.Declaration.Result != nil {
			return m.Function.Declaration.Result
		}
	case *MatchedInitializer:
		if m.Generated {
			return m.Initializer.Declaration.Result
		}
		return ast.UserDefinedType{Name: m.Initializer.Owner}
	}
	return ast.ErrorType{}
}
