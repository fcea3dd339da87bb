package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (i *Identifier) String() string {
	if i.EnclosingType != "" {
		return "self." + i.Name
	}
	return i.Name
}

func (b *BinaryExpression) String() string {
	if b.Op == Dot {
		return fmt.Sprintf("%s.%s", b.LHS, b.RHS)
	}
	return fmt.Sprintf("%s %s %s", b.LHS, b.Op, b.RHS)
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", f.Name, joinExpressions(f.Arguments))
}

func (e *ExternalCall) String() string {
	return fmt.Sprintf("call %s.%s", e.Receiver, e.Call)
}

func (v *VariableDeclaration) String() string {
	keyword := "var"
	if v.Constant {
		keyword = "let"
	}
	out := fmt.Sprintf("%s %s: %s", keyword, v.Name, v.Type)
	if v.Value != nil {
		out += " = " + v.Value.String()
	}
	return out
}

func (s *SubscriptExpression) String() string {
	return fmt.Sprintf("%s[%s]", s.Base, s.Index)
}

func (c *CastExpression) String() string {
	return fmt.Sprintf("cast %s to %s", c.Value, c.Type)
}

func (i *InoutExpression) String() string     { return "&" + i.Value.String() }
func (b *BracketedExpression) String() string { return "(" + b.Value.String() + ")" }
func (*SelfExpression) String() string        { return "self" }
func (l *IntLiteral) String() string          { return strconv.FormatUint(l.Value, 10) }
func (l *FloatLiteral) String() string        { return l.Value }
func (l *BoolLiteral) String() string         { return strconv.FormatBool(l.Value) }
func (l *StringLiteral) String() string       { return strconv.Quote(l.Value) }
func (l *AddressLiteral) String() string      { return l.Value }
func (r *RawAssembly) String() string         { return r.Code }

func (l *ArrayLiteral) String() string {
	return "[" + joinExpressions(l.Elements) + "]"
}

func (l *DictionaryLiteral) String() string {
	if len(l.Entries) == 0 {
		return "[:]"
	}
	parts := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (r *RangeExpression) String() string {
	op := "..<"
	if r.Inclusive {
		op = "..."
	}
	return fmt.Sprintf("(%s%s%s)", r.Start, op, r.End)
}

func (a *AttemptExpression) String() string {
	if a.Hard {
		return "try! " + a.Call.String()
	}
	return "try? " + a.Call.String()
}

func (s *Sequence) String() string {
	return joinExpressions(s.Expressions)
}

func (e *ExpressionStatement) String() string { return e.Expression.String() }

func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

func (i *IfStatement) String() string {
	out := fmt.Sprintf("if %s { %s }", i.Condition, joinStatements(i.Body))
	if len(i.Else) > 0 {
		out += fmt.Sprintf(" else { %s }", joinStatements(i.Else))
	}
	return out
}

func (b *BecomeStatement) String() string { return "become " + b.State }
func (e *EmitStatement) String() string   { return "emit " + e.Call.String() }

func (f *ForStatement) String() string {
	return fmt.Sprintf("for %s in %s { %s }", f.Variable, f.Iterable, joinStatements(f.Body))
}

func (c *ContractDeclaration) String() string {
	return "contract " + c.Name
}

func (c *ContractBehaviourDeclaration) String() string {
	names := make([]string, len(c.CallerProtections))
	for i, p := range c.CallerProtections {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s :: (%s)", c.Contract, strings.Join(names, ", "))
}

func (s *StructDeclaration) String() string { return "struct " + s.Name }

func (t *TraitDeclaration) String() string {
	if t.External {
		return "external trait " + t.Name
	}
	return "trait " + t.Name
}

func (f *FunctionDeclaration) String() string {
	out := fmt.Sprintf("func %s(%s)", f.Name, joinParameters(f.Parameters))
	if f.Result != nil {
		out += " -> " + f.Result.String()
	}
	return out
}

func (s *SpecialDeclaration) String() string {
	return fmt.Sprintf("%s(%s)", s.Kind, joinParameters(s.Parameters))
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinStatements(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

func joinParameters(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return strings.Join(parts, ", ")
}
