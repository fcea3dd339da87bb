package ast

import "fmt"

// ScopeContext lists the parameters and locals visible inside a function body
type ScopeContext struct {
	Parameters     []*Parameter
	LocalVariables []*VariableDeclaration
	Counter        int
}

// NewScope builds the scope of a function from its parameters and body
func NewScope(params []*Parameter, body []Statement) *ScopeContext {
	s := &ScopeContext{Parameters: params}
	s.collect(body)
	return s
}

func (s *ScopeContext) collect(body []Statement) {
	for _, stmt := range body {
		switch stmt := stmt.(type) {
		case *ExpressionStatement:
			s.collectExpression(stmt.Expression)
		case *ReturnStatement:
			s.collectExpression(stmt.Value)
		case *IfStatement:
			s.collect(stmt.Body)
			s.collect(stmt.Else)
		case *ForStatement:
			if stmt.Variable != nil {
				s.LocalVariables = append(s.LocalVariables, stmt.Variable)
			}
			s.collect(stmt.Body)
		}
	}
}

func (s *ScopeContext) collectExpression(e Expression) {
	switch e := e.(type) {
	case *VariableDeclaration:
		s.LocalVariables = append(s.LocalVariables, e)
	case *BinaryExpression:
		s.collectExpression(e.LHS)
	case *Sequence:
		for _, inner := range e.Expressions {
			s.collectExpression(inner)
		}
	}
}

// Parameter looks up a parameter by name
func (s *ScopeContext) Parameter(name string) *Parameter {
	if s == nil {
		return nil
	}
	for _, p := range s.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Local looks up a local variable by name
func (s *ScopeContext) Local(name string) *VariableDeclaration {
	if s == nil {
		return nil
	}
	for _, v := range s.LocalVariables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// TypeOf resolves the type of a local or parameter
func (s *ScopeContext) TypeOf(name string) (Type, bool) {
	if v := s.Local(name); v != nil {
		return v.Type, true
	}
	if p := s.Parameter(name); p != nil {
		return p.Type, true
	}
	return nil, false
}

// FreshName returns a name no user identifier can collide with
func (s *ScopeContext) FreshName(prefix string) string {
	name := fmt.Sprintf("%s$%d", prefix, s.Counter)
	s.Counter++
	return name
}
