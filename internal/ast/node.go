package ast

type Node interface {
	NodePos() Position
	String() string
}

func (i *Identifier) NodePos() Position          { return i.Pos }
func (b *BinaryExpression) NodePos() Position    { return b.Pos }
func (f *FunctionCall) NodePos() Position        { return f.Pos }
func (e *ExternalCall) NodePos() Position        { return e.Pos }
func (v *VariableDeclaration) NodePos() Position { return v.Pos }
func (s *SubscriptExpression) NodePos() Position { return s.Pos }
func (c *CastExpression) NodePos() Position      { return c.Pos }
func (i *InoutExpression) NodePos() Position     { return i.Pos }
func (b *BracketedExpression) NodePos() Position { return b.Pos }
func (s *SelfExpression) NodePos() Position      { return s.Pos }
func (l *IntLiteral) NodePos() Position          { return l.Pos }
func (l *FloatLiteral) NodePos() Position        { return l.Pos }
func (l *BoolLiteral) NodePos() Position         { return l.Pos }
func (l *StringLiteral) NodePos() Position       { return l.Pos }
func (l *AddressLiteral) NodePos() Position      { return l.Pos }
func (l *ArrayLiteral) NodePos() Position        { return l.Pos }
func (l *DictionaryLiteral) NodePos() Position   { return l.Pos }
func (r *RangeExpression) NodePos() Position     { return r.Pos }
func (a *AttemptExpression) NodePos() Position   { return a.Pos }
func (r *RawAssembly) NodePos() Position         { return r.Pos }
func (s *Sequence) NodePos() Position            { return s.Pos }

func (e *ExpressionStatement) NodePos() Position {
	if e.Expression == nil {
		return Position{}
	}
	return e.Expression.NodePos()
}
func (r *ReturnStatement) NodePos() Position { return r.Pos }
func (i *IfStatement) NodePos() Position     { return i.Pos }
func (b *BecomeStatement) NodePos() Position { return b.Pos }
func (e *EmitStatement) NodePos() Position   { return e.Pos }
func (f *ForStatement) NodePos() Position    { return f.Pos }

func (c *ContractDeclaration) NodePos() Position          { return c.Pos }
func (c *ContractBehaviourDeclaration) NodePos() Position { return c.Pos }
func (s *StructDeclaration) NodePos() Position            { return s.Pos }
func (t *TraitDeclaration) NodePos() Position             { return t.Pos }
func (f *FunctionDeclaration) NodePos() Position          { return f.Pos }
func (s *SpecialDeclaration) NodePos() Position           { return s.Pos }
