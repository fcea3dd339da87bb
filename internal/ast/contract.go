package ast

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Module is a whole compilation unit
type Module struct {
	Declarations []Declaration
}

// Declaration is a top-level declaration
type Declaration interface {
	Node
	isDecl()
}

// ContractDeclaration introduces a contract and its state
// Example: "contract Bank (Open, Closed) { var owner: Address }"
type ContractDeclaration struct {
	Pos          Position
	Name         string
	Fields       []*VariableDeclaration
	TypeStates   []string
	Conformances []string
}

// ContractBehaviourDeclaration groups functions callable under a set of caller protections
// Example: "Bank :: caller <- (owner) { public func close() mutates (open) { ... } }"
type ContractBehaviourDeclaration struct {
	Pos               Position
	Contract          string
	TypeStates        []string
	CallerBinding     string
	CallerProtections []CallerProtection
	Members           []BehaviourMember
}

// BehaviourMember is a function or special declaration inside a behaviour block
type BehaviourMember interface {
	Node
	isBehaviourMember()
}

// CallerProtection names the property (or "any") allowed to invoke a behaviour
type CallerProtection struct {
	Pos  Position
	Name string
}

// StructDeclaration introduces a struct with fields, methods and initializers
type StructDeclaration struct {
	Pos          Position
	Name         string
	Fields       []*VariableDeclaration
	Functions    []*FunctionDeclaration
	Initializers []*SpecialDeclaration
}

// TraitDeclaration declares functions of an external contract
// Example: "external trait Token { func balanceOf(owner: Address) -> Int }"
type TraitDeclaration struct {
	Pos       Position
	Name      string
	External  bool
	Functions []*FunctionDeclaration
}

// Modifier is a declaration modifier
type Modifier int

const (
	Public Modifier = iota
	Visible
)

// FunctionDeclaration is a function or method
type FunctionDeclaration struct {
	Pos        Position
	Name       string
	Parameters []*Parameter
	Result     Type
	Modifiers  []Modifier
	Mutates    []string
	Payable    bool
	Body       []Statement
	// Mangled is filled in by the front end once overloads are resolved
	Mangled string
	Scope   *ScopeContext
}

// SpecialKind distinguishes initializers from fallbacks
type SpecialKind int

const (
	Init SpecialKind = iota
	Fallback
)

func (k SpecialKind) String() string {
	if k == Fallback {
		return "fallback"
	}
	return "init"
}

// SpecialDeclaration is an initializer or a fallback
type SpecialDeclaration struct {
	Pos        Position
	Kind       SpecialKind
	Parameters []*Parameter
	Modifiers  []Modifier
	Payable    bool
	Body       []Statement
	Scope      *ScopeContext
}

// Parameter is a function parameter
type Parameter struct {
	Pos  Position
	Name string
	Type Type
}

func (*ContractDeclaration) isDecl()          {}
func (*ContractBehaviourDeclaration) isDecl() {}
func (*StructDeclaration) isDecl()            {}
func (*TraitDeclaration) isDecl()             {}

func (*FunctionDeclaration) isBehaviourMember() {}
func (*SpecialDeclaration) isBehaviourMember()  {}

// IsAny reports whether the protection admits every caller
func (c CallerProtection) IsAny() bool {
	return c.Name == "any"
}

// IsPublic reports whether the function is reachable through the dispatcher
func (f *FunctionDeclaration) IsPublic() bool {
	return hasModifier(f.Modifiers, Public)
}

// ParameterTypes lists the declared parameter types in order
func (f *FunctionDeclaration) ParameterTypes() []Type {
	return parameterTypes(f.Parameters)
}

func (s *SpecialDeclaration) IsPublic() bool {
	return hasModifier(s.Modifiers, Public)
}

func (s *SpecialDeclaration) ParameterTypes() []Type {
	return parameterTypes(s.Parameters)
}

// AsFunction views the special declaration as a function named after its kind
func (s *SpecialDeclaration) AsFunction() *FunctionDeclaration {
	return &FunctionDeclaration{
		Pos:        s.Pos,
		Name:       s.Kind.String(),
		Parameters: s.Parameters,
		Modifiers:  s.Modifiers,
		Payable:    s.Payable,
		Body:       s.Body,
		Scope:      s.Scope,
	}
}

// Contract returns the declaration of the named contract
func (m *Module) Contract(name string) *ContractDeclaration {
	for _, d := range m.Declarations {
		if c, ok := d.(*ContractDeclaration); ok && c.Name == name {
			return c
		}
	}
	return nil
}

// Behaviours returns every behaviour block of the named contract in source order
func (m *Module) Behaviours(contract string) []*ContractBehaviourDeclaration {
	var out []*ContractBehaviourDeclaration
	for _, d := range m.Declarations {
		if b, ok := d.(*ContractBehaviourDeclaration); ok && b.Contract == contract {
			out = append(out, b)
		}
	}
	return out
}

// Structs returns every struct declaration in source order
func (m *Module) Structs() []*StructDeclaration {
	var out []*StructDeclaration
	for _, d := range m.Declarations {
		if s, ok := d.(*StructDeclaration); ok {
			out = append(out, s)
		}
	}
	return out
}

// Traits returns every trait declaration in source order
func (m *Module) Traits() []*TraitDeclaration {
	var out []*TraitDeclaration
	for _, d := range m.Declarations {
		if t, ok := d.(*TraitDeclaration); ok {
			out = append(out, t)
		}
	}
	return out
}

func hasModifier(mods []Modifier, want Modifier) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}

func parameterTypes(params []*Parameter) []Type {
	out := make([]Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
