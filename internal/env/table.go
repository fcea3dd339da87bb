package env

import (
	"quartz/internal/ast"
	"quartz/internal/mangle"
)

// Kind distinguishes the declarations that own properties and functions
type Kind int

const (
	KindContract Kind = iota
	KindStruct
)

// PropertyInfo is a field with its slot offset inside the owning type
type PropertyInfo struct {
	Name    string
	Type    ast.Type
	Offset  uint64
	Default ast.Expression
}

// TypeInfo is a contract or struct and its laid out properties
type TypeInfo struct {
	Name       string
	Kind       Kind
	Properties []*PropertyInfo
	laidOut    bool
	declared   []*ast.VariableDeclaration
}

// Property looks up a property by name
func (ti *TypeInfo) Property(name string) *PropertyInfo {
	for _, p := range ti.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// basicInitializers are the conversions every module gets for free
var basicInitializers = map[string]ast.Type{
	"Int":     ast.IntType{},
	"Address": ast.AddressType{},
	"Bool":    ast.BoolType{},
	"String":  ast.StringType{},
}

// Table is an Environment computed from a module's declarations
type Table struct {
	types        map[string]*TypeInfo
	functions    map[string][]*FunctionInfo
	initializers map[string][]*FunctionInfo
	traits       map[string]*ast.TraitDeclaration
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		types:        make(map[string]*TypeInfo),
		functions:    make(map[string][]*FunctionInfo),
		initializers: make(map[string][]*FunctionInfo),
		traits:       make(map[string]*ast.TraitDeclaration),
	}
}

// Build collects types, properties and functions of a module.
// Properties are laid out one slot per word in declaration order.
func Build(module *ast.Module) *Table {
	t := NewTable()

	// First pass: types, so sizes can be computed in any order
	for _, d := range module.Declarations {
		switch d := d.(type) {
		case *ast.ContractDeclaration:
			fields := d.Fields
			if len(d.TypeStates) > 0 {
				fields = append(append([]*ast.VariableDeclaration{}, fields...),
					&ast.VariableDeclaration{Name: mangle.StateProperty(d.Name), Type: ast.IntType{}})
			}
			t.AddType(d.Name, KindContract, fields)
		case *ast.StructDeclaration:
			t.AddType(d.Name, KindStruct, d.Fields)
		case *ast.TraitDeclaration:
			t.traits[d.Name] = d
		}
	}

	// Second pass: functions
	for _, d := range module.Declarations {
		switch d := d.(type) {
		case *ast.ContractBehaviourDeclaration:
			for _, m := range d.Members {
				switch m := m.(type) {
				case *ast.FunctionDeclaration:
					t.AddFunction(d.Contract, m)
				case *ast.SpecialDeclaration:
					if m.Kind == ast.Init {
						t.AddInitializer(d.Contract, m)
					}
				}
			}
		case *ast.StructDeclaration:
			for _, f := range d.Functions {
				t.AddFunction(d.Name, f)
			}
			for _, init := range d.Initializers {
				t.AddInitializer(d.Name, init)
			}
		}
	}

	for _, ti := range t.types {
		t.layout(ti)
	}
	return t
}

// AddType registers a contract or struct with its fields
func (t *Table) AddType(name string, kind Kind, fields []*ast.VariableDeclaration) {
	t.types[name] = &TypeInfo{Name: name, Kind: kind, declared: fields}
}

// AddFunction registers a function owned by a type
func (t *Table) AddFunction(owner string, f *ast.FunctionDeclaration) *FunctionInfo {
	info := &FunctionInfo{Owner: owner, Declaration: f, Mangled: f.Mangled}
	if info.Mangled == "" {
		info.Mangled = mangle.Function(owner, f.Name, f.ParameterTypes())
	}
	t.functions[owner] = append(t.functions[owner], info)
	return info
}

// AddInitializer registers an initializer of a type
func (t *Table) AddInitializer(owner string, s *ast.SpecialDeclaration) *FunctionInfo {
	f := s.AsFunction()
	info := &FunctionInfo{Owner: owner, Declaration: f, Mangled: mangle.Function(owner, f.Name, f.ParameterTypes())}
	t.initializers[owner] = append(t.initializers[owner], info)
	return info
}

// AddTrait registers an external trait
func (t *Table) AddTrait(trait *ast.TraitDeclaration) {
	t.traits[trait.Name] = trait
}

// Type returns the laid out type info
func (t *Table) Type(name string) *TypeInfo {
	ti := t.types[name]
	if ti != nil {
		t.layout(ti)
	}
	return ti
}

// Functions returns the functions owned by a type in registration order
func (t *Table) Functions(owner string) []*FunctionInfo {
	return t.functions[owner]
}

func (t *Table) layout(ti *TypeInfo) {
	if ti.laidOut {
		return
	}
	ti.laidOut = true
	var offset uint64
	for _, f := range ti.declared {
		ti.Properties = append(ti.Properties, &PropertyInfo{
			Name:    f.Name,
			Type:    f.Type,
			Offset:  offset,
			Default: f.Value,
		})
		offset += t.TypeSize(f.Type)
	}
}

// Environment implementation

func (t *Table) PropertyOffset(property, enclosing string) (uint64, bool) {
	ti := t.Type(enclosing)
	if ti == nil {
		return 0, false
	}
	p := ti.Property(property)
	if p == nil {
		return 0, false
	}
	return p.Offset, true
}

func (t *Table) PropertyType(property, enclosing string) ast.Type {
	ti := t.Type(enclosing)
	if ti == nil {
		return ast.ErrorType{}
	}
	if p := ti.Property(property); p != nil {
		return p.Type
	}
	return ast.ErrorType{}
}

// TypeSize counts storage slots: one per word, size*elem for fixed arrays,
// the sum of the fields for structs
func (t *Table) TypeSize(typ ast.Type) uint64 {
	switch typ := typ.(type) {
	case ast.FixedArrayType:
		return typ.Size * t.TypeSize(typ.Elem)
	case ast.InoutType:
		return t.TypeSize(typ.Key)
	case ast.UserDefinedType:
		ti := t.types[typ.Name]
		if ti == nil || ti.Kind != KindStruct {
			return 1
		}
		var size uint64
		for _, f := range ti.declared {
			size += t.TypeSize(f.Type)
		}
		return size
	}
	return 1
}

func (t *Table) IsStructDeclared(name string) bool {
	ti := t.types[name]
	return ti != nil && ti.Kind == KindStruct
}

func (t *Table) IsContractDeclared(name string) bool {
	ti := t.types[name]
	return ti != nil && ti.Kind == KindContract
}

func (t *Table) IsTraitDeclared(name string) bool {
	return t.traits[name] != nil
}

func (t *Table) TraitFunction(trait, name string) *ast.FunctionDeclaration {
	tr := t.traits[trait]
	if tr == nil {
		return nil
	}
	for _, f := range tr.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// MatchFunctionCall resolves a call by name, arity and argument types.
// A call named after a struct resolves against that struct's initializers.
func (t *Table) MatchFunctionCall(call *ast.FunctionCall, enclosing string, scope *ast.ScopeContext) Match {
	if typ, ok := basicInitializers[call.Name]; ok && len(call.Arguments) == 1 {
		decl := &ast.FunctionDeclaration{
			Name:       "init",
			Parameters: []*ast.Parameter{{Name: "value", Type: typ}},
			Result:     typ,
		}
		return &MatchedInitializer{
			Initializer: &FunctionInfo{Owner: call.Name, Declaration: decl, Mangled: call.Name},
			Generated:   true,
		}
	}

	if t.IsStructDeclared(call.Name) {
		candidates := t.initializers[call.Name]
		if match := t.pick(candidates, call, enclosing, scope); match != nil {
			return &MatchedInitializer{Initializer: match}
		}
		return &MatchFailure{Candidates: candidates}
	}

	var named []*FunctionInfo
	for _, owner := range []string{enclosing, mangle.GlobalOwner} {
		for _, f := range t.functions[owner] {
			if f.Declaration.Name == call.Name {
				named = append(named, f)
			}
		}
		if match := t.pick(named, call, enclosing, scope); match != nil {
			return &MatchedFunction{Function: match}
		}
	}
	return &MatchFailure{Candidates: named}
}

// pick returns the single candidate accepting the call's arguments
func (t *Table) pick(candidates []*FunctionInfo, call *ast.FunctionCall, enclosing string, scope *ast.ScopeContext) *FunctionInfo {
	var found *FunctionInfo
	for _, c := range candidates {
		if !t.accepts(c.Declaration, call, enclosing, scope) {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

func (t *Table) accepts(f *ast.FunctionDeclaration, call *ast.FunctionCall, enclosing string, scope *ast.ScopeContext) bool {
	if len(f.Parameters) != len(call.Arguments) {
		return false
	}
	for i, p := range f.Parameters {
		argType := t.ExpressionType(call.Arguments[i], enclosing, scope)
		if _, unknown := argType.(ast.ErrorType); unknown {
			continue
		}
		if !ast.SameType(ast.Underlying(p.Type), ast.Underlying(argType)) {
			return false
		}
	}
	return true
}
