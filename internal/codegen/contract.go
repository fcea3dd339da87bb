package codegen

import (
	"fmt"
	"strings"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// assemblyIndent is the nesting of statements inside an assembly block
const assemblyIndent = 3

// ContractOutput is one lowered contract
type ContractOutput struct {
	Name string
	// Constructor runs once at deployment
	Constructor *yul.Block
	// Runtime is the body of the fallback function handling every call
	Runtime *yul.Block
	Source  string
}

// Output is everything generated for a module
type Output struct {
	Contracts  []*ContractOutput
	Interfaces string
}

// Source concatenates the Solidity source of every contract and interface
func (o *Output) Source() string {
	parts := make([]string, 0, len(o.Contracts)+1)
	for _, c := range o.Contracts {
		parts = append(parts, c.Source)
	}
	if o.Interfaces != "" {
		parts = append(parts, o.Interfaces)
	}
	return strings.Join(parts, "\n")
}

// Generate lowers every contract of the module. The output is returned even
// when diagnostics were recorded; the error then lists all of them.
func (g *Generator) Generate(module *ast.Module) (*Output, error) {
	out := &Output{}
	structs := g.lowerStructs(module)

	for _, d := range module.Declarations {
		contract, ok := d.(*ast.ContractDeclaration)
		if !ok {
			continue
		}
		log.Infof("generating contract %s", contract.Name)
		co, err := g.lowerContract(module, contract, structs)
		if err != nil {
			return nil, err
		}
		out.Contracts = append(out.Contracts, co)
	}

	out.Interfaces = g.lowerInterfaces(module)

	if err := g.errs.Err(); err != nil {
		log.Infof("generation finished with %d diagnostics", len(g.errs))
		return out, err
	}
	return out, nil
}

// lowerStructs lowers the methods and initializers of every struct
func (g *Generator) lowerStructs(module *ast.Module) []yul.Statement {
	var defs []yul.Statement
	for _, s := range module.Structs() {
		for _, f := range s.Functions {
			defs = append(defs, g.lowerFunction(functionInput{
				owner:    s.Name,
				inStruct: true,
				decl:     f,
				mangled:  mangledName(s.Name, f),
			}))
		}
		for _, init := range s.Initializers {
			decl := init.AsFunction()
			defs = append(defs, g.lowerFunction(functionInput{
				owner:    s.Name,
				inStruct: true,
				decl:     decl,
				mangled:  mangle.Function(s.Name, decl.Name, decl.ParameterTypes()),
				fields:   s.Fields,
			}))
		}
	}
	return defs
}

func (g *Generator) lowerContract(module *ast.Module, contract *ast.ContractDeclaration, structs []yul.Statement) (*ContractOutput, error) {
	var (
		init      *ast.SpecialDeclaration
		binding   string
		functions []yul.Statement
		public    []dispatchFunction
	)

	for _, b := range module.Behaviours(contract.Name) {
		for _, m := range b.Members {
			switch m := m.(type) {
			case *ast.FunctionDeclaration:
				mangled := mangledName(contract.Name, m)
				functions = append(functions, g.lowerFunction(functionInput{
					owner:   contract.Name,
					decl:    m,
					mangled: mangled,
					binding: b.CallerBinding,
				}))
				if m.IsPublic() {
					public = append(public, dispatchFunction{decl: m, mangled: mangled, protections: b.CallerProtections})
				}
			case *ast.SpecialDeclaration:
				if m.Kind == ast.Fallback {
					g.report(errors.CustomFallback(contract.Name, m.Pos))
					continue
				}
				init, binding = m, b.CallerBinding
			}
		}
	}
	if init == nil {
		init = &ast.SpecialDeclaration{Pos: contract.Pos, Kind: ast.Init, Modifiers: []ast.Modifier{ast.Public}}
	}

	initDecl := init.AsFunction()
	initName := mangle.Function(contract.Name, initDecl.Name, nil)
	initFunction := g.lowerFunction(functionInput{
		owner:    contract.Name,
		decl:     initDecl,
		mangled:  initName,
		binding:  binding,
		fields:   contract.Fields,
		fromCode: true,
	})

	constructor := yul.NewBlock(g.freeMemoryPointer(), yul.Stmt(yul.Call(initName)), initFunction)
	constructor.Append(structs...)
	constructor.Append(runtime.Library()...)

	rt := yul.NewBlock(g.freeMemoryPointer())
	rt.Append(g.lowerDispatcher(contract, public)...)
	rt.Append(functions...)
	rt.Append(structs...)
	rt.Append(runtime.Library()...)

	source, err := g.renderContract(contract.Name, init, constructor, rt)
	if err != nil {
		return nil, err
	}
	return &ContractOutput{Name: contract.Name, Constructor: constructor, Runtime: rt, Source: source}, nil
}

// freeMemoryPointer initializes the allocator's bump pointer
func (g *Generator) freeMemoryPointer() yul.Statement {
	return yul.Stmt(yul.Call("mstore", yul.Hexf(g.cfg.FreeMemoryPointer, 2), yul.Hexf(g.cfg.FreeMemoryStart, 2)))
}

func (g *Generator) renderContract(name string, init *ast.SpecialDeclaration, constructor, rt *yul.Block) (string, error) {
	ctorBody, err := yul.PrintIndented(assemblyIndent, constructor.Statements...)
	if err != nil {
		return "", fmt.Errorf("contract %s: constructor: %w", name, err)
	}
	rtBody, err := yul.PrintIndented(assemblyIndent, rt.Statements...)
	if err != nil {
		return "", fmt.Errorf("contract %s: runtime: %w", name, err)
	}

	params := make([]string, 0, len(init.Parameters))
	for _, p := range init.Parameters {
		abi, ok := ABIName(p.Type)
		if !ok {
			g.report(errors.UnsupportedABIType("init", p.Type, p.Pos))
			continue
		}
		params = append(params, abi+" "+mangle.Local(p.Name))
	}
	modifiers := "public"
	if init.Payable {
		modifiers += " payable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "pragma solidity %s;\n\n", g.cfg.Pragma)
	fmt.Fprintf(&b, "contract %s {\n\n", name)
	fmt.Fprintf(&b, "  constructor(%s) %s {\n", strings.Join(params, ", "), modifiers)
	b.WriteString("    assembly {\n")
	b.WriteString(ctorBody)
	b.WriteString("    }\n  }\n\n")
	b.WriteString("  function () external payable {\n")
	b.WriteString("    assembly {\n")
	b.WriteString(rtBody)
	b.WriteString("    }\n  }\n}\n")
	return b.String(), nil
}
