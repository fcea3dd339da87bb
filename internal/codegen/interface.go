package codegen

import (
	"fmt"
	"strings"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/mangle"
)

// lowerInterfaces renders a Solidity interface for every external trait
func (g *Generator) lowerInterfaces(module *ast.Module) string {
	var b strings.Builder
	for _, trait := range module.Traits() {
		if !trait.External {
			continue
		}
		fmt.Fprintf(&b, "interface %s {\n", mangle.Interface(trait.Name))
		for _, f := range trait.Functions {
			if line, ok := g.interfaceFunction(f); ok {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func (g *Generator) interfaceFunction(f *ast.FunctionDeclaration) (string, bool) {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		abi, ok := ABIName(p.Type)
		if !ok {
			g.report(errors.UnsupportedABIType(f.Name, p.Type, p.Pos))
			return "", false
		}
		params[i] = abi + " " + mangle.Local(p.Name)
	}

	line := fmt.Sprintf("function %s(%s) view external", f.Name, strings.Join(params, ", "))
	if f.Result != nil {
		abi, ok := ABIName(f.Result)
		if !ok {
			g.report(errors.UnsupportedABIType(f.Name, f.Result, f.Pos))
			return "", false
		}
		line += fmt.Sprintf(" returns (%s %s)", abi, mangle.ReturnSlot)
	}
	return line + ";", true
}
