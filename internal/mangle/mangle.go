// Package mangle holds the single naming scheme every emitted symbol goes through.
package mangle

import (
	"strings"

	"quartz/internal/ast"
)

const (
	// SelfParam is the implicit receiver parameter of struct methods
	SelfParam = "QuartzSelf"
	// GlobalOwner owns free functions
	GlobalOwner = "Quartz_Global"
	// CallerCheck counts satisfied caller protections in a dispatcher case
	CallerCheck = "_quartzCallerCheck"
	// ReturnSlot is the implicit return variable of every function
	ReturnSlot = "ret"
)

// Local renders a user identifier so it cannot clash with builtins or helpers
func Local(name string) string {
	return "_" + name
}

// Mem names the companion flag telling whether name points to memory
func Mem(name string) string {
	return name + "$isMem"
}

// Function renders Owner$name$T1_T2 for overload-unique function names
func Function(owner, name string, params []ast.Type) string {
	out := owner + "$" + name
	if len(params) == 0 {
		return out
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = ast.MangledName(p)
	}
	return out + "$" + strings.Join(parts, "_")
}

// StateProperty names the hidden property holding a contract's type state
func StateProperty(contract string) string {
	return "quartzState$" + contract
}

// Interface names the Solidity interface emitted for an external trait
func Interface(trait string) string {
	return "_Interface" + trait
}
