// Package env answers the code generator's questions about a type-checked module:
// expression types, overload resolution, property offsets and type sizes.
package env

import "quartz/internal/ast"

// Environment is the read-only oracle consulted during lowering
type Environment interface {
	ExpressionType(e ast.Expression, enclosing string, scope *ast.ScopeContext) ast.Type
	MatchFunctionCall(call *ast.FunctionCall, enclosing string, scope *ast.ScopeContext) Match
	PropertyOffset(property, enclosing string) (uint64, bool)
	PropertyType(property, enclosing string) ast.Type
	TypeSize(t ast.Type) uint64
	IsStructDeclared(name string) bool
	IsContractDeclared(name string) bool
	IsTraitDeclared(name string) bool
	TraitFunction(trait, name string) *ast.FunctionDeclaration
}

// FunctionInfo describes a callable resolved by the environment
type FunctionInfo struct {
	Owner       string
	Declaration *ast.FunctionDeclaration
	Mangled     string
}

// Match is the outcome of overload resolution
type Match interface {
	isMatch()
}

// MatchedFunction resolved to exactly one function or method
type MatchedFunction struct {
	Function *FunctionInfo
}

// MatchedInitializer resolved to a struct initializer. Generated initializers
// are compiler-synthesized single-argument conversions such as Address(x).
type MatchedInitializer struct {
	Initializer *FunctionInfo
	Generated   bool
}

// MatchFailure lists the same-named candidates that did not match
type MatchFailure struct {
	Candidates []*FunctionInfo
}

func (*MatchedFunction) isMatch()    {}
func (*MatchedInitializer) isMatch() {}
func (*MatchFailure) isMatch()       {}
