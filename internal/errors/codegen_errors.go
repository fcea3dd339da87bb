package errors

import (
	"fmt"

	"quartz/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating code generation errors with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewCodegenError creates a new code generation error builder
func NewCodegenError(code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewCodegenWarning creates a new code generation warning builder
func NewCodegenWarning(code, message string, pos ast.Position) *DiagnosticBuilder {
	b := NewCodegenError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// Constructors for each code generation failure

// UnsupportedExternalCallType reports an argument or result that is not a flat scalar
func UnsupportedExternalCallType(function string, typ ast.Type, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorUnsupportedExternalCallType,
		fmt.Sprintf("cannot pass '%s' through external call '%s'", typ, function), pos).
		WithNote("external calls encode each argument as a single 32-byte word").
		WithHelp("pass scalar values such as Int, Address or Bool").
		Build()
}

// UnsupportedOperator reports <= and >=, which have no single opcode
func UnsupportedOperator(expr *ast.BinaryExpression) CompilerError {
	flipped := ast.LessThan
	if expr.Op == ast.GreaterThanOrEqual {
		flipped = ast.GreaterThan
	}
	rewrite := fmt.Sprintf("%s %s %s || %s == %s", expr.LHS, flipped, expr.RHS, expr.LHS, expr.RHS)
	return NewCodegenError(ErrorUnsupportedOperator,
		fmt.Sprintf("operator '%s' is not supported by this backend", expr.Op), expr.Pos).
		WithLength(len(expr.Op.String())).
		WithReplacement("combine a strict comparison with an equality", rewrite, expr.Pos, len(expr.String())).
		Build()
}

// UnsupportedCollectionLiteral reports non-empty array and dictionary literals
func UnsupportedCollectionLiteral(expr ast.Expression) CompilerError {
	return NewCodegenError(ErrorUnsupportedLiteralCollection,
		fmt.Sprintf("collection literal '%s' is not supported", expr), expr.NodePos()).
		WithSuggestion("initialize the collection empty and insert elements one by one").
		Build()
}

// MissingInitializer reports a struct construction with no matching init
func MissingInitializer(call *ast.FunctionCall, candidates int) CompilerError {
	b := NewCodegenError(ErrorMissingInitializer,
		fmt.Sprintf("no initializer of '%s' accepts %d argument(s)", call.Name, len(call.Arguments)), call.Pos).
		WithLength(len(call.Name))
	if candidates == 0 {
		b.WithSuggestion(fmt.Sprintf("declare 'init' inside struct '%s'", call.Name))
	} else {
		b.WithNote(fmt.Sprintf("'%s' declares %d initializer(s)", call.Name, candidates))
	}
	return b.Build()
}

// AmbiguousCall reports a call resolving to several functions
func AmbiguousCall(call *ast.FunctionCall, candidates []string) CompilerError {
	b := NewCodegenError(ErrorAmbiguousCall,
		fmt.Sprintf("call to '%s' is ambiguous", call.Name), call.Pos).
		WithLength(len(call.Name))
	for _, c := range candidates {
		b.WithNote("candidate: " + c)
	}
	return b.Build()
}

// UnsupportedStatement reports statements the backend cannot lower
func UnsupportedStatement(stmt ast.Statement, what string) CompilerError {
	return NewCodegenError(ErrorUnsupportedStatement,
		fmt.Sprintf("%s statements are not supported by this backend", what), stmt.NodePos()).
		Build()
}

// UnsupportedLiteral reports literals with no target representation
func UnsupportedLiteral(expr ast.Expression) CompilerError {
	return NewCodegenError(ErrorUnsupportedLiteral,
		fmt.Sprintf("literal '%s' has no representation in the target", expr), expr.NodePos()).
		WithHelp("use integer arithmetic with an explicit scale").
		Build()
}

// CustomFallback reports a user-declared fallback
func CustomFallback(contract string, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorCustomFallback,
		fmt.Sprintf("contract '%s' declares a fallback, which is not supported", contract), pos).
		WithNote("calls with an unknown selector always revert").
		Build()
}

// InvalidCallerProtection reports a protection that is not an address-valued property
func InvalidCallerProtection(name, contract string, typ ast.Type, pos ast.Position) CompilerError {
	if typ == nil {
		return NewCodegenError(ErrorInvalidCallerProtection,
			fmt.Sprintf("caller protection '%s' is not a property of '%s'", name, contract), pos).
			WithLength(len(name)).
			Build()
	}
	return NewCodegenError(ErrorInvalidCallerProtection,
		fmt.Sprintf("caller protection '%s' has type '%s'", name, typ), pos).
		WithLength(len(name)).
		WithHelp("protect with an Address, an [Address] or a dictionary with Address values").
		Build()
}

// UnsupportedCast reports casts involving non-scalar types
func UnsupportedCast(from, to ast.Type, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorUnsupportedCast,
		fmt.Sprintf("cannot cast '%s' to '%s'", from, to), pos).
		WithNote("only integer, address and boolean values can be cast").
		Build()
}

// UnsupportedExpression reports expression kinds the backend cannot lower
func UnsupportedExpression(expr ast.Expression, what string) CompilerError {
	return NewCodegenError(ErrorUnsupportedExpression,
		fmt.Sprintf("%s '%s' is not supported by this backend", what, expr), expr.NodePos()).
		Build()
}

// InvalidAssignmentTarget reports writes to something without an address
func InvalidAssignmentTarget(expr ast.Expression) CompilerError {
	return NewCodegenError(ErrorInvalidAssignmentTarget,
		fmt.Sprintf("cannot assign to '%s'", expr), expr.NodePos()).
		Build()
}

// UnsupportedABIType reports public signatures that cannot be decoded from calldata
func UnsupportedABIType(function string, typ ast.Type, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorUnsupportedABIType,
		fmt.Sprintf("public function '%s' uses '%s', which has no single-word ABI encoding", function, typ), pos).
		WithHelp("make the function non-public or change the parameter type").
		Build()
}

// UnknownProperty reports a property missing from its enclosing type
func UnknownProperty(name, enclosing string, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorUnknownProperty,
		fmt.Sprintf("'%s' has no property '%s'", enclosing, name), pos).
		WithLength(len(name)).
		Build()
}

// YulSyntax reports Yul text the parser rejects, such as a hand-written
// runtime file handed to the simulator
func YulSyntax(message string, pos ast.Position) CompilerError {
	return NewCodegenError(ErrorYulSyntax, message, pos).Build()
}
