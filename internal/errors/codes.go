package errors

// Error codes for the Quartz code generator
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0699: Reserved for front end stages
// E0700-E0799: Code generation errors
// E0900-E0999: Tooling errors

const (
	// E0901: Yul input the embedded-code parser rejects
	ErrorYulSyntax = "E0901"

	// E0701: External call argument or result cannot be ABI encoded as one word
	ErrorUnsupportedExternalCallType = "E0701"

	// E0702: Comparison operator without a target opcode
	ErrorUnsupportedOperator = "E0702"

	// E0703: Array or dictionary literal other than the empty literal
	ErrorUnsupportedLiteralCollection = "E0703"

	// E0704: Call to an initializer that is missing or ambiguous
	ErrorMissingInitializer = "E0704"

	// E0705: Statement kind the backend does not lower
	ErrorUnsupportedStatement = "E0705"

	// E0706: Literal without a target representation (decimals)
	ErrorUnsupportedLiteral = "E0706"

	// E0707: User-defined fallback function
	ErrorCustomFallback = "E0707"

	// E0708: Caller protection naming something other than an address property
	ErrorInvalidCallerProtection = "E0708"

	// E0709: Cast between types that are not both scalar
	ErrorUnsupportedCast = "E0709"

	// E0710: Expression kind the backend does not lower
	ErrorUnsupportedExpression = "E0710"

	// E0711: Left side of an assignment is not addressable
	ErrorInvalidAssignmentTarget = "E0711"

	// E0712: Public function signature uses a type without a one-word ABI encoding
	ErrorUnsupportedABIType = "E0712"

	// E0713: Function call that resolves to several candidates
	ErrorAmbiguousCall = "E0713"

	// E0714: Property missing from the enclosing type
	ErrorUnknownProperty = "E0714"
)
