package ast

import "fmt"

// BinOp is a binary operator
type BinOp int

const (
	Dot BinOp = iota
	Assign
	Plus
	Minus
	Times
	Divide
	Power
	OverflowingPlus
	OverflowingMinus
	OverflowingTimes
	Percent
	DoubleEqual
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Or
	And
	PlusEqual
	MinusEqual
	TimesEqual
	DivideEqual
)

func (op BinOp) String() string {
	switch op {
	case Dot:
		return "."
	case Assign:
		return "="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "**"
	case OverflowingPlus:
		return "&+"
	case OverflowingMinus:
		return "&-"
	case OverflowingTimes:
		return "&*"
	case Percent:
		return "%"
	case DoubleEqual:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	case Or:
		return "||"
	case And:
		return "&&"
	case PlusEqual:
		return "+="
	case MinusEqual:
		return "-="
	case TimesEqual:
		return "*="
	case DivideEqual:
		return "/="
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// Compound returns the arithmetic operator behind a compound assignment
func (op BinOp) Compound() (BinOp, bool) {
	switch op {
	case PlusEqual:
		return Plus, true
	case MinusEqual:
		return Minus, true
	case TimesEqual:
		return Times, true
	case DivideEqual:
		return Divide, true
	}
	return op, false
}

// IsComparison reports whether the operator yields a Bool from two operands
func (op BinOp) IsComparison() bool {
	switch op {
	case DoubleEqual, NotEqual, LessThan, GreaterThan, LessThanOrEqual, GreaterThanOrEqual:
		return true
	}
	return false
}

// IsAssignment reports whether the operator writes its left operand
func (op BinOp) IsAssignment() bool {
	switch op {
	case Assign, PlusEqual, MinusEqual, TimesEqual, DivideEqual:
		return true
	}
	return false
}
