package ast

import "fmt"

// Type is a resolved type of the contract language
type Type interface {
	isType()
	String() string
}

// IntType is the language's 256-bit unsigned integer
type IntType struct{}

type BoolType struct{}

type AddressType struct{}

// StringType is a short string held in one 32-byte word
type StringType struct{}

// SolidityType is a sized machine integer such as uint8 or int64
type SolidityType struct {
	Bits   int
	Signed bool
}

// ArrayType is a dynamic storage array
// Example: "[Address]"
type ArrayType struct {
	Elem Type
}

// FixedArrayType occupies Size consecutive slots
// Example: "Int[4]"
type FixedArrayType struct {
	Elem Type
	Size uint64
}

// DictionaryType is a hash-addressed storage map
// Example: "[Address: Int]"
type DictionaryType struct {
	Key   Type
	Value Type
}

// UserDefinedType names a struct, contract, trait or enum
type UserDefinedType struct {
	Name string
}

// InoutType is a by-reference parameter type
type InoutType struct {
	Key Type
}

type SelfType struct{}

type RangeType struct {
	Elem Type
}

// ErrorType marks an expression the checker could not type
type ErrorType struct{}

func (IntType) isType()         {}
func (BoolType) isType()        {}
func (AddressType) isType()     {}
func (StringType) isType()      {}
func (SolidityType) isType()    {}
func (ArrayType) isType()       {}
func (FixedArrayType) isType()  {}
func (DictionaryType) isType()  {}
func (UserDefinedType) isType() {}
func (InoutType) isType()       {}
func (SelfType) isType()        {}
func (RangeType) isType()       {}
func (ErrorType) isType()       {}

func (IntType) String() string     { return "Int" }
func (BoolType) String() string    { return "Bool" }
func (AddressType) String() string { return "Address" }
func (StringType) String() string  { return "String" }
func (SelfType) String() string    { return "Self" }
func (ErrorType) String() string   { return "<error>" }

func (t SolidityType) String() string {
	if t.Signed {
		return fmt.Sprintf("int%d", t.Bits)
	}
	return fmt.Sprintf("uint%d", t.Bits)
}

func (t ArrayType) String() string       { return fmt.Sprintf("[%s]", t.Elem) }
func (t FixedArrayType) String() string  { return fmt.Sprintf("%s[%d]", t.Elem, t.Size) }
func (t DictionaryType) String() string  { return fmt.Sprintf("[%s: %s]", t.Key, t.Value) }
func (t UserDefinedType) String() string { return t.Name }
func (t InoutType) String() string       { return "inout " + t.Key.String() }
func (t RangeType) String() string       { return fmt.Sprintf("Range<%s>", t.Elem) }

// Underlying strips inout wrappers
func Underlying(t Type) Type {
	for {
		inout, ok := t.(InoutType)
		if !ok {
			return t
		}
		t = inout.Key
	}
}

// IsBasic reports whether t fits in a single word and is passed by value
func IsBasic(t Type) bool {
	switch Underlying(t).(type) {
	case IntType, BoolType, AddressType, StringType, SolidityType:
		return true
	}
	return false
}

// IsDynamic reports whether values of t are passed by address
func IsDynamic(t Type) bool {
	return !IsBasic(t)
}

// Width returns the bit width and signedness of a scalar type
func Width(t Type) (bits int, signed bool, ok bool) {
	switch t := Underlying(t).(type) {
	case IntType:
		return 256, false, true
	case BoolType:
		return 8, false, true
	case AddressType:
		return 160, false, true
	case SolidityType:
		return t.Bits, t.Signed, true
	}
	return 0, false, false
}

// MangledName renders a type as an identifier fragment for function mangling
func MangledName(t Type) string {
	switch t := t.(type) {
	case InoutType:
		return "$inout" + MangledName(t.Key)
	case ArrayType:
		return "Array$" + MangledName(t.Elem)
	case FixedArrayType:
		return fmt.Sprintf("Array%d$%s", t.Size, MangledName(t.Elem))
	case DictionaryType:
		return "Dict$" + MangledName(t.Key) + "$" + MangledName(t.Value)
	case RangeType:
		return "Range$" + MangledName(t.Elem)
	case ErrorType:
		return "Quartz$ErrorType"
	}
	return t.String()
}

// SameType compares two types structurally
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}
