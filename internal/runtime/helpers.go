package runtime

import (
	"fmt"
	"strings"

	"quartz/internal/yul"
)

// Prefix is prepended to every helper name in emitted code
const Prefix = "Quartz$"

// Helper identifies one routine of the runtime library
type Helper int

const (
	Selector Helper = iota
	DecodeAsAddress
	DecodeAsUInt
	Return32Bytes
	CheckNoValue
	IsValidCallerProtection
	IsCallerProtectionInArray
	IsCallerProtectionInDictionary
	AllocateMemory
	ComputeOffset
	Load
	Store
	StorageOffsetForKey
	StorageDictionaryKeysArrayOffset
	StorageDictionaryOffsetForKey
	StorageArrayOffset
	StorageArrayReadOffset
	StorageFixedSizeArrayOffset
	IsInvalidSubscriptExpression
	RevertIfGreater
	Add
	Sub
	Mul
	Div
	Power
	Send
	FatalError

	helperCount
)

var helperNames = [helperCount]string{
	Selector:                         "Selector",
	DecodeAsAddress:                  "DecodeAsAddress",
	DecodeAsUInt:                     "DecodeAsUInt",
	Return32Bytes:                    "Return32Bytes",
	CheckNoValue:                     "CheckNoValue",
	IsValidCallerProtection:          "IsValidCallerProtection",
	IsCallerProtectionInArray:        "IsCallerProtectionInArray",
	IsCallerProtectionInDictionary:   "IsCallerProtectionInDictionary",
	AllocateMemory:                   "AllocateMemory",
	ComputeOffset:                    "ComputeOffset",
	Load:                             "Load",
	Store:                            "Store",
	StorageOffsetForKey:              "StorageOffsetForKey",
	StorageDictionaryKeysArrayOffset: "StorageDictionaryKeysArrayOffset",
	StorageDictionaryOffsetForKey:    "StorageDictionaryOffsetForKey",
	StorageArrayOffset:               "StorageArrayOffset",
	StorageArrayReadOffset:           "StorageArrayReadOffset",
	StorageFixedSizeArrayOffset:      "StorageFixedSizeArrayOffset",
	IsInvalidSubscriptExpression:     "IsInvalidSubscriptExpression",
	RevertIfGreater:                  "RevertIfGreater",
	Add:                              "Add",
	Sub:                              "Sub",
	Mul:                              "Mul",
	Div:                              "Div",
	Power:                            "Power",
	Send:                             "Send",
	FatalError:                       "FatalError",
}

var helperArity = [helperCount]int{
	Selector:                         0,
	DecodeAsAddress:                  1,
	DecodeAsUInt:                     1,
	Return32Bytes:                    1,
	CheckNoValue:                     1,
	IsValidCallerProtection:          1,
	IsCallerProtectionInArray:        1,
	IsCallerProtectionInDictionary:   1,
	AllocateMemory:                   1,
	ComputeOffset:                    3,
	Load:                             2,
	Store:                            3,
	StorageOffsetForKey:              2,
	StorageDictionaryKeysArrayOffset: 1,
	StorageDictionaryOffsetForKey:    2,
	StorageArrayOffset:               2,
	StorageArrayReadOffset:           2,
	StorageFixedSizeArrayOffset:      3,
	IsInvalidSubscriptExpression:     2,
	RevertIfGreater:                  2,
	Add:                              2,
	Sub:                              2,
	Mul:                              2,
	Div:                              2,
	Power:                            2,
	Send:                             2,
	FatalError:                       0,
}

func (h Helper) valid() bool {
	return h >= 0 && h < helperCount
}

func (h Helper) String() string {
	if !h.valid() {
		return fmt.Sprintf("Helper(%d)", int(h))
	}
	return helperNames[h]
}

// Name is the emitted function name, e.g. Quartz$Add
func (h Helper) Name() string {
	return Prefix + h.String()
}

// Arity is the number of parameters the helper takes
func (h Helper) Arity() int {
	if !h.valid() {
		return 0
	}
	return helperArity[h]
}

// Source returns the helper's Yul definition
func (h Helper) Source() string {
	if !h.valid() {
		return ""
	}
	return helperSources[h]
}

// Call builds a call to the helper
func (h Helper) Call(args ...yul.Expression) *yul.FunctionCall {
	return yul.Call(h.Name(), args...)
}

// All returns every helper in emission order
func All() []Helper {
	out := make([]Helper, helperCount)
	for i := range out {
		out[i] = Helper(i)
	}
	return out
}

// Lookup resolves an emitted function name back to its helper
func Lookup(name string) (Helper, bool) {
	if !strings.HasPrefix(name, Prefix) {
		return 0, false
	}
	short := strings.TrimPrefix(name, Prefix)
	for i, n := range helperNames {
		if n == short {
			return Helper(i), true
		}
	}
	return 0, false
}

// Library returns the whole runtime library as inline statements, one per helper
func Library() []yul.Statement {
	out := make([]yul.Statement, 0, helperCount)
	for _, h := range All() {
		out = append(out, &yul.InlineStatement{Code: h.Source()})
	}
	return out
}

// LibrarySource renders the runtime library as text
func LibrarySource() string {
	parts := make([]string, 0, helperCount)
	for _, h := range All() {
		parts = append(parts, h.Source())
	}
	return strings.Join(parts, "")
}
