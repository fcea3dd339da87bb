package codegen

import (
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// Space is where an address points. The set is closed: storage, memory, or
// a struct parameter whose space is only known at run time.
type Space interface {
	isSpace()
	String() string
}

// StorageSpace addresses persistent word slots
type StorageSpace struct{}

// MemorySpace addresses bytes of transient memory
type MemorySpace struct{}

// DynamicSpace defers the choice to the flag variable passed next to a struct pointer
type DynamicSpace struct {
	Flag string
}

func (StorageSpace) isSpace() {}
func (MemorySpace) isSpace()  {}
func (DynamicSpace) isSpace() {}

func (StorageSpace) String() string   { return "storage" }
func (MemorySpace) String() string    { return "memory" }
func (s DynamicSpace) String() string { return "dynamic(" + s.Flag + ")" }

// Address is a lowered location: a base expression and the space it lives in
type Address struct {
	Base  yul.Expression
	Space Space
}

// StorageAt is the storage address of a fixed slot
func StorageAt(slot uint64) Address {
	return Address{Base: yul.Num(slot), Space: StorageSpace{}}
}

// Offset moves the address forward by off words
func (a Address) Offset(off yul.Expression) Address {
	if isZero(off) {
		return a
	}
	switch s := a.Space.(type) {
	case StorageSpace:
		if b, o, ok := literals(a.Base, off); ok {
			return Address{Base: yul.Num(b + o), Space: s}
		}
		return Address{Base: yul.Call("add", a.Base, off), Space: s}
	case MemorySpace:
		if b, o, ok := literals(a.Base, off); ok {
			return Address{Base: yul.Num(b + o*32), Space: s}
		}
		if o, ok := off.(*yul.NumLiteral); ok {
			return Address{Base: yul.Call("add", a.Base, yul.Num(o.Value*32)), Space: s}
		}
		return Address{Base: yul.Call("add", a.Base, yul.Call("mul", off, yul.Num(32))), Space: s}
	case DynamicSpace:
		return Address{Base: runtime.ComputeOffset.Call(a.Base, off, yul.Ident(s.Flag)), Space: s}
	}
	panic("codegen: unknown address space")
}

// Load reads the word at the address
func (a Address) Load() yul.Expression {
	switch s := a.Space.(type) {
	case StorageSpace:
		return yul.Call("sload", a.Base)
	case MemorySpace:
		return yul.Call("mload", a.Base)
	case DynamicSpace:
		return runtime.Load.Call(a.Base, yul.Ident(s.Flag))
	}
	panic("codegen: unknown address space")
}

// Store writes v to the address
func (a Address) Store(v yul.Expression) yul.Expression {
	switch s := a.Space.(type) {
	case StorageSpace:
		return yul.Call("sstore", a.Base, v)
	case MemorySpace:
		return yul.Call("mstore", a.Base, v)
	case DynamicSpace:
		return runtime.Store.Call(a.Base, v, yul.Ident(s.Flag))
	}
	panic("codegen: unknown address space")
}

// Flag is the $isMem companion value passed along with the base
func (a Address) Flag() yul.Expression {
	switch s := a.Space.(type) {
	case MemorySpace:
		return yul.Num(1)
	case DynamicSpace:
		return yul.Ident(s.Flag)
	}
	return yul.Num(0)
}

func isZero(e yul.Expression) bool {
	n, ok := e.(*yul.NumLiteral)
	return ok && n.Value == 0
}

func literals(a, b yul.Expression) (uint64, uint64, bool) {
	x, ok := a.(*yul.NumLiteral)
	if !ok {
		return 0, 0, false
	}
	y, ok := b.(*yul.NumLiteral)
	if !ok {
		return 0, 0, false
	}
	return x.Value, y.Value, true
}
