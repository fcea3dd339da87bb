package sim

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"quartz/internal/runtime"
)

type builtin struct {
	arity   int
	returns bool
	fn      func(m *machine, args []uint256.Int) (uint256.Int, error)
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"add":    binop(func(z, a, b *uint256.Int) { z.Add(a, b) }),
		"sub":    binop(func(z, a, b *uint256.Int) { z.Sub(a, b) }),
		"mul":    binop(func(z, a, b *uint256.Int) { z.Mul(a, b) }),
		"div":    binop(func(z, a, b *uint256.Int) { z.Div(a, b) }),
		"sdiv":   binop(func(z, a, b *uint256.Int) { z.SDiv(a, b) }),
		"mod":    binop(func(z, a, b *uint256.Int) { z.Mod(a, b) }),
		"smod":   binop(func(z, a, b *uint256.Int) { z.SMod(a, b) }),
		"exp":    binop(func(z, a, b *uint256.Int) { z.Exp(a, b) }),
		"and":    binop(func(z, a, b *uint256.Int) { z.And(a, b) }),
		"or":     binop(func(z, a, b *uint256.Int) { z.Or(a, b) }),
		"xor":    binop(func(z, a, b *uint256.Int) { z.Xor(a, b) }),
		"lt":     compare(func(a, b *uint256.Int) bool { return a.Lt(b) }),
		"gt":     compare(func(a, b *uint256.Int) bool { return a.Gt(b) }),
		"slt":    compare(func(a, b *uint256.Int) bool { return a.Slt(b) }),
		"sgt":    compare(func(a, b *uint256.Int) bool { return a.Sgt(b) }),
		"eq":     compare(func(a, b *uint256.Int) bool { return a.Eq(b) }),
		"shl":    binop(shl),
		"shr":    binop(shr),
		"byte":   binop(func(z, n, x *uint256.Int) { z.Set(x).Byte(n) }),
		"iszero": unary(func(z, a *uint256.Int) { setBool(z, a.IsZero()) }),
		"not":    unary(func(z, a *uint256.Int) { z.Not(a) }),
		"addmod": {arity: 3, returns: true, fn: func(_ *machine, a []uint256.Int) (uint256.Int, error) {
			var z uint256.Int
			z.AddMod(&a[0], &a[1], &a[2])
			return z, nil
		}},
		"mulmod": {arity: 3, returns: true, fn: func(_ *machine, a []uint256.Int) (uint256.Int, error) {
			var z uint256.Int
			z.MulMod(&a[0], &a[1], &a[2])
			return z, nil
		}},

		"keccak256": {arity: 2, returns: true, fn: keccak},

		"sload": {arity: 1, returns: true, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			return m.vm.storage.Load(a[0]), nil
		}},
		"sstore": {arity: 2, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			m.vm.storage.Store(a[0], a[1])
			return uint256.Int{}, nil
		}},
		"mload": {arity: 1, returns: true, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			off, err := memoryOffset(&a[0])
			if err != nil {
				return uint256.Int{}, err
			}
			return m.memory.Load(off)
		}},
		"mstore": {arity: 2, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			off, err := memoryOffset(&a[0])
			if err != nil {
				return uint256.Int{}, err
			}
			return uint256.Int{}, m.memory.Store(off, &a[1])
		}},
		"mstore8": {arity: 2, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			off, err := memoryOffset(&a[0])
			if err != nil {
				return uint256.Int{}, err
			}
			return uint256.Int{}, m.memory.Store8(off, &a[1])
		}},
		"msize": nullary(func(m *machine) uint256.Int { return word(m.memory.Size()) }),

		"calldataload": {arity: 1, returns: true, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			var z uint256.Int
			z.SetBytes32(padded(m.tx.Calldata, &a[0], 32))
			return z, nil
		}},
		"calldatasize": nullary(func(m *machine) uint256.Int { return word(uint64(len(m.tx.Calldata))) }),
		"calldatacopy": {arity: 3, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			return uint256.Int{}, m.copyInto(&a[0], m.tx.Calldata, &a[1], &a[2])
		}},
		"codesize": nullary(func(m *machine) uint256.Int { return word(uint64(len(m.code))) }),
		"codecopy": {arity: 3, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			return uint256.Int{}, m.copyInto(&a[0], m.code, &a[1], &a[2])
		}},

		"caller":    nullary(func(m *machine) uint256.Int { return m.tx.Caller }),
		"origin":    nullary(func(m *machine) uint256.Int { return m.tx.Caller }),
		"callvalue": nullary(func(m *machine) uint256.Int { return m.tx.Value }),
		"address":   nullary(func(m *machine) uint256.Int { return m.vm.address }),
		"gas":       nullary(func(m *machine) uint256.Int { return word(m.vm.cfg.Gas) }),
		"call":      {arity: 7, returns: true, fn: externalCall},

		"pop": {arity: 1, fn: func(*machine, []uint256.Int) (uint256.Int, error) {
			return uint256.Int{}, nil
		}},
		"return": {arity: 2, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			return m.halt(false, &a[0], &a[1])
		}},
		"revert": {arity: 2, fn: func(m *machine, a []uint256.Int) (uint256.Int, error) {
			return m.halt(true, &a[0], &a[1])
		}},
		"stop": {arity: 0, fn: func(*machine, []uint256.Int) (uint256.Int, error) {
			return uint256.Int{}, &haltError{}
		}},
		"invalid": {arity: 0, fn: func(*machine, []uint256.Int) (uint256.Int, error) {
			return uint256.Int{}, &haltError{reverted: true, guard: runtime.GuardFatal}
		}},
	}
}

func binop(op func(z, a, b *uint256.Int)) builtin {
	return builtin{arity: 2, returns: true, fn: func(_ *machine, a []uint256.Int) (uint256.Int, error) {
		var z uint256.Int
		op(&z, &a[0], &a[1])
		return z, nil
	}}
}

func unary(op func(z, a *uint256.Int)) builtin {
	return builtin{arity: 1, returns: true, fn: func(_ *machine, a []uint256.Int) (uint256.Int, error) {
		var z uint256.Int
		op(&z, &a[0])
		return z, nil
	}}
}

func compare(op func(a, b *uint256.Int) bool) builtin {
	return binop(func(z, a, b *uint256.Int) { setBool(z, op(a, b)) })
}

func nullary(get func(m *machine) uint256.Int) builtin {
	return builtin{returns: true, fn: func(m *machine, _ []uint256.Int) (uint256.Int, error) {
		return get(m), nil
	}}
}

func setBool(z *uint256.Int, b bool) {
	if b {
		z.SetOne()
	} else {
		z.Clear()
	}
}

func word(v uint64) uint256.Int {
	var z uint256.Int
	z.SetUint64(v)
	return z
}

// shl and shr take the shift amount first
func shl(z, shift, value *uint256.Int) {
	if !shift.LtUint64(256) {
		z.Clear()
		return
	}
	z.Lsh(value, uint(shift.Uint64()))
}

func shr(z, shift, value *uint256.Int) {
	if !shift.LtUint64(256) {
		z.Clear()
		return
	}
	z.Rsh(value, uint(shift.Uint64()))
}

func memoryOffset(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() || v.Uint64() > maxMemory {
		return 0, errors.Errorf("memory offset %s out of range", v.Hex())
	}
	return v.Uint64(), nil
}

// padded reads size bytes of src at offset; bytes past the end read as zero
func padded(src []byte, offset *uint256.Int, size uint64) []byte {
	out := make([]byte, size)
	if !offset.IsUint64() || offset.Uint64() >= uint64(len(src)) {
		return out
	}
	copy(out, src[offset.Uint64():])
	return out
}

func (m *machine) copyInto(dst *uint256.Int, src []byte, offset, size *uint256.Int) error {
	if size.IsZero() {
		return nil
	}
	to, err := memoryOffset(dst)
	if err != nil {
		return err
	}
	n, err := memoryOffset(size)
	if err != nil {
		return err
	}
	return m.memory.Set(to, padded(src, offset, n))
}

func (m *machine) slice(offset, size *uint256.Int) ([]byte, error) {
	if size.IsZero() {
		return nil, nil
	}
	off, err := memoryOffset(offset)
	if err != nil {
		return nil, err
	}
	n, err := memoryOffset(size)
	if err != nil {
		return nil, err
	}
	return m.memory.Slice(off, n)
}

func (m *machine) halt(reverted bool, offset, size *uint256.Int) (uint256.Int, error) {
	data, err := m.slice(offset, size)
	if err != nil {
		return uint256.Int{}, err
	}
	h := &haltError{reverted: reverted, data: data}
	if reverted {
		h.guard = runtime.GuardOf(m.frames)
		if h.guard == runtime.GuardNone {
			h.guard = m.region
		}
	}
	return uint256.Int{}, h
}

func keccak(m *machine, a []uint256.Int) (uint256.Int, error) {
	data, err := m.slice(&a[0], &a[1])
	if err != nil {
		return uint256.Int{}, err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var z uint256.Int
	z.SetBytes32(h.Sum(nil))
	return z, nil
}

// externalCall hands call(gas, to, value, in, insize, out, outsize) to the
// VM's handler and copies its output into memory
func externalCall(m *machine, a []uint256.Int) (uint256.Int, error) {
	input, err := m.slice(&a[3], &a[4])
	if err != nil {
		return uint256.Int{}, err
	}
	output, ok := []byte(nil), true
	if m.vm.External != nil {
		output, ok = m.vm.External(a[1], a[2], input)
	}
	log.Debugf("external call to %s with %d bytes succeeded=%t", a[1].Hex(), len(input), ok)
	if !ok {
		return uint256.Int{}, nil
	}
	if !a[6].IsZero() {
		out, err := memoryOffset(&a[5])
		if err != nil {
			return uint256.Int{}, err
		}
		n, err := memoryOffset(&a[6])
		if err != nil {
			return uint256.Int{}, err
		}
		if uint64(len(output)) < n {
			n = uint64(len(output))
		}
		if err := m.memory.Set(out, output[:n]); err != nil {
			return uint256.Int{}, err
		}
	}
	return word(1), nil
}
