package sim

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// maxMemory bounds the byte size a transaction may touch
const maxMemory = 1 << 24

// Memory is the transient byte-addressed memory of one transaction
type Memory struct {
	data []byte
}

func (m *Memory) grow(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end < offset || end > maxMemory {
		return errors.Errorf("memory access at %d+%d out of range", offset, size)
	}
	if end > uint64(len(m.data)) {
		// word aligned like the EVM
		words := (end + 31) / 32
		grown := make([]byte, words*32)
		copy(grown, m.data)
		m.data = grown
	}
	return nil
}

// Slice returns a copy of size bytes at offset
func (m *Memory) Slice(offset, size uint64) ([]byte, error) {
	if err := m.grow(offset, size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.data[offset:offset+size])
	return out, nil
}

// Set copies data to offset
func (m *Memory) Set(offset uint64, data []byte) error {
	if err := m.grow(offset, uint64(len(data))); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *Memory) Load(offset uint64) (uint256.Int, error) {
	b, err := m.Slice(offset, 32)
	if err != nil {
		return uint256.Int{}, err
	}
	var w uint256.Int
	w.SetBytes32(b)
	return w, nil
}

func (m *Memory) Store(offset uint64, v *uint256.Int) error {
	b := v.Bytes32()
	return m.Set(offset, b[:])
}

func (m *Memory) Store8(offset uint64, v *uint256.Int) error {
	return m.Set(offset, []byte{byte(v.Uint64())})
}

// Size is the number of bytes touched so far
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}
