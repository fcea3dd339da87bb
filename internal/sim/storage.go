package sim

import (
	"sort"

	"github.com/holiman/uint256"
)

// Storage is the persistent word store of one contract. Every write is
// journaled so a reverted transaction can be undone.
type Storage struct {
	slots   map[uint256.Int]uint256.Int
	journal []change
}

type change struct {
	slot    uint256.Int
	prev    uint256.Int
	existed bool
}

// Slot is a nonzero storage entry
type Slot struct {
	Key   uint256.Int
	Value uint256.Int
}

func NewStorage() *Storage {
	return &Storage{slots: make(map[uint256.Int]uint256.Int)}
}

// Load reads a slot; unset slots are zero
func (s *Storage) Load(slot uint256.Int) uint256.Int {
	return s.slots[slot]
}

// Store writes a slot. Writing zero deletes it.
func (s *Storage) Store(slot, value uint256.Int) {
	prev, existed := s.slots[slot]
	s.journal = append(s.journal, change{slot: slot, prev: prev, existed: existed})
	if value.IsZero() {
		delete(s.slots, slot)
		return
	}
	s.slots[slot] = value
}

// Snapshot marks the current journal position
func (s *Storage) Snapshot() int {
	return len(s.journal)
}

// RevertTo undoes every write made after snapshot
func (s *Storage) RevertTo(snapshot int) {
	for i := len(s.journal) - 1; i >= snapshot; i-- {
		c := s.journal[i]
		if c.existed {
			s.slots[c.slot] = c.prev
		} else {
			delete(s.slots, c.slot)
		}
	}
	s.journal = s.journal[:snapshot]
}

// Commit forgets the journal
func (s *Storage) Commit() {
	s.journal = s.journal[:0]
}

// Slots lists the nonzero entries ordered by key
func (s *Storage) Slots() []Slot {
	out := make([]Slot, 0, len(s.slots))
	for k, v := range s.slots {
		out = append(out, Slot{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.Lt(&out[j].Key)
	})
	return out
}
