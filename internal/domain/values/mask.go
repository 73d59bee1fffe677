package values

import (
	"fmt"
	"strings"
)

const (
	// MaskCapacity is the number of profile slots a mask can address.
	MaskCapacity = 32

	// MaskGroupSize is the number of slots rendered per hyphen-separated group.
	MaskGroupSize = 8

	// ZeroMask is the rendering of a mask with no slot set.
	ZeroMask = "00000000-00000000-00000000-00000000"
)

// Mask is a set of profile slots. Slot i is bit i; slot 0 renders leftmost.
type Mask uint32

// MaskOf builds a mask with the given slots set.
func MaskOf(slots ...int) (Mask, error) {
	var m Mask
	for _, slot := range slots {
		next, err := m.With(slot)
		if err != nil {
			return 0, err
		}
		m = next
	}
	return m, nil
}

// With returns a copy of the mask with slot set.
func (m Mask) With(slot int) (Mask, error) {
	if slot < 0 || slot >= MaskCapacity {
		return m, fmt.Errorf("mask slot %d out of range [0,%d)", slot, MaskCapacity)
	}
	return m | 1<<uint(slot), nil
}

// Has reports whether slot is set.
func (m Mask) Has(slot int) bool {
	if slot < 0 || slot >= MaskCapacity {
		return false
	}
	return m&(1<<uint(slot)) != 0
}

// Slots returns the set slots in ascending order.
func (m Mask) Slots() []int {
	var slots []int
	for i := 0; i < MaskCapacity; i++ {
		if m.Has(i) {
			slots = append(slots, i)
		}
	}
	return slots
}

// IsZero reports whether no slot is set.
func (m Mask) IsZero() bool {
	return m == 0
}

// String renders the mask as four groups of eight binary digits joined by "-".
func (m Mask) String() string {
	var b strings.Builder
	b.Grow(MaskCapacity + MaskCapacity/MaskGroupSize - 1)
	for i := 0; i < MaskCapacity; i++ {
		if i > 0 && i%MaskGroupSize == 0 {
			b.WriteByte('-')
		}
		if m.Has(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseMask parses the grouped binary rendering produced by String.
func ParseMask(s string) (Mask, error) {
	groups := strings.Split(s, "-")
	if len(groups) != MaskCapacity/MaskGroupSize {
		return 0, fmt.Errorf("invalid mask %q: expected %d groups", s, MaskCapacity/MaskGroupSize)
	}

	var m Mask
	slot := 0
	for _, group := range groups {
		if len(group) != MaskGroupSize {
			return 0, fmt.Errorf("invalid mask %q: group %q is not %d digits", s, group, MaskGroupSize)
		}
		for _, c := range group {
			switch c {
			case '1':
				m |= 1 << uint(slot)
			case '0':
			default:
				return 0, fmt.Errorf("invalid mask %q: unexpected character %q", s, c)
			}
			slot++
		}
	}
	return m, nil
}
