// Package services contains domain services for the metamodel generator.
// These are stateless services that encapsulate the merge rules.
package services

import (
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// ProfileIndex maps a profile code to its slot, which is its position in the
// authoritative profile list of the run.
type ProfileIndex struct {
	slots map[string]int
	codes []string
}

// NewProfileIndex builds the index for an authoritative profile list.
// The list must fit into a mask and must not repeat a code.
func NewProfileIndex(records []entities.ProfileRecord) (ProfileIndex, error) {
	if len(records) > values.MaskCapacity {
		return ProfileIndex{}, &entities.ProfileCapacityError{Count: len(records), Capacity: values.MaskCapacity}
	}

	idx := ProfileIndex{
		slots: make(map[string]int, len(records)),
		codes: make([]string, len(records)),
	}
	for i, r := range records {
		if prev, ok := idx.slots[r.Code]; ok {
			return ProfileIndex{}, &entities.DuplicateProfileError{Code: r.Code, Positions: [2]int{prev, i}}
		}
		idx.slots[r.Code] = i
		idx.codes[i] = r.Code
	}
	return idx, nil
}

// Slot returns the slot of code.
func (x ProfileIndex) Slot(code string) (int, bool) {
	slot, ok := x.slots[code]
	return slot, ok
}

// Code returns the profile code at slot.
func (x ProfileIndex) Code(slot int) (string, bool) {
	if slot < 0 || slot >= len(x.codes) {
		return "", false
	}
	return x.codes[slot], true
}

// Len returns the number of indexed profiles.
func (x ProfileIndex) Len() int {
	return len(x.codes)
}

// Codes returns the indexed codes in slot order.
func (x ProfileIndex) Codes() []string {
	return CopyStringSlice(x.codes)
}
