package entities

import (
	"fmt"
	"strings"
)

// CanonicalMandatoryProfiles are the roles every profile definition is expected
// to carry, possibly under different codes.
var CanonicalMandatoryProfiles = []string{"Authorities", "Executives", "Auditors"}

// MissingMandatoryProfileError indicates a mandatory profile code is absent
// from the incoming profile list.
type MissingMandatoryProfileError struct {
	Missing []string
}

func (e *MissingMandatoryProfileError) Error() string {
	return fmt.Sprintf(
		"missing mandatory profile %s: you must have at least these %d profiles in your profile definition: %s; "+
			"if you have these profiles under different names, use --mandatory-profiles to map them",
		strings.Join(e.Missing, ", "),
		len(CanonicalMandatoryProfiles),
		strings.Join(CanonicalMandatoryProfiles, ", "),
	)
}

// UnknownProfileError indicates a use case references a profile code that is
// not part of the authoritative profile list.
type UnknownProfileError struct {
	Profile string
	UseCase string
}

func (e *UnknownProfileError) Error() string {
	if e.UseCase == "" {
		return fmt.Sprintf("unknown profile %s", e.Profile)
	}
	return fmt.Sprintf("unknown profile %s in use case %s", e.Profile, e.UseCase)
}

// ProfileCapacityError indicates the authoritative profile list does not fit
// into a mask.
type ProfileCapacityError struct {
	Count    int
	Capacity int
}

func (e *ProfileCapacityError) Error() string {
	return fmt.Sprintf("too many profiles: %d profiles exceed mask capacity of %d", e.Count, e.Capacity)
}

// DuplicateProfileError indicates the same profile code appears twice in a
// persisted profile list.
type DuplicateProfileError struct {
	Code      string
	Positions [2]int
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("duplicate profile %s at positions %d and %d", e.Code, e.Positions[0], e.Positions[1])
}
