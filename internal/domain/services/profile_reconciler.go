package services

import (
	"encoding/json"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// ignoredProfiles never take part in matrices, counts or consistency checks.
var ignoredProfiles = map[string]struct{}{
	"AwidOwner":        {},
	"Public":           {},
	"AwidLicenseOwner": {},
}

// IsIgnoredProfile reports whether code belongs to the fixed ignore-set.
func IsIgnoredProfile(code string) bool {
	_, ok := ignoredProfiles[code]
	return ok
}

// ProfileMismatch describes incoming profiles that differ from the persisted
// ones. It is a soft failure: the run stops without output.
type ProfileMismatch struct {
	Incoming  []string
	Persisted []string
}

// ReconcileInput carries the inputs of one reconciliation.
type ReconcileInput struct {
	// Persisted is the profile list of the existing metamodel; nil with
	// HasExisting false on first run.
	Persisted []entities.ProfileRecord
	// PersistedMatrix is the existing defaultPermissionMatrix.
	PersistedMatrix json.RawMessage
	Incoming        []string
	Mandatory       []string
	HasExisting     bool
}

// Reconciliation is the authoritative profile list of a run and its index.
type Reconciliation struct {
	Mismatch                *ProfileMismatch
	DefaultPermissionMatrix json.RawMessage
	Profiles                []entities.ProfileRecord
	Index                   ProfileIndex
}

// ProfileReconciler establishes the order-stable profile list of a run.
//
// Rules:
//   - Ignored profiles are filtered from the incoming list first.
//   - With an existing metamodel, the filtered list must equal the persisted
//     codes as a set; otherwise the result carries a Mismatch and nothing else.
//   - Every mandatory code must be in the filtered list.
//   - On first run the list is mandatory codes (caller order) followed by the
//     rest in source order; with an existing metamodel the persisted list and
//     permission matrix are reused as-is.
type ProfileReconciler struct{}

// NewProfileReconciler creates a new profile reconciler.
func NewProfileReconciler() *ProfileReconciler {
	return &ProfileReconciler{}
}

// Reconcile runs the reconciliation steps in order.
func (r *ProfileReconciler) Reconcile(in ReconcileInput) (*Reconciliation, error) {
	incoming := FilterIgnoredProfiles(in.Incoming)

	if in.HasExisting {
		persisted := entities.ProfileCodes(in.Persisted)
		if !SameProfileSet(incoming, persisted) {
			return &Reconciliation{
				Mismatch: &ProfileMismatch{Incoming: incoming, Persisted: persisted},
			}, nil
		}
	}

	if missing := missingProfiles(in.Mandatory, incoming); len(missing) > 0 {
		return nil, &entities.MissingMandatoryProfileError{Missing: missing}
	}

	var (
		profiles []entities.ProfileRecord
		matrix   json.RawMessage
	)
	if in.HasExisting {
		profiles = in.Persisted
		matrix = copyRaw(in.PersistedMatrix)
	} else {
		profiles = orderProfiles(in.Mandatory, incoming)
	}

	index, err := NewProfileIndex(profiles)
	if err != nil {
		return nil, err
	}

	return &Reconciliation{
		Profiles:                profiles,
		DefaultPermissionMatrix: matrix,
		Index:                   index,
	}, nil
}

// FilterIgnoredProfiles removes ignored codes, keeping order.
func FilterIgnoredProfiles(codes []string) []string {
	filtered := make([]string, 0, len(codes))
	for _, code := range codes {
		if !IsIgnoredProfile(code) {
			filtered = append(filtered, code)
		}
	}
	return filtered
}

// SameProfileSet reports whether a and b contain the same codes, ignoring
// order and repetition.
func SameProfileSet(a, b []string) bool {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) != len(setB) {
		return false
	}
	for code := range setA {
		if _, ok := setB[code]; !ok {
			return false
		}
	}
	return true
}

func toSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// missingProfiles returns the mandatory codes absent from present, in order.
func missingProfiles(mandatory, present []string) []string {
	have := toSet(present)
	var missing []string
	for _, code := range mandatory {
		if _, ok := have[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

// orderProfiles builds the first-run profile list. A code is placed once.
func orderProfiles(mandatory, incoming []string) []entities.ProfileRecord {
	placed := make(map[string]struct{}, len(incoming))
	records := make([]entities.ProfileRecord, 0, len(incoming))
	for _, group := range [][]string{mandatory, incoming} {
		for _, code := range group {
			if _, ok := placed[code]; ok {
				continue
			}
			placed[code] = struct{}{}
			records = append(records, entities.NewProfileRecord(code))
		}
	}
	return records
}
