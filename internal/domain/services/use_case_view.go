package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
)

// UseCaseEntry is the decoded view of one use-case entry of a metamodel.
type UseCaseEntry struct {
	// Key is the entry key as stored in useCaseProfileMap.
	Key string
	// UseCase is Key without the metamodel code prefix.
	UseCase string
	// Masks are the profile-tier masks of the entry.
	Masks    []string
	Profiles []string
	// UnassignedSlots are set bits with no profile at that slot.
	UnassignedSlots []int
}

// UseCaseViewer decodes the use-case map of a metamodel against its profile list.
type UseCaseViewer struct {
	decoder *MatrixDecoder
}

// NewUseCaseViewer creates a new use case viewer.
func NewUseCaseViewer() *UseCaseViewer {
	return &UseCaseViewer{decoder: NewMatrixDecoder()}
}

// Entries returns the decoded entries of doc sorted by key.
func (v *UseCaseViewer) Entries(doc entities.Metamodel) ([]UseCaseEntry, error) {
	index, err := NewProfileIndex(doc.Profiles())
	if err != nil {
		return nil, err
	}

	masks := make(map[string][]string, doc.UseCaseCount())
	switch m := doc.(type) {
	case *entities.MetamodelV1:
		for key, mask := range m.UseCaseProfileMap {
			masks[key] = []string{mask}
		}
	case *entities.MetamodelV2:
		for key, entry := range m.UseCaseProfileMap {
			masks[key] = CopyStringSlice(entry.RoleGroupProfileMaskList)
		}
	default:
		return nil, fmt.Errorf("unsupported metamodel type %T", doc)
	}

	keys := make([]string, 0, len(masks))
	for key := range masks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	prefix := doc.Head().Code + "/"
	entries := make([]UseCaseEntry, 0, len(keys))
	for _, key := range keys {
		entry := UseCaseEntry{
			Key:     key,
			UseCase: strings.TrimPrefix(key, prefix),
			Masks:   masks[key],
		}

		seen := make(map[string]struct{})
		for _, rendered := range entry.Masks {
			decoded, err := v.decoder.Decode(rendered, index)
			if err != nil {
				return nil, fmt.Errorf("use case %q: %w", key, err)
			}
			for _, code := range decoded.Profiles {
				if _, ok := seen[code]; ok {
					continue
				}
				seen[code] = struct{}{}
				entry.Profiles = append(entry.Profiles, code)
			}
			entry.UnassignedSlots = append(entry.UnassignedSlots, decoded.UnassignedSlots...)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
