// Package entities contains domain entities for the metamodel generator.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// WildcardDomain is the domain key holding the profile definition.
const WildcardDomain = "*"

// ProfileDefinition maps a domain key to the profiles and use cases defined
// for it. Only the wildcard domain is consumed.
type ProfileDefinition map[string]DomainProfiles

// DomainProfiles lists the profiles of a domain and the use cases they may invoke.
type DomainProfiles struct {
	UseCaseMap  UseCaseMap `json:"useCaseMap"`
	ProfileList []string   `json:"profileList"`
}

// UseCaseMap maps a use-case identifier to its authorized profile codes.
type UseCaseMap map[string]UseCaseProfiles

// UseCaseProfiles is the list of profile codes authorized for one use case.
// It decodes from either a plain list or an object with a profileList member.
type UseCaseProfiles []string

// Wildcard returns the wildcard domain entry.
func (d ProfileDefinition) Wildcard() (DomainProfiles, error) {
	domain, ok := d[WildcardDomain]
	if !ok {
		return DomainProfiles{}, fmt.Errorf("profile definition has no %q domain", WildcardDomain)
	}
	return domain, nil
}

// UseCaseIDs returns the use-case identifiers in sorted order.
func (m UseCaseMap) UseCaseIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UnmarshalJSON implements json.Unmarshaler
func (u *UseCaseProfiles) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty use case entry")
	}

	switch data[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("invalid use case profile list: %w", err)
		}
		*u = list
		return nil
	case '{':
		var wrapper struct {
			ProfileList *[]string `json:"profileList"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return fmt.Errorf("invalid use case entry: %w", err)
		}
		if wrapper.ProfileList == nil {
			return fmt.Errorf("use case entry object has no profileList")
		}
		*u = *wrapper.ProfileList
		return nil
	default:
		return fmt.Errorf("use case entry must be a list or an object with profileList, got %s", string(data))
	}
}
