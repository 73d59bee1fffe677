package entities

import (
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// DefaultExplicitType is the single explicit type enabled on generated profiles.
const DefaultExplicitType = "uu-businessterritory-maing01/uuRoleGroupIfc"

// ProfileRecord is one entry of a metamodel profile list.
// A record decoded from a document re-encodes to its original bytes, so
// persisted lists survive a run unchanged.
type ProfileRecord struct {
	raw                        json.RawMessage
	Code                       string   `json:"code"`
	Name                       string   `json:"name"`
	Desc                       string   `json:"desc"`
	EnabledExplicitTypeList    []string `json:"enabledExplicitTypeList"`
	DisableImplicitPermissions bool     `json:"disableImplicitPermissions"`
}

// NewProfileRecord creates the record generated for a profile code on first run.
func NewProfileRecord(code string) ProfileRecord {
	return ProfileRecord{
		Code:                       code,
		Name:                       code,
		Desc:                       code,
		DisableImplicitPermissions: false,
		EnabledExplicitTypeList:    []string{DefaultExplicitType},
	}
}

// MarshalJSON implements json.Marshaler
func (r ProfileRecord) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	type plain ProfileRecord
	return values.MarshalUnescaped(plain(r))
}

// UnmarshalJSON implements json.Unmarshaler
func (r *ProfileRecord) UnmarshalJSON(data []byte) error {
	type plain ProfileRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid profile record: %w", err)
	}
	*r = ProfileRecord(p)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// ProfileCodes returns the codes of the records in order.
func ProfileCodes(records []ProfileRecord) []string {
	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	return codes
}
