package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BareKeySchemaVersion is the only schema version whose use-case keys are not
// prefixed with the metamodel code.
const BareKeySchemaVersion = "0.1.0"

// SchemaVersion is the metamodel's schemaVersion field, kept as text.
// Numeric JSON values are coerced to their literal text.
type SchemaVersion struct {
	value string
}

// NewSchemaVersion creates a SchemaVersion from text.
func NewSchemaVersion(s string) SchemaVersion {
	return SchemaVersion{value: s}
}

// String returns the string representation
func (v SchemaVersion) String() string {
	return v.value
}

// IsEmpty returns true if this is the zero value
func (v SchemaVersion) IsEmpty() bool {
	return v.value == ""
}

// Shape selects the document layout for this version. Versions starting with
// "0" or "1" are V1; everything else, including malformed text, is V2.
func (v SchemaVersion) Shape() Shape {
	if strings.HasPrefix(v.value, "0") || strings.HasPrefix(v.value, "1") {
		return ShapeV1
	}
	return ShapeV2
}

// UsesBareUseCaseKeys reports whether use-case keys omit the code prefix.
func (v SchemaVersion) UsesBareUseCaseKeys() bool {
	return v.value == BareKeySchemaVersion
}

// Semver parses the version as semantic version.
func (v SchemaVersion) Semver() (*semver.Version, error) {
	parsed, err := semver.NewVersion(v.value)
	if err != nil {
		return nil, fmt.Errorf("schema version %q is not semver: %w", v.value, err)
	}
	return parsed, nil
}

// MarshalJSON implements json.Marshaler
func (v SchemaVersion) MarshalJSON() ([]byte, error) {
	return MarshalUnescaped(v.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *SchemaVersion) UnmarshalJSON(data []byte) error {
	text, err := textFromJSON(data)
	if err != nil {
		return fmt.Errorf("invalid schemaVersion: %w", err)
	}
	*v = SchemaVersion{value: text}
	return nil
}

// textFromJSON coerces a JSON scalar to text: strings are unquoted, numbers and
// booleans keep their literal, null becomes "".
func textFromJSON(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", string(data))
	default:
		return string(data), nil
	}
}
