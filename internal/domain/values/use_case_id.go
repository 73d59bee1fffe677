package values

import (
	"fmt"
	"strings"
)

// UseCaseID identifies a use case in a profile definition.
// Identifiers must not be blank; the text is kept as written.
type UseCaseID struct {
	value string
}

// NewUseCaseID creates a new UseCaseID with validation
func NewUseCaseID(id string) (UseCaseID, error) {
	if strings.TrimSpace(id) == "" {
		return UseCaseID{}, fmt.Errorf("use case ID cannot be empty")
	}
	return UseCaseID{value: id}, nil
}

// MustNewUseCaseID creates a UseCaseID or panics (for tests/constants)
func MustNewUseCaseID(id string) UseCaseID {
	uid, err := NewUseCaseID(id)
	if err != nil {
		panic(err)
	}
	return uid
}

// String returns the string representation
func (u UseCaseID) String() string {
	return u.value
}

// IsEmpty returns true if this is the zero value
func (u UseCaseID) IsEmpty() bool {
	return u.value == ""
}

// Equals checks if two UseCaseIDs are equal
func (u UseCaseID) Equals(other UseCaseID) bool {
	return u.value == other.value
}

// Key returns the useCaseProfileMap key for this use case within a metamodel.
// Keys are "<code>/<id>" unless the schema version uses bare keys.
func (u UseCaseID) Key(code string, version SchemaVersion) string {
	if version.UsesBareUseCaseKeys() {
		return u.value
	}
	return code + "/" + u.value
}
