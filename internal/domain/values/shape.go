package values

// Shape identifies one of the two metamodel document layouts.
type Shape int

const (
	// ShapeV1 is the single-tier layout (profileList).
	ShapeV1 Shape = iota + 1
	// ShapeV2 is the two-tier layout (roleGroupProfileList + roleProfileList).
	ShapeV2
)

// String returns the string representation
func (s Shape) String() string {
	switch s {
	case ShapeV1:
		return "v1"
	case ShapeV2:
		return "v2"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
