package values

// Text is a scalar JSON field that is always rendered as a string.
type Text string

// String returns the string representation
func (t Text) String() string {
	return string(t)
}

// MarshalJSON implements json.Marshaler
func (t Text) MarshalJSON() ([]byte, error) {
	return MarshalUnescaped(string(t))
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := textFromJSON(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}
