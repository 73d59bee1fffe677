package values

import (
	"bytes"
	"encoding/json"
)

// MarshalUnescaped is json.Marshal without HTML escaping, so '&', '<' and
// '>' are written as-is. Marshalers must use it: an outer encoder cannot undo
// escaping a Marshaler already applied.
func MarshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
