package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// Extensions holds top-level document fields this tool does not model.
// They are carried through decode and encode unchanged.
type Extensions map[string]json.RawMessage

// jsonFieldNames returns the JSON names of t's exported fields, descending
// into embedded structs the way encoding/json does.
func jsonFieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			for name := range jsonFieldNames(f.Type) {
				names[name] = struct{}{}
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[name] = struct{}{}
	}
	return names
}

// splitExtensions returns the members of the JSON object data that are not
// named in known.
func splitExtensions(data []byte, known map[string]struct{}) (Extensions, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var ext Extensions
	for name, value := range all {
		if _, ok := known[name]; ok {
			continue
		}
		if ext == nil {
			ext = make(Extensions)
		}
		ext[name] = value
	}
	return ext, nil
}

// appendExtensions adds ext members to the encoded JSON object data, in sorted
// key order. Members already present in data are not duplicated.
func appendExtensions(data []byte, ext Extensions, known map[string]struct{}) ([]byte, error) {
	if len(ext) == 0 {
		return data, nil
	}
	trimmed := bytes.TrimRight(data, " \n\t")
	if len(trimmed) < 2 || trimmed[len(trimmed)-1] != '}' {
		return nil, fmt.Errorf("cannot append extensions to non-object JSON")
	}

	names := make([]string, 0, len(ext))
	for name := range ext {
		if _, ok := known[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.Write(trimmed[:len(trimmed)-1])
	empty := bytes.Equal(bytes.TrimSpace(trimmed[:len(trimmed)-1]), []byte("{"))
	for _, name := range names {
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		key, err := values.MarshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(ext[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
