// Package canonical compares JSON documents by their RFC 8785 canonical form.
package canonical

import (
	"bytes"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/tidwall/jsonc"
)

// ChangeDetector reports whether two JSON documents are semantically equal,
// ignoring key order, whitespace and number formatting.
type ChangeDetector struct{}

// NewChangeDetector creates a new change detector.
func NewChangeDetector() *ChangeDetector {
	return &ChangeDetector{}
}

// Equivalent compares the canonical forms of a and b.
func (d *ChangeDetector) Equivalent(a, b []byte) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// Canonicalize returns the canonical form of data. Comments and trailing
// commas are stripped first.
func Canonicalize(data []byte) ([]byte, error) {
	out, err := jcs.Transform(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("canonicalizing JSON: %w", err)
	}
	return out, nil
}
