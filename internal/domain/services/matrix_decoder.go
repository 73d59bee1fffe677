package services

import (
	"fmt"

	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// DecodedMask is the profile view of one mask.
type DecodedMask struct {
	Profiles []string
	// UnassignedSlots are set slots with no profile at that position.
	UnassignedSlots []int
}

// MatrixDecoder maps masks back to profile codes.
type MatrixDecoder struct{}

// NewMatrixDecoder creates a new matrix decoder.
func NewMatrixDecoder() *MatrixDecoder {
	return &MatrixDecoder{}
}

// Decode parses a rendered mask and lists the profiles it authorizes, in slot order.
func (d *MatrixDecoder) Decode(rendered string, index ProfileIndex) (DecodedMask, error) {
	mask, err := values.ParseMask(rendered)
	if err != nil {
		return DecodedMask{}, fmt.Errorf("decoding mask: %w", err)
	}

	var out DecodedMask
	for _, slot := range mask.Slots() {
		code, ok := index.Code(slot)
		if !ok {
			out.UnassignedSlots = append(out.UnassignedSlots, slot)
			continue
		}
		out.Profiles = append(out.Profiles, code)
	}
	return out, nil
}
