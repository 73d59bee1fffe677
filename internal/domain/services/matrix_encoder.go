package services

import (
	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

// MatrixEncoder turns the profiles authorized on a use case into a mask.
// The result depends only on the set of codes and the index.
type MatrixEncoder struct{}

// NewMatrixEncoder creates a new matrix encoder.
func NewMatrixEncoder() *MatrixEncoder {
	return &MatrixEncoder{}
}

// Encode sets the slot of every non-ignored code. A code missing from the
// index fails the whole encoding.
func (e *MatrixEncoder) Encode(profiles []string, index ProfileIndex) (values.Mask, error) {
	var mask values.Mask
	for _, code := range profiles {
		if IsIgnoredProfile(code) {
			continue
		}
		slot, ok := index.Slot(code)
		if !ok {
			return 0, &entities.UnknownProfileError{Profile: code}
		}
		next, err := mask.With(slot)
		if err != nil {
			return 0, err
		}
		mask = next
	}
	return mask, nil
}
