package bracket

import "errors"

var (
	// ErrValidation covers malformed or out of range input.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	// ErrSelfMatch is a round 1 pairing of two tickets of the same player.
	// The operator has to draw again.
	ErrSelfMatch = errors.New("self match not allowed in round 1")
)
