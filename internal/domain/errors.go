package domain

import "errors"

// Sentinel errors distinguishing the two failure classes of the data
// layer. NotFound is a normal, frequent outcome (not every SOC code has
// wage survey data); DataUnavailable means the backing file could not
// be read or parsed and should surface to callers as "data temporarily
// unavailable" rather than "no such occupation".
var (
	ErrNotFound        = errors.New("not found")
	ErrDataUnavailable = errors.New("data unavailable")
	ErrInvalidInput    = errors.New("invalid input")
)
