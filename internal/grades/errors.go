package grades

import "errors"

var (
	ErrRowNotFound  = errors.New("grade row not found")
	ErrUnknownField = errors.New("unknown grade row field")
	ErrUnitsRange   = errors.New("units must be a whole number between 0 and 10")
	ErrGradeRange   = errors.New("grade must be a number between 0 and 5")
)
