package odontogram

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNothingSelected = errors.New("no tooth selected")
	ErrReadOnly        = errors.New("chart is read-only")
)
