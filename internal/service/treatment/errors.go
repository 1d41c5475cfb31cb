package treatment

import "errors"

var (
	ErrNotFound             = errors.New("treatment not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrProfessionalNotFound = errors.New("professional not found")
)
