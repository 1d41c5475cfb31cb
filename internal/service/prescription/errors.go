package prescription

import "errors"

var (
	ErrNotFound             = errors.New("prescription not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrCodeExhausted        = errors.New("could not allocate a unique verification code")
)
