package appointment

import "errors"

var (
	ErrNotFound             = errors.New("appointment not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrProfessionalInactive = errors.New("professional is not active")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
)
