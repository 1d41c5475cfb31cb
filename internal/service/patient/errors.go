package patient

import "errors"

var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrGuardianNotFound      = errors.New("guardian not found")
	ErrMedicalRecordNotFound = errors.New("medical record not found")
)
