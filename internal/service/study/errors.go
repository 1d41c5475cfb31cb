package study

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrStorageDisabled = errors.New("object storage is not configured")
)
