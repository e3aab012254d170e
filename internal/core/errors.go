package core

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrValidation     = errors.New("validation error")
	ErrPersistence    = errors.New("persistence failure")
	ErrRiskAssessment = errors.New("risk assessment failure")
)
