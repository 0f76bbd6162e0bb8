package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrRulesMissing          = errors.New("no active scoring rules")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
