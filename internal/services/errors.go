package services

import "errors"

// Error sentinels shared across services. Handlers map these onto HTTP
// status codes with errors.Is; anything else is treated as a storage
// failure the caller may retry.
var (
	ErrValidation     = errors.New("validation failed")
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInactive = errors.New("member is not active")
	ErrDueNotFound    = errors.New("monthly due not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrForbidden      = errors.New("forbidden")
)
