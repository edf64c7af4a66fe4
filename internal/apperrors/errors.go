package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
// Every token-validation failure (missing, malformed, expired, wrong type,
// blacklisted, rotated away) collapses into this single error so the response
// never reveals which check failed; the distinction is for logs only.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated caller may not access the resource.
var ErrForbidden = errors.New("forbidden")
