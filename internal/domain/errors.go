// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the operation conflicts with existing state,
// such as a duplicate live booking for the same event.
var ErrConflict = errors.New("conflict")

// ErrValidation indicates the request carried invalid or unusable input.
var ErrValidation = errors.New("validation failed")

// ErrUnauthorized indicates the request carried no valid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated principal is not permitted to
// perform the operation, including cross-tenant access attempts.
var ErrForbidden = errors.New("forbidden")
