package service

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Wrapped values carry
// the message shown to the client.
var (
	ErrValidation      = errors.New("validation")      // 400
	ErrUnauthenticated = errors.New("unauthenticated") // 401
	ErrForbidden       = errors.New("forbidden")       // 403
	ErrNotFound        = errors.New("not found")       // 404
	ErrConflict        = errors.New("conflict")        // 400
)
