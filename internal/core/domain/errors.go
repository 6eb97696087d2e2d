package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPostNotFound       = errors.New("post not found")
	ErrPermissionDenied   = errors.New("permission denied")
	// ErrStorageCorrupt is recovered inside the stores and only shows up in logs.
	ErrStorageCorrupt = errors.New("stored data is corrupt")
)
