// Package common defines sentinel errors shared by the diary state containers
// and the command-line front end. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Access gate errors. A wrong code is transient: the caller may retry.
	ErrWrongCode = errors.New("wrong secret code")

	// Validation errors. Operations failing validation leave state untouched.
	ErrEmptyInput          = errors.New("empty input")
	ErrInvalidVisibility   = errors.New("invalid visibility")
	ErrGroupRequired       = errors.New("group id is required for group visibility")
	ErrInvalidInvitePolicy = errors.New("invalid invite policy")
	ErrNameTaken           = errors.New("username is already taken")

	// Authorization-boundary errors.
	ErrNoProfile    = errors.New("no active profile")
	ErrForbidden    = errors.New("forbidden")
	ErrSelfRemoval  = errors.New("cannot remove yourself")
	ErrNotConfirmed = errors.New("not confirmed")
)
