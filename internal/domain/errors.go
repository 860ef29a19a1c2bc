package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; repositories translate driver errors into them so raw
// storage errors never reach callers.
var (
	// ErrNotFound is returned when a referenced entity does not exist, or
	// exists but does not belong to the requesting identity. Identity
	// mismatches on invites are deliberately reported as not-found so the
	// caller cannot probe for invite existence.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the actor lacks the club role
	// required for a privileged mutation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict is returned when an action is inapplicable given current
	// state (already accepted, already declined, already revoked).
	ErrConflict = errors.New("conflict with current state")

	// ErrAlreadyMember is returned when the user already holds an active
	// membership in the club. Also the translation target for duplicate
	// membership unique violations raised by the store.
	ErrAlreadyMember = errors.New("already a member")

	// ErrBlocked is returned when the user is blocked from the target club.
	ErrBlocked = errors.New("blocked from club")

	// ErrInviteExpired is returned when an invite's expiry has passed.
	ErrInviteExpired = errors.New("invite expired")

	// ErrInvalidInput is returned when the request is structurally invalid.
	ErrInvalidInput = errors.New("invalid input")
)
