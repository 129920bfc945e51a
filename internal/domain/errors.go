// Package domain declares the typed failure outcomes shared by the stores and
// services. Callers match them with errors.Is; none of them is fatal.
package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong secret
	// so the response never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUnknownPrincipal = errors.New("user not found")

	// ErrChallengeInvalid covers a missing, mismatched, replayed and expired
	// second-factor code. The cases are deliberately indistinguishable.
	ErrChallengeInvalid = errors.New("invalid or expired authentication code")

	ErrDuplicateEmail  = errors.New("user with this email already exists")
	ErrDuplicateRecord = errors.New("a record for this company and filing year already exists")
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("operation not permitted")
	ErrSelfDeletion    = errors.New("cannot delete your own account")
	ErrInvalidStatus   = errors.New("unknown returns status")
)
