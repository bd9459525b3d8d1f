package service

import "errors"

var (
	// ErrInvalidCredentials covers every login failure the user is allowed
	// to see: unknown email, missing hash, wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrForbidden = errors.New("forbidden")

	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation expired")
	ErrInviteEmailMismatch = errors.New("invitation email mismatch")
)

// Decision is the tagged outcome of a mutation authorization check, so
// callers can tell "nothing happened because unauthorized" from "nothing
// happened because no match" (the latter travels as an error).
type Decision int

const (
	DecisionDenied Decision = iota
	DecisionForbidden
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "denied"
	}
}
