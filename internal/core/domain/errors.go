package domain

import "errors"

// Sentinel errors returned by repositories. Services translate them
// into client-facing errors.
var (
	// ErrSupplyExhausted means a listing cannot cover a requested amount.
	ErrSupplyExhausted = errors.New("listing supply exhausted")
	// ErrSessionNotFound means no session exists for the given ID.
	ErrSessionNotFound = errors.New("session not found")
)
