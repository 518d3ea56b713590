// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// AdminPasswordHeader carries the shared admin password on destructive requests.
const AdminPasswordHeader = "X-Admin-Password"

var (
	ErrMissingPassword = errors.New("admin password required")
	ErrInvalidPassword = errors.New("invalid admin password")
)

// CheckAdminPassword compares the given password with the configured one.
// Both sides are hashed first so the comparison time does not depend on length.
func CheckAdminPassword(given, expected string) error {
	if given == "" {
		return ErrMissingPassword
	}
	if expected == "" {
		return ErrInvalidPassword
	}
	g := sha256.Sum256([]byte(given))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(g[:], e[:]) {
		return ErrInvalidPassword
	}
	return nil
}

// CheckRequest validates the X-Admin-Password header of r.
func CheckRequest(r *http.Request, expected string) error {
	return CheckAdminPassword(r.Header.Get(AdminPasswordHeader), expected)
}
