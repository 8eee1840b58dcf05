// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr classifies application errors into the handful of kinds
// the API distinguishes, using goerr tags. Handlers map the kind to an
// HTTP status; anything untagged is an internal failure and is reported
// generically so storage details never leak to clients.
package apperr

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// TagValidation marks malformed or missing input.
	TagValidation = goerr.NewTag("validation")
	// TagUnauthenticated marks requests with no valid principal.
	TagUnauthenticated = goerr.NewTag("unauthenticated")
	// TagForbidden marks authenticated requests denied by policy.
	TagForbidden = goerr.NewTag("forbidden")
	// TagNotFound marks lookups that matched no entity.
	TagNotFound = goerr.NewTag("not_found")
	// TagConflict marks uniqueness violations on create.
	TagConflict = goerr.NewTag("conflict")
)

// Validation returns a new validation error with the given user-facing message.
func Validation(msg string) error {
	return goerr.New(msg, goerr.T(TagValidation))
}

// Unauthenticated returns a new authentication error.
func Unauthenticated(msg string) error {
	return goerr.New(msg, goerr.T(TagUnauthenticated))
}

// Forbidden returns a new authorization error.
func Forbidden(msg string) error {
	return goerr.New(msg, goerr.T(TagForbidden))
}

// NotFound returns a new missing-entity error.
func NotFound(msg string) error {
	return goerr.New(msg, goerr.T(TagNotFound))
}

// Conflict returns a new uniqueness-violation error.
func Conflict(msg string) error {
	return goerr.New(msg, goerr.T(TagConflict))
}

// IsKind reports whether err carries the given tag anywhere in its chain.
// goerr/v2 does not export its tag type, so the parameter is generic; it is
// only ever instantiated with the values goerr.NewTag returns, for which this
// is exactly goerr.HasTag.
func IsKind[T any](err error, tag T) bool {
	hasTag, ok := any(goerr.HasTag).(func(error, T) bool)
	return ok && hasTag(err, tag)
}

// HTTPStatus returns the status code for an error per the API contract:
// validation and duplicate-key errors are client errors (400), missing
// principals 401, policy denials 403, missing entities 404, and anything
// unclassified a 500.
func HTTPStatus(err error) int {
	switch {
	case goerr.HasTag(err, TagValidation), goerr.HasTag(err, TagConflict):
		return http.StatusBadRequest
	case goerr.HasTag(err, TagUnauthenticated):
		return http.StatusUnauthorized
	case goerr.HasTag(err, TagForbidden):
		return http.StatusForbidden
	case goerr.HasTag(err, TagNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error. Tagged errors
// carry human-readable messages by construction; untagged (internal)
// errors collapse to a generic message.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Server Error"
	}
	return err.Error()
}
