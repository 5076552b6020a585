// Package common defines shared constants and sentinel errors used across
// client and server layers of Taskio. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrNotFoundOrUnauthorized is returned when no task matches the given id
	// for the calling owner. Missing rows and foreign rows are reported alike.
	ErrNotFoundOrUnauthorized = errors.New("task not found or unauthorized")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrAlreadyExists  = errors.New("already exists")

	// ErrConflict marks an interrupted multi-step write. Tag replacement runs
	// in a single transaction, so services never return it today.
	ErrConflict = errors.New("conflict or partial failure")

	// Validation errors. Detail is attached with fmt.Errorf("%w: ...").
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
