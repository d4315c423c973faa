package services

import (
	"errors"

	"github.com/openelearn/platform-service/internal/validator"
)

// Service-level sentinel errors. Handlers translate these into HTTP
// status codes and response details.
var (
	// ErrEmailAlreadyRegistered is returned when a registration uses an
	// email that already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the email is
	// unknown or the password does not match. Callers get the same
	// error either way.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable is returned when an operation requires the
	// document store and the service is running in degraded mode.
	ErrStoreUnavailable = errors.New("database not available")
)

// Validation error types, re-exported so handlers can match them
// without importing the validator package directly.
type ValidationError = validator.ValidationError
type ValidationErrors = validator.ValidationErrors
