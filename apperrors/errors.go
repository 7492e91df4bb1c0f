package apperrors

import "errors"

type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodePersistence    Code = "PERSISTENCE_ERROR"
	CodeInvalidState   Code = "INVALID_STATE_TRANSITION"
	CodeNotFound       Code = "NOT_FOUND"
	CodeRemoteSync     Code = "REMOTE_SYNC_ERROR"
	CodeSyncInProgress Code = "SYNC_IN_PROGRESS"
	CodeStorageFailure Code = "STORAGE_UNAVAILABLE"
)

// Error is the taxonomy surfaced by the store, repository and sync manager.
// Validation, invalid-state and not-found errors are never retried;
// persistence errors are fatal to the triggering operation; remote sync
// errors are retried by the sync manager and otherwise deferred.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Err: cause}
}

func Validation(message string) *Error {
	return newError(CodeValidation, message, nil)
}

func Persistence(message string, cause error) *Error {
	return newError(CodePersistence, message, cause)
}

func InvalidState(message string) *Error {
	return newError(CodeInvalidState, message, nil)
}

func NotFound(message string) *Error {
	return newError(CodeNotFound, message, nil)
}

func RemoteSync(message string, cause error) *Error {
	return newError(CodeRemoteSync, message, cause)
}

func StorageUnavailable(message string, cause error) *Error {
	return newError(CodeStorageFailure, message, cause)
}

// SyncInProgress marks a coalesced sync trigger; callers treat it as a no-op.
var SyncInProgress = newError(CodeSyncInProgress, "a sync cycle is already in flight", nil)

// CodeOf extracts the taxonomy code from err, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
