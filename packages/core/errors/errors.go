// Package errors defines the error taxonomy of the roster data layer.
package errors

import (
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound                  Code = "NOT_FOUND"
	CodeValidationFailed          Code = "VALIDATION_FAILED"
	CodeDuplicateActiveAssignment Code = "CONFLICT_DUPLICATE_ACTIVE_ASSIGNMENT"
	CodePersistenceFailure        Code = "PERSISTENCE_FAILURE"
)

// Entity names used in error context.
const (
	EntityPlayer          = "Player"
	EntityTeamAssignment  = "TeamAssignment"
	EntityPlayerStatistic = "PlayerStatistic"
)

// Sentinels for errors.Is matching by code.
var (
	ErrNotFound                  = &Error{Code: CodeNotFound}
	ErrValidationFailed          = &Error{Code: CodeValidationFailed}
	ErrDuplicateActiveAssignment = &Error{Code: CodeDuplicateActiveAssignment}
	ErrPersistenceFailure        = &Error{Code: CodePersistenceFailure}
)

// Error is the domain error type with structured context.
type Error struct {
	Code      Code                // Machine-readable error code
	Message   string              // Internal message (for logs)
	Entity    string              // Entity type involved
	ID        *uint               // Entity identifier, when known
	Operation string              // Repository operation, for persistence failures
	Fields    map[string][]string // Field-level violations
	Cause     error               // Wrapped underlying error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus maps the error code to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeDuplicateActiveAssignment:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports a missing entity.
func NotFound(entity string, id uint) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", entity, id),
		Entity:  entity,
		ID:      &id,
	}
}

// ValidationFailed carries every field violation of one candidate record.
func ValidationFailed(entity string, fields map[string][]string) *Error {
	return &Error{
		Code:    CodeValidationFailed,
		Message: fmt.Sprintf("%s validation failed on %d field(s)", entity, len(fields)),
		Entity:  entity,
		Fields:  fields,
	}
}

// DuplicateActiveAssignment reports a second active membership for the same
// player, team and championship. The rejected assignment has no identifier
// of its own, so ID stays nil and the player is named in the message.
func DuplicateActiveAssignment(playerID uint, teamName, championshipName string) *Error {
	return &Error{
		Code: CodeDuplicateActiveAssignment,
		Message: fmt.Sprintf("player %d already has an active assignment to team %q in championship %q",
			playerID, teamName, championshipName),
		Entity: EntityTeamAssignment,
		Fields: map[string][]string{
			"team_name": {"player already has an active assignment for this team and championship"},
		},
	}
}

// Persistence wraps a store error with the operation and entity it came from.
// id may be nil when the identifier is not known yet.
func Persistence(operation, entity string, id *uint, cause error) *Error {
	msg := fmt.Sprintf("%s %s failed", operation, entity)
	if id != nil {
		msg = fmt.Sprintf("%s %s %d failed", operation, entity, *id)
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Error{
		Code:      CodePersistenceFailure,
		Message:   msg,
		Entity:    entity,
		ID:        id,
		Operation: operation,
		Cause:     cause,
	}
}
