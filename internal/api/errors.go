package api

import (
	"errors"
	"net/http"

	"github.com/tjcastle/taskboard-api/internal/domain"
	"github.com/tjcastle/taskboard-api/internal/store"
)

// Client-facing messages. These are part of the API contract; tests assert
// them verbatim.
const (
	MsgOK             = "OK"
	MsgBadQueryParams = "Bad request. Invalid query parameters"

	MsgTaskCreated        = "Task created successfully"
	MsgTaskUpdated        = "Task updated successfully"
	MsgTaskDeleted        = "Task deleted successfully"
	MsgTaskNotFound       = "Task not found"
	MsgTaskFieldsRequired = "Name and deadline are required"

	MsgUserCreated        = "User created successfully"
	MsgUserUpdated        = "User updated successfully"
	MsgUserDeleted        = "User deleted successfully"
	MsgUserNotFound       = "User not found"
	MsgUserFieldsRequired = "Name and email are required"
	MsgDuplicateEmail     = "User with this email already exists"

	MsgInvalidBody = "Invalid request format"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Uniqueness
// violations map to 400 rather than 409: the duplicate email is a
// caller-correctable bad request in this API's contract.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
