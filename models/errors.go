package models

import "fmt"

type UnauthorizedReason string

const (
	ReasonNoToken            UnauthorizedReason = "NO_TOKEN"
	ReasonInvalidToken       UnauthorizedReason = "INVALID_TOKEN"
	ReasonExpiredToken       UnauthorizedReason = "EXPIRED_TOKEN"
	ReasonUserNotFound       UnauthorizedReason = "USER_NOT_FOUND"
	ReasonInvalidCredentials UnauthorizedReason = "INVALID_CREDENTIALS"
)

const (
	ForbiddenNotOwner         = "FORBIDDEN"
	ForbiddenPostNotPublished = "POST_NOT_PUBLISHED"
)

type ErrorUnauthorized struct {
	Reason  UnauthorizedReason
	Message string
}

func (e *ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorNotFound struct {
	Resource string
	ID       uint
}

func (e *ErrorNotFound) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found with id %d", e.Resource, e.ID)
}

type ErrorForbidden struct {
	Reason  string
	Message string
}

func (e *ErrorForbidden) Error() string {
	return e.Message
}

// ErrorValidation is a single-field input error raised outside struct
// validation, e.g. a malformed path id.
type ErrorValidation struct {
	Field   string
	Message string
}

func (e *ErrorValidation) Error() string {
	return e.Message
}

type ErrorConflict struct {
	Resource string
	Field    string
	Message  string
}

func (e *ErrorConflict) Error() string {
	return e.Message
}

// ErrorInternalServer wraps a storage or infrastructure failure.
type ErrorInternalServer struct {
	Op  string
	Err error
}

func (e *ErrorInternalServer) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrorInternalServer) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id uint) error {
	return &ErrorNotFound{Resource: resource, ID: id}
}

func Forbidden(reason, message string) error {
	return &ErrorForbidden{Reason: reason, Message: message}
}

func Unauthorized(reason UnauthorizedReason, message string) error {
	return &ErrorUnauthorized{Reason: reason, Message: message}
}

func InvalidInput(field, message string) error {
	return &ErrorValidation{Field: field, Message: message}
}

func Internal(op string, err error) error {
	return &ErrorInternalServer{Op: op, Err: err}
}
