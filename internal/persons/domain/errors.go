package domain

import "errors"

// Error kinds. Every failure the services return to callers wraps exactly one
// of these so the transport can pick a status with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)

// Error is a classified error carrying a message that is safe to show to the
// client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error      { return &Error{Kind: ErrValidation, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: ErrUnauthenticated, Message: msg} }
func Forbidden(msg string) error       { return &Error{Kind: ErrForbidden, Message: msg} }
func Conflict(msg string) error        { return &Error{Kind: ErrConflict, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: ErrNotFound, Message: msg} }

// Message returns the client-facing message of err, or fallback when err is
// not a *Error.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

// User-facing messages shared between services and tests.
const (
	MsgAllFieldsRequired    = "All fields are required"
	MsgInvalidEmail         = "Please provide a valid email"
	MsgPasswordMismatch     = "Passwords do not match"
	MsgUserExists           = "User already exists"
	MsgLoginFieldsRequired  = "Please provide email and password"
	MsgInvalidCredentials   = "Invalid credentials"
	MsgNoToken              = "No token, authorization denied"
	MsgInvalidToken         = "Token is not valid"
	MsgUserNotFound         = "User not found"
	MsgAdminRequired        = "Access denied. Admin role required."
	MsgPersonFieldsRequired = "All required fields must be provided"
	MsgInvalidCNP           = "CNP must be 13 digits"
	MsgInvalidIDType        = "Invalid document type"
	MsgPersonNotFound       = "Person not found"
	MsgPersonExists         = "Person already exists"
)
