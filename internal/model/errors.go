package model

import "errors"

// ErrNotFound is returned by stores when a document does not exist.
var ErrNotFound = errors.New("not found")

// InputError reports malformed or invalid request data. It maps to a
// 400 response at the API boundary.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// AccessError reports an authentication or authorization failure. It maps to
// a 403 response at the API boundary.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

// NewErrInvalidCredentials is returned when a login presents an unknown email
// or a non-matching password.
func NewErrInvalidCredentials() *InputError {
	return &InputError{Message: "Invalid username or password"}
}

// NewErrEmailTaken is returned when a registration reuses a cached email.
func NewErrEmailTaken() *InputError {
	return &InputError{Message: "Email address already registered"}
}

// NewErrInvalidToken is returned for missing, malformed, expired or
// unrecognized bearer tokens, and for tokens whose session is not cached.
func NewErrInvalidToken() *AccessError {
	return &AccessError{Message: "Invalid Token"}
}
