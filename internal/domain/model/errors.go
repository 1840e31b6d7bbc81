package model

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned when registering an email that is already
	// present in the identity mapping.
	ErrAlreadyExists = errors.New("identity already exists")

	// ErrInvalidCredentials is returned when the email is unknown or the
	// secret does not match exactly.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports bad local input. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// QueryErrorKind classifies search failures.
type QueryErrorKind string

const (
	// QueryErrorUpstream means the model call itself failed.
	QueryErrorUpstream QueryErrorKind = "upstream"
	// QueryErrorMalformed means the reply could not be turned into recipes.
	QueryErrorMalformed QueryErrorKind = "malformed_response"
)

// User-facing messages for query failures.
const (
	MsgUpstreamFailure   = "Could not fetch recipes. Please try again."
	MsgMalformedResponse = "The recipe service returned an unexpected answer. Please try again."
)

// QueryError is returned by recipe searches.
type QueryError struct {
	Kind    QueryErrorKind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recipe query %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("recipe query %s", e.Kind)
}

func (e *QueryError) Unwrap() error { return e.Err }

// IsQueryError reports whether err is a QueryError of the given kind.
func IsQueryError(err error, kind QueryErrorKind) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == kind
}

// UserMessage collapses any error into the single message string the UI
// shows.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Message
	}

	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "This email is already registered. Try logging in."
	case errors.Is(err, ErrInvalidCredentials):
		return "Incorrect email or password."
	default:
		return "An unknown error occurred."
	}
}
