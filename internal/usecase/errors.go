package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrNetwork    = errors.New("network error")
	ErrTimeout    = errors.New("request timed out")
	ErrServer     = errors.New("server error")
	ErrValidation = errors.New("validation failed")
	// ErrRejected is a well-formed response whose envelope reports success=false.
	ErrRejected = errors.New("request rejected")

	ErrJoinInProgress = errors.New("join already in progress")
	ErrAlreadyMember  = errors.New("already a member")
	ErrPickLocked     = errors.New("pick is locked")
	ErrNotLoaded      = errors.New("view not loaded")
)

// ValidationError is a client-side rejection of user input, shown verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// messenger is implemented by errors that carry a server-provided message.
type messenger interface {
	UserMessage() string
}

// UserMessage picks the text to show for a failed action: a validation
// message, the server's own message, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var withMessage messenger
	if errors.As(err, &withMessage) {
		if msg := strings.TrimSpace(withMessage.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}
