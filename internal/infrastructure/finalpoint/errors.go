package finalpoint

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
)

type Kind string

const (
	KindNetwork Kind = "network"
	KindTimeout Kind = "timeout"
	KindServer  Kind = "server"
	KindAuth    Kind = "auth"
)

// Error is every failure returned by Client. errors.Is matches it against
// the usecase sentinels for its kind; a timeout is also a network error and a
// 404 also matches usecase.ErrNotFound.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Body    string
	cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "finalpoint %s %s: %s error", e.Method, e.Path, e.Kind)
	if e.Status > 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	switch target {
	case usecase.ErrNetwork:
		return e.Kind == KindNetwork || e.Kind == KindTimeout
	case usecase.ErrTimeout:
		return e.Kind == KindTimeout
	case usecase.ErrServer:
		return e.Kind == KindServer
	case usecase.ErrUnauthorized:
		return e.Kind == KindAuth
	case usecase.ErrRejected:
		return e.Kind == KindServer && e.Status == http.StatusOK && e.cause == nil
	case usecase.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage is the server-provided message, empty for transport failures.
func (e *Error) UserMessage() string {
	return e.Message
}

// IsTransient reports failures that should count against the circuit
// breaker: no response, a timeout, 429 or a 5xx.
func IsTransient(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Kind {
	case KindNetwork, KindTimeout:
		return apiErr.cause != nil && crerr.Is(apiErr.cause, errFinalPointTransient)
	case KindServer:
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}
	return false
}
