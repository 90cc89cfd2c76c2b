// Package apierrors defines the caller-facing error contract of the lobby API.
//
// Messages are part of the wire contract and are kept verbatim, including their
// inconsistent capitalization.
package apierrors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// Kind classifies API errors independently of the transport.
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindPreconditionFailed Kind = "precondition_failed"
	KindInvalidArgument    Kind = "invalid_argument"
	KindAlreadyExists      Kind = "already_exists"
	KindInternal           Kind = "internal"
)

// GRPCCode maps the kind onto a gRPC status code.
func (k Kind) GRPCCode() codes.Code {
	switch k {
	case KindUnauthenticated:
		return codes.Unauthenticated
	case KindPreconditionFailed:
		return codes.FailedPrecondition
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindAlreadyExists:
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}

// APIError is an error whose message is safe to return to the caller.
type APIError struct {
	Kind     Kind
	GRPCCode codes.Code
	Message  string
	// Err is the underlying cause. It is logged, never sent to the caller.
	Err error
}

func newAPIError(kind Kind, message string, cause error) *APIError {
	return &APIError{
		Kind:     kind,
		GRPCCode: kind.GRPCCode(),
		Message:  message,
		Err:      cause,
	}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As returns the APIError in err's chain, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func NewErrUnauthenticated() *APIError {
	return newAPIError(KindUnauthenticated, "The function must be called while authenticated.", nil)
}

func NewErrMissingAuthorizationToken() *APIError {
	return newAPIError(KindUnauthenticated, "missing authorization token", nil)
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newAPIError(KindUnauthenticated, "invalid authorization token", nil)
}

func NewErrEmailNotVerified() *APIError {
	return newAPIError(KindPreconditionFailed, "use a verified email address to continue", nil)
}

func NewErrUsernameRules() *APIError {
	return newAPIError(KindInvalidArgument, "username rules failed", nil)
}

func NewErrUserExists() *APIError {
	return newAPIError(KindAlreadyExists, "user already exists", nil)
}

func NewErrUsernameTaken(username string) *APIError {
	return newAPIError(KindAlreadyExists, fmt.Sprintf("username %s already taken", username), nil)
}

// NewErrReservationExhausted reports a reservation whose retry budget ran out.
func NewErrReservationExhausted(cause error) *APIError {
	return newAPIError(KindInternal, "Something is wrong", cause)
}

func NewErrUserOffline() *APIError {
	return newAPIError(KindPreconditionFailed, "User Not Online", nil)
}

func NewErrAlreadyWaiting() *APIError {
	return newAPIError(KindAlreadyExists, "User Already Waiting to be matched", nil)
}

// NewErrInternalServerError hides an unclassified failure behind a generic message.
func NewErrInternalServerError(cause error) *APIError {
	return newAPIError(KindInternal, "An unexpected error occurred", cause)
}
