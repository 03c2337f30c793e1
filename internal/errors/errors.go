package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when a request carries no session token.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidSession is returned when the token matches no stored session.
	ErrInvalidSession = errors.New("invalid session")
	// ErrSessionExpired is returned when the stored session is past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound is returned when a session references a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUpstreamAuth is returned when the identity provider rejects an exchange.
	ErrUpstreamAuth = errors.New("identity provider rejected session")
	// ErrMissingSessionID is returned when the exchange header is absent.
	ErrMissingSessionID = errors.New("missing X-Session-ID header")
	// ErrInsufficientCredits is returned when a generation is requested with no balance.
	ErrInsufficientCredits = errors.New("no credits left")
	// ErrInvalidPack is returned for an unknown credit pack id.
	ErrInvalidPack = errors.New("unknown credit pack")
	// ErrGenerationFailed is returned when the provider yields no image.
	ErrGenerationFailed = errors.New("no image generated")
	// ErrWebhookPayload is returned when a webhook body cannot be parsed.
	ErrWebhookPayload = errors.New("invalid webhook payload")
	// ErrWebhookSignature is returned when webhook signature verification fails.
	ErrWebhookSignature = errors.New("webhook signature verification failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The four guard
// failures all map to 401 but keep distinguishable codes.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidSession):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_SESSION")
	case errors.Is(err, ErrSessionExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_EXPIRED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUpstreamAuth):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UPSTREAM_AUTH_FAILED")
	case errors.Is(err, ErrMissingSessionID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_SESSION_ID")
	case errors.Is(err, ErrInsufficientCredits):
		return NewHTTPError(http.StatusPaymentRequired, err.Error(), "INSUFFICIENT_CREDITS")
	case errors.Is(err, ErrInvalidPack):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PACK")
	case errors.Is(err, ErrGenerationFailed):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "GENERATION_FAILED")
	case errors.Is(err, ErrWebhookPayload):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAYLOAD")
	case errors.Is(err, ErrWebhookSignature):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SIGNATURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
