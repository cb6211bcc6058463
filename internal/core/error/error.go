package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a key does not exist.
	RedisNotFoundMessage = "redis key not found"
	// ParseErrorMessage describes a malformed profile or statement payload.
	ParseErrorMessage = "invalid profile payload"
	// ModelErrorMessage describes a failure of the language-model classifier.
	ModelErrorMessage = "classifier model failed"
	// ProviderErrorMessage describes a failure of the accounts provider.
	ProviderErrorMessage = "accounts provider failed"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapRedis maps Redis errors to an AppError with an appropriate status code.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapParse marks err as a client-side decoding failure.
func WrapParse(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadRequest, ParseErrorMessage)
}

// WrapModel marks err as a failure of the generative classifier.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}

// WrapProvider marks err as a failure of the upstream accounts provider.
func WrapProvider(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, ProviderErrorMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
