package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verifyd/verifyd-go/types"
)

// ValidationError is a local, pre-flight failure: the input never left the
// process.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// TimeoutError indicates the network operation exceeded the configured
// timeout. Retryable.
type TimeoutError struct {
	Path    string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.Path, e.Timeout)
}

func (e *TimeoutError) retryable() bool { return true }

// NetworkError indicates a transport-level failure (DNS, connection reset).
// Retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error   { return e.Err }
func (e *NetworkError) retryable() bool { return true }

// ClientError is a non-retryable 4xx response from the API.
type ClientError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ClientError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *ClientError) retryable() bool { return false }

// RateLimitError is the specialized 429 failure. The message embeds the
// actionable guidance directly so it survives environments without
// structured error inspection.
type RateLimitError struct {
	Info types.RateLimitInfo
}

func (e *RateLimitError) Error() string {
	var sb strings.Builder
	if e.Info.Message != "" {
		sb.WriteString(e.Info.Message)
	} else {
		sb.WriteString("rate limit exceeded")
	}
	if e.Info.RetryAfterSeconds != nil {
		sb.WriteString(fmt.Sprintf(". Retry after %d seconds", *e.Info.RetryAfterSeconds))
	}
	if e.Info.DailyLimit != nil {
		sb.WriteString(fmt.Sprintf(". Daily limit: %d", *e.Info.DailyLimit))
	}
	if e.Info.MonthlyLimit != nil {
		sb.WriteString(fmt.Sprintf(". Monthly limit: %d", *e.Info.MonthlyLimit))
	}
	if e.Info.UpgradeURL != nil {
		sb.WriteString(fmt.Sprintf(". Upgrade at %s", *e.Info.UpgradeURL))
	}
	return sb.String()
}

func (e *RateLimitError) retryable() bool { return false }

// ServerError is a retryable 5xx response from the API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

func (e *ServerError) retryable() bool { return true }

// ConfigurationError indicates a missing or unusable dependency (absent QR
// renderer, nil crypto provider). Fatal, never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

type retryableError interface {
	retryable() bool
}

// IsRetryable reports whether err represents a transient failure that the
// executor may retry.
func IsRetryable(err error) bool {
	var re retryableError
	if errors.As(err, &re) {
		return re.retryable()
	}
	return false
}
