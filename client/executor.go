package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	fastshot "github.com/opus-domini/fast-shot"
	"github.com/verifyd/verifyd-go/types"
	"github.com/verifyd/verifyd-go/utils/logger"
)

// executor issues a single logical API call: compose URL, attach bearer
// auth, enforce the per-attempt timeout, classify the response, and retry
// transient failures per the configured policy.
type executor struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	policy      RetryPolicy
	onRateLimit func(types.RateLimitInfo)
	http        fastshot.ClientHttpMethods
}

func newExecutor(baseURL, apiKey string, timeout time.Duration, policy RetryPolicy, onRateLimit func(types.RateLimitInfo)) *executor {
	return &executor{
		baseURL:     baseURL,
		apiKey:      apiKey,
		timeout:     timeout,
		policy:      policy,
		onRateLimit: onRateLimit,
		http: fastshot.NewClient(baseURL).
			Auth().BearerToken(apiKey).
			Build(),
	}
}

// execute runs the retry loop around attempt. At most MaxRetries+1 network
// attempts are made; non-retryable failures propagate immediately, and when
// retries are exhausted the last failure propagates verbatim.
func (e *executor) execute(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		data, err := e.attempt(ctx, method, path, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt >= e.policy.MaxRetries {
			return nil, lastErr
		}

		delay := e.policy.delay(attempt)
		logger.Warnf("retrying %s %s in %s: %v", logger.Fields{
			"Attempt": attempt + 1,
			"Path":    path,
		}, method, path, delay, err)

		if serr := sleepContext(ctx, delay); serr != nil {
			return nil, lastErr
		}
	}
}

// attempt performs one network round-trip and maps its outcome to the error
// taxonomy. The timeout context is released on every exit path.
func (e *executor) attempt(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	requestID := uuid.New().String()

	var res fastshot.Response
	var err error

	switch method {
	case http.MethodGet:
		res, err = e.http.GET(path).
			Context().Set(attemptCtx).
			Header().Add("X-Request-ID", requestID).
			Send()
	case http.MethodPost:
		res, err = e.http.POST(path).
			Context().Set(attemptCtx).
			Header().Add("Content-Type", "application/json").
			Header().Add("X-Request-ID", requestID).
			Body().AsJSON(body).
			Send()
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unsupported HTTP method: %s", method)}
	}

	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, &TimeoutError{Path: path, Timeout: e.timeout.String()}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Err: err}
	}

	raw := res.RawResponse
	defer raw.Body.Close()

	data, err := io.ReadAll(raw.Body)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, &TimeoutError{Path: path, Timeout: e.timeout.String()}
		}
		return nil, &NetworkError{Err: err}
	}

	cerr := classify(raw.StatusCode, data)
	if cerr == nil {
		return data, nil
	}

	var rle *RateLimitError
	if errors.As(cerr, &rle) {
		// The body is authoritative; the Retry-After header fills the
		// gap when the body omitted it.
		if rle.Info.RetryAfterSeconds == nil {
			if ra := raw.Header.Get("Retry-After"); ra != "" {
				if secs, perr := strconv.Atoi(ra); perr == nil {
					rle.Info.RetryAfterSeconds = &secs
				}
			}
		}
		if limit := raw.Header.Get("X-RateLimit-Limit"); limit != "" {
			if n, perr := strconv.Atoi(limit); perr == nil {
				rle.Info.Limit = &n
			}
		}
		if remaining := raw.Header.Get("X-RateLimit-Remaining"); remaining != "" {
			if n, perr := strconv.Atoi(remaining); perr == nil {
				rle.Info.Remaining = &n
			}
		}
		if reset := raw.Header.Get("X-RateLimit-Reset"); reset != "" {
			if n, perr := strconv.ParseInt(reset, 10, 64); perr == nil {
				rle.Info.Reset = &n
			}
		}
		e.notifyRateLimit(rle.Info)
	}

	return nil, cerr
}

// notifyRateLimit invokes the caller-supplied callback. A panicking callback
// must never mask or replace the rate-limit error being raised.
func (e *executor) notifyRateLimit(info types.RateLimitInfo) {
	if e.onRateLimit == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("rate limit callback panicked: %v", logger.Fields{}, r)
		}
	}()
	e.onRateLimit(info)
}

// do executes a call and decodes the success body into T. A malformed
// success body decodes to the zero value instead of failing; the API
// guarantees well-formed bodies and callers historically rely on the
// permissive behavior.
func do[T any](ctx context.Context, e *executor, method, path string, body interface{}) (T, error) {
	var out T
	data, err := e.execute(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if uerr := json.Unmarshal(data, &out); uerr != nil {
		logger.Warnf("discarding malformed response body for %s %s: %v", logger.Fields{
			"Path": path,
		}, method, path, uerr)
		var zero T
		return zero, nil
	}
	return out, nil
}
