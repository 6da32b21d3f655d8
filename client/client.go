package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/verifyd/verifyd-go/config"
	"github.com/verifyd/verifyd-go/schema"
	"github.com/verifyd/verifyd-go/types"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.verifyd.dev"

// DefaultTimeout bounds each network attempt.
const DefaultTimeout = 30 * time.Second

var validate = validator.New()

// QRRenderer converts a verification URL into a displayable QR code. It is
// an optional dependency; a nil renderer makes VerificationQR fail with a
// ConfigurationError.
type QRRenderer interface {
	Render(url string, size int) ([]byte, error)
}

// Config holds the immutable settings for one Client instance.
type Config struct {
	// APIKey authenticates every request. Required; surrounding
	// whitespace is trimmed.
	APIKey string `validate:"required"`

	// BaseURL is the API origin. Defaults to DefaultBaseURL; trailing
	// slashes are stripped.
	BaseURL string

	// Timeout bounds each network attempt. Defaults to DefaultTimeout.
	Timeout time.Duration `validate:"gt=0"`

	// RetryPolicy controls backoff between retries of transient
	// failures. The zero value is replaced by DefaultRetryPolicy; use
	// NoRetries to disable retrying.
	RetryPolicy RetryPolicy

	// OnRateLimit, when set, is invoked once per rate-limited attempt
	// with the parsed quota metadata. Panics are swallowed and never
	// replace the rate-limit error.
	OnRateLimit func(types.RateLimitInfo)

	// QRRenderer supplies optional QR rendering for verification URLs.
	QRRenderer QRRenderer
}

// Client is a thin client for the Verifyd identity-verification API. It is
// safe for concurrent use; configuration is read-only after New.
type Client struct {
	exec     *executor
	renderer QRRenderer
}

// New builds a Client from cfg, applying defaults and validating the
// result.
func New(cfg Config) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if (cfg.RetryPolicy == RetryPolicy{}) {
		cfg.RetryPolicy = DefaultRetryPolicy()
	} else {
		if cfg.RetryPolicy.BaseDelay == 0 {
			cfg.RetryPolicy.BaseDelay = 500 * time.Millisecond
		}
		if cfg.RetryPolicy.Factor == 0 {
			cfg.RetryPolicy.Factor = 2
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := validate.Struct(cfg.RetryPolicy); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	return &Client{
		exec:     newExecutor(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.RetryPolicy, cfg.OnRateLimit),
		renderer: cfg.QRRenderer,
	}, nil
}

// NewFromEnv builds a Client from environment-sourced configuration (see
// the config package for the recognized variables).
func NewFromEnv() (*Client, error) {
	return NewFromEnvWith(nil)
}

// NewFromEnvWith is NewFromEnv with an optional QR renderer attached.
func NewFromEnvWith(renderer QRRenderer) (*Client, error) {
	if err := config.SetupConfig(); err != nil {
		return nil, &ConfigurationError{Message: err.Error()}
	}
	cfg := config.ClientConfig()
	return New(Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		RetryPolicy: RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
			Factor:     cfg.RetryFactor,
			Jitter:     cfg.RetryJitter,
		},
		QRRenderer: renderer,
	})
}

// StartVerification creates a new verification session. The request is
// validated locally before any network call is made.
func (c *Client) StartVerification(ctx context.Context, req types.NewSessionRequest) (*types.VerificationSession, error) {
	if err := schema.ValidateSessionRequest(&req); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	session, err := do[types.VerificationSession](ctx, c.exec, http.MethodPost, "/v1/verify/sessions", req)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetResult fetches the current outcome snapshot for a session.
func (c *Client) GetResult(ctx context.Context, sessionID string) (*types.VerificationResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, &ValidationError{Message: "session id is required"}
	}

	result, err := do[types.VerificationResult](ctx, c.exec, http.MethodGet, "/v1/verify/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// WaitForResult polls GetResult every interval until the session reaches a
// terminal status or ctx is done. The caller owns sequencing; concurrent
// calls against the same session are independent.
func (c *Client) WaitForResult(ctx context.Context, sessionID string, interval time.Duration) (*types.VerificationResult, error) {
	if interval <= 0 {
		return nil, &ValidationError{Message: "poll interval must be positive"}
	}
	for {
		result, err := c.GetResult(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if result.Status.IsTerminal() {
			return result, nil
		}
		if err := sleepContext(ctx, interval); err != nil {
			return nil, err
		}
	}
}

// VerificationQR renders the session's verification URL as a QR code using
// the configured renderer.
func (c *Client) VerificationQR(session *types.VerificationSession, size int) ([]byte, error) {
	if c.renderer == nil {
		return nil, &ConfigurationError{Message: "QR renderer not available"}
	}
	if session == nil || session.VerificationURL == "" {
		return nil, &ValidationError{Message: "session has no verification URL"}
	}
	png, err := c.renderer.Render(session.VerificationURL, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
