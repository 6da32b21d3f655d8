// Package webhook verifies inbound webhook deliveries from the Verifyd API.
// Deliveries carry a base64 HMAC-SHA256 signature and an epoch-millisecond
// timestamp in headers; the body is the raw JSON event payload.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/verifyd/verifyd-go/types"
)

const (
	// SignatureHeader carries the base64 HMAC-SHA256 of the raw body.
	SignatureHeader = "X-Verifyd-Signature"
	// TimestampHeader carries the delivery time in epoch milliseconds.
	TimestampHeader = "X-Verifyd-Timestamp"

	// maxTimestampAge is the replay-protection window. A delivery older
	// than this, or timestamped in the future, fails verification.
	maxTimestampAge = 5 * time.Minute
)

// ErrMissingInput is returned when a required verification input is absent.
// Callers must not treat it as "bad signature".
var ErrMissingInput = errors.New("webhook verification requires body, signature, secret, and timestamp")

// ErrNoCryptoProvider is returned when a Verifier is constructed without a
// usable crypto provider.
var ErrNoCryptoProvider = errors.New("webhook verification requires a crypto provider")

// CryptoProvider supplies the primitives verification depends on. It exists
// so alternate runtimes and tests can inject their own implementation.
type CryptoProvider interface {
	// HMACSHA256 computes the HMAC-SHA256 digest of data under key.
	HMACSHA256(key, data []byte) []byte
	// ConstantTimeEqual compares two equal-length byte slices in time
	// independent of where they first differ.
	ConstantTimeEqual(a, b []byte) bool
}

type stdCrypto struct{}

func (stdCrypto) HMACSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

func (stdCrypto) ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Verifier validates webhook signatures and delivery freshness.
type Verifier struct {
	crypto CryptoProvider
	now    func() time.Time
}

// NewVerifier returns a Verifier backed by the standard library crypto
// primitives.
func NewVerifier() *Verifier {
	return &Verifier{crypto: stdCrypto{}, now: time.Now}
}

// NewVerifierWithProvider returns a Verifier backed by the given provider.
func NewVerifierWithProvider(p CryptoProvider) (*Verifier, error) {
	if p == nil {
		return nil, ErrNoCryptoProvider
	}
	return &Verifier{crypto: p, now: time.Now}, nil
}

// Verify recomputes the expected signature for rawBody under secret and
// compares it to signature in constant time, then checks that timestampMs
// falls within the trailing replay window. It returns an error only for
// missing inputs or an unparseable timestamp; a false result with a nil
// error means the delivery failed signature or freshness checks.
//
// Neither the secret nor the computed digest is ever logged.
func (v *Verifier) Verify(rawBody []byte, signature, secret, timestampMs string) (bool, error) {
	if len(rawBody) == 0 || signature == "" || secret == "" || timestampMs == "" {
		return false, ErrMissingInput
	}

	expected := base64.StdEncoding.EncodeToString(v.crypto.HMACSHA256([]byte(secret), rawBody))

	// The constant-time comparator requires equal-length inputs; a
	// length mismatch short-circuits without reaching it.
	if len(signature) != len(expected) {
		return false, nil
	}
	if !v.crypto.ConstantTimeEqual([]byte(signature), []byte(expected)) {
		return false, nil
	}

	ts, err := strconv.ParseInt(timestampMs, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid webhook timestamp %q: %w", timestampMs, err)
	}

	age := v.now().UnixMilli() - ts
	if age < 0 || age > maxTimestampAge.Milliseconds() {
		return false, nil
	}

	return true, nil
}

// ParseEvent decodes a verified webhook body into a WebhookEvent. Verify the
// delivery first; ParseEvent performs no signature checks.
func ParseEvent(rawBody []byte) (*types.WebhookEvent, error) {
	var event types.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}
