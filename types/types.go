package types

import "time"

// CheckType is the kind of verifiable claim requested within a session.
type CheckType string

const (
	CheckAgeOver          CheckType = "age_over"
	CheckAgeUnder         CheckType = "age_under"
	CheckResidency        CheckType = "residency"
	CheckNationality      CheckType = "nationality"
	CheckIdentityVerified CheckType = "identity_verified"
	CheckDocumentValid    CheckType = "document_valid"
	CheckSanctionsClear   CheckType = "sanctions_clear"
)

// SessionStatus is the server-controlled lifecycle state of a verification
// session. The client never advances it, only re-reads it.
type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
	StatusExpired    SessionStatus = "expired"
)

// IsTerminal reports whether the session has reached a final state.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

// VerificationCheck is a single check requested from, or reported by, the
// verification service. Value is typed per check kind (age checks carry a
// number, residency/nationality carry a country code). Passed is only set
// on checks returned in a result.
type VerificationCheck struct {
	Type   CheckType   `json:"type"`
	Value  interface{} `json:"value,omitempty"`
	Passed *bool       `json:"passed,omitempty"`
}

// NewSessionRequest is the payload for starting a verification session.
type NewSessionRequest struct {
	Checks      []VerificationCheck    `json:"checks"`
	RedirectURL string                 `json:"redirectUrl,omitempty"`
	WebhookURL  string                 `json:"webhookUrl,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	EnableAI    bool                   `json:"enableAI,omitempty"`
}

// VerificationSession is a server-issued session record.
type VerificationSession struct {
	ID              string              `json:"id"`
	Status          SessionStatus       `json:"status"`
	Checks          []VerificationCheck `json:"checks"`
	VerificationURL string              `json:"verificationUrl"`
	CreatedAt       *time.Time          `json:"createdAt,omitempty"`
	ExpiresAt       *time.Time          `json:"expiresAt,omitempty"`
}

// VerificationResult is a snapshot of a session's outcome. For sessions in a
// non-terminal state it reflects progress so far.
type VerificationResult struct {
	SessionID   string                 `json:"sessionId"`
	Status      SessionStatus          `json:"status"`
	Checks      []VerificationCheck    `json:"checks"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// RateLimitInfo carries the quota metadata parsed from a 429 response body,
// plus the informational X-RateLimit-* response headers when the server sent
// them. Optional fields are nil when the server omitted them.
type RateLimitInfo struct {
	Message           string  `json:"message"`
	RetryAfterSeconds *int    `json:"retryAfterSeconds,omitempty"`
	DailyLimit        *int    `json:"dailyLimit,omitempty"`
	MonthlyLimit      *int    `json:"monthlyLimit,omitempty"`
	UpgradeURL        *string `json:"upgradeUrl,omitempty"`

	// From the X-RateLimit-Limit / X-RateLimit-Remaining /
	// X-RateLimit-Reset response headers. Reset is epoch seconds.
	Limit     *int   `json:"limit,omitempty"`
	Remaining *int   `json:"remaining,omitempty"`
	Reset     *int64 `json:"reset,omitempty"`
}

// WebhookEvent is the raw JSON event payload delivered to an integrator's
// webhook endpoint.
type WebhookEvent struct {
	Event      string                 `json:"event"`
	SessionID  string                 `json:"sessionId"`
	MerchantID string                 `json:"merchantId"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  int64                  `json:"timestamp"`
}
