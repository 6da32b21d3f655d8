package client

import (
	"encoding/json"
	"fmt"

	"github.com/verifyd/verifyd-go/types"
)

// rateLimitCode is the error code the API sends on 429 responses that carry
// quota metadata.
const rateLimitCode = "RATE_LIMIT_EXCEEDED"

// apiErrorBody is the wire shape of a 4xx/5xx response body. Rate-limited
// responses additionally carry the quota fields at the top level.
type apiErrorBody struct {
	Code              string                 `json:"code"`
	Message           string                 `json:"message"`
	Details           map[string]interface{} `json:"details,omitempty"`
	Timestamp         string                 `json:"timestamp"`
	RequestID         string                 `json:"requestId"`
	RetryAfterSeconds *int                   `json:"retryAfterSeconds,omitempty"`
	DailyLimit        *int                   `json:"dailyLimit,omitempty"`
	MonthlyLimit      *int                   `json:"monthlyLimit,omitempty"`
	UpgradeURL        *string                `json:"upgradeUrl,omitempty"`
}

// classify maps a completed HTTP round-trip to the error taxonomy. It is a
// pure function of the status code and response body: nil for 2xx, a
// non-retryable ClientError/RateLimitError for 4xx, a retryable ServerError
// for 5xx. Unexpected status codes outside those ranges are treated as
// non-retryable.
func classify(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var parsed apiErrorBody
	// A malformed error body still yields a classified error with a
	// generic message.
	_ = json.Unmarshal(body, &parsed)

	switch {
	case statusCode >= 400 && statusCode < 500:
		if parsed.Code == rateLimitCode {
			return &RateLimitError{
				Info: types.RateLimitInfo{
					Message:           parsed.Message,
					RetryAfterSeconds: parsed.RetryAfterSeconds,
					DailyLimit:        parsed.DailyLimit,
					MonthlyLimit:      parsed.MonthlyLimit,
					UpgradeURL:        parsed.UpgradeURL,
				},
			}
		}
		return &ClientError{
			StatusCode: statusCode,
			Code:       parsed.Code,
			Message:    parsed.Message,
			RequestID:  parsed.RequestID,
		}
	case statusCode >= 500 && statusCode < 600:
		return &ServerError{
			StatusCode: statusCode,
			Message:    parsed.Message,
		}
	default:
		return &ClientError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status %d", statusCode),
		}
	}
}
