package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
}

func TestVerificationSessionRoundTrip(t *testing.T) {
	payload := `{
		"id": "sess_123",
		"status": "pending",
		"checks": [
			{"type": "age_over", "value": 18},
			{"type": "residency", "value": "DE"}
		],
		"verificationUrl": "https://verify.verifyd.dev/sess_123",
		"createdAt": "2026-08-26T10:00:00Z"
	}`

	var session VerificationSession
	require.NoError(t, json.Unmarshal([]byte(payload), &session))

	assert.Equal(t, "sess_123", session.ID)
	assert.Equal(t, StatusPending, session.Status)
	require.Len(t, session.Checks, 2)
	assert.Equal(t, CheckAgeOver, session.Checks[0].Type)
	assert.Equal(t, float64(18), session.Checks[0].Value)
	assert.Nil(t, session.Checks[0].Passed)
	require.NotNil(t, session.CreatedAt)

	// Encoding back preserves field presence; optional fields the server
	// omitted stay omitted.
	encoded, err := json.Marshal(session)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(encoded))
}

func TestVerificationResultRoundTrip(t *testing.T) {
	payload := `{
		"sessionId": "sess_123",
		"status": "completed",
		"checks": [
			{"type": "age_over", "value": 18, "passed": true}
		],
		"completedAt": "2026-08-26T10:05:00Z",
		"metadata": {"orderRef": "ord_77"}
	}`

	var result VerificationResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	assert.Equal(t, StatusCompleted, result.Status)
	require.Len(t, result.Checks, 1)
	require.NotNil(t, result.Checks[0].Passed)
	assert.True(t, *result.Checks[0].Passed)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(encoded))
}

func TestStatusStringsAreNotCoerced(t *testing.T) {
	// An unexpected status string survives decoding untouched; the client
	// never rewrites server-issued statuses.
	var session VerificationSession
	require.NoError(t, json.Unmarshal([]byte(`{"id":"s","status":"on_hold"}`), &session))
	assert.Equal(t, SessionStatus("on_hold"), session.Status)
	assert.False(t, session.Status.IsTerminal())
}
