package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verifyd/verifyd-go/types"
)

func ageOver(value interface{}) types.NewSessionRequest {
	return types.NewSessionRequest{
		Checks: []types.VerificationCheck{{Type: types.CheckAgeOver, Value: value}},
	}
}

func TestValidateSessionRequest(t *testing.T) {
	t.Run("accepts a minimal valid request", func(t *testing.T) {
		assert.NoError(t, ValidateSessionRequest(&types.NewSessionRequest{
			Checks: []types.VerificationCheck{{Type: types.CheckIdentityVerified}},
		}))
	})

	t.Run("rejects nil and empty requests", func(t *testing.T) {
		assert.Error(t, ValidateSessionRequest(nil))
		assert.Error(t, ValidateSessionRequest(&types.NewSessionRequest{}))
	})

	t.Run("rejects unknown check types", func(t *testing.T) {
		err := ValidateSessionRequest(&types.NewSessionRequest{
			Checks: []types.VerificationCheck{{Type: "credit_score"}},
		})
		assert.Error(t, err)
	})

	t.Run("age boundaries", func(t *testing.T) {
		assert.NoError(t, ValidateSessionRequest(ptr(ageOver(0))))
		assert.NoError(t, ValidateSessionRequest(ptr(ageOver(150))))
		assert.NoError(t, ValidateSessionRequest(ptr(ageOver(18))))

		assert.Error(t, ValidateSessionRequest(ptr(ageOver(-1))))
		assert.Error(t, ValidateSessionRequest(ptr(ageOver(151))))
		assert.Error(t, ValidateSessionRequest(ptr(ageOver("eighteen"))))
	})

	t.Run("age checks require a value", func(t *testing.T) {
		err := ValidateSessionRequest(&types.NewSessionRequest{
			Checks: []types.VerificationCheck{{Type: types.CheckAgeOver}},
		})
		assert.Error(t, err)
	})

	t.Run("check count boundaries", func(t *testing.T) {
		checks := make([]types.VerificationCheck, 0, 11)
		for i := 0; i < 10; i++ {
			checks = append(checks, types.VerificationCheck{Type: types.CheckIdentityVerified})
		}
		assert.NoError(t, ValidateSessionRequest(&types.NewSessionRequest{Checks: checks}))

		checks = append(checks, types.VerificationCheck{Type: types.CheckIdentityVerified})
		assert.Error(t, ValidateSessionRequest(&types.NewSessionRequest{Checks: checks}))
	})

	t.Run("urls must be absolute HTTPS", func(t *testing.T) {
		valid := types.NewSessionRequest{
			Checks:      []types.VerificationCheck{{Type: types.CheckResidency, Value: "DE"}},
			RedirectURL: "https://merchant.example/done",
			WebhookURL:  "https://merchant.example/hooks/verifyd",
		}
		assert.NoError(t, ValidateSessionRequest(&valid))

		httpRedirect := valid
		httpRedirect.RedirectURL = "http://merchant.example/done"
		assert.Error(t, ValidateSessionRequest(&httpRedirect))

		relativeWebhook := valid
		relativeWebhook.WebhookURL = "/hooks/verifyd"
		assert.Error(t, ValidateSessionRequest(&relativeWebhook))
	})
}

func ptr(req types.NewSessionRequest) *types.NewSessionRequest {
	return &req
}
