// Package schema validates verification requests locally before they are
// sent over the network. The rules mirror the server's: check types come
// from a fixed enum, a session carries at most 10 checks, age values are
// numeric within [0,150], and redirect/webhook URLs must be absolute HTTPS.
// A session must also request at least one check; an empty check list is
// rejected here rather than wasting a round-trip on a request the server
// cannot act on.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/verifyd/verifyd-go/types"
	"github.com/xeipuuv/gojsonschema"
)

const sessionRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["checks"],
	"properties": {
		"checks": {
			"type": "array",
			"minItems": 1,
			"maxItems": 10,
			"items": {
				"type": "object",
				"required": ["type"],
				"properties": {
					"type": {
						"type": "string",
						"enum": [
							"age_over",
							"age_under",
							"residency",
							"nationality",
							"identity_verified",
							"document_valid",
							"sanctions_clear"
						]
					},
					"passed": { "type": "boolean" }
				},
				"if": {
					"properties": {
						"type": { "enum": ["age_over", "age_under"] }
					}
				},
				"then": {
					"required": ["value"],
					"properties": {
						"value": {
							"type": "number",
							"minimum": 0,
							"maximum": 150
						}
					}
				}
			}
		},
		"redirectUrl": {
			"type": "string",
			"pattern": "^https://\\S+$"
		},
		"webhookUrl": {
			"type": "string",
			"pattern": "^https://\\S+$"
		},
		"metadata": { "type": "object" },
		"enableAI": { "type": "boolean" }
	}
}`

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func sessionSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(sessionRequestSchema))
	})
	return compiled, compileErr
}

// ValidateSessionRequest checks a session request against the schema and
// returns a human-readable error listing every violation.
func ValidateSessionRequest(req *types.NewSessionRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	s, err := sessionSchema()
	if err != nil {
		return fmt.Errorf("failed to compile request schema: %w", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
	}

	return nil
}
