package ai

import (
	"context"
	"encoding/json"
)

// FallbackText is returned when the upstream answered but its payload is
// missing the generated text (empty candidates, missing content or parts).
const FallbackText = "No response received."

// Generation is one upstream completion. Raw keeps the untouched response
// payload so it can be archived for auditing.
type Generation struct {
	Text string
	Raw  json.RawMessage
}

// Generator port (interface for the generative-text provider)
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// Archive port (interface for raw payload retention)
type Archive interface {
	Store(ctx context.Context, key string, payload []byte) (string, error)
}
