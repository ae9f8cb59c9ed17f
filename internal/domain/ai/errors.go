package ai

import "fmt"

// UpstreamError indicates the generative service could not be reached or
// answered with a non-success status. Malformed-but-reachable payloads are
// not upstream errors, they degrade to FallbackText instead.
type UpstreamError struct {
	Provider string
	Status   int    // HTTP status, 0 for transport failures
	Detail   string // response body snippet for status failures
	Err      error  // transport / encoding cause, may be nil
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Provider, e.Status, e.Detail)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
