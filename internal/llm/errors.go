package llm

import "fmt"

// UpstreamServiceError is the single failure type for completion-service
// calls. It wraps the provider's HTTP status and message; transport
// failures carry a zero status code.
type UpstreamServiceError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("completion service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("completion service error (status %d): %s", e.StatusCode, e.Message)
}
