package llm

import (
	"fmt"
	"net/http"

	"impactcompare/internal/domain"
)

// BackendError is a non-success answer from a model backend.
type BackendError struct {
	Backend    string // "vision" or "reasoning"
	Provider   string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	title := "Reasoning"
	if e.Backend == backendVision {
		title = "Vision"
	}
	return fmt.Sprintf("%s analysis failed: %d", title, e.StatusCode)
}

// Unwrap exposes the exhaustion conditions callers distinguish.
func (e *BackendError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusPaymentRequired:
		return domain.ErrQuotaExhausted
	}
	return nil
}

const (
	backendVision    = "vision"
	backendReasoning = "reasoning"
)
