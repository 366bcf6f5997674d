package connector

import (
	"errors"
	"fmt"
)

var (
	ErrNoServiceURL   = errors.New("activity has no service url")
	ErrNoConversation = errors.New("activity has no conversation id")
)

// APIError is returned when the connector answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("connector returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}
