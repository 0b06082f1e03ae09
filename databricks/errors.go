package databricks

import "fmt"

// APIError is returned when the Databricks API answers with a non-2xx status.
// 4xx statuses are caller mistakes and are never retried; 5xx statuses are
// transient at the platform's discretion and eligible for retry on GETs.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("databricks API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("databricks API error (status %d)", e.StatusCode)
}

// Retryable reports whether the failure is worth retrying on an idempotent request.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

// TransportError is returned when the request never completed: connection
// refused, DNS failure, or a timeout. Timeout distinguishes the timeout subtype.
type TransportError struct {
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("databricks request timed out: %v", e.Err)
	}
	return fmt.Sprintf("databricks request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
