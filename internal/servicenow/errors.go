package servicenow

import "fmt"

// APIError is returned when the Table API answers with a 4xx/5xx status.
// Message and Detail carry the remote error object's fields when the body
// was parseable JSON; otherwise Message holds the raw status and body text.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ServiceNow API Error: %s - %s", e.Message, e.Detail)
	}
	return fmt.Sprintf("ServiceNow API Error: %s", e.Message)
}

// ConnectionError wraps a transport-level failure reaching the instance
// (connection refused, timeout, DNS).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to ServiceNow: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// UnexpectedError covers anything else that goes wrong during a call,
// including malformed JSON in a success body.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error during ServiceNow request: %T - %v", e.Err, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
