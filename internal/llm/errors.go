package llm

import "errors"

// Failure code constants for classifying remote completion errors. The
// resolver only needs to know that a call failed; the codes exist for
// diagnostic logging.
const (
	CodeNotConfigured = "not_configured"
	CodeNetwork       = "network_error"
	CodeProtocol      = "protocol_error"
	CodeTimeout       = "timeout"
	CodeEmptyResponse = "empty_response"
)

// ClientError is a typed failure from the remote completion endpoint.
type ClientError struct {
	Code    string // One of the Code* constants.
	Message string
	Err     error // Underlying error (may be nil).
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func newClientError(code, message string, err error) *ClientError {
	return &ClientError{Code: code, Message: message, Err: err}
}

// FailureCode extracts the classification code from an error, or "unknown".
func FailureCode(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return "unknown"
}

// IsNotConfigured reports whether err means no API key is configured.
func IsNotConfigured(err error) bool {
	return FailureCode(err) == CodeNotConfigured
}
