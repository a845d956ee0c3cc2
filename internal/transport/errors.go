package transport

import "fmt"

// FatalCode is the remote error code signalling an unrecoverable auth
// mismatch: the process must terminate.
const FatalCode = 4113

// InsufficientFuelCode triggers a CRUISE→DRIFT flight-mode fallback in the
// navigate executor rather than a hard failure.
const InsufficientFuelCode = 4203

// FatalError wraps error.code == 4113. Callers that see this via errors.As
// must terminate the process; it is never retried.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal remote error (code %d): %s", FatalCode, e.Message)
}

// APIError is a parsed `error` object from a non-2xx JSON response that is
// not the fatal code. The executor inspects Code to branch on known logical
// errors (e.g. InsufficientFuelCode); unknown codes are just logged.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote error (code %d): %s", e.Code, e.Message)
}

// retryableError marks a transport-layer failure (network, 429, 5xx) the
// request loop should retry, distinct from a non-retryable 4xx APIError.
type retryableError struct {
	message    string
	retryAfter int // seconds, 0 if absent
}

func (e *retryableError) Error() string { return e.message }
