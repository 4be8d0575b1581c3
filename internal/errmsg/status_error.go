package errmsg

var EmptyStatusError = NewStatusError(0, "")

// StatusError pairs an HTTP status code with the message returned to callers.
// Handlers compare against the catalog values in this package, so messages
// are part of the API contract and covered by the test suites.
type StatusError struct {
	StatusCode int
	Message    string
}

func NewStatusError(statusCode int, message string) StatusError {
	return StatusError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func (se StatusError) Error() string {
	return se.Message
}

// WithCause appends the underlying error to the message, keeping the status.
func (se StatusError) WithCause(err error) StatusError {
	if err == nil {
		return se
	}
	return StatusError{
		StatusCode: se.StatusCode,
		Message:    se.Message + ": " + err.Error(),
	}
}
