package blog

// ValidationError reports missing or malformed input. Handlers map it
// to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(message string) *ValidationError {
	return &ValidationError{Message: message}
}
