package errors

import (
	stderrors "errors"
)

// ClassifiedError is an error with a category, a severity and structured
// context. Values are immutable once built.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	s := string(e.category) + ": " + e.message
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }

// Message returns the message without category or cause.
func (e *ClassifiedError) Message() string { return e.message }

// Context returns the structured details. Callers must not modify it.
func (e *ClassifiedError) Context() ErrorContext { return e.context }

// WithContext returns a copy of e with key added to its context.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.context = e.context.with(key, value)
	return &cp
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in err's chain has
// category c.
func HasCategory(err error, c ErrorCategory) bool {
	classified, ok := AsClassified(err)
	return ok && classified.category == c
}
