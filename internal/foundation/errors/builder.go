package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a builder for category with its default severity.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: lookup(category).severity,
		message:  message,
	}}
}

// WrapError starts a builder whose cause is err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.with(key, value)
	return b
}

func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }
func (b *ErrorBuilder) Info() *ErrorBuilder    { return b.WithSeverity(SeverityInfo) }

// Build returns the error. The builder may be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

// Shorthands for the categories sitenav raises.

func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func NavigationError(message string) *ErrorBuilder { return NewError(CategoryNavigation, message) }
func ContentError(message string) *ErrorBuilder    { return NewError(CategoryContent, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func GitError(message string) *ErrorBuilder        { return NewError(CategoryGit, message) }
func DatabaseError(message string) *ErrorBuilder   { return NewError(CategoryDatabase, message) }
func NetworkError(message string) *ErrorBuilder    { return NewError(CategoryNetwork, message) }
func RuntimeError(message string) *ErrorBuilder    { return NewError(CategoryRuntime, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }
