// Package errors classifies sitenav failures.
//
// Every error raised by sitenav packages is a *ClassifiedError built with the
// fluent builder. The category decides the CLI exit code and the HTTP status
// of the watch server; the severity decides the log level.
//
//	err := errors.NavigationError("invalid slug").
//		WithContext("slug", slug).
//		Build()
package errors
