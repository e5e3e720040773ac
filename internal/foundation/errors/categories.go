package errors

import (
	"log/slog"
	"net/http"
)

// ErrorCategory routes an error to an exit code and an HTTP status.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// CategoryNavigation marks a malformed sidebar.
	CategoryNavigation ErrorCategory = "navigation"
	// CategoryContent marks content findings such as missing pages.
	CategoryContent    ErrorCategory = "content"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryDatabase   ErrorCategory = "database"
	CategoryNetwork    ErrorCategory = "network"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // aborts the run
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // reported, run continues
	SeverityInfo    ErrorSeverity = "info"
)

// level maps a severity onto slog.
func (s ErrorSeverity) level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// categoryInfo is how a category surfaces at the process and HTTP edges.
type categoryInfo struct {
	exit     int
	status   int
	severity ErrorSeverity
}

var categoryTable = map[ErrorCategory]categoryInfo{
	CategoryConfig:     {ExitConfig, http.StatusBadRequest, SeverityFatal},
	CategoryValidation: {ExitStructural, http.StatusBadRequest, SeverityFatal},
	CategoryNotFound:   {ExitGeneral, http.StatusNotFound, SeverityError},
	CategoryNavigation: {ExitStructural, http.StatusUnprocessableEntity, SeverityFatal},
	CategoryContent:    {ExitMissing, http.StatusUnprocessableEntity, SeverityError},
	CategoryFileSystem: {ExitRuntime, http.StatusInternalServerError, SeverityError},
	CategoryGit:        {ExitExternal, http.StatusBadGateway, SeverityError},
	CategoryDatabase:   {ExitExternal, http.StatusBadGateway, SeverityError},
	CategoryNetwork:    {ExitExternal, http.StatusBadGateway, SeverityError},
	CategoryRuntime:    {ExitRuntime, http.StatusServiceUnavailable, SeverityFatal},
	CategoryInternal:   {ExitInternal, http.StatusInternalServerError, SeverityFatal},
}

func lookup(c ErrorCategory) categoryInfo {
	if info, ok := categoryTable[c]; ok {
		return info
	}
	return categoryInfo{ExitGeneral, http.StatusInternalServerError, SeverityError}
}

// ErrorContext carries structured details reported alongside the message.
type ErrorContext map[string]any

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// with returns a copy of c holding key.
func (c ErrorContext) with(key string, value any) ErrorContext {
	out := make(ErrorContext, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}
