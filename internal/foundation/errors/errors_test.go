package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder fields", func(t *testing.T) {
		err := ConfigError("invalid configuration").
			WithContext("file", "sitenav.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "config: invalid configuration", err.Error())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "sitenav.yaml", file)
	})

	t.Run("detection through wrapping", func(t *testing.T) {
		err := NavigationError("invalid slug").Build()
		wrapped := fmt.Errorf("loading sidebar: %w", err)

		classified, ok := AsClassified(wrapped)
		require.True(t, ok)
		assert.Same(t, err, classified)
		assert.True(t, HasCategory(wrapped, CategoryNavigation))
		assert.False(t, HasCategory(wrapped, CategoryConfig))
		assert.True(t, classified.IsFatal())
	})

	t.Run("unclassified", func(t *testing.T) {
		_, ok := AsClassified(stderrors.New("plain"))
		assert.False(t, ok)
		assert.False(t, HasCategory(stderrors.New("plain"), CategoryInternal))
	})

	t.Run("is compares category and message", func(t *testing.T) {
		a := ContentError("missing").WithContext("slug", "a").Build()
		b := ContentError("missing").WithContext("slug", "b").Build()
		assert.ErrorIs(t, a, b)
		assert.NotErrorIs(t, a, NavigationError("missing").Build())
	})
}

func TestDefaultSeverities(t *testing.T) {
	assert.Equal(t, SeverityFatal, NavigationError("x").Build().Severity())
	assert.Equal(t, SeverityError, ContentError("x").Build().Severity())
	assert.Equal(t, SeverityError, GitError("x").Build().Severity())
	assert.Equal(t, SeverityFatal, RuntimeError("x").Build().Severity())
	assert.Equal(t, SeverityError, NewError(ErrorCategory("custom"), "x").Build().Severity())
}

func TestErrorBuilder(t *testing.T) {
	cause := stderrors.New("disk full")
	b := WrapError(cause, CategoryFileSystem, "write index").
		Warning().
		WithContext("path", "/tmp/x")
	err := b.Build()

	assert.Equal(t, SeverityWarning, err.Severity())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "filesystem: write index: disk full", err.Error())

	// The builder keeps working after Build without touching earlier errors.
	second := b.WithContext("size", 3).Build()
	assert.NotContains(t, err.Context(), "size")
	assert.Equal(t, 3, second.Context()["size"])

	extended := err.WithContext("attempt", 2)
	assert.NotContains(t, err.Context(), "attempt", "WithContext must not mutate the receiver")
	assert.Equal(t, 2, extended.Context()["attempt"])
	assert.Equal(t, "/tmp/x", extended.Context()["path"])
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"navigation", NavigationError("bad").Build(), ExitStructural},
		{"validation", ValidationError("bad").Build(), ExitStructural},
		{"content", ContentError("missing").Build(), ExitMissing},
		{"config", ConfigError("bad").Build(), ExitConfig},
		{"git", GitError("clone").Build(), ExitExternal},
		{"database", DatabaseError("open").Build(), ExitExternal},
		{"network", NetworkError("publish").Build(), ExitExternal},
		{"filesystem", FileSystemError("stat").Build(), ExitRuntime},
		{"runtime", RuntimeError("listen").Build(), ExitRuntime},
		{"not found", NewError(CategoryNotFound, "no report").Build(), ExitGeneral},
		{"internal", InternalError("boom").Build(), ExitInternal},
		{"unknown category", NewError(ErrorCategory("custom"), "x").Build(), ExitGeneral},
		{"wrapped", fmt.Errorf("ctx: %w", ConfigError("bad").Build()), ExitConfig},
		{"plain", stderrors.New("x"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	assert.Empty(t, quiet.FormatError(nil))
	assert.Equal(t, "Error: bad sidebar", quiet.FormatError(NavigationError("bad sidebar").Build()))
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("x").Build()))
	assert.Equal(t, "internal: x", verbose.FormatError(InternalError("x").Build()))
	assert.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)

	code := adapter.Report(&out, NavigationError("empty group").WithContext("label", "API").Build())
	assert.Equal(t, ExitStructural, code)
	assert.Equal(t, "Error: empty group\n", out.String())
	assert.Contains(t, logs.String(), "label=API")

	// Non-fatal errors are only logged in verbose mode.
	logs.Reset()
	out.Reset()
	code = adapter.Report(&out, ContentError("1 navigation entry references missing content").Build())
	assert.Equal(t, ExitMissing, code)
	assert.Empty(t, logs.String())
	assert.NotEmpty(t, out.String())
}

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	assert.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	assert.Equal(t, http.StatusBadRequest, adapter.StatusCodeFor(ValidationError("x").Build()))
	assert.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(NavigationError("x").Build()))
	assert.Equal(t, http.StatusBadGateway, adapter.StatusCodeFor(NetworkError("x").Build()))
	assert.Equal(t, http.StatusServiceUnavailable, adapter.StatusCodeFor(RuntimeError("x").Build()))
	assert.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(stderrors.New("x")))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	adapter.WriteErrorResponse(rec, req, NewError(CategoryNotFound, "no report yet").WithContext("site", "Loggator").Build())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"no report yet","code":"not_found","details":{"site":"Loggator"}}`, rec.Body.String())
}
