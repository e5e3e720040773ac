package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySite       = "site"
	KeyLabel      = "label"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeySource     = "source"
	KeyPolicy     = "policy"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyResolved   = "resolved"
	KeyMissing    = "missing"
	KeyOrphaned   = "orphaned"
	KeySubject    = "subject"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Site(title string) slog.Attr     { return slog.String(KeySite, title) }
func Label(l string) slog.Attr        { return slog.String(KeyLabel, l) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Resolved(n int) slog.Attr        { return slog.Int(KeyResolved, n) }
func Missing(n int) slog.Attr         { return slog.Int(KeyMissing, n) }
func Orphaned(n int) slog.Attr        { return slog.Int(KeyOrphaned, n) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
