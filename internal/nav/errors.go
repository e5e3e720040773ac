package nav

import (
	"errors"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// ErrStructural matches any *StructuralError via errors.Is.
var ErrStructural = errors.New("structural error")

// Reason identifies which structural rule a sidebar violated.
type Reason string

const (
	ReasonEmptyLabel     Reason = "empty_label"
	ReasonDuplicateLabel Reason = "duplicate_label"
	ReasonEmptyGroup     Reason = "empty_group"
	ReasonInvalidSlug    Reason = "invalid_slug"
	ReasonDuplicateSlug  Reason = "duplicate_slug"
	ReasonTopLevelItem   Reason = "top_level_item"
	ReasonMalformedEntry Reason = "malformed_entry"
)

// StructuralError reports a malformed navigation tree. It is always fatal.
type StructuralError struct {
	Reason Reason
	Path   string
	Label  string
	// OtherLabel is the first label referencing a duplicated slug.
	OtherLabel string
	Slug       string
	// Suggestion is a normalized slug offered for ReasonInvalidSlug.
	Suggestion string

	msg string
}

func newStructuralError(reason Reason, msg string) *StructuralError {
	return &StructuralError{Reason: reason, msg: msg}
}

func (e *StructuralError) withPath(p string) *StructuralError  { e.Path = p; return e }
func (e *StructuralError) withLabel(l string) *StructuralError { e.Label = l; return e }
func (e *StructuralError) withSlug(s string) *StructuralError  { e.Slug = s; return e }

func (e *StructuralError) Error() string {
	return "structural error: " + e.msg
}

// Message returns the violation without the "structural error" prefix.
func (e *StructuralError) Message() string { return e.msg }

// Is matches ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// Unwrap exposes the classified form so callers can route on category.
func (e *StructuralError) Unwrap() error {
	b := ferrors.NavigationError(e.msg).WithContext("reason", string(e.Reason))
	if e.Path != "" {
		b = b.WithContext("path", e.Path)
	}
	if e.Label != "" {
		b = b.WithContext("label", e.Label)
	}
	if e.Slug != "" {
		b = b.WithContext("slug", e.Slug)
	}
	if e.Suggestion != "" {
		b = b.WithContext("suggestion", e.Suggestion)
	}
	return b.Build()
}
