package resolve

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Finding messages. MissingContentWarning and OrphanedContentNotice findings
// carry these as their classified message.
const (
	MissingContentWarning = "navigation entry references missing content"
	OrphanedContentNotice = "content is not reachable from navigation"
)

// Findings lists one classified finding per missing slug (warning) followed
// by one per orphaned slug (info), each group sorted by slug.
func (r *Report) Findings() []*ferrors.ClassifiedError {
	out := make([]*ferrors.ClassifiedError, 0, r.Missing.Len()+r.Orphaned.Len())
	for _, slug := range r.SortedMissing() {
		out = append(out, ferrors.ContentError(MissingContentWarning).
			Warning().WithContext("slug", slug).Build())
	}
	for _, slug := range r.SortedOrphaned() {
		out = append(out, ferrors.ContentError(OrphanedContentNotice).
			Info().WithContext("slug", slug).Build())
	}
	return out
}

// Policy decides whether a report fails the build.
type Policy string

const (
	// PolicyLenient only warns about missing content.
	PolicyLenient Policy = "lenient"
	// PolicyStrict fails the build when any content is missing.
	PolicyStrict Policy = "strict"
)

// ParsePolicy accepts "lenient", "strict" or "" (lenient).
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyLenient:
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", ferrors.ConfigError(fmt.Sprintf("unknown check policy %q", s)).
		WithContext("allowed", "lenient, strict").Build()
}

// Evaluate returns a classified content error when p rejects r. Orphaned
// content never fails a build.
func (p Policy) Evaluate(r *Report) error {
	if p != PolicyStrict || r.Missing.Len() == 0 {
		return nil
	}
	missing := r.SortedMissing()
	return ferrors.ContentError(fmt.Sprintf("%d navigation entr%s missing content: %s",
		len(missing), plural(len(missing), "y references", "ies reference"), strings.Join(missing, ", "))).
		WithSeverity(ferrors.SeverityError).
		WithContext("missing", missing).
		Build()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
