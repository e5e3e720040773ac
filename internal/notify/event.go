// Package notify publishes check reports to downstream consumers.
package notify

import (
	"context"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitenav/internal/resolve"
)

// ReportEvent is published after every completed check run.
type ReportEvent struct {
	RunID      string          `json:"run_id"`
	Site       string          `json:"site"`
	Outcome    string          `json:"outcome"`     // clean|warning|failed
	Policy     string          `json:"policy"`      // policy the outcome was judged under
	Timestamp  time.Time       `json:"timestamp"`   // set by the publisher
	DurationMS int64           `json:"duration_ms"` // wall time of the run
	Report     *resolve.Report `json:"report"`
}

// Publisher delivers report events. Check runs accept a nil Publisher.
type Publisher interface {
	Publish(ctx context.Context, event *ReportEvent) error
	Close() error
}

// SiteKey maps a site title onto a key valid in a JetStream KV bucket.
// Characters outside [A-Za-z0-9_-] become underscores.
func SiteKey(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return "default"
	}
	var b strings.Builder
	for _, r := range site {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
