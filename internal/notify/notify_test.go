package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/config"
	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/resolve"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

var _ Publisher = (*NATSPublisher)(nil)

func TestSiteKey(t *testing.T) {
	tests := map[string]string{
		"Loggator":          "Loggator",
		"  My Docs v2.0 ":   "My_Docs_v2_0",
		"":                  "default",
		"docs/internal-api": "docs_internal-api",
	}
	for in, want := range tests {
		assert.Equal(t, want, SiteKey(in), "input %q", in)
	}
}

func TestReportEvent_JSON(t *testing.T) {
	event := &ReportEvent{
		RunID:      "run-1",
		Site:       "Loggator",
		Outcome:    "warning",
		Policy:     "lenient",
		Timestamp:  time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		DurationMS: 42,
		Report: &resolve.Report{
			Resolved: sets.New("introduction"),
			Missing:  sets.New("api/chat"),
			Orphaned: sets.New[string](),
		},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"run_id": "run-1",
		"site": "Loggator",
		"outcome": "warning",
		"policy": "lenient",
		"timestamp": "2026-10-01T12:00:00Z",
		"duration_ms": 42,
		"report": {"resolved": ["introduction"], "missing": ["api/chat"], "orphaned": []}
	}`, string(data))

	var decoded ReportEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, event.Report.Equal(decoded.Report))
}

func TestNewNATSPublisher_NilConfig(t *testing.T) {
	_, err := NewNATSPublisher(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher(context.Background(), &config.NotifyConfig{
		NATSURL:  "nats://127.0.0.1:1",
		Subject:  "sitenav.reports",
		KVBucket: "sitenav_reports",
	})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
}
