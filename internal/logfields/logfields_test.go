package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Site", KeySite, "Loggator", Site("Loggator")},
		{"Label", KeyLabel, "Overview", Label("Overview")},
		{"Slug", KeySlug, "api/chat", Slug("api/chat")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Source", KeySource, "dir", Source("dir")},
		{"Policy", KeyPolicy, "strict", Policy("strict")},
		{"Stage", KeyStage, "resolve", Stage("resolve")},
		{"Subject", KeySubject, "sitenav.reports", Subject("sitenav.reports")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.attrKey, c.attr.Key)
			assert.Equal(t, c.attrVal, c.attr.Value.String())
		})
	}
}

func TestCountHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Resolved(3).Value.Int64())
	assert.Equal(t, int64(1), Missing(1).Value.Int64())
	assert.Equal(t, int64(0), Orphaned(0).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
