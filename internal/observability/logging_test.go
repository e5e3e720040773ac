package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextChaining(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	ctx = WithSite(ctx, "Loggator")
	ctx = WithStage(ctx, "resolve")

	lc := GetContext(ctx)
	assert.Equal(t, "run-123", lc.RunID)
	assert.Equal(t, "Loggator", lc.Site)
	assert.Equal(t, "resolve", lc.Stage)
}

func TestOverwriteContextValue(t *testing.T) {
	ctx := WithStage(context.Background(), "load")
	ctx = WithStage(ctx, "build")
	assert.Equal(t, "build", GetContext(ctx).Stage)
}

func TestEmptyContext(t *testing.T) {
	assert.Equal(t, LogContext{}, GetContext(context.Background()))
}

func TestInfoContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithSite(WithRunID(context.Background(), "run-9"), "Loggator")
	InfoContext(ctx, "check finished", slog.Int("missing", 2))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "check finished", record["msg"])
	assert.Equal(t, "run-9", record["run_id"])
	assert.Equal(t, "Loggator", record["site"])
	assert.InDelta(t, 2, record["missing"], 0)
	assert.NotContains(t, record, "stage")
}

func TestDebugContextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	DebugContext(context.Background(), "hidden")
	WarnContext(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
