package watch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/check"
	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/nav"
)

func runCheck(t *testing.T, sidebar []nav.Entry, slugs ...string) (*check.Result, error) {
	t.Helper()
	cfg := &config.Config{Site: config.SiteConfig{Title: "Loggator"}, Sidebar: sidebar}
	cfg.ApplyDefaults()
	svc := check.NewService(check.WithLoader(func(context.Context, config.ContentConfig) (*content.Snapshot, error) {
		return content.FromSlugs(slugs...), nil
	}))
	return svc.Run(context.Background(), cfg)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouter_BeforeFirstRun(t *testing.T) {
	router := NewRouter(&State{}, nil, "/metrics")

	w := get(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"starting","runs":0}`, w.Body.String())

	w = get(t, router, "/report")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	w = get(t, router, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Report(t *testing.T) {
	state := &State{}
	state.Set(runCheck(t, []nav.Entry{
		nav.GroupEntry("Start", nav.ItemEntry("Intro", "intro"), nav.ItemEntry("Chat", "api/chat")),
	}, "intro", "legacy/old-page"))
	router := NewRouter(state, nil, "/metrics")

	w := get(t, router, "/report")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{"intro"}, body["resolved"])
	assert.Equal(t, []any{"api/chat"}, body["missing"])
	assert.Equal(t, []any{"legacy/old-page"}, body["orphaned"])

	w = get(t, router, "/report?format=text")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "✗ api/chat")

	w = get(t, router, "/report?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, router, "/tree")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"label":"Start","items":[{"label":"Intro","slug":"intro"},{"label":"Chat","slug":"api/chat"}]}]`, w.Body.String())

	w = get(t, router, "/healthz")
	var health healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Runs)
	assert.Equal(t, "warning", health.Outcome)
	assert.NotEmpty(t, health.RunID)
}

func TestRouter_StructuralError(t *testing.T) {
	state := &State{}
	state.Set(runCheck(t, []nav.Entry{nav.GroupEntry("Empty")}))
	router := NewRouter(state, nil, "/metrics")

	w := get(t, router, "/report")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `empty group \"Empty\"`)

	w = get(t, router, "/healthz")
	var health healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "invalid", health.Outcome)
	assert.Contains(t, health.Error, "empty group")
}

func TestRouter_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("sitenav_up 1\n"))
	})
	router := NewRouter(&State{}, metrics, "/custom-metrics")

	w := get(t, router, "/custom-metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sitenav_up 1\n", w.Body.String())
}
