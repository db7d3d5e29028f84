package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServesSiteAfterBuild(t *testing.T) {
	dir := t.TempDir()
	build := func(context.Context) error {
		return os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Home</h1>"), 0o600)
	}
	s := New(dir, build, Options{})

	rec := get(t, s.Handler(), "/healthz")
	var h Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "starting", h.Status)

	require.NoError(t, s.Rebuild(context.Background()))

	rec = get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Home</h1>")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = get(t, s.Handler(), "/healthz")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 1, h.Builds)
	assert.True(t, h.HasGoodBuild)
}

func TestFailedBuildIsReported(t *testing.T) {
	dir := t.TempDir()
	fail := errors.InputError("cannot read doclets").WithContext("path", "doclets.json").Build()
	s := New(dir, func(context.Context) error { return fail }, Options{})
	require.Error(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var h Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "error", h.Status)
	assert.Contains(t, h.Error, "cannot read doclets")

	rec = get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"input"`)
}

func TestFailedRebuildKeepsServingLastGoodSite(t *testing.T) {
	dir := t.TempDir()
	var fail atomic.Bool
	build := func(context.Context) error {
		if fail.Load() {
			return errors.GraphError("cycle").Build()
		}
		return os.WriteFile(filepath.Join(dir, "index.html"), []byte("ok"), 0o600)
	}
	s := New(dir, build, Options{})
	require.NoError(t, s.Rebuild(context.Background()))
	fail.Store(true)
	require.Error(t, s.Rebuild(context.Background()))

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s.Handler(), "/healthz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncPageWrite(false)

	s := New(t.TempDir(), func(context.Context) error { return nil }, Options{Registry: reg})
	resp := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "page_writes_total")

	noMetrics := New(t.TempDir(), func(context.Context) error { return nil }, Options{})
	require.NoError(t, noMetrics.Rebuild(context.Background()))
	assert.Equal(t, http.StatusNotFound, get(t, noMetrics.Handler(), "/metrics").Code)
}

func TestShouldIgnoreEvent(t *testing.T) {
	for path, want := range map[string]bool{
		"/x/doclets.json":      false,
		"/x/.env":              false,
		"/x/doclets.json~":     true,
		"/x/.doclets.json.swp": true,
		"/x/.#README.md":       true,
		"/x/#README.md#":       true,
		"/x/.DS_Store":         true,
	} {
		assert.Equal(t, want, shouldIgnoreEvent(path), path)
	}
}

func TestRelevantEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doclets.json")
	targets, err := watchTargets([]string{target, "-", ""})
	require.NoError(t, err)
	assert.Len(t, targets, 1)

	assert.True(t, relevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Write}, targets))
	assert.True(t, relevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Create}, targets))
	assert.False(t, relevantEvent(fsnotify.Event{Name: target, Op: fsnotify.Chmod}, targets))
	assert.False(t, relevantEvent(fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}, targets))
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	req, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()
	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced request never fired")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatchRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doclets.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0o600))

	var builds atomic.Int32
	s := New(dir, func(context.Context) error {
		builds.Add(1)
		return nil
	}, Options{WatchPaths: []string{input}, Debounce: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.watch(ctx) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(input, []byte(`[{"longname":"a"}]`), 0o600)
		return builds.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
