package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/render"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticUpdates []model.Update

func (s staticUpdates) Updates(context.Context) ([]model.Update, error) {
	return s, nil
}

var snapshot = staticUpdates{
	{ID: "1", Source: "Meta", Date: "2024-01-10", Title: "A", URL: "https://a"},
	{ID: "2", Source: "Google", Date: "2024-02-01", Title: "B", URL: "https://b"},
}

func newTestServer(t *testing.T, store UpdateStorage) *Server {
	t.Helper()

	r, err := render.NewRenderer(render.Meta{Title: "Ad Platform Updates"})
	require.NoError(t, err)

	s := New(store, r)
	require.NoError(t, s.Reload(context.Background()))

	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func cardTitles(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	var titles []string
	doc.Find("article.card h2 a").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	return titles
}

func TestServer_Index(t *testing.T) {
	s := newTestServer(t, snapshot)

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Equal(t, []string{"B", "A"}, cardTitles(t, rec))
}

func TestServer_IndexFiltered(t *testing.T) {
	s := newTestServer(t, snapshot)

	assert.Equal(t, []string{"A"}, cardTitles(t, get(t, s, "/?source=Meta")))
	assert.Empty(t, cardTitles(t, get(t, s, "/?source=LINE")))
	assert.Contains(t, get(t, s, "/?source=").Body.String(), "No updates found for this selection.")
}

func TestServer_UpdatesJSON(t *testing.T) {
	s := newTestServer(t, snapshot)

	rec := get(t, s, "/updates.json?source=Google")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Selected string         `json:"selected"`
		Sources  []string       `json:"sources"`
		Updates  []model.Update `json:"updates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Google", body.Selected)
	assert.Equal(t, []string{"Meta", "Google"}, body.Sources)
	require.Len(t, body.Updates, 1)
	assert.Equal(t, model.UpdateID("2"), body.Updates[0].ID)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, snapshot)

	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_WatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.json")
	store := storage.NewUpdateFileStorage(path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Save(ctx, snapshot[:1]))
	s := newTestServer(t, store)
	assert.Equal(t, []string{"A"}, cardTitles(t, get(t, s, "/")))

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, path) }()

	// Дать watcher время подписаться на каталог
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, store.Save(ctx, snapshot))

	assert.Eventually(t, func() bool {
		return len(cardTitles(t, get(t, s, "/"))) == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestServer_WatchMissingDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "updates.json")
	store := storage.NewUpdateFileStorage(path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestServer(t, store)
	assert.Empty(t, cardTitles(t, get(t, s, "/")))

	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, path) }()

	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("watch stopped early: %v", err)
	default:
	}

	require.NoError(t, store.Save(ctx, snapshot))

	assert.Eventually(t, func() bool {
		return len(cardTitles(t, get(t, s, "/"))) == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := newTestServer(t, snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
