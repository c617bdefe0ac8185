package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/mediatheque/internal/artwork"
	"github.com/vmunix/mediatheque/internal/auth"
	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/internal/migrations"
	"github.com/vmunix/mediatheque/internal/progress"
	"github.com/vmunix/mediatheque/internal/source"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db))
	return db
}

// newTestServer builds a server over a temp media tree.
func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{
		"films/Amelie.2001.mkv",
		"films/Matrix 1.mp4",
		"films/Matrix 2.mp4",
		"series/Breaking.Bad.S01E01.mp4",
	} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("fake media "+f), 0o644))
	}

	src := source.NewLocal(root)
	cat := catalog.New(src)
	srv := New(cat, src, opts...)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, root
}

func getJSON(t *testing.T, url string, dest any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

func TestListCategories(t *testing.T) {
	ts, _ := newTestServer(t)

	var out []map[string]string
	resp := getJSON(t, ts.URL+"/api/v1/categories", &out)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 3)
	assert.Equal(t, "films", out[0]["name"])
	assert.Equal(t, "movie", out[0]["kind"])
}

func TestListCategory(t *testing.T) {
	ts, _ := newTestServer(t)

	var items []catalog.Item
	resp := getJSON(t, ts.URL+"/api/v1/categories/films", &items)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Matrix 1/2 grouped, Amelie on its own.
	require.Len(t, items, 2)
	assert.Equal(t, "Amelie", items[0].Title)
	assert.True(t, items[1].IsGroup)
	assert.Equal(t, 2, items[1].EpisodeCount)
}

func TestListCategory_Unknown(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/v1/categories/books", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearch(t *testing.T) {
	ts, _ := newTestServer(t)

	var results []catalog.MediaItem
	resp := getJSON(t, ts.URL+"/api/v1/search?q=amelie", &results)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, results, 1)
	assert.Equal(t, "Amelie", results[0].Title)

	resp = getJSON(t, ts.URL+"/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStream(t *testing.T) {
	ts, root := newTestServer(t)
	path := filepath.Join(root, "films", "Amelie.2001.mkv")

	resp := getJSON(t, ts.URL+"/api/v1/stream?path="+path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
}

func TestStream_RangeRequest(t *testing.T) {
	ts, root := newTestServer(t)
	path := filepath.Join(root, "films", "Amelie.2001.mkv")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/stream?path="+path, nil)
	require.NoError(t, err)
	req.Header.Set("Range", "bytes=0-3")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "4", resp.Header.Get("Content-Length"))
}

func TestStream_NotFound(t *testing.T) {
	ts, root := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/v1/stream?path="+filepath.Join(root, "films", "nope.mkv"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/api/v1/stream", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestArtwork(t *testing.T) {
	store := artwork.NewMemoryStore()
	ref := store.Put([]byte("\x89PNG\r\n\x1a\nfake"))

	ts, _ := newTestServer(t, WithArtwork(store))

	resp := getJSON(t, ts.URL+"/api/v1/artwork/"+ref, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/api/v1/artwork/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArtwork_NotConfigured(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/v1/artwork/abc", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestProgressLifecycle(t *testing.T) {
	store := progress.NewStore(setupTestDB(t))
	ts, _ := newTestServer(t, WithProgress(store))

	body := bytes.NewBufferString(`{"position": 120, "duration": 7200}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/progress/film_amelie_abc123", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rec progress.Record
	resp = getJSON(t, ts.URL+"/api/v1/progress/film_amelie_abc123", &rec)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(120), rec.Position)
	assert.Equal(t, anonymousUser, rec.UserID)

	var records []progress.Record
	resp = getJSON(t, ts.URL+"/api/v1/progress", &records)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, records, 1)

	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/progress/film_amelie_abc123", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/api/v1/progress/film_amelie_abc123", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProgress_NotConfigured(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/v1/progress", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestProgress_RejectsNegative(t *testing.T) {
	store := progress.NewStore(setupTestDB(t))
	ts, _ := newTestServer(t, WithProgress(store))

	body := bytes.NewBufferString(`{"position": -1, "duration": 100}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/progress/item", body)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	db := setupTestDB(t)
	users := auth.NewUserStore(db)
	_, err := users.Create("alice", "s3cret")
	require.NoError(t, err)
	tokens := auth.NewService([]byte("test-secret-test-secret"), time.Hour)

	ts, _ := newTestServer(t, WithAuth(users, tokens))

	// Unauthenticated requests are rejected.
	resp := getJSON(t, ts.URL+"/api/v1/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong password is rejected.
	resp, err = http.Post(ts.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"username": "alice", "password": "wrong"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login and use the token.
	resp, err = http.Post(ts.URL+"/api/v1/auth/login", "application/json",
		bytes.NewBufferString(`{"username": "alice", "password": "s3cret"}`))
	require.NoError(t, err)
	var login loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	require.NotEmpty(t, login.Token)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/categories", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatus(t *testing.T) {
	ts, _ := newTestServer(t)

	var status map[string]any
	resp := getJSON(t, ts.URL+"/api/v1/status", &status)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, false, status["auth"])
}

func TestRefresh(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
