package persistence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/emersion/go-webdav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

func newWebDAVServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	srv := httptest.NewServer(&webdav.Handler{FileSystem: webdav.LocalFileSystem(dir)})
	t.Cleanup(srv.Close)
	return srv, dir
}

func TestWebDAVSlot_Contract(t *testing.T) {
	srv, dir := newWebDAVServer(t)

	slot, err := NewWebDAVSlot(context.Background(), srv.Client(), srv.URL, "/tasklist/sync/tasks.json", WebDAVAuth{})
	require.NoError(t, err)

	testSlotContract(t, slot)
	assert.FileExists(t, filepath.Join(dir, "tasklist", "sync", "tasks.json"))
}

func TestWebDAVSlot_WithRepository(t *testing.T) {
	ctx := context.Background()
	srv, _ := newWebDAVServer(t)

	slot, err := NewWebDAVSlot(ctx, srv.Client(), srv.URL, "tasks.json", WebDAVAuth{})
	require.NoError(t, err)
	repo := NewSlotRepository(slot, nil)

	state := sampleState(t)
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.Equal(loaded))
}

func TestWebDAVSlot_BearerToken(t *testing.T) {
	dir := t.TempDir()
	dav := &webdav.Handler{FileSystem: webdav.LocalFileSystem(dir)}

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		dav.ServeHTTP(w, r)
	}))
	defer srv.Close()

	slot, err := NewWebDAVSlot(context.Background(), srv.Client(), srv.URL, "tasks.json", WebDAVAuth{Token: "s3cret"})
	require.NoError(t, err)

	_, err = slot.Read(context.Background())
	assert.ErrorIs(t, err, task.ErrSlotNotFound)
	assert.Equal(t, "Bearer s3cret", gotAuth)
}

func TestWebDAVSlot_BasicAuth(t *testing.T) {
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		http.NotFound(w, r)
	}))
	defer srv.Close()

	slot, err := NewWebDAVSlot(context.Background(), srv.Client(), srv.URL, "tasks.json", WebDAVAuth{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = slot.Read(context.Background())
	assert.ErrorIs(t, err, task.ErrSlotNotFound)
	assert.Equal(t, "ada", user)
	assert.Equal(t, "pw", pass)
}

func TestWebDAVSlot_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	slot, err := NewWebDAVSlot(context.Background(), srv.Client(), srv.URL, "tasks.json", WebDAVAuth{})
	require.NoError(t, err)

	_, err = slot.Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, task.ErrSlotNotFound)
}

func TestNewWebDAVSlot_Validation(t *testing.T) {
	_, err := NewWebDAVSlot(context.Background(), nil, "", "tasks.json", WebDAVAuth{})
	assert.Error(t, err)

	_, err = NewWebDAVSlot(context.Background(), nil, "http://localhost", "/dir/", WebDAVAuth{})
	assert.Error(t, err)
}
