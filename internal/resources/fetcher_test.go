package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNewResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tree.png" {
			w.Write([]byte("PNGDATA"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := project.New("game")
	require.NoError(t, p.AddResource(project.Resource{Name: "tree.png", Kind: "image", File: srv.URL + "/tree.png", Pending: true}))
	require.NoError(t, p.AddResource(project.Resource{Name: "gone.png", Kind: "image", File: srv.URL + "/gone.png", Pending: true}))
	require.NoError(t, p.AddResource(project.Resource{Name: "local.png", Kind: "image", File: "assets/local.png"}))

	dir := filepath.Join(t.TempDir(), "assets")
	err := NewFetcher(dir, WithHTTPClient(srv.Client())).FetchNewResources(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.png")

	tree := p.FindResource("tree.png")
	assert.False(t, tree.Pending)
	assert.Equal(t, filepath.Join(dir, "tree.png"), tree.File)
	data, err := os.ReadFile(tree.File)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(data))

	assert.True(t, p.FindResource("gone.png").Pending, "failed download stays pending")
	assert.Equal(t, "assets/local.png", p.FindResource("local.png").File)
}

func TestFetchNewResources_NothingPending(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	err := NewFetcher(dir).FetchNewResources(context.Background(), project.New("game"))
	require.NoError(t, err)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchNewResources_NameCannotEscapeDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	p := project.New("game")
	require.NoError(t, p.AddResource(project.Resource{Name: "../../evil.png", Kind: "image", File: srv.URL + "/e", Pending: true}))

	dir := t.TempDir()
	require.NoError(t, NewFetcher(dir, WithHTTPClient(srv.Client())).FetchNewResources(context.Background(), p))
	assert.Equal(t, filepath.Join(dir, "evil.png"), p.FindResource("../../evil.png").File)
}

func TestFetchNewResources_SameBaseName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	p := project.New("game")
	require.NoError(t, p.AddResource(project.Resource{Name: "player/idle.png", Kind: "image", File: srv.URL + "/player", Pending: true}))
	require.NoError(t, p.AddResource(project.Resource{Name: "enemy/idle.png", Kind: "image", File: srv.URL + "/enemy", Pending: true}))

	dir := t.TempDir()
	require.NoError(t, NewFetcher(dir, WithHTTPClient(srv.Client())).FetchNewResources(context.Background(), p))

	tests := []struct {
		name, wantFile, wantData string
	}{
		{"player/idle.png", filepath.Join(dir, "player", "idle.png"), "/player"},
		{"enemy/idle.png", filepath.Join(dir, "enemy", "idle.png"), "/enemy"},
	}
	for _, tt := range tests {
		r := p.FindResource(tt.name)
		require.NotNil(t, r)
		assert.Equal(t, tt.wantFile, r.File)
		data, err := os.ReadFile(r.File)
		require.NoError(t, err)
		assert.Equal(t, tt.wantData, string(data))
	}
}
