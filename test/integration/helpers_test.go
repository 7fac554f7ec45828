//go:build integration

package integration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/assetctl/internal/catalog"
	"github.com/agentx-labs/assetctl/internal/extension"
	"github.com/agentx-labs/assetctl/internal/fetch"
	"github.com/agentx-labs/assetctl/internal/install"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/agentx-labs/assetctl/internal/resources"
	"github.com/agentx-labs/assetctl/internal/telemetry"
)

const privateToken = "s3cret"

// testEnv holds an isolated asset store and project directory.
type testEnv struct {
	StoreDir   string // files served by the store server
	ProjectDir string // where project.yaml and downloaded resources live
	Server     *httptest.Server
	Telemetry  *telemetry.Recorder
}

// setupTestEnv starts a store server over a temp directory. Requests for
// /x are answered with StoreDir/x.json or StoreDir/x; everything under
// /private requires the bearer token.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		StoreDir:   t.TempDir(),
		ProjectDir: t.TempDir(),
		Telemetry:  telemetry.NewRecorder(nil),
	}

	env.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/private/") && r.Header.Get("Authorization") != "Bearer "+privateToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		p := filepath.Join(env.StoreDir, filepath.FromSlash(path.Clean(r.URL.Path)))
		for _, candidate := range []string{p + ".json", p} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				http.ServeFile(w, r, candidate)
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(env.Server.Close)

	return env
}

// setupStore writes a synthetic catalog, private catalog and extension
// registry into the store directory.
func setupStore(t *testing.T, env *testEnv) {
	t.Helper()
	url := env.Server.URL

	writeFile(t, filepath.Join(env.StoreDir, "assets.json"), `[
  {"id": "tree01", "name": "Tree"},
  {"id": "knight", "name": "Knight", "tag": "characters"}
]`)

	// --- Public asset with a resource ---
	writeFile(t, filepath.Join(env.StoreDir, "assets/tree01.json"), `{
  "id": "tree01",
  "name": "Tree",
  "objectAssets": [{
    "object": {"name": "Tree", "type": "Sprite"},
    "resources": [{"name": "tree.png", "kind": "image", "file": "`+url+`/files/tree.png"}]
  }]
}`)
	writeFile(t, filepath.Join(env.StoreDir, "files/tree.png"), "PNG-TREE")

	// --- Public asset needing an extension ---
	writeFile(t, filepath.Join(env.StoreDir, "assets/knight.json"), `{
  "id": "knight",
  "name": "Knight",
  "objectAssets": [{
    "object": {"name": "Knight", "type": "Physics3D::Body"},
    "requiredExtensions": [{"extensionName": "Physics3D", "extensionVersion": "2.0.0"}]
  }]
}`)

	// --- Pack ---
	writeFile(t, filepath.Join(env.StoreDir, "assets/packs/forest.json"),
		`{"id": "forest", "name": "Forest", "tag": "nature", "assetIds": ["tree01", "knight"]}`)

	// --- Private asset ---
	writeFile(t, filepath.Join(env.StoreDir, "private/sword02.json"), `{
  "id": "sword02",
  "name": "Sword",
  "objectAssets": [{"object": {"name": "Sword", "type": "Sprite"}}]
}`)

	// --- Extension registry ---
	writeFile(t, filepath.Join(env.StoreDir, "extensions.json"),
		`{"extensions": [{"name": "Physics3D", "fullName": "3D physics engine", "version": "2.0.0"}]}`)
	writeFile(t, filepath.Join(env.StoreDir, "extensions/Physics3D.json"),
		`{"name": "Physics3D", "fullName": "3D physics engine", "version": "2.0.0", "objectTypes": ["Physics3D::Body"]}`)
}

// newOrchestrator wires the real pipeline against the store server.
func newOrchestrator(t *testing.T, env *testEnv, token string, confirm install.ConfirmFunc) *install.Orchestrator {
	t.Helper()
	client := env.Server.Client()

	sources := catalog.Sources{
		Public:  catalog.NewPublicClient(env.Server.URL+"/assets", catalog.WithHTTPClient(client)),
		Private: catalog.NewPrivateClient(env.Server.URL+"/private", token, catalog.WithHTTPClient(client)),
	}
	reg := registry.NewClient(env.Server.URL+"/extensions", registry.WithHTTPClient(client))
	fetcher := resources.NewFetcher(filepath.Join(env.ProjectDir, "assets"), resources.WithHTTPClient(client))

	o, err := install.New(install.Config{
		Fetcher:        fetch.New(sources),
		Resolver:       registry.NewResolver(reg),
		Extensions:     extension.NewInstaller(reg, nil),
		Assets:         installer.New(nil),
		Confirm:        confirm,
		FetchResources: fetcher.FetchNewResources,
		Reporter:       env.Telemetry,
	})
	if err != nil {
		t.Fatalf("creating orchestrator: %v", err)
	}
	return o
}

func alwaysUpdate(context.Context, []registry.ExtensionHeader) (bool, error) { return true, nil }

// saveAndReload round-trips the project through project.yaml.
func saveAndReload(t *testing.T, env *testEnv, p *project.Project) *project.Project {
	t.Helper()
	path := filepath.Join(env.ProjectDir, project.DefaultFile)
	if err := project.Save(path, p); err != nil {
		t.Fatalf("saving project: %v", err)
	}
	loaded, err := project.Load(path)
	if err != nil {
		t.Fatalf("loading project: %v", err)
	}
	return loaded
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
