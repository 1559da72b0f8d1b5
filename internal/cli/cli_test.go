package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/browser"
	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/cli"
	"github.com/rshade/holocron/internal/config"
)

var apiBodies = map[string]string{
	"/api/films":     `{"result":[{"properties":{"title":"A New Hope","release_date":"1977-05-25","director":"George Lucas"}}]}`,
	"/api/people":    `{"results":[{"uid":"1","name":"Luke Skywalker"},{"uid":"5","name":"Leia Organa"}]}`,
	"/api/planets":   `{"results":[{"uid":"1","name":"Tatooine"},{"uid":"2","name":"Alderaan"}]}`,
	"/api/planets/1": `{"result":{"properties":{"climate":"arid","terrain":"desert","population":"200000"}}}`,
	"/api/people/1":  `{"result":{"properties":{"height":"172","gender":"male","birth_year":"19BBY"}}}`,
}

// setupCLITest isolates config and logging and returns the fake API base URL.
func setupCLITest(t *testing.T) string {
	t.Helper()
	t.Setenv("HOLOCRON_HOME", t.TempDir())
	t.Setenv("HOLOCRON_CONFIG", "")
	t.Setenv("HOLOCRON_API_BASE_URL", "")
	t.Setenv("HOLOCRON_LOG_LEVEL", "error")
	t.Setenv("TERM", "dumb")
	t.Cleanup(config.ResetGlobalConfigForTest)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := apiBodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL + "/api"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_Films(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "list", "films", "--base-url", base)
	require.NoError(t, err)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "A New Hope")
	assert.Contains(t, out, "1977-05-25 · George Lucas")
}

func TestList_Filter(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "list", "people", "--base-url", base, "--filter", "LU")
	require.NoError(t, err)
	assert.Contains(t, out, "Luke Skywalker")
	assert.NotContains(t, out, "Leia Organa")

	out, err = execute(t, "list", "people", "--base-url", base, "--filter", "yoda")
	require.NoError(t, err)
	assert.Equal(t, browser.EmptyText+"\n", out)
}

func TestList_Details(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "list", "planets", "--base-url", base, "--details")
	require.NoError(t, err, "detail failures are inline, not fatal")

	assert.Contains(t, out, "arid · desert · pop 200000")
	assert.Contains(t, out, "Failed to load details: HTTP 404")
}

func TestList_JSON(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "list", "people", "--base-url", base, "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Category string          `json:"category"`
		Status   string          `json:"status"`
		Items    []browser.Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "people", doc.Category)
	assert.Equal(t, "item", doc.Status)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Luke Skywalker", doc.Items[0].Title)
	assert.Equal(t, "1", doc.Items[0].UID)
}

func TestList_ErrorExitsNonZero(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "list", "films", "--base-url", base+"/missing")
	require.Error(t, err)
	require.ErrorIs(t, err, browser.ErrListFetch)
	assert.Contains(t, out, "Loading error: HTTP 404")
}

func TestList_InvalidArguments(t *testing.T) {
	base := setupCLITest(t)

	_, err := execute(t, "list", "starships", "--base-url", base)
	require.ErrorIs(t, err, catalog.ErrUnknownCategory)

	_, err = execute(t, "list", "films", "--base-url", base, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	_, err = execute(t, "list")
	require.Error(t, err)
}

func TestShow(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "show", "people", "1", "--base-url", base)
	require.NoError(t, err)
	assert.Equal(t, "172 cm · male · 19BBY\n", out)

	_, err = execute(t, "show", "films", "1", "--base-url", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Films have no detail view")

	_, err = execute(t, "show", "planets", "99", "--base-url", base)
	require.Error(t, err)
}

func TestCategories(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "categories", "--base-url", base)
	require.NoError(t, err)

	assert.Contains(t, out, "Films")
	assert.Contains(t, out, base+"/films")
	assert.Contains(t, out, base+"/people?page=1&limit=100")
}

func TestBrowse_FallsBackToListWithoutTerminal(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "browse", "--base-url", base, "--category", "people")
	require.NoError(t, err)
	assert.Contains(t, out, "Luke Skywalker")
}

func TestBrowse_DefaultCategoryFromConfig(t *testing.T) {
	base := setupCLITest(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  default_category: planets\n"), 0o600))

	out, err := execute(t, "--config", path, "--base-url", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Tatooine")
}

func TestRoot_InvalidFlags(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "categories", "--timeout", "-1s")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "categories", "--base-url", "ftp://example.com")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigInit(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "holocron.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultBaseURL, cfg.API.BaseURL)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestConfigShowAndValidate(t *testing.T) {
	base := setupCLITest(t)

	out, err := execute(t, "config", "show", "--base-url", base)
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: "+base)
	assert.Contains(t, out, "default_category: films")

	out, err = execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "holocron test")
	assert.Contains(t, out, "user agent: holocron/")
}
