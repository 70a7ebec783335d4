package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/panes/pkg/cache"
	"github.com/matzehuels/panes/pkg/pipeline"
	"github.com/matzehuels/panes/pkg/store"
)

const splitJSON = `{
  "document": {
    "name": "split",
    "root": {
      "id": "root",
      "kind": "partition",
      "direction": "horizontal",
      "children": [
        {"id": "nav", "kind": "leaf", "size": "fixed:200"},
        {"id": "body", "kind": "leaf"}
      ]
    }
  },
  "options": {"width": 800, "height": 600}
}`

const splitTOML = `
name = "split"

[root]
id = "root"
kind = "partition"
direction = "vertical"

[[root.children]]
id = "header"
kind = "leaf"
size = "fixed:60"

[[root.children]]
id = "content"
kind = "leaf"
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, store.NewMemoryStore(), logger, Config{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func create(t *testing.T, srv *httptest.Server) createResponse {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/layouts", "application/json", strings.NewReader(splitJSON))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out createResponse
	decode(t, resp, &out)
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out healthResponse
	decode(t, resp, &out)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "file", out.Cache)
	assert.NotEmpty(t, out.Build.Version)
}

func TestCreateAndGet(t *testing.T) {
	srv := newTestServer(t)
	created := create(t, srv)

	require.True(t, store.ValidID(created.ID))
	require.NotNil(t, created.Layout)
	assert.Equal(t, 800.0, created.Layout.Width)
	body, ok := created.Layout.Find("body")
	require.True(t, ok)
	assert.Equal(t, 200.0, body.X)
	assert.Equal(t, 600.0, body.Width)

	resp, err := http.Get(srv.URL + "/v1/layouts/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rec store.Record
	decode(t, resp, &rec)
	assert.Equal(t, created.ID, rec.ID)
	assert.Equal(t, "split", rec.Result.Name)
	assert.NotEmpty(t, rec.DocHash)

	again := create(t, srv)
	assert.True(t, again.Cached, "second create should hit the layout cache")
	assert.NotEqual(t, created.ID, again.ID)
}

func TestCreateTOML(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/layouts?width=320&height=480", "application/toml", strings.NewReader(splitTOML))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/v1/layouts/"))

	var out createResponse
	decode(t, resp, &out)
	content, ok := out.Layout.Find("content")
	require.True(t, ok)
	assert.Equal(t, 60.0, content.Y)
	assert.Equal(t, 420.0, content.Height)
	assert.Equal(t, "h=compact,v=compact", out.Layout.Traits)
}

func TestCreateErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"empty body", "application/json", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"missing document", "application/json", `{"options": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "application/json", `{"doc": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid document", "application/json", `{"document": {"root": {"id": "r", "kind": "blob"}}}`, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"bad viewport", "application/json", `{"document": {"root": {"kind": "leaf"}}, "options": {"width": -5}}`, http.StatusBadRequest, "INVALID_VIEWPORT"},
		{"bad toml", "application/toml", "[root\n", http.StatusBadRequest, "INVALID_DOCUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/layouts", tt.contentType, strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var out errorBody
			decode(t, resp, &out)
			assert.Equal(t, tt.code, string(out.Error.Code))
		})
	}
}

func TestCreateValidationFields(t *testing.T) {
	srv := newTestServer(t)
	body := `{"document": {"root": {"id": "r", "kind": "partition", "children": [
		{"id": "a", "kind": "leaf", "size": "sideways"},
		{"id": "a", "kind": "leaf"}
	]}}}`

	resp, err := http.Post(srv.URL+"/v1/layouts", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out errorBody
	decode(t, resp, &out)
	assert.GreaterOrEqual(t, len(out.Error.Fields), 2)
}

func TestCreateRejectsContentType(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/layouts", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	created := create(t, srv)
	base := srv.URL + "/v1/layouts/" + created.ID

	resp, err := http.Get(base + "/svg?labels=true")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Contains(t, string(data), `id="frame-nav"`)

	resp, err = http.Get(base + "/svg?labels=true")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))

	resp, err = http.Get(base + "/tree")
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(data), "nav (leaf)")

	resp, err = http.Get(base + "/pdf")
	require.NoError(t, err)
	var out errorBody
	decode(t, resp, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FORMAT", string(out.Error.Code))

	resp, err = http.Get(base + "/svg?labels=maybe")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndDelete(t *testing.T) {
	srv := newTestServer(t)
	first := create(t, srv)
	second := create(t, srv)

	resp, err := http.Get(srv.URL + "/v1/layouts?limit=10")
	require.NoError(t, err)
	var list struct {
		Layouts []store.Summary `json:"layouts"`
	}
	decode(t, resp, &list)
	ids := []string{}
	for _, s := range list.Layouts {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/layouts/"+first.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/layouts/" + first.ID)
	require.NoError(t, err)
	var out errorBody
	decode(t, resp, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "LAYOUT_NOT_FOUND", string(out.Error.Code))

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/layouts?limit=zero")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor("INVALID_POLICY"))
	assert.Equal(t, http.StatusNotFound, statusFor("NOT_FOUND"))
	assert.Equal(t, http.StatusInternalServerError, statusFor("INTERNAL"))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}
