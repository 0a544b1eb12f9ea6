package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreyes/memtrail/internal/memory"
)

func newTestAPI(t *testing.T) (*API, *memory.Store) {
	t.Helper()
	store, err := memory.New(memory.Config{
		Path:             filepath.Join(t.TempDir(), "memory.db"),
		DefaultRecent:    10,
		MaxSearchResults: 10,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger), store
}

func doJSON(t *testing.T, api *API, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echoContentType, echoJSONType)
	}
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONType    = "application/json"
)

func TestRecordCommand(t *testing.T) {
	api, store := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/record_command",
		`{"command_text": "deploy the api", "tags": ["deploy"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	cmds, err := store.List()
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "deploy the api", cmds[0].Text)
	assert.Equal(t, []string{"deploy"}, cmds[0].Tags)
}

func TestRecordCommandInvalidJSON(t *testing.T) {
	api, store := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/record_command", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "invalid_json", payload["error"])

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordCommandEmptyText(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/record_command", `{"command_text": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "command_text_required", payload["error"])
}

func TestRecordCommandTagsNotAList(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/record_command",
		`{"command_text": "x", "tags": "oops"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "tags_must_be_list", payload["error"])
}

func TestListCommandsNewestFirst(t *testing.T) {
	api, store := newTestAPI(t)
	require.NoError(t, store.Add("first", nil))
	require.NoError(t, store.Add("second", nil))

	rec := doJSON(t, api, http.MethodGet, "/commands", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var cmds []memory.Command
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmds))
	require.Len(t, cmds, 2)
	assert.Equal(t, "second", cmds[0].Text)
	assert.Equal(t, "first", cmds[1].Text)
}

func TestContextDefaultLimit(t *testing.T) {
	api, store := newTestAPI(t)
	for i := 0; i < 8; i++ {
		require.NoError(t, store.Add("cmd", nil))
	}

	rec := doJSON(t, api, http.MethodGet, "/context", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ctx memory.RecentContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	assert.Len(t, ctx.Items, 5)
	assert.Len(t, ctx.RecentCommands, 5)
}

func TestContextExplicitLimit(t *testing.T) {
	api, store := newTestAPI(t)
	for i := 0; i < 8; i++ {
		require.NoError(t, store.Add("cmd", nil))
	}

	rec := doJSON(t, api, http.MethodGet, "/context?limit=2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ctx memory.RecentContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	assert.Len(t, ctx.Items, 2)
}

func TestSearchRequiresQuery(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "query_required", payload["error"])
}

func TestSearchMatchesTextAndTags(t *testing.T) {
	api, store := newTestAPI(t)
	require.NoError(t, store.Add("deploy the api", nil))
	require.NoError(t, store.Add("write docs", []string{"deploy"}))
	require.NoError(t, store.Add("unrelated", nil))

	rec := doJSON(t, api, http.MethodGet, "/search?q=DEPLOY", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Query   string           `json:"query"`
		Results []memory.Command `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "DEPLOY", payload.Query)
	assert.Len(t, payload.Results, 2)
}

func TestStatsEmpty(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		TotalCommands int      `json:"total_commands"`
		TopKeywords   []string `json:"top_keywords"`
		ActiveHours   []string `json:"active_hours"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Zero(t, payload.TotalCommands)
	assert.NotNil(t, payload.TopKeywords)
	assert.NotNil(t, payload.ActiveHours)
}

func TestPreferencesLanguage(t *testing.T) {
	api, store := newTestAPI(t)
	require.NoError(t, store.Add("alpha", []string{"python"}))
	require.NoError(t, store.Add("bravo", []string{"python"}))
	require.NoError(t, store.Add("charlie", []string{"go"}))

	rec := doJSON(t, api, http.MethodGet, "/preferences", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		PreferredLanguage *string  `json:"preferred_language"`
		Confidence        *float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.PreferredLanguage)
	assert.Equal(t, "python", *payload.PreferredLanguage)
	require.NotNil(t, payload.Confidence)
	assert.Equal(t, 0.667, *payload.Confidence)
}

func TestContextualPreferencesFallback(t *testing.T) {
	api, store := newTestAPI(t)
	require.NoError(t, store.Add("test the handler", nil))

	rec := doJSON(t, api, http.MethodPost, "/preferences/contextual", `{"context": "hello"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		MatchedGroups []string `json:"matched_groups"`
		Note          string   `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Empty(t, payload.MatchedGroups)
	assert.NotEmpty(t, payload.Note)
}

func TestContextualPreferencesMatch(t *testing.T) {
	api, store := newTestAPI(t)
	require.NoError(t, store.Add("document the endpoints", nil))

	rec := doJSON(t, api, http.MethodPost, "/preferences/contextual",
		`{"context": "please update the docs"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		MatchedGroups []string `json:"matched_groups"`
		Note          string   `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []string{"documentation"}, payload.MatchedGroups)
	assert.Empty(t, payload.Note)
}

func TestHealthz(t *testing.T) {
	api, _ := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
}
