// Package httpapi exposes the command memory over a thin REST surface.
//
// Every route returns JSON. The REST layer mirrors the MCP tool semantics:
// validation failures come back in-band as {"error": "<code>"} with a 400
// status, storage faults as a 500 with {"error": "storage_error"}.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dreyes/memtrail/internal/memory"
	"github.com/dreyes/memtrail/internal/prefs"
)

// restRecentLimit caps GET /context when no limit is given. The REST
// view is deliberately shorter than the MCP one: REST clients poll.
const restRecentLimit = 5

// API serves the REST routes for the command memory.
type API struct {
	store  *memory.Store
	logger *slog.Logger
}

// New creates an API bound to the given store.
func New(store *memory.Store, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{store: store, logger: logger}
}

// Router builds the echo instance with all routes and middleware attached.
func (a *API) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.logger.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.POST("/record_command", a.recordCommand)
	e.GET("/commands", a.listCommands)
	e.GET("/context", a.recentContext)
	e.GET("/search", a.searchCommands)
	e.GET("/stats", a.stats)
	e.GET("/preferences", a.preferences)
	e.POST("/preferences/contextual", a.contextualPreferences)
	e.GET("/healthz", a.healthz)

	return e
}

// storageError logs the fault and answers 500. The error detail stays in
// the log, never in the response body.
func (a *API) storageError(c echo.Context, err error) error {
	a.logger.Error("storage fault", slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage_error"})
}

func badRequest(c echo.Context, code string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": code})
}

// ─── Handlers ────────────────────────────────────────────────────────────────

type recordRequest struct {
	CommandText string `json:"command_text"`
	Tags        any    `json:"tags"`
}

func (a *API) recordCommand(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_json")
	}
	if req.CommandText == "" {
		return badRequest(c, "command_text_required")
	}
	tags, errCode := coerceTags(req.Tags)
	if errCode != "" {
		return badRequest(c, errCode)
	}

	if err := a.store.Add(req.CommandText, tags); err != nil {
		return a.storageError(c, fmt.Errorf("record command: %w", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) listCommands(c echo.Context) error {
	cmds, err := a.store.List()
	if err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, cmds)
}

func (a *API) recentContext(c echo.Context) error {
	limit := intQuery(c, "limit", restRecentLimit)
	cmds, err := a.store.Recent(limit)
	if err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, memory.NewRecentContext(cmds))
}

func (a *API) searchCommands(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return badRequest(c, "query_required")
	}
	limit := intQuery(c, "limit", 0)

	results, err := a.store.Search(query, limit)
	if err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (a *API) stats(c echo.Context) error {
	cmds, err := a.store.List()
	if err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, prefs.ComputeStats(cmds))
}

func (a *API) preferences(c echo.Context) error {
	cmds, err := a.store.List()
	if err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, prefs.InferPreferences(cmds))
}

type contextualRequest struct {
	Context string `json:"context"`
	Limit   int    `json:"limit"`
}

func (a *API) contextualPreferences(c echo.Context) error {
	var req contextualRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_json")
	}

	cmds, err := a.store.List()
	if err != nil {
		return a.storageError(c, err)
	}
	baseline := prefs.InferPreferences(cmds)
	return c.JSON(http.StatusOK, prefs.ContextualPreferences(req.Context, baseline))
}

func (a *API) healthz(c echo.Context) error {
	if _, err := a.store.Count(); err != nil {
		return a.storageError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// intQuery parses an integer query parameter, falling back to defaultVal
// on absence or garbage.
func intQuery(c echo.Context, key string, defaultVal int) int {
	raw := c.QueryParam(key)
	if raw == "" {
		return defaultVal
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return defaultVal
	}
	return n
}

// coerceTags mirrors the tag validation at the MCP boundary: absent means
// no tags, non-lists are rejected, nil entries dropped, non-strings
// stringified.
func coerceTags(raw any) ([]string, string) {
	if raw == nil {
		return nil, ""
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, "tags_must_be_list"
	}
	tags := make([]string, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		if s, ok := item.(string); ok {
			tags = append(tags, s)
			continue
		}
		tags = append(tags, fmt.Sprint(item))
	}
	return tags, ""
}
