package leaderboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleStatus(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/status", "")

	require.NoError(t, handleStatus()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "online", resp.Status)
	assert.Equal(t, Version, resp.Version)
	_, err := time.Parse(time.RFC3339, resp.ServerTime)
	assert.NoError(t, err)
}

func TestHandleGetStats(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Sync(SyncRequest{PlayerID: "p1", PlayerName: "Ripley", Distance: 5000})
	require.NoError(t, err)

	logger := log.New(io.Discard)
	cache := gocache.New(5*time.Second, time.Minute)

	c, rec := newTestContext(http.MethodGet, "/api/game/stats", "")
	require.NoError(t, handleGetStats(logger, store, cache)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats.Players, 1)
	assert.Equal(t, "Ripley", stats.Players[0].Name)

	// Second read comes from the cache and still matches.
	c2, rec2 := newTestContext(http.MethodGet, "/api/game/stats", "")
	require.NoError(t, handleGetStats(logger, store, cache)(c2))
	assert.JSONEq(t, rec.Body.String(), rec2.Body.String())
}

func TestHandlePostSyncValidation(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	cache := gocache.New(5*time.Second, time.Minute)

	for name, body := range map[string]string{
		"missing playerId":   `{"playerName":"Ripley","distance":100}`,
		"missing playerName": `{"playerId":"p1","distance":100}`,
		"missing both":       `{"distance":100}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/game/sync", body)
			require.NoError(t, handlePostSync(logger, store, cache)(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	// Nothing was written for any rejected request.
	stats, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stats.Players)
}

func TestHandlePostSyncReturnsTopTen(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	cache := gocache.New(5*time.Second, time.Minute)
	handler := handlePostSync(logger, store, cache)

	// Twelve players on the board, synced directly through the store.
	for i := 0; i < 12; i++ {
		_, err := store.Sync(SyncRequest{
			PlayerID:   string(rune('a' + i)),
			PlayerName: "Player",
			Distance:   float64(1000 + i),
		})
		require.NoError(t, err)
	}

	c, rec := newTestContext(http.MethodPost, "/api/game/sync",
		`{"playerId":"winner","playerName":"Winner","distance":99999}`)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Leaderboard, 10, "response carries the top 10 only")
	assert.Equal(t, "winner", resp.Leaderboard[0].ID)
}

func TestRoutesAreRegistered(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	registerRoutes(e, log.New(io.Discard), store)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/game/sync",
		strings.NewReader(`{"playerId":"p1","playerName":"Ripley","distance":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
