package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtiq/cogscore/internal/api/handler"
	"github.com/courtiq/cogscore/internal/api/respond"
	"github.com/courtiq/cogscore/internal/cache"
	"github.com/courtiq/cogscore/internal/category"
	"github.com/courtiq/cogscore/internal/config"
	"github.com/courtiq/cogscore/internal/db"
	"github.com/courtiq/cogscore/internal/importer"
	"github.com/courtiq/cogscore/internal/store"
)

const (
	goldenName   = "10.06.25 Heat v Bucks (1).csv"
	goldenGameID = "752a0dcfdfd80524"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		CORSAllowOrigins: []string{"*"},
		MaxUploadMB:      16,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	ctx := context.Background()
	d, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "cogscore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, db.Migrate(ctx, d, category.Default()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(d, category.Default())
	im := importer.New(st, logger)

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	return NewRouter(st, im, cache.New(true, stop), cfg, logger)
}

func golden(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "importer", "testdata", goldenName))
	require.NoError(t, err)
	return raw
}

func do(t *testing.T, srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, srv, httptest.NewRequest(http.MethodGet, path, nil))
}

func upload(t *testing.T, srv http.Handler, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(t, srv, req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, path := range []string{"/", "/health", "/health/db", "/health/cache"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, srv, path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
		})
	}
}

func TestImportAndRead(t *testing.T) {
	srv := newTestServer(t, testConfig())
	raw := golden(t)

	rec := upload(t, srv, "/api/v1/imports", goldenName, raw)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[importer.Result](t, rec)
	assert.Equal(t, goldenGameID, res.GameID)
	assert.Equal(t, "Heat", res.Team)
	require.NotNil(t, res.OverallScore)
	assert.InDelta(t, 64.8913, *res.OverallScore, 0.0001)

	rec = get(t, srv, "/api/v1/games")
	require.Equal(t, http.StatusOK, rec.Code)
	games := decode[[]store.Game](t, rec)
	require.Len(t, games, 1)
	assert.Equal(t, "Bucks", games[0].Opponent)

	rec = get(t, srv, "/api/v1/games/"+goldenGameID)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[handler.GameDetail](t, rec)
	require.Len(t, detail.Scorecards, 4)
	assert.Equal(t, "Heat", detail.Scorecards[0].PlayerName)
	assert.Equal(t, "Tyler Herro", detail.Scorecards[1].PlayerName)
	assert.Equal(t, 9, detail.Scorecards[0].Counts["driving_paint_touch_positive"])
	assert.Equal(t, 4, detail.Scorecards[0].Counts["footwork_pivot_negative"])
	assert.Equal(t, 2, detail.Scorecards[1].Counts["footwork_pivot_positive"])
	assert.Len(t, detail.Statistics, len(category.Default().Categories()))

	rec = get(t, srv, "/api/v1/cog-scores?team=Heat")
	require.Equal(t, http.StatusOK, rec.Code)
	scores := decode[[]store.TeamCogScore](t, rec)
	require.Len(t, scores, 1)
	assert.Equal(t, store.SourceCSV, scores[0].Source)
	assert.Equal(t, "2025-10-06", scores[0].GameDate)

	rec = get(t, srv, "/api/v1/games/doesnotexist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportDuplicateAndReplace(t *testing.T) {
	srv := newTestServer(t, testConfig())
	raw := golden(t)

	require.Equal(t, http.StatusCreated, upload(t, srv, "/api/v1/imports", goldenName, raw).Code)

	rec := upload(t, srv, "/api/v1/imports", goldenName, raw)
	require.Equal(t, http.StatusConflict, rec.Code)
	errResp := decode[respond.ErrorResponse](t, rec)
	assert.Equal(t, "DUPLICATE_GAME", errResp.Error.Code)

	rec = upload(t, srv, "/api/v1/imports?replace=true", goldenName, raw)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decode[importer.Result](t, rec).Replaced)

	rec = get(t, srv, "/api/v1/imports")
	require.Equal(t, http.StatusOK, rec.Code)
	runs := decode[[]store.ImportRun](t, rec)
	require.Len(t, runs, 3)
	statuses := map[string]int{}
	for _, run := range runs {
		statuses[run.Status]++
	}
	assert.Equal(t, map[string]int{store.RunSucceeded: 2, store.RunRejected: 1}, statuses)

	rec = get(t, srv, "/api/v1/imports?limit=1")
	assert.Len(t, decode[[]store.ImportRun](t, rec), 1)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/v1/imports?limit=-1").Code)
}

func TestImportRejections(t *testing.T) {
	srv := newTestServer(t, testConfig())
	raw := golden(t)

	t.Run("unparseable filename", func(t *testing.T) {
		body := []byte("Row,Footwork\nHeat,+ve Footwork: Pivot\n")
		rec := upload(t, srv, "/api/v1/imports", "game.csv", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errResp := decode[respond.ErrorResponse](t, rec)
		assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
		assert.Equal(t, "filename", errResp.Error.Field)
	})

	t.Run("missing Row column", func(t *testing.T) {
		body := []byte("Timeline,Driving\nx,+ve Driving: Read\n")
		rec := upload(t, srv, "/api/v1/imports", goldenName, body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Row", decode[respond.ErrorResponse](t, rec).Error.Field)
	})

	t.Run("no file field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", strings.NewReader(""))
		rec := do(t, srv, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "MISSING_FILE", decode[respond.ErrorResponse](t, rec).Error.Code)
	})

	t.Run("bad replace flag", func(t *testing.T) {
		rec := upload(t, srv, "/api/v1/imports?replace=maybe", goldenName, raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec := get(t, srv, "/api/v1/games")
	assert.Empty(t, decode[[]store.Game](t, rec))
}

func TestCachingAndInvalidation(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := get(t, srv, "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	cats := decode[[]handler.CategoryView](t, rec)
	require.Len(t, cats, 11)
	assert.Equal(t, "Space Read", cats[0].Name)

	rec = get(t, srv, "/api/v1/categories")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, do(t, srv, req).Code)

	rec = get(t, srv, "/api/v1/games")
	assert.Empty(t, decode[[]store.Game](t, rec))
	assert.Equal(t, "HIT", get(t, srv, "/api/v1/games").Header().Get("X-Cache"))

	require.Equal(t, http.StatusCreated, upload(t, srv, "/api/v1/imports", goldenName, golden(t)).Code)

	rec = get(t, srv, "/api/v1/games")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Len(t, decode[[]store.Game](t, rec), 1)
}

func TestDeleteGameAndRebuild(t *testing.T) {
	srv := newTestServer(t, testConfig())
	require.Equal(t, http.StatusCreated, upload(t, srv, "/api/v1/imports", goldenName, golden(t)).Code)

	rec := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/rebuild", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[importer.RebuildResult](t, rec)
	assert.Equal(t, 1, result.Games)
	assert.Equal(t, 1, result.CogScores)

	rec = do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/rebuild?game_id="+goldenGameID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[importer.RebuildResult](t, rec).Games)

	rec = do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/rebuild?game_id=nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/games/"+goldenGameID, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/v1/games/"+goldenGameID).Code)
	assert.Empty(t, decode[[]store.TeamCogScore](t, get(t, srv, "/api/v1/cog-scores")))

	rec = do(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/games/"+goldenGameID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestManualCogScores(t *testing.T) {
	srv := newTestServer(t, testConfig())

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cog-scores", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return do(t, srv, req)
	}

	rec := post(`{"game_date":"2025-10-08","team":"Heat","opponent":"Knicks","score":71.5,"note":"film session"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[store.TeamCogScore](t, rec)
	assert.Equal(t, store.SourceManual, created.Source)
	assert.NotZero(t, created.ID)

	assert.Equal(t, http.StatusConflict, post(`{"game_date":"2025-10-08","team":"Heat","opponent":"Knicks","score":50}`).Code)

	invalid := []struct {
		name, body, field string
	}{
		{"score too high", `{"game_date":"2025-10-09","team":"Heat","score":150}`, "score"},
		{"negative score", `{"game_date":"2025-10-09","team":"Heat","score":-1}`, "score"},
		{"bad date", `{"game_date":"10.09.25","team":"Heat","score":50}`, "game_date"},
		{"no team", `{"game_date":"2025-10-09","team":" ","score":50}`, "team"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tc.field, decode[respond.ErrorResponse](t, rec).Error.Field)
		})
	}
	assert.Equal(t, http.StatusBadRequest, post(`{"unknown":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).Code)

	scores := decode[[]store.TeamCogScore](t, get(t, srv, "/api/v1/cog-scores?team=Heat"))
	require.Len(t, scores, 1)

	path := "/api/v1/cog-scores/" + jsonNumber(created.ID)
	assert.Equal(t, http.StatusNoContent, do(t, srv, httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/cog-scores/abc", nil)).Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, get(t, srv, "/health").Code)
	rec := get(t, srv, "/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decode[respond.ErrorResponse](t, rec).Error.Code)
}

func TestMaxBodyMiddleware(t *testing.T) {
	var readErr error
	h := MaxBodyMiddleware(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	big := bytes.Repeat([]byte("x"), 2<<20)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big)))
	var tooLarge *http.MaxBytesError
	assert.True(t, errors.As(readErr, &tooLarge))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big[:1024])))
	assert.NoError(t, readErr)
}
