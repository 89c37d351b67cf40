package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/database"
	"github.com/AnshRaj112/heritage-backend/internal/handlers"
	"github.com/AnshRaj112/heritage-backend/internal/middleware"
	"github.com/AnshRaj112/heritage-backend/internal/mirror"
	"github.com/AnshRaj112/heritage-backend/internal/services"
)

func newServer(t *testing.T, opts Options) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	store, err := database.Open(context.Background(), filepath.Join(root, "portal.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	disk := mirror.NewDisk(root)
	require.NoError(t, disk.EnsureLayout())

	h, err := handlers.New(handlers.Options{
		Submissions: services.NewSubmissionService(store, disk, zap.NewNop()),
		Listings:    services.NewListingService(store, disk, zap.NewNop()),
		Exports:     services.NewExportService(store, disk, zap.NewNop()),
		Locator:     services.StaticLocator,
		Health:      store,
		MediaRoot:   root,
	})
	require.NoError(t, err)
	return NewRouter(h, opts), root
}

func TestStoryScenarioThroughFullStack(t *testing.T) {
	srv, root := newServer(t, Options{AllowedOrigins: []string{"http://localhost:3000"}})

	body, _ := json.Marshal(map[string]string{
		"name":          "Ravi",
		"age":           "34",
		"story_title":   "The Clever Fox",
		"story_summary": "A fox talks a lion into looking into a well.",
		"story_moral":   "Wit beats strength",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader(body))
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stories/read", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Clever Fox")

	files, err := filepath.Glob(filepath.Join(root, "stories", "Ravi", "story_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"story_moral": "Wit beats strength"`)
}

func TestSubmitLimitAppliesToPostsOnly(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1)
	srv, _ := newServer(t, Options{SubmitLimit: middleware.SubmitRateLimit(limiter, zap.NewNop())})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stories", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestProductionHostCheck(t *testing.T) {
	srv, _ := newServer(t, Options{Production: true, AllowedHost: "heritage.example"})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://other.example/health", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://heritage.example/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestSubmitLimitIgnoresForwardedHeadersByDefault(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1)
	srv, _ := newServer(t, Options{SubmitLimit: middleware.SubmitRateLimit(limiter, zap.NewNop())})

	limited := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader([]byte(`{}`)))
		req.RemoteAddr = "203.0.113.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 19, limited)
}

func TestTrustProxyKeysOnForwardedAddress(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1)
	srv, _ := newServer(t, Options{
		TrustProxy:  true,
		SubmitLimit: middleware.SubmitRateLimit(limiter, zap.NewNop()),
	})

	post := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/stories", bytes.NewReader([]byte(`{}`)))
		req.RemoteAddr = "10.0.0.2:40000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusBadRequest, post("198.51.100.1"))
	assert.Equal(t, http.StatusBadRequest, post("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, post("198.51.100.1"))
}

func TestExportIsOffByDefault(t *testing.T) {
	srv, root := newServer(t, Options{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/export", nil))
	assert.NotEqual(t, http.StatusCreated, rec.Code)

	entries, err := os.ReadDir(filepath.Join(root, "admin_data"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportIsRateLimited(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1)
	srv, _ := newServer(t, Options{
		ExportEnabled: true,
		SubmitLimit:   middleware.SubmitRateLimit(limiter, zap.NewNop()),
	})

	var codes []int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/export", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{201, 429, 429, 429, 429}, codes)
}
