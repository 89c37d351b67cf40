package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/heritage-backend/internal/locale"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	l, ok, err := s.Locale(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, locale.Default, l)

	require.NoError(t, s.SetLocale(ctx, "a", locale.Telugu))
	l, ok, err = s.Locale(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, locale.Telugu, l)

	_, ok, _ = s.Locale(ctx, "b")
	assert.False(t, ok, "sessions are independent")
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.SetLocale(ctx, "a", locale.Telugu))
	now = now.Add(50 * time.Second)
	_, ok, _ := s.Locale(ctx, "a")
	assert.True(t, ok)

	// The read above slid the expiry forward.
	now = now.Add(50 * time.Second)
	_, ok, _ = s.Locale(ctx, "a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, s.Len())
	_, ok, _ = s.Locale(ctx, "a")
	assert.False(t, ok)
}

func TestMemoryStoreSweepEvictsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, s.SetLocale(ctx, uuid.NewString(), locale.Telugu))
	}
	now = now.Add(time.Hour)
	require.NoError(t, s.SetLocale(ctx, "fresh", locale.English))

	s.Sweep()
	assert.Len(t, s.entries, 1)
	_, ok, _ := s.Locale(ctx, "fresh")
	assert.True(t, ok)
}

func TestMemoryStoreRunStopsWithContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }
	require.NoError(t, s.SetLocale(context.Background(), "a", locale.Telugu))
	now = now.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.entries) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEnsureIssuesCookieOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := Ensure(rec, req, false)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	assert.Equal(t, id, Ensure(rec2, req2, false))
	assert.Empty(t, rec2.Result().Cookies())
}

func TestIDRejectsForgedValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	_, ok := ID(req)
	assert.False(t, ok)
}

func TestResolvePrefersStoredLocale(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "te-IN,te;q=0.9")

	assert.Equal(t, locale.Telugu, Resolve(ctx, s, "a", req))

	require.NoError(t, s.SetLocale(ctx, "a", locale.English))
	assert.Equal(t, locale.English, Resolve(ctx, s, "a", req))
	assert.Equal(t, locale.Telugu, Resolve(ctx, nil, "", req))
}

func TestRedisKeyLayout(t *testing.T) {
	assert.Equal(t, "session:locale:abc", localeKey("abc"))
	assert.Equal(t, DefaultTTL, NewRedisStore(nil, 0).ttl)
}
