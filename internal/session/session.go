// Package session keeps per-visitor shell state. Only the display locale is
// stored; section and action travel in the URL.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/heritage-backend/internal/locale"
)

const (
	// CookieName identifies the visitor's session.
	CookieName = "heritage_session"
	// DefaultTTL is how long an idle session keeps its locale.
	DefaultTTL = 24 * time.Hour
	// LocaleKeyPrefix is the Redis key prefix for session locales.
	LocaleKeyPrefix = "session:locale:"

	sweepInterval = 5 * time.Minute
)

// Store persists the locale chosen in a session.
type Store interface {
	// Locale returns the stored locale and whether one was found.
	Locale(ctx context.Context, id string) (locale.Locale, bool, error)
	SetLocale(ctx context.Context, id string, l locale.Locale) error
}

// RedisStore keeps locales in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func localeKey(id string) string {
	return LocaleKeyPrefix + id
}

func (s *RedisStore) Locale(ctx context.Context, id string) (locale.Locale, bool, error) {
	code, err := s.client.Get(ctx, localeKey(id)).Result()
	if err == redis.Nil {
		return locale.Default, false, nil
	}
	if err != nil {
		return locale.Default, false, err
	}
	l, ok := locale.Parse(code)
	if !ok {
		return locale.Default, false, nil
	}
	// Reading refreshes the TTL so active visitors keep their choice.
	s.client.Expire(ctx, localeKey(id), s.ttl)
	return l, true, nil
}

func (s *RedisStore) SetLocale(ctx context.Context, id string, l locale.Locale) error {
	return s.client.Set(ctx, localeKey(id), l.Code(), s.ttl).Err()
}

type memoryEntry struct {
	locale  locale.Locale
	expires time.Time
}

// MemoryStore is an in-process Store used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Locale(_ context.Context, id string) (locale.Locale, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return locale.Default, false, nil
	}
	now := s.now()
	if now.After(e.expires) {
		delete(s.entries, id)
		return locale.Default, false, nil
	}
	e.expires = now.Add(s.ttl)
	s.entries[id] = e
	return e.locale, true, nil
}

func (s *MemoryStore) SetLocale(_ context.Context, id string, l locale.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{locale: l, expires: s.now().Add(s.ttl)}
	return nil
}

// Len reports the number of live sessions. Expired entries are dropped.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	return len(s.entries)
}

// Sweep drops every expired session.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = sweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// ID returns the session id carried by r, if it is a valid uuid.
func ID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the request's session id, issuing a new cookie when the
// request has none.
func Ensure(w http.ResponseWriter, r *http.Request, secure bool) string {
	if id, ok := ID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Resolve picks the locale for r: the session's stored choice, otherwise the
// Accept-Language match. Store errors fall back to the header.
func Resolve(ctx context.Context, store Store, id string, r *http.Request) locale.Locale {
	if store != nil && id != "" {
		if l, ok, err := store.Locale(ctx, id); err == nil && ok {
			return l
		}
	}
	return locale.FromRequest(r)
}
