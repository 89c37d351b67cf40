package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIPLocatorFormatsCityAndCountry(t *testing.T) {
	paths := make(chan string, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"49.37.1.1","city":"Hyderabad","region":"Telangana","country":"IN"}`))
	}))
	defer srv.Close()

	loc := NewIPLocator(srv.URL+"/", time.Second, zap.NewNop())
	assert.Equal(t, "Hyderabad, IN", loc.Locate(context.Background(), "49.37.1.1"))
	assert.Equal(t, "/49.37.1.1/json", <-paths)

	assert.Equal(t, "Hyderabad, IN", loc.Locate(context.Background(), "127.0.0.1"))
	assert.Equal(t, "/json", <-paths)

	loc.Locate(context.Background(), "192.168.1.20")
	assert.Equal(t, "/json", <-paths)
}

func TestIPLocatorDegradesToUnavailable(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"city":`))
		},
		"empty location": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ip":"1.1.1.1"}`))
		},
		"slow": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"city":"Late","country":"IN"}`))
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			loc := NewIPLocator(srv.URL, 50*time.Millisecond, zap.NewNop())
			assert.Equal(t, Unavailable, loc.Locate(context.Background(), "8.8.8.8"))
		})
	}
}

func TestIPLocatorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	loc := NewIPLocator(url, 100*time.Millisecond, zap.NewNop())
	assert.Equal(t, Unavailable, loc.Locate(context.Background(), ""))
	assert.Equal(t, Unavailable, StaticLocator.Locate(context.Background(), "8.8.8.8"))
}

func TestFormatLocationPartial(t *testing.T) {
	got, err := formatLocation(" Guntur ", "")
	assert.NoError(t, err)
	assert.Equal(t, "Guntur", got)

	got, err = formatLocation("", "IN")
	assert.NoError(t, err)
	assert.Equal(t, "IN", got)
}
