package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Unavailable is reported when a location cannot be resolved.
const Unavailable = "Unavailable"

// Locator resolves a client address to a "City, Country" string. It never
// fails: any problem yields Unavailable.
type Locator interface {
	Locate(ctx context.Context, ip string) string
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context, ip string) string

func (f LocatorFunc) Locate(ctx context.Context, ip string) string {
	return f(ctx, ip)
}

// StaticLocator always returns Unavailable. Used when lookups are disabled.
var StaticLocator = LocatorFunc(func(context.Context, string) string { return Unavailable })

// IPLocator queries an ipinfo-compatible HTTP service: GET <base>/<ip>/json,
// or <base>/json for the server's own origin.
type IPLocator struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewIPLocator(baseURL string, timeout time.Duration, logger *zap.Logger) *IPLocator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &IPLocator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("Geolocation"),
	}
}

type ipLookupResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

func (l *IPLocator) Locate(ctx context.Context, ip string) string {
	loc, err := l.lookup(ctx, ip)
	if err != nil {
		l.logger.Debug("Location lookup failed", zap.String("ip", ip), zap.Error(err))
		return Unavailable
	}
	return loc
}

func (l *IPLocator) lookup(ctx context.Context, ip string) (string, error) {
	url := l.baseURL + "/json"
	if isPublicIP(ip) {
		url = l.baseURL + "/" + ip + "/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup status %d", resp.StatusCode)
	}

	var body ipLookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode lookup response: %w", err)
	}
	return formatLocation(body.City, body.Country)
}

func formatLocation(city, country string) (string, error) {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	switch {
	case city != "" && country != "":
		return city + ", " + country, nil
	case city != "":
		return city, nil
	case country != "":
		return country, nil
	}
	return "", fmt.Errorf("lookup returned no location")
}

// isPublicIP reports whether ip is a routable address worth looking up.
// Loopback and private addresses resolve to the server's own origin instead.
func isPublicIP(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast())
}
