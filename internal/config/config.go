package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`

	// DatabaseURL selects the store; empty means the embedded SQLite file.
	DatabaseURL string `env:"DATABASE_URL"`
	// DataDir is the root of the stories/, place_histories/ and admin_data/ mirrors.
	DataDir string `env:"DATA_DIR" envDefault:"."`

	RedisURI   string        `env:"REDIS_URI"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	MongoURI string `env:"MONGODB_URI"`

	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	// GeoLookupURL is the IP lookup service; "off" disables lookups.
	GeoLookupURL string        `env:"GEO_LOOKUP_URL" envDefault:"https://ipinfo.io"`
	GeoTimeout   time.Duration `env:"GEO_TIMEOUT" envDefault:"3s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// AllowedHost, when set in production, rejects requests for any other Host.
	AllowedHost string `env:"ALLOWED_HOST"`
	// TrustProxy takes the client IP from X-Forwarded-For/X-Real-IP. Only
	// enable it behind a proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
	// ExportEnabled mounts POST /api/admin/export.
	ExportEnabled bool `env:"EXPORT_ENABLED" envDefault:"false"`

	// SubmitRatePerMinute limits POST submissions per client IP; 0 disables the limit.
	SubmitRatePerMinute int   `env:"SUBMIT_RATE_PER_MINUTE" envDefault:"6"`
	MaxUploadBytes      int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"json"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AllowedOrigins = cleanOrigins(cfg.AllowedOrigins)
	return &cfg, nil
}

func cleanOrigins(in []string) []string {
	var out []string
	for _, o := range in {
		o = strings.TrimSpace(o)
		if o != "" && !containsOrigin(out, o) {
			out = append(out, o)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// GeoLookupEnabled reports whether IP geolocation should be attempted.
func (c *Config) GeoLookupEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(c.GeoLookupURL))
	return v != "" && v != "off"
}
