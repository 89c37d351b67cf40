package handlers

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/locale"
	"github.com/AnshRaj112/heritage-backend/internal/services"
	"github.com/AnshRaj112/heritage-backend/internal/session"
)

// requestTimeout bounds the store and mirror work of a single request.
const requestTimeout = 10 * time.Second

// defaultMaxUploadBytes caps multipart bodies (10MB).
const defaultMaxUploadBytes = 10 << 20

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the templates rendered inside the shell layout.
var pageNames = []string{"home", "story_submit", "story_read", "place_submit", "place_read"}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires a Handler to its services.
type Options struct {
	Submissions *services.SubmissionService
	Listings    *services.ListingService
	Exports     *services.ExportService
	Sessions    session.Store
	Locator     services.Locator
	Health      Pinger
	// MediaRoot is the mirror root; images are served from its place_histories/.
	MediaRoot      string
	MaxUploadBytes int64
	SecureCookies  bool
	Logger         *zap.Logger
}

// Handler serves the navigation shell, the JSON API and mirrored media.
type Handler struct {
	opts   Options
	pages  map[string]*template.Template
	logger *zap.Logger
}

func New(opts Options) (*Handler, error) {
	if opts.Submissions == nil || opts.Listings == nil || opts.Exports == nil {
		return nil, errors.New("handlers: submission, listing and export services are required")
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	if opts.Locator == nil {
		opts.Locator = services.StaticLocator
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{opts: opts, pages: pages, logger: opts.Logger.Named("Handlers")}, nil
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"lines":    splitLines,
		"mediaURL": mediaURL,
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// splitLines returns the non-blank lines of s.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// mediaURL maps a mirror-relative image path to its public URL.
func mediaURL(rel string) string {
	return path.Join("/media", filepath.ToSlash(rel))
}

// visitor resolves the session and locale of r, issuing a session cookie
// when needed.
func (h *Handler) visitor(w http.ResponseWriter, r *http.Request) (string, locale.Locale) {
	id := session.Ensure(w, r, h.opts.SecureCookies)
	return id, session.Resolve(r.Context(), h.opts.Sessions, id, r)
}
