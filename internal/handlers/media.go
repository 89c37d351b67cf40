package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/AnshRaj112/heritage-backend/internal/mirror"
)

// Media serves mirrored place images read-only under
// /media/place_histories/. Directory listings are not exposed.
func (h *Handler) Media() http.Handler {
	root := filepath.Join(h.opts.MediaRoot, mirror.PlaceHistoriesDir)
	files := http.StripPrefix("/media/"+mirror.PlaceHistoriesDir+"/", http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}
