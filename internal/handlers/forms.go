package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AnshRaj112/heritage-backend/internal/services"
)

var storyFields = []string{"name", "age", "story_title", "story_summary", "story_moral"}

var placeFields = []string{"name", "age", "location", "place_name", "place_description", "historical_significance"}

// formValues returns the trimmed values of names from a parsed form.
func formValues(r *http.Request, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = strings.TrimSpace(r.FormValue(n))
	}
	return out
}

func storyInput(v map[string]string) services.StoryInput {
	return services.StoryInput{
		Name:    v["name"],
		Age:     v["age"],
		Title:   v["story_title"],
		Summary: v["story_summary"],
		Moral:   v["story_moral"],
	}
}

func placeInput(v map[string]string) services.PlaceInput {
	return services.PlaceInput{
		Name:                   v["name"],
		Age:                    v["age"],
		Location:               v["location"],
		PlaceName:              v["place_name"],
		PlaceDescription:       v["place_description"],
		HistoricalSignificance: v["historical_significance"],
	}
}

// parsePlaceForm reads a multipart place submission. A missing image field
// yields a nil Image. A plain urlencoded body is accepted as well.
func parsePlaceForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]string, *services.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, fmt.Errorf("parse form: %w", err)
	}
	values := formValues(r, placeFields)

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return values, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}
	return values, &services.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
