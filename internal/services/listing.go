package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/models"
)

// ImageFinder locates the mirrored image of a place history.
type ImageFinder interface {
	FindImage(name, placeName string) (string, error)
}

// PlaceEntry is a place history with its mirrored image, if one exists.
// ImagePath is relative to the mirror root.
type PlaceEntry struct {
	models.PlaceHistory
	ImagePath string `json:"image_path,omitempty"`
}

// ListingService reads submissions back, newest first.
type ListingService struct {
	store  Repository
	images ImageFinder
	logger *zap.Logger
}

func NewListingService(store Repository, images ImageFinder, logger *zap.Logger) *ListingService {
	return &ListingService{store: store, images: images, logger: logger.Named("Listing")}
}

func (s *ListingService) ListStories(ctx context.Context) ([]models.Story, error) {
	stories, err := s.store.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}
	return stories, nil
}

// ListPlaces returns every place history and re-attaches its image by the
// mirror's filename convention. A failed image lookup leaves ImagePath empty.
func (s *ListingService) ListPlaces(ctx context.Context) ([]PlaceEntry, error) {
	places, err := s.store.ListPlaceHistories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	entries := make([]PlaceEntry, 0, len(places))
	for _, p := range places {
		entry := PlaceEntry{PlaceHistory: p}
		if s.images != nil {
			path, err := s.images.FindImage(p.Name, p.PlaceName)
			if err != nil {
				s.logger.Warn("Image lookup failed", zap.Int64("place_id", p.ID), zap.Error(err))
			}
			entry.ImagePath = path
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
