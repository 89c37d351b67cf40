package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/mirror"
	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/pkg/utils"
)

// Repository is the authoritative record store.
type Repository interface {
	InsertStory(ctx context.Context, story *models.Story) error
	InsertPlaceHistory(ctx context.Context, place *models.PlaceHistory) error
	ListStories(ctx context.Context) ([]models.Story, error)
	ListPlaceHistories(ctx context.Context) ([]models.PlaceHistory, error)
}

// StoryInput is a folk tale as entered by the visitor. Location comes from
// the Locator, not from the visitor.
type StoryInput struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Title    string `json:"story_title"`
	Summary  string `json:"story_summary"`
	Moral    string `json:"story_moral"`
	Location string `json:"-"`
}

// PlaceInput is a place history as entered by the visitor.
type PlaceInput struct {
	Name                   string `json:"name"`
	Age                    string `json:"age"`
	Location               string `json:"location"`
	PlaceName              string `json:"place_name"`
	PlaceDescription       string `json:"place_description"`
	HistoricalSignificance string `json:"historical_significance"`
}

// Image is an optional upload attached to a place history.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

var allowedImageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

var allowedImageTypes = map[string]bool{"image/jpeg": true, "image/jpg": true, "image/png": true}

// ValidateStory checks that every field is present and age is all digits.
func ValidateStory(in StoryInput) error {
	err := utils.RequireFields(
		utils.Field{Name: "name", Value: in.Name},
		utils.Field{Name: "age", Value: in.Age},
		utils.Field{Name: "story_title", Value: in.Title},
		utils.Field{Name: "story_summary", Value: in.Summary},
		utils.Field{Name: "story_moral", Value: in.Moral},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	if !utils.IsDigits(in.Age) {
		return fmt.Errorf("%w: %w", models.ErrValidation, &utils.ValidationError{Field: "age", Message: "age must be a whole number"})
	}
	return nil
}

// ValidatePlace checks the required place fields. Age is free text here and
// historical significance may be empty.
func ValidatePlace(in PlaceInput, img *Image) error {
	err := utils.RequireFields(
		utils.Field{Name: "name", Value: in.Name},
		utils.Field{Name: "age", Value: in.Age},
		utils.Field{Name: "location", Value: in.Location},
		utils.Field{Name: "place_name", Value: in.PlaceName},
		utils.Field{Name: "place_description", Value: in.PlaceDescription},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	if img != nil && len(img.Data) > 0 && !acceptedImage(img) {
		return fmt.Errorf("%w: %w", models.ErrValidation, &utils.ValidationError{Field: "image", Message: "image must be jpg, jpeg or png"})
	}
	return nil
}

// acceptedImage checks the declared type only; the bytes are not inspected.
func acceptedImage(img *Image) bool {
	if ext := strings.ToLower(filepath.Ext(img.Filename)); ext != "" {
		return allowedImageExtensions[ext]
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(img.ContentType, ";")[0]))
	return allowedImageTypes[ct]
}

// SubmissionService validates and stores new submissions.
type SubmissionService struct {
	store  Repository
	mirror mirror.Mirror
	logger *zap.Logger
}

func NewSubmissionService(store Repository, m mirror.Mirror, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{store: store, mirror: m, logger: logger.Named("Submission")}
}

// SubmitStory validates in, inserts the row and then mirrors it. The insert is
// required; a mirror failure is logged and does not fail the submission.
func (s *SubmissionService) SubmitStory(ctx context.Context, in StoryInput) (models.Story, error) {
	if err := ValidateStory(in); err != nil {
		return models.Story{}, err
	}

	story := models.Story{
		Name:         in.Name,
		Age:          in.Age,
		Location:     in.Location,
		StoryTitle:   in.Title,
		StorySummary: in.Summary,
		StoryMoral:   in.Moral,
	}
	if err := s.store.InsertStory(ctx, &story); err != nil {
		return models.Story{}, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorStory(ctx, story); err != nil {
			s.logger.Warn("Story stored but mirror failed", zap.Int64("story_id", story.ID), zap.Error(err))
		}
	}

	s.logger.Info("Story submitted", zap.Int64("story_id", story.ID))
	return story, nil
}

// SubmitPlace validates in, inserts the row and then mirrors the image (if
// any). Mirror failures are logged only.
func (s *SubmissionService) SubmitPlace(ctx context.Context, in PlaceInput, img *Image) (models.PlaceHistory, error) {
	if err := ValidatePlace(in, img); err != nil {
		return models.PlaceHistory{}, err
	}

	place := models.PlaceHistory{
		Name:                   in.Name,
		Age:                    in.Age,
		Location:               in.Location,
		PlaceName:              in.PlaceName,
		PlaceDescription:       in.PlaceDescription,
		HistoricalSignificance: in.HistoricalSignificance,
	}
	if err := s.store.InsertPlaceHistory(ctx, &place); err != nil {
		return models.PlaceHistory{}, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	var data []byte
	if img != nil {
		data = img.Data
	}
	if s.mirror != nil {
		if err := s.mirror.MirrorPlace(ctx, place, data); err != nil {
			s.logger.Warn("Place history stored but mirror failed", zap.Int64("place_id", place.ID), zap.Error(err))
		}
	}

	s.logger.Info("Place history submitted", zap.Int64("place_id", place.ID), zap.Bool("has_image", len(data) > 0))
	return place, nil
}
