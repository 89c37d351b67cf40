package mirror

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/pkg/utils"
)

// imageUploader is the part of the Cloudinary upload API the mirror uses.
type imageUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary copies place images to a Cloudinary folder laid out like the
// disk mirror. Stories are not mirrored there.
type Cloudinary struct {
	upload imageUploader
	logger *zap.Logger
}

func NewCloudinary(cloudName, apiKey, apiSecret string, logger *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return newCloudinary(&cld.Upload, logger), nil
}

func newCloudinary(up imageUploader, logger *zap.Logger) *Cloudinary {
	return &Cloudinary{upload: up, logger: logger.Named("CloudinaryMirror")}
}

func (c *Cloudinary) MirrorStory(ctx context.Context, story models.Story) error {
	return nil
}

func (c *Cloudinary) MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error {
	if len(image) == 0 {
		return nil
	}
	folder := path.Join(PlaceHistoriesDir, utils.SanitizeFilename(place.Name))
	publicID := utils.SanitizeFilename(place.PlaceName) + "_" + Stamp(place.CreatedAt)

	result, err := c.upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result != nil && result.Error.Message != "" {
		return fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}

	url := ""
	if result != nil {
		url = result.SecureURL
	}
	c.logger.Debug("Image mirrored", zap.Int64("place_id", place.ID), zap.String("url", url))
	return nil
}
