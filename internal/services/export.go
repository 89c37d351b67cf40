package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/mirror"
	"github.com/AnshRaj112/heritage-backend/internal/models"
)

// AdminWriter stores files under admin_data/.
type AdminWriter interface {
	WriteAdminFile(name string, data []byte) (string, error)
}

// Snapshot is a full copy of both tables.
type Snapshot struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	Stories        []models.Story        `json:"stories"`
	PlaceHistories []models.PlaceHistory `json:"place_histories"`
}

// ExportService writes snapshots of the store into admin_data/.
type ExportService struct {
	store  Repository
	writer AdminWriter
	logger *zap.Logger
	now    func() time.Time
}

func NewExportService(store Repository, writer AdminWriter, logger *zap.Logger) *ExportService {
	return &ExportService{store: store, writer: writer, logger: logger.Named("Export"), now: time.Now}
}

// Export reads both tables and writes admin_data/export_<stamp>.json. It
// returns the snapshot and the root-relative path of the file.
func (s *ExportService) Export(ctx context.Context) (Snapshot, string, error) {
	stories, err := s.store.ListStories(ctx)
	if err != nil {
		return Snapshot{}, "", fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}
	places, err := s.store.ListPlaceHistories(ctx)
	if err != nil {
		return Snapshot{}, "", fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	snap := Snapshot{
		GeneratedAt:    s.now().UTC().Truncate(time.Second),
		Stories:        stories,
		PlaceHistories: places,
	}
	data, err := mirror.MarshalIndent(snap)
	if err != nil {
		return Snapshot{}, "", fmt.Errorf("encode snapshot: %w", err)
	}

	path, err := s.writer.WriteAdminFile("export_"+mirror.Stamp(snap.GeneratedAt)+".json", data)
	if err != nil {
		return Snapshot{}, "", fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("Snapshot exported", zap.String("path", path),
		zap.Int("stories", len(stories)), zap.Int("place_histories", len(places)))
	return snap, path, nil
}
