// Package mirror writes best-effort copies of submissions outside the
// relational store. Mirrors are never authoritative: the database row is the
// source of truth and a mirror may be missing or stale.
package mirror

import (
	"context"
	"errors"
	"time"

	"github.com/AnshRaj112/heritage-backend/internal/models"
)

// Top-level mirror directories.
const (
	StoriesDir        = "stories"
	PlaceHistoriesDir = "place_histories"
	AdminDataDir      = "admin_data"
)

// stampLayout gives filenames second granularity.
const stampLayout = "20060102_150405"

// Mirror receives a copy of every stored submission.
type Mirror interface {
	MirrorStory(ctx context.Context, story models.Story) error
	MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error
}

// Stamp formats the filename timestamp suffix for t.
func Stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

// Multi fans out to every mirror and joins their errors.
type Multi []Mirror

func (m Multi) MirrorStory(ctx context.Context, story models.Story) error {
	var errs []error
	for _, mr := range m {
		if err := mr.MirrorStory(ctx, story); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error {
	var errs []error
	for _, mr := range m {
		if err := mr.MirrorPlace(ctx, place, image); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
