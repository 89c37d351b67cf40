package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/models"
)

// Store persists stories and place histories in the relational database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore wraps an open connection. Tables must already exist.
func NewStore(db *sql.DB, dialect Dialect, logger *zap.Logger) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  logger.Named("Store"),
		now:     time.Now,
	}
}

// Dialect returns the SQL flavour of the underlying connection.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// timestamp is the server-assigned creation time, truncated to the precision
// both backends can round-trip.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// InsertStory stores a story and fills in its ID and CreatedAt.
func (s *Store) InsertStory(ctx context.Context, story *models.Story) error {
	createdAt := s.timestamp()
	query := s.rebind(`
		INSERT INTO stories (name, age, location, story_title, story_summary, story_moral, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		story.Name,
		story.Age,
		story.Location,
		story.StoryTitle,
		story.StorySummary,
		story.StoryMoral,
		createdAt,
	).Scan(&id)
	if err != nil {
		s.logger.Error("Failed to insert story", zap.String("title", story.StoryTitle), zap.Error(err))
		return fmt.Errorf("insert story: %w", err)
	}

	story.ID = id
	story.CreatedAt = createdAt
	s.logger.Debug("Story inserted", zap.Int64("id", id))
	return nil
}

// InsertPlaceHistory stores a place history and fills in its ID and CreatedAt.
func (s *Store) InsertPlaceHistory(ctx context.Context, place *models.PlaceHistory) error {
	createdAt := s.timestamp()
	query := s.rebind(`
		INSERT INTO place_histories (name, age, location, place_name, place_description, historical_significance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		place.Name,
		place.Age,
		place.Location,
		place.PlaceName,
		place.PlaceDescription,
		place.HistoricalSignificance,
		createdAt,
	).Scan(&id)
	if err != nil {
		s.logger.Error("Failed to insert place history", zap.String("place", place.PlaceName), zap.Error(err))
		return fmt.Errorf("insert place history: %w", err)
	}

	place.ID = id
	place.CreatedAt = createdAt
	s.logger.Debug("Place history inserted", zap.Int64("id", id))
	return nil
}

// ListStories returns every story, newest first.
func (s *Store) ListStories(ctx context.Context) ([]models.Story, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, location, story_title, story_summary, story_moral, created_at
		FROM stories
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query stories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Story, 0)
	for rows.Next() {
		var (
			st       models.Story
			location sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.Name, &st.Age, &location, &st.StoryTitle, &st.StorySummary, &st.StoryMoral, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		st.Location = location.String
		st.CreatedAt = st.CreatedAt.UTC()
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return out, nil
}

// ListPlaceHistories returns every place history, newest first.
func (s *Store) ListPlaceHistories(ctx context.Context) ([]models.PlaceHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, location, place_name, place_description, historical_significance, created_at
		FROM place_histories
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query place histories: %w", err)
	}
	defer rows.Close()

	out := make([]models.PlaceHistory, 0)
	for rows.Next() {
		var (
			p            models.PlaceHistory
			significance sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Location, &p.PlaceName, &p.PlaceDescription, &significance, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan place history: %w", err)
		}
		p.HistoricalSignificance = significance.String
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate place histories: %w", err)
	}
	return out, nil
}
