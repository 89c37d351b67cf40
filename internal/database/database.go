package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath is used when DATABASE_URL is not set.
const DefaultSQLitePath = "story_submissions.db"

// Dialect selects the SQL flavour spoken by the store.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Target is a resolved DATABASE_URL.
type Target struct {
	Dialect Dialect
	Driver  string
	DSN     string
	// Path is the database file for SQLite targets.
	Path string
}

// ParseURL resolves a connection string. Postgres URLs are passed to lib/pq;
// anything else is treated as an SQLite file (sqlite:///relative.db,
// sqlite:////absolute.db, file:path or a bare path). Empty means the default file.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Target{Dialect: Postgres, Driver: "postgres", DSN: raw}, nil
	case raw == "":
		return sqliteTarget(DefaultSQLitePath), nil
	case strings.HasPrefix(lower, "sqlite:///"):
		path := raw[len("sqlite:///"):]
		if path == "" {
			path = DefaultSQLitePath
		}
		return sqliteTarget(path), nil
	case strings.HasPrefix(lower, "sqlite://"):
		return Target{}, fmt.Errorf("unsupported sqlite url %q: use sqlite:///path", raw)
	case strings.HasPrefix(lower, "file:"):
		path := raw[len("file:"):]
		if i := strings.Index(path, "?"); i >= 0 {
			path = path[:i]
		}
		return sqliteTarget(path), nil
	case strings.Contains(raw, "://"):
		return Target{}, fmt.Errorf("unsupported database url scheme in %q", raw)
	}
	return sqliteTarget(raw), nil
}

func sqliteTarget(path string) Target {
	path = filepath.Clean(path)
	// busy_timeout waits on locks, WAL lets readers proceed during a write.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	return Target{Dialect: SQLite, Driver: "sqlite", DSN: dsn, Path: path}
}

// Open connects to the database named by rawURL, verifies it and creates the
// tables if they do not exist yet.
func Open(ctx context.Context, rawURL string, logger *zap.Logger) (*Store, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if target.Dialect == SQLite {
		if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db path: %w", err)
		}
	}

	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Dialect, err)
	}

	if target.Dialect == Postgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", target.Dialect, err)
	}

	if err := InitTables(ctx, db, target.Dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Connected to database", zap.String("dialect", target.Dialect.String()))
	return NewStore(db, target.Dialect, logger), nil
}
