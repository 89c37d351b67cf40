package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw     string
		dialect Dialect
		path    string
	}{
		{"", SQLite, DefaultSQLitePath},
		{"sqlite:///story_submissions.db", SQLite, "story_submissions.db"},
		{"sqlite:////var/lib/heritage/db.sqlite", SQLite, "/var/lib/heritage/db.sqlite"},
		{"file:data/portal.db?cache=shared", SQLite, "data/portal.db"},
		{"portal.db", SQLite, "portal.db"},
		{"postgres://u:p@localhost:5432/heritage?sslmode=disable", Postgres, ""},
		{"postgresql://localhost/heritage", Postgres, ""},
	}
	for _, tt := range tests {
		got, err := ParseURL(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.dialect, got.Dialect, tt.raw)
		assert.Equal(t, tt.path, got.Path, tt.raw)
		if tt.dialect == Postgres {
			assert.Equal(t, "postgres", got.Driver)
			assert.Equal(t, tt.raw, got.DSN)
		} else {
			assert.Equal(t, "sqlite", got.Driver)
			assert.Contains(t, got.DSN, "journal_mode(WAL)")
		}
	}
}

func TestParseURLRejectsUnknownSchemes(t *testing.T) {
	_, err := ParseURL("mysql://localhost/heritage")
	assert.Error(t, err)
	_, err = ParseURL("sqlite://relative.db")
	assert.Error(t, err)
}

func TestMongoDatabaseName(t *testing.T) {
	assert.Equal(t, "heritage", MongoDatabaseName("mongodb://localhost:27017"))
	assert.Equal(t, "heritage", MongoDatabaseName("mongodb://localhost:27017/"))
	assert.Equal(t, "portal", MongoDatabaseName("mongodb://u:p@db1.example.net:27017,db2.example.net:27017/portal?replicaSet=rs0&retryWrites=true"))
	assert.Equal(t, "heritage", MongoDatabaseName("not a uri"))
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: Postgres}
	assert.Equal(t, "VALUES ($1, $2, $3)", pg.rebind("VALUES (?, ?, ?)"))

	lite := &Store{dialect: SQLite}
	assert.Equal(t, "VALUES (?, ?)", lite.rebind("VALUES (?, ?)"))
}
