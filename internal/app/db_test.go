package app

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	t.Run("adds application name and binary flag", func(t *testing.T) {
		got := databaseURL("postgres://u:p@localhost:5432/fantasy_auction?sslmode=disable", "fantasy-auction-api", true)
		parsed, err := url.Parse(got)
		require.NoError(t, err)

		q := parsed.Query()
		assert.Equal(t, "fantasy-auction-api", q.Get("application_name"))
		assert.Equal(t, "yes", q.Get("disable_prepared_binary_result"))
		assert.Equal(t, "disable", q.Get("sslmode"))
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		got := databaseURL("postgres://localhost/db?application_name=worker&disable_prepared_binary_result=no", "api", true)
		parsed, err := url.Parse(got)
		require.NoError(t, err)

		assert.Equal(t, "worker", parsed.Query().Get("application_name"))
		assert.Equal(t, "no", parsed.Query().Get("disable_prepared_binary_result"))
	})

	t.Run("binary flag off", func(t *testing.T) {
		got := databaseURL("postgres://localhost/db", "", false)
		assert.Equal(t, "postgres://localhost/db", got)
	})

	t.Run("keyword dsn untouched", func(t *testing.T) {
		in := "host=localhost dbname=fantasy_auction sslmode=disable"
		assert.Equal(t, in, databaseURL(in, "api", true))
	})
}

func TestDBNameFromURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/fantasy_auction?sslmode=disable": "fantasy_auction",
		"host=localhost dbname='fantasy_auction' sslmode=disable":        "fantasy_auction",
		"postgres://localhost":                                           "",
		"host=localhost":                                                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, dbNameFromURL(in), in)
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	assert.Equal(t, "SELECT id, name FROM teams", formatDBQueryForTrace("  SELECT id,\n\t name\n FROM teams  "))

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("x", 600))
	assert.Len(t, long, maxTracedQueryLength+3)
	assert.True(t, strings.HasSuffix(long, "..."))
}
