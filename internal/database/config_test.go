package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name:     "postgres from discrete fields",
			config:   DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "pizza", Password: "pw", Name: "contoso", SSLMode: "disable"},
			expected: "host=db user=pizza password=pw dbname=contoso port=5432 sslmode=disable",
		},
		{
			name:     "postgres url wins",
			config:   DatabaseConfig{Driver: "postgresql", URL: "postgres://pizza:pw@db/contoso", Host: "ignored"},
			expected: "postgres://pizza:pw@db/contoso",
		},
		{
			name:     "sqlite waits on locks and begins writes immediately",
			config:   DatabaseConfig{Driver: "sqlite", Path: "ContosoPizza.db"},
			expected: "ContosoPizza.db?_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL",
		},
		{
			name:     "sqlite keeps explicit parameters",
			config:   DatabaseConfig{Path: "file:pizza.db?cache=shared&_busy_timeout=100"},
			expected: "file:pizza.db?cache=shared&_busy_timeout=100&_txlock=immediate&_journal_mode=WAL",
		},
		{
			name:     "sqlite without a path",
			config:   DatabaseConfig{Driver: "sqlite"},
			expected: "",
		},
		{
			name:     "unknown driver",
			config:   DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestDatabaseConfigStringRedactsPasswords(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", URL: "postgres://pizza:hunter2@db/contoso", Password: "hunter2"}

	s := cfg.String()
	assert.False(t, strings.Contains(s, "hunter2"), s)
	assert.Contains(t, s, "pizza")
}
