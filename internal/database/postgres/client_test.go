package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litboard/api/internal/platform/config"
)

func TestBuildConnectionString(t *testing.T) {
	cfg := &config.PostgreSQLConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "litboard",
		Username: "litboard",
		Password: "secret",
		SSLMode:  "disable",
	}

	connStr := buildConnectionString(cfg)

	assert.Equal(t, "host=localhost port=5432 dbname=litboard user=litboard password=secret sslmode=disable", connStr)
}

func TestBuildConnectionStringOmitsEmptyCredentials(t *testing.T) {
	cfg := &config.PostgreSQLConfig{
		Host:           "db.internal",
		Port:           5433,
		Database:       "litboard",
		SSLMode:        "require",
		ConnectTimeout: 5,
	}

	connStr := buildConnectionString(cfg)

	assert.NotContains(t, connStr, "user=")
	assert.NotContains(t, connStr, "password=")
	assert.Contains(t, connStr, "sslmode=require")
	assert.Contains(t, connStr, "connect_timeout=5")
}
