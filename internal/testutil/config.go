package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/subosito/gotenv"

	platformconfig "github.com/litboard/api/internal/platform/config"
)

// LoadTestConfig builds a config suitable for tests. It layers a .env.test
// file (when present at the repo root) under any variables already set in
// the environment, then fills in test defaults so unit tests never demand
// real infrastructure.
func LoadTestConfig(t *testing.T) *platformconfig.Config {
	t.Helper()

	envMap := map[string]string{
		"SESSION_SECRET": "unit-test-secret",
		"WEB_DOMAIN":     "http://localhost:3000",
	}

	if path := findEnvFile(".env.test"); path != "" {
		file, err := os.Open(path)
		if err == nil {
			defer file.Close()
			for key, value := range gotenv.Parse(file) {
				envMap[key] = value
			}
		}
	}

	// Real environment wins over file values.
	for _, key := range []string{
		"SESSION_SECRET", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USERNAME",
		"POSTGRES_PASSWORD", "POSTGRES_DATABASE", "REDIS_ADDRESS", "WEB_DOMAIN",
	} {
		if value := os.Getenv(key); value != "" {
			envMap[key] = value
		}
	}

	cfg, err := platformconfig.LoadFromMap(envMap)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	return cfg
}

// findEnvFile walks up from the working directory looking for the named file.
func findEnvFile(name string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
