package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	for _, env := range []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "} {
		assert.NoError(t, ValidateAutoMigrateAllowed(env), "env %q", env)
	}

	for _, env := range []string{"prod", "production", "staging", "preprod", " Production ", "qa"} {
		assert.Error(t, ValidateAutoMigrateAllowed(env), "env %q", env)
	}
}

func TestInitializeEnvFile_LoadsEnvFileWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "landing.env")
	require.NoError(t, os.WriteFile(file, []byte("LANDING_FROM_FILE=file\nLANDING_ALREADY_SET=file\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "")
	t.Setenv("ENV_FILE", file)
	t.Setenv("LANDING_ALREADY_SET", "process")
	t.Setenv("LANDING_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("LANDING_FROM_FILE"))

	InitializeEnvFile(log.NewLoggerWithJSONOutput())

	assert.Equal(t, "file", os.Getenv("LANDING_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("LANDING_ALREADY_SET"))
}

func TestInitializeEnvFile_Skip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "skip.env")
	require.NoError(t, os.WriteFile(file, []byte("LANDING_SKIPPED=yes\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv("ENV_FILE", file)
	t.Setenv("LANDING_SKIPPED", "")
	require.NoError(t, os.Unsetenv("LANDING_SKIPPED"))

	InitializeEnvFile(log.NewLoggerWithJSONOutput())

	_, set := os.LookupEnv("LANDING_SKIPPED")
	assert.False(t, set)
}
