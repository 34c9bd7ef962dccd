package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// developmentEnvs may use --auto-migrate. An unset APP_ENV counts as development.
var developmentEnvs = []string{"", "dev", "development", "local", "test", "testing"}

// InitializeEnvFile loads .env (and ENV_FILE, when set) without overriding variables
// that are already present. SKIP_DOTENV=true disables it for containers.
func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	files := []string{".env"}
	if extra := strings.TrimSpace(os.Getenv("ENV_FILE")); extra != "" {
		files = append([]string{extra}, files...)
	}

	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			logger.Debug("Env file not loaded", "file", file, "error", err.Error())
			continue
		}
		loaded = append(loaded, file)
	}

	if len(loaded) == 0 {
		logger.Info("No env file found; using process environment only")
		return
	}
	logger.Info("Environment variables loaded", "files", loaded)
}

func GetAppEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey)))
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	if slices.Contains(developmentEnvs, env) {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", %s)",
		AppEnvKey, env, strings.Join(developmentEnvs[1:], ", "))
}
