package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from the given .env files in order.
// Missing files are skipped. Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
	return nil
}
