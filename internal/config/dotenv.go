package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv applies the env file when it exists. Variables already present in
// the environment win.
func loadDotEnv() {
	path := envOrDefault(envFile, defaultEnvFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return
	}
	_ = godotenv.Load(path)
}
