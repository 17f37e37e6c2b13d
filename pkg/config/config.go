// Package config reads process configuration from the environment, with a
// .env file loaded first when present.
package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const appName = "chesscoach"

// Load pulls a .env file into the environment. Missing files are fine;
// the process environment wins either way.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnginePath is the configured Stockfish binary path, empty for
// auto-discovery.
func EnginePath() string {
	return os.Getenv("STOCKFISH_PATH")
}

// APIAddr is the HTTP API listen address.
func APIAddr() string {
	return ":" + getenv("APP_PORT", "8080")
}

// SSHAddr is the SSH frontend listen address.
func SSHAddr() string {
	return ":" + getenv("SSH_PORT", "2222")
}

// HostKeyPath is the SSH host key location, empty for an ephemeral key.
func HostKeyPath() string {
	return os.Getenv("SSH_HOST_KEY")
}

// AnalysisDepth is the search depth used to grade player moves.
func AnalysisDepth() int {
	if v, err := strconv.Atoi(os.Getenv("ANALYSIS_DEPTH")); err == nil && v > 0 {
		return v
	}
	return 0 // engine default
}

// EngineMoveTime is the per-reply time budget for the engine.
func EngineMoveTime() time.Duration {
	if ms, err := strconv.Atoi(os.Getenv("ENGINE_MOVE_TIME_MS")); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return 500 * time.Millisecond
}

// DataDir resolves the directory for persistent data. DATA_DIR overrides
// the platform default:
//   - macOS: ~/Library/Application Support/chesscoach
//   - Windows: %APPDATA%/chesscoach
//   - elsewhere: $XDG_DATA_HOME/chesscoach or ~/.local/share/chesscoach
func DataDir() (string, error) {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir, os.MkdirAll(dir, 0o755)
	}

	var baseDir string
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, "AppData", "Roaming")
		}
	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ProfileDBDir is the BadgerDB directory under the data dir.
func ProfileDBDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	return dbDir, nil
}
