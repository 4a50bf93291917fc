package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default compassq data directory name (relative to home).
	DefaultDataDir = ".compassq"
	// DBFile is the SQLite database filename.
	DBFile = "compassq.db"
	// DataFile is the board filename of the file storage.
	DataFile = "compassq.json"
	// RedisKey is the key the board document is stored under.
	RedisKey = "compassq-data-v1"
	// RedisURL is the default Redis server.
	RedisURL = "redis://localhost:6379/0"
)

// DataDir returns the data directory inside a home directory.
func DataDir(home string) string {
	return filepath.Join(home, DefaultDataDir)
}

// DBPath returns the SQLite database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// DataFilePath returns the board file path inside a data directory.
func DataFilePath(dataDir string) string {
	return filepath.Join(dataDir, DataFile)
}
