package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDBFile is the datastore file name inside the store directory.
const DefaultDBFile = "solicitreview.db"

// GetDBPath returns the datastore file inside storePath; an empty
// storePath means the working directory.
func GetDBPath(storePath string) string {
	if storePath == "" {
		storePath = "."
	}
	return filepath.Join(storePath, DefaultDBFile)
}

// CheckExists reports whether a datastore file is present in storePath.
// A directory in the file's place is an error.
func CheckExists(storePath string) (bool, error) {
	dbPath := GetDBPath(storePath)
	info, err := os.Stat(dbPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat datastore %s: %w", dbPath, err)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("datastore %s is not a regular file", dbPath)
	}
	return true, nil
}
