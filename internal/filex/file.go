// Package filex contains filesystem helpers for the client's local
// data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir creates the named subdirectory of the working
// directory if it does not exist and returns its absolute path. The
// client keeps its credential store there.
func EnsureDataDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ResolveStorePath places a bare database filename inside the app data
// directory. Paths that already contain a separator are left alone.
func ResolveStorePath(dsn string) (string, error) {
	if dsn == "" || filepath.Base(dsn) != dsn {
		return dsn, nil
	}
	dir, err := EnsureDataDir("data")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dsn), nil
}
