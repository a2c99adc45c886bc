package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dirPath and its parents if needed.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0o755)
}

// WritableDir creates dirPath if needed and probes it with a temp file.
func WritableDir(dirPath string) bool {
	if err := EnsureDir(dirPath); err != nil {
		log.Debugf("Cannot create directory %s: %v", dirPath, err)
		return false
	}
	probe, err := os.CreateTemp(dirPath, ".probe-*")
	if err != nil {
		log.Debugf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// GetAbsolutePath resolves path against the working directory.
func GetAbsolutePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetExecutableDir returns the directory of the running binary with
// symlinks resolved, so a linked install still finds its data.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}
