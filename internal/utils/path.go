package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ResolveDataDir finds a dictionary directory. Absolute paths are used as is;
// relative paths are tried against the working directory first and then
// against the executable's directory.
func ResolveDataDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return checkDir(dir)
	}

	candidates := []string{GetAbsolutePath(dir)}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(execDir, dir))
	}

	for _, candidate := range candidates {
		if path, err := checkDir(candidate); err == nil {
			return path, nil
		}
		log.Debugf("Data dir candidate not usable: %s", candidate)
	}
	return "", fmt.Errorf("data directory %q not found (tried %v)", dir, candidates)
}

func checkDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", path)
	}
	return path, nil
}
