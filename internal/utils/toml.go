package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile decodes path into v. It returns the keys present in the
// file that v has no field for, so callers can report typos.
func DecodeTOMLFile(path string, v any) ([]string, error) {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v", path, err)
		return nil, err
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// DecodeTOMLMap decodes path without a schema, for recovering the keys that
// still have a usable type when a typed decode fails.
func DecodeTOMLMap(path string) (map[string]any, error) {
	data := make(map[string]any)
	if _, err := toml.DecodeFile(path, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteTOMLFile encodes v next to path and renames it into place, so a
// reader never sees a half written file.
func WriteTOMLFile(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Extract returns data[key] if it holds a T.
func Extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractInt returns data[key] as an int. TOML integers decode as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := Extract[int64](data, key)
	return int(val), ok
}
