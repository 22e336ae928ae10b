package worldgen

import (
	"errors"
	"os"
	"path/filepath"
)

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.New("config directory not found")
	}
	return filepath.Join(base, "worldforge"), nil
}

// DefaultConfigPath is where commands look for a config when none is given.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
