package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Options holds the persisted app settings.
type Options struct {
	URI   string `json:"uri,omitempty"`
	Table string `json:"table,omitempty"`
	Theme string `json:"theme,omitempty"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "grid-tui"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the saved options. A missing file yields zero options.
func Load() (*Options, error) {
	path, err := configPath()
	if err != nil {
		return &Options{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Options{}, nil
		}
		return &Options{}, fmt.Errorf("failed to read config: %w", err)
	}

	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return &Options{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return &opts, nil
}

// Save writes the options to disk.
func (o *Options) Save() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}
